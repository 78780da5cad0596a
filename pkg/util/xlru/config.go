package xlru

import (
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/omeyang/xmemo/pkg/observability/xmetrics"
)

const (
	// maxSize 缓存最大条目数上限。
	maxSize = 1 << 24 // 16,777,216

	// DefaultMaxSize 默认最大条目数。
	DefaultMaxSize = 1024

	// DefaultTTL 默认条目存活时间。
	DefaultTTL = 15 * time.Minute

	// DefaultCleanupInterval 后台清理在没有已知过期时刻时的休眠时长。
	DefaultCleanupInterval = 60 * time.Second

	// NoExpiry 表示条目永不过期。
	NoExpiry time.Duration = 0
)

// Config 定义缓存配置。
// 字段带 koanf 标签，可以直接通过 xconf 从 YAML/JSON 加载。
type Config struct {
	// MaxSize 缓存最大条目数。
	// 必须大于 0 且不超过 16,777,216。
	MaxSize int `koanf:"max_size"`

	// TTL 条目存活时间，从写入时刻开始计算。
	// NoExpiry (0) 表示永不过期，不允许负值。
	TTL time.Duration `koanf:"ttl"`

	// BackgroundCleanup 是否启动后台清理 goroutine。
	// 启用后 Concurrent 被强制视为 true。
	BackgroundCleanup bool `koanf:"background_cleanup"`

	// CleanupInterval 后台清理在没有已知过期时刻时的休眠时长。
	// 0 表示使用 DefaultCleanupInterval，仅在 BackgroundCleanup 为 true 时有意义。
	CleanupInterval time.Duration `koanf:"cleanup_interval"`

	// Concurrent 是否用互斥锁保护所有操作。
	Concurrent bool `koanf:"concurrent"`
}

// DefaultConfig 返回默认配置：1024 条、TTL 15 分钟、无后台清理、非并发。
func DefaultConfig() Config {
	return Config{
		MaxSize: DefaultMaxSize,
		TTL:     DefaultTTL,
	}
}

// IsConcurrent 返回实际生效的并发模式。
func (cfg Config) IsConcurrent() bool {
	return cfg.Concurrent || cfg.BackgroundCleanup
}

func (cfg Config) validate() error {
	if cfg.MaxSize <= 0 {
		return ErrInvalidSize
	}
	if cfg.MaxSize > maxSize {
		return ErrSizeExceedsMax
	}
	if cfg.TTL < 0 {
		return ErrInvalidTTL
	}
	if cfg.CleanupInterval < 0 {
		return ErrInvalidCleanupInterval
	}
	return nil
}

func (cfg Config) cleanupInterval() time.Duration {
	if cfg.CleanupInterval == 0 {
		return DefaultCleanupInterval
	}
	return cfg.CleanupInterval
}

// EvictReason 表示条目被 Cleanup 移除的原因。
type EvictReason int

const (
	// EvictExpired 条目已过期。
	EvictExpired EvictReason = iota + 1
	// EvictCapacity 条目数超过 MaxSize，条目是最久未访问的。
	EvictCapacity
)

// String 返回淘汰原因的可读表示。
func (r EvictReason) String() string {
	switch r {
	case EvictExpired:
		return "expired"
	case EvictCapacity:
		return "capacity"
	default:
		return "unknown"
	}
}

// Option 定义缓存可选配置函数类型。
type Option func(*options)

// options 内部可选配置。
type options struct {
	clock     clockwork.Clock
	logger    *slog.Logger
	observer  xmetrics.Observer
	onEvicted any // func(K, V, EvictReason)，在 New 中做类型断言
}

func defaultOptions() *options {
	return &options{
		clock:    clockwork.NewRealClock(),
		logger:   slog.Default(),
		observer: xmetrics.NoopObserver{},
	}
}

// WithClock 设置时钟，测试中可注入 clockwork.FakeClock。
// nil 会被忽略。
func WithClock(clock clockwork.Clock) Option {
	return func(o *options) {
		if clock != nil {
			o.clock = clock
		}
	}
}

// WithLogger 设置 janitor 使用的 Logger，默认 slog.Default()。
// nil 会被忽略。
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithObserver 设置后台清理的观测器，默认不观测。
func WithObserver(observer xmetrics.Observer) Option {
	return func(o *options) {
		if observer != nil {
			o.observer = observer
		}
	}
}

// WithOnEvicted 设置条目被 Cleanup 移除（过期或容量淘汰）时的回调。
// Delete 与 Clear 不触发回调。
//
// 设计决策: 回调在 Cache 的锁内同步执行。调用方必须遵守以下约束：
//   - 严禁在回调中调用 Cache 自身的任何方法（并发模式下会死锁）
//   - 严禁在回调中调用 Close（janitor 路径上会互相等待）
//   - 应避免耗时操作，如需复杂处理，应将事件发送到外部 channel 异步处理
//
// 回调的键值类型必须与 Cache 一致，否则 New 返回 ErrOnEvictedType。
func WithOnEvicted[K comparable, V any](fn func(key K, value V, reason EvictReason)) Option {
	return func(o *options) {
		if fn != nil {
			o.onEvicted = fn
		}
	}
}
