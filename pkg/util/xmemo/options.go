package xmemo

import (
	"log/slog"

	"github.com/omeyang/xmemo/pkg/observability/xmetrics"
	"github.com/omeyang/xmemo/pkg/util/xlru"
)

type options struct {
	name         string
	cacheConfig  xlru.Config
	cacheOptions []xlru.Option
	singleflight bool
	observer     xmetrics.Observer
	logger       *slog.Logger
}

func defaultOptions() *options {
	return &options{
		cacheConfig: xlru.DefaultConfig(),
		observer:    xmetrics.NoopObserver{},
		logger:      slog.Default(),
	}
}

// Option 定义 Memo 的配置选项。
type Option func(*options)

// WithName 设置缓存键前缀和观测中的操作名。
// 默认使用函数的运行时符号名；闭包的符号名形如 "pkg.fn.func1"，
// 建议显式命名。空字符串会被忽略。
func WithName(name string) Option {
	return func(o *options) {
		if name != "" {
			o.name = name
		}
	}
}

// WithCacheConfig 设置 New 创建的内部缓存配置，默认 xlru.DefaultConfig()。
// 对 NewWithCache 无效。
func WithCacheConfig(cfg xlru.Config) Option {
	return func(o *options) {
		o.cacheConfig = cfg
	}
}

// WithCacheOptions 追加 New 创建内部缓存时使用的 xlru 选项，
// 例如 xlru.WithClock。对 NewWithCache 无效。
func WithCacheOptions(opts ...xlru.Option) Option {
	return func(o *options) {
		o.cacheOptions = append(o.cacheOptions, opts...)
	}
}

// WithSingleflight 设置是否合并并发的相同未命中，默认关闭。
func WithSingleflight(enabled bool) Option {
	return func(o *options) {
		o.singleflight = enabled
	}
}

//go:generate mockgen -destination=observer_mock_test.go -package=xmemo github.com/omeyang/xmemo/pkg/observability/xmetrics Observer,Span

// WithObserver 设置调用观测器，默认不观测。nil 会被忽略。
func WithObserver(observer xmetrics.Observer) Option {
	return func(o *options) {
		if observer != nil {
			o.observer = observer
		}
	}
}

// WithLogger 设置 Logger，默认 slog.Default()。nil 会被忽略。
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}
