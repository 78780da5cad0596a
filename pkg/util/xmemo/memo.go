package xmemo

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"
	"runtime"

	"golang.org/x/sync/singleflight"

	"github.com/omeyang/xmemo/pkg/observability/xmetrics"
	"github.com/omeyang/xmemo/pkg/util/xlru"
)

const componentName = "xmemo"

// Func 是可以被记忆化的函数。
// 具名参数通过 [Kwargs] 作为普通参数传入。
type Func[R any] func(ctx context.Context, args ...any) (R, error)

// Memo 是带缓存的函数包装。
// 必须通过 [New] 或 [NewWithCache] 创建，零值不可用。
type Memo[R any] struct {
	fn    Func[R]
	name  string
	cache *xlru.Cache[string, R]
	owned bool

	singleflight bool
	group        singleflight.Group

	observer xmetrics.Observer
	logger   *slog.Logger
}

// New 创建持有独立缓存的 Memo。缓存由 WithCacheConfig 配置，
// 调用方用完后应调用 Close 释放缓存的后台清理。
//
// 缓存配置无效时返回的错误可以用 errors.Is 匹配 xlru 的哨兵错误。
func New[R any](fn Func[R], opts ...Option) (*Memo[R], error) {
	if fn == nil {
		return nil, ErrNilFunc
	}
	o := applyOptions(opts)

	cfg := o.cacheConfig
	if o.singleflight {
		cfg.Concurrent = true
	}
	cacheOpts := append([]xlru.Option{xlru.WithLogger(o.logger)}, o.cacheOptions...)
	cache, err := xlru.New[string, R](cfg, cacheOpts...)
	if err != nil {
		return nil, fmt.Errorf("xmemo: create cache: %w", err)
	}

	m := newMemo(fn, cache, o)
	m.owned = true
	return m, nil
}

// NewWithCache 创建使用共享缓存的 Memo。
// Memo 不会关闭共享缓存；并发调用时 cache 必须处于并发模式。
func NewWithCache[R any](fn Func[R], cache *xlru.Cache[string, R], opts ...Option) (*Memo[R], error) {
	if fn == nil {
		return nil, ErrNilFunc
	}
	if cache == nil {
		return nil, ErrNilCache
	}
	return newMemo(fn, cache, applyOptions(opts)), nil
}

func applyOptions(opts []Option) *options {
	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}
	return o
}

func newMemo[R any](fn Func[R], cache *xlru.Cache[string, R], o *options) *Memo[R] {
	name := o.name
	if name == "" {
		name = funcName(fn)
	}
	return &Memo[R]{
		fn:           fn,
		name:         name,
		cache:        cache,
		singleflight: o.singleflight,
		observer:     o.observer,
		logger:       o.logger,
	}
}

// funcName 返回函数的运行时符号名。
func funcName(fn any) string {
	v := reflect.ValueOf(fn)
	if v.Kind() != reflect.Func || v.IsNil() {
		return ""
	}
	if f := runtime.FuncForPC(v.Pointer()); f != nil {
		return f.Name()
	}
	return ""
}

// Name 返回 Memo 的名称（缓存键前缀）。
func (m *Memo[R]) Name() string {
	return m.name
}

// Cache 返回底层缓存，可用于查看 Len/Stats 或手动 Clear。
func (m *Memo[R]) Cache() *xlru.Cache[string, R] {
	return m.cache
}

// Call 以 args 调用函数，命中缓存时直接返回缓存值。
//
// 未命中时在锁外执行函数，成功后写入缓存；
// 函数返回的错误原样返回，不写入缓存。
func (m *Memo[R]) Call(ctx context.Context, args ...any) (result R, err error) {
	key := Key(m.name, args...)

	ctx, span := xmetrics.Start(ctx, m.observer, xmetrics.SpanOptions{
		Component: componentName,
		Operation: m.name,
		Kind:      xmetrics.KindInternal,
	})
	hit := false
	defer func() {
		span.End(xmetrics.Result{Err: err, Attrs: []xmetrics.Attr{xmetrics.Bool("hit", hit)}})
	}()

	if v, getErr := m.cache.Get(key); getErr == nil {
		hit = true
		return v, nil
	}

	if m.singleflight {
		return m.loadShared(ctx, key, args)
	}
	return m.load(ctx, key, args)
}

func (m *Memo[R]) load(ctx context.Context, key string, args []any) (R, error) {
	v, err := m.fn(ctx, args...)
	if err != nil {
		m.logger.DebugContext(ctx, "xmemo: call failed, result not cached",
			slog.String("name", m.name), slog.Any("error", err))
		var zero R
		return zero, err
	}
	m.cache.Set(key, v)
	return v, nil
}

// loadShared 使用 DoChan 合并相同 key 的并发未命中，
// 每个调用方可以按自己的 ctx 提前返回，不影响其他等待者。
func (m *Memo[R]) loadShared(ctx context.Context, key string, args []any) (R, error) {
	var zero R

	ch := m.group.DoChan(key, func() (any, error) {
		// 进入 singleflight 后再查一次：上一轮合并的结果可能刚写入。
		// Call 已记过一次未命中，这里用 Peek 避免重复计数。
		if v, ok := m.cache.Peek(key); ok {
			return v, nil
		}
		return m.load(context.WithoutCancel(ctx), key, args)
	})

	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return zero, res.Err
		}
		v, ok := res.Val.(R)
		if !ok && res.Val != nil {
			return zero, errUnexpectedResult
		}
		return v, nil
	}
}

// Close 关闭 New 创建的内部缓存。共享缓存不受影响。
// Close 是幂等的。
func (m *Memo[R]) Close() {
	if m.owned {
		m.cache.Close()
	}
}
