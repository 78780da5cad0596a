package xlru

import (
	"context"
	"log/slog"
	"runtime"
	"sync"
	"time"
	"weak"

	"github.com/jonboulle/clockwork"

	"github.com/omeyang/xmemo/pkg/observability/xmetrics"
)

// expirySlack 是下一个过期时刻之后额外等待的时长。
// 过期判断是严格小于，恰好在过期时刻醒来的清扫不会移除该条目。
const expirySlack = time.Second

// janitor 是后台清理 goroutine 的控制句柄。
// 句柄不引用 Cache，可以安全地作为 runtime.AddCleanup 的参数。
type janitor struct {
	stop     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

func (j *janitor) halt() {
	j.stopOnce.Do(func() { close(j.stop) })
}

// startJanitor 启动后台清理 goroutine。
//
// 设计决策: goroutine 只持有 weak.Pointer，janitor 永远不会让 Cache 保持存活。
// Cache 被回收时 runtime.AddCleanup 关闭 stop，唤醒正在休眠的 goroutine 立即退出，
// 不必等到下一次醒来才发现弱引用已失效。
func startJanitor[K comparable, V any](c *Cache[K, V], interval time.Duration) *janitor {
	j := &janitor{
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}
	runtime.AddCleanup(c, (*janitor).halt, j)

	w := &sweeper[K, V]{
		ref:      weak.Make(c),
		interval: interval,
		clock:    c.clock,
		logger:   c.logger,
		observer: c.observer,
	}
	go w.run(j)
	return j
}

// sweeper 保存 janitor goroutine 需要的全部状态，不含 Cache 的强引用。
type sweeper[K comparable, V any] struct {
	ref      weak.Pointer[Cache[K, V]]
	interval time.Duration
	clock    clockwork.Clock
	logger   *slog.Logger
	observer xmetrics.Observer
}

func (w *sweeper[K, V]) run(j *janitor) {
	defer close(j.done)

	ctx := context.Background()
	w.logger.DebugContext(ctx, "xlru: janitor started", slog.Duration("interval", w.interval))

	for {
		wait, alive := w.sweep(ctx)
		if !alive {
			w.logger.DebugContext(ctx, "xlru: cache collected, janitor exiting")
			return
		}

		timer := w.clock.NewTimer(wait)
		select {
		case <-j.stop:
			timer.Stop()
			w.logger.DebugContext(ctx, "xlru: janitor stopped")
			return
		case <-timer.Chan():
		}
	}
}

// sweep 解析弱引用并执行一次 Cleanup，返回下一次休眠时长。
// 强引用只存在于本函数栈帧内，休眠期间不持有 Cache。
func (w *sweeper[K, V]) sweep(ctx context.Context) (wait time.Duration, alive bool) {
	c := w.ref.Value()
	if c == nil {
		return 0, false
	}

	_, span := xmetrics.Start(ctx, w.observer, xmetrics.SpanOptions{
		Component: "xlru",
		Operation: "cleanup",
		Kind:      xmetrics.KindInternal,
	})
	next, ok := c.Cleanup()
	span.End(xmetrics.Result{Attrs: []xmetrics.Attr{
		xmetrics.Int("entries", c.Len()),
		xmetrics.Bool("next_known", ok),
	}})

	if !ok {
		return w.interval, true
	}
	return next + expirySlack, true
}
