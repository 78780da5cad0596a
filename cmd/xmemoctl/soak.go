package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/urfave/cli/v3"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"golang.org/x/sync/errgroup"

	"github.com/omeyang/xmemo/pkg/observability/xmetrics"
	"github.com/omeyang/xmemo/pkg/util/xlru"
	"github.com/omeyang/xmemo/pkg/util/xmemo"
)

// soakOptions 控制并发压测。
type soakOptions struct {
	workers  int
	duration time.Duration
	keys     int
}

func (o soakOptions) validate() error {
	if o.workers <= 0 || o.keys <= 0 || o.duration <= 0 {
		return &usageError{msg: "workers, keys and duration must be positive"}
	}
	return nil
}

func (a *app) soakCommand() *cli.Command {
	return &cli.Command{
		Name:  "soak",
		Usage: "多 goroutine 并发读写共享缓存，结束后打印统计",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "workers", Aliases: []string{"w"}, Usage: "并发 goroutine 数", Value: 8},
			&cli.DurationFlag{Name: "duration", Aliases: []string{"d"}, Usage: "压测时长", Value: 2 * time.Second},
			&cli.IntFlag{Name: "keys", Aliases: []string{"k"}, Usage: "键空间大小", Value: 2048},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return a.runSoak(ctx, soakOptions{
				workers:  cmd.Int("workers"),
				duration: cmd.Duration("duration"),
				keys:     cmd.Int("keys"),
			})
		},
	}
}

// runSoak 让 workers 个 goroutine 在 duration 内交替直接读写缓存和
// 通过共享同一缓存的记忆化函数读取，最后打印缓存统计与命中指标。
func (a *app) runSoak(ctx context.Context, o soakOptions) error {
	if err := o.validate(); err != nil {
		return err
	}

	logger := a.logger.With("run_id", uuid.NewString())

	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	defer func() { _ = mp.Shutdown(context.WithoutCancel(ctx)) }()

	obs, err := xmetrics.NewOTelObserver(xmetrics.WithMeterProvider(mp))
	if err != nil {
		return err
	}

	cfg := a.cfg.Cache
	cfg.Concurrent = true
	cache, err := xlru.New[string, string](cfg, xlru.WithLogger(logger), xlru.WithObserver(obs))
	if err != nil {
		return &usageError{msg: "invalid cache config", err: err}
	}
	defer cache.Close()

	square, err := xmemo.NewWithCache(func(_ context.Context, args ...any) (string, error) {
		n := args[0].(int)
		return strconv.Itoa(n * n), nil
	}, cache, xmemo.WithName("square"), xmemo.WithSingleflight(true),
		xmemo.WithObserver(obs), xmemo.WithLogger(logger))
	if err != nil {
		return err
	}

	logger.Info("soak started",
		"workers", o.workers, "duration", o.duration, "keys", o.keys,
		"max_size", cfg.MaxSize, "ttl", cfg.TTL)

	runCtx, cancel := context.WithTimeout(ctx, o.duration)
	defer cancel()

	g, gctx := errgroup.WithContext(runCtx)
	for w := range o.workers {
		g.Go(func() error {
			return soakWorker(gctx, w, o.keys, cache, square)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	stats := cache.Stats()
	logger.Info("soak finished", "stats", stats)
	fmt.Fprintf(a.out, "entries=%d hits=%d misses=%d sets=%d deletes=%d expired=%d evicted=%d hit_ratio=%.3f\n",
		cache.Len(), stats.Hits, stats.Misses, stats.Sets, stats.Deletes,
		stats.Expired, stats.Evicted, stats.HitRatio())

	hits, misses, err := memoCounts(ctx, reader)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "memo calls: hit=%d miss=%d\n", hits, misses)
	return nil
}

func soakWorker(ctx context.Context, id, keys int, cache *xlru.Cache[string, string], square *xmemo.Memo[string]) error {
	rng := rand.New(rand.NewPCG(uint64(id), uint64(time.Now().UnixNano())))
	for ctx.Err() == nil {
		n := rng.IntN(keys)
		key := "k" + strconv.Itoa(n)
		switch op := rng.IntN(10); {
		case op < 4:
			if _, err := cache.Get(key); err != nil && !errors.Is(err, xlru.ErrKeyNotFound) {
				return err
			}
		case op < 7:
			cache.Set(key, strconv.Itoa(n))
		case op < 8:
			cache.Delete(key)
		default:
			if _, err := square.Call(ctx, n); err != nil && !errors.Is(err, context.Canceled) &&
				!errors.Is(err, context.DeadlineExceeded) {
				return err
			}
		}
	}
	return nil
}

// memoCounts 从 ManualReader 汇总 xmemo 调用的命中与未命中次数。
func memoCounts(ctx context.Context, reader *sdkmetric.ManualReader) (hits, misses int64, err error) {
	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.WithoutCancel(ctx), &rm); err != nil {
		return 0, 0, err
	}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != "xmemo.operation.total" {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			if !ok {
				continue
			}
			for _, dp := range sum.DataPoints {
				if c, ok := dp.Attributes.Value("component"); !ok || c.AsString() != "xmemo" {
					continue
				}
				if h, ok := dp.Attributes.Value("hit"); ok && h.AsBool() {
					hits += dp.Value
				} else {
					misses += dp.Value
				}
			}
		}
	}
	return hits, misses, nil
}
