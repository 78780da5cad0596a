package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/urfave/cli/v3"

	"github.com/omeyang/xmemo/pkg/util/xlru"
	"github.com/omeyang/xmemo/pkg/util/xmemo"
)

// demoOptions 控制 demo 的时间参数。
type demoOptions struct {
	ttl  time.Duration // 两个场景共用的 TTL
	hold time.Duration // 场景一：两次调用之间的间隔，应小于 ttl
	wait time.Duration // 场景二：写入后等待的时长，应大于 ttl
}

func (o demoOptions) validate() error {
	if o.ttl <= 0 || o.hold < 0 || o.wait < 0 {
		return &usageError{msg: "ttl must be positive, hold and wait must not be negative"}
	}
	return nil
}

func (a *app) demoCommand() *cli.Command {
	return &cli.Command{
		Name:  "demo",
		Usage: "记忆化函数在 TTL 内只计算一次；条目过期后读取失败",
		Flags: []cli.Flag{
			&cli.DurationFlag{Name: "ttl", Usage: "缓存 TTL", Value: 3 * time.Second},
			&cli.DurationFlag{Name: "hold", Usage: "两次调用之间的间隔", Value: 2 * time.Second},
			&cli.DurationFlag{Name: "wait", Usage: "写入后等待的时长", Value: 4 * time.Second},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return a.runDemo(ctx, clockwork.NewRealClock(), demoOptions{
				ttl:  cmd.Duration("ttl"),
				hold: cmd.Duration("hold"),
				wait: cmd.Duration("wait"),
			})
		},
	}
}

// runDemo 依次运行两个场景：
//  1. TTL 内重复调用记忆化函数，只打印一次 "Create"
//  2. 写入条目后等待超过 TTL，读取返回 key not found
func (a *app) runDemo(ctx context.Context, clock clockwork.Clock, o demoOptions) error {
	if err := o.validate(); err != nil {
		return err
	}

	f, err := xmemo.Wrap1(func(_ context.Context, x int) (int, error) {
		fmt.Fprintf(a.out, " Create f(%d)\n", x)
		return x, nil
	},
		xmemo.WithName("f"),
		xmemo.WithCacheConfig(xlru.Config{MaxSize: 1024, TTL: o.ttl}),
		xmemo.WithCacheOptions(xlru.WithClock(clock)),
		xmemo.WithLogger(a.logger),
	)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.Call(ctx, 3); err != nil {
		return err
	}
	if err := sleep(ctx, clock, o.hold); err != nil {
		return err
	}
	v, err := f.Call(ctx, 3)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, "output: ", v)

	d, err := xlru.New[string, string](xlru.Config{MaxSize: 3, TTL: o.ttl}, xlru.WithClock(clock), xlru.WithLogger(a.logger))
	if err != nil {
		return err
	}
	defer d.Close()

	d.Set("1", "2")
	s, err := d.Get("1")
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, s)

	if err := sleep(ctx, clock, o.wait); err != nil {
		return err
	}
	_, err = d.Get("1")
	switch {
	case errors.Is(err, xlru.ErrKeyNotFound):
		fmt.Fprintf(a.out, "KeyNotFound: %v\n", err)
	case err == nil:
		fmt.Fprintln(a.out, "entry still present, wait is not longer than ttl")
	default:
		return err
	}

	a.logger.Debug("demo finished", "stats", d.Stats())
	return nil
}

// sleep 等待 d，ctx 取消时提前返回。
func sleep(ctx context.Context, clock clockwork.Clock, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := clock.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.Chan():
		return nil
	}
}
