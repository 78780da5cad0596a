// xmemoctl 演示并压测 xlru 淘汰缓存与 xmemo 记忆化包装。
//
// 用法:
//
//	xmemoctl [全局选项] <命令> [命令参数]
//
// 全局选项:
//
//	-c, --config      配置文件路径（.yaml/.yml/.json），cache 段映射到 xlru.Config
//	--log-level       日志级别 (debug/info/warn/error)
//	--log-format      日志格式 (text/json)
//	--log-file        日志文件路径，设置后按大小轮转
//
// 命令:
//
//	demo    记忆化函数在 TTL 内只计算一次；条目过期后读取返回 key not found
//	soak    多 goroutine 并发读写共享缓存，结束后打印统计
//
// 退出码:
//
//	0: 成功
//	1: 执行失败
//	2: 参数或配置错误
//
// 示例:
//
//	xmemoctl demo
//	xmemoctl demo --ttl 300ms --hold 200ms --wait 400ms
//	xmemoctl -c cache.yaml soak --workers 16 --duration 10s
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

// 版本信息（可通过 -ldflags 注入）。
var (
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
)

func main() {
	os.Exit(run(os.Args))
}

func run(args []string) int {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a := newApp(os.Stdout)
	defer func() { _ = a.close() }()

	if err := a.command().Run(ctx, args); err != nil {
		var usageErr *usageError
		if errors.As(err, &usageErr) {
			fmt.Fprintf(os.Stderr, "参数错误: %v\n", usageErr)
			return 2
		}
		fmt.Fprintf(os.Stderr, "错误: %v\n", err)
		return 1
	}
	return 0
}
