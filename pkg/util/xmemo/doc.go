// Package xmemo 为函数提供基于 xlru 的记忆化包装。
//
// # 概述
//
// Memo 把函数调用结果按参数缓存在 [xlru.Cache] 中，
// 同一组参数在 TTL 内再次调用时直接返回缓存值，不再执行函数。
//
//	fib, _ := xmemo.New(func(ctx context.Context, args ...any) (int, error) {
//		return compute(args[0].(int)), nil
//	}, xmemo.WithName("fib"))
//	defer fib.Close()
//
//	v, err := fib.Call(ctx, 10)
//
// 单参数函数可以使用 [Wrap1] 获得类型安全的调用形式。
//
// # 缓存键
//
// 键由函数名、"#" 和每个参数的编码依次拼接：
// 参数编码为 "%T" 与 "%#v" 的组合，并带长度前缀。
// 因此值相同但类型不同的参数（1 与 "1"、int 与 int64）、
// 含有分隔符的字符串都不会碰撞。
// 具名参数通过 [Kwargs] 传入，按名称排序后编码，与传入顺序无关。
//
// 参数应为可比较的值类型（数字、字符串、bool、结构体、切片等）。
// 指针按地址编码，不同指针即使指向相同内容也视为不同参数。
//
// # 错误处理
//
// 函数返回的错误原样返回给调用方，且不会被缓存，下次调用会重新执行。
//
// # 并发
//
// 函数在任何锁之外执行。默认不合并并发的相同未命中，
// 多个调用方可能同时执行函数，最后写入的结果生效。
// [WithSingleflight] 开启后使用 golang.org/x/sync/singleflight 合并，
// 并且强制缓存进入并发模式。
//
// 并发调用 Call 时缓存必须处于并发模式（Config.Concurrent 或
// Config.BackgroundCleanup），否则行为未定义。
//
// # 共享缓存
//
// [NewWithCache] 让多个 Memo 共享同一个缓存，
// 函数名不同的 Memo 键空间互不重叠。共享缓存的生命周期由调用方管理。
package xmemo
