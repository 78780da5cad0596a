// Package xmetrics 提供缓存组件使用的最小观测接口（metrics + tracing）。
//
// # 设计理念
//
// 组件代码只依赖 Observer/Span/Attr 接口；默认实现为 NoopObserver，
// 需要观测时注入基于 OpenTelemetry 的实现。
//
// # 使用示例
//
//	obs, _ := xmetrics.NewOTelObserver()
//	ctx, span := xmetrics.Start(ctx, obs, xmetrics.SpanOptions{
//		Component: "xmemo",
//		Operation: "fib",
//	})
//	defer span.End(xmetrics.Result{Err: err})
//
// # 指标命名
//
// 统一指标：
//   - xmemo.operation.total
//   - xmemo.operation.duration
//
// 统一属性：component / operation / status。
// Result.Attrs 中的 bool 属性（如 hit）同时作为指标维度，其余只写入 span。
package xmetrics
