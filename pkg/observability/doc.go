// Package observability 提供可观测性相关的子包。
//
// 子包列表：
//   - xlog: 基于 log/slog 的 Logger 构建器，支持 lumberjack 轮转
//   - xmetrics: 统一观测接口（指标、追踪），带 OpenTelemetry 实现
//
// 库代码只接收 *slog.Logger 与 xmetrics.Observer，不依赖具体实现。
package observability
