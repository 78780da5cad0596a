// Package xlog 基于 log/slog 构建 Logger。
//
// # 创建 Logger
//
// 使用 Builder 模式（first-error-wins：遇到第一个配置错误后，后续 Set 操作被跳过）：
//
//	logger, cleanup, err := xlog.New().
//		SetLevelString("debug").
//		SetFormat("json").
//		SetRotation("/var/log/xmemo/app.log", 100, 5).
//		Build()
//	if err != nil {
//		return err
//	}
//	defer cleanup()
//
// 返回值是标准 *slog.Logger，库代码只依赖 *slog.Logger，不依赖本包。
//
// # 日志轮转
//
// [Builder.SetRotation] 使用 lumberjack 按大小轮转文件，cleanup 负责关闭文件。
//
// # 日志级别
//
// LevelDebug(-4)、LevelInfo(0)、LevelWarn(4)、LevelError(8)。
// Level 实现 encoding.TextMarshaler/TextUnmarshaler，可以直接从配置文件加载。
package xlog
