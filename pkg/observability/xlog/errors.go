package xlog

import "errors"

var (
	// ErrInvalidLevel 表示无法识别的日志级别。
	ErrInvalidLevel = errors.New("xlog: unknown level")

	// ErrInvalidFormat 表示无法识别的输出格式。
	ErrInvalidFormat = errors.New("xlog: unknown format")

	// ErrInvalidRotation 表示轮转参数无效。
	ErrInvalidRotation = errors.New("xlog: invalid rotation config")
)
