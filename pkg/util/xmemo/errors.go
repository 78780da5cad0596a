package xmemo

import "errors"

var (
	// ErrNilFunc 表示被包装的函数为 nil。
	ErrNilFunc = errors.New("xmemo: function is nil")

	// ErrNilCache 表示 NewWithCache 传入了 nil 缓存。
	ErrNilCache = errors.New("xmemo: cache is nil")

	errUnexpectedResult = errors.New("xmemo: unexpected result type from singleflight")
)
