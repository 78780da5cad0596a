package xlru

import "errors"

var (
	// ErrKeyNotFound 表示 key 不存在（从未写入、已删除、被淘汰或已过期）。
	ErrKeyNotFound = errors.New("xlru: key not found")

	// ErrInvalidSize 表示缓存大小配置无效。
	ErrInvalidSize = errors.New("xlru: size must be greater than 0")

	// ErrSizeExceedsMax 表示缓存大小超过上限 (16,777,216)。
	ErrSizeExceedsMax = errors.New("xlru: size must not exceed 16777216")

	// ErrInvalidTTL 表示 TTL 配置无效。
	ErrInvalidTTL = errors.New("xlru: TTL must not be negative")

	// ErrInvalidCleanupInterval 表示后台清理间隔配置无效。
	ErrInvalidCleanupInterval = errors.New("xlru: cleanup interval must not be negative")

	// ErrOnEvictedType 表示 WithOnEvicted 回调的键值类型与 Cache 不匹配。
	ErrOnEvictedType = errors.New("xlru: eviction callback type does not match cache")
)
