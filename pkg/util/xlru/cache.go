package xlru

import (
	"log/slog"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/simplelru"
	"github.com/jonboulle/clockwork"

	"github.com/omeyang/xmemo/pkg/observability/xmetrics"
)

// Cache 是同时受容量和 TTL 约束的淘汰缓存。
// 必须通过 [New] 函数创建，零值不可用。
//
// 是否并发安全取决于 Config.Concurrent / Config.BackgroundCleanup，
// 见包文档。
type Cache[K comparable, V any] struct {
	mu sync.Locker

	values   map[K]V
	expireAt *simplelru.LRU[K, time.Time] // 最旧端 = 最早写入
	accessAt *simplelru.LRU[K, time.Time] // 最旧端 = 最久未访问

	maxSize    int
	ttl        time.Duration
	concurrent bool

	clock     clockwork.Clock
	logger    *slog.Logger
	observer  xmetrics.Observer
	onEvicted func(K, V, EvictReason)

	stats   counters
	janitor *janitor
}

// New 创建新的淘汰缓存。
// 配置无效时返回 ErrInvalidSize、ErrSizeExceedsMax、ErrInvalidTTL 或
// ErrInvalidCleanupInterval；回调类型不匹配时返回 ErrOnEvictedType。
//
// cfg.BackgroundCleanup 为 true 时启动 janitor goroutine，
// 调用方应在用完后调用 Close，或者放弃所有引用让 GC 回收后 janitor 自行退出。
func New[K comparable, V any](cfg Config, opts ...Option) (*Cache[K, V], error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}

	var onEvicted func(K, V, EvictReason)
	if o.onEvicted != nil {
		fn, ok := o.onEvicted.(func(K, V, EvictReason))
		if !ok {
			return nil, ErrOnEvictedType
		}
		onEvicted = fn
	}

	// 留出一个条目的余量：Set 在执行 Cleanup 之前允许瞬时超出 MaxSize 一个条目，
	// simplelru 自身的淘汰永远不会被触发。
	expireAt, err := simplelru.NewLRU[K, time.Time](cfg.MaxSize+1, nil)
	if err != nil {
		return nil, err
	}
	accessAt, err := simplelru.NewLRU[K, time.Time](cfg.MaxSize+1, nil)
	if err != nil {
		return nil, err
	}

	c := &Cache[K, V]{
		mu:         nopLocker{},
		values:     make(map[K]V),
		expireAt:   expireAt,
		accessAt:   accessAt,
		maxSize:    cfg.MaxSize,
		ttl:        cfg.TTL,
		concurrent: cfg.IsConcurrent(),
		clock:      o.clock,
		logger:     o.logger,
		observer:   o.observer,
		onEvicted:  onEvicted,
	}
	if c.concurrent {
		c.mu = &sync.Mutex{}
	}
	if cfg.BackgroundCleanup {
		c.janitor = startJanitor(c, cfg.cleanupInterval())
	}
	return c, nil
}

// Len 返回当前条目数。
// 返回值可能包含已过期但尚未被清扫的条目。
func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.values)
}

// Clear 无条件清空所有条目，不触发淘汰回调。
func (c *Cache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	clear(c.values)
	c.expireAt.Purge()
	c.accessAt.Purge()
}

// Contains 检查 key 是否存在，不检查过期，也不更新访问顺序。
func (c *Cache[K, V]) Contains(key K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.values[key]
	return ok
}

// Set 写入条目，随后执行一次 Cleanup。
//
// 已存在的 key 会先被删除再重新插入，因此它同时移到写入顺序和访问顺序的末尾，
// 过期时刻从本次写入重新计算。Cleanup 可能因此淘汰其他条目。
func (c *Cache[K, V]) Set(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clock.Now()
	c.deleteLocked(key)
	c.values[key] = value
	c.accessAt.Add(key, now)
	c.expireAt.Add(key, c.expiryAt(now))
	c.stats.sets.Add(1)
	c.cleanupLocked(now)
}

// Get 读取条目。
//
// key 不存在时返回 ErrKeyNotFound。存在时只刷新访问时刻（移到访问顺序末尾），
// 不改变过期时刻，然后执行一次 Cleanup。如果这次 Cleanup 因过期移除了该 key，
// 同样返回 ErrKeyNotFound。
func (c *Cache[K, V]) Get(key K) (value V, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.values[key]; !ok {
		c.stats.misses.Add(1)
		return value, ErrKeyNotFound
	}

	now := c.clock.Now()
	c.accessAt.Add(key, now)
	c.cleanupLocked(now)

	value, ok := c.values[key]
	if !ok {
		c.stats.misses.Add(1)
		return value, ErrKeyNotFound
	}
	c.stats.hits.Add(1)
	return value, nil
}

// Peek 读取条目但不更新访问顺序，不执行 Cleanup，也不计入命中/未命中统计。
// 已过期但尚未被清扫的条目视为不存在。
func (c *Cache[K, V]) Peek(key K) (value V, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	value, ok = c.values[key]
	if !ok {
		return value, false
	}
	if at, _ := c.expireAt.Peek(key); !at.IsZero() && at.Before(c.clock.Now()) {
		var zero V
		return zero, false
	}
	return value, true
}

// Delete 删除条目。返回 true 表示 key 存在并被删除；key 不存在时是空操作。
func (c *Cache[K, V]) Delete(key K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.deleteLocked(key) {
		return false
	}
	c.stats.deletes.Add(1)
	return true
}

// Keys 返回所有 key，从最久未访问到最近访问排列。
// 返回值可能包含已过期但尚未被清扫的 key。
func (c *Cache[K, V]) Keys() []K {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.accessAt.Keys()
}

// Close 停止后台清理 goroutine 并等待其退出。
// 该方法是幂等的；Close 后 Cache 仍然可用，只是不再有后台清理。
//
// 严禁在淘汰回调中调用 Close。
func (c *Cache[K, V]) Close() {
	if c.janitor == nil {
		return
	}
	c.janitor.halt()
	<-c.janitor.done
}

func (c *Cache[K, V]) expiryAt(now time.Time) time.Time {
	if c.ttl == NoExpiry {
		return time.Time{}
	}
	return now.Add(c.ttl)
}

// deleteLocked 从三个结构中同时移除 key，key 不存在时返回 false。
func (c *Cache[K, V]) deleteLocked(key K) bool {
	if _, ok := c.values[key]; !ok {
		return false
	}
	delete(c.values, key)
	c.expireAt.Remove(key)
	c.accessAt.Remove(key)
	return true
}

// nopLocker 用于非并发模式。
type nopLocker struct{}

func (nopLocker) Lock()   {}
func (nopLocker) Unlock() {}
