package xlru

import "time"

// Cleanup 执行一次清扫：先移除过期条目，再把条目数压到 MaxSize 以内。
//
// 返回距离下一个已知过期时刻的时长；过期清扫没有遇到未过期条目时
// （缓存为空、全部过期或 TTL 关闭）ok 为 false。
// Cleanup 不会失败。
func (c *Cache[K, V]) Cleanup() (next time.Duration, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cleanupLocked(c.clock.Now())
}

func (c *Cache[K, V]) cleanupLocked(now time.Time) (next time.Duration, ok bool) {
	// 过期清扫：写入顺序即过期顺序，遇到第一个未过期条目即停止
	for {
		key, at, found := c.expireAt.GetOldest()
		if !found || at.IsZero() {
			break
		}
		if !at.Before(now) {
			next, ok = at.Sub(now), true
			break
		}
		c.evictLocked(key, EvictExpired)
	}

	// 容量约束：从最久未访问端淘汰
	for len(c.values) > c.maxSize {
		key, _, found := c.accessAt.GetOldest()
		if !found {
			break
		}
		c.evictLocked(key, EvictCapacity)
	}
	return next, ok
}

func (c *Cache[K, V]) evictLocked(key K, reason EvictReason) {
	value, present := c.values[key]
	delete(c.values, key)
	c.expireAt.Remove(key)
	c.accessAt.Remove(key)
	if !present {
		return
	}
	switch reason {
	case EvictExpired:
		c.stats.expired.Add(1)
	case EvictCapacity:
		c.stats.evicted.Add(1)
	}
	if c.onEvicted != nil {
		c.onEvicted(key, value, reason)
	}
}
