package xlru

import "sync/atomic"

// Stats 是缓存计数器的快照。
type Stats struct {
	Hits    uint64 // Get 命中次数
	Misses  uint64 // Get 返回 ErrKeyNotFound 的次数
	Sets    uint64 // Set 次数
	Deletes uint64 // Delete 实际删除的次数
	Expired uint64 // Cleanup 因过期移除的条目数
	Evicted uint64 // Cleanup 因容量淘汰的条目数
}

// HitRatio 返回命中率，没有任何 Get 时返回 0。
func (s Stats) HitRatio() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}

// counters 使用原子计数，Stats 读取时不需要持有 Cache 的锁。
type counters struct {
	hits    atomic.Uint64
	misses  atomic.Uint64
	sets    atomic.Uint64
	deletes atomic.Uint64
	expired atomic.Uint64
	evicted atomic.Uint64
}

// Stats 返回当前计数器快照。
func (c *Cache[K, V]) Stats() Stats {
	return Stats{
		Hits:    c.stats.hits.Load(),
		Misses:  c.stats.misses.Load(),
		Sets:    c.stats.sets.Load(),
		Deletes: c.stats.deletes.Load(),
		Expired: c.stats.expired.Load(),
		Evicted: c.stats.evicted.Load(),
	}
}
