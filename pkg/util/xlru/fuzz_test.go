package xlru

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
)

func FuzzCache(f *testing.F) {
	// 种子语料：覆盖不同操作类型
	f.Add("key1", 100, uint8(0))
	f.Add("", 0, uint8(1))
	f.Add("key2", -1, uint8(2))
	f.Add("key3", 42, uint8(3))
	f.Add("key4", 999, uint8(4))
	f.Add("key5", 0, uint8(5))
	f.Add("key6", 7, uint8(6))

	// 设计决策: 共享 Cache 实例，检验长序列操作后三个内部结构仍保持一致。
	fc := clockwork.NewFakeClock()
	cache, err := New[string, int](Config{MaxSize: 8, TTL: time.Second, Concurrent: true}, WithClock(fc))
	if err != nil {
		f.Fatalf("New failed: %v", err)
	}
	f.Cleanup(cache.Close)

	f.Fuzz(func(t *testing.T, key string, value int, op uint8) {
		switch op % 7 {
		case 0:
			cache.Set(key, value)
		case 1:
			_, _ = cache.Get(key)
		case 2:
			cache.Delete(key)
		case 3:
			cache.Contains(key)
		case 4:
			cache.Cleanup()
		case 5:
			fc.Advance(time.Duration(value%1000) * time.Millisecond)
		case 6:
			cache.Keys()
		}

		cache.mu.Lock()
		defer cache.mu.Unlock()
		if n := len(cache.values); n > cache.maxSize || n != cache.expireAt.Len() || n != cache.accessAt.Len() {
			t.Fatalf("structures out of sync: values=%d expireAt=%d accessAt=%d",
				n, cache.expireAt.Len(), cache.accessAt.Len())
		}
	})
}

func FuzzNew(f *testing.F) {
	f.Add(1, int64(time.Minute), int64(0))
	f.Add(0, int64(0), int64(0))
	f.Add(-1, int64(-time.Second), int64(-1))
	f.Add(maxSize+1, int64(time.Hour), int64(time.Second))

	f.Fuzz(func(t *testing.T, size int, ttlNanos, intervalNanos int64) {
		cache, err := New[string, int](Config{
			MaxSize:         size,
			TTL:             time.Duration(ttlNanos),
			CleanupInterval: time.Duration(intervalNanos),
		})
		if err != nil {
			return
		}
		// 基本操作不应 panic
		cache.Set("k", 1)
		_, _ = cache.Get("k")
		cache.Contains("k")
		cache.Len()
		cache.Keys()
		cache.Cleanup()
		cache.Delete("k")
		cache.Clear()
		cache.Close()
	})
}
