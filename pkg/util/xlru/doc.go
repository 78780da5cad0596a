// Package xlru 提供同时受容量（LRU）和时间（TTL）约束的本地淘汰缓存。
//
// # 核心特性
//
//   - 泛型支持：任意 comparable 键类型、任意值类型
//   - LRU 淘汰：条目数超过 MaxSize 时，从最久未访问的条目开始淘汰
//   - TTL 过期：条目在写入时刻 + TTL 后过期，Get 只刷新访问顺序，不延长 TTL
//   - 访问触发清理：每次 Set/Get 之后都会执行一次 Cleanup
//   - 后台清理：可选的 janitor goroutine 周期性调用 Cleanup
//   - 并发模式：可选的互斥锁保护，启用后台清理时强制开启
//
// # 数据结构
//
// Cache 内部维护三个结构，键集合始终一致：
//   - values：key → value
//   - expireAt：按写入顺序排列的 key → 过期时刻（重新写入会移到末尾）
//   - accessAt：按访问顺序排列的 key → 最近访问时刻（读写都会移到末尾）
//
// 两个有序结构基于 github.com/hashicorp/golang-lru/v2/simplelru，
// 仅作为有序 map 使用：Add 把 key 移到最新端，GetOldest 读取最旧端。
// 容量由 Cache 自己在 Cleanup 中执行，simplelru 的容量只留出一个条目的瞬时余量，
// 不会触发其内部淘汰。
//
// # Cleanup 算法
//
//  1. 过期清扫：按写入顺序遍历 expireAt，删除过期时刻严格早于 now 的条目，
//     遇到第一个未过期条目即停止，并记录它的过期时刻。
//  2. 容量约束：条目数超过 MaxSize 时反复删除 accessAt 最旧端的条目。
//  3. 返回距离下一个已知过期时刻的时长；未知时 ok 为 false。
//
// 设计决策: 过期清扫在第一个未过期条目处提前停止。TTL 对同一个 Cache 实例是固定的，
// 因此写入顺序与过期顺序一致，提前停止不会漏掉过期条目。
//
// # 并发
//
// Config.Concurrent 为 true（或 BackgroundCleanup 为 true）时，每个公开方法在整个
// 执行期间持有同一把 sync.Mutex。公开方法只调用 *Locked 内部方法，不互相调用，
// 所以不需要可重入锁。未开启并发模式时不做任何同步，跨 goroutine 使用属于未定义行为。
//
// # 后台清理
//
// janitor goroutine 只持有 Cache 的 weak.Pointer，不会阻止 Cache 被回收。
// Cache 被 GC 回收后 janitor 自动退出；也可以调用 Close 主动停止。
//
// # 错误
//
// 运行期只有一种错误：Get 对不存在的 key 返回 ErrKeyNotFound。
// 调用方无法区分 key 是从未写入、被删除、被 LRU 淘汰还是已过期。
//
// # 注意事项
//
//   - Len/Contains/Keys 可能包含已过期但尚未被清扫的条目
//   - Peek 不刷新访问顺序也不计入统计，已过期但未清扫的条目对它不可见
//   - 淘汰回调在锁内同步执行，严禁在回调中调用 Cache 自身方法（会死锁）
//   - Close 只停止 janitor，Cache 仍然可用
package xlru
