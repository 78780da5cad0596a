// Package util 提供缓存相关的工具子包。
//
// 子包列表：
//   - xlru: 同时受容量与 TTL 约束的泛型淘汰缓存，可选后台清理
//   - xmemo: 基于 xlru 的函数记忆化包装
package util
