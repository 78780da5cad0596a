// Package xconf 基于 koanf 加载 YAML/JSON 配置。
//
// # 设计理念
//
// xconf 定位为最小化配置加载器：负责文件/字节数据的加载和反序列化，
// 基础操作直接使用 Client() 返回的 koanf 实例。
//
// # 默认值
//
// Unmarshal 只覆盖配置中出现的字段，目标结构体中已有的值保留。
// 因此先填充默认值再 Unmarshal 即可实现默认值注入：
//
//	cacheCfg := xlru.DefaultConfig()
//	if err := cfg.Unmarshal("cache", &cacheCfg); err != nil {
//		return err
//	}
//
// # 类型转换
//
// 时长字段接受 "15m"、"500ms" 这样的字符串；实现了
// encoding.TextUnmarshaler 的类型（如 xlog.Level）直接从字符串解析。
// 默认允许弱类型转换（"8080" 可以转为 int）。
// [WithStrict] 开启后，配置中出现目标结构体没有的键会返回错误。
//
// # 支持的格式
//
//   - YAML：.yaml, .yml
//   - JSON：.json
//
// 不支持文件监视与热重载：缓存 TTL 等参数在构建时固定。
package xconf
