package xmemo

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Kwargs 表示具名参数，编码时按名称排序。
type Kwargs map[string]any

// Key 返回 name 与 args 对应的缓存键。
//
// 每个参数编码为 "{len}:{%T=%#v}"，长度前缀保证任意字符串内容都不会
// 与相邻参数的边界混淆。
func Key(name string, args ...any) string {
	var b strings.Builder
	b.WriteString(name)
	b.WriteByte('#')
	for _, arg := range args {
		writeArg(&b, arg)
	}
	return b.String()
}

func writeArg(b *strings.Builder, arg any) {
	kw, ok := arg.(Kwargs)
	if !ok {
		writeChunk(b, fmt.Sprintf("%T=%#v", arg, arg))
		return
	}

	names := make([]string, 0, len(kw))
	for name := range kw {
		names = append(names, name)
	}
	slices.Sort(names)

	var inner strings.Builder
	for _, name := range names {
		writeChunk(&inner, name)
		writeArg(&inner, kw[name])
	}
	writeChunk(b, "xmemo.Kwargs{"+inner.String()+"}")
}

func writeChunk(b *strings.Builder, s string) {
	b.WriteString(strconv.Itoa(len(s)))
	b.WriteByte(':')
	b.WriteString(s)
}
