package xmetrics

import (
	"context"
	"errors"
	"strconv"
)

// Kind 区分跨度发生在进程内还是指向外部依赖。
type Kind int

const (
	// KindInternal 是进程内操作，如缓存清扫、记忆化调用。
	KindInternal Kind = iota
	// KindClient 是对外部依赖的调用。
	KindClient
)

var kindNames = [...]string{
	KindInternal: "Internal",
	KindClient:   "Client",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// Status 是写入指标维度的结果状态。
type Status string

const (
	StatusOK    Status = "ok"
	StatusError Status = "error"
	// StatusCanceled 表示调用方的 ctx 在操作完成前被取消或超时，
	// 与操作本身失败分开统计。
	StatusCanceled Status = "canceled"
)

// Attr 是一个键值属性。Value 支持 string、bool、整数、float64 和 time.Duration，
// 其余类型按 fmt.Sprint 记录。
type Attr struct {
	Key   string
	Value any
}

// SpanOptions 描述一次观测。
type SpanOptions struct {
	Component string // 组件，如 "xlru"、"xmemo"
	Operation string // 操作名，xmemo 使用被包装函数的名称
	Kind      Kind
	Attrs     []Attr
}

// Result 描述观测结束时的结果。
// Status 为空时由 Err 推导：nil 为 ok，context.Canceled 或
// context.DeadlineExceeded 为 canceled，其余为 error。
type Result struct {
	Status Status
	Err    error
	Attrs  []Attr
}

func (r Result) status() Status {
	switch {
	case r.Status != "":
		return r.Status
	case r.Err == nil:
		return StatusOK
	case errors.Is(r.Err, context.Canceled), errors.Is(r.Err, context.DeadlineExceeded):
		return StatusCanceled
	default:
		return StatusError
	}
}

// Span 是进行中的观测，End 记录结果。
type Span interface {
	End(result Result)
}

// Observer 创建观测跨度。
type Observer interface {
	Start(ctx context.Context, opts SpanOptions) (context.Context, Span)
}

// NoopObserver 不记录任何内容，是各组件的默认 Observer。
type NoopObserver struct{}

func (NoopObserver) Start(ctx context.Context, _ SpanOptions) (context.Context, Span) {
	if ctx == nil {
		ctx = context.Background()
	}
	return ctx, NoopSpan{}
}

// NoopSpan 的 End 什么都不做。
type NoopSpan struct{}

func (NoopSpan) End(Result) {}

// Start 通过 observer 开始观测，返回的 ctx 与 Span 均不为 nil，
// 调用方可以无条件 defer span.End。
//
// 设计决策: nil observer、nil ctx 以及自定义 Observer 返回的 nil 值都在这里兜底，
// xlru 与 xmemo 不再各自判断。
func Start(ctx context.Context, observer Observer, opts SpanOptions) (context.Context, Span) {
	if ctx == nil {
		ctx = context.Background()
	}
	if observer == nil {
		return ctx, NoopSpan{}
	}
	spanCtx, span := observer.Start(ctx, opts)
	if spanCtx == nil {
		spanCtx = ctx
	}
	if span == nil {
		span = NoopSpan{}
	}
	return spanCtx, span
}
