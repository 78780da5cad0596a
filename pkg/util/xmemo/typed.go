package xmemo

import "context"

// Memo1 是单参数函数的类型安全包装。
type Memo1[A, R any] struct {
	memo *Memo[R]
}

// Wrap1 记忆化单参数函数。默认名称取 fn 的运行时符号名，
// 可以用 WithName 覆盖。其余选项与 [New] 相同。
func Wrap1[A, R any](fn func(ctx context.Context, a A) (R, error), opts ...Option) (*Memo1[A, R], error) {
	if fn == nil {
		return nil, ErrNilFunc
	}
	opts = append([]Option{WithName(funcName(fn))}, opts...)
	m, err := New[R](func(ctx context.Context, args ...any) (R, error) {
		a, _ := args[0].(A) // 接口类型的 nil 参数
		return fn(ctx, a)
	}, opts...)
	if err != nil {
		return nil, err
	}
	return &Memo1[A, R]{memo: m}, nil
}

// Call 以 a 调用函数。
func (m *Memo1[A, R]) Call(ctx context.Context, a A) (R, error) {
	return m.memo.Call(ctx, a)
}

// Memo 返回底层的 Memo。
func (m *Memo1[A, R]) Memo() *Memo[R] {
	return m.memo
}

// Close 关闭底层缓存。
func (m *Memo1[A, R]) Close() {
	m.memo.Close()
}
