package xmdc

import "context"

// contextKey 包私有的 context key 类型
type contextKey string

const keyMap contextKey = "xmdc_map"

// WithMap 将 m 绑定到 ctx。
func WithMap(ctx context.Context, m *Map) (context.Context, error) {
	if ctx == nil {
		return nil, ErrNilContext
	}
	return context.WithValue(ctx, keyMap, m), nil
}

// FromContext 返回 ctx 绑定的 Map，未绑定或 ctx 为 nil 时返回 nil。
func FromContext(ctx context.Context) *Map {
	if ctx == nil {
		return nil
	}
	m, _ := ctx.Value(keyMap).(*Map)
	return m
}

// Enter 返回绑定了本次调用专属 Map 的 ctx，以及在其上开启的 Frame。
//
// 专属 Map 复制自 ctx 已绑定的 Map（未绑定时为空），调用方的 Map 从不被修改：
// 从同一个 ctx 并发发起的调用互不可见，嵌套调用继承外层当前的条目。
// nil ctx 按 context.Background() 处理。调用方必须 defer frame.Restore()。
func Enter(ctx context.Context) (context.Context, *Frame) {
	if ctx == nil {
		ctx = context.Background()
	}
	m := FromContext(ctx).Clone()
	return context.WithValue(ctx, keyMap, m), m.Push()
}
