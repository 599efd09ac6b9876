package xlogpoint

import (
	"context"

	"github.com/google/uuid"

	"github.com/omeyang/xcall/pkg/context/xmdc"
	"github.com/omeyang/xcall/pkg/logpoint/xop"
	"github.com/omeyang/xcall/pkg/observability/xmetrics"
)

// 内置变量的诊断上下文键
const (
	KeyCallID     = "call_id"
	KeyTraceID    = "trace_id"
	KeySpanID     = "span_id"
	KeyTraceFlags = "trace_flags"
)

// VariableSupplier 为每次调用提供额外的诊断上下文变量
//
// 返回的条目在参数派生变量之后写入当前帧，调用结束时随帧一起恢复。
type VariableSupplier interface {
	Variables(ctx context.Context, d *xop.Descriptor) []xmdc.Entry
}

// VariableFunc 函数适配器
type VariableFunc func(ctx context.Context, d *xop.Descriptor) []xmdc.Entry

// Variables 实现 VariableSupplier
func (f VariableFunc) Variables(ctx context.Context, d *xop.Descriptor) []xmdc.Entry {
	return f(ctx, d)
}

// CallIDVariable 为每次调用生成一个随机 call_id（UUID v4）
func CallIDVariable() VariableSupplier {
	return VariableFunc(func(context.Context, *xop.Descriptor) []xmdc.Entry {
		return []xmdc.Entry{{Key: KeyCallID, Value: uuid.NewString()}}
	})
}

// TraceVariables 从 ctx 中的 OpenTelemetry span 提取 trace_id、span_id、trace_flags
//
// ctx 没有有效 span 时不提供任何变量。配置了 Observer 时读到的是本次调用自身的 span。
func TraceVariables() VariableSupplier {
	return VariableFunc(func(ctx context.Context, _ *xop.Descriptor) []xmdc.Entry {
		traceID, spanID, flags, ok := xmetrics.TraceIDs(ctx)
		if !ok {
			return nil
		}
		return []xmdc.Entry{
			{Key: KeyTraceID, Value: traceID},
			{Key: KeySpanID, Value: spanID},
			{Key: KeyTraceFlags, Value: flags},
		}
	})
}
