package xmetrics

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
)

// CallInfo 被观测调用的身份
type CallInfo struct {
	Logger    string // 日志点的 logger 名称
	Operation string // 操作 key（Type.Name）
	Attrs     []attribute.KeyValue
}

// Outcome 调用结束时的结果
type Outcome struct {
	Err      error
	Panicked bool // 被包装调用 panic，Err 为其包装
	Emitted  bool // 调用消息被输出（级别启用且未被重复策略拦截）
}

// Status 由 Outcome 推导的调用状态，作为指标属性输出
type Status string

const (
	StatusOK    Status = "ok"
	StatusError Status = "error"
	StatusPanic Status = "panic"
)

func (o Outcome) Status() Status {
	switch {
	case o.Panicked:
		return StatusPanic
	case o.Err != nil:
		return StatusError
	default:
		return StatusOK
	}
}

// Span 一次调用的观测区间，End 可重复调用
type Span interface {
	End(Outcome)
}

// Observer 在日志点调用前后接收通知
type Observer interface {
	Start(ctx context.Context, info CallInfo) (context.Context, Span)
}

// Noop 不做任何观测
var Noop Observer = noop{}

type noop struct{}

func (noop) Start(ctx context.Context, _ CallInfo) (context.Context, Span) {
	if ctx == nil {
		ctx = context.Background()
	}
	return ctx, noopSpan{}
}

type noopSpan struct{}

func (noopSpan) End(Outcome) {}

// Start 以 obs 开始观测。obs 为 nil 时不观测；
// 返回的 ctx 与 Span 总是非 nil，自定义 Observer 返回 nil 时回退到入参 ctx 与空 Span。
func Start(ctx context.Context, obs Observer, info CallInfo) (context.Context, Span) {
	if ctx == nil {
		ctx = context.Background()
	}
	if obs == nil {
		return ctx, noopSpan{}
	}
	next, span := obs.Start(ctx, info)
	if next == nil {
		next = ctx
	}
	if span == nil {
		span = noopSpan{}
	}
	return next, span
}
