package xmetrics

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// ErrInstrument 创建 OTel 指标失败
var ErrInstrument = errors.New("xmetrics: create instrument")

const (
	defaultInstrumentationName = "github.com/omeyang/xcall/xmetrics"

	MetricCalls      = "xcall.calls"          // 调用次数
	MetricDuration   = "xcall.call.duration"  // 调用耗时（秒）
	MetricSuppressed = "xcall.call.suppressed" // 被级别或重复策略抑制的调用消息
)

// 指标与 span 属性
const (
	AttrLogger    = attribute.Key("xcall.logger")
	AttrOperation = attribute.Key("xcall.operation")
	AttrStatus    = attribute.Key("xcall.status")
	AttrEmitted   = attribute.Key("xcall.emitted")
)

type otelConfig struct {
	name   string
	tracer trace.TracerProvider
	meter  metric.MeterProvider
}

// Option 配置 NewOTelObserver
type Option func(*otelConfig)

// WithInstrumentationName 空串忽略
func WithInstrumentationName(name string) Option {
	return func(c *otelConfig) {
		if name != "" {
			c.name = name
		}
	}
}

// WithTracerProvider 默认 otel.GetTracerProvider()
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(c *otelConfig) {
		if tp != nil {
			c.tracer = tp
		}
	}
}

// WithMeterProvider 默认 otel.GetMeterProvider()
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(c *otelConfig) {
		if mp != nil {
			c.meter = mp
		}
	}
}

// OTelObserver 为每次日志点调用开启一个 internal span，并记录调用次数、耗时与被抑制的调用消息。
type OTelObserver struct {
	tracer     trace.Tracer
	calls      metric.Int64Counter
	duration   metric.Float64Histogram
	suppressed metric.Int64Counter
}

var _ Observer = (*OTelObserver)(nil)

func NewOTelObserver(opts ...Option) (*OTelObserver, error) {
	c := &otelConfig{
		name:   defaultInstrumentationName,
		tracer: otel.GetTracerProvider(),
		meter:  otel.GetMeterProvider(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	m := c.meter.Meter(c.name)
	o := &OTelObserver{tracer: c.tracer.Tracer(c.name)}
	var err error
	if o.calls, err = m.Int64Counter(MetricCalls,
		metric.WithDescription("logged method calls"), metric.WithUnit("{call}")); err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrInstrument, MetricCalls, err)
	}
	if o.duration, err = m.Float64Histogram(MetricDuration,
		metric.WithDescription("logged method call duration"), metric.WithUnit("s")); err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrInstrument, MetricDuration, err)
	}
	if o.suppressed, err = m.Int64Counter(MetricSuppressed,
		metric.WithDescription("call messages not emitted"), metric.WithUnit("{call}")); err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrInstrument, MetricSuppressed, err)
	}
	return o, nil
}

// Start span 名为操作 key，缺省时为 "unknown"
func (o *OTelObserver) Start(ctx context.Context, info CallInfo) (context.Context, Span) {
	if ctx == nil {
		ctx = context.Background()
	}
	id := []attribute.KeyValue{
		AttrLogger.String(orUnknown(info.Logger)),
		AttrOperation.String(orUnknown(info.Operation)),
	}

	ctx, span := o.tracer.Start(ctx, orUnknown(info.Operation),
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(id...),
		trace.WithAttributes(info.Attrs...))

	return ctx, &otelSpan{o: o, span: span, ctx: ctx, id: id, start: time.Now()}
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}

type otelSpan struct {
	o     *OTelObserver
	span  trace.Span
	ctx   context.Context
	id    []attribute.KeyValue
	start time.Time
	once  sync.Once
}

func (s *otelSpan) End(out Outcome) {
	s.once.Do(func() { s.end(out) })
}

func (s *otelSpan) end(out Outcome) {
	status := out.Status()
	if out.Err != nil {
		s.span.RecordError(out.Err)
		s.span.SetStatus(codes.Error, out.Err.Error())
	} else {
		s.span.SetStatus(codes.Ok, "")
	}
	s.span.SetAttributes(AttrEmitted.Bool(out.Emitted))
	s.span.End()

	// 调用方 ctx 已取消时指标仍要记录
	ctx := context.WithoutCancel(s.ctx)
	attrs := metric.WithAttributes(append(s.id[:len(s.id):len(s.id)],
		AttrStatus.String(string(status)),
		AttrEmitted.Bool(out.Emitted))...)
	s.o.calls.Add(ctx, 1, attrs)
	s.o.duration.Record(ctx, time.Since(s.start).Seconds(), attrs)
	if !out.Emitted {
		s.o.suppressed.Add(ctx, 1, metric.WithAttributes(s.id...))
	}
}

// TraceIDs 返回 ctx 中有效 span 的 trace id、span id 与采样标记（两位十六进制）
func TraceIDs(ctx context.Context) (traceID, spanID, flags string, ok bool) {
	if ctx == nil {
		return "", "", "", false
	}
	sc := trace.SpanContextFromContext(ctx)
	if !sc.IsValid() {
		return "", "", "", false
	}
	return sc.TraceID().String(), sc.SpanID().String(), sc.TraceFlags().String(), true
}
