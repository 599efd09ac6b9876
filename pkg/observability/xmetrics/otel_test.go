package xmetrics

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
)

// ============================================================================
// 测试辅助函数
// ============================================================================

func newTestObserver(t *testing.T) (*OTelObserver, *tracetest.InMemoryExporter, *sdkmetric.ManualReader) {
	t.Helper()
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })

	obs, err := NewOTelObserver(WithInstrumentationName("test"), WithTracerProvider(tp), WithMeterProvider(mp))
	require.NoError(t, err)
	return obs, exporter, reader
}

func attrValue(attrs []attribute.KeyValue, key attribute.Key) (attribute.Value, bool) {
	for _, kv := range attrs {
		if kv.Key == key {
			return kv.Value, true
		}
	}
	return attribute.Value{}, false
}

// counter 汇总某个 Int64 计数器的全部数据点，按 status 属性分组
func counter(t *testing.T, reader *sdkmetric.ManualReader, name string) map[string]int64 {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	got := map[string]int64{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != name {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			require.True(t, ok)
			for _, dp := range sum.DataPoints {
				status, _ := dp.Attributes.Value(AttrStatus)
				got[status.AsString()] += dp.Value
			}
		}
	}
	return got
}

// ============================================================================
// NewOTelObserver
// ============================================================================

func TestNewOTelObserver_IgnoresEmptyOptions(t *testing.T) {
	obs, err := NewOTelObserver(WithInstrumentationName(""), WithTracerProvider(nil), WithMeterProvider(nil), nil)
	require.NoError(t, err)
	require.NotNil(t, obs)
}

// ============================================================================
// Span
// ============================================================================

func TestOTelSpan_Success(t *testing.T) {
	obs, exporter, _ := newTestObserver(t)

	ctx, span := obs.Start(context.Background(), CallInfo{
		Logger:    "billing.Service",
		Operation: "billing.Service.Charge",
		Attrs:     []attribute.KeyValue{attribute.String("tenant", "t1")},
	})
	assert.True(t, trace.SpanContextFromContext(ctx).IsValid())
	span.End(Outcome{Emitted: true})

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	s := spans[0]
	assert.Equal(t, "billing.Service.Charge", s.Name)
	assert.Equal(t, trace.SpanKindInternal, s.SpanKind)
	assert.Equal(t, codes.Ok, s.Status.Code)

	v, ok := attrValue(s.Attributes, AttrLogger)
	require.True(t, ok)
	assert.Equal(t, "billing.Service", v.AsString())
	v, ok = attrValue(s.Attributes, AttrEmitted)
	require.True(t, ok)
	assert.True(t, v.AsBool())
	v, ok = attrValue(s.Attributes, "tenant")
	require.True(t, ok)
	assert.Equal(t, "t1", v.AsString())
}

func TestOTelSpan_Error(t *testing.T) {
	obs, exporter, _ := newTestObserver(t)

	_, span := obs.Start(context.Background(), CallInfo{})
	span.End(Outcome{Err: errors.New("declined")})

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "unknown", spans[0].Name)
	assert.Equal(t, codes.Error, spans[0].Status.Code)
	assert.Equal(t, "declined", spans[0].Status.Description)
	require.NotEmpty(t, spans[0].Events)
}

func TestOTelSpan_EndOnce(t *testing.T) {
	obs, exporter, reader := newTestObserver(t)

	_, span := obs.Start(context.Background(), CallInfo{Operation: "shop.Cart.add"})
	var wg sync.WaitGroup
	for range 8 {
		wg.Go(func() { span.End(Outcome{Emitted: true}) })
	}
	wg.Wait()

	assert.Len(t, exporter.GetSpans(), 1)
	assert.Equal(t, map[string]int64{"ok": 1}, counter(t, reader, MetricCalls))
}

// ============================================================================
// 指标
// ============================================================================

func TestOTelObserver_Metrics(t *testing.T) {
	obs, _, reader := newTestObserver(t)

	outcomes := []Outcome{
		{Emitted: true},
		{Emitted: false},
		{Err: errors.New("declined"), Emitted: true},
		{Err: errors.New("panic: boom"), Panicked: true},
	}
	for _, out := range outcomes {
		_, span := obs.Start(context.Background(), CallInfo{Logger: "shop.Cart", Operation: "shop.Cart.add"})
		span.End(out)
	}

	assert.Equal(t, map[string]int64{"ok": 2, "error": 1, "panic": 1}, counter(t, reader, MetricCalls))
	// 抑制计数不带 status 属性
	assert.Equal(t, map[string]int64{"": 2}, counter(t, reader, MetricSuppressed))

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	var names []string
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			names = append(names, m.Name)
		}
	}
	assert.ElementsMatch(t, []string{MetricCalls, MetricDuration, MetricSuppressed}, names)
}

func TestOTelObserver_CanceledContext(t *testing.T) {
	obs, _, reader := newTestObserver(t)

	ctx, cancel := context.WithCancel(context.Background())
	_, span := obs.Start(ctx, CallInfo{Operation: "shop.Cart.add"})
	cancel()
	span.End(Outcome{Emitted: true})

	assert.Equal(t, map[string]int64{"ok": 1}, counter(t, reader, MetricCalls))
}

// ============================================================================
// TraceIDs
// ============================================================================

func TestTraceIDs(t *testing.T) {
	_, _, _, ok := TraceIDs(context.Background())
	assert.False(t, ok)

	//nolint:staticcheck // nil ctx
	_, _, _, ok = TraceIDs(nil)
	assert.False(t, ok)

	obs, _, _ := newTestObserver(t)
	ctx, span := obs.Start(context.Background(), CallInfo{Operation: "shop.Cart.add"})
	defer span.End(Outcome{})

	traceID, spanID, flags, ok := TraceIDs(ctx)
	require.True(t, ok)
	sc := trace.SpanContextFromContext(ctx)
	assert.Equal(t, sc.TraceID().String(), traceID)
	assert.Equal(t, sc.SpanID().String(), spanID)
	assert.Equal(t, "01", flags)
}
