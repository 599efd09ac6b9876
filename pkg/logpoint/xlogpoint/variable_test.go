package xlogpoint_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/omeyang/xcall/pkg/context/xmdc"
	"github.com/omeyang/xcall/pkg/logpoint/xlogpoint"
	"github.com/omeyang/xcall/pkg/logpoint/xop"
	"github.com/omeyang/xcall/pkg/observability/xmetrics"
)

func TestCallIDVariable(t *testing.T) {
	rec := &recorder{}
	icpt := newInterceptor(t, rec, []*xop.Descriptor{desc("pay")},
		xlogpoint.WithVariables(xlogpoint.CallIDVariable(), nil))

	m := xmdc.New()
	ctx, err := xmdc.WithMap(context.Background(), m)
	require.NoError(t, err)

	for range 2 {
		require.NoError(t, xlogpoint.Run(ctx, icpt, op("pay"), nil, func(context.Context) error { return nil }))
	}

	recs := rec.all()
	require.Len(t, recs, 2)
	first, second := recs[0].mdc[xlogpoint.KeyCallID], recs[1].mdc[xlogpoint.KeyCallID]
	_, err = uuid.Parse(first)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
	_, leaked := m.Get(xlogpoint.KeyCallID)
	assert.False(t, leaked)
}

func TestTraceVariables_WithObserver(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })

	obs, err := xmetrics.NewOTelObserver(xmetrics.WithTracerProvider(tp), xmetrics.WithMeterProvider(mp))
	require.NoError(t, err)

	rec := &recorder{}
	icpt := newInterceptor(t, rec, []*xop.Descriptor{desc("ship")},
		xlogpoint.WithObserver(obs), xlogpoint.WithVariables(xlogpoint.TraceVariables()))

	require.NoError(t, xlogpoint.Run(context.Background(), icpt, op("ship"), nil,
		func(context.Context) error { return nil }))

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "shop.Cart.ship", spans[0].Name)

	recs := rec.all()
	require.Len(t, recs, 1)
	assert.Equal(t, spans[0].SpanContext.TraceID().String(), recs[0].mdc[xlogpoint.KeyTraceID])
	assert.Equal(t, spans[0].SpanContext.SpanID().String(), recs[0].mdc[xlogpoint.KeySpanID])
	assert.Equal(t, "01", recs[0].mdc[xlogpoint.KeyTraceFlags])
}

func TestTraceVariables_NoSpan(t *testing.T) {
	rec := &recorder{}
	icpt := newInterceptor(t, rec, []*xop.Descriptor{desc("ship")},
		xlogpoint.WithVariables(xlogpoint.TraceVariables()))

	require.NoError(t, xlogpoint.Run(context.Background(), icpt, op("ship"), nil,
		func(context.Context) error { return nil }))
	recs := rec.all()
	require.Len(t, recs, 1)
	assert.NotContains(t, recs[0].mdc, xlogpoint.KeyTraceID)
}
