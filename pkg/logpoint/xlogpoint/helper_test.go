package xlogpoint_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/omeyang/xcall/pkg/context/xmdc"
	"github.com/omeyang/xcall/pkg/convert/xconv"
	"github.com/omeyang/xcall/pkg/logpoint/xlevel"
	"github.com/omeyang/xcall/pkg/logpoint/xlogpoint"
	"github.com/omeyang/xcall/pkg/logpoint/xop"
	"github.com/omeyang/xcall/pkg/logpoint/xtemplate"
)

// record 一条被 sink 接收的日志
type record struct {
	logger string
	level  xlevel.Level
	msg    string
	err    error
	mdc    map[string]string
}

// recorder 记录所有 sink 输出，enabled 为 nil 时全部启用
type recorder struct {
	mu      sync.Mutex
	enabled func(xlevel.Level) bool
	records []record
}

func (r *recorder) sinks() xlogpoint.SinkFactory {
	return func(name string) xlogpoint.Sink {
		return &recSink{r: r, name: name}
	}
}

func (r *recorder) all() []record {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]record(nil), r.records...)
}

func (r *recorder) messages() []string {
	var out []string
	for _, rec := range r.all() {
		out = append(out, rec.msg)
	}
	return out
}

type recSink struct {
	r    *recorder
	name string
}

func (s *recSink) Enabled(_ context.Context, l xlevel.Level) bool {
	return s.r.enabled == nil || s.r.enabled(l)
}

func (s *recSink) Log(ctx context.Context, l xlevel.Level, template string, args ...any) {
	s.add(ctx, l, xtemplate.Format(template, args...), nil)
}

func (s *recSink) LogError(ctx context.Context, l xlevel.Level, message string, err error) {
	s.add(ctx, l, message, err)
}

func (s *recSink) add(ctx context.Context, l xlevel.Level, msg string, err error) {
	snap := make(map[string]string)
	for _, e := range xmdc.FromContext(ctx).Snapshot() {
		snap[e.Key] = e.Value
	}
	s.r.mu.Lock()
	s.r.records = append(s.r.records, record{logger: s.name, level: l, msg: msg, err: err, mdc: snap})
	s.r.mu.Unlock()
}

func newInterceptor(t *testing.T, rec *recorder, descs []*xop.Descriptor, opts ...xlogpoint.Option) *xlogpoint.Interceptor {
	t.Helper()
	reg, err := xconv.NewRegistry()
	require.NoError(t, err)
	opts = append([]xlogpoint.Option{
		xlogpoint.WithSinks(rec.sinks()),
		xlogpoint.WithConverter(reg),
	}, opts...)
	icpt, err := xlogpoint.New(xop.NewStatic(descs...), opts...)
	require.NoError(t, err)
	return icpt
}

func op(name string) xop.Operation {
	return xop.Operation{Type: "shop.Cart", Name: name}
}

func desc(name string, params ...xop.Parameter) *xop.Descriptor {
	return &xop.Descriptor{Operation: op(name), Params: params}
}
