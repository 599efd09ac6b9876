package xlogpoint_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omeyang/xcall/pkg/logpoint/xlevel"
	"github.com/omeyang/xcall/pkg/logpoint/xlogpoint"
	"github.com/omeyang/xcall/pkg/logpoint/xop"
	"github.com/omeyang/xcall/pkg/observability/xlog"
)

func newJSONLogger(t *testing.T, level string) (xlog.Logger, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	logger, cleanup, err := xlog.New().
		SetOutput(&buf).
		SetFormat("json").
		SetLevelString(level).
		Build()
	require.NoError(t, err)
	t.Cleanup(func() { _ = cleanup() })
	return logger, &buf
}

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for line := range strings.SplitSeq(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var m map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &m))
		out = append(out, m)
	}
	return out
}

func TestSlogSink_Output(t *testing.T) {
	logger, buf := newJSONLogger(t, "trace")
	sink := xlogpoint.NewSlogSinks(logger)("shop.Cart")

	sink.Log(context.Background(), xlevel.LevelTrace, "add {} x{}", "A-1", 2)
	sink.LogError(context.Background(), xlevel.LevelError, "report 7", errors.New("disk full"))

	lines := decodeLines(t, buf)
	require.Len(t, lines, 2)
	assert.Equal(t, "add A-1 x2", lines[0]["msg"])
	assert.Equal(t, "TRACE", lines[0]["level"])
	assert.Equal(t, "shop.Cart", lines[0][xlog.KeyLogger])
	assert.Equal(t, "ERROR", lines[1]["level"])
	assert.Equal(t, "disk full", lines[1][xlog.KeyError])
}

func TestSlogSink_Enabled(t *testing.T) {
	logger, _ := newJSONLogger(t, "info")
	sink := xlogpoint.NewSlogSinks(logger)("x")

	assert.False(t, sink.Enabled(context.Background(), xlevel.LevelDebug))
	assert.False(t, sink.Enabled(context.Background(), xlevel.LevelTrace))
	assert.True(t, sink.Enabled(context.Background(), xlevel.LevelInfo))
	assert.True(t, sink.Enabled(context.Background(), xlevel.LevelError))
}

func TestSlogSink_EndToEnd(t *testing.T) {
	logger, buf := newJSONLogger(t, "debug")
	d := desc("checkout", xop.Parameter{Name: "order", ContextKey: "order_id"})
	d.JSON = xop.JSONParameters
	icpt, err := xlogpoint.New(xop.NewStatic(d), xlogpoint.WithSinks(xlogpoint.NewSlogSinks(logger)))
	require.NoError(t, err)

	require.NoError(t, xlogpoint.Run(context.Background(), icpt, op("checkout"), []any{"o-1"},
		func(context.Context) error { return nil }))

	lines := decodeLines(t, buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "checkout o-1", lines[0]["msg"])
	assert.Equal(t, "DEBUG", lines[0]["level"])
	assert.Equal(t, "o-1", lines[0]["order_id"])
	assert.Equal(t, "", lines[0]["indent"])
	assert.Equal(t, map[string]any{"order": "o-1"}, lines[0]["json"])
}
