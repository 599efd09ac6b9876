package xlog_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/omeyang/xcall/pkg/observability/xlog"
)

func TestDefault_LazyInit(t *testing.T) {
	xlog.ResetDefault()
	t.Cleanup(xlog.ResetDefault)

	l := xlog.Default()
	if l == nil {
		t.Fatal("Default() = nil")
	}
	if l != xlog.Default() {
		t.Error("Default() should return the same instance")
	}
	if l.GetLevel() != xlog.LevelInfo {
		t.Errorf("default level = %v, want INFO", l.GetLevel())
	}
}

func TestSetDefault(t *testing.T) {
	xlog.ResetDefault()
	t.Cleanup(xlog.ResetDefault)

	var buf bytes.Buffer
	logger, cleanup, err := xlog.New().SetOutput(&buf).SetLevel(xlog.LevelDebug).Build()
	if err != nil {
		t.Fatal(err)
	}
	testCleanup(t, cleanup)

	xlog.SetDefault(logger)
	xlog.SetDefault(nil) // 忽略

	ctx := context.Background()
	xlog.Debug(ctx, "global debug")
	xlog.Info(ctx, "global info")
	xlog.Warn(ctx, "global warn")
	xlog.Error(ctx, "global error", xlog.Err(nil))

	out := buf.String()
	for _, want := range []string{"global debug", "global info", "global warn", "global error"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q: %s", want, out)
		}
	}
}

func TestFor_TracksDefault(t *testing.T) {
	xlog.ResetDefault()
	t.Cleanup(xlog.ResetDefault)

	var buf bytes.Buffer
	logger, cleanup, err := xlog.New().SetOutput(&buf).SetLevel(xlog.LevelTrace).Build()
	if err != nil {
		t.Fatal(err)
	}
	testCleanup(t, cleanup)

	l := xlog.For("xconv")
	xlog.SetDefault(logger)
	xlog.For("xconv").Warn(context.Background(), "duplicate converter")
	xlog.Trace(context.Background(), "global trace")

	out := buf.String()
	if !strings.Contains(out, "component=xconv") || !strings.Contains(out, "duplicate converter") {
		t.Errorf("output = %q", out)
	}
	if !strings.Contains(out, "level=TRACE") {
		t.Errorf("trace not rendered as TRACE: %q", out)
	}
	if l == nil {
		t.Error("For() = nil")
	}
}
