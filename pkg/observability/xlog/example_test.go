package xlog_test

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"github.com/omeyang/xcall/pkg/context/xmdc"
	"github.com/omeyang/xcall/pkg/observability/xlog"
)

func Example() {
	var buf bytes.Buffer
	logger, cleanup, _ := xlog.New().
		SetOutput(&buf).
		SetLevel(xlog.LevelTrace).
		SetReplaceAttr(func(groups []string, a slog.Attr) slog.Attr {
			if len(groups) == 0 && a.Key == slog.TimeKey {
				return slog.Attr{}
			}
			return a
		}).
		Build()
	defer cleanup()

	ctx, frame := xmdc.Enter(context.Background())
	defer frame.Restore()
	frame.Put("order_id", "o-7")

	logger.With(xlog.LoggerName("shop.Cart")).Trace(ctx, "add A-1 2")

	fmt.Print(buf.String())
	// Output:
	// level=TRACE msg="add A-1 2" logger=shop.Cart order_id=o-7
}
