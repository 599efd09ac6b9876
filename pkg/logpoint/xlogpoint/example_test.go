package xlogpoint_test

import (
	"context"
	"errors"
	"fmt"

	"github.com/omeyang/xcall/pkg/logpoint/xlevel"
	"github.com/omeyang/xcall/pkg/logpoint/xlogpoint"
	"github.com/omeyang/xcall/pkg/logpoint/xop"
	"github.com/omeyang/xcall/pkg/logpoint/xtemplate"
)

type printSink struct{}

func (printSink) Enabled(context.Context, xlevel.Level) bool { return true }

func (printSink) Log(_ context.Context, l xlevel.Level, template string, args ...any) {
	fmt.Println(l, xtemplate.Format(template, args...))
}

func (printSink) LogError(_ context.Context, l xlevel.Level, message string, err error) {
	fmt.Println(l, message, err)
}

func ExampleInvoke() {
	discoverer := xop.NewStatic(&xop.Descriptor{
		Operation: xop.Operation{Type: "shop.Cart", Name: "addItem"},
		Message:   "add {qty} x {sku}",
		Returns:   true,
		Params:    []xop.Parameter{{Name: "sku"}, {Name: "qty"}},
	})
	icpt, err := xlogpoint.New(discoverer,
		xlogpoint.WithSinks(func(string) xlogpoint.Sink { return printSink{} }))
	if err != nil {
		fmt.Println(err)
		return
	}

	op := xop.Operation{Type: "shop.Cart", Name: "addItem"}
	total, _ := xlogpoint.Invoke(context.Background(), icpt, op, []any{"A-1", 2},
		func(context.Context) (int, error) { return 3, nil })
	fmt.Println("total:", total)

	_, err = xlogpoint.Invoke(context.Background(), icpt, op, []any{"B-2", 1},
		func(context.Context) (int, error) { return 0, fmt.Errorf("reserve: %w", errors.New("out of stock")) })
	fmt.Println("err:", err)

	// Output:
	// DEBUG add 2 x A-1
	// DEBUG return 3
	// total: 3
	// DEBUG add 1 x B-2
	// ERROR failed with wrapError(reserve) -> errorString(out of stock)
	// err: reserve: out of stock
}

func ExampleErrorChain() {
	err := fmt.Errorf("open config: %w", errors.New("permission denied"))
	fmt.Println(xlogpoint.ErrorChain(err))
	// Output:
	// wrapError(open config) -> errorString(permission denied)
}
