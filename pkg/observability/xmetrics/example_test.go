package xmetrics_test

import (
	"context"
	"errors"
	"fmt"

	"github.com/omeyang/xcall/pkg/observability/xmetrics"
)

func ExampleOutcome_Status() {
	fmt.Println(xmetrics.Outcome{Emitted: true}.Status())
	fmt.Println(xmetrics.Outcome{Err: errors.New("declined")}.Status())
	fmt.Println(xmetrics.Outcome{Err: errors.New("panic: boom"), Panicked: true}.Status())
	// Output:
	// ok
	// error
	// panic
}

func ExampleStart() {
	var callErr error
	ctx, span := xmetrics.Start(context.Background(), nil, xmetrics.CallInfo{
		Logger:    "billing.Service",
		Operation: "billing.Service.Charge",
	})
	defer func() { span.End(xmetrics.Outcome{Err: callErr, Emitted: true}) }()

	callErr = errors.New("declined")
	fmt.Println(ctx != nil)
	// Output:
	// true
}
