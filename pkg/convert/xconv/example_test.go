package xconv_test

import (
	"fmt"

	"github.com/omeyang/xcall/pkg/convert/xconv"
)

type Account struct {
	Base
	Owner string
}

func ExampleRegistry_Convert() {
	reg, _ := xconv.NewRegistry()
	_ = reg.Register(xconv.Func("base", func(b Base) any { return fmt.Sprintf("#%d", b.ID) }))

	fmt.Println(reg.Convert(&Account{Base: Base{ID: 12}, Owner: "ann"}))
	fmt.Println(reg.Convert("untouched"))
	// Output:
	// #12
	// untouched
}
