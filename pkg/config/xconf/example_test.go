package xconf_test

import (
	"fmt"

	"github.com/omeyang/xcall/pkg/config/xconf"
	"github.com/omeyang/xcall/pkg/logpoint/xlevel"
	"github.com/omeyang/xcall/pkg/logpoint/xop"
)

func ExampleLoad() {
	catalog, err := xconf.Load([]byte(`
scopes:
  - name: orders
    level: info
operations:
  - type: orders
    name: Place
    params:
      - name: id
        context: order_id
`), xconf.FormatYAML)
	if err != nil {
		fmt.Println(err)
		return
	}

	d, _ := catalog.Describe(xop.Operation{Type: "orders", Name: "Place"})
	fmt.Println(xlevel.ResolveLevel(d.Level, d.Scope))
	fmt.Println(d.Params[0].ContextKey)
	// Output:
	// INFO
	// order_id
}
