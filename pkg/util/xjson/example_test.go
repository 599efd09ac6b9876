package xjson_test

import (
	"encoding/json"
	"fmt"

	"github.com/omeyang/xcall/pkg/util/xjson"
)

func ExamplePretty() {
	s, _ := xjson.Pretty(json.RawMessage(`{"event":"charge","amount":3,"result":"<nil>"}`))
	fmt.Println(s)
	// Output:
	// {
	//   "event": "charge",
	//   "amount": 3,
	//   "result": "<nil>"
	// }
}

func ExampleQuote() {
	fmt.Println(xjson.Quote("say \"hi\"\n"))
	// Output:
	// "say \"hi\"\n"
}
