package xdetail

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/omeyang/xcall/pkg/util/xjson"
)

// object 保持插入顺序的 JSON 对象，值为已编码的片段
type object struct {
	keys   []string
	values map[string]string
}

func newObject() *object {
	return &object{values: make(map[string]string)}
}

// put 写入键值；nil 被忽略，已存在的键保留原位置
func (o *object) put(key string, v any) {
	if v == nil {
		return
	}
	if _, ok := o.values[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.values[key] = encode(v)
}

func (o *object) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, k := range o.keys {
		if i > 0 {
			b.WriteByte(',')
		}
		xjson.AppendQuote(&b, k)
		b.WriteByte(':')
		b.WriteString(o.values[k])
	}
	b.WriteByte('}')
	return b.String()
}

// encode 把值编码为 JSON 片段。
// 实现了 error 或 fmt.Stringer 的值按 fmt.Sprint 的文本加引号，与消息模板渲染一致，
// 即使底层是数值（xlevel.Level、time.Duration）。
func encode(v any) string {
	switch v.(type) {
	case error, fmt.Stringer:
		return xjson.Quote(fmt.Sprint(v))
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Bool:
		return strconv.FormatBool(rv.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(rv.Uint(), 10)
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		if !math.IsInf(f, 0) && !math.IsNaN(f) {
			return strconv.FormatFloat(f, 'g', -1, rv.Type().Bits())
		}
	}
	return xjson.Quote(fmt.Sprint(v))
}
