package xdetail

import (
	"strings"
	"time"

	"github.com/omeyang/xcall/pkg/context/xmdc"
	"github.com/omeyang/xcall/pkg/convert/xconv"
	"github.com/omeyang/xcall/pkg/logpoint/xlevel"
	"github.com/omeyang/xcall/pkg/logpoint/xop"
	"github.com/omeyang/xcall/pkg/logpoint/xtemplate"
)

// 事件元数据键
const (
	KeyTimestamp = "timestamp"
	KeyEvent     = "event"
	KeyLogger    = "logger"
	KeyLevel     = "level"
)

// StackTraceSuffix error 参数附加键的后缀
const StackTraceSuffix = "-stacktrace"

// Input 构造明细所需的全部输入
type Input struct {
	// Detail 要输出的类别，为零时输出空对象
	Detail xop.JSONDetail

	// Time 事件时间，零值时取当前时间
	Time   time.Time
	Event  string
	Logger string
	Level  xlevel.Level

	// Params 与 Values 按位置对应
	Params []xop.Parameter
	Values []any

	Context   *xmdc.Map
	Converter *xconv.Registry
}

// Build 返回单行 JSON 对象
func Build(in Input) string {
	obj := newObject()

	if in.Detail.Has(xop.JSONEvent) {
		ts := in.Time
		if ts.IsZero() {
			ts = time.Now()
		}
		obj.put(KeyTimestamp, ts.UTC().Format(time.RFC3339Nano))
		obj.put(KeyEvent, in.Event)
		obj.put(KeyLogger, in.Logger)
		obj.put(KeyLevel, strings.ToLower(in.Level.String()))
	}

	if in.Detail.Has(xop.JSONContext) {
		for _, e := range in.Context.Snapshot() {
			if e.Key == xmdc.KeyJSON {
				continue
			}
			obj.put(e.Key, e.Value)
		}
	}

	if in.Detail.Has(xop.JSONParameters) {
		for i, p := range in.Params {
			if p.DontLog {
				continue
			}
			var raw any
			if i < len(in.Values) {
				raw = in.Values[i]
			}
			v := xtemplate.Argument(p, raw, in.Converter)
			obj.put(p.Name, v)
			if err, ok := v.(error); ok {
				obj.put(p.Name+StackTraceSuffix, StackTrace(err))
			}
		}
	}
	return obj.String()
}
