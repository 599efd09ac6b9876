package xop

import (
	"fmt"
	"reflect"

	"github.com/omeyang/xcall/pkg/logpoint/xlevel"
	"github.com/omeyang/xcall/pkg/logpoint/xrepeat"
)

// Descriptor 一个被记录调用点的完整配置。
type Descriptor struct {
	Operation Operation

	// Message 显式消息模板；为空时由操作名派生
	Message string

	// Level 普通调用级别，DERIVED 表示沿 Scope 继承
	Level xlevel.Level
	// ThrowLevel 异常级别，DERIVED 表示沿 Scope 继承
	ThrowLevel xlevel.Level
	// Scope 声明作用域链（声明类型 → 外层）
	Scope *xlevel.Scope

	// Logger logger 标识；为空时使用 Operation.Type
	Logger string

	// JSON 要输出的 JSON 详情类别
	JSON JSONDetail

	// Repeat 重复输出限制策略
	Repeat xrepeat.Policy

	// Returns 操作是否有返回值（非 void）
	Returns bool

	Params []Parameter
}

// LoggerName 返回有效的 logger 标识。
func (d *Descriptor) LoggerName() string {
	if d.Logger != "" {
		return d.Logger
	}
	if d.Operation.Type != "" {
		return d.Operation.Type
	}
	return d.Operation.Name
}

// Normalize 校验并返回规范化后的副本，d 本身不被修改。
//
//   - 补全参数名（namer 可为 nil）与 Index
//   - 末尾参数的声明类型实现 error 时标记 Throwable，非末尾参数的 Throwable 被清除
//   - 重名参数通过 onDuplicate 报告（可为 nil），按名称查找时后声明者优先
func (d *Descriptor) Normalize(namer Namer, onDuplicate func(name string)) (*Descriptor, error) {
	if d.Operation.Name == "" {
		return nil, ErrEmptyOperation
	}

	out := *d
	out.Params = make([]Parameter, len(d.Params))
	seen := make(map[string]struct{}, len(d.Params))
	for i, p := range d.Params {
		if p.Index != 0 && p.Index != i {
			return nil, fmt.Errorf("%w: %s param %d has index %d", ErrParamIndex, d.Operation, i, p.Index)
		}
		p.Index = i
		p.Name = ParameterName(namer, d.Operation, i, p.Name)
		p.Throwable = i == len(d.Params)-1 && (p.Throwable || IsErrorType(p.Type))
		if _, dup := seen[p.Name]; dup && onDuplicate != nil {
			onDuplicate(p.Name)
		}
		seen[p.Name] = struct{}{}
		out.Params[i] = p
	}
	return &out, nil
}

// Trailing 返回末尾的 Throwable 参数，不存在时返回 nil。
func (d *Descriptor) Trailing() *Parameter {
	if n := len(d.Params); n > 0 && d.Params[n-1].Throwable {
		return &d.Params[n-1]
	}
	return nil
}

// ParamsOf 从函数类型推导参数列表（只填 Type 与 Index），便于结合 Namer 使用。
// fn 不是函数时返回 nil。
func ParamsOf(fn any) []Parameter {
	t := reflect.TypeOf(fn)
	if t == nil || t.Kind() != reflect.Func {
		return nil
	}
	params := make([]Parameter, t.NumIn())
	for i := range params {
		params[i] = Parameter{Index: i, Type: t.In(i)}
	}
	return params
}

// ReturnsValue 报告函数类型是否有除末尾 error 之外的返回值。
func ReturnsValue(fn any) bool {
	t := reflect.TypeOf(fn)
	if t == nil || t.Kind() != reflect.Func {
		return false
	}
	n := t.NumOut()
	if n > 0 && t.Out(n-1) == errorType {
		n--
	}
	return n > 0
}
