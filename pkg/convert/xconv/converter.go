package xconv

import "reflect"

// Converter 把某些类型的值转换为可记录形式
type Converter interface {
	// Name 转换器名称，用于诊断输出
	Name() string

	// Targets 转换器负责的类型，可以是具体类型或接口类型
	Targets() []reflect.Type

	// Convert 执行转换
	Convert(v any) any
}

// 编译时接口检查
var _ Converter = (*funcConverter)(nil)

type funcConverter struct {
	name    string
	targets []reflect.Type
	fn      func(any) any
}

func (c *funcConverter) Name() string            { return c.name }
func (c *funcConverter) Targets() []reflect.Type { return c.targets }
func (c *funcConverter) Convert(v any) any       { return c.fn(v) }

// Func 创建类型化转换器，目标类型为 T
//
// T 可以是接口类型，此时对所有实现了 T 的值生效。
func Func[T any](name string, fn func(T) any) Converter {
	return &funcConverter{
		name:    name,
		targets: []reflect.Type{reflect.TypeFor[T]()},
		fn: func(v any) any {
			t, ok := v.(T)
			if !ok {
				return v
			}
			return fn(t)
		},
	}
}

// New 创建非类型化转换器，targets 为空时注册会失败
func New(name string, fn func(any) any, targets ...reflect.Type) Converter {
	return &funcConverter{name: name, targets: targets, fn: fn}
}
