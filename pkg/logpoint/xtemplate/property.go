package xtemplate

import (
	"reflect"
	"strings"
	"unicode"
	"unicode/utf8"

	lru "github.com/hashicorp/golang-lru/v2"
)

// PropertyReader 由领域类型实现，优先于反射访问器
type PropertyReader interface {
	// LogProperty 返回名为 name 的属性，不存在时 ok 为 false
	LogProperty(name string) (value any, ok bool)
}

// accessorCacheSize 访问器缓存容量，按 (类型, 段名) 计
const accessorCacheSize = 4096

type accessorKey struct {
	t   reflect.Type
	seg string
}

// accessor 从当前值取出一段属性
type accessor func(reflect.Value) (reflect.Value, bool)

// noAccessor 缓存"找不到访问器"的结果
func noAccessor(reflect.Value) (reflect.Value, bool) { return reflect.Value{}, false }

// 容量为正数，不会出错
var accessors, _ = lru.New[accessorKey, accessor](accessorCacheSize)

// Evaluate 沿点分路径对 root 求值
//
// 空路径返回 root 本身。任一段失败时返回 "can't get {segment}"。
func Evaluate(root any, path string) any {
	v, _ := evaluate(root, path)
	return v
}

// evaluate 返回求值结果以及是否成功；失败时结果为说明性字符串
func evaluate(root any, path string) (any, bool) {
	if path == "" {
		return root, true
	}
	cur := root
	for seg := range strings.SplitSeq(path, ".") {
		next, ok := property(cur, seg)
		if !ok {
			return "can't get " + seg, false
		}
		cur = next
	}
	return cur, true
}

// property 取 v 的一段属性
func property(v any, seg string) (out any, ok bool) {
	if v == nil || seg == "" {
		return nil, false
	}
	// 访问器内部的 panic（如 getter 自身出错）视为取值失败
	defer func() {
		if r := recover(); r != nil {
			out, ok = nil, false
		}
	}()

	if pr, isReader := v.(PropertyReader); isReader {
		if val, found := pr.LogProperty(seg); found {
			return val, true
		}
	}

	rv := reflect.ValueOf(v)
	key := accessorKey{t: rv.Type(), seg: seg}
	acc, cached := accessors.Get(key)
	if !cached {
		acc = lookupAccessor(rv.Type(), seg)
		accessors.Add(key, acc)
	}

	res, found := acc(rv)
	if !found || !res.CanInterface() {
		return nil, false
	}
	return res.Interface(), true
}

// capitalize 首字母大写
func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}

// lookupAccessor 依次查找 Name()、GetName()、导出字段、字符串键 map
func lookupAccessor(t reflect.Type, seg string) accessor {
	name := capitalize(seg)
	for _, m := range []string{name, "Get" + name} {
		if acc := methodAccessor(t, m); acc != nil {
			return acc
		}
	}

	base := t
	for base.Kind() == reflect.Pointer {
		base = base.Elem()
	}
	switch base.Kind() {
	case reflect.Struct:
		if f, ok := base.FieldByName(name); ok && f.IsExported() {
			return fieldAccessor(f.Index)
		}
	case reflect.Map:
		if base.Key().Kind() == reflect.String {
			return mapAccessor(seg)
		}
	}
	return noAccessor
}

// getter 判断方法是否为无参、至少一个返回值的 getter
func getter(m reflect.Method, receiverIncluded bool) bool {
	in := 0
	if receiverIncluded {
		in = 1
	}
	return m.Type.NumIn() == in && m.Type.NumOut() >= 1
}

func methodAccessor(t reflect.Type, name string) accessor {
	if m, ok := t.MethodByName(name); ok && getter(m, t.Kind() != reflect.Interface) {
		idx := m.Index
		return func(v reflect.Value) (reflect.Value, bool) {
			return callGetter(v.Method(idx))
		}
	}
	// 指针接收者方法：复制到新指针上调用
	if t.Kind() != reflect.Pointer && t.Kind() != reflect.Interface {
		pt := reflect.PointerTo(t)
		if m, ok := pt.MethodByName(name); ok && getter(m, true) {
			idx := m.Index
			return func(v reflect.Value) (reflect.Value, bool) {
				p := reflect.New(t)
				p.Elem().Set(v)
				return callGetter(p.Method(idx))
			}
		}
	}
	return nil
}

// callGetter 调用 getter；返回值末尾为非 nil error 时视为失败
func callGetter(fn reflect.Value) (reflect.Value, bool) {
	out := fn.Call(nil)
	if last := out[len(out)-1]; len(out) > 1 && last.Type().Implements(errorType) && !last.IsNil() {
		return reflect.Value{}, false
	}
	return unwrapInterface(out[0]), true
}

var errorType = reflect.TypeFor[error]()

func fieldAccessor(index []int) accessor {
	return func(v reflect.Value) (reflect.Value, bool) {
		for v.Kind() == reflect.Pointer {
			if v.IsNil() {
				return reflect.Value{}, false
			}
			v = v.Elem()
		}
		f, err := v.FieldByIndexErr(index)
		if err != nil {
			return reflect.Value{}, false
		}
		return unwrapInterface(f), true
	}
}

func mapAccessor(key string) accessor {
	return func(v reflect.Value) (reflect.Value, bool) {
		for v.Kind() == reflect.Pointer {
			if v.IsNil() {
				return reflect.Value{}, false
			}
			v = v.Elem()
		}
		val := v.MapIndex(reflect.ValueOf(key).Convert(v.Type().Key()))
		if !val.IsValid() {
			return reflect.Value{}, false
		}
		return unwrapInterface(val), true
	}
}

// unwrapInterface 把接口类型的 Value 展开为动态值；nil 接口保持原样
func unwrapInterface(v reflect.Value) reflect.Value {
	if v.Kind() == reflect.Interface && !v.IsNil() {
		return v.Elem()
	}
	return v
}
