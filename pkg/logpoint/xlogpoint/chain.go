package xlogpoint

import (
	"reflect"
	"strings"
)

// ErrorChain 把错误链渲染为 "TypeName(message) -> TypeName(message)"
//
// TypeName 为去掉包名与指针的类型名；message 为该层自身的消息，
// 即去掉末尾下一层消息后的部分，为空时省略括号。多错误包装只沿第一个展开。
func ErrorChain(err error) string {
	var b strings.Builder
	for e := err; e != nil; {
		next := unwrap(e)
		if b.Len() > 0 {
			b.WriteString(" -> ")
		}
		b.WriteString(typeName(e))
		if msg := ownMessage(e, next); msg != "" {
			b.WriteByte('(')
			b.WriteString(msg)
			b.WriteByte(')')
		}
		e = next
	}
	return b.String()
}

func typeName(v any) string {
	t := reflect.TypeOf(v)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if name := t.Name(); name != "" {
		return name
	}
	return t.String()
}

// ownMessage 去掉包装消息中重复的下层消息
func ownMessage(e, next error) string {
	msg := e.Error()
	if next == nil {
		return msg
	}
	inner := next.Error()
	if inner != "" && strings.HasSuffix(msg, inner) {
		msg = strings.TrimRight(strings.TrimSuffix(msg, inner), ": ")
	}
	return msg
}

func unwrap(err error) error {
	switch u := err.(type) {
	case interface{ Unwrap() error }:
		return u.Unwrap()
	case interface{ Unwrap() []error }:
		if errs := u.Unwrap(); len(errs) > 0 {
			return errs[0]
		}
	}
	return nil
}
