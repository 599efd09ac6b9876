package xdetail

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

type stackTracer interface {
	StackTrace() errors.StackTrace
}

// StackTrace 返回错误链中第一个携带栈信息的错误的栈帧列表，形如 "[f1, f2]"
//
// 每帧格式为 "函数名(文件名:行号)"。没有栈信息时返回 "[]"。
func StackTrace(err error) string {
	for e := err; e != nil; e = unwrap(e) {
		st, ok := e.(stackTracer)
		if !ok {
			continue
		}
		frames := st.StackTrace()
		parts := make([]string, len(frames))
		for i, f := range frames {
			parts[i] = fmt.Sprintf("%n(%s:%d)", f, f, f)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	}
	return "[]"
}

// unwrap 沿单一链展开；多错误包装取第一个
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
