package xtemplate

import (
	"strings"
	"unicode"
)

// DefaultMessage 把驼峰操作名转换为空格分隔的小写短语
//
//	"CamelCaseMethod" → "camel case method"
//	"camelCaseMethod" → "camel case method"
func DefaultMessage(name string) string {
	var b strings.Builder
	b.Grow(len(name) + 8)
	for _, r := range name {
		if unicode.IsUpper(r) {
			b.WriteByte(' ')
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return strings.TrimSpace(b.String())
}
