package xtemplate

import (
	"fmt"
	"strings"
)

// Format 把 template 中的 {} 依次替换为 args
//
// 参数不足时保留 {}，多余的参数被忽略。\{} 输出字面的 {} 且不消耗参数。
func Format(template string, args ...any) string {
	if len(args) == 0 && !strings.Contains(template, `\{}`) {
		return template
	}

	var b strings.Builder
	b.Grow(len(template) + 16*len(args))
	next := 0
	for i := 0; i < len(template); i++ {
		c := template[i]
		switch {
		case c == '\\' && strings.HasPrefix(template[i+1:], "{}"):
			b.WriteString("{}")
			i += 2
		case c == '{' && i+1 < len(template) && template[i+1] == '}':
			if next < len(args) {
				fmt.Fprint(&b, args[next])
				next++
			} else {
				b.WriteString("{}")
			}
			i++
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}
