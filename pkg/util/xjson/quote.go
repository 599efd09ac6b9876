package xjson

import "strings"

// Quote 返回 s 的 JSON 字符串字面量（含两侧引号），只转义 \ " \r \n
func Quote(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	writeQuoted(&b, s)
	return b.String()
}

// AppendQuote 把 s 的 JSON 字符串字面量追加到 b
func AppendQuote(b *strings.Builder, s string) {
	writeQuoted(b, s)
}

func writeQuoted(b *strings.Builder, s string) {
	b.WriteByte('"')
	start := 0
	for i := 0; i < len(s); i++ {
		var esc string
		switch s[i] {
		case '\\':
			esc = `\\`
		case '"':
			esc = `\"`
		case '\r':
			esc = `\r`
		case '\n':
			esc = `\n`
		default:
			continue
		}
		b.WriteString(s[start:i])
		b.WriteString(esc)
		start = i + 1
	}
	b.WriteString(s[start:])
	b.WriteByte('"')
}
