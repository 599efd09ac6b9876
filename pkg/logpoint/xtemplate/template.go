package xtemplate

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/omeyang/xcall/pkg/context/xmdc"
	"github.com/omeyang/xcall/pkg/convert/xconv"
	"github.com/omeyang/xcall/pkg/logpoint/xop"
)

var (
	indexExpr = regexp.MustCompile(`^[+-]?[0-9]+$`)
	nameExpr  = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)*$`)
)

type refKind uint8

const (
	refParam refKind = iota
	refMDC
	refLiteral
)

// ref 模板中一个已解析的引用
type ref struct {
	kind  refKind
	index int    // refParam
	path  string // refParam 的属性路径
	key   string // refMDC
	text  string // refLiteral
}

// Template 编译后的消息模板，不可变，可并发渲染
type Template struct {
	text   string
	refs   []ref
	params []xop.Parameter
}

// Compile 编译描述符的消息模板
//
// d 应已经过 Normalize。
func Compile(d *xop.Descriptor) *Template {
	t := &Template{params: d.Params}
	if d.Message == "" {
		t.compileDefault(d.Operation.Name)
	} else {
		t.compileExplicit(d.Message)
	}
	return t
}

func (t *Template) compileDefault(name string) {
	var b strings.Builder
	b.WriteString(DefaultMessage(name))
	for _, p := range t.params {
		if p.DontLog || p.Throwable {
			continue
		}
		b.WriteString(" {}")
		t.refs = append(t.refs, ref{kind: refParam, index: p.Index})
	}
	t.text = b.String()
}

func (t *Template) compileExplicit(msg string) {
	byName := make(map[string]int, len(t.params))
	for _, p := range t.params {
		byName[p.Name] = p.Index // 同名时后声明者覆盖
	}

	var b strings.Builder
	b.Grow(len(msg))
	cursor := 0
	for {
		open := strings.IndexByte(msg, '{')
		if open < 0 {
			break
		}
		end := strings.IndexByte(msg[open+1:], '}')
		if end < 0 {
			break
		}
		b.WriteString(msg[:open])
		b.WriteString("{}")
		expr := msg[open+1 : open+1+end]
		msg = msg[open+end+2:]

		if expr == "" {
			t.refs = append(t.refs, t.indexRef(cursor, strconv.Itoa(cursor)))
			cursor++
			continue
		}
		t.refs = append(t.refs, t.resolve(strings.TrimSpace(expr), byName))
	}
	b.WriteString(msg)
	t.text = b.String()
}

func (t *Template) resolve(expr string, byName map[string]int) ref {
	switch {
	case indexExpr.MatchString(expr):
		i, err := strconv.Atoi(expr)
		if err != nil {
			return literal("invalid log parameter index: " + expr)
		}
		return t.indexRef(i, strconv.Itoa(i))
	case nameExpr.MatchString(expr):
		head, path, _ := strings.Cut(expr, ".")
		if i, ok := byName[head]; ok {
			return ref{kind: refParam, index: i, path: path}
		}
		if path != "" {
			return literal("invalid log parameter expression [" + path + "] for reference [" + head + "]")
		}
		return ref{kind: refMDC, key: head}
	default:
		return literal("invalid log parameter expression: " + expr)
	}
}

func (t *Template) indexRef(i int, shown string) ref {
	if i < 0 || i >= len(t.params) {
		return literal("invalid log parameter index: " + shown)
	}
	return ref{kind: refParam, index: i}
}

func literal(s string) ref {
	return ref{kind: refLiteral, text: s}
}

// Text 返回所有引用改写为 {} 后的模板文本
func (t *Template) Text() string {
	return t.text
}

// Placeholders 返回占位符数量
func (t *Template) Placeholders() int {
	return len(t.refs)
}

// Render 按占位符顺序返回参数值
//
// 参数值先按参数的 Expression 与模板中的属性路径求值，再经 conv 转换；
// 说明性字符串不经转换。conv 为 nil 时不做转换。
func (t *Template) Render(params []any, m *xmdc.Map, conv *xconv.Registry) []any {
	args := make([]any, len(t.refs))
	for i, r := range t.refs {
		switch r.kind {
		case refParam:
			var raw any
			if r.index < len(params) {
				raw = params[r.index]
			}
			args[i] = argument(t.params[r.index].Expression, r.path, raw, conv)
		case refMDC:
			if v, ok := m.Get(r.key); ok {
				args[i] = convert(conv, v)
			} else {
				args[i] = "unset mdc log parameter reference (and not a parameter name): " + r.key
			}
		default:
			args[i] = r.text
		}
	}
	return args
}

// Argument 返回参数 p 的可记录值：先按 p.Expression 求值，再经 conv 转换
func Argument(p xop.Parameter, raw any, conv *xconv.Registry) any {
	return argument(p.Expression, "", raw, conv)
}

func argument(expr, path string, raw any, conv *xconv.Registry) any {
	v, ok := evaluate(raw, joinPath(expr, path))
	if !ok {
		return v
	}
	return convert(conv, v)
}

func joinPath(a, b string) string {
	switch {
	case a == "":
		return b
	case b == "":
		return a
	default:
		return a + "." + b
	}
}

func convert(conv *xconv.Registry, v any) any {
	if conv == nil {
		return v
	}
	return conv.Convert(v)
}
