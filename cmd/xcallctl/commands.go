package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/omeyang/xcall/pkg/config/xconf"
	"github.com/omeyang/xcall/pkg/context/xmdc"
	"github.com/omeyang/xcall/pkg/convert/xconv"
	"github.com/omeyang/xcall/pkg/logpoint/xdetail"
	"github.com/omeyang/xcall/pkg/logpoint/xlevel"
	"github.com/omeyang/xcall/pkg/logpoint/xlogpoint"
	"github.com/omeyang/xcall/pkg/logpoint/xop"
	"github.com/omeyang/xcall/pkg/logpoint/xtemplate"
	"github.com/omeyang/xcall/pkg/observability/xlog"
	"github.com/omeyang/xcall/pkg/util/xjson"
)

// usageError 参数错误，退出码 2。
type usageError struct {
	msg string
}

func (e *usageError) Error() string { return e.msg }

// 创建所有子命令。
func createCommands() []*cli.Command {
	return []*cli.Command{
		createListCommand(),
		createDescribeCommand(),
		createRenderCommand(),
		createJSONCommand(),
		createSimulateCommand(),
	}
}

// newMDCFlag 预置诊断上下文条目，可重复。
func newMDCFlag() cli.Flag {
	return &cli.StringSliceFlag{
		Name:  "mdc",
		Usage: "预置诊断上下文条目 key=value（可重复）",
	}
}

func createListCommand() *cli.Command {
	return &cli.Command{
		Name:    "list",
		Aliases: []string{"ls"},
		Usage:   "列出全部操作及解析后的级别",
		Action: func(_ context.Context, cmd *cli.Command) error {
			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			return cmdList(cmd.Root().Writer, s)
		},
	}
}

func createDescribeCommand() *cli.Command {
	return &cli.Command{
		Name:      "describe",
		Aliases:   []string{"d"},
		Usage:     "查看操作的规范化描述符与消息模板",
		ArgsUsage: "<op>",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "json", Usage: "以 JSON 格式输出"},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			p, err := s.point(cmd.Args().First())
			if err != nil {
				return err
			}
			return cmdDescribe(cmd.Root().Writer, p, cmd.Bool("json"))
		},
	}
}

func createRenderCommand() *cli.Command {
	return &cli.Command{
		Name:      "render",
		Aliases:   []string{"r"},
		Usage:     "渲染调用消息",
		ArgsUsage: "<op> [args...]",
		Flags:     []cli.Flag{newMDCFlag()},
		Action: func(_ context.Context, cmd *cli.Command) error {
			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			p, err := s.point(cmd.Args().First())
			if err != nil {
				return err
			}
			m, err := parseMDC(cmd.StringSlice("mdc"))
			if err != nil {
				return err
			}
			return cmdRender(cmd.Root().Writer, p, parseArgs(cmd.Args().Tail()), m)
		},
	}
}

func createJSONCommand() *cli.Command {
	return &cli.Command{
		Name:      "json",
		Aliases:   []string{"j"},
		Usage:     "输出 JSON 详情（格式化）",
		ArgsUsage: "<op> [args...]",
		Flags: []cli.Flag{
			newMDCFlag(),
			&cli.StringFlag{
				Name:  "detail",
				Usage: "覆盖 JSON 类别（event,parameters,context,all），默认取描述符配置，未配置时为 all",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			p, err := s.point(cmd.Args().First())
			if err != nil {
				return err
			}
			m, err := parseMDC(cmd.StringSlice("mdc"))
			if err != nil {
				return err
			}
			detail := p.Descriptor().JSON
			if v := cmd.String("detail"); v != "" {
				if detail, err = xop.ParseJSONDetail(v); err != nil {
					return &usageError{msg: err.Error()}
				}
			}
			if detail == 0 {
				detail = xop.JSONAll
			}
			return cmdJSON(cmd.Root().Writer, p, detail, parseArgs(cmd.Args().Tail()), m, time.Now())
		},
	}
}

func createSimulateCommand() *cli.Command {
	return &cli.Command{
		Name:      "simulate",
		Aliases:   []string{"sim"},
		Usage:     "以真实日志管线模拟一次调用",
		ArgsUsage: "<op> [args...]",
		Flags: []cli.Flag{
			newMDCFlag(),
			&cli.StringFlag{Name: "format", Value: "text", Usage: "日志格式 (text/json)"},
			&cli.StringFlag{Name: "level", Value: "trace", Usage: "日志级别 (trace/debug/info/warn/error)"},
			&cli.StringFlag{Name: "return", Usage: "模拟的返回值（按 JSON 解析）"},
			&cli.StringFlag{Name: "fail", Usage: "模拟调用失败，值为错误消息"},
			&cli.BoolFlag{Name: "no-time", Usage: "不输出时间字段"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			path, strict, err := catalogFlags(cmd)
			if err != nil {
				return err
			}
			m, err := parseMDC(cmd.StringSlice("mdc"))
			if err != nil {
				return err
			}
			return cmdSimulate(ctx, cmd.Root().Writer, simulation{
				catalog: path,
				strict:  strict,
				op:      cmd.Args().First(),
				args:    parseArgs(cmd.Args().Tail()),
				mdc:     m,
				format:  cmd.String("format"),
				level:   cmd.String("level"),
				ret:     cmd.String("return"),
				fail:    cmd.String("fail"),
				noTime:  cmd.Bool("no-time"),
			})
		},
	}
}

// =============================================================================
// 目录会话
// =============================================================================

// session 一个已加载的目录与只用于构建日志点的 Interceptor。
type session struct {
	catalog *xconf.Catalog
	icpt    *xlogpoint.Interceptor
}

func catalogFlags(cmd *cli.Command) (string, bool, error) {
	path := cmd.String("catalog")
	if path == "" {
		return "", false, &usageError{msg: "需要通过 --catalog 指定目录文件"}
	}
	return path, cmd.Bool("strict"), nil
}

func openSession(cmd *cli.Command) (*session, error) {
	path, strict, err := catalogFlags(cmd)
	if err != nil {
		return nil, err
	}
	return loadSession(path, strict)
}

func loadSession(path string, strict bool, opts ...xlogpoint.Option) (*session, error) {
	var copts []xconf.Option
	if strict {
		copts = append(copts, xconf.WithStrict())
	}
	c, err := xconf.LoadFile(path, copts...)
	if err != nil {
		return nil, err
	}
	icpt, err := xlogpoint.New(c, opts...)
	if err != nil {
		return nil, err
	}
	return &session{catalog: c, icpt: icpt}, nil
}

// lookup 按操作键查找目录中的操作。
func (s *session) lookup(key string) (xop.Operation, error) {
	if key == "" {
		return xop.Operation{}, &usageError{msg: "需要指定操作键 <Type.Name>"}
	}
	for _, op := range s.catalog.Operations() {
		if op.Key() == key {
			return op, nil
		}
	}
	return xop.Operation{}, fmt.Errorf("%w: %s", xop.ErrUnknownOperation, key)
}

func (s *session) point(key string) (*xlogpoint.LogPoint, error) {
	op, err := s.lookup(key)
	if err != nil {
		return nil, err
	}
	return s.icpt.Point(op)
}

// parseArgs 把命令行实参按 JSON 解析，失败时保留原字符串。
func parseArgs(raw []string) []any {
	args := make([]any, len(raw))
	for i, s := range raw {
		var v any
		if err := json.Unmarshal([]byte(s), &v); err != nil {
			v = s
		}
		args[i] = v
	}
	return args
}

func parseMDC(pairs []string) (*xmdc.Map, error) {
	m := xmdc.New()
	for _, p := range pairs {
		k, v, ok := strings.Cut(p, "=")
		if !ok || k == "" {
			return nil, &usageError{msg: fmt.Sprintf("无效的 --mdc 条目 %q，应为 key=value", p)}
		}
		m.Set(k, v)
	}
	return m, nil
}

// =============================================================================
// 命令实现
// =============================================================================

func cmdList(w io.Writer, s *session) error {
	for _, op := range s.catalog.Operations() {
		p, err := s.icpt.Point(op)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\tlevel=%s\tthrow_level=%s\trepeat=%s\n",
			op.Key(), p.Level(), p.ThrowLevel(), p.Descriptor().Repeat)
	}
	return nil
}

// paramView describe 输出中的参数视图。
type paramView struct {
	Index      int    `json:"index"`
	Name       string `json:"name"`
	Context    string `json:"context,omitempty"`
	Expression string `json:"expression,omitempty"`
	DontLog    bool   `json:"dont_log,omitempty"`
	Throwable  bool   `json:"throwable,omitempty"`
}

// pointView describe 输出视图。
type pointView struct {
	Operation    string      `json:"operation"`
	Logger       string      `json:"logger"`
	Scope        []string    `json:"scope,omitempty"`
	Level        string      `json:"level"`
	ThrowLevel   string      `json:"throw_level"`
	Repeat       string      `json:"repeat"`
	JSON         string      `json:"json"`
	Returns      bool        `json:"returns"`
	Template     string      `json:"template"`
	Placeholders int         `json:"placeholders"`
	Params       []paramView `json:"params"`
}

func newPointView(p *xlogpoint.LogPoint) pointView {
	d := p.Descriptor()
	v := pointView{
		Operation:    d.Operation.Key(),
		Logger:       d.LoggerName(),
		Scope:        d.Scope.Chain(),
		Level:        p.Level().String(),
		ThrowLevel:   p.ThrowLevel().String(),
		Repeat:       d.Repeat.String(),
		JSON:         d.JSON.String(),
		Returns:      d.Returns,
		Template:     p.Template().Text(),
		Placeholders: p.Template().Placeholders(),
		Params:       make([]paramView, len(d.Params)),
	}
	for i, pr := range d.Params {
		v.Params[i] = paramView{
			Index:      pr.Index,
			Name:       pr.Name,
			Context:    pr.ContextKey,
			Expression: pr.Expression,
			DontLog:    pr.DontLog,
			Throwable:  pr.Throwable,
		}
	}
	return v
}

func cmdDescribe(w io.Writer, p *xlogpoint.LogPoint, asJSON bool) error {
	v := newPointView(p)
	if asJSON {
		s, err := xjson.Pretty(v)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, s)
		return nil
	}

	fmt.Fprintf(w, "operation:   %s\n", v.Operation)
	fmt.Fprintf(w, "logger:      %s\n", v.Logger)
	if len(v.Scope) > 0 {
		fmt.Fprintf(w, "scope:       %s\n", strings.Join(v.Scope, " -> "))
	}
	fmt.Fprintf(w, "level:       %s\n", v.Level)
	fmt.Fprintf(w, "throw_level: %s\n", v.ThrowLevel)
	fmt.Fprintf(w, "repeat:      %s\n", v.Repeat)
	fmt.Fprintf(w, "json:        %s\n", v.JSON)
	fmt.Fprintf(w, "returns:     %t\n", v.Returns)
	fmt.Fprintf(w, "template:    %s\n", v.Template)
	fmt.Fprintln(w, "params:")
	for _, pr := range v.Params {
		var attrs []string
		if pr.Context != "" {
			attrs = append(attrs, "context="+pr.Context)
		}
		if pr.Expression != "" {
			attrs = append(attrs, "expression="+pr.Expression)
		}
		if pr.DontLog {
			attrs = append(attrs, "dont_log")
		}
		if pr.Throwable {
			attrs = append(attrs, "throwable")
		}
		fmt.Fprintf(w, "  [%d] %s", pr.Index, pr.Name)
		if len(attrs) > 0 {
			fmt.Fprintf(w, " %s", strings.Join(attrs, " "))
		}
		fmt.Fprintln(w)
	}
	return nil
}

func cmdRender(w io.Writer, p *xlogpoint.LogPoint, args []any, m *xmdc.Map) error {
	t := p.Template()
	fmt.Fprintln(w, xtemplate.Format(t.Text(), t.Render(args, m, xconv.Default())...))
	return nil
}

func cmdJSON(w io.Writer, p *xlogpoint.LogPoint, detail xop.JSONDetail, args []any, m *xmdc.Map, now time.Time) error {
	d := p.Descriptor()
	raw := xdetail.Build(xdetail.Input{
		Detail:    detail,
		Time:      now,
		Event:     d.Operation.Name,
		Logger:    d.LoggerName(),
		Level:     xlevel.Effective(p.Level()),
		Params:    d.Params,
		Values:    args,
		Context:   m,
		Converter: xconv.Default(),
	})
	s, err := xjson.Pretty(json.RawMessage(raw))
	if err != nil {
		return err
	}
	fmt.Fprintln(w, s)
	return nil
}

// simulation simulate 命令的输入。
type simulation struct {
	catalog string
	strict  bool
	op      string
	args    []any
	mdc     *xmdc.Map
	format  string
	level   string
	ret     string
	fail    string
	noTime  bool
}

func cmdSimulate(ctx context.Context, w io.Writer, sim simulation) error {
	b := xlog.New().
		SetOutput(w).
		SetFormat(sim.format).
		SetLevelString(sim.level)
	if sim.noTime {
		b = b.SetReplaceAttr(dropTime)
	}
	logger, cleanup, err := b.Build()
	if err != nil {
		return &usageError{msg: err.Error()}
	}
	defer func() { _ = cleanup() }()

	s, err := loadSession(sim.catalog, sim.strict,
		xlogpoint.WithSinks(xlogpoint.NewSlogSinks(logger)),
		xlogpoint.WithLogger(logger),
		xlogpoint.WithVariables(xlogpoint.CallIDVariable()),
	)
	if err != nil {
		return err
	}
	op, err := s.lookup(sim.op)
	if err != nil {
		return err
	}

	ctx, err = xmdc.WithMap(ctx, sim.mdc)
	if err != nil {
		return err
	}

	var ret any
	if sim.ret != "" {
		ret = parseArgs([]string{sim.ret})[0]
	}
	simErr := errors.New(sim.fail)
	_, err = s.icpt.Intercept(ctx, xlogpoint.NewInvocation(op, sim.args,
		func(context.Context) (any, error) {
			if sim.fail != "" {
				return nil, simErr
			}
			return ret, nil
		}))
	// 模拟的失败已经记录到日志中，不作为命令错误
	if err != nil && !errors.Is(err, simErr) {
		return err
	}
	return nil
}

func dropTime(groups []string, a slog.Attr) slog.Attr {
	if len(groups) == 0 && a.Key == slog.TimeKey {
		return slog.Attr{}
	}
	return a
}
