package xlogpoint

import (
	"context"
	"fmt"
	"sync"

	"github.com/omeyang/xcall/pkg/context/xmdc"
	"github.com/omeyang/xcall/pkg/logpoint/xdetail"
	"github.com/omeyang/xcall/pkg/logpoint/xlevel"
	"github.com/omeyang/xcall/pkg/logpoint/xop"
	"github.com/omeyang/xcall/pkg/logpoint/xtemplate"
	"github.com/omeyang/xcall/pkg/observability/xmetrics"
)

// 固定消息模板
const (
	ReturnTemplate  = "return {}"
	FailureTemplate = "failed with {}"
)

// Call 一次进行中的调用，只属于发起它的调用栈
type Call struct {
	in    *Interceptor
	point *LogPoint
	ctx   context.Context
	frame *xmdc.Frame
	span  xmetrics.Span

	// emit 级别启用且重复限制放行，同时约束调用消息与返回消息
	emit bool
	err  error
	once sync.Once
}

// Begin 开始一次调用：压入诊断上下文帧、写入变量并输出调用消息
//
// 返回的 ctx 绑定了本次调用的诊断上下文，应传给被包装的调用；
// 调用方必须 defer call.Done()。日志点构建失败时返回错误，此时没有需要清理的状态。
func (i *Interceptor) Begin(ctx context.Context, op xop.Operation, args []any) (context.Context, *Call, error) {
	p, err := i.Point(op)
	if err != nil {
		return ctx, nil, err
	}

	d := p.desc
	ctx, span := xmetrics.Start(ctx, i.opts.observer, xmetrics.CallInfo{
		Logger:    d.LoggerName(),
		Operation: d.Operation.Key(),
	})
	ctx, frame := xmdc.Enter(ctx)
	c := &Call{in: i, point: p, ctx: ctx, frame: frame, span: span}

	// 转换器 panic 时仍需恢复帧
	ok := false
	defer func() {
		if !ok {
			c.Done()
		}
	}()

	c.publishParams(args)
	for _, v := range i.opts.variables {
		for _, e := range v.Variables(ctx, d) {
			frame.Put(e.Key, e.Value)
		}
	}
	c.logCall(args)

	ok = true
	return ctx, c, nil
}

// publishParams 把配置了 ContextKey 的参数写入帧；值为 nil 时删除该键
func (c *Call) publishParams(args []any) {
	for idx, p := range c.point.desc.Params {
		if p.ContextKey == "" {
			continue
		}
		var raw any
		if idx < len(args) {
			raw = args[idx]
		}
		v := xtemplate.Argument(p, raw, c.in.opts.converter)
		if v == nil {
			c.frame.Remove(p.ContextKey)
			continue
		}
		c.frame.Put(p.ContextKey, fmt.Sprint(v))
	}
}

func (c *Call) logCall(args []any) {
	p := c.point
	if !xlevel.IsEnabled(c.ctx, p.sink, p.level) {
		return
	}
	c.frame.Indent()
	if !p.repeat.Allow() {
		return
	}
	c.emit = true

	d := p.desc
	level := xlevel.Effective(p.level)
	if d.JSON != 0 {
		c.frame.Put(xmdc.KeyJSON, xdetail.Build(xdetail.Input{
			Detail:    d.JSON,
			Time:      c.in.opts.now(),
			Event:     d.Operation.Name,
			Logger:    d.LoggerName(),
			Level:     level,
			Params:    d.Params,
			Values:    args,
			Context:   c.frame.Map(),
			Converter: c.in.opts.converter,
		}))
		defer c.frame.Remove(xmdc.KeyJSON)
	}

	values := p.template.Render(args, c.frame.Map(), c.in.opts.converter)
	if t := d.Trailing(); t != nil && t.Index < len(args) {
		if err, isErr := args[t.Index].(error); isErr && err != nil {
			p.sink.LogError(c.ctx, level, xtemplate.Format(p.template.Text(), values...), err)
			return
		}
	}
	p.sink.Log(c.ctx, level, p.template.Text(), values...)
}

// Context 返回绑定了本次调用诊断上下文的 ctx
func (c *Call) Context() context.Context {
	return c.ctx
}

// Emitted 报告调用消息是否已输出
func (c *Call) Emitted() bool {
	return c.emit
}

// Result 报告成功返回；操作有返回值且调用消息已输出时记录 "return {}"
func (c *Call) Result(v any) {
	p := c.point
	if !c.emit || !p.desc.Returns {
		return
	}
	p.sink.Log(c.ctx, xlevel.Effective(p.level), ReturnTemplate, c.in.opts.converter.Convert(v))
}

// Failure 报告失败；异常级别启用时记录 "failed with {}"，不受重复限制
func (c *Call) Failure(err error) {
	if err == nil {
		return
	}
	c.err = err
	p := c.point
	if !xlevel.IsEnabled(c.ctx, p.sink, p.throwLevel) {
		return
	}
	p.sink.Log(c.ctx, xlevel.Effective(p.throwLevel), FailureTemplate, ErrorChain(err))
}

// Done 恢复诊断上下文帧并结束观测跨度，可重复调用
func (c *Call) Done() {
	c.once.Do(func() {
		c.frame.Restore()
		c.span.End(xmetrics.Outcome{Err: c.err, Panicked: panicked(c.err), Emitted: c.emit})
	})
}
