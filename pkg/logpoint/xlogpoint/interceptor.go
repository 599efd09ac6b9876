package xlogpoint

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/omeyang/xcall/pkg/convert/xconv"
	"github.com/omeyang/xcall/pkg/logpoint/xlevel"
	"github.com/omeyang/xcall/pkg/logpoint/xop"
	"github.com/omeyang/xcall/pkg/logpoint/xrepeat"
	"github.com/omeyang/xcall/pkg/logpoint/xtemplate"
	"github.com/omeyang/xcall/pkg/observability/xlog"
)

// Interceptor 日志点的构建、缓存与调用入口，并发安全
type Interceptor struct {
	discoverer xop.Discoverer
	opts       options

	points sync.Map // Operation.Key() → *LogPoint，不失效
	group  singleflight.Group
}

// New 创建 Interceptor
func New(d xop.Discoverer, opts ...Option) (*Interceptor, error) {
	if d == nil {
		return nil, ErrNilDiscoverer
	}
	o := options{now: time.Now}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if o.sinks == nil {
		o.sinks = NewSlogSinks(xlog.Default())
	}
	if o.converter == nil {
		o.converter = xconv.Default()
	}
	return &Interceptor{discoverer: d, opts: o}, nil
}

// Point 返回操作的日志点，首次调用时构建
//
// 并发的首次调用只会构建一次；构建失败不缓存，下次调用重试。
func (i *Interceptor) Point(op xop.Operation) (*LogPoint, error) {
	key := op.Key()
	if p, ok := i.points.Load(key); ok {
		return p.(*LogPoint), nil
	}

	v, err, _ := i.group.Do(key, func() (any, error) {
		if p, ok := i.points.Load(key); ok {
			return p, nil
		}
		p, err := i.build(op)
		if err != nil {
			return nil, err
		}
		i.points.Store(key, p)
		return p, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*LogPoint), nil
}

func (i *Interceptor) build(op xop.Operation) (*LogPoint, error) {
	d, err := i.discoverer.Describe(op)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrBuild, op, err)
	}
	if d == nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrBuild, op, ErrNilDescriptor)
	}

	n, err := d.Normalize(i.opts.namer, func(name string) {
		i.log().Warn(context.Background(), "duplicate parameter name",
			xlog.Operation(op.Key()), xlog.Param(name))
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrBuild, op, err)
	}

	repeat, err := xrepeat.New(n.Repeat, xrepeat.WithClock(i.opts.now))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrBuild, op, err)
	}

	return &LogPoint{
		desc:       n,
		level:      xlevel.ResolveLevel(n.Level, n.Scope),
		throwLevel: xlevel.ResolveThrowLevel(n.ThrowLevel, n.Scope),
		template:   xtemplate.Compile(n),
		repeat:     repeat,
		sink:       i.opts.sinks(n.LoggerName()),
	}, nil
}

func (i *Interceptor) log() xlog.Logger {
	if i.opts.logger != nil {
		return i.opts.logger
	}
	return xlog.For("xlogpoint")
}

// =============================================================================
// 调用入口
// =============================================================================

// Invocation 拦截协作者提供的一次调用视图
type Invocation interface {
	// Operation 被调用操作的标识
	Operation() xop.Operation
	// Args 实参，按声明顺序
	Args() []any
	// Proceed 执行真实调用
	Proceed(ctx context.Context) (any, error)
}

// NewInvocation 用函数构造 Invocation
func NewInvocation(op xop.Operation, args []any, proceed func(ctx context.Context) (any, error)) Invocation {
	return &funcInvocation{op: op, args: args, proceed: proceed}
}

type funcInvocation struct {
	op      xop.Operation
	args    []any
	proceed func(ctx context.Context) (any, error)
}

func (f *funcInvocation) Operation() xop.Operation                  { return f.op }
func (f *funcInvocation) Args() []any                               { return f.args }
func (f *funcInvocation) Proceed(ctx context.Context) (any, error) { return f.proceed(ctx) }

// Intercept 记录并执行一次调用
//
// 日志点构建失败时返回错误，不执行调用。被包装调用 panic 时记录失败、恢复上下文后重新 panic。
func (i *Interceptor) Intercept(ctx context.Context, inv Invocation) (any, error) {
	ctx, call, err := i.Begin(ctx, inv.Operation(), inv.Args())
	if err != nil {
		return nil, err
	}
	defer call.Done()
	return guard(ctx, call, inv.Proceed)
}

// Invoke 类型化的 Intercept
func Invoke[R any](ctx context.Context, i *Interceptor, op xop.Operation, args []any,
	fn func(ctx context.Context) (R, error)) (R, error) {
	var zero R
	ctx, call, err := i.Begin(ctx, op, args)
	if err != nil {
		return zero, err
	}
	defer call.Done()

	res, err := guard(ctx, call, func(ctx context.Context) (any, error) {
		return fn(ctx)
	})
	// 出错时同样交回被包装调用给出的部分结果
	r, _ := res.(R)
	return r, err
}

// Run 无返回值版本的 Invoke
func Run(ctx context.Context, i *Interceptor, op xop.Operation, args []any,
	fn func(ctx context.Context) error) error {
	_, err := Invoke(ctx, i, op, args, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, fn(ctx)
	})
	return err
}

// guard 执行 fn 并报告结果
func guard(ctx context.Context, call *Call, fn func(ctx context.Context) (any, error)) (any, error) {
	res, err := proceed(ctx, call, fn)
	if err != nil {
		call.Failure(err)
		return res, err
	}
	// 渲染返回值时转换器的 panic 不属于被包装调用，不记为失败
	call.Result(res)
	return res, nil
}

// proceed 只包住被包装调用本身：它的 panic 报告为失败后继续向上传播
func proceed(ctx context.Context, call *Call, fn func(ctx context.Context) (any, error)) (res any, err error) {
	defer func() {
		if r := recover(); r != nil {
			call.Failure(&PanicError{Value: r})
			panic(r)
		}
	}()
	return fn(ctx)
}
