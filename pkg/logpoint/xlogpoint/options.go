package xlogpoint

import (
	"time"

	"github.com/omeyang/xcall/pkg/convert/xconv"
	"github.com/omeyang/xcall/pkg/logpoint/xop"
	"github.com/omeyang/xcall/pkg/observability/xlog"
	"github.com/omeyang/xcall/pkg/observability/xmetrics"
)

type options struct {
	sinks     SinkFactory
	namer     xop.Namer
	converter *xconv.Registry
	observer  xmetrics.Observer
	variables []VariableSupplier
	logger    xlog.Logger
	now       func() time.Time
}

// Option Interceptor 配置选项
type Option func(*options)

// WithSinks 设置 sink 工厂，默认 NewSlogSinks(xlog.Default())
func WithSinks(f SinkFactory) Option {
	return func(o *options) {
		if f != nil {
			o.sinks = f
		}
	}
}

// WithNamer 设置参数命名协作者
func WithNamer(n xop.Namer) Option {
	return func(o *options) {
		o.namer = n
	}
}

// WithConverter 设置转换器注册表，默认 xconv.Default()
func WithConverter(r *xconv.Registry) Option {
	return func(o *options) {
		if r != nil {
			o.converter = r
		}
	}
}

// WithObserver 设置观测器，默认不观测
func WithObserver(obs xmetrics.Observer) Option {
	return func(o *options) {
		o.observer = obs
	}
}

// WithVariables 追加诊断上下文变量提供者，按追加顺序写入
func WithVariables(vs ...VariableSupplier) Option {
	return func(o *options) {
		for _, v := range vs {
			if v != nil {
				o.variables = append(o.variables, v)
			}
		}
	}
}

// WithLogger 设置内部诊断日志输出（如重名参数告警），默认 xlog.For("xlogpoint")
func WithLogger(l xlog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithClock 替换时间来源，影响 JSON 明细时间戳与重复限制窗口（用于测试）
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}
