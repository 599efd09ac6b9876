package xlogpoint

import (
	"context"

	"github.com/omeyang/xcall/pkg/logpoint/xlevel"
	"github.com/omeyang/xcall/pkg/logpoint/xtemplate"
	"github.com/omeyang/xcall/pkg/observability/xlog"
)

// Sink 日志输出协作者，每个 logger 标识一个
type Sink interface {
	// Enabled 报告级别是否启用
	Enabled(ctx context.Context, level xlevel.Level) bool

	// Log 按 {} 模板输出
	Log(ctx context.Context, level xlevel.Level, template string, args ...any)

	// LogError 输出已渲染的消息与单独的错误
	LogError(ctx context.Context, level xlevel.Level, message string, err error)
}

// SinkFactory 按 logger 标识创建 Sink
type SinkFactory func(logger string) Sink

// 编译时接口检查
var (
	_ Sink           = (*slogSink)(nil)
	_ xlevel.Enabler = (Sink)(nil)
)

// NewSlogSinks 返回基于 xlog.Logger 的 SinkFactory
//
// 每个 sink 携带 logger 属性；消息在输出前用 xtemplate.Format 渲染。
func NewSlogSinks(l xlog.Logger) SinkFactory {
	return func(name string) Sink {
		return &slogSink{logger: l.With(xlog.LoggerName(name))}
	}
}

type slogSink struct {
	logger xlog.Logger
}

func (s *slogSink) Enabled(ctx context.Context, level xlevel.Level) bool {
	return s.logger.Enabled(ctx, xlog.Level(level.Slog()))
}

func (s *slogSink) Log(ctx context.Context, level xlevel.Level, template string, args ...any) {
	s.logger.Log(ctx, xlog.Level(level.Slog()), xtemplate.Format(template, args...))
}

func (s *slogSink) LogError(ctx context.Context, level xlevel.Level, message string, err error) {
	s.logger.Log(ctx, xlog.Level(level.Slog()), message, xlog.Err(err))
}
