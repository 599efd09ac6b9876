package xlog

import (
	"context"
	"log/slog"
	"runtime"
	"sync/atomic"
	"time"
)

var _ LoggerWithLevel = (*xlogger)(nil)

// core 同一次 Build 产生的 logger 及其 With/WithGroup 派生共享的状态
type core struct {
	level     *slog.LevelVar
	addSource bool
	onError   func(error)

	failures  atomic.Uint64 // Handle 失败次数，含 onError 回调 panic
	reporting atomic.Bool   // onError 执行中，防止回调内写日志再次触发
}

type xlogger struct {
	h slog.Handler
	c *core
}

func newLogger(h slog.Handler, c *core) *xlogger {
	return &xlogger{h: h, c: c}
}

// emit 组装 Record 并交给 handler。depth 为 emit 之上到用户代码的帧数。
//
//go:noinline
func (l *xlogger) emit(ctx context.Context, level slog.Level, msg string, attrs []slog.Attr, depth int) {
	if ctx == nil {
		ctx = context.Background()
	}
	if !l.h.Enabled(ctx, level) {
		return
	}

	var pc uintptr
	if l.c.addSource {
		var pcs [1]uintptr
		// Callers 与 emit 本身各占一帧
		runtime.Callers(2+depth, pcs[:])
		pc = pcs[0]
	}

	r := slog.NewRecord(time.Now(), level, msg, pc)
	r.AddAttrs(attrs...)
	if err := l.h.Handle(ctx, r); err != nil {
		l.c.fail(err)
	}
}

// fail 记录一次输出失败。日志失败不回传给调用方，onError 只做通知。
func (c *core) fail(err error) {
	c.failures.Add(1)
	if c.onError == nil || !c.reporting.CompareAndSwap(false, true) {
		return
	}
	defer c.reporting.Store(false)
	defer func() {
		if recover() != nil {
			c.failures.Add(1)
		}
	}()
	c.onError(err)
}

func (l *xlogger) Log(ctx context.Context, level Level, msg string, attrs ...slog.Attr) {
	l.emit(ctx, slog.Level(level), msg, attrs, 1)
}

func (l *xlogger) Trace(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.emit(ctx, slog.Level(LevelTrace), msg, attrs, 1)
}

func (l *xlogger) Debug(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.emit(ctx, slog.LevelDebug, msg, attrs, 1)
}

func (l *xlogger) Info(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.emit(ctx, slog.LevelInfo, msg, attrs, 1)
}

func (l *xlogger) Warn(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.emit(ctx, slog.LevelWarn, msg, attrs, 1)
}

func (l *xlogger) Error(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.emit(ctx, slog.LevelError, msg, attrs, 1)
}

func (l *xlogger) Enabled(ctx context.Context, level Level) bool {
	if ctx == nil {
		ctx = context.Background()
	}
	return l.h.Enabled(ctx, slog.Level(level))
}

// With 派生 logger，日志点 sink 用它绑定 logger 名称
func (l *xlogger) With(attrs ...slog.Attr) Logger {
	if len(attrs) == 0 {
		return l
	}
	return newLogger(l.h.WithAttrs(attrs), l.c)
}

func (l *xlogger) WithGroup(name string) Logger {
	if name == "" {
		return l
	}
	return newLogger(l.h.WithGroup(name), l.c)
}

func (l *xlogger) SetLevel(level Level) { l.c.level.Set(slog.Level(level)) }

func (l *xlogger) GetLevel() Level { return Level(l.c.level.Level()) }
