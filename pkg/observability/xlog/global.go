package xlog

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync/atomic"
)

// =============================================================================
// 全局 Logger
//
// 未注入 Logger 时，转换器注册表与日志点拦截器的内部诊断
// （重复注册、重名参数等）写到这里。
// =============================================================================

type slot struct{ l LoggerWithLevel }

var global atomic.Pointer[slot]

// Default 返回全局 Logger，首次使用时按默认配置构建（stderr、INFO、text）。
//
// 并发的首次调用可能各自构建实例，只有 CAS 成功的那个被采用。
func Default() LoggerWithLevel {
	if s := global.Load(); s != nil {
		return s.l
	}
	s := &slot{l: buildDefault()}
	if global.CompareAndSwap(nil, s) {
		return s.l
	}
	return global.Load().l
}

func buildDefault() LoggerWithLevel {
	l, _, err := New().Build()
	if err == nil {
		return l
	}
	fmt.Fprintf(os.Stderr, "xlog: default logger: %v, falling back to plain text\n", err)
	return newLogger(slog.NewTextHandler(os.Stderr, nil), &core{level: new(slog.LevelVar)})
}

// SetDefault 替换全局 Logger，nil 被忽略
func SetDefault(l LoggerWithLevel) {
	if l != nil {
		global.Store(&slot{l: l})
	}
}

// ResetDefault 清除全局 Logger，下次 Default 重新构建。测试用。
func ResetDefault() { global.Store(nil) }

// For 返回带 component 属性的全局 Logger。
// 每次调用都读取当前全局实例，SetDefault 之后立即生效。
func For(component string) Logger {
	return Default().With(Component(component))
}

func logGlobal(ctx context.Context, level slog.Level, msg string, attrs []slog.Attr) {
	l := Default()
	if xl, ok := l.(*xlogger); ok {
		xl.emit(ctx, level, msg, attrs, 2)
		return
	}
	l.Log(ctx, Level(level), msg, attrs...)
}

// Trace 写全局 Logger
func Trace(ctx context.Context, msg string, attrs ...slog.Attr) {
	logGlobal(ctx, slog.Level(LevelTrace), msg, attrs)
}

// Debug 写全局 Logger
func Debug(ctx context.Context, msg string, attrs ...slog.Attr) {
	logGlobal(ctx, slog.LevelDebug, msg, attrs)
}

// Info 写全局 Logger
func Info(ctx context.Context, msg string, attrs ...slog.Attr) {
	logGlobal(ctx, slog.LevelInfo, msg, attrs)
}

// Warn 写全局 Logger
func Warn(ctx context.Context, msg string, attrs ...slog.Attr) {
	logGlobal(ctx, slog.LevelWarn, msg, attrs)
}

// Error 写全局 Logger
func Error(ctx context.Context, msg string, attrs ...slog.Attr) {
	logGlobal(ctx, slog.LevelError, msg, attrs)
}
