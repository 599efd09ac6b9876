package xlog

import (
	"context"
	"log/slog"
)

// Logger 日志点与库内部诊断共用的输出接口。
//
// 每个方法都要求 ctx：MDC handler 从 ctx 中读取当前诊断帧，
// 不传 ctx 就拿不到调用缩进与上下文变量。属性只接受 slog.Attr。
type Logger interface {
	// Enabled 日志点据此跳过模板渲染，与 Log 使用同一判定
	Enabled(ctx context.Context, level Level) bool

	// Log 按任意级别输出，TRACE 只能经由这里或 Trace
	Log(ctx context.Context, level Level, msg string, attrs ...slog.Attr)

	Trace(ctx context.Context, msg string, attrs ...slog.Attr)
	Debug(ctx context.Context, msg string, attrs ...slog.Attr)
	Info(ctx context.Context, msg string, attrs ...slog.Attr)
	Warn(ctx context.Context, msg string, attrs ...slog.Attr)
	Error(ctx context.Context, msg string, attrs ...slog.Attr)

	// With 派生 logger。派生实例与源实例共享级别，SetLevel 对两者同时生效。
	With(attrs ...slog.Attr) Logger
	WithGroup(name string) Logger
}

// Leveler 运行时调整输出门限
type Leveler interface {
	SetLevel(level Level)
	GetLevel() Level
}

// LoggerWithLevel Build 的返回类型
type LoggerWithLevel interface {
	Logger
	Leveler
}
