package xlevel

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// Level 日志点级别。
//
// 零值为 [LevelDerived]，因此未显式配置的描述符自然进入继承解析。
type Level int

// 级别常量。
const (
	LevelDerived Level = iota
	LevelOff
	LevelError
	LevelWarn
	LevelInfo
	LevelDebug
	LevelTrace
	LevelAll
)

// 基线级别。
const (
	// DefaultLevel 普通调用在整条作用域链都未声明时使用的级别
	DefaultLevel = LevelDebug

	// DefaultThrowLevel 异常在整条作用域链都未声明时使用的级别
	DefaultThrowLevel = LevelError
)

// SlogLevelTrace 比 slog.LevelDebug 更详细的级别，slog 没有内置 TRACE。
const SlogLevelTrace = slog.Level(-8)

var levelNames = [...]string{
	LevelDerived: "DERIVED",
	LevelOff:     "OFF",
	LevelError:   "ERROR",
	LevelWarn:    "WARN",
	LevelInfo:    "INFO",
	LevelDebug:   "DEBUG",
	LevelTrace:   "TRACE",
	LevelAll:     "ALL",
}

// String 返回级别的大写名称，未知值返回 "Level(n)"。
func (l Level) String() string {
	if l >= 0 && int(l) < len(levelNames) {
		return levelNames[l]
	}
	return fmt.Sprintf("Level(%d)", int(l))
}

// IsValid 报告 l 是否为已定义的级别。
func (l Level) IsValid() bool {
	return l >= LevelDerived && l <= LevelAll
}

// MarshalText 实现 encoding.TextMarshaler 接口
func (l Level) MarshalText() ([]byte, error) {
	if !l.IsValid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownLevel, int(l))
	}
	return []byte(l.String()), nil
}

// UnmarshalText 实现 encoding.TextUnmarshaler 接口
//
// 空字符串解析为 [LevelDerived]，配置中省略级别即表示继承。
func (l *Level) UnmarshalText(data []byte) error {
	parsed, err := ParseLevel(string(data))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// ParseLevel 解析字符串为级别（大小写不敏感，自动 TrimSpace）。
//
// 支持 derived/_derived_/空串、off、error、warn/warning、info、debug、trace、all。
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "derived", "_derived_":
		return LevelDerived, nil
	case "off":
		return LevelOff, nil
	case "error":
		return LevelError, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "info":
		return LevelInfo, nil
	case "debug":
		return LevelDebug, nil
	case "trace":
		return LevelTrace, nil
	case "all":
		return LevelAll, nil
	default:
		return LevelDerived, fmt.Errorf("%w: %q", ErrUnknownLevel, s)
	}
}

// Effective 返回实际输出时使用的级别：ALL 以 TRACE 输出，其余原样返回。
func Effective(l Level) Level {
	if l == LevelAll {
		return LevelTrace
	}
	return l
}

// Slog 将级别映射为 slog.Level。
//
// OFF 与 DERIVED 没有对应的输出级别，映射为比 ERROR 更高的值，
// 保证即使被误用也不会被常规 handler 当作可输出级别。
func (l Level) Slog() slog.Level {
	switch Effective(l) {
	case LevelError:
		return slog.LevelError
	case LevelWarn:
		return slog.LevelWarn
	case LevelInfo:
		return slog.LevelInfo
	case LevelDebug:
		return slog.LevelDebug
	case LevelTrace:
		return SlogLevelTrace
	default:
		return slog.LevelError + 4
	}
}

// Enabler 按级别回答"是否启用"，通常由日志 sink 实现。
type Enabler interface {
	Enabled(ctx context.Context, level Level) bool
}

// IsEnabled 判断级别是否启用。
//
// OFF、DERIVED 以及非法值恒为 false；ALL 恒为 true；其余委托给 e。
// e 为 nil 时视为全部禁用。
func IsEnabled(ctx context.Context, e Enabler, l Level) bool {
	switch {
	case l == LevelAll:
		return true
	case l == LevelOff, l == LevelDerived, !l.IsValid():
		return false
	case e == nil:
		return false
	default:
		return e.Enabled(ctx, l)
	}
}
