package xlog

import (
	"fmt"
	"log/slog"
	"strings"
)

// Level 输出级别，数值与 slog.Level 一致
type Level slog.Level

// LevelTrace 在 DEBUG 之下再留一档，承接日志点的 TRACE
const (
	LevelTrace = Level(slog.LevelDebug - 4)
	LevelDebug = Level(slog.LevelDebug)
	LevelInfo  = Level(slog.LevelInfo)
	LevelWarn  = Level(slog.LevelWarn)
	LevelError = Level(slog.LevelError)
)

var levelNames = []struct {
	level Level
	names []string // 首个为输出名，其余为解析别名
}{
	{LevelTrace, []string{"TRACE"}},
	{LevelDebug, []string{"DEBUG"}},
	{LevelInfo, []string{"INFO"}},
	{LevelWarn, []string{"WARN", "WARNING"}},
	{LevelError, []string{"ERROR"}},
}

// String 具名级别返回大写名，其余按 slog 的偏移写法（如 INFO+2）
func (l Level) String() string {
	for _, e := range levelNames {
		if e.level == l {
			return e.names[0]
		}
	}
	return slog.Level(l).String()
}

// MarshalText 实现 encoding.TextMarshaler 接口
func (l Level) MarshalText() ([]byte, error) { return []byte(l.String()), nil }

// UnmarshalText 实现 encoding.TextUnmarshaler 接口，规则同 ParseLevel
func (l *Level) UnmarshalText(data []byte) error {
	v, err := ParseLevel(string(data))
	if err != nil {
		return err
	}
	*l = v
	return nil
}

// ParseLevel 不区分大小写，忽略首尾空白。无法识别时返回 LevelInfo 和错误。
func ParseLevel(s string) (Level, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	for _, e := range levelNames {
		for _, n := range e.names {
			if n == name {
				return e.level, nil
			}
		}
	}
	return LevelInfo, fmt.Errorf("xlog: unknown level %q", s)
}

// replaceLevelName 顶层 level 属性为 TRACE 时输出 "TRACE"，而不是 slog 的 "DEBUG-4"
func replaceLevelName(groups []string, a slog.Attr) slog.Attr {
	if len(groups) > 0 || a.Key != slog.LevelKey {
		return a
	}
	if lvl, ok := a.Value.Any().(slog.Level); ok && Level(lvl) == LevelTrace {
		a.Value = slog.StringValue(LevelTrace.String())
	}
	return a
}
