package xlog

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"gopkg.in/natefinch/lumberjack.v2"
)

// ErrEmptyFilename 轮转文件名为空
var ErrEmptyFilename = errors.New("xlog: rotation filename is empty")

// ReplaceAttrFunc 输出前改写属性，返回空 Key 时丢弃该属性。
// 命令行工具用它去掉时间戳，服务侧用它脱敏参数值。
type ReplaceAttrFunc func(groups []string, a slog.Attr) slog.Attr

// Rotation 轮转参数，零值字段取默认值
type Rotation struct {
	MaxSizeMB  int // 默认 100
	MaxBackups int // 默认 7
	MaxAgeDays int // 默认 30
	Compress   bool
	LocalTime  bool
}

// 轮转默认值
const (
	DefaultMaxSizeMB  = 100
	DefaultMaxBackups = 7
	DefaultMaxAgeDays = 30
)

func (r Rotation) open(filename string) (*lumberjack.Logger, error) {
	if strings.TrimSpace(filename) == "" {
		return nil, ErrEmptyFilename
	}
	if r.MaxSizeMB < 0 || r.MaxBackups < 0 || r.MaxAgeDays < 0 {
		return nil, fmt.Errorf("xlog: negative rotation limit %+v", r)
	}
	return &lumberjack.Logger{
		Filename:   filename,
		MaxSize:    orDefault(r.MaxSizeMB, DefaultMaxSizeMB),
		MaxBackups: orDefault(r.MaxBackups, DefaultMaxBackups),
		MaxAge:     orDefault(r.MaxAgeDays, DefaultMaxAgeDays),
		Compress:   r.Compress,
		LocalTime:  r.LocalTime,
	}, nil
}

func orDefault(v, def int) int {
	if v == 0 {
		return def
	}
	return v
}

// Builder 链式配置。第一个出错的 Set 之后的调用都被忽略，错误由 Build 返回。
type Builder struct {
	out       io.Writer
	closer    io.Closer
	level     *slog.LevelVar
	json      bool
	addSource bool
	noMDC     bool
	replace   ReplaceAttrFunc
	onError   func(error)
	err       error
}

// New 默认配置：stderr、INFO、text、注入诊断上下文
func New() *Builder {
	lv := new(slog.LevelVar)
	lv.Set(slog.LevelInfo)
	return &Builder{out: os.Stderr, level: lv}
}

// apply 执行一次配置，记录首个错误
func (b *Builder) apply(fn func() error) *Builder {
	if b.err == nil {
		b.err = fn()
	}
	return b
}

func (b *Builder) SetOutput(w io.Writer) *Builder {
	return b.apply(func() error {
		b.out, b.closer = w, nil
		return nil
	})
}

func (b *Builder) SetLevel(level Level) *Builder {
	return b.apply(func() error {
		b.level.Set(slog.Level(level))
		return nil
	})
}

// SetLevelString 按 ParseLevel 的规则解析
func (b *Builder) SetLevelString(s string) *Builder {
	return b.apply(func() error {
		level, err := ParseLevel(s)
		if err == nil {
			b.level.Set(slog.Level(level))
		}
		return err
	})
}

// SetFormat text 或 json，不区分大小写，空串为 text
func (b *Builder) SetFormat(format string) *Builder {
	return b.apply(func() error {
		switch strings.ToLower(strings.TrimSpace(format)) {
		case "", "text":
			b.json = false
		case "json":
			b.json = true
		default:
			return fmt.Errorf("xlog: unknown format %q", format)
		}
		return nil
	})
}

// SetRotation 输出到 lumberjack 管理的轮转文件，Build 返回的 cleanup 负责关闭
func (b *Builder) SetRotation(filename string, r Rotation) *Builder {
	return b.apply(func() error {
		lj, err := r.open(filename)
		if err == nil {
			b.out, b.closer = lj, lj
		}
		return err
	})
}

func (b *Builder) SetAddSource(enable bool) *Builder {
	b.addSource = enable
	return b
}

// SetMDC 是否把 ctx 绑定的诊断上下文条目注入日志，默认启用
func (b *Builder) SetMDC(enable bool) *Builder {
	b.noMDC = !enable
	return b
}

// SetOnError Handle 失败（磁盘满、writer 出错）时同步回调，应保持轻量
func (b *Builder) SetOnError(fn func(error)) *Builder {
	b.onError = fn
	return b
}

func (b *Builder) SetReplaceAttr(fn ReplaceAttrFunc) *Builder {
	b.replace = fn
	return b
}

// Build 返回 logger 与幂等的 cleanup（关闭轮转文件）
func (b *Builder) Build() (LoggerWithLevel, func() error, error) {
	if b.err != nil {
		return nil, nil, b.err
	}
	if b.out == nil {
		return nil, nil, errors.New("xlog: output is nil")
	}

	h := b.handler()
	if !b.noMDC {
		h, _ = NewMDCHandler(h) // h 非 nil
	}
	logger := newLogger(h, &core{level: b.level, addSource: b.addSource, onError: b.onError})

	closer := b.closer
	var once sync.Once
	var closeErr error
	cleanup := func() error {
		once.Do(func() {
			if closer != nil {
				closeErr = closer.Close()
			}
		})
		return closeErr
	}
	return logger, cleanup, nil
}

func (b *Builder) handler() slog.Handler {
	replace := b.replace
	opts := &slog.HandlerOptions{
		Level:     b.level,
		AddSource: b.addSource,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			a = replaceLevelName(groups, a)
			if replace == nil {
				return a
			}
			return replace(groups, a)
		},
	}
	if b.json {
		return slog.NewJSONHandler(b.out, opts)
	}
	return slog.NewTextHandler(b.out, opts)
}
