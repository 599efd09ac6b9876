package xlog

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/omeyang/xcall/pkg/context/xmdc"
)

// ErrNilHandler 当 NewMDCHandler 的 base handler 为 nil 时返回
var ErrNilHandler = errors.New("xlog: base handler is nil")

// MDCHandler 把 ctx 绑定的诊断上下文条目注入日志
//
// 装饰模式实现，包装底层 slog.Handler。ctx 未绑定 xmdc.Map 或 Map 为空时原样透传。
type MDCHandler struct {
	base slog.Handler
}

// NewMDCHandler 创建 MDCHandler
//
// 设计决策: 与所有 slog 装饰器一样，调用 WithGroup 后注入的条目会归入 group 下。
func NewMDCHandler(base slog.Handler) (*MDCHandler, error) {
	if base == nil {
		return nil, ErrNilHandler
	}
	return &MDCHandler{base: base}, nil
}

// Enabled 委托给底层 handler
func (h *MDCHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.base.Enabled(ctx, level)
}

// Handle 在调用底层 handler 前追加诊断上下文条目
//
// 根据 slog 契约，修改前必须 Clone record。
func (h *MDCHandler) Handle(ctx context.Context, r slog.Record) error {
	entries := xmdc.FromContext(ctx).Snapshot()
	if len(entries) == 0 {
		return h.base.Handle(ctx, r)
	}

	attrs := make([]slog.Attr, 0, len(entries))
	for _, e := range entries {
		if e.Key == xmdc.KeyJSON && json.Valid([]byte(e.Value)) {
			attrs = append(attrs, slog.Any(e.Key, json.RawMessage(e.Value)))
			continue
		}
		attrs = append(attrs, slog.String(e.Key, e.Value))
	}
	r = r.Clone()
	r.AddAttrs(attrs...)
	return h.base.Handle(ctx, r)
}

// WithAttrs 返回带额外属性的新 handler
func (h *MDCHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &MDCHandler{base: h.base.WithAttrs(attrs)}
}

// WithGroup 返回带分组的新 handler
func (h *MDCHandler) WithGroup(name string) slog.Handler {
	return &MDCHandler{base: h.base.WithGroup(name)}
}
