package xrepeat

import (
	"sync/atomic"
	"time"
)

// Controller 决定一次已启用的日志输出是否真正发出。
type Controller interface {
	// Allow 返回 true 表示本次应输出。有状态实现会在返回 true 时更新内部状态。
	Allow() bool
}

// Option 配置 Controller。
type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock 替换时间来源（用于测试）。nil 被忽略。
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// New 按策略创建 Controller。未知策略返回 ErrUnknownPolicy。
func New(p Policy, opts ...Option) (Controller, error) {
	o := options{now: time.Now}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	switch p {
	case PolicyAll:
		return Always(), nil
	case PolicyOnce:
		return &onceController{}, nil
	case PolicyOncePerSecond, PolicyOncePerMinute, PolicyOncePerHour, PolicyOncePerDay:
		return &windowController{window: p.Window(), now: o.now}, nil
	default:
		return nil, ErrUnknownPolicy
	}
}

// alwaysController 每次都放行
type alwaysController struct{}

// alwaysInstance 无状态，全局共享
var alwaysInstance = &alwaysController{}

// Always 返回每次都放行的 Controller（单例）。
func Always() Controller {
	return alwaysInstance
}

func (*alwaysController) Allow() bool { return true }

// onceController 只放行第一次
type onceController struct {
	used atomic.Bool
}

func (c *onceController) Allow() bool {
	return c.used.CompareAndSwap(false, true)
}

// windowController 固定窗口内至多放行一次
//
// next 保存下一次允许输出的时间（UnixNano）。零值表示尚未输出过，首次调用必定放行。
// 并发放行通过 CAS 保证同一窗口只有一个调用者成功。
type windowController struct {
	window time.Duration
	now    func() time.Time
	next   atomic.Int64
}

func (c *windowController) Allow() bool {
	now := c.now().UnixNano()
	for {
		next := c.next.Load()
		if now < next {
			return false
		}
		if c.next.CompareAndSwap(next, now+int64(c.window)) {
			return true
		}
	}
}

// 确保实现了接口
var (
	_ Controller = (*alwaysController)(nil)
	_ Controller = (*onceController)(nil)
	_ Controller = (*windowController)(nil)
)
