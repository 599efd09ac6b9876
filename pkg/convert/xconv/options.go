package xconv

import (
	"reflect"

	"github.com/omeyang/xcall/pkg/observability/xlog"
)

// DefaultCacheSize 解析缓存默认容量（按运行时类型计）
const DefaultCacheSize = 1024

type options struct {
	logger    xlog.Logger
	exclude   []reflect.Type
	cacheSize int
}

// Option 注册表配置选项
type Option func(*options)

// WithLogger 设置诊断日志输出，默认使用 xlog.For("xconv")
func WithLogger(l xlog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithExclude 追加不参与接口匹配的接口类型
//
// any 始终被排除。
func WithExclude(types ...reflect.Type) Option {
	return func(o *options) {
		o.exclude = append(o.exclude, types...)
	}
}

// WithCacheSize 设置解析缓存容量
func WithCacheSize(n int) Option {
	return func(o *options) {
		o.cacheSize = n
	}
}
