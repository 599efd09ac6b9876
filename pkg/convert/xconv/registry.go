package xconv

import (
	"context"
	"log/slog"
	"reflect"
	"slices"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/omeyang/xcall/pkg/observability/xlog"
)

// step 从原值走到转换器入参的一步：解引用或取嵌入字段
type step struct {
	field int // -1 表示解引用
}

var deref = step{field: -1}

// resolution 一次类型解析的结果
type resolution struct {
	conv Converter
	path []step
}

// miss 缓存"无匹配"的结果，避免重复遍历
var miss = &resolution{}

// extract 沿 path 取出转换器入参，路径上遇到 nil 指针或 nil 接口时返回 false
func (r *resolution) extract(v any) (any, bool) {
	if len(r.path) == 0 {
		return v, true
	}
	rv := reflect.ValueOf(v)
	for _, s := range r.path {
		if s.field < 0 {
			if rv.IsNil() {
				return nil, false
			}
			rv = rv.Elem()
			continue
		}
		rv = rv.Field(s.field)
		if rv.Kind() == reflect.Interface {
			if rv.IsNil() {
				return nil, false
			}
			rv = rv.Elem()
		}
	}
	if !rv.CanInterface() {
		return nil, false
	}
	return rv.Interface(), true
}

// Registry 转换器注册表，并发安全
type Registry struct {
	mu      sync.RWMutex
	exact   map[reflect.Type]Converter
	ifaces  []reflect.Type // 注册顺序
	exclude map[reflect.Type]struct{}
	cache   *lru.Cache[reflect.Type, *resolution]
	logger  xlog.Logger
}

// NewRegistry 创建空注册表
func NewRegistry(opts ...Option) (*Registry, error) {
	o := options{cacheSize: DefaultCacheSize}
	for _, opt := range opts {
		opt(&o)
	}
	if o.cacheSize <= 0 {
		return nil, ErrInvalidCacheSize
	}
	cache, err := lru.New[reflect.Type, *resolution](o.cacheSize)
	if err != nil {
		return nil, err
	}

	exclude := map[reflect.Type]struct{}{reflect.TypeFor[any](): {}}
	for _, t := range o.exclude {
		if t != nil {
			exclude[t] = struct{}{}
		}
	}
	return &Registry{
		exact:   make(map[reflect.Type]Converter),
		exclude: exclude,
		cache:   cache,
		logger:  o.logger,
	}, nil
}

// Register 注册转换器
//
// 先校验全部转换器，任一非法时整体失败、注册表不变。
// 目标类型重复时后注册的生效，并输出告警。
func (r *Registry) Register(cs ...Converter) error {
	for _, c := range cs {
		if c == nil {
			return ErrNilConverter
		}
		if len(c.Targets()) == 0 || slices.Contains(c.Targets(), nil) {
			return ErrNoTargets
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, c := range cs {
		for _, t := range c.Targets() {
			if prev, ok := r.exact[t]; ok {
				r.log().Warn(context.Background(), "converter replaced",
					slog.String("type", t.String()),
					slog.String("previous", prev.Name()),
					slog.String("replacement", c.Name()))
			} else if t.Kind() == reflect.Interface {
				r.ifaces = append(r.ifaces, t)
			}
			r.exact[t] = c
		}
	}
	r.cache.Purge()
	return nil
}

// Convert 返回 v 的可记录形式
//
// nil 返回 nil；没有匹配的转换器时原样返回。
func (r *Registry) Convert(v any) any {
	if v == nil {
		return nil
	}
	res := r.resolve(reflect.TypeOf(v))
	if res == miss {
		return v
	}
	arg, ok := res.extract(v)
	if !ok {
		return v
	}
	return res.conv.Convert(arg)
}

// Lookup 返回类型 t 解析到的转换器，没有时返回 nil
func (r *Registry) Lookup(t reflect.Type) Converter {
	if t == nil {
		return nil
	}
	return r.resolve(t).conv
}

// Len 返回已注册的目标类型数量
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.exact)
}

func (r *Registry) log() xlog.Logger {
	if r.logger != nil {
		return r.logger
	}
	return xlog.For("xconv")
}

// resolve 解析并缓存类型 t 的转换路径
//
// 设计决策: 持读锁完成解析与写缓存，Register 持写锁 Purge，
// 保证缓存中不会残留注册前的解析结果。
func (r *Registry) resolve(t reflect.Type) *resolution {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if res, ok := r.cache.Get(t); ok {
		return res
	}
	res := r.walk(t, nil, make(map[reflect.Type]bool))
	if res == nil {
		res = r.matchInterface(t)
	}
	if res == nil {
		res = miss
	}
	r.cache.Add(t, res)
	return res
}

// walk 依次检查自身、指针元素、嵌入字段
func (r *Registry) walk(t reflect.Type, path []step, visiting map[reflect.Type]bool) *resolution {
	if c, ok := r.exact[t]; ok {
		return &resolution{conv: c, path: slices.Clone(path)}
	}
	if visiting[t] {
		return nil
	}
	visiting[t] = true
	defer delete(visiting, t)

	switch t.Kind() {
	case reflect.Pointer:
		return r.walk(t.Elem(), append(path, deref), visiting)
	case reflect.Struct:
		for i := range t.NumField() {
			f := t.Field(i)
			// 未导出的嵌入字段无法取值
			if !f.Anonymous || !f.IsExported() {
				continue
			}
			if res := r.walk(f.Type, append(path, step{field: i}), visiting); res != nil {
				return res
			}
		}
	}
	return nil
}

func (r *Registry) matchInterface(t reflect.Type) *resolution {
	for _, it := range r.ifaces {
		if _, skip := r.exclude[it]; skip {
			continue
		}
		if t.Implements(it) {
			return &resolution{conv: r.exact[it]}
		}
	}
	return nil
}

// =============================================================================
// 默认注册表
// =============================================================================

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Default 返回进程级默认注册表
func Default() *Registry {
	defaultOnce.Do(func() {
		// 默认参数不会失败
		defaultRegistry, _ = NewRegistry()
	})
	return defaultRegistry
}

// Register 向默认注册表注册转换器
func Register(cs ...Converter) error {
	return Default().Register(cs...)
}

// Convert 使用默认注册表转换 v
func Convert(v any) any {
	return Default().Convert(v)
}
