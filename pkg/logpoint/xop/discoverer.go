package xop

import (
	"fmt"
	"sync"
)

// Discoverer 配置发现协作者：返回操作的完整描述符。
//
// 返回的描述符尚未规范化，日志点构建时会调用 Normalize。
type Discoverer interface {
	Describe(op Operation) (*Descriptor, error)
}

// DiscovererFunc 函数适配器。
type DiscovererFunc func(op Operation) (*Descriptor, error)

// Describe 实现 Discoverer。
func (f DiscovererFunc) Describe(op Operation) (*Descriptor, error) {
	return f(op)
}

// Static 内存中的描述符表，适合在代码中集中声明。并发安全。
type Static struct {
	mu    sync.RWMutex
	descs map[string]*Descriptor
}

// NewStatic 用给定描述符创建表，同一操作后者覆盖前者。
func NewStatic(descs ...*Descriptor) *Static {
	s := &Static{descs: make(map[string]*Descriptor, len(descs))}
	for _, d := range descs {
		s.Add(d)
	}
	return s
}

// Add 添加或替换描述符。nil 被忽略。
func (s *Static) Add(d *Descriptor) {
	if d == nil {
		return
	}
	s.mu.Lock()
	s.descs[d.Operation.Key()] = d
	s.mu.Unlock()
}

// Describe 实现 Discoverer。
func (s *Static) Describe(op Operation) (*Descriptor, error) {
	s.mu.RLock()
	d, ok := s.descs[op.Key()]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownOperation, op)
	}
	return d, nil
}
