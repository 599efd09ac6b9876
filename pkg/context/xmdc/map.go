package xmdc

import (
	"maps"
	"slices"
	"sync"
)

// 保留键。
const (
	// KeyIndent 调用深度缩进，值为 depth*2 个空格
	KeyIndent = "indent"

	// KeyJSON 日志点输出期间发布的 JSON 详情
	KeyJSON = "json"
)

// Entry 一个诊断上下文条目。
type Entry struct {
	Key   string
	Value string
}

// Map 诊断上下文映射。零值不可用，使用 [New] 创建。
type Map struct {
	mu     sync.RWMutex
	values map[string]string
	order  []string // 插入顺序，Snapshot 按此顺序输出
}

// New 创建空的诊断上下文映射。
func New() *Map {
	return &Map{values: make(map[string]string)}
}

// Clone 返回条目与插入顺序都相同的独立副本。nil Map 得到空 Map。
func (m *Map) Clone() *Map {
	if m == nil {
		return New()
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	values := maps.Clone(m.values)
	if values == nil {
		values = make(map[string]string)
	}
	return &Map{values: values, order: slices.Clone(m.order)}
}

// Get 返回 key 的值及其是否存在。nil Map 视为空。
func (m *Map) Get(key string) (string, bool) {
	if m == nil {
		return "", false
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok
}

// Set 直接写入，不经过备忘录。调用方自行负责恢复。
func (m *Map) Set(key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.values[key]; !ok {
		m.order = append(m.order, key)
	}
	m.values[key] = value
}

// Delete 直接删除，不经过备忘录。
func (m *Map) Delete(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.values[key]; !ok {
		return
	}
	delete(m.values, key)
	if i := slices.Index(m.order, key); i >= 0 {
		m.order = slices.Delete(m.order, i, i+1)
	}
}

// Len 返回条目数。
func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.values)
}

// Snapshot 按插入顺序返回当前全部条目的副本。
func (m *Map) Snapshot() []Entry {
	if m == nil {
		return nil
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	entries := make([]Entry, 0, len(m.order))
	for _, k := range m.order {
		entries = append(entries, Entry{Key: k, Value: m.values[k]})
	}
	return entries
}

// Depth 返回当前缩进深度：KeyIndent 长度的一半，不存在时为 -1。
func Depth(m *Map) int {
	v, ok := m.Get(KeyIndent)
	if !ok {
		return -1
	}
	return len(v) / 2
}
