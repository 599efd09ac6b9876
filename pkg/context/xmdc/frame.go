package xmdc

import "strings"

// memento 一个 key 在 Frame 内第一次被修改前的状态
type memento struct {
	key     string
	value   string
	present bool
}

// Frame 单次调用的诊断上下文备忘录。
type Frame struct {
	m     *Map
	saved []memento
	seen  map[string]struct{}
}

// Push 在 m 上开启一个新的 Frame。
func (m *Map) Push() *Frame {
	return &Frame{m: m}
}

// Map 返回 Frame 所属的映射。
func (f *Frame) Map() *Map {
	if f == nil {
		return nil
	}
	return f.m
}

// save 记录 key 在本 Frame 内第一次修改前的状态
func (f *Frame) save(key string) {
	if _, ok := f.seen[key]; ok {
		return
	}
	if f.seen == nil {
		f.seen = make(map[string]struct{})
	}
	f.seen[key] = struct{}{}
	v, ok := f.m.Get(key)
	f.saved = append(f.saved, memento{key: key, value: v, present: ok})
}

// Put 写入 key，并在本 Frame 内首次写该 key 时保存原值。
func (f *Frame) Put(key, value string) {
	f.save(key)
	f.m.Set(key, value)
}

// Remove 删除 key，并在本 Frame 内首次修改该 key 时保存原值。
func (f *Frame) Remove(key string) {
	f.save(key)
	f.m.Delete(key)
}

// Get 读取当前值（等同于 Map.Get）。
func (f *Frame) Get(key string) (string, bool) {
	return f.Map().Get(key)
}

// Restore 逆序回放备忘录，将映射恢复到 Frame 开启前的状态。
//
// 幂等：回放后备忘录被清空，再次调用无操作。nil Frame 安全。
func (f *Frame) Restore() {
	if f == nil {
		return
	}
	for i := len(f.saved) - 1; i >= 0; i-- {
		s := f.saved[i]
		if s.present {
			f.m.Set(s.key, s.value)
		} else {
			f.m.Delete(s.key)
		}
	}
	f.saved = nil
	f.seen = nil
}

// Indent 将调用深度加一并写回 KeyIndent，返回新的缩进串。
func (f *Frame) Indent() string {
	depth := Depth(f.m) + 1
	indent := strings.Repeat("  ", depth)
	f.Put(KeyIndent, indent)
	return indent
}
