// Package xmdc 提供按调用栈作用域的诊断上下文（MDC）。
//
// # 模型
//
// [Map] 是 key→string 映射，通过 context.Context 传递（[WithMap]/[FromContext]）。
// [Enter] 为每次调用绑定一个复制自上层的专属 Map：嵌套调用继承外层当前的条目，
// 从同一个 ctx 并发发起的调用各自写自己的副本，调用方的 Map 保持不变。
//
// [Frame] 是单次调用的备忘录（memento）：同一 Frame 内对某个 key 的第一次
// [Frame.Put]/[Frame.Remove] 会记录修改前的值（或"不存在"），之后对同一 key 的修改
// 不再重复记录。[Frame.Restore] 逆序回放备忘录，把 Map 恢复到调用前的状态：
// 原先不存在的 key 会被删除，而不是写成空串。
//
// # 作用域获取
//
//	ctx, frame := xmdc.Enter(ctx)
//	defer frame.Restore()
//	frame.Put("user", "alice")
//
// Restore 幂等，所有退出路径（正常返回、错误、panic）都应通过 defer 调用。
//
// # 缩进
//
// [Frame.Indent] 读取保留键 [KeyIndent] 的当前深度（字符串长度 / 2，不存在时为 -1），
// 加一后写回。写回走普通 Put 路径，因此缩进随 Frame 一起恢复。
// 最外层调用得到深度 0（空串），内层依次为两个、四个空格。
//
// # 并发
//
// 每次调用的 Map 只属于这次调用，但被包装的操作可能在内部启动 goroutine 读取它，
// 因此 Map 的读写由读写锁保护。Frame 不是并发安全的，只能在所属调用中使用。
package xmdc
