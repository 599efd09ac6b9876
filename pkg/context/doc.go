// Package context 提供调用期上下文相关的子包。
//
// 子包列表：
//   - xmdc: 诊断上下文映射，帧式保存/恢复与调用深度缩进
//
// 设计原则：
//   - 所有上下文信息通过 context.Context 传递，不使用 goroutine 局部状态
//   - 每次调用的修改在退出时完整恢复，包括 panic 路径
package context
