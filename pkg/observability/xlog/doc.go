// Package xlog 日志点的默认输出后端，基于 log/slog。
//
// 日志点经由 [Logger] 输出调用、返回与失败消息；Logger 在 slog 之上补了
// TRACE 级别（输出名为 "TRACE"），并在每条记录上附带 ctx 绑定的诊断上下文。
//
// # 构建
//
// [New] 返回链式 [Builder]，默认 stderr、INFO、text、注入诊断上下文。
// 第一个出错的 Set 之后的调用都被忽略，错误由 Build 返回：
//
//	logger, cleanup, err := xlog.New().
//		SetLevelString("trace").
//		SetFormat("json").
//		SetRotation("/var/log/app/calls.log", xlog.Rotation{Compress: true}).
//		Build()
//	defer cleanup()
//
// 派生 logger（With/WithGroup）与源 logger 共享级别与失败计数，SetLevel 运行时生效。
//
// # 全局 Logger
//
// 未注入 Logger 时，转换器注册表与拦截器的诊断（重复注册、重名参数）
// 经 [For] 输出到 [Default]，并带 component 属性标明来源。
// [SetDefault] 替换全局实例，[ResetDefault] 供测试恢复初始状态。
//
// # 诊断上下文
//
// [MDCHandler] 把 ctx 绑定的 xmdc.Map 条目作为顶层字符串属性追加。
// 保留键 xmdc.KeyJSON 的值是 JSON 对象，以 json.RawMessage 追加，
// JSON 格式输出时保持嵌套而不是二次转义。
package xlog
