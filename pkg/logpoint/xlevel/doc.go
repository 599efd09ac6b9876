// Package xlevel 定义日志点的级别模型与级别继承解析。
//
// # 级别
//
// [LevelDerived] 为零值，表示"由外层作用域决定"。其余级别按严重程度：
// [LevelOff]、[LevelError]、[LevelWarn]、[LevelInfo]、[LevelDebug]、[LevelTrace]、[LevelAll]。
// [ParseLevel] 支持大小写不敏感解析，Level 实现 encoding.TextMarshaler/TextUnmarshaler，
// 可直接出现在 YAML/JSON 配置中。
//
// # 作用域继承
//
// 方法自身未声明级别时，沿 [Scope] 链（声明类型 → 外层作用域 → …）向外查找第一个显式级别；
// 整条链都未声明时回退到基线：普通调用为 [DefaultLevel]（DEBUG），
// 异常为 [DefaultThrowLevel]（ERROR）。两条链互相独立。
//
// # 启用判断
//
// [IsEnabled] 将判断委托给 sink（每个级别独立查询）。OFF 恒为禁用，ALL 恒为启用，
// 且 ALL 实际以最详细的 TRACE 级别输出（见 [Effective]）。
package xlevel
