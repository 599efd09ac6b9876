// Package xtemplate 编译与渲染日志点的消息模板。
//
// 模板按操作编译一次（[Compile]），每次调用只做渲染（[Template.Render]）。
//
// # 默认模板
//
// 未配置显式消息时，由操作名派生：在每个大写字母前插入空格、整体小写并去掉首尾空白，
// 然后为每个既非 DontLog 也非 Throwable 的参数追加一个 " {}"：
//
//	camelCaseMethod(a, b) → "camel case method {} {}"
//
// # 显式模板
//
// 每个 {expr} 从左到右独立解析：
//
//   - {}：按内部游标取下一个参数，与带索引的引用互不影响
//   - {1}、{-1}：从 0 开始的参数索引
//   - {name}、{name.prop.sub}：按参数名查找（同名时后声明者优先），再沿属性路径求值
//   - {key}：不是参数名时视为诊断上下文键，在渲染时读取；诊断上下文键不支持属性路径
//
// 解析失败不会中断渲染，而是在该位置替换为说明性字符串：
//
//	invalid log parameter index: 2
//	invalid log parameter expression: a-b
//	unset mdc log parameter reference (and not a parameter name): user
//	invalid log parameter expression [id] for reference [user]
//
// 所有引用在 [Template.Text] 中都被改写为 {}。未闭合的 { 保留为普通文本。
//
// # 属性路径
//
// [Evaluate] 对每段依次尝试 [PropertyReader]、无参方法 Name()、GetName()、
// 导出字段 Name（可穿过指针）以及字符串键的 map。任何一段失败时结果为
// "can't get {segment}"，后续段不再求值。访问器按 (类型, 段名) 缓存。
//
// # 格式化
//
// [Format] 在 sink 一侧把 {} 依次替换为参数，\{} 输出字面的 {}。
package xtemplate
