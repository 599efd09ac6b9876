// Package xdetail 构造日志点的单行 JSON 明细。
//
// 明细按类别依次写入同一个对象：事件元数据（timestamp、event、logger、level）、
// 诊断上下文快照、参数。后写入的同名键原位覆盖先前的值。
//
// 取值规则：
//
//   - bool 与有限数值不加引号，其余值转为字符串后用 xjson.Quote 转义
//   - nil 值不输出
//   - 参数值与消息模板一致：先按参数的 Expression 求值，再经转换器注册表转换
//   - 转换后的值是 error 时额外输出 "{name}-stacktrace"，内容取错误链中第一个
//     携带 github.com/pkg/errors 栈信息的错误，没有时为 "[]"
package xdetail
