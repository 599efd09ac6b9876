// Package xjson 日志点与命令行工具共用的 JSON 文本工具。
//
// [Quote] 与 [AppendQuote] 生成 JSON 详情对象中的字符串字面量，
// 只转义反斜杠、双引号、\r 与 \n，其余字符（包括非 ASCII 与 HTML 字符）原样输出，
// 结果适合单行日志；含其它控制字符时不保证是严格合法的 JSON。
//
// [Pretty] 为命令行输出缩进 JSON，失败时返回 [ErrMarshal] 包装的错误。
package xjson
