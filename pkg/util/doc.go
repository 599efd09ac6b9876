// Package util 提供通用工具相关的子包。
//
// 子包列表：
//   - xjson: JSON 工具，最小转义字符串引用与 Pretty 格式化输出
package util
