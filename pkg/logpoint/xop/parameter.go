package xop

import (
	"reflect"
	"strconv"
)

// Parameter 一个形式参数的记录配置。
type Parameter struct {
	// Name 声明名；为空时由 Namer 或 "arg{index}" 兜底
	Name string
	// Index 从 0 开始的位置
	Index int
	// DontLog 为 true 时该参数不出现在默认模板与 JSON 参数中
	DontLog bool
	// Throwable 标记末尾的 error 类型参数
	Throwable bool
	// ContextKey 非空时参数值同时发布到该诊断上下文键
	ContextKey string
	// Expression 转换前先对参数值求值的属性路径，如 "customer.id"
	Expression string
	// Type 声明类型，可选；用于识别末尾的 error 参数
	Type reflect.Type
}

var errorType = reflect.TypeFor[error]()

// IsErrorType 报告 t 是否实现了 error。
func IsErrorType(t reflect.Type) bool {
	return t != nil && t.Implements(errorType)
}

// Namer 参数命名协作者。
type Namer interface {
	// ParameterName 返回操作第 index 个参数的名称，无法得知时返回空串
	ParameterName(op Operation, index int) string
}

// NamerFunc 函数适配器。
type NamerFunc func(op Operation, index int) string

// ParameterName 实现 Namer。
func (f NamerFunc) ParameterName(op Operation, index int) string {
	return f(op, index)
}

// FallbackName 返回位置兜底名称 "arg{index}"。
func FallbackName(index int) string {
	return "arg" + strconv.Itoa(index)
}

// ParameterName 按 声明名 → namer → FallbackName 的顺序返回非空名称。
func ParameterName(namer Namer, op Operation, index int, declared string) string {
	if declared != "" {
		return declared
	}
	if namer != nil {
		if n := namer.ParameterName(op, index); n != "" {
			return n
		}
	}
	return FallbackName(index)
}
