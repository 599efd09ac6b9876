// Package xop 定义被记录操作的描述模型。
//
// [Descriptor] 描述一个被记录的调用点：操作标识、消息模板、级别、异常级别、
// 所在作用域链、logger 标识、JSON 详情、重复策略以及参数列表。
// 描述符由外部的配置发现步骤构建（代码中直接构造、[Static] 或 xconf 目录文件），
// 经 [Descriptor.Normalize] 规范化后不可变。
//
// [Namer] 为无法取得声明名的参数提供名称，兜底为 "arg{index}"。
// [Discoverer] 是配置发现协作者：按操作标识返回完整的描述符。
package xop
