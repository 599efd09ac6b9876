// Package xconf 从 YAML/JSON 目录文件加载日志点配置，基于 koanf 实现。
//
// # 设计理念
//
// xconf 是 [xop.Discoverer] 的配置文件实现：目录文件声明作用域链与操作描述符，
// 加载后不可变，可直接交给 xlogpoint.New 使用。
// 描述符只做结构校验与作用域链接，参数补全与规范化仍由 xlogpoint 构建时完成。
//
// # 文件结构
//
//	scopes:
//	  - name: billing
//	    level: info
//	  - name: billing.Service
//	    enclosing: billing
//	    throw_level: warn
//	operations:
//	  - type: billing.Service
//	    name: Charge
//	    message: "charge {customer.name} {amount}"
//	    json: event,parameters
//	    repeat: once_per_minute
//	    returns: true
//	    params:
//	      - name: customer
//	        context: customer
//	        expression: id
//	      - name: amount
//
// level/throw_level/repeat/json 通过各自类型的 UnmarshalText 解码，大小写不敏感。
//
// # 作用域
//
// 操作的 scope 字段显式指定作用域；未指定时使用与 type 同名的作用域（存在时）。
// 引用不存在的作用域、作用域重名以及 enclosing 成环都是加载错误。
//
// # 支持的格式
//
//   - YAML（默认，推荐）：.yaml, .yml
//   - JSON：.json
//
// # 并发安全
//
// Catalog 加载后只读，所有方法并发安全。
package xconf
