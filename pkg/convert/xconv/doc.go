// Package xconv 提供"值 → 可记录形式"的转换器注册表。
//
// 日志点在渲染消息、构造 JSON 明细和写入诊断上下文前，都会把参数值交给
// [Registry.Convert]，由注册表为值的运行时类型挑选最匹配的 [Converter]。
//
// # 查找顺序
//
// 对运行时类型 T 依次尝试，首个命中即返回：
//
//  1. T 本身
//  2. T 为指针时，其元素类型（递归）
//  3. 匿名嵌入字段，按字段顺序深度优先递归；传给转换器的是嵌入字段的值
//  4. T 实现的已注册接口类型，按注册顺序；排除列表中的接口（默认 any）不参与
//
// 均未命中时原值返回。nil 转换为 nil。
//
// 解析结果按 reflect.Type 缓存在 LRU 中，每次注册后清空。
//
// # 注册
//
//	reg, _ := xconv.NewRegistry()
//	_ = reg.Register(
//		xconv.Func("user", func(u *User) any { return u.ID }),
//		xconv.Func("stringer", func(s fmt.Stringer) any { return s.String() }),
//	)
//
// 同一类型重复注册时后者生效，并通过 xlog 输出一条告警，告警中包含新旧转换器名称与类型。
// 没有目标类型的转换器使整次 Register 失败（[ErrNoTargets]），已注册内容不受影响。
//
// 转换器自身 panic 不会被注册表 recover。
package xconv
