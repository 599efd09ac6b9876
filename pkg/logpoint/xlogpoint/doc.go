// Package xlogpoint 把一次方法调用包装为带结构化日志的调用点。
//
// # 概述
//
// [Interceptor] 按操作键缓存 [LogPoint]（描述符、解析后的级别、编译后的模板、
// 重复限制器与 sink），首次使用时通过 singleflight 合并并发构建。
//
// 每次调用的流程：
//
//  1. 开始观测跨度（xmetrics）
//  2. 压入诊断上下文帧（xmdc），写入参数派生的上下文变量与 [VariableSupplier] 提供的变量
//  3. 级别启用时增加缩进；重复限制器放行时输出调用消息
//     （配置了 JSON 明细时，输出期间明细位于诊断上下文键 "json"）
//  4. 执行被包装的调用
//  5. 成功且有返回值时输出 "return {}"；失败或 panic 时以异常级别输出 "failed with {}"
//  6. 无论如何退出，恢复诊断上下文帧并结束跨度
//
// 重复限制的判定每次调用只做一次，同时约束调用消息与返回消息；失败消息不受限制。
// 末尾参数是非 nil error 时，调用消息通过 sink 的 LogError 输出。
//
// # 使用方式
//
//	icpt, _ := xlogpoint.New(catalog, xlogpoint.WithSinks(xlogpoint.NewSlogSinks(logger)))
//
//	total, err := xlogpoint.Invoke(ctx, icpt, op, []any{customer, amount},
//		func(ctx context.Context) (int, error) {
//			return svc.charge(ctx, customer, amount)
//		})
//
// 需要手动控制时使用 [Interceptor.Begin] 返回的 [Call]：
//
//	ctx, call, err := icpt.Begin(ctx, op, args)
//	if err != nil {
//		return err
//	}
//	defer call.Done()
//
// 描述符构建失败（未知操作、非法参数配置、未知重复策略）时 Begin/Intercept 直接返回错误，
// 被包装的调用不会执行。
package xlogpoint
