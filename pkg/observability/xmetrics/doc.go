// Package xmetrics 观测日志点调用：每次调用一个 span，外加调用次数、耗时
// 与被抑制调用消息的计数。
//
// 日志点只依赖 Observer 接口；OTelObserver 是基于 OpenTelemetry 的实现，
// 未注入 Observer 时不做观测。
//
//	obs, err := xmetrics.NewOTelObserver()
//	ctx, span := xmetrics.Start(ctx, obs, xmetrics.CallInfo{
//		Logger:    "billing.Service",
//		Operation: "billing.Service.Charge",
//	})
//	defer func() { span.End(xmetrics.Outcome{Err: err, Emitted: true}) }()
//
// 指标：xcall.calls、xcall.call.duration、xcall.call.suppressed。
// 属性：xcall.logger、xcall.operation、xcall.status（ok/error/panic）、xcall.emitted。
//
// TraceIDs 供上下文变量读取当前 span 的标识。
package xmetrics
