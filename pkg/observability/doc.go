// Package observability 提供可观测性相关的子包。
//
// 子包列表：
//   - xlog: 结构化日志，基于 log/slog 扩展，自动附加诊断上下文
//   - xmetrics: 调用观测接口（追踪、指标），提供 OpenTelemetry 实现
//
// 设计原则：
//   - 遵循 OpenTelemetry 语义规范
//   - 诊断上下文通过 MDCHandler 注入每条日志
//   - 未配置观测器时零开销
package observability
