// Package xrepeat 提供日志点的重复输出限制策略。
//
// 一个 [Controller] 属于一个日志点，在级别已启用的前提下决定"这一次"是否真正输出。
// 它不影响级别判断，只做输出抑制。
//
// # 策略
//
//   - [PolicyAll]: 每次都输出（默认）
//   - [PolicyOnce]: 进程生命周期内只输出一次
//   - [PolicyOncePerSecond]、[PolicyOncePerMinute]、[PolicyOncePerHour]、[PolicyOncePerDay]:
//     固定窗口内至多一次，通过"下次允许输出时间"水位线实现，每次放行时更新水位线
//
// Policy 实现 encoding.TextUnmarshaler，可直接写在配置中（如 "once_per_minute"）。
//
// 所有 Controller 都是并发安全的。
package xrepeat
