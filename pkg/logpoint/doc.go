// Package logpoint 提供方法调用日志点相关的子包。
//
// 子包列表：
//   - xop: 操作描述符、参数与配置发现接口
//   - xlevel: 日志点级别与作用域继承解析
//   - xrepeat: 重复输出限制策略
//   - xtemplate: 消息模板编译与渲染、属性路径求值
//   - xdetail: JSON 详情构建
//   - xlogpoint: 日志点构建缓存与调用拦截
//
// 依赖方向（叶子在前）：xop/xlevel/xrepeat → xtemplate → xdetail → xlogpoint。
package logpoint
