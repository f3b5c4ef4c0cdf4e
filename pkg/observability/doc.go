// Package observability 提供可观测性相关的子包。
//
// 子包列表：
//   - xtracemeta: 从 OpenTelemetry span 上下文提取追踪元数据注入日志
//
// 设计原则：
//   - 遵循 OpenTelemetry 语义规范
//   - 自动从 context 中提取追踪信息注入日志
package observability
