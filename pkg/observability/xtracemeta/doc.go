// Package xtracemeta 链路追踪元数据桥：把 OpenTelemetry span 上下文
// 转换为日志门面的环境元数据。
//
// 门面核心不做分布式追踪关联，只留出 Provider 接缝；本包是该接缝的
// OpenTelemetry 实现：[Provider] 返回的函数在每次被接受的日志调用时
// 重新读取 span 上下文，span 有效时注入 trace_id、span_id、trace_flags。
//
// 字段命名遵循 OpenTelemetry 语义约定（下划线分隔）。
package xtracemeta
