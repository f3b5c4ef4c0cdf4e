package xtracemeta

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/trace"

	"github.com/omeyang/logkit/pkg/log/xambient"
	"github.com/omeyang/logkit/pkg/log/xlog"
	"github.com/omeyang/logkit/pkg/log/xmeta"
)

// 追踪字段 Key 常量，遵循 OpenTelemetry 语义约定
const (
	KeyTraceID    = "trace_id"
	KeySpanID     = "span_id"
	KeyTraceFlags = "trace_flags"
)

// Metadata 从 ctx 的 span 上下文提取一次性追踪元数据
//
// span 无效（无追踪或 ctx 为 nil）时返回 nil，日志照常输出。
func Metadata(ctx context.Context) xmeta.Metadata {
	if ctx == nil {
		return nil
	}
	sc := trace.SpanContextFromContext(ctx)
	if !sc.IsValid() {
		return nil
	}
	return xmeta.Metadata{
		KeyTraceID:    xmeta.String(sc.TraceID().String()),
		KeySpanID:     xmeta.String(sc.SpanID().String()),
		KeyTraceFlags: xmeta.String(fmt.Sprintf("%02x", byte(sc.TraceFlags()))),
	}
}

// Provider 返回读取 ctx span 上下文的环境元数据 Provider
//
// 返回的函数每次调用重新读取（绝不缓存结果），但 ctx 本身在安装时捕获：
// 一个请求/任务作用域安装一次，作用域内所有日志调用共享该 ctx 的 span。
func Provider(ctx context.Context) xlog.Provider {
	return func() xmeta.Metadata {
		return Metadata(ctx)
	}
}

// WithAmbient 派生注入了追踪 Provider 的环境 Logger 作用域
//
// 惯用法（请求入口处）：
//
//	ctx = xtracemeta.WithAmbient(ctx)
//	// 作用域内 xambient.From(ctx) 的每条日志自动携带 trace_id/span_id
func WithAmbient(ctx context.Context) context.Context {
	return xambient.WithProvider(ctx, Provider(ctx))
}

// Traceparent 按 W3C Trace Context 格式化 ctx 的 span 上下文
//
// span 无效时返回空字符串。格式：00-<trace-id>-<span-id>-<flags>。
func Traceparent(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	sc := trace.SpanContextFromContext(ctx)
	if !sc.IsValid() {
		return ""
	}
	return fmt.Sprintf("00-%s-%s-%02x", sc.TraceID(), sc.SpanID(), byte(sc.TraceFlags()))
}
