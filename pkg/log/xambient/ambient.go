package xambient

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/omeyang/logkit/pkg/log/xlog"
	"github.com/omeyang/logkit/pkg/log/xmeta"
)

// FallbackLabel 无环境 Logger 时使用的合成标识
const FallbackLabel = "ambient-fallback"

// KeyRequestID 请求标识元数据键
const KeyRequestID = "request_id"

// loggerKey context 键，包私有类型避免跨包冲突
type loggerKey struct{}

// fallbackOnce 无环境 Logger 的一次性迁移提示
var fallbackOnce sync.Once

// With 把 Logger 寄存进 context，返回子 context
//
// 子 context 的动态范围即 Logger 的作用域；范围退出（包括提前返回
// 与错误路径）后外层看到的仍是之前的环境 Logger。
func With(ctx context.Context, l xlog.Logger) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, loggerKey{}, l)
}

// From 取回当前环境 Logger
//
// ctx 为 nil 或没有任何环境 Logger 时，回落到 Bootstrap 工厂构造的
// [FallbackLabel] Logger，并打印一次性迁移提示（通过该 Logger 自身，
// warning 级别）。绝不 panic。
func From(ctx context.Context) xlog.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(loggerKey{}).(xlog.Logger); ok {
			return l
		}
	}
	l := xlog.New(FallbackLabel)
	fallbackOnce.Do(func() {
		l.Warning("no ambient logger in context, falling back to bootstrap handler")
	})
	return l
}

// Lookup 取回当前环境 Logger，不触发回落
//
// 需要区分"有没有环境"而不想要回落语义时使用。
func Lookup(ctx context.Context) (xlog.Logger, bool) {
	if ctx == nil {
		return xlog.Logger{}, false
	}
	l, ok := ctx.Value(loggerKey{}).(xlog.Logger)
	return l, ok
}

// Run 在携带指定 Logger 的作用域内执行 fn
//
// fn 返回后（无论正常还是错误）作用域即告结束，调用方的 ctx 不受影响。
func Run(ctx context.Context, l xlog.Logger, fn func(ctx context.Context) error) error {
	return fn(With(ctx, l))
}

// =============================================================================
// 作用域派生：在当前环境 Logger 基础上修改后寄存进子 context
// =============================================================================

// WithMetadata 派生合并了额外元数据的环境作用域
func WithMetadata(ctx context.Context, md xmeta.Metadata) context.Context {
	return With(ctx, From(ctx).WithMetadata(md))
}

// WithLevel 派生携带级别覆盖的环境作用域
func WithLevel(ctx context.Context, level xlog.Level) context.Context {
	l := From(ctx)
	l.SetLevel(level)
	return With(ctx, l)
}

// WithProvider 派生携带环境元数据 Provider 的作用域
//
// Handler 支持 [xlog.CloneHandler] 时先克隆再设置，外层作用域不受影响；
// 不支持克隆的 Handler 上设置 Provider 会影响共享该实例的所有 Logger，
// 这是该后端自身的共享语义。
func WithProvider(ctx context.Context, p xlog.Provider) context.Context {
	l := From(ctx)
	h := l.Handler()
	if ch, ok := h.(xlog.CloneHandler); ok {
		h = ch.Clone()
	}
	if ph, ok := h.(xlog.ProviderHandler); ok {
		ph.SetMetadataProvider(p)
	}
	return With(ctx, l.WithHandler(h))
}

// EnsureRequestID 确保环境 Logger 携带 request_id 元数据
//
// 已存在时原样返回 ctx；否则生成 uuid 并派生新的环境作用域。
func EnsureRequestID(ctx context.Context) context.Context {
	l := From(ctx)
	if _, ok := l.MetadataValue(KeyRequestID); ok {
		return ctx
	}
	l.SetMetadataValue(KeyRequestID, xmeta.String(uuid.NewString()))
	return With(ctx, l)
}
