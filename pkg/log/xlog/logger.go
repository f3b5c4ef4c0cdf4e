package xlog

import (
	"fmt"
	"path/filepath"
	"runtime"
	"time"

	"github.com/omeyang/logkit/pkg/log/xmeta"
)

// callerSkip 调用点捕获的固定栈帧跳过数
// 调用链：业务代码 → 导出方法（Info/Log/…） → log → runtime.Caller
const callerSkip = 2

// Logger 日志句柄，主要调用面
//
// 值类型：复制 Logger 后修改副本的级别或元数据绝不影响原值或其他副本。
// 级别覆盖与元数据覆盖层都通过写时复制实现独立性。
// 每个 Logger 值假定同一时刻只有一个逻辑所有者；Handler 若在多个
// Logger 副本间内部共享可变状态，必须自带同步。
//
// 零值 Logger 合法：所有日志调用静默丢弃，绝不崩溃。
type Logger struct {
	label    string
	handler  Handler
	level    *Level         // 实例级覆盖；nil 时回落到 handler 级别
	metadata xmeta.Metadata // 实例覆盖层，写时复制
	source   string         // source 覆盖；空时从调用点文件推导
}

// NewWithHandler 用指定 Handler 构造 Logger
//
// 绕过全局工厂，用于测试或定制后端组合（如 [NewMultiplexHandler]）。
func NewWithHandler(label string, h Handler) Logger {
	return Logger{label: label, handler: h}
}

// Label 返回创建时赋予的不可变标识
func (l Logger) Label() string {
	return l.label
}

// Handler 返回绑定的后端实例
func (l Logger) Handler() Handler {
	return l.handler
}

// Level 返回生效级别：实例覆盖优先，否则取 handler 级别
func (l Logger) Level() Level {
	if l.level != nil {
		return *l.level
	}
	if l.handler != nil {
		return l.handler.Level()
	}
	// 零值 Logger：永不放行
	return LevelCritical + 1
}

// SetLevel 设置实例级别覆盖
//
// 分配全新指针，已存在的副本不受影响（值语义）。
func (l *Logger) SetLevel(level Level) {
	l.level = &level
}

// Enabled 判断指定级别的调用是否会被接受
//
// 供调用方在构造昂贵参数前做级别预检。
func (l Logger) Enabled(level Level) bool {
	return l.handler != nil && level.AtLeast(l.Level())
}

// MetadataValue 按键读取元数据：实例覆盖层优先，其次 handler 存量
func (l Logger) MetadataValue(key string) (xmeta.Value, bool) {
	if v, ok := l.metadata[key]; ok {
		return v, true
	}
	if l.handler != nil {
		return l.handler.MetadataValue(key)
	}
	return xmeta.Value{}, false
}

// SetMetadataValue 按键写入实例覆盖层
//
// 写时复制：先克隆覆盖层再写入，保证已复制出去的 Logger 不受影响。
func (l *Logger) SetMetadataValue(key string, v xmeta.Value) {
	md := l.metadata.Clone()
	if md == nil {
		md = make(xmeta.Metadata, 1)
	}
	md[key] = v
	l.metadata = md
}

// WithMetadata 返回合并了额外元数据的派生 Logger
//
// 原 Logger 不变。同名键由 md 覆盖。
func (l Logger) WithMetadata(md xmeta.Metadata) Logger {
	if len(md) == 0 {
		return l
	}
	l.metadata = xmeta.Merge(l.metadata, md)
	return l
}

// WithHandler 返回换绑后端的派生 Logger
//
// 标识、级别覆盖与元数据覆盖层保留，原 Logger 不变。
func (l Logger) WithHandler(h Handler) Logger {
	l.handler = h
	return l
}

// WithSource 返回携带 source 覆盖的派生 Logger
//
// source 标识事件来源组件，与 label（创建者标识）区分。
// 空 source 表示恢复默认（从调用点文件推导）。
// 单次调用覆盖 source 的惯用形式：l.WithSource("gc").Info(...)。
func (l Logger) WithSource(source string) Logger {
	l.source = source
	return l
}

// =============================================================================
// 日志方法
//
// 门算法：生效级别 = 实例覆盖 ?? handler 级别；低于生效级别的调用
// 立即返回——不合并、不分配、不触碰 handler。这是占主导的热路径。
// 日志调用定义为不会失败的副作用操作，任何交付失败都不会回到调用方。
// =============================================================================

// Trace 记录 trace 级别日志
//
// md 可省略；传多个时依序合并（右侧覆盖同名键）。
func (l Logger) Trace(msg string, md ...xmeta.Metadata) {
	if !l.Enabled(LevelTrace) {
		return
	}
	l.log(LevelTrace, msg, mergeArgs(md), nil)
}

// Debug 记录 debug 级别日志
func (l Logger) Debug(msg string, md ...xmeta.Metadata) {
	if !l.Enabled(LevelDebug) {
		return
	}
	l.log(LevelDebug, msg, mergeArgs(md), nil)
}

// Info 记录 info 级别日志
func (l Logger) Info(msg string, md ...xmeta.Metadata) {
	if !l.Enabled(LevelInfo) {
		return
	}
	l.log(LevelInfo, msg, mergeArgs(md), nil)
}

// Notice 记录 notice 级别日志
func (l Logger) Notice(msg string, md ...xmeta.Metadata) {
	if !l.Enabled(LevelNotice) {
		return
	}
	l.log(LevelNotice, msg, mergeArgs(md), nil)
}

// Warning 记录 warning 级别日志
func (l Logger) Warning(msg string, md ...xmeta.Metadata) {
	if !l.Enabled(LevelWarning) {
		return
	}
	l.log(LevelWarning, msg, mergeArgs(md), nil)
}

// Error 记录 error 级别日志
func (l Logger) Error(msg string, md ...xmeta.Metadata) {
	if !l.Enabled(LevelError) {
		return
	}
	l.log(LevelError, msg, mergeArgs(md), nil)
}

// Critical 记录 critical 级别日志
func (l Logger) Critical(msg string, md ...xmeta.Metadata) {
	if !l.Enabled(LevelCritical) {
		return
	}
	l.log(LevelCritical, msg, mergeArgs(md), nil)
}

// Log 按指定级别记录日志
func (l Logger) Log(level Level, msg string, md ...xmeta.Metadata) {
	if !l.Enabled(level) {
		return
	}
	l.log(level, msg, mergeArgs(md), nil)
}

// Logf 按指定级别记录格式化日志
//
// 格式化发生在级别门之后：被过滤的调用不执行 Sprintf。
func (l Logger) Logf(level Level, format string, args ...any) {
	if !l.Enabled(level) {
		return
	}
	l.log(level, fmt.Sprintf(format, args...), nil, nil)
}

// LogLazy 按指定级别记录完全延迟求值的日志
//
// msgFn 与 mdFn 只在级别门通过后调用，被过滤的调用零成本。
// 用于消息或元数据构造开销大的场景（序列化、统计聚合等）。
func (l Logger) LogLazy(level Level, msgFn func() string, mdFn func() xmeta.Metadata) {
	if !l.Enabled(level) {
		return
	}
	msg := ""
	if msgFn != nil {
		msg = msgFn()
	}
	var md xmeta.Metadata
	if mdFn != nil {
		md = mdFn()
	}
	l.log(level, msg, md, nil)
}

// LogAttributed 按指定级别记录带属性元数据的日志
//
// 隐私感知的 Handler 原样接收属性；其余 Handler 自动走脱敏降级路径，
// 私有值内容绝不泄漏。
func (l Logger) LogAttributed(level Level, msg string, am xmeta.AttributedMetadata) {
	if !l.Enabled(level) {
		return
	}
	l.log(level, msg, nil, am)
}

// log 合并元数据各层并向 Handler 交付恰好一次
//
// 合并优先级从低到高：
//
//	Provider 环境层 < Handler 存量层 < Logger 覆盖层 < 显式调用层
//
// 带属性元数据在带属性粒度上按同样的层次合并；降级脱敏时按层并入
// 对应的普通层位置（同层内带属性值覆盖同名普通值）。
func (l Logger) log(level Level, msg string, explicit xmeta.Metadata, am xmeta.AttributedMetadata) {
	h := l.handler

	var origin Origin
	source := l.source
	if pc, file, line, ok := runtime.Caller(callerSkip); ok {
		origin = Origin{File: file, Line: line}
		if fn := runtime.FuncForPC(pc); fn != nil {
			origin.Function = fn.Name()
		}
		if source == "" {
			source = deriveSource(file)
		}
	}

	// Provider 环境层：每次调用重新取值，绝不缓存
	var provided xmeta.Metadata
	if ph, ok := h.(ProviderHandler); ok {
		if p := ph.MetadataProvider(); p != nil {
			provided = p()
		}
	}
	var providedAttr xmeta.AttributedMetadata
	if aph, ok := h.(AttributedProviderHandler); ok {
		if p := aph.AttributedMetadataProvider(); p != nil {
			providedAttr = p()
		}
	}

	// Handler 存量带属性层
	var storedAttr xmeta.AttributedMetadata
	if as, ok := h.(AttributedStoreHandler); ok {
		storedAttr = as.AttributedMetadata()
	}

	r := Record{
		Time:    time.Now(),
		Level:   level,
		Message: msg,
		Label:   l.label,
		Source:  source,
		Origin:  origin,
	}

	attributed := xmeta.MergeAttributed(providedAttr, storedAttr, am)

	if ah, ok := h.(AttributedHandler); ok && attributed != nil {
		// 隐私感知路径：属性原样传递，脱敏决策留给下游
		r.Metadata = xmeta.Merge(provided, h.Metadata(), l.metadata, explicit)
		r.Attributed = attributed
		ah.LogAttributed(r)
		return
	}

	// 降级路径：逐层脱敏并入普通元数据，私有值替换为固定标记
	r.Metadata = xmeta.Merge(
		provided, providedAttr.Redact(),
		h.Metadata(), storedAttr.Redact(),
		l.metadata,
		explicit, am.Redact(),
	)
	h.Log(r)
}

// mergeArgs 归并可变参数形式的元数据
func mergeArgs(md []xmeta.Metadata) xmeta.Metadata {
	switch len(md) {
	case 0:
		return nil
	case 1:
		return md[0]
	default:
		return xmeta.Merge(md...)
	}
}

// deriveSource 从调用点文件路径推导默认 source
//
// 取文件所在目录名作为组件标识（Go 惯例下即包目录名），
// 与 label（创建者标识）区分，用于粗粒度过滤。
func deriveSource(file string) string {
	dir := filepath.Dir(file)
	if dir == "." || dir == string(filepath.Separator) {
		return "unknown"
	}
	return filepath.Base(dir)
}
