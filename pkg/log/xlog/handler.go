// handler.go 定义 Handler 契约：每个日志后端必须实现的能力集，
// 以及通过接口断言发现的可选扩展能力。
//
// 设计理念：
//   - 最小必选接口，扩展能力全部可选（隐私感知、Provider 槽位、带属性存储）
//   - 不感知隐私的后端自动获得脱敏降级，私有值绝不泄漏
//   - 每个 Logger 持有独立的 Handler 实例；跨实例共享状态是后端作者的
//     显式选择，且必须自带同步
package xlog

import (
	"time"

	"github.com/omeyang/logkit/pkg/log/xmeta"
)

// Origin 日志调用点位置，供诊断工具使用
type Origin struct {
	File     string
	Function string
	Line     int
}

// Record 交付给 Handler 的日志事件
//
// Metadata 为合并后的普通元数据（空时为 nil）。
// Attributed 仅在隐私感知路径上填充，是并行的富形式；
// 普通路径上带属性值已被脱敏并入 Metadata。
type Record struct {
	Time       time.Time
	Level      Level
	Message    string
	Metadata   xmeta.Metadata
	Attributed xmeta.AttributedMetadata
	Label      string
	Source     string
	Origin     Origin
}

// Provider 外部环境元数据提供函数
//
// 每次被接受的日志调用都会重新调用，绝不缓存——环境上下文随时可能变化。
// 这是外部上下文传播机制（请求上下文、链路追踪库）接入的缝隙。
type Provider func() xmeta.Metadata

// AttributedProvider Provider 的带属性变体
type AttributedProvider func() xmeta.AttributedMetadata

// Handler 日志后端契约
//
// 每个后端必须实现的必选能力集：接收事件、读写存量元数据、读写级别。
//
// 独立副本语义：工厂为每个 Logger 构造全新实例，修改一个实例的
// 级别/元数据不得影响其他实例。需要跨实例共享状态的后端
// （如共享收集器）必须显式使用内部同步的共享对象，这是文档化的
// 逃生门而非默认行为。
//
// 交付失败（I/O 错误等）由 Handler 自行吞掉或降级，
// 绝不向仅仅想记一条日志的调用方抛出。
type Handler interface {
	// Log 接收一条日志事件
	Log(r Record)

	// Level 返回当前级别
	Level() Level

	// SetLevel 设置级别
	SetLevel(level Level)

	// Metadata 返回存量元数据集合
	Metadata() xmeta.Metadata

	// SetMetadata 替换存量元数据集合
	SetMetadata(md xmeta.Metadata)

	// MetadataValue 按键读取存量元数据
	MetadataValue(key string) (xmeta.Value, bool)

	// SetMetadataValue 按键写入存量元数据
	SetMetadataValue(key string, v xmeta.Value)
}

// =============================================================================
// 可选扩展能力
//
// 设计决策: 用接口断言实现能力集多态，能力缺失时走降级路径而非报错。
// 调度方逐项探测，缺失能力走包装降级路径。
// =============================================================================

// AttributedHandler 隐私感知后端
//
// 实现此接口的后端自行决定脱敏策略（如桥接到平台原生脱敏设施），
// Record.Attributed 原样传递隐私标记。未实现时由调度方先脱敏再走 Log。
type AttributedHandler interface {
	// LogAttributed 接收带属性形式的日志事件
	// r.Attributed 携带未脱敏的带属性元数据，隐私标记不得丢弃
	LogAttributed(r Record)
}

// ProviderHandler 带环境元数据 Provider 槽位的后端
type ProviderHandler interface {
	// MetadataProvider 返回当前 Provider，未设置返回 nil
	MetadataProvider() Provider

	// SetMetadataProvider 设置 Provider
	SetMetadataProvider(p Provider)
}

// AttributedProviderHandler 带属性 Provider 槽位的后端
type AttributedProviderHandler interface {
	// AttributedMetadataProvider 返回当前带属性 Provider，未设置返回 nil
	AttributedMetadataProvider() AttributedProvider

	// SetAttributedMetadataProvider 设置带属性 Provider
	SetAttributedMetadataProvider(p AttributedProvider)
}

// AttributedStoreHandler 支持带属性元数据存量读写的后端
type AttributedStoreHandler interface {
	// AttributedMetadata 返回存量带属性元数据集合
	AttributedMetadata() xmeta.AttributedMetadata

	// AttributedValue 按键读取存量带属性元数据
	AttributedValue(key string) (xmeta.AttributedValue, bool)

	// SetAttributedValue 按键写入存量带属性元数据
	SetAttributedValue(key string, v xmeta.AttributedValue)
}

// CloneHandler 支持显式独立拷贝的后端
//
// Go 没有隐式值拷贝的 struct 协议约束，独立副本通过显式 Clone 实现：
// 返回元数据深拷贝的全新实例。
type CloneHandler interface {
	// Clone 返回独立的新实例，元数据深拷贝，互不别名
	Clone() Handler
}

// Factory 按 label 构造 Handler 的工厂函数
//
// 这是核心与所有具体后端（控制台、文件、网络、测试捕获）之间唯一的接缝。
type Factory func(label string) Handler
