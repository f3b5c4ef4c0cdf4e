package xmeta

// =============================================================================
// 带属性元数据（隐私标记）
//
// 在 Value 之上包一层属性。当前唯一的属性维度是隐私级别：
// 公开（默认）或私有。私有值在进入不感知隐私的消费端前必须脱敏。
// =============================================================================

// RedactedValue 私有值的固定脱敏标记
//
// 对下游日志解析工具而言这是约定的一部分，不可更改。
const RedactedValue = "<private>"

// Privacy 隐私级别
type Privacy uint8

const (
	// PrivacyPublic 公开值（默认），原样传递
	PrivacyPublic Privacy = iota

	// PrivacyPrivate 私有值，消费端不感知隐私时替换为 RedactedValue
	PrivacyPrivate
)

// String 返回隐私级别的字符串表示
func (p Privacy) String() string {
	if p == PrivacyPrivate {
		return "private"
	}
	return "public"
}

// Attributes 元数据值的附加属性
//
// 零值表示公开。未来可能扩展更多维度（如采样提示），当前仅隐私。
type Attributes struct {
	Privacy Privacy
}

// AttributedValue 带属性的元数据值
type AttributedValue struct {
	Value      Value
	Attributes Attributes
}

// Public 构造公开值
func Public(v Value) AttributedValue {
	return AttributedValue{Value: v}
}

// Private 构造私有值
func Private(v Value) AttributedValue {
	return AttributedValue{Value: v, Attributes: Attributes{Privacy: PrivacyPrivate}}
}

// AttributedMetadata 带属性的元数据映射
type AttributedMetadata map[string]AttributedValue

// Clone 深拷贝
func (am AttributedMetadata) Clone() AttributedMetadata {
	if am == nil {
		return nil
	}
	out := make(AttributedMetadata, len(am))
	for k, v := range am {
		out[k] = AttributedValue{Value: v.Value.clone(), Attributes: v.Attributes}
	}
	return out
}

// Redact 脱敏为普通元数据
//
// 私有值替换为 [RedactedValue]，键名保留；公开值原样传递。
// 这是不感知隐私的 Handler 的默认降级路径：私有值内容绝不进入输出。
func (am AttributedMetadata) Redact() Metadata {
	if len(am) == 0 {
		return nil
	}
	out := make(Metadata, len(am))
	for k, v := range am {
		if v.Attributes.Privacy == PrivacyPrivate {
			out[k] = String(RedactedValue)
			continue
		}
		out[k] = v.Value
	}
	return out
}

// Values 丢弃属性，返回原始值形式
//
// 仅供感知隐私的 Handler 在自行完成脱敏决策后使用。
// 不感知隐私的路径必须走 [AttributedMetadata.Redact]。
func (am AttributedMetadata) Values() Metadata {
	if len(am) == 0 {
		return nil
	}
	out := make(Metadata, len(am))
	for k, v := range am {
		out[k] = v.Value
	}
	return out
}

// MergeAttributed 按层合并带属性元数据，右侧层覆盖左侧层的同名键
//
// 语义与 [Merge] 一致，但在带属性粒度上进行：覆盖以键为单位，
// 属性随值整体替换。
func MergeAttributed(layers ...AttributedMetadata) AttributedMetadata {
	total := 0
	for _, l := range layers {
		total += len(l)
	}
	if total == 0 {
		return nil
	}
	out := make(AttributedMetadata, total)
	for _, l := range layers {
		for k, v := range l {
			out[k] = v
		}
	}
	return out
}
