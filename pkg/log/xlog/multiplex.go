package xlog

import (
	"github.com/omeyang/logkit/pkg/log/xmeta"
)

// 编译时接口检查
var (
	_ Handler                   = (*MultiplexHandler)(nil)
	_ AttributedHandler         = (*MultiplexHandler)(nil)
	_ ProviderHandler           = (*MultiplexHandler)(nil)
	_ AttributedStoreHandler    = (*MultiplexHandler)(nil)
	_ AttributedProviderHandler = (*MultiplexHandler)(nil)
	_ CloneHandler              = (*MultiplexHandler)(nil)
)

// MultiplexHandler 扇出组合器：把同一事件依序转发给 N 个成员后端
//
// 成员顺序即副作用顺序（顺序转发，不保证并行）。成员列表在构造后
// 不可变，自身无需加锁；成员各自负责内部同步。
type MultiplexHandler struct {
	handlers []Handler
}

// NewMultiplexHandler 构造扇出组合器
//
// 成员列表做防御性拷贝。零成员合法：级别视为永不放行。
func NewMultiplexHandler(handlers ...Handler) *MultiplexHandler {
	hs := make([]Handler, len(handlers))
	copy(hs, handlers)
	return &MultiplexHandler{handlers: hs}
}

// Handlers 返回成员快照（只读视图）
func (m *MultiplexHandler) Handlers() []Handler {
	hs := make([]Handler, len(m.handlers))
	copy(hs, m.handlers)
	return hs
}

// Log 把同一事件依序转发给每个成员
//
// 成员自身级别低于事件级别时跳过该成员：组合器的生效级别是成员级别的
// 最小值，放行的事件未必每个成员都想要。
func (m *MultiplexHandler) Log(r Record) {
	for _, h := range m.handlers {
		if r.Level.AtLeast(h.Level()) {
			h.Log(r)
		}
	}
}

// LogAttributed 带属性形式的扇出
//
// 隐私感知的成员原样接收属性；其余成员走脱敏降级，私有值不泄漏。
func (m *MultiplexHandler) LogAttributed(r Record) {
	var redacted Record
	haveRedacted := false
	for _, h := range m.handlers {
		if !r.Level.AtLeast(h.Level()) {
			continue
		}
		if ah, ok := h.(AttributedHandler); ok {
			ah.LogAttributed(r)
			continue
		}
		if !haveRedacted {
			redacted = r
			redacted.Metadata = xmeta.Merge(r.Metadata, r.Attributed.Redact())
			redacted.Attributed = nil
			haveRedacted = true
		}
		h.Log(redacted)
	}
}

// Level 返回成员级别的最小值
//
// 任一成员想要的事件都应通过 Logger 的级别门。零成员时返回永不放行的级别。
func (m *MultiplexHandler) Level() Level {
	if len(m.handlers) == 0 {
		return LevelCritical + 1
	}
	minLevel := m.handlers[0].Level()
	for _, h := range m.handlers[1:] {
		if l := h.Level(); l < minLevel {
			minLevel = l
		}
	}
	return minLevel
}

// SetLevel 统一设置所有成员的级别
//
// 设计决策: 组合器的级别是派生视图，setter 语义有歧义（全员设置、
// 忽略、还是报错）。这里选择对全体成员统一生效：与 keyed setter
// 的"写所有成员"保持一致，且行为可测试。
func (m *MultiplexHandler) SetLevel(level Level) {
	for _, h := range m.handlers {
		h.SetLevel(level)
	}
}

// Metadata 返回第一个成员的存量元数据
//
// 取首成员是任意但稳定的选择，与 MetadataValue 一致。零成员返回 nil。
func (m *MultiplexHandler) Metadata() xmeta.Metadata {
	if len(m.handlers) == 0 {
		return nil
	}
	return m.handlers[0].Metadata()
}

// SetMetadata 替换所有成员的存量元数据
func (m *MultiplexHandler) SetMetadata(md xmeta.Metadata) {
	for _, h := range m.handlers {
		h.SetMetadata(md.Clone())
	}
}

// MetadataValue 从第一个成员按键读取
func (m *MultiplexHandler) MetadataValue(key string) (xmeta.Value, bool) {
	if len(m.handlers) == 0 {
		return xmeta.Value{}, false
	}
	return m.handlers[0].MetadataValue(key)
}

// SetMetadataValue 向所有成员写入同一键值
func (m *MultiplexHandler) SetMetadataValue(key string, v xmeta.Value) {
	for _, h := range m.handlers {
		h.SetMetadataValue(key, v)
	}
}

// MetadataProvider 返回合并全部成员 Provider 的派生 Provider
//
// 成员都没有 Provider 时返回 nil。有多个时按成员顺序合并（后者覆盖）。
func (m *MultiplexHandler) MetadataProvider() Provider {
	var ps []Provider
	for _, h := range m.handlers {
		if ph, ok := h.(ProviderHandler); ok {
			if p := ph.MetadataProvider(); p != nil {
				ps = append(ps, p)
			}
		}
	}
	switch len(ps) {
	case 0:
		return nil
	case 1:
		return ps[0]
	}
	return func() xmeta.Metadata {
		layers := make([]xmeta.Metadata, len(ps))
		for i, p := range ps {
			layers[i] = p()
		}
		return xmeta.Merge(layers...)
	}
}

// SetMetadataProvider 向所有支持 Provider 槽位的成员设置同一 Provider
func (m *MultiplexHandler) SetMetadataProvider(p Provider) {
	for _, h := range m.handlers {
		if ph, ok := h.(ProviderHandler); ok {
			ph.SetMetadataProvider(p)
		}
	}
}

// AttributedMetadataProvider 返回合并全部成员带属性 Provider 的派生 Provider
func (m *MultiplexHandler) AttributedMetadataProvider() AttributedProvider {
	var ps []AttributedProvider
	for _, h := range m.handlers {
		if ph, ok := h.(AttributedProviderHandler); ok {
			if p := ph.AttributedMetadataProvider(); p != nil {
				ps = append(ps, p)
			}
		}
	}
	switch len(ps) {
	case 0:
		return nil
	case 1:
		return ps[0]
	}
	return func() xmeta.AttributedMetadata {
		layers := make([]xmeta.AttributedMetadata, len(ps))
		for i, p := range ps {
			layers[i] = p()
		}
		return xmeta.MergeAttributed(layers...)
	}
}

// SetAttributedMetadataProvider 向所有支持带属性 Provider 槽位的成员设置
func (m *MultiplexHandler) SetAttributedMetadataProvider(p AttributedProvider) {
	for _, h := range m.handlers {
		if ph, ok := h.(AttributedProviderHandler); ok {
			ph.SetAttributedMetadataProvider(p)
		}
	}
}

// AttributedMetadata 返回第一个支持带属性存量的成员的集合
func (m *MultiplexHandler) AttributedMetadata() xmeta.AttributedMetadata {
	for _, h := range m.handlers {
		if as, ok := h.(AttributedStoreHandler); ok {
			return as.AttributedMetadata()
		}
	}
	return nil
}

// AttributedValue 从第一个支持带属性存量的成员按键读取
func (m *MultiplexHandler) AttributedValue(key string) (xmeta.AttributedValue, bool) {
	for _, h := range m.handlers {
		if as, ok := h.(AttributedStoreHandler); ok {
			return as.AttributedValue(key)
		}
	}
	return xmeta.AttributedValue{}, false
}

// SetAttributedValue 向所有支持带属性存量的成员写入同一键值
func (m *MultiplexHandler) SetAttributedValue(key string, v xmeta.AttributedValue) {
	for _, h := range m.handlers {
		if as, ok := h.(AttributedStoreHandler); ok {
			as.SetAttributedValue(key, v)
		}
	}
}

// Clone 返回成员逐个克隆后的新组合器
//
// 不支持 [CloneHandler] 的成员按引用保留（该成员自行负责共享状态同步）。
func (m *MultiplexHandler) Clone() Handler {
	hs := make([]Handler, len(m.handlers))
	for i, h := range m.handlers {
		if ch, ok := h.(CloneHandler); ok {
			hs[i] = ch.Clone()
			continue
		}
		hs[i] = h
	}
	return &MultiplexHandler{handlers: hs}
}
