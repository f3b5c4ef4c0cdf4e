package xsink

import (
	"sync"

	"github.com/omeyang/logkit/pkg/log/xlog"
)

// 编译时接口检查
var (
	_ xlog.Handler                = (*CaptureHandler)(nil)
	_ xlog.AttributedStoreHandler = (*CaptureHandler)(nil)
	_ xlog.CloneHandler           = (*CaptureHandler)(nil)
	_ xlog.AttributedHandler      = (*AttributedCaptureHandler)(nil)
)

// entryStore 跨实例共享的记录收集器
//
// 这是 Handler 契约文档化的逃生门：Clone 出的副本各自持有独立的
// 级别/元数据，但共享同一收集器，测试可以从任一副本读取全部记录。
type entryStore struct {
	mu      sync.Mutex
	entries []xlog.Record
}

func (e *entryStore) append(r xlog.Record) {
	e.mu.Lock()
	e.entries = append(e.entries, r)
	e.mu.Unlock()
}

func (e *entryStore) snapshot() []xlog.Record {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]xlog.Record, len(e.entries))
	copy(out, e.entries)
	return out
}

func (e *entryStore) reset() {
	e.mu.Lock()
	e.entries = nil
	e.mu.Unlock()
}

// CaptureHandler 测试捕获后端（不感知隐私）
//
// 记录交付的完整 Record 供断言。带属性调用到达前已由门面脱敏，
// 适合验证默认脱敏路径。级别默认 trace（测试里全放行）。
type CaptureHandler struct {
	store
	sink *entryStore
}

// NewCapture 构造 CaptureHandler
func NewCapture() *CaptureHandler {
	h := &CaptureHandler{sink: &entryStore{}}
	h.store.level = xlog.LevelTrace
	return h
}

// CaptureFactory 返回共享同一收集器的工厂
//
// 工厂构造的每个实例有独立的级别/元数据（值语义），
// 但记录汇入同一收集器，便于测试跨 Logger 断言。
func CaptureFactory() (xlog.Factory, *CaptureHandler) {
	shared := NewCapture()
	return func(string) xlog.Handler {
		h := &CaptureHandler{sink: shared.sink}
		shared.store.copyTo(&h.store)
		return h
	}, shared
}

// Log 记录一条事件
func (h *CaptureHandler) Log(r xlog.Record) {
	h.sink.append(r)
}

// Entries 返回已记录事件的快照
func (h *CaptureHandler) Entries() []xlog.Record {
	return h.sink.snapshot()
}

// Reset 清空已记录事件
//
// 幂等：清空后再记一条，Entries 恰好返回那一条。
func (h *CaptureHandler) Reset() {
	h.sink.reset()
}

// Clone 返回共享收集器、状态独立的新实例
func (h *CaptureHandler) Clone() xlog.Handler {
	c := &CaptureHandler{sink: h.sink}
	h.store.copyTo(&c.store)
	return c
}

// AttributedCaptureHandler 隐私感知的捕获后端
//
// 原样记录 Record.Attributed，隐私标记不脱敏，用于验证
// 感知路径上标记的逐字传递。
type AttributedCaptureHandler struct {
	CaptureHandler
}

// NewAttributedCapture 构造 AttributedCaptureHandler
func NewAttributedCapture() *AttributedCaptureHandler {
	h := &AttributedCaptureHandler{}
	h.store.level = xlog.LevelTrace
	h.sink = &entryStore{}
	return h
}

// LogAttributed 原样记录带属性事件
func (h *AttributedCaptureHandler) LogAttributed(r xlog.Record) {
	h.sink.append(r)
}

// Clone 返回共享收集器、状态独立的新实例
func (h *AttributedCaptureHandler) Clone() xlog.Handler {
	c := &AttributedCaptureHandler{}
	c.sink = h.sink
	h.store.copyTo(&c.store)
	return c
}
