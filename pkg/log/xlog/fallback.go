package xlog

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/omeyang/logkit/pkg/log/xmeta"
)

var (
	_ Handler      = (*fallbackHandler)(nil)
	_ CloneHandler = (*fallbackHandler)(nil)
)

// fallbackHandler 内置后备后端：未 Bootstrap 时的最小可用输出
//
// 单行文本写 stderr。仅保证"进程没配置日志也能看到日志"，
// 功能完整的后端（JSON、Provider 槽位、隐私感知）在 xsink 包。
//
// 设计决策: 后备实现留在 xlog 包内而非复用 xsink.StreamHandler，
// 避免核心包依赖后端包形成环。
type fallbackHandler struct {
	mu       sync.Mutex
	out      io.Writer
	level    Level
	metadata xmeta.Metadata
}

func newFallbackHandler(string) Handler {
	return &fallbackHandler{out: os.Stderr, level: LevelInfo}
}

func (h *fallbackHandler) Log(r Record) {
	var sb strings.Builder
	sb.WriteString(r.Time.Format("2006-01-02T15:04:05.000Z0700"))
	sb.WriteByte(' ')
	sb.WriteString(r.Level.String())
	sb.WriteString(" [")
	sb.WriteString(r.Label)
	sb.WriteString("] ")
	sb.WriteString(r.Message)
	for _, k := range sortedKeys(r.Metadata) {
		sb.WriteByte(' ')
		sb.WriteString(k)
		sb.WriteByte('=')
		sb.WriteString(r.Metadata[k].String())
	}
	sb.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	// 写失败静默丢弃：日志交付失败不回到调用方
	_, _ = fmt.Fprint(h.out, sb.String())
}

func (h *fallbackHandler) Level() Level {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.level
}

func (h *fallbackHandler) SetLevel(level Level) {
	h.mu.Lock()
	h.level = level
	h.mu.Unlock()
}

func (h *fallbackHandler) Metadata() xmeta.Metadata {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.metadata.Clone()
}

func (h *fallbackHandler) SetMetadata(md xmeta.Metadata) {
	h.mu.Lock()
	h.metadata = md.Clone()
	h.mu.Unlock()
}

func (h *fallbackHandler) MetadataValue(key string) (xmeta.Value, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	v, ok := h.metadata[key]
	return v, ok
}

func (h *fallbackHandler) SetMetadataValue(key string, v xmeta.Value) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.metadata == nil {
		h.metadata = make(xmeta.Metadata, 1)
	}
	h.metadata[key] = v
}

func (h *fallbackHandler) Clone() Handler {
	h.mu.Lock()
	defer h.mu.Unlock()
	return &fallbackHandler{out: h.out, level: h.level, metadata: h.metadata.Clone()}
}

func sortedKeys(md xmeta.Metadata) []string {
	if len(md) == 0 {
		return nil
	}
	keys := make([]string, 0, len(md))
	for k := range md {
		keys = append(keys, k)
	}
	// 小切片插入排序足够，避免引入 sort 依赖的闭包分配
	for i := 1; i < len(keys); i++ {
		for j := i; j > 0 && keys[j] < keys[j-1]; j-- {
			keys[j], keys[j-1] = keys[j-1], keys[j]
		}
	}
	return keys
}
