package xsink

import (
	"encoding/json"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/omeyang/logkit/pkg/log/xlog"
	"github.com/omeyang/logkit/pkg/log/xmeta"
)

// 编译时接口检查
var (
	_ xlog.Handler                   = (*StreamHandler)(nil)
	_ xlog.ProviderHandler           = (*StreamHandler)(nil)
	_ xlog.AttributedProviderHandler = (*StreamHandler)(nil)
	_ xlog.AttributedStoreHandler    = (*StreamHandler)(nil)
	_ xlog.CloneHandler              = (*StreamHandler)(nil)
)

// Format 输出格式
type Format string

const (
	// FormatText 单行文本格式
	FormatText Format = "text"

	// FormatJSON 单行 JSON 格式
	FormatJSON Format = "json"
)

// timeLayout 时间戳格式，固定毫秒精度
const timeLayout = "2006-01-02T15:04:05.000Z0700"

// StreamOption StreamHandler 配置选项
type StreamOption func(*StreamHandler)

// WithFormat 设置输出格式（默认 text）
//
// 未知格式静默回落到 text：后端构造不因配置瑕疵失败。
func WithFormat(f Format) StreamOption {
	return func(h *StreamHandler) {
		if f == FormatJSON {
			h.format = FormatJSON
		} else {
			h.format = FormatText
		}
	}
}

// WithLevel 设置初始级别（默认 info）
func WithLevel(level xlog.Level) StreamOption {
	return func(h *StreamHandler) {
		h.store.level = level
	}
}

// StreamHandler 按行写 io.Writer 的后端
//
// 不感知隐私：带属性调用由门面先脱敏再到达，私有值只会以
// xmeta.RedactedValue 形式出现在输出里。
//
// 同一 writer 被多个实例共享时由各实例的锁串行化单行写入；
// 行内不会交错，行间顺序由调度决定。
type StreamHandler struct {
	store
	out    io.Writer
	format Format
}

// NewStream 构造 StreamHandler
func NewStream(w io.Writer, opts ...StreamOption) *StreamHandler {
	h := &StreamHandler{out: w, format: FormatText}
	h.store.level = xlog.LevelInfo
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// StderrFactory 返回每个 Logger 构造独立 stderr 实例的工厂
//
// 惯用法：xlog.Bootstrap(xsink.StderrFactory())。
func StderrFactory(opts ...StreamOption) xlog.Factory {
	return func(string) xlog.Handler {
		return NewStream(os.Stderr, opts...)
	}
}

// StdoutFactory 返回每个 Logger 构造独立 stdout 实例的工厂
func StdoutFactory(opts ...StreamOption) xlog.Factory {
	return func(string) xlog.Handler {
		return NewStream(os.Stdout, opts...)
	}
}

// Log 渲染并写出一行
//
// 写失败静默丢弃：日志交付失败绝不回到调用方。
func (h *StreamHandler) Log(r xlog.Record) {
	var line string
	if h.format == FormatJSON {
		line = renderJSON(r)
	} else {
		line = renderText(r)
	}

	h.mu.Lock()
	_, _ = io.WriteString(h.out, line)
	h.mu.Unlock()
}

// Clone 返回独立的新实例（元数据深拷贝，共享 writer）
func (h *StreamHandler) Clone() xlog.Handler {
	c := &StreamHandler{out: h.out, format: h.format}
	h.store.copyTo(&c.store)
	return c
}

// renderText 单行文本渲染，元数据按键排序保证确定性
func renderText(r xlog.Record) string {
	var sb strings.Builder
	sb.WriteString(r.Time.Format(timeLayout))
	sb.WriteByte(' ')
	sb.WriteString(r.Level.String())
	sb.WriteString(" [")
	sb.WriteString(r.Label)
	sb.WriteByte(']')
	if r.Source != "" {
		sb.WriteString(" (")
		sb.WriteString(r.Source)
		sb.WriteByte(')')
	}
	sb.WriteByte(' ')
	sb.WriteString(r.Message)
	for _, k := range metadataKeys(r.Metadata) {
		sb.WriteByte(' ')
		sb.WriteString(k)
		sb.WriteByte('=')
		sb.WriteString(r.Metadata[k].String())
	}
	sb.WriteByte('\n')
	return sb.String()
}

// streamRecord JSON 输出形状
//
// 元数据值统一用确定性字符串渲染：下游解析工具拿到的形式与 text
// 格式一致，不随值的内部变体变化。
type streamRecord struct {
	Time     string            `json:"time"`
	Level    string            `json:"level"`
	Label    string            `json:"label"`
	Source   string            `json:"source,omitempty"`
	Message  string            `json:"message"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

func renderJSON(r xlog.Record) string {
	sr := streamRecord{
		Time:    r.Time.Format(timeLayout),
		Level:   r.Level.String(),
		Label:   r.Label,
		Source:  r.Source,
		Message: r.Message,
	}
	if len(r.Metadata) > 0 {
		sr.Metadata = make(map[string]string, len(r.Metadata))
		for k, v := range r.Metadata {
			sr.Metadata[k] = v.String()
		}
	}
	data, err := json.Marshal(sr)
	if err != nil {
		// 理论上不可达（全字符串字段），仍然降级而非 panic
		return renderText(r)
	}
	return string(data) + "\n"
}

func metadataKeys(md xmeta.Metadata) []string {
	if len(md) == 0 {
		return nil
	}
	keys := make([]string, 0, len(md))
	for k := range md {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
