package xlogconf

import (
	"fmt"
	"io"

	"github.com/omeyang/logkit/pkg/log/xlog"
	"github.com/omeyang/logkit/pkg/log/xmeta"
	"github.com/omeyang/logkit/pkg/log/xsink"
)

// Settings 日志设置
//
// 配置文件顶层结构，示例（YAML）：
//
//	level: debug
//	format: json
//	metadata:
//	  env: staging
//	  region: eu-1
//	private:
//	  - api_key
type Settings struct {
	// Level 日志级别（trace/debug/info/notice/warning/error/critical）
	// 为空表示不修改级别
	Level string `koanf:"level"`

	// Format 输出格式（text/json），仅 Factory 使用
	Format string `koanf:"format"`

	// Metadata 静态元数据，随每条日志输出
	Metadata map[string]string `koanf:"metadata"`

	// Private 隐私键清单：Metadata 中列入的键以隐私标记写入后端
	Private []string `koanf:"private"`
}

// ParsedLevel 解析级别字段
//
// 为空时返回 (xlog.LevelInfo, false, nil)。
func (s Settings) ParsedLevel() (xlog.Level, bool, error) {
	if s.Level == "" {
		return xlog.LevelInfo, false, nil
	}
	lvl, err := xlog.ParseLevel(s.Level)
	if err != nil {
		return xlog.LevelInfo, false, err
	}
	return lvl, true, nil
}

// Apply 把设置推到一组后端
//
// 级别经 SetLevel 下发；静态元数据经 SetMetadataValue 下发。
// 列入 Private 的键：支持带属性存量的后端以隐私标记写入，
// 其余后端写入固定脱敏标记 xmeta.RedactedValue——原始值绝不进入
// 不感知隐私的后端。
func (s Settings) Apply(handlers ...xlog.Handler) error {
	lvl, hasLevel, err := s.ParsedLevel()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrParseFailed, err)
	}

	private := make(map[string]bool, len(s.Private))
	for _, k := range s.Private {
		private[k] = true
	}

	for _, h := range handlers {
		if h == nil {
			continue
		}
		if hasLevel {
			h.SetLevel(lvl)
		}
		for k, v := range s.Metadata {
			if !private[k] {
				h.SetMetadataValue(k, xmeta.String(v))
				continue
			}
			if as, ok := h.(xlog.AttributedStoreHandler); ok {
				as.SetAttributedValue(k, xmeta.Private(xmeta.String(v)))
				continue
			}
			h.SetMetadataValue(k, xmeta.String(xmeta.RedactedValue))
		}
	}
	return nil
}

// Factory 按设置构造流式后端工厂
//
// 每个 Logger 获得独立实例（值语义），级别/格式/元数据取自设置。
// 惯用法：
//
//	cfg, _ := xlogconf.Load("/etc/app/logging.yaml")
//	s, _ := cfg.Settings()
//	xlog.Bootstrap(s.Factory(os.Stderr))
func (s Settings) Factory(w io.Writer) xlog.Factory {
	return func(label string) xlog.Handler {
		var opts []xsink.StreamOption
		if s.Format == string(xsink.FormatJSON) {
			opts = append(opts, xsink.WithFormat(xsink.FormatJSON))
		}
		if lvl, ok, err := s.ParsedLevel(); err == nil && ok {
			opts = append(opts, xsink.WithLevel(lvl))
		}
		h := xsink.NewStream(w, opts...)
		// 静态元数据与隐私标记随实例构造写入；解析错误已在上面吞掉，
		// 工厂路径保持不失败（日志构造不 panic）
		_ = Settings{Metadata: s.Metadata, Private: s.Private}.Apply(h)
		return h
	}
}
