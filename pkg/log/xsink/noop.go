package xsink

import (
	"github.com/omeyang/logkit/pkg/log/xlog"
	"github.com/omeyang/logkit/pkg/log/xmeta"
)

var (
	_ xlog.Handler      = NoopHandler{}
	_ xlog.CloneHandler = NoopHandler{}
)

// NoopHandler 丢弃一切的后端
//
// 级别固定为永不放行，所有写操作是无操作。用于关闭某个子系统的日志
// 或在基准测试里隔离 I/O。
type NoopHandler struct{}

// NoopFactory 返回构造 NoopHandler 的工厂
func NoopFactory() xlog.Factory {
	return func(string) xlog.Handler { return NoopHandler{} }
}

// Log 丢弃事件
func (NoopHandler) Log(xlog.Record) {}

// Level 返回永不放行的级别
func (NoopHandler) Level() xlog.Level { return xlog.LevelCritical + 1 }

// SetLevel 无操作
func (NoopHandler) SetLevel(xlog.Level) {}

// Metadata 返回 nil
func (NoopHandler) Metadata() xmeta.Metadata { return nil }

// SetMetadata 无操作
func (NoopHandler) SetMetadata(xmeta.Metadata) {}

// MetadataValue 永远未命中
func (NoopHandler) MetadataValue(string) (xmeta.Value, bool) { return xmeta.Value{}, false }

// SetMetadataValue 无操作
func (NoopHandler) SetMetadataValue(string, xmeta.Value) {}

// Clone 返回自身（无状态）
func (NoopHandler) Clone() xlog.Handler { return NoopHandler{} }
