package xsink

import (
	"sync"

	"github.com/omeyang/logkit/pkg/log/xlog"
	"github.com/omeyang/logkit/pkg/log/xmeta"
)

// store Handler 契约要求的可变状态：级别、存量元数据、Provider 槽位
//
// 本包各后端嵌入复用。所有读写持锁，read 路径返回深拷贝避免外部别名。
type store struct {
	mu           sync.Mutex
	level        xlog.Level
	metadata     xmeta.Metadata
	attributed   xmeta.AttributedMetadata
	provider     xlog.Provider
	attrProvider xlog.AttributedProvider
}

// Level 返回当前级别
func (s *store) Level() xlog.Level {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.level
}

// SetLevel 设置级别
func (s *store) SetLevel(level xlog.Level) {
	s.mu.Lock()
	s.level = level
	s.mu.Unlock()
}

// Metadata 返回存量元数据（深拷贝）
func (s *store) Metadata() xmeta.Metadata {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.metadata.Clone()
}

// SetMetadata 替换存量元数据
func (s *store) SetMetadata(md xmeta.Metadata) {
	s.mu.Lock()
	s.metadata = md.Clone()
	s.mu.Unlock()
}

// MetadataValue 按键读取存量元数据
func (s *store) MetadataValue(key string) (xmeta.Value, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.metadata[key]
	return v, ok
}

// SetMetadataValue 按键写入存量元数据
func (s *store) SetMetadataValue(key string, v xmeta.Value) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.metadata == nil {
		s.metadata = make(xmeta.Metadata, 1)
	}
	s.metadata[key] = v
}

// AttributedMetadata 返回存量带属性元数据（深拷贝）
func (s *store) AttributedMetadata() xmeta.AttributedMetadata {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.attributed.Clone()
}

// AttributedValue 按键读取存量带属性元数据
func (s *store) AttributedValue(key string) (xmeta.AttributedValue, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.attributed[key]
	return v, ok
}

// SetAttributedValue 按键写入存量带属性元数据
func (s *store) SetAttributedValue(key string, v xmeta.AttributedValue) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.attributed == nil {
		s.attributed = make(xmeta.AttributedMetadata, 1)
	}
	s.attributed[key] = v
}

// MetadataProvider 返回当前 Provider
func (s *store) MetadataProvider() xlog.Provider {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.provider
}

// SetMetadataProvider 设置 Provider
func (s *store) SetMetadataProvider(p xlog.Provider) {
	s.mu.Lock()
	s.provider = p
	s.mu.Unlock()
}

// AttributedMetadataProvider 返回当前带属性 Provider
func (s *store) AttributedMetadataProvider() xlog.AttributedProvider {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.attrProvider
}

// SetAttributedMetadataProvider 设置带属性 Provider
func (s *store) SetAttributedMetadataProvider(p xlog.AttributedProvider) {
	s.mu.Lock()
	s.attrProvider = p
	s.mu.Unlock()
}

// copyTo 把状态深拷贝进 dst（Clone 支撑），不触碰 dst 的锁
func (s *store) copyTo(dst *store) {
	s.mu.Lock()
	defer s.mu.Unlock()
	dst.level = s.level
	dst.metadata = s.metadata.Clone()
	dst.attributed = s.attributed.Clone()
	dst.provider = s.provider
	dst.attrProvider = s.attrProvider
}
