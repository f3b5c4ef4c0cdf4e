package xlogconf

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

// 加载错误
var (
	// ErrEmptyPath 配置文件路径为空
	ErrEmptyPath = errors.New("xlogconf: empty config path")

	// ErrUnsupportedFormat 不支持的配置格式
	ErrUnsupportedFormat = errors.New("xlogconf: unsupported format")

	// ErrLoadFailed 配置读取失败
	ErrLoadFailed = errors.New("xlogconf: load failed")

	// ErrParseFailed 配置解析失败
	ErrParseFailed = errors.New("xlogconf: parse failed")

	// ErrNotReloadable 从字节数据创建的配置不支持重载/监视
	ErrNotReloadable = errors.New("xlogconf: config not backed by a file")
)

// Format 配置文件格式
type Format string

// 支持的配置格式
const (
	// FormatYAML YAML 格式（推荐用于 K8s ConfigMap）
	FormatYAML Format = "yaml"

	// FormatJSON JSON 格式
	FormatJSON Format = "json"
)

// configDelim koanf 键分隔符
const configDelim = "."

// configTag 结构体标签名
const configTag = "koanf"

// Config 日志配置实例
//
// 并发安全：Reload 与 Settings 可并发调用。
type Config struct {
	mu      sync.RWMutex
	k       *koanf.Koanf
	path    string
	format  Format
	isBytes bool
}

// Load 从文件加载日志配置
//
// 根据扩展名自动检测格式（.yaml/.yml 或 .json）。
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, ErrEmptyPath
	}

	format, err := detectFormat(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadFailed, err)
	}

	k := koanf.New(configDelim)
	if err := loadData(k, data, format); err != nil {
		return nil, err
	}

	return &Config{k: k, path: path, format: format}, nil
}

// LoadBytes 从字节数据加载日志配置
//
// 需要显式指定格式，适用于 K8s ConfigMap 等场景。空数据得到空配置
// （Settings 返回零值），与文件路径加载空文件的行为一致。
func LoadBytes(data []byte, format Format) (*Config, error) {
	if format != FormatYAML && format != FormatJSON {
		return nil, ErrUnsupportedFormat
	}

	k := koanf.New(configDelim)
	if len(data) > 0 {
		if err := loadData(k, data, format); err != nil {
			return nil, err
		}
	}

	return &Config{k: k, format: format, isBytes: true}, nil
}

// Settings 返回当前解析出的日志设置
func (c *Config) Settings() (Settings, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var s Settings
	if err := c.k.UnmarshalWithConf("", &s, koanf.UnmarshalConf{Tag: configTag}); err != nil {
		return Settings{}, fmt.Errorf("%w: %w", ErrParseFailed, err)
	}
	return s, nil
}

// Reload 重新加载配置文件
//
// 并发安全。仅对文件加载的配置有效，字节数据配置返回 ErrNotReloadable。
func (c *Config) Reload() error {
	if c.isBytes {
		return ErrNotReloadable
	}

	data, err := os.ReadFile(c.path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrLoadFailed, err)
	}

	newK := koanf.New(configDelim)
	if err := loadData(newK, data, c.format); err != nil {
		return err
	}

	c.mu.Lock()
	c.k = newK
	c.mu.Unlock()
	return nil
}

// Path 返回配置文件路径，字节数据配置返回空字符串
func (c *Config) Path() string {
	return c.path
}

// Format 返回配置格式
func (c *Config) Format() Format {
	return c.format
}

// detectFormat 根据文件扩展名检测配置格式
func detectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: unknown extension %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// loadData 加载数据到 koanf 实例
func loadData(k *koanf.Koanf, data []byte, format Format) error {
	var parser koanf.Parser
	switch format {
	case FormatYAML:
		parser = yaml.Parser()
	case FormatJSON:
		parser = json.Parser()
	default:
		return ErrUnsupportedFormat
	}

	if err := k.Load(rawbytes.Provider(data), parser); err != nil {
		return fmt.Errorf("%w: %w", ErrParseFailed, err)
	}
	return nil
}
