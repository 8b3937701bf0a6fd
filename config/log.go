package config

import (
	"fmt"
	"strings"

	"github.com/dep2p/go-unpeek/pkg/lib/log"
)

// LogConfig 日志配置
type LogConfig struct {
	// Level 级别字符串，格式 组件=级别,...,默认级别
	// 示例: "core/channel=debug,info"
	Level string `json:"level" yaml:"level"`

	// Format 输出格式: text 或 json
	Format string `json:"format" yaml:"format"`

	// AddSource 是否添加源码位置
	AddSource bool `json:"add_source" yaml:"add_source"`

	// FxEvents 是否输出 fx 依赖注入事件（使用 zap 开发模式 logger）
	FxEvents bool `json:"fx_events" yaml:"fx_events"`
}

// DefaultLogConfig 返回默认日志配置
func DefaultLogConfig() LogConfig {
	return LogConfig{
		Level:  "info",
		Format: "text",
	}
}

// Validate 验证日志配置
func (c LogConfig) Validate() error {
	switch strings.ToLower(c.Format) {
	case "", "text", "json":
	default:
		return fmt.Errorf("invalid log format %q: must be text or json", c.Format)
	}
	return nil
}

// ToLogConfig 转换为 pkg/lib/log 的配置
func (c LogConfig) ToLogConfig() log.Config {
	cfg := log.DefaultConfig()
	if c.Level != "" {
		log.ParseLevels(&cfg, c.Level)
	}
	cfg.Format = log.ParseFormat(c.Format)
	cfg.AddSource = c.AddSource
	return cfg
}
