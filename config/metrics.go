package config

import (
	"fmt"
	"regexp"
)

// metricNamespacePattern Prometheus 命名空间格式
var metricNamespacePattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// MetricsConfig 指标配置
type MetricsConfig struct {
	// Enabled 是否启用指标收集
	// 默认值: true
	Enabled bool `json:"enabled" yaml:"enabled"`

	// Namespace 指标命名空间
	// 默认值: unpeek
	Namespace string `json:"namespace" yaml:"namespace"`
}

// DefaultMetricsConfig 返回默认指标配置
func DefaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Enabled:   true,
		Namespace: "unpeek",
	}
}

// Validate 验证指标配置
func (c MetricsConfig) Validate() error {
	if !c.Enabled {
		return nil
	}
	if !metricNamespacePattern.MatchString(c.Namespace) {
		return fmt.Errorf("invalid metrics namespace %q", c.Namespace)
	}
	return nil
}
