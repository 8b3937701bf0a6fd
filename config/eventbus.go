package config

import (
	"errors"
	"time"
)

// EventBusConfig 事件总线配置
type EventBusConfig struct {
	// SlowCallbackThreshold 慢回调告警阈值，0 表示不检测
	// 默认值: 100ms
	SlowCallbackThreshold Duration `json:"slow_callback_threshold" yaml:"slow_callback_threshold"`
}

// DefaultEventBusConfig 返回默认事件总线配置
func DefaultEventBusConfig() EventBusConfig {
	return EventBusConfig{
		SlowCallbackThreshold: Duration(100 * time.Millisecond),
	}
}

// Validate 验证事件总线配置
func (c EventBusConfig) Validate() error {
	if c.SlowCallbackThreshold < 0 {
		return errors.New("slow callback threshold must be non-negative")
	}
	return nil
}
