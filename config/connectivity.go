package config

import (
	"errors"
	"net"
	"time"
)

// ConnectivityConfig 网络连通性监控配置
type ConnectivityConfig struct {
	// Enabled 是否启用监控
	// 默认值: false
	Enabled bool `json:"enabled" yaml:"enabled"`

	// ProbeAddress 探测地址 host:port
	// 默认值: 1.1.1.1:443
	ProbeAddress string `json:"probe_address" yaml:"probe_address"`

	// Interval 探测间隔
	// 默认值: 10s
	Interval Duration `json:"interval" yaml:"interval"`

	// Timeout 单次探测超时
	// 默认值: 3s
	Timeout Duration `json:"timeout" yaml:"timeout"`
}

// DefaultConnectivityConfig 返回默认连通性配置
func DefaultConnectivityConfig() ConnectivityConfig {
	return ConnectivityConfig{
		Enabled:      false,
		ProbeAddress: "1.1.1.1:443",
		Interval:     Duration(10 * time.Second),
		Timeout:      Duration(3 * time.Second),
	}
}

// Validate 验证连通性配置
func (c ConnectivityConfig) Validate() error {
	if !c.Enabled {
		return nil
	}
	if _, _, err := net.SplitHostPort(c.ProbeAddress); err != nil {
		return errors.New("probe address must be host:port")
	}
	if c.Interval <= 0 {
		return errors.New("connectivity interval must be positive")
	}
	if c.Timeout <= 0 {
		return errors.New("connectivity timeout must be positive")
	}
	if c.Timeout > c.Interval {
		return errors.New("connectivity timeout must not exceed interval")
	}
	return nil
}
