package config

import (
	"fmt"

	"github.com/dep2p/go-unpeek/pkg/types"
)

// ChannelConfig Channel 配置
type ChannelConfig struct {
	// NullPolicy 默认空值策略: reject_null 或 allow_null
	// 默认值: reject_null
	NullPolicy string `json:"null_policy" yaml:"null_policy"`
}

// DefaultChannelConfig 返回默认 Channel 配置
func DefaultChannelConfig() ChannelConfig {
	return ChannelConfig{
		NullPolicy: types.RejectNull.String(),
	}
}

// Validate 验证 Channel 配置
func (c ChannelConfig) Validate() error {
	if _, ok := types.ParseNullPolicy(c.NullPolicy); !ok {
		return fmt.Errorf("invalid null policy %q", c.NullPolicy)
	}
	return nil
}

// Policy 返回解析后的空值策略
func (c ChannelConfig) Policy() types.NullPolicy {
	p, _ := types.ParseNullPolicy(c.NullPolicy)
	return p
}
