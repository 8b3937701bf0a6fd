// Package config 提供统一的配置管理
//
// 本包采用混合配置模式：
//   - 主 Config 结构体嵌入所有子配置
//   - 每个子配置在独立文件中定义
//   - 支持从 JSON / YAML 加载和保存配置
//
// 使用示例：
//
//	// 创建默认配置
//	cfg := config.NewConfig()
//	cfg.EventBus.SlowCallbackThreshold = config.Duration(50 * time.Millisecond)
//
//	// 从文件加载（按扩展名选择 JSON 或 YAML）
//	cfg, err := config.LoadFile("unpeek.yaml")
package config

// Config 是 unpeek 的完整配置结构
//
// 配置按照功能模块组织：
//   - Log: 日志级别与格式
//   - Channel: Channel 默认行为
//   - EventBus: 事件总线
//   - Metrics: 投递指标
//   - Connectivity: 网络连通性监控
type Config struct {
	// Log 日志配置
	Log LogConfig `json:"log" yaml:"log"`

	// Channel Channel 配置
	Channel ChannelConfig `json:"channel" yaml:"channel"`

	// EventBus 事件总线配置
	EventBus EventBusConfig `json:"eventbus" yaml:"eventbus"`

	// Metrics 指标配置
	Metrics MetricsConfig `json:"metrics" yaml:"metrics"`

	// Connectivity 网络连通性监控配置
	Connectivity ConnectivityConfig `json:"connectivity" yaml:"connectivity"`
}

// NewConfig 创建默认配置
func NewConfig() *Config {
	return &Config{
		Log:          DefaultLogConfig(),
		Channel:      DefaultChannelConfig(),
		EventBus:     DefaultEventBusConfig(),
		Metrics:      DefaultMetricsConfig(),
		Connectivity: DefaultConnectivityConfig(),
	}
}

// Validate 验证配置的有效性
//
// 检查所有子配置是否有效，如果发现无效配置则返回错误。
func (c *Config) Validate() error {
	if err := c.Log.Validate(); err != nil {
		return err
	}
	if err := c.Channel.Validate(); err != nil {
		return err
	}
	if err := c.EventBus.Validate(); err != nil {
		return err
	}
	if err := c.Metrics.Validate(); err != nil {
		return err
	}
	if err := c.Connectivity.Validate(); err != nil {
		return err
	}
	return nil
}
