package unpeek

import (
	"fmt"

	"github.com/benbjohnson/clock"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"

	"github.com/dep2p/go-unpeek/config"
	"github.com/dep2p/go-unpeek/internal/core/connectivity"
)

// Option Core 配置选项
type Option func(*options) error

// options 构建 Core 所需的全部输入
type options struct {
	config     *config.Config
	registerer prometheus.Registerer
	clock      clock.Clock
	prober     connectivity.Prober
	fxOptions  []fx.Option
}

// newOptions 返回默认选项
func newOptions() *options {
	return &options{
		config: config.NewConfig(),
	}
}

// WithConfig 使用完整配置
func WithConfig(cfg *config.Config) Option {
	return func(o *options) error {
		if cfg == nil {
			return ErrNilConfig
		}
		o.config = cfg
		return nil
	}
}

// WithConfigFile 从文件加载配置（.yaml/.yml 为 YAML，其余按 JSON）
func WithConfigFile(path string) Option {
	return func(o *options) error {
		cfg, err := config.LoadFile(path)
		if err != nil {
			return fmt.Errorf("load config file: %w", err)
		}
		o.config = cfg
		return nil
	}
}

// WithRegisterer 指定 Prometheus 注册器
//
// 未指定时注册到 prometheus.DefaultRegisterer。
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(o *options) error {
		if reg == nil {
			return fmt.Errorf("registerer: %w", ErrNilOption)
		}
		o.registerer = reg
		return nil
	}
}

// WithClock 指定时钟（测试中传入 clock.NewMock()）
func WithClock(c clock.Clock) Option {
	return func(o *options) error {
		if c == nil {
			return fmt.Errorf("clock: %w", ErrNilOption)
		}
		o.clock = c
		return nil
	}
}

// WithProber 指定网络探测器，替代默认的 TCP 拨号探测
func WithProber(p connectivity.Prober) Option {
	return func(o *options) error {
		if p == nil {
			return fmt.Errorf("prober: %w", ErrNilOption)
		}
		o.prober = p
		return nil
	}
}

// WithFxOption 追加自定义 Fx 选项
func WithFxOption(opts ...fx.Option) Option {
	return func(o *options) error {
		o.fxOptions = append(o.fxOptions, opts...)
		return nil
	}
}
