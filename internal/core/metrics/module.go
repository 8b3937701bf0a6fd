package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"

	"github.com/dep2p/go-unpeek/config"
	"github.com/dep2p/go-unpeek/pkg/interfaces"
)

// Params Metrics 依赖参数
type Params struct {
	fx.In

	UnifiedCfg *config.Config        `optional:"true"`
	Registerer prometheus.Registerer `optional:"true"`
}

// Module 返回 Fx 模块
func Module() fx.Option {
	return fx.Module("metrics",
		fx.Provide(NewReporterFromParams),
	)
}

// NewReporterFromParams 从参数创建 Reporter
//
// 未启用指标时返回 Nop。未注入 Registerer 时注册到 prometheus.DefaultRegisterer。
func NewReporterFromParams(p Params) (interfaces.Reporter, error) {
	cfg := config.DefaultMetricsConfig()
	if p.UnifiedCfg != nil {
		cfg = p.UnifiedCfg.Metrics
	}
	if !cfg.Enabled {
		return Nop(), nil
	}

	reg := p.Registerer
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	return NewPromReporter(reg, cfg.Namespace)
}
