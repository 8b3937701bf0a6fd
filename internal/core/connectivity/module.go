package connectivity

import (
	"context"

	"github.com/benbjohnson/clock"
	"go.uber.org/fx"

	"github.com/dep2p/go-unpeek/config"
	"github.com/dep2p/go-unpeek/pkg/interfaces"
)

// Params 监控器依赖参数
type Params struct {
	fx.In

	UnifiedCfg *config.Config      `optional:"true"`
	Bus        interfaces.EventBus `optional:"true"`
	Prober     Prober              `optional:"true"`
	Clock      clock.Clock         `optional:"true"`
	Reporter   interfaces.Reporter `optional:"true"`
}

// Module 返回 Fx 模块
func Module() fx.Option {
	return fx.Module("connectivity",
		fx.Provide(ProvideMonitor),
		fx.Invoke(registerLifecycle),
	)
}

// ProvideMonitor 提供 Monitor 实例
func ProvideMonitor(p Params) *Monitor {
	cfg := config.DefaultConnectivityConfig()
	if p.UnifiedCfg != nil {
		cfg = p.UnifiedCfg.Connectivity
	}
	return NewMonitor(cfg, p.Prober,
		WithBus(p.Bus),
		WithClock(p.Clock),
		WithReporter(p.Reporter),
	)
}

// registerLifecycle 注册生命周期
//
// 未启用时不启动探测，State() 仍然可用。
func registerLifecycle(lc fx.Lifecycle, m *Monitor) {
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			if !m.cfg.Enabled {
				return nil
			}
			// 探测循环的生命周期独立于 OnStart 的 ctx
			return m.Start(context.Background())
		},
		OnStop: func(_ context.Context) error {
			return m.Stop()
		},
	})
}
