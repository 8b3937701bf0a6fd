package eventbus

import (
	"context"

	"github.com/benbjohnson/clock"
	"go.uber.org/fx"

	"github.com/dep2p/go-unpeek/config"
	"github.com/dep2p/go-unpeek/pkg/interfaces"
)

// ============================================================================
// Fx 模块
// ============================================================================

// Params EventBus 依赖参数
type Params struct {
	fx.In

	UnifiedCfg *config.Config      `optional:"true"`
	Reporter   interfaces.Reporter `optional:"true"`
	Clock      clock.Clock         `optional:"true"`
}

// Result Fx 模块输出结果
type Result struct {
	fx.Out

	Bus      *Bus
	EventBus interfaces.EventBus
}

// Module 返回 Fx 模块
func Module() fx.Option {
	return fx.Module("eventbus",
		fx.Provide(ProvideEventBus),
		fx.Invoke(registerLifecycle),
	)
}

// ProvideEventBus 提供 EventBus 实例
func ProvideEventBus(p Params) Result {
	cfg := config.DefaultEventBusConfig()
	if p.UnifiedCfg != nil {
		cfg = p.UnifiedCfg.EventBus
	}

	bus := NewBus(
		WithClock(p.Clock),
		WithReporter(p.Reporter),
		WithSlowCallbackThreshold(cfg.SlowCallbackThreshold.Duration()),
	)
	return Result{
		Bus:      bus,
		EventBus: bus,
	}
}

// lifecycleInput 生命周期输入参数
type lifecycleInput struct {
	fx.In
	LC  fx.Lifecycle
	Bus *Bus
}

// registerLifecycle 注册生命周期
func registerLifecycle(input lifecycleInput) {
	input.LC.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return input.Bus.Close()
		},
	})
}

// ============================================================================
// 模块元信息
// ============================================================================

const (
	// Version 模块版本
	Version = "1.0.0"
	// Name 模块名称
	Name = "eventbus"
	// Description 模块描述
	Description = "事件总线模块，提供按标签过滤的同步发布/订阅"
)
