package unpeek

import (
	"fmt"

	"github.com/benbjohnson/clock"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"github.com/dep2p/go-unpeek/config"
	"github.com/dep2p/go-unpeek/internal/core/connectivity"
	"github.com/dep2p/go-unpeek/internal/core/eventbus"
	"github.com/dep2p/go-unpeek/internal/core/lifecycle"
	"github.com/dep2p/go-unpeek/internal/core/metrics"
	"github.com/dep2p/go-unpeek/pkg/lib/log"
)

var fxLogger = log.Logger("unpeek/fx")

// buildFxApp 构建 Fx 应用
//
// 加载顺序（按依赖）：
//  1. lifecycle: 进程级 Owner
//  2. metrics: Reporter
//  3. eventbus: 事件总线
//  4. connectivity: 网络状态监控（依赖总线与 Reporter）
func buildFxApp(o *options, c *Core) (*fx.App, error) {
	// ════════════════════════════════════════════════════════════════════════
	// 1. 配置验证（前置）
	// ════════════════════════════════════════════════════════════════════════
	if err := o.config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	// ════════════════════════════════════════════════════════════════════════
	// 2. 日志
	// ════════════════════════════════════════════════════════════════════════
	log.Setup(nil, log.ConfigFromEnv(o.config.Log.ToLogConfig()))

	// ════════════════════════════════════════════════════════════════════════
	// 3. 模块组装
	// ════════════════════════════════════════════════════════════════════════
	modules := []fx.Option{
		fx.Supply(o.config),
		fx.WithLogger(fxEventLogger(o.config.Log)),
	}

	if o.registerer != nil {
		reg := o.registerer
		modules = append(modules, fx.Provide(func() prometheus.Registerer { return reg }))
	}
	if o.clock != nil {
		clk := o.clock
		modules = append(modules, fx.Provide(func() clock.Clock { return clk }))
	}
	if o.prober != nil {
		prober := o.prober
		modules = append(modules, fx.Provide(func() connectivity.Prober { return prober }))
	}

	modules = append(modules,
		lifecycle.Module(),
		metrics.Module(),
		eventbus.Module(),
		connectivity.Module(),
	)

	// 用户自定义选项
	modules = append(modules, o.fxOptions...)

	modules = append(modules, fx.Populate(
		&c.owner,
		&c.bus,
		&c.reporter,
		&c.monitor,
	))

	app := fx.New(modules...)
	if err := app.Err(); err != nil {
		return nil, fmt.Errorf("build fx app: %w", err)
	}

	fxLogger.Debug("Fx 应用构建完成",
		"metrics", o.config.Metrics.Enabled,
		"connectivity", o.config.Connectivity.Enabled)
	return app, nil
}

// fxEventLogger 返回 fx 事件 logger 构造函数
//
// 默认静默；开启 FxEvents 时使用 zap 开发模式输出依赖注入过程。
func fxEventLogger(cfg config.LogConfig) func() fxevent.Logger {
	return func() fxevent.Logger {
		if !cfg.FxEvents {
			return &fxevent.ZapLogger{Logger: zap.NewNop()}
		}
		zl, err := zap.NewDevelopment()
		if err != nil {
			fxLogger.Warn("创建 zap logger 失败，fx 事件将被丢弃", "err", err)
			return &fxevent.ZapLogger{Logger: zap.NewNop()}
		}
		return &fxevent.ZapLogger{Logger: zl}
	}
}
