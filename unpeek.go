package unpeek

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/fx"
	"go.uber.org/multierr"

	"github.com/dep2p/go-unpeek/config"
	"github.com/dep2p/go-unpeek/internal/core/channel"
	"github.com/dep2p/go-unpeek/internal/core/connectivity"
	"github.com/dep2p/go-unpeek/internal/core/lifecycle"
	"github.com/dep2p/go-unpeek/internal/screen"
	"github.com/dep2p/go-unpeek/pkg/interfaces"
	"github.com/dep2p/go-unpeek/pkg/lib/log"
)

var logger = log.Logger("unpeek")

// Core 进程级通知核心
//
// 持有事件总线、指标上报器、网络状态监控与进程级 Owner。
// 通过 Core 创建的 Channel 与 Controller 绑定在进程级 Owner 上，Stop 时统一关闭。
type Core struct {
	mu      sync.Mutex
	started bool
	closed  bool

	config *config.Config
	app    *fx.App

	// 由 fx.Populate 填充
	owner    *lifecycle.Owner
	bus      interfaces.EventBus
	reporter interfaces.Reporter
	monitor  *connectivity.Monitor
}

// New 创建 Core
//
// 创建后需调用 Start 启动；未启动时 Bus/Channel 即可使用，
// 但网络监控等后台任务尚未运行。
func New(opts ...Option) (*Core, error) {
	o := newOptions()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(o); err != nil {
			return nil, fmt.Errorf("apply option: %w", err)
		}
	}

	c := &Core{config: o.config}
	app, err := buildFxApp(o, c)
	if err != nil {
		return nil, err
	}
	c.app = app
	return c, nil
}

// Start 启动 Core
func (c *Core) Start(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrClosed
	}
	if c.started {
		return ErrAlreadyStarted
	}

	if err := c.app.Start(ctx); err != nil {
		return fmt.Errorf("start fx app: %w", err)
	}
	c.started = true
	logger.Info("Core 已启动", "connectivity", c.config.Connectivity.Enabled)
	return nil
}

// Stop 停止 Core
//
// 停止后进程级 Owner 被销毁，其上的订阅、Channel 与 Controller 全部关闭。
// Stop 之后 Core 不可再次启动。
func (c *Core) Stop(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrClosed
	}
	if !c.started {
		return ErrNotStarted
	}
	c.closed = true
	c.started = false

	var err error
	err = multierr.Append(err, c.app.Stop(ctx))
	// fx 未执行到 lifecycle 的 OnStop 时（如 ctx 超时），仍需销毁 Owner
	if !c.owner.IsDestroyed() {
		c.owner.Destroy()
	}
	if err != nil {
		return fmt.Errorf("stop core: %w", err)
	}
	logger.Info("Core 已停止")
	return nil
}

// Config 返回生效配置
func (c *Core) Config() *config.Config {
	return c.config
}

// Bus 返回事件总线
func (c *Core) Bus() interfaces.EventBus {
	return c.bus
}

// Reporter 返回指标上报器
func (c *Core) Reporter() interfaces.Reporter {
	return c.reporter
}

// Connectivity 返回网络状态监控
func (c *Core) Connectivity() *connectivity.Monitor {
	return c.monitor
}

// Process 返回进程级作用域
//
// 绑定在其上的订阅在 Core 停止时关闭。
func (c *Core) Process() interfaces.Scope {
	return c.owner
}

// NewController 创建一个使用 Core 总线与 Reporter 的界面控制器
func (c *Core) NewController(name string, opts ...screen.Option) (*screen.Controller, error) {
	opts = append([]screen.Option{screen.WithReporter(c.reporter)}, opts...)
	ctrl, err := screen.NewController(name, c.bus, opts...)
	if err != nil {
		return nil, err
	}
	c.closeOnEnd(ctrl)
	return ctrl, nil
}

// NewChannel 创建一个 Channel
//
// 默认空值策略取自 Config.Channel，Reporter 取自 Core；opts 可覆盖。
func NewChannel[T any](c *Core, opts ...channel.Option) *channel.Channel[T] {
	base := []channel.Option{
		channel.WithNullPolicy(c.config.Channel.Policy()),
		channel.WithReporter(c.reporter),
	}
	ch := channel.New[T](append(base, opts...)...)
	c.closeOnEnd(ch)
	return ch
}

// closeNotifier 关闭时能通知调用方的资源
type closeNotifier interface {
	interfaces.Closer
	OnClose(fn func())
}

// closeOnEnd 在进程级 Owner 结束时关闭 r，已结束则立即关闭
//
// r 先于 Owner 关闭时撤销登记的钩子，反复创建和关闭资源不会累积钩子。
func (c *Core) closeOnEnd(r closeNotifier) {
	closeFn := func() {
		if err := r.Close(); err != nil {
			logger.Warn("关闭资源失败", "err", err)
		}
	}
	unregister, ok := c.owner.OnEnd(closeFn)
	if !ok {
		closeFn()
		return
	}
	r.OnClose(unregister)
}
