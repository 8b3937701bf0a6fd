package screen

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/multierr"

	"github.com/dep2p/go-unpeek/internal/core/channel"
	"github.com/dep2p/go-unpeek/internal/core/metrics"
	"github.com/dep2p/go-unpeek/pkg/interfaces"
	"github.com/dep2p/go-unpeek/pkg/lib/log"
	"github.com/dep2p/go-unpeek/pkg/types"
)

var logger = log.Logger("screen")

// ErrControllerClosed 控制器已关闭
var ErrControllerClosed = errors.New("screen controller closed")

// Option 控制器选项
type Option func(*Controller)

// WithStore 使用已有的 Store
//
// 控制器重建（例如进程恢复）时传入原来的 Store，保持组身份不变。
func WithStore(s *Store) Option {
	return func(c *Controller) {
		c.store = s
	}
}

// WithReporter 设置指标上报器
func WithReporter(r interfaces.Reporter) Option {
	return func(c *Controller) {
		c.reporter = r
	}
}

// ============================================================================
//                              Controller
// ============================================================================

// Controller 界面控制器
//
// 持有一个逻辑界面的加载状态、一次性命令和 UI 事件出口。
// 控制器不引用任何视图，视图通过 Attach 挂载。
type Controller struct {
	name     string
	store    *Store
	bus      interfaces.EventBus
	reporter interfaces.Reporter

	commands *Commands
	loading  *channel.Channel[types.LoadingState]

	mu     sync.Mutex
	closed bool
	// owned 随控制器关闭的通道
	owned   []interfaces.Closer
	onClose []func()
}

// NewController 创建控制器
func NewController(name string, bus interfaces.EventBus, opts ...Option) (*Controller, error) {
	if bus == nil {
		return nil, errors.New("screen controller requires an event bus")
	}

	c := &Controller{
		name: name,
		bus:  bus,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.store == nil {
		c.store = NewStore(name)
	}
	if c.reporter == nil {
		c.reporter = metrics.Nop()
	}

	c.commands = newCommands(name, c.reporter)
	c.loading = channel.New[types.LoadingState](
		channel.WithName(name+".loading"),
		channel.WithReporter(c.reporter),
		channel.WithInitialValue(types.NotLoading()),
	)

	logger.Debug("界面控制器已创建", "screen", name, "store", c.store.Key().ShortString())
	return c, nil
}

// Name 返回名称
func (c *Controller) Name() string {
	return c.name
}

// Store 返回界面身份
func (c *Controller) Store() *Store {
	return c.store
}

// Commands 返回一次性命令
func (c *Controller) Commands() *Commands {
	return c.commands
}

// Loading 返回加载状态通道
func (c *Controller) Loading() *channel.Channel[types.LoadingState] {
	return c.loading
}

// ============================================================================
//                              加载状态
// ============================================================================

// ShowLoading 显示加载状态，message 为空时使用默认提示
func (c *Controller) ShowLoading(message string) error {
	return c.loading.Write(types.Loading(message))
}

// DismissLoading 隐藏加载状态
func (c *Controller) DismissLoading() error {
	return c.loading.Write(types.NotLoading())
}

// IsLoading 当前是否在加载
func (c *Controller) IsLoading() bool {
	v, _ := c.loading.Value()
	return v.Active
}

// Run 在加载状态下执行 fn
//
// fn 返回错误时以 UI 错误事件展示，并原样返回该错误。
func (c *Controller) Run(ctx context.Context, message string, fn func(context.Context) error) error {
	if err := c.ShowLoading(message); err != nil {
		return err
	}
	err := fn(ctx)
	if dismissErr := c.DismissLoading(); dismissErr != nil {
		logger.Warn("隐藏加载状态失败", "screen", c.name, "err", dismissErr)
	}
	if err != nil {
		if showErr := c.ShowError(ctx, err.Error(), err); showErr != nil {
			logger.Warn("错误事件发布失败", "screen", c.name, "err", showErr)
		}
		return err
	}
	return nil
}

// ============================================================================
//                              命令
// ============================================================================

// ShowDialog 弹窗
func (c *Controller) ShowDialog(message string) error {
	return c.commands.ShowDialog(message)
}

// HideDialog 关闭弹窗
func (c *Controller) HideDialog() error {
	return c.commands.HideDialog()
}

// Back 返回上一页
func (c *Controller) Back() error {
	return c.commands.Back()
}

// Finish 结束界面
//
// 除写入结束命令外，还在总线上发布 types.TagFinish，供其他模块感知。
func (c *Controller) Finish(ctx context.Context, result any) error {
	if err := c.commands.Finish(result); err != nil {
		return err
	}
	return c.emit(ctx, types.TagFinish, types.FinishEvent{Result: result})
}

// ============================================================================
//                              UI 事件
// ============================================================================

// ShowToast 轻提示
func (c *Controller) ShowToast(ctx context.Context, message string) error {
	return c.emit(ctx, types.TagToast, types.ToastEvent{Message: message})
}

// ShowLongToast 长时间显示的轻提示
func (c *Controller) ShowLongToast(ctx context.Context, message string) error {
	return c.emit(ctx, types.TagToast, types.ToastEvent{Message: message, Long: true})
}

// ShowError 错误提示
func (c *Controller) ShowError(ctx context.Context, message string, err error) error {
	return c.emit(ctx, types.TagError, types.ErrorEvent{Message: message, Err: err})
}

// Navigate 导航到路由
func (c *Controller) Navigate(ctx context.Context, route string, args map[string]any) error {
	return c.emit(ctx, types.TagNavigate, types.NavigateEvent{Route: route, Args: args})
}

// emit 以 Store 为来源发布 UI 事件
func (c *Controller) emit(ctx context.Context, tag types.Tag, payload any) error {
	if c.isClosed() {
		return ErrControllerClosed
	}
	env := types.NewEnvelope(tag, payload).WithSource(c.store.Key().String())
	return c.bus.Publish(ctx, env)
}

// ============================================================================
//                              关闭
// ============================================================================

// track 登记随控制器关闭的通道
func (c *Controller) track(closer interfaces.Closer) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		_ = closer.Close()
		return
	}
	c.owned = append(c.owned, closer)
}

func (c *Controller) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

// Close 关闭控制器及其全部通道，已挂载的视图随之失效
//
// 可以重复调用。
func (c *Controller) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	owned := c.owned
	c.owned = nil
	hooks := c.onClose
	c.onClose = nil
	c.mu.Unlock()

	err := multierr.Combine(c.commands.close(), c.loading.Close())
	for _, closer := range owned {
		err = multierr.Append(err, closer.Close())
	}
	for _, fn := range hooks {
		fn()
	}

	logger.Debug("界面控制器已关闭", "screen", c.name)
	return err
}

// OnClose 登记关闭后执行的函数，已关闭则立即执行
func (c *Controller) OnClose(fn func()) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		fn()
		return
	}
	c.onClose = append(c.onClose, fn)
	c.mu.Unlock()
}
