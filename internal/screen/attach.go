package screen

import (
	"context"
	"sync"

	"go.uber.org/multierr"

	"github.com/dep2p/go-unpeek/pkg/interfaces"
	"github.com/dep2p/go-unpeek/pkg/types"
)

// Binding 视图与控制器之间的全部订阅
type Binding struct {
	mu      sync.Mutex
	closers []interfaces.Closer
}

func (b *Binding) add(c interfaces.Closer) {
	b.mu.Lock()
	b.closers = append(b.closers, c)
	b.mu.Unlock()
}

// Close 释放全部订阅，可以重复调用
func (b *Binding) Close() error {
	b.mu.Lock()
	closers := b.closers
	b.closers = nil
	b.mu.Unlock()

	var err error
	for _, c := range closers {
		err = multierr.Append(err, c.Close())
	}
	return err
}

// Len 返回订阅数
func (b *Binding) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.closers)
}

// Attach 把视图挂载到控制器，存活到 scope 结束
//
// 所有订阅使用 Store 的 GroupKey：视图重建后重新挂载不会收到已处理的命令。
// 加载状态是持续值，挂载时先把当前值同步给新视图。
func (c *Controller) Attach(scope interfaces.Scope, view View) (*Binding, error) {
	if c.isClosed() {
		return nil, ErrControllerClosed
	}

	key := c.store.Key()
	b := &Binding{}
	fail := func(err error) (*Binding, error) {
		_ = b.Close()
		return nil, err
	}

	// 新组由订阅补发；同组此前的视图已消费当前版本时，不会再投递，需要直接同步
	if current, ok := c.loading.ConsumedValue(key); ok {
		view.SetLoading(current)
	}

	cmds := c.commands
	steps := []func() (interfaces.Closer, error){
		func() (interfaces.Closer, error) {
			return c.loading.Subscribe(key, scope, view.SetLoading)
		},
		func() (interfaces.Closer, error) {
			return cmds.dialog.SubscribeVersion(key, scope, func(msg string, version uint64) {
				view.ShowDialog(msg)
				cmds.dialog.ClearIf(version)
			})
		},
		func() (interfaces.Closer, error) {
			return cmds.hideDialog.SubscribeVersion(key, scope, func(_ Signal, version uint64) {
				view.HideDialog()
				cmds.hideDialog.ClearIf(version)
			})
		},
		func() (interfaces.Closer, error) {
			return cmds.finish.SubscribeVersion(key, scope, func(e *types.FinishEvent, version uint64) {
				view.Finish(e.Result)
				cmds.finish.ClearIf(version)
			})
		},
		func() (interfaces.Closer, error) {
			return cmds.back.SubscribeVersion(key, scope, func(_ Signal, version uint64) {
				view.Back()
				cmds.back.ClearIf(version)
			})
		},
		func() (interfaces.Closer, error) {
			return c.bus.Subscribe(types.MatchPrefix(types.UIPrefix), func(_ context.Context, env types.Envelope) {
				if env.Source != key.String() {
					return
				}
				dispatchUI(view, env)
			}, scope)
		},
	}

	for _, step := range steps {
		sub, err := step()
		if err != nil {
			return fail(err)
		}
		b.add(sub)
	}

	logger.Debug("视图已挂载", "screen", c.name, "subscriptions", b.Len())
	return b, nil
}

// dispatchUI 把 UI 事件转交给视图
func dispatchUI(view View, env types.Envelope) {
	switch e := env.Payload.(type) {
	case types.ToastEvent:
		view.ShowToast(e.Message, e.Long)
	case types.ErrorEvent:
		view.ShowError(e.Message, e.Err)
	case types.NavigateEvent:
		view.Navigate(e.Route, e.Args)
	case types.FinishEvent:
		// 结束命令已经通过通道下发
	default:
		logger.Warn("未知的 UI 事件", "tag", env.Tag, "payload", env.Payload)
	}
}
