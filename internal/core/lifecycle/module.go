package lifecycle

import (
	"context"

	"go.uber.org/fx"

	"github.com/dep2p/go-unpeek/pkg/interfaces"
)

// ProcessOwnerName 进程级拥有者名称
const ProcessOwnerName = "process"

// ModuleResult Fx 模块导出结果
type ModuleResult struct {
	fx.Out

	Owner *Owner                                  // 进程级拥有者
	Scope interfaces.Scope `name:"process_scope"` // 同一拥有者的 Scope 视图
}

// provideProcessOwner 提供进程级拥有者
func provideProcessOwner() ModuleResult {
	o := NewOwner(ProcessOwnerName)
	return ModuleResult{
		Owner: o,
		Scope: o,
	}
}

// Module 返回 Fx 模块
//
// 提供进程级 Owner：应用启动时 Start，停止时 Destroy，
// 绑定在其上的进程级订阅随应用停止统一关闭。
func Module() fx.Option {
	return fx.Module("lifecycle",
		fx.Provide(provideProcessOwner),
		fx.Invoke(registerLifecycleHooks),
	)
}

// lifecycleHooksParams 生命周期钩子参数
type lifecycleHooksParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Owner     *Owner
}

// registerLifecycleHooks 注册生命周期钩子
func registerLifecycleHooks(params lifecycleHooksParams) {
	params.Lifecycle.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			return params.Owner.Start()
		},
		OnStop: func(_ context.Context) error {
			params.Owner.Destroy()
			return nil
		},
	})
}
