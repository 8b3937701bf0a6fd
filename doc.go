// Package unpeek 提供进程内的"每组恰好一次"通知核心
//
// unpeek 解决界面重建时一次性命令被重复投递（回流）的问题：
// 同一逻辑界面的多个视图实例共享一个订阅组，组内每个值版本只被消费一次；
// 新建的视图不会收到旧视图已经处理过的命令，但仍能补收尚未消费的值。
//
// # 核心概念
//
//   - Channel: 单值 + 版本号，按订阅组去重投递
//   - EventBus: 按标签扇出的即时事件总线，不重放历史
//   - Scope: 订阅生命周期，作用域结束时订阅自动关闭
//   - Controller: 界面控制器，封装对话框、加载状态、结束与返回等命令
//
// # 快速开始
//
//	import "github.com/dep2p/go-unpeek"
//
//	// 1. 创建并启动 Core
//	core, err := unpeek.New(unpeek.WithConfigFile("unpeek.yaml"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := core.Start(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	defer core.Stop(ctx)
//
//	// 2. 创建 Channel 并按组订阅
//	ch := unpeek.NewChannel[string](core, channel.WithName("dialog"))
//	group := types.NewGroupKey()
//	sub, _ := ch.Subscribe(group, scope, func(msg string) {
//	    showDialog(msg)
//	})
//
//	// 3. 写入值；组内只投递一次
//	_ = ch.Write("保存成功")
//
// # 界面控制器
//
//	ctrl, _ := core.NewController("settings")
//	binding, _ := ctrl.Attach(viewScope, view)
//	defer binding.Close()
//
//	_ = ctrl.ShowDialog("确认删除？")
//
// 视图重建后使用同一个 Controller 再次 Attach，已处理的对话框不会再次弹出。
//
// # 文件组织
//
//   - unpeek.go: Core 入口与访问器
//   - options.go: 配置选项
//   - fx.go: Fx 模块组装
//   - errors.go: 公共错误
package unpeek
