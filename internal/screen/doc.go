// Package screen 提供界面控制器与视图挂载
//
// 一个逻辑界面由三部分组成：
//   - Store: 界面的稳定身份，跨视图重建保持不变，其 GroupKey 用于全部订阅
//   - Controller: 持有界面状态与一次性命令，通过 Channel 与事件总线下发
//   - View: 外部实现的视图，每次重建后通过 Attach 挂载到控制器
//
// 视图销毁重建后重新 Attach，已处理过的命令（弹窗、结束界面）不会再次下发。
//
//	ctrl, _ := screen.NewController("login", bus)
//	owner := lifecycle.NewOwner("login-view")
//	binding, _ := ctrl.Attach(owner, view)
//
//	ctrl.ShowDialog("密码错误")
//	owner.Destroy() // 视图销毁，binding 自动释放
//
// 命令类通道使用 RejectNull 策略，视图处理后调用 Clear，晚到的视图不会看到过期命令。
package screen
