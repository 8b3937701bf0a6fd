// Package lifecycle 提供订阅的生命周期作用域
//
// 作用域（interfaces.Scope）是订阅存活区间的统一抽象，取代按拥有者类型
// （界面、片段、控制器）分别处理的写法：任何拥有者只需实现 Scope。
//
// 提供的作用域：
//   - Owner: 带阶段的拥有者（Created → Started ⇄ Resumed/Paused → Stopped → Destroyed），
//     Destroyed 为终止阶段
//   - Owner.StartedScope: 当前一次"可见区间"，在下一次 Stop 或 Destroy 时结束
//   - Background: 进程级作用域，永不结束
//   - FromContext: 随 context 取消而结束
//
// # 适配器
//
//	sub := ... // 任意 interfaces.Closer
//	unregister, err := lifecycle.Bind(scope, sub)
//
// Bind 在作用域终止时关闭订阅；订阅主动关闭时调用 unregister 撤销钩子，
// 避免拥有者的钩子列表只增不减。适配器只持有钩子，不持有拥有者本身。
//
// # 幂等性
//
//   - 钩子最多执行一次
//   - 重复 Destroy 是空操作
//   - 永不结束的作用域上的订阅存活到进程结束
package lifecycle
