// Package connectivity 提供进程级网络连通性监控
//
// Monitor 定期调用 Prober 探测网络，状态变化时：
//   - 写入有状态的 Channel[types.NetState]，新订阅的组立即收到当前状态
//   - 在事件总线上发布 types.TagNetworkChanged
//
// 监控器是显式的进程级对象，通过 Start / Stop 控制，不使用全局单例。
//
// # 使用示例
//
//	mon := connectivity.NewMonitor(cfg.Connectivity, connectivity.NewDialProber(cfg.Connectivity),
//	    connectivity.WithBus(bus))
//	mon.Start(ctx)
//	defer mon.Stop()
//
//	mon.State().Subscribe(store.Key(), owner, func(s types.NetState) {
//	    view.SetOffline(!s.Available)
//	})
package connectivity
