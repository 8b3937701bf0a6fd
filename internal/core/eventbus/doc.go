// Package eventbus 实现进程内标签事件总线
//
// 面向一次性信号（提示、导航、登出等），支持：
//   - 按标签、标签前缀或全部匹配的过滤器
//   - 同步发布，按订阅注册顺序投递
//   - 订阅绑定生命周期作用域，作用域结束自动取消
//   - 发射器引用计数
//   - 回调 panic 隔离与慢回调告警
//
// 总线不缓冲也不回放：发布返回之后才注册的订阅永远看不到该信封。
// 需要"晚到者收到当前值"语义时使用 internal/core/channel。
//
// # 快速开始
//
//	bus := eventbus.NewBus()
//
//	// 订阅
//	sub, _ := bus.Subscribe(types.MatchTags(types.TagLoggedOut), func(ctx context.Context, env types.Envelope) {
//	    // 处理登出
//	}, owner)
//	defer sub.Close()
//
//	// 类型化订阅
//	eventbus.On(bus, types.TagToast, owner, func(ctx context.Context, e types.ToastEvent) {
//	    view.ShowToast(e.Message)
//	})
//
//	// 发射
//	em, _ := bus.Emitter(types.TagToast)
//	defer em.Close()
//	em.Emit(ctx, types.ToastEvent{Message: "已保存"})
//
// # 并发安全
//
// 订阅集合的修改由 sync.RWMutex 串行化，发布时复制一份快照，
// 调用回调时不持有锁，回调内可以再次发布、订阅或关闭自身。
package eventbus
