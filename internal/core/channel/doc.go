// Package channel 实现按订阅组恰好投递一次的值通道
//
// Channel[T] 持有一个可变值和单调递增的版本号。每个订阅属于一个 GroupKey，
// 同一组的所有订阅共享一条投递记录：
//
//   - 每次被接受的写入把所有组的记录置为待投递
//   - 投递时把记录翻转为已消费，再调用回调
//   - 组内每个版本最多投递给一个订阅，且只投递一次
//   - 新组首次订阅时立即收到当前非空值（追赶投递）
//   - 同一组重新订阅不会再次收到已消费的值（无数据倒灌）
//
// # 并发模型
//
// 写入与投递在单个 Channel 上串行化：发现 Channel 空闲的 goroutine 成为分发者，
// 持续执行投递轮次直到没有新的版本或订阅；其余调用方（包括回调内的重入调用）
// 只登记后立即返回。调用回调时不持有任何内部锁，回调可以写入、订阅或关闭自身。
//
// 投递轮次开始时对 (值, 版本) 做快照，版本变化时中止，由新一轮投递新值。
//
// # 使用示例
//
//	cmd := channel.New[string](channel.WithName("dialog"))
//	sub, err := cmd.SubscribeVersion(store.Key(), owner, func(msg string, version uint64) {
//	    view.ShowDialog(msg)
//	    cmd.ClearIf(version)
//	})
//
// 回调 panic 会被恢复为 *types.CallbackError 并交给 ErrorHandler，
// 本次投递视为已尝试，不会重试，其余订阅照常投递。
package channel
