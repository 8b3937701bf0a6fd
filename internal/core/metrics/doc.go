// Package metrics 提供投递指标收集
//
// metrics 模块实现 interfaces.Reporter，基于 Prometheus client_golang：
//   - unpeek_deliveries_total{source}            回调调用次数
//   - unpeek_skipped_total{source,reason}        被跳过的投递（已消费/已失效/过期/类型不符）
//   - unpeek_callback_failures_total{source}     回调失败次数
//   - unpeek_live_subscriptions{source}          现存订阅数
//
// # 快速开始
//
//	reg := prometheus.NewRegistry()
//	reporter, err := metrics.NewPromReporter(reg, "unpeek")
//	ch := channel.New[string](channel.WithReporter(reporter))
//
// 未启用指标时使用 metrics.Nop()。
package metrics
