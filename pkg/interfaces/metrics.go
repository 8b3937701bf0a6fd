// Package interfaces 定义 unpeek 公共接口
//
// 本文件定义 Reporter 接口，用于上报投递指标。
package interfaces

// SkipReason 投递被跳过的原因
type SkipReason string

const (
	// SkipConsumed 组内已消费当前版本
	SkipConsumed SkipReason = "consumed"

	// SkipInactive 订阅在投递前已失效
	SkipInactive SkipReason = "inactive"

	// SkipStale 投递过程中版本已更新
	SkipStale SkipReason = "stale"

	// SkipTypeMismatch 负载类型与订阅不符
	SkipTypeMismatch SkipReason = "type_mismatch"
)

// Reporter 投递指标上报器
//
// source 为 Channel 名称或 "eventbus"。实现必须并发安全且不阻塞。
type Reporter interface {
	// Delivered 一次回调被调用
	Delivered(source string)

	// Skipped 一次投递被跳过
	Skipped(source string, reason SkipReason)

	// CallbackFailed 一次回调失败
	CallbackFailed(source string)

	// SubscriptionOpened 新建订阅
	SubscriptionOpened(source string)

	// SubscriptionClosed 订阅关闭
	SubscriptionClosed(source string)
}
