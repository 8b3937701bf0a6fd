// Package interfaces 定义 unpeek 的公共接口
//
// 一个接口文件对应一个实现目录：
//   - scope.go     - 生命周期作用域（internal/core/lifecycle）
//   - eventbus.go  - 标签事件总线（internal/core/eventbus）
//   - metrics.go   - 投递指标上报（internal/core/metrics）
//
// Channel 是泛型类型，直接由 internal/core/channel 提供，不在此定义接口。
package interfaces
