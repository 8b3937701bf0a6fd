// Package types 定义 unpeek 的公共数据结构
//
// 这是整个系统的最底层包，不依赖任何其他 unpeek 内部包。
// 所有类型都是纯值类型，用于在各模块间传递数据。
//
// # 文件组织
//
//   - groupkey.go - GroupKey 订阅组标识
//   - policy.go   - NullPolicy 空值策略
//   - envelope.go - Tag, Filter, Envelope 事件总线信封
//   - events.go   - 内置标签与 UI 事件负载
//   - state.go    - LoadingState, UiState, NetState 状态值
//   - errors.go   - 公共错误定义与 CallbackError
//
// # 与 internal 的边界
//
// pkg/types 只定义数据，不包含任何分发逻辑。
// 分发语义（版本、去重、生命周期）由 internal/core 下的组件实现。
package types
