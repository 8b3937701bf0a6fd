package types

// ============================================================================
//                              内置标签
// ============================================================================

const (
	// TagToast 轻提示
	TagToast Tag = "ui.toast"

	// TagNavigate 导航到指定路由
	TagNavigate Tag = "ui.navigate"

	// TagError 错误提示
	TagError Tag = "ui.error"

	// TagFinish 结束界面并携带结果
	TagFinish Tag = "ui.finish"

	// TagLoggedOut 用户已登出（跨模块信号）
	TagLoggedOut Tag = "session.logged_out"

	// TagNetworkChanged 网络状态变更
	TagNetworkChanged Tag = "net.changed"
)

// UIPrefix UI 事件标签前缀
const UIPrefix = "ui."

// ============================================================================
//                              UI 事件负载
// ============================================================================

// ToastEvent 轻提示事件
type ToastEvent struct {
	Message string

	// Long 是否长时间显示
	Long bool
}

// NavigateEvent 导航事件
type NavigateEvent struct {
	Route string
	Args  map[string]any
}

// ErrorEvent 错误提示事件
type ErrorEvent struct {
	Message string
	Err     error
}

// FinishEvent 结束事件
type FinishEvent struct {
	Result any
}

// LoggedOutEvent 登出事件
type LoggedOutEvent struct {
	UserID string
	Reason string
}

// NetworkChangedEvent 网络状态变更事件
type NetworkChangedEvent struct {
	Previous NetState
	Current  NetState
}
