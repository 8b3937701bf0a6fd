package screen

import "github.com/dep2p/go-unpeek/pkg/types"

// View 视图接口
//
// 由界面层实现。方法在发布或写入的 goroutine 上同步调用，
// 需要切换到 UI 线程时由实现自行处理。
type View interface {
	// ShowDialog 显示弹窗
	ShowDialog(message string)

	// HideDialog 关闭弹窗
	HideDialog()

	// SetLoading 更新加载状态
	SetLoading(state types.LoadingState)

	// ShowToast 显示轻提示
	ShowToast(message string, long bool)

	// ShowError 显示错误
	ShowError(message string, err error)

	// Navigate 导航到路由
	Navigate(route string, args map[string]any)

	// Back 返回上一页
	Back()

	// Finish 结束界面
	Finish(result any)
}
