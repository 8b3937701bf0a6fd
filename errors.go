package unpeek

import "errors"

// 公共错误定义
var (
	// ────────────────────────────────────────────────────────────────────────
	// 生命周期错误
	// ────────────────────────────────────────────────────────────────────────

	// ErrNotStarted Core 未启动
	ErrNotStarted = errors.New("core not started")

	// ErrAlreadyStarted Core 已启动
	ErrAlreadyStarted = errors.New("core already started")

	// ErrClosed Core 已关闭
	ErrClosed = errors.New("core closed")

	// ────────────────────────────────────────────────────────────────────────
	// 选项错误
	// ────────────────────────────────────────────────────────────────────────

	// ErrNilConfig 配置为空
	ErrNilConfig = errors.New("nil config")

	// ErrNilOption 选项参数为空
	ErrNilOption = errors.New("nil option argument")
)
