package types

import "fmt"

// DefaultLoadingMessage 默认加载提示
const DefaultLoadingMessage = "加载中..."

// DefaultEmptyMessage 默认空数据提示
const DefaultEmptyMessage = "暂无数据"

// ============================================================================
//                              LoadingState
// ============================================================================

// LoadingState 加载状态
type LoadingState struct {
	Active  bool
	Message string
}

// Loading 返回加载中状态
func Loading(message string) LoadingState {
	if message == "" {
		message = DefaultLoadingMessage
	}
	return LoadingState{Active: true, Message: message}
}

// NotLoading 返回非加载状态
func NotLoading() LoadingState {
	return LoadingState{}
}

// ============================================================================
//                              UiState
// ============================================================================

// UiKind 界面状态种类
type UiKind int

const (
	// UiIdle 空闲
	UiIdle UiKind = iota
	// UiLoading 加载中
	UiLoading
	// UiSuccess 成功
	UiSuccess
	// UiError 失败
	UiError
	// UiEmpty 无数据
	UiEmpty
)

// String 返回种类字符串表示
func (k UiKind) String() string {
	switch k {
	case UiIdle:
		return "idle"
	case UiLoading:
		return "loading"
	case UiSuccess:
		return "success"
	case UiError:
		return "error"
	case UiEmpty:
		return "empty"
	default:
		return fmt.Sprintf("unknown(%d)", int(k))
	}
}

// UiState 界面状态
type UiState[T any] struct {
	Kind    UiKind
	Data    T
	Message string
	Err     error
}

// Idle 返回空闲状态
func Idle[T any]() UiState[T] {
	return UiState[T]{Kind: UiIdle}
}

// LoadingUi 返回加载中状态
func LoadingUi[T any](message string) UiState[T] {
	if message == "" {
		message = DefaultLoadingMessage
	}
	return UiState[T]{Kind: UiLoading, Message: message}
}

// Success 返回成功状态
func Success[T any](data T) UiState[T] {
	return UiState[T]{Kind: UiSuccess, Data: data}
}

// Failure 返回失败状态
func Failure[T any](err error) UiState[T] {
	s := UiState[T]{Kind: UiError, Err: err}
	if err != nil {
		s.Message = err.Error()
	}
	return s
}

// Empty 返回无数据状态
func Empty[T any](message string) UiState[T] {
	if message == "" {
		message = DefaultEmptyMessage
	}
	return UiState[T]{Kind: UiEmpty, Message: message}
}

// IsIdle 是否空闲
func (s UiState[T]) IsIdle() bool { return s.Kind == UiIdle }

// IsLoading 是否加载中
func (s UiState[T]) IsLoading() bool { return s.Kind == UiLoading }

// IsSuccess 是否成功
func (s UiState[T]) IsSuccess() bool { return s.Kind == UiSuccess }

// IsError 是否失败
func (s UiState[T]) IsError() bool { return s.Kind == UiError }

// IsEmpty 是否无数据
func (s UiState[T]) IsEmpty() bool { return s.Kind == UiEmpty }

// GetOrDefault 成功时返回数据，否则返回 def
func (s UiState[T]) GetOrDefault(def T) T {
	if s.Kind == UiSuccess {
		return s.Data
	}
	return def
}

// ============================================================================
//                              NetState
// ============================================================================

// NetState 网络连通状态
type NetState struct {
	// Available 网络是否可用
	Available bool

	// Transport 探测所用的传输描述（如 "tcp"）
	Transport string
}

// String 返回字符串表示
func (s NetState) String() string {
	if s.Available {
		return "available(" + s.Transport + ")"
	}
	return "unavailable"
}
