// Package types 定义 unpeek 的基础类型
//
// 本文件定义所有公共错误类型。
package types

import (
	"errors"
	"fmt"
)

// ============================================================================
//                              Channel 相关错误
// ============================================================================

var (
	// ErrRejectedNullWrite 向拒绝空值的 Channel 写入空值
	//
	// 写入方同步收到此错误，Channel 的值与版本保持不变。
	ErrRejectedNullWrite = errors.New("rejected null write")

	// ErrChannelClosed Channel 已关闭
	ErrChannelClosed = errors.New("channel closed")

	// ErrInvalidGroupKey 无效的组标识
	ErrInvalidGroupKey = errors.New("invalid group key")
)

// ============================================================================
//                              EventBus 相关错误
// ============================================================================

var (
	// ErrBusClosed 事件总线已关闭
	ErrBusClosed = errors.New("eventbus closed")

	// ErrInvalidTag 无效的事件标签
	ErrInvalidTag = errors.New("invalid event tag")

	// ErrEmptyFilter 过滤器不匹配任何标签
	ErrEmptyFilter = errors.New("filter matches no tag")

	// ErrEmitterClosed 发射器已关闭
	ErrEmitterClosed = errors.New("emitter is closed")
)

// ============================================================================
//                              订阅与生命周期错误
// ============================================================================

var (
	// ErrNilCallback 回调为空
	ErrNilCallback = errors.New("nil callback")

	// ErrNilScope 作用域为空
	ErrNilScope = errors.New("nil scope")

	// ErrScopeEnded 作用域已结束，不再接受订阅
	ErrScopeEnded = errors.New("scope already ended")

	// ErrInvalidPhase 非法的生命周期阶段迁移
	ErrInvalidPhase = errors.New("invalid lifecycle phase transition")

	// ErrCallbackPanic 回调执行时发生 panic
	ErrCallbackPanic = errors.New("callback panicked")
)

// ============================================================================
//                              CallbackError
// ============================================================================

// CallbackError 观察者回调在投递过程中失败
//
// 失败只影响当前这一个观察者：本次投递视为已尝试，不会自动重试，
// 投递记录保持已消费状态，其余观察者照常投递。
type CallbackError struct {
	// Source 投递来源（Channel 名称或 "eventbus"）
	Source string

	// Group 订阅组（仅 Channel 投递）
	Group GroupKey

	// Version 投递的版本（仅 Channel 投递）
	Version uint64

	// Tag 事件标签（仅总线投递）
	Tag Tag

	// Cause 原始错误
	Cause error
}

// NewPanicError 将 recover 得到的值包装为 CallbackError 的 Cause
func NewPanicError(r any) error {
	if err, ok := r.(error); ok {
		return fmt.Errorf("%w: %w", ErrCallbackPanic, err)
	}
	return fmt.Errorf("%w: %v", ErrCallbackPanic, r)
}

// Error 实现 error 接口
func (e *CallbackError) Error() string {
	if e.Tag != "" {
		return fmt.Sprintf("callback failed: source=%s tag=%s: %v", e.Source, e.Tag, e.Cause)
	}
	return fmt.Sprintf("callback failed: source=%s group=%s version=%d: %v",
		e.Source, e.Group.ShortString(), e.Version, e.Cause)
}

// Unwrap 返回原始错误
func (e *CallbackError) Unwrap() error {
	return e.Cause
}

// ErrorHandler 回调失败处理函数
type ErrorHandler func(*CallbackError)
