package lifecycle

import (
	"context"

	"github.com/dep2p/go-unpeek/pkg/interfaces"
	"github.com/dep2p/go-unpeek/pkg/types"
)

// ============================================================================
//                              Background
// ============================================================================

// backgroundScope 永不结束的进程级作用域
type backgroundScope struct{}

var background interfaces.Scope = backgroundScope{}

// Background 返回进程级作用域
//
// 绑定在其上的订阅存活到进程结束，除非主动关闭。
func Background() interfaces.Scope {
	return background
}

func (backgroundScope) OnEnd(func()) (func(), bool) {
	return func() {}, true
}

func (backgroundScope) Ended() <-chan struct{} {
	return nil
}

// ============================================================================
//                              FromContext
// ============================================================================

// FromContext 返回随 ctx 取消而结束的作用域
//
// 用于把"请求"或"任务"的存活区间直接作为订阅的作用域。
func FromContext(ctx context.Context) interfaces.Scope {
	h := newHookList()
	if ctx.Err() != nil {
		h.fire()
		return &intervalScope{h: h}
	}
	context.AfterFunc(ctx, func() {
		h.fire()
	})
	return &intervalScope{h: h}
}

// ============================================================================
//                              Bind
// ============================================================================

// Bind 在作用域结束时关闭 c
//
// 返回的 unregister 应在 c 主动关闭时调用，用于撤销钩子。
// 作用域已经结束时返回 ErrScopeEnded，c 不会被关闭，由调用方处理。
func Bind(scope interfaces.Scope, c interfaces.Closer) (func(), error) {
	if scope == nil {
		return nil, types.ErrNilScope
	}
	unregister, ok := scope.OnEnd(func() {
		_ = c.Close()
	})
	if !ok {
		return nil, types.ErrScopeEnded
	}
	return unregister, nil
}

// IsEnded 非阻塞地检查作用域是否已结束
func IsEnded(scope interfaces.Scope) bool {
	ch := scope.Ended()
	if ch == nil {
		return false
	}
	select {
	case <-ch:
		return true
	default:
		return false
	}
}
