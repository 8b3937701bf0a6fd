package eventbus

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/dep2p/go-unpeek/pkg/interfaces"
	"github.com/dep2p/go-unpeek/pkg/types"
)

// ============================================================================
// Subscription 实现
// ============================================================================

// Subscription 总线订阅
type Subscription struct {
	bus     *Bus
	filter  types.Filter
	handler interfaces.BusHandler
	seq     uint64
	active  atomic.Bool

	mu     sync.Mutex
	closed bool
	unbind func()
}

// 确保实现接口
var _ interfaces.BusSubscription = (*Subscription)(nil)

// Filter 返回过滤器
func (s *Subscription) Filter() types.Filter {
	return s.filter
}

// Active 订阅是否仍然有效
func (s *Subscription) Active() bool {
	return s.active.Load()
}

// Close 取消订阅
//
// Close 是并发安全的，可以多次调用。
// 关闭后会：
//  1. 标记为失效，进行中的发布跳过此订阅
//  2. 从总线移除
//  3. 撤销作用域钩子
func (s *Subscription) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.active.Store(false)
	unbind := s.unbind
	s.unbind = nil
	s.mu.Unlock()

	s.bus.removeSub(s)
	if unbind != nil {
		unbind()
	}
	return nil
}

// setUnbind 保存作用域钩子的撤销函数，已关闭时立即撤销
func (s *Subscription) setUnbind(unbind func()) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		unbind()
		return
	}
	s.unbind = unbind
	s.mu.Unlock()
}

// ============================================================================
// Emitter 实现
// ============================================================================

// Emitter 绑定到单个标签的发射器
type Emitter struct {
	bus       *Bus
	tag       types.Tag
	closed    atomic.Bool
	closeOnce sync.Once
}

// 确保实现接口
var _ interfaces.Emitter = (*Emitter)(nil)

// Emit 发射事件
func (e *Emitter) Emit(ctx context.Context, payload any) error {
	if e.closed.Load() {
		return types.ErrEmitterClosed
	}
	return e.bus.Publish(ctx, types.NewEnvelope(e.tag, payload))
}

// Tag 返回绑定的标签
func (e *Emitter) Tag() types.Tag {
	return e.tag
}

// Close 关闭发射器
//
// 关闭后：
//  1. 标记为已关闭
//  2. 减少引用计数
//  3. 如果计数为 0 且没有订阅，删除标签节点
func (e *Emitter) Close() error {
	e.closeOnce.Do(func() {
		e.closed.Store(true)
		e.bus.releaseEmitter(e.tag)
	})
	return nil
}
