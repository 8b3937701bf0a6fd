package channel

import (
	"sync"
	"sync/atomic"

	"github.com/dep2p/go-unpeek/pkg/interfaces"
	"github.com/dep2p/go-unpeek/pkg/types"
)

// ============================================================================
// Subscription 实现
// ============================================================================

// Subscription Channel 订阅
//
// 同组的多个 Subscription 共享一条投递记录。
type Subscription struct {
	group  types.GroupKey
	record *DeliveryRecord
	active atomic.Bool

	// detach 从所属 Channel 移除
	detach func(*Subscription)

	mu     sync.Mutex
	closed bool
	// unbind 撤销作用域钩子
	unbind func()
}

// 确保实现接口
var _ interfaces.Closer = (*Subscription)(nil)

// Group 返回订阅组
func (s *Subscription) Group() types.GroupKey {
	return s.group
}

// Active 订阅是否仍然有效
func (s *Subscription) Active() bool {
	return s.active.Load()
}

// Close 取消订阅
//
// Close 是并发安全的，可以多次调用，也可以在自身回调内调用。
// 关闭后会：
//  1. 标记为失效，尚未开始的投递不再调用回调
//  2. 从 Channel 移除
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

	s.detach(s)
	if unbind != nil {
		unbind()
	}
	return nil
}

// setUnbind 保存作用域钩子的撤销函数
//
// 订阅已关闭时立即撤销。
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
