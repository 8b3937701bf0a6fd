package screen

import (
	"github.com/dep2p/go-unpeek/internal/core/channel"
	"github.com/dep2p/go-unpeek/pkg/interfaces"
	"github.com/dep2p/go-unpeek/pkg/types"
)

// State 界面数据状态
//
// 状态是持续值：新组订阅时收到当前状态，之后每次变化收到一次。
type State[T any] struct {
	ch *channel.Channel[types.UiState[T]]
}

// NewState 在控制器下创建状态，随控制器关闭
func NewState[T any](c *Controller, name string) *State[T] {
	s := &State[T]{
		ch: channel.New[types.UiState[T]](
			channel.WithName(c.name+"."+name),
			channel.WithReporter(c.reporter),
			channel.WithInitialValue(types.Idle[T]()),
		),
	}
	c.track(s.ch)
	return s
}

// Loading 进入加载中状态
func (s *State[T]) Loading(message string) error {
	return s.ch.Write(types.LoadingUi[T](message))
}

// Succeed 进入成功状态
func (s *State[T]) Succeed(data T) error {
	return s.ch.Write(types.Success(data))
}

// Fail 进入失败状态
func (s *State[T]) Fail(err error) error {
	return s.ch.Write(types.Failure[T](err))
}

// Empty 进入无数据状态
func (s *State[T]) Empty(message string) error {
	return s.ch.Write(types.Empty[T](message))
}

// Reset 回到空闲状态
func (s *State[T]) Reset() error {
	return s.ch.Write(types.Idle[T]())
}

// Current 返回当前状态
func (s *State[T]) Current() types.UiState[T] {
	v, _ := s.ch.Value()
	return v
}

// Observe 以 group 身份观察状态变化
func (s *State[T]) Observe(group types.GroupKey, scope interfaces.Scope, fn func(types.UiState[T])) (*channel.Subscription, error) {
	return s.ch.Subscribe(group, scope, fn)
}

// Channel 返回底层通道
func (s *State[T]) Channel() *channel.Channel[types.UiState[T]] {
	return s.ch
}
