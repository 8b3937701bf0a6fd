package channel

import (
	"container/list"
	"fmt"
	"sync"

	"github.com/dep2p/go-unpeek/internal/core/lifecycle"
	"github.com/dep2p/go-unpeek/internal/core/metrics"
	"github.com/dep2p/go-unpeek/pkg/interfaces"
	"github.com/dep2p/go-unpeek/pkg/lib/log"
	"github.com/dep2p/go-unpeek/pkg/types"
)

var logger = log.Logger("core/channel")

// DefaultName 未命名 Channel 的名称
const DefaultName = "channel"

// ============================================================================
// Channel 实现
// ============================================================================

// Channel 按订阅组恰好投递一次的值通道
type Channel[T any] struct {
	name     string
	policy   types.NullPolicy
	reporter interfaces.Reporter
	onError  types.ErrorHandler

	mu       sync.Mutex
	value    T
	hasValue bool
	version  uint64
	closed   bool
	registry *groupRegistry

	// subs 存活订阅，按插入顺序
	subs *list.List
	// index 订阅到链表元素
	index map[*Subscription]*list.Element

	// 分发状态
	dispatching bool
	dirty       bool

	// onClose 关闭后依次执行
	onClose []func()
}

// entry 链表元素
type entry[T any] struct {
	sub      *Subscription
	callback func(T, uint64)
}

// New 创建空的 Channel
func New[T any](opts ...Option) *Channel[T] {
	s := &settings{
		name:   DefaultName,
		policy: types.RejectNull,
	}
	for _, opt := range opts {
		opt(s)
	}

	c := &Channel[T]{
		name:     s.name,
		policy:   s.policy,
		reporter: s.reporter,
		onError:  s.onError,
		registry: newGroupRegistry(),
		subs:     list.New(),
		index:    make(map[*Subscription]*list.Element),
	}
	if c.reporter == nil {
		c.reporter = metrics.Nop()
	}
	if c.onError == nil {
		c.onError = c.logError
	}

	if s.hasInitial {
		c.setInitial(s.initial)
	}
	return c
}

// setInitial 设置初始值
func (c *Channel[T]) setInitial(initial any) {
	var v T
	if initial != nil {
		typed, ok := initial.(T)
		if !ok {
			logger.Warn("初始值类型不匹配，已忽略",
				"channel", c.name,
				"type", fmt.Sprintf("%T", initial))
			return
		}
		v = typed
	}
	if c.policy == types.RejectNull && types.IsNull(v) {
		logger.Warn("初始值为空，已忽略", "channel", c.name)
		return
	}
	c.value = v
	c.hasValue = true
	c.version = 1
}

// ============================================================================
// 写入
// ============================================================================

// Write 写入新值
//
// RejectNull 策略下写入空值返回 ErrRejectedNullWrite，值与版本保持不变。
// 被接受的写入使版本加一，把所有组置为待投递，并触发投递。
//
// 回调失败不会返回给写入方，而是交给 ErrorHandler。
func (c *Channel[T]) Write(v T) error {
	if c.policy == types.RejectNull && types.IsNull(v) {
		logger.Debug("拒绝空值写入", "channel", c.name)
		return types.ErrRejectedNullWrite
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return types.ErrChannelClosed
	}
	c.value = v
	c.hasValue = true
	c.version++
	c.registry.resetAll()
	c.mu.Unlock()

	c.dispatch()
	return nil
}

// Clear 清空当前值
//
// 不增加版本，也不把组置为待投递；空 Channel 不会投递。
// 回调内处理一次性命令时改用 ClearIf，避免清掉处理期间写入的新命令。
func (c *Channel[T]) Clear() {
	c.mu.Lock()
	c.clearLocked()
	c.mu.Unlock()
}

// ClearIf 仅当当前版本仍为 version 时清空，返回是否清空
//
// version 取自 SubscribeVersion 回调。处理期间有新的写入时保留新值，
// 新值随后照常投递。
func (c *Channel[T]) ClearIf(version uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.version != version || !c.hasValue {
		return false
	}
	c.clearLocked()
	return true
}

func (c *Channel[T]) clearLocked() {
	var zero T
	c.value = zero
	c.hasValue = false
}

// ============================================================================
// 订阅
// ============================================================================

// Subscribe 以 group 的身份订阅，存活到 scope 结束或主动关闭
//
// 组首次订阅时创建投递记录，Channel 有值则立即收到当前值。
// 同一组再次订阅不会收到组内已经消费过的版本。
//
// 每次订阅都会对全部存活订阅执行一轮投递（O(n)），
// 投递按订阅插入顺序进行，同组内先到者消费。
func (c *Channel[T]) Subscribe(group types.GroupKey, scope interfaces.Scope, callback func(T)) (*Subscription, error) {
	if callback == nil {
		return nil, types.ErrNilCallback
	}
	return c.subscribe(group, scope, func(v T, _ uint64) { callback(v) })
}

// SubscribeVersion 与 Subscribe 相同，回调额外收到被投递值的版本
//
// 一次性命令的消费方用该版本调用 ClearIf。
func (c *Channel[T]) SubscribeVersion(group types.GroupKey, scope interfaces.Scope, callback func(T, uint64)) (*Subscription, error) {
	if callback == nil {
		return nil, types.ErrNilCallback
	}
	return c.subscribe(group, scope, callback)
}

func (c *Channel[T]) subscribe(group types.GroupKey, scope interfaces.Scope, callback func(T, uint64)) (*Subscription, error) {
	if err := group.Validate(); err != nil {
		return nil, err
	}
	if scope == nil {
		return nil, types.ErrNilScope
	}
	if lifecycle.IsEnded(scope) {
		return nil, types.ErrScopeEnded
	}
	if c.IsClosed() {
		return nil, types.ErrChannelClosed
	}

	sub := &Subscription{
		group:  group,
		detach: c.remove,
	}
	sub.active.Store(true)

	// 先绑定作用域再登记：登记之前作用域结束，回调不可能被调用
	unbind, err := lifecycle.Bind(scope, sub)
	if err != nil {
		return nil, err
	}
	sub.setUnbind(unbind)

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		_ = sub.Close()
		return nil, types.ErrChannelClosed
	}
	if !sub.active.Load() {
		c.mu.Unlock()
		return nil, types.ErrScopeEnded
	}
	sub.record = c.registry.getOrCreate(group, c.hasValue)
	c.index[sub] = c.subs.PushBack(&entry[T]{sub: sub, callback: callback})
	c.mu.Unlock()

	c.reporter.SubscriptionOpened(c.name)

	logger.Debug("订阅已创建",
		"channel", c.name,
		"group", group.ShortString())

	c.dispatch()
	return sub, nil
}

// remove 移除订阅
//
// 在 c.mu 内置为失效，与 claim 的检查互斥。
func (c *Channel[T]) remove(sub *Subscription) {
	c.mu.Lock()
	sub.active.Store(false)
	elem, ok := c.index[sub]
	if ok {
		c.subs.Remove(elem)
		delete(c.index, sub)
	}
	c.mu.Unlock()

	if ok {
		c.reporter.SubscriptionClosed(c.name)
	}
}

// Close 关闭 Channel 及其全部订阅
//
// 之后的 Write 与 Subscribe 返回 ErrChannelClosed。可以重复调用。
func (c *Channel[T]) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	subs := c.snapshot()
	hooks := c.onClose
	c.onClose = nil
	c.mu.Unlock()

	for _, e := range subs {
		_ = e.sub.Close()
	}
	for _, hook := range hooks {
		hook()
	}
	return nil
}

// OnClose 注册关闭后执行的函数，已关闭时立即执行
func (c *Channel[T]) OnClose(fn func()) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		fn()
		return
	}
	c.onClose = append(c.onClose, fn)
	c.mu.Unlock()
}

// ============================================================================
// 只读访问
// ============================================================================

// Name 返回名称
func (c *Channel[T]) Name() string {
	return c.name
}

// Policy 返回空值策略
func (c *Channel[T]) Policy() types.NullPolicy {
	return c.policy
}

// Value 返回当前值，空 Channel 返回 false
func (c *Channel[T]) Value() (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.value, c.hasValue
}

// Version 返回当前版本
func (c *Channel[T]) Version() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.version
}

// Len 返回存活订阅数
func (c *Channel[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.subs.Len()
}

// Groups 返回注册过的组数
func (c *Channel[T]) Groups() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.registry.len()
}

// Pending 组是否有待投递的值
//
// 从未订阅过的组返回 false。
func (c *Channel[T]) Pending(group types.GroupKey) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	rec, ok := c.registry.get(group)
	return ok && rec.pending
}

// ConsumedValue 组已消费当前版本时返回当前值
//
// 从未订阅过的组、待投递的组以及空 Channel 返回 false。
// 用于把持续状态同步给同组新挂载的观察者，而不依赖重复投递。
func (c *Channel[T]) ConsumedValue(group types.GroupKey) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	rec, ok := c.registry.get(group)
	if !ok || rec.pending || !c.hasValue {
		var zero T
		return zero, false
	}
	return c.value, true
}

// IsClosed 是否已关闭
func (c *Channel[T]) IsClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

// ============================================================================
// 投递
// ============================================================================

// snapshot 复制存活订阅，调用方持有 c.mu
func (c *Channel[T]) snapshot() []*entry[T] {
	out := make([]*entry[T], 0, c.subs.Len())
	for e := c.subs.Front(); e != nil; e = e.Next() {
		out = append(out, e.Value.(*entry[T]))
	}
	return out
}

// dispatch 执行投递轮次直到没有新的工作
//
// 已有分发者时只登记工作并返回，回调内的重入写入和订阅走这条路径。
func (c *Channel[T]) dispatch() {
	c.mu.Lock()
	if c.dispatching {
		c.dirty = true
		c.mu.Unlock()
		return
	}
	c.dispatching = true

	for {
		c.dirty = false
		c.mu.Unlock()

		c.pass()

		c.mu.Lock()
		if !c.dirty {
			c.dispatching = false
			c.mu.Unlock()
			return
		}
	}
}

// claimResult 认领结果
type claimResult int

const (
	claimed claimResult = iota
	skipped
	aborted
)

// pass 一次投递轮次
func (c *Channel[T]) pass() {
	c.mu.Lock()
	if !c.hasValue {
		c.mu.Unlock()
		return
	}
	value, version := c.value, c.version
	subs := c.snapshot()
	c.mu.Unlock()

	for _, e := range subs {
		switch c.claim(e.sub, version) {
		case claimed:
			c.invoke(e, value, version)
		case aborted:
			c.reporter.Skipped(c.name, interfaces.SkipStale)
			return
		}
	}
}

// claim 把订阅的组记录从待投递翻转为已消费
//
// 版本已变化或值被清空时中止本轮。失效检查与 remove 同在 c.mu 内，
// 认领成功的订阅在认领时刻一定存活。
func (c *Channel[T]) claim(sub *Subscription, version uint64) claimResult {
	c.mu.Lock()
	if c.version != version || !c.hasValue {
		c.mu.Unlock()
		return aborted
	}
	if !sub.active.Load() {
		c.mu.Unlock()
		c.reporter.Skipped(c.name, interfaces.SkipInactive)
		return skipped
	}
	if !sub.record.pending {
		c.mu.Unlock()
		c.reporter.Skipped(c.name, interfaces.SkipConsumed)
		return skipped
	}
	sub.record.pending = false
	c.mu.Unlock()
	return claimed
}

// invoke 调用回调，隔离 panic
func (c *Channel[T]) invoke(e *entry[T], value T, version uint64) {
	defer func() {
		if r := recover(); r != nil {
			c.fail(e.sub, version, types.NewPanicError(r))
		}
	}()

	e.callback(value, version)
	c.reporter.Delivered(c.name)
}

// fail 上报回调失败，本次投递视为已尝试
func (c *Channel[T]) fail(sub *Subscription, version uint64, cause error) {
	c.reporter.CallbackFailed(c.name)

	cbErr := &types.CallbackError{
		Source:  c.name,
		Group:   sub.group,
		Version: version,
		Cause:   cause,
	}

	defer func() {
		if r := recover(); r != nil {
			logger.Error("错误处理函数 panic", "channel", c.name, "panic", r)
		}
	}()
	c.onError(cbErr)
}

// logError 默认错误处理
func (c *Channel[T]) logError(err *types.CallbackError) {
	logger.Error("回调失败",
		"channel", c.name,
		"group", err.Group.ShortString(),
		"version", err.Version,
		"err", err.Cause)
}
