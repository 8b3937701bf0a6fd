package eventbus

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"go.uber.org/multierr"

	"github.com/dep2p/go-unpeek/internal/core/lifecycle"
	"github.com/dep2p/go-unpeek/internal/core/metrics"
	"github.com/dep2p/go-unpeek/pkg/interfaces"
	"github.com/dep2p/go-unpeek/pkg/lib/log"
	"github.com/dep2p/go-unpeek/pkg/types"
)

var logger = log.Logger("core/eventbus")

// Source 指标与错误中的投递来源
const Source = "eventbus"

// ============================================================================
// Bus 实现
// ============================================================================

// Bus 事件总线
type Bus struct {
	mu sync.RWMutex

	// nodes 标签节点映射
	nodes map[types.Tag]*node

	// wildcard 通配订阅（MatchAll / MatchPrefix），按注册顺序
	wildcard []*Subscription

	// seq 订阅注册序号
	seq uint64

	// live 存活订阅数
	live int

	closed bool

	clock         clock.Clock
	reporter      interfaces.Reporter
	onError       types.ErrorHandler
	slowThreshold time.Duration
}

// node 标签节点
//
// 所有字段由 Bus.mu 保护。
type node struct {
	tag       types.Tag
	sinks     []*Subscription // 按注册顺序
	nEmitters int             // 发射器引用计数
}

// 确保实现接口
var _ interfaces.EventBus = (*Bus)(nil)

// NewBus 创建新的事件总线
func NewBus(opts ...Option) *Bus {
	s := defaultSettings()
	for _, opt := range opts {
		opt(s)
	}

	b := &Bus{
		nodes:         make(map[types.Tag]*node),
		clock:         s.clock,
		reporter:      s.reporter,
		onError:       s.onError,
		slowThreshold: s.slowThreshold,
	}
	if b.reporter == nil {
		b.reporter = metrics.Nop()
	}
	if b.onError == nil {
		b.onError = logError
	}
	return b
}

// ============================================================================
// EventBus 接口实现
// ============================================================================

// Subscribe 订阅匹配过滤器的事件
//
// 订阅只接收注册之后发布的信封。scope 结束时自动关闭。
func (b *Bus) Subscribe(filter types.Filter, handler interfaces.BusHandler, scope interfaces.Scope) (interfaces.BusSubscription, error) {
	if filter.IsEmpty() {
		return nil, types.ErrEmptyFilter
	}
	if handler == nil {
		return nil, types.ErrNilCallback
	}
	if scope == nil {
		return nil, types.ErrNilScope
	}
	if lifecycle.IsEnded(scope) {
		return nil, types.ErrScopeEnded
	}

	sub := &Subscription{
		bus:     b,
		filter:  filter,
		handler: handler,
	}
	sub.active.Store(true)

	// 先绑定作用域再登记：登记之前作用域结束，处理函数不可能被调用
	unbind, err := lifecycle.Bind(scope, sub)
	if err != nil {
		return nil, err
	}
	sub.setUnbind(unbind)

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		_ = sub.Close()
		return nil, types.ErrBusClosed
	}
	if !sub.Active() {
		b.mu.Unlock()
		return nil, types.ErrScopeEnded
	}
	b.seq++
	sub.seq = b.seq
	if filter.IsWildcard() {
		b.wildcard = append(b.wildcard, sub)
	} else {
		for _, tag := range filter.Tags() {
			n := b.nodeLocked(tag)
			n.sinks = append(n.sinks, sub)
		}
	}
	b.live++
	b.mu.Unlock()

	b.reporter.SubscriptionOpened(Source)
	return sub, nil
}

// Publish 同步发布信封
//
// 按注册顺序投递给发布时刻所有过滤器匹配的订阅，不缓冲也不回放。
// 回调失败不影响其他订阅，所有失败合并后返回，并逐个交给 ErrorHandler。
func (b *Bus) Publish(ctx context.Context, env types.Envelope) error {
	if env.Tag.IsEmpty() {
		return types.ErrInvalidTag
	}

	b.mu.RLock()
	if b.closed {
		b.mu.RUnlock()
		return types.ErrBusClosed
	}
	targets := b.targetsLocked(env.Tag)
	b.mu.RUnlock()

	env = env.Stamp(b.clock.Now())

	var errs error
	for _, sub := range targets {
		if !sub.Active() {
			b.reporter.Skipped(Source, interfaces.SkipInactive)
			continue
		}
		if err := b.deliver(ctx, sub, env); err != nil {
			errs = multierr.Append(errs, err)
		}
	}
	return errs
}

// Emitter 获取绑定到标签的发射器
//
// 发射器存活期间标签节点不会被删除。
func (b *Bus) Emitter(tag types.Tag) (interfaces.Emitter, error) {
	if tag.IsEmpty() {
		return nil, types.ErrInvalidTag
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil, types.ErrBusClosed
	}
	b.nodeLocked(tag).nEmitters++

	return &Emitter{bus: b, tag: tag}, nil
}

// Len 返回存活订阅数
func (b *Bus) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.live
}

// Tags 返回当前有订阅或发射器的精确标签，按字典序
func (b *Bus) Tags() []types.Tag {
	b.mu.RLock()
	defer b.mu.RUnlock()

	tags := make([]types.Tag, 0, len(b.nodes))
	for tag := range b.nodes {
		tags = append(tags, tag)
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i] < tags[j] })
	return tags
}

// Reporter 返回指标上报器
func (b *Bus) Reporter() interfaces.Reporter {
	return b.reporter
}

// Close 关闭总线及全部订阅，可以重复调用
func (b *Bus) Close() error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil
	}
	b.closed = true
	subs := b.allLocked()
	b.mu.Unlock()

	for _, sub := range subs {
		_ = sub.Close()
	}
	logger.Debug("事件总线已关闭", "subscriptions", len(subs))
	return nil
}

// ============================================================================
// 内部方法
// ============================================================================

// nodeLocked 返回标签节点，不存在时创建，调用方持有写锁
func (b *Bus) nodeLocked(tag types.Tag) *node {
	n, ok := b.nodes[tag]
	if !ok {
		n = &node{tag: tag}
		b.nodes[tag] = n
	}
	return n
}

// tryDropNodeLocked 删除没有订阅和发射器的节点，调用方持有写锁
func (b *Bus) tryDropNodeLocked(tag types.Tag) {
	n, ok := b.nodes[tag]
	if !ok {
		return
	}
	if len(n.sinks) > 0 || n.nEmitters > 0 {
		return
	}
	delete(b.nodes, tag)
}

// targetsLocked 合并精确订阅与通配订阅，按注册顺序
func (b *Bus) targetsLocked(tag types.Tag) []*Subscription {
	var exact []*Subscription
	if n, ok := b.nodes[tag]; ok {
		exact = n.sinks
	}

	out := make([]*Subscription, 0, len(exact)+len(b.wildcard))
	i, j := 0, 0
	for i < len(exact) || j < len(b.wildcard) {
		if j < len(b.wildcard) && !b.wildcard[j].filter.Match(tag) {
			j++
			continue
		}
		if j >= len(b.wildcard) || (i < len(exact) && exact[i].seq < b.wildcard[j].seq) {
			out = append(out, exact[i])
			i++
			continue
		}
		out = append(out, b.wildcard[j])
		j++
	}
	return out
}

// allLocked 返回全部订阅
func (b *Bus) allLocked() []*Subscription {
	seen := make(map[*Subscription]struct{}, b.live)
	out := make([]*Subscription, 0, b.live)
	add := func(s *Subscription) {
		if _, ok := seen[s]; ok {
			return
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	for _, n := range b.nodes {
		for _, s := range n.sinks {
			add(s)
		}
	}
	for _, s := range b.wildcard {
		add(s)
	}
	return out
}

// removeSub 移除订阅
func (b *Bus) removeSub(sub *Subscription) {
	b.mu.Lock()
	removed := false
	if sub.filter.IsWildcard() {
		b.wildcard, removed = without(b.wildcard, sub)
	} else {
		for _, tag := range sub.filter.Tags() {
			n, ok := b.nodes[tag]
			if !ok {
				continue
			}
			var r bool
			n.sinks, r = without(n.sinks, sub)
			removed = removed || r
			b.tryDropNodeLocked(tag)
		}
	}
	if removed {
		b.live--
	}
	b.mu.Unlock()

	if removed {
		b.reporter.SubscriptionClosed(Source)
	}
}

// releaseEmitter 减少发射器引用计数
func (b *Bus) releaseEmitter(tag types.Tag) {
	b.mu.Lock()
	defer b.mu.Unlock()
	n, ok := b.nodes[tag]
	if !ok {
		return
	}
	n.nEmitters--
	b.tryDropNodeLocked(tag)
}

// without 返回移除 sub 后的新切片
//
// 不原地修改，发布方持有的快照保持不变。
func without(list []*Subscription, sub *Subscription) ([]*Subscription, bool) {
	for i, s := range list {
		if s == sub {
			out := make([]*Subscription, 0, len(list)-1)
			out = append(out, list[:i]...)
			return append(out, list[i+1:]...), true
		}
	}
	return list, false
}

// deliver 调用单个回调，隔离 panic
func (b *Bus) deliver(ctx context.Context, sub *Subscription, env types.Envelope) (err error) {
	start := b.clock.Now()
	defer func() {
		if r := recover(); r != nil {
			cbErr := &types.CallbackError{
				Source: Source,
				Tag:    env.Tag,
				Cause:  types.NewPanicError(r),
			}
			b.reporter.CallbackFailed(Source)
			b.handleError(cbErr)
			err = cbErr
		}
	}()

	sub.handler(ctx, env)
	b.reporter.Delivered(Source)

	if b.slowThreshold > 0 {
		if elapsed := b.clock.Since(start); elapsed > b.slowThreshold {
			logger.Warn("慢回调检测",
				"tag", env.Tag,
				"elapsed", elapsed,
				"threshold", b.slowThreshold)
		}
	}
	return nil
}

// handleError 调用 ErrorHandler，隔离其 panic
func (b *Bus) handleError(err *types.CallbackError) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("错误处理函数 panic", "panic", r)
		}
	}()
	b.onError(err)
}

// logError 默认错误处理
func logError(err *types.CallbackError) {
	logger.Error("回调失败", "tag", err.Tag, "err", err.Cause)
}
