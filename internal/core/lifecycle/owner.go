package lifecycle

import (
	"fmt"
	"sync"

	"github.com/dep2p/go-unpeek/pkg/interfaces"
	"github.com/dep2p/go-unpeek/pkg/lib/log"
	"github.com/dep2p/go-unpeek/pkg/types"
)

var logger = log.Logger("core/lifecycle")

// ============================================================================
//                              Owner
// ============================================================================

// Owner 带阶段的生命周期拥有者
//
// Owner 自身就是一个 Scope：进入 PhaseDestroyed 时结束。
// 界面重建时应创建新的 Owner，但沿用同一个 GroupKey。
type Owner struct {
	name string

	mu    sync.RWMutex
	phase Phase

	// 终止钩子，Destroy 时执行
	hooks *hookList

	// 当前可见区间的钩子，不可见时为 nil
	started *hookList

	// 阶段变更回调
	onPhaseChange []func(old, new Phase)
}

// 确保实现接口
var _ interfaces.Scope = (*Owner)(nil)

// NewOwner 创建处于 PhaseCreated 的拥有者
func NewOwner(name string) *Owner {
	return &Owner{
		name:  name,
		phase: PhaseCreated,
		hooks: newHookList(),
	}
}

// Name 返回名称
func (o *Owner) Name() string {
	return o.name
}

// Phase 返回当前阶段
func (o *Owner) Phase() Phase {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.phase
}

// OnEnd 实现 interfaces.Scope
func (o *Owner) OnEnd(hook func()) (func(), bool) {
	return o.hooks.add(hook)
}

// Ended 实现 interfaces.Scope
func (o *Owner) Ended() <-chan struct{} {
	return o.hooks.done
}

// HookCount 返回尚未执行的终止钩子数
//
// 每个绑定在此 Owner 上且仍然存活的订阅对应一个钩子。
func (o *Owner) HookCount() int {
	return o.hooks.len()
}

// StartedScope 返回当前可见区间的作用域
//
// 该作用域在下一次 Stop 或 Destroy 时结束。
// 当前不可见时返回一个已经结束的作用域。
func (o *Owner) StartedScope() interfaces.Scope {
	o.mu.RLock()
	h := o.started
	o.mu.RUnlock()

	if h == nil {
		return endedScope()
	}
	return &intervalScope{h: h}
}

// OnPhaseChange 注册阶段变更回调
//
// 回调在阶段迁移完成后、在锁外同步调用。
func (o *Owner) OnPhaseChange(callback func(old, new Phase)) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.onPhaseChange = append(o.onPhaseChange, callback)
}

// AdvanceTo 迁移到指定阶段
//
// 规则：
//   - 迁移到当前阶段是空操作
//   - 非终止阶段都可以直接 Destroy
//   - 其余迁移必须符合阶段表，否则返回 ErrInvalidPhase
func (o *Owner) AdvanceTo(target Phase) error {
	o.mu.Lock()

	old := o.phase
	if target == old {
		o.mu.Unlock()
		return nil
	}
	if !canTransition(old, target) {
		o.mu.Unlock()
		return fmt.Errorf("%w: owner=%s current=%s target=%s", types.ErrInvalidPhase, o.name, old, target)
	}

	o.phase = target

	// 离开可见区间
	var endInterval *hookList
	if old.IsVisible() && !target.IsVisible() {
		endInterval = o.started
		o.started = nil
	}

	// 进入可见区间
	if !old.IsVisible() && target.IsVisible() {
		o.started = newHookList()
	}

	callbacks := make([]func(old, new Phase), len(o.onPhaseChange))
	copy(callbacks, o.onPhaseChange)
	o.mu.Unlock()

	logger.Debug("生命周期阶段迁移",
		"owner", o.name,
		"from", old.String(),
		"to", target.String())

	if endInterval != nil {
		endInterval.fire()
	}
	if target.IsTerminal() {
		o.hooks.fire()
	}

	for _, cb := range callbacks {
		cb(old, target)
	}
	return nil
}

// Start 迁移到 PhaseStarted
func (o *Owner) Start() error {
	return o.AdvanceTo(PhaseStarted)
}

// Resume 迁移到 PhaseResumed
func (o *Owner) Resume() error {
	return o.AdvanceTo(PhaseResumed)
}

// Pause 迁移到 PhasePaused
func (o *Owner) Pause() error {
	return o.AdvanceTo(PhasePaused)
}

// Stop 迁移到 PhaseStopped
func (o *Owner) Stop() error {
	return o.AdvanceTo(PhaseStopped)
}

// Destroy 迁移到 PhaseDestroyed，执行所有终止钩子
//
// 可以重复调用。
func (o *Owner) Destroy() {
	if err := o.AdvanceTo(PhaseDestroyed); err != nil {
		// 只有已销毁时才会失败
		logger.Debug("重复销毁", "owner", o.name)
	}
}

// IsDestroyed 是否已销毁
func (o *Owner) IsDestroyed() bool {
	return o.hooks.isEnded()
}

// ============================================================================
//                              区间作用域
// ============================================================================

// intervalScope 基于 hookList 的作用域
type intervalScope struct {
	h *hookList
}

func (s *intervalScope) OnEnd(hook func()) (func(), bool) {
	return s.h.add(hook)
}

func (s *intervalScope) Ended() <-chan struct{} {
	return s.h.done
}

// endedScope 返回已经结束的作用域
func endedScope() interfaces.Scope {
	h := newHookList()
	h.fire()
	return &intervalScope{h: h}
}
