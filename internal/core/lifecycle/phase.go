package lifecycle

import "fmt"

// Phase 拥有者生命周期阶段
type Phase int

const (
	// PhaseCreated 已创建，未启动
	PhaseCreated Phase = iota

	// PhaseStarted 已启动（可见）
	PhaseStarted

	// PhaseResumed 前台交互中
	PhaseResumed

	// PhasePaused 失去焦点，仍可见
	PhasePaused

	// PhaseStopped 不可见，可再次启动
	PhaseStopped

	// PhaseDestroyed 已销毁（终止阶段）
	PhaseDestroyed
)

// String 返回阶段字符串表示
func (p Phase) String() string {
	switch p {
	case PhaseCreated:
		return "created"
	case PhaseStarted:
		return "started"
	case PhaseResumed:
		return "resumed"
	case PhasePaused:
		return "paused"
	case PhaseStopped:
		return "stopped"
	case PhaseDestroyed:
		return "destroyed"
	default:
		return fmt.Sprintf("unknown(%d)", int(p))
	}
}

// IsTerminal 是否为终止阶段
func (p Phase) IsTerminal() bool {
	return p == PhaseDestroyed
}

// IsVisible 是否处于可见区间（Started / Resumed / Paused）
func (p Phase) IsVisible() bool {
	return p == PhaseStarted || p == PhaseResumed || p == PhasePaused
}

// transitions 合法的阶段迁移
//
// 任何非终止阶段都可以直接迁移到 Destroyed。
var transitions = map[Phase][]Phase{
	PhaseCreated: {PhaseStarted},
	PhaseStarted: {PhaseResumed, PhaseStopped},
	PhaseResumed: {PhasePaused},
	PhasePaused:  {PhaseResumed, PhaseStopped},
	PhaseStopped: {PhaseStarted},
}

// canTransition 检查迁移是否合法
func canTransition(from, to Phase) bool {
	if from.IsTerminal() {
		return false
	}
	if to == PhaseDestroyed {
		return true
	}
	for _, p := range transitions[from] {
		if p == to {
			return true
		}
	}
	return false
}
