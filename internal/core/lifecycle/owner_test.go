package lifecycle

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dep2p/go-unpeek/pkg/types"
)

// TestOwner_Transitions 测试阶段迁移规则
func TestOwner_Transitions(t *testing.T) {
	o := NewOwner("screen")
	assert.Equal(t, PhaseCreated, o.Phase())

	require.NoError(t, o.Start())
	require.NoError(t, o.Resume())
	require.NoError(t, o.Pause())
	require.NoError(t, o.Stop())
	require.NoError(t, o.Start(), "Stopped 之后可以再次启动")
	require.NoError(t, o.Start(), "迁移到当前阶段是空操作")

	err := o.AdvanceTo(PhaseCreated)
	assert.ErrorIs(t, err, types.ErrInvalidPhase)

	o.Destroy()
	assert.Equal(t, PhaseDestroyed, o.Phase())
	assert.ErrorIs(t, o.Start(), types.ErrInvalidPhase, "销毁后不能再启动")
}

// TestOwner_DestroyRunsHooksOnce 测试终止钩子只执行一次且按注册顺序
func TestOwner_DestroyRunsHooksOnce(t *testing.T) {
	o := NewOwner("screen")

	var order []int
	for i := 0; i < 3; i++ {
		i := i
		_, ok := o.OnEnd(func() { order = append(order, i) })
		require.True(t, ok)
	}
	assert.Equal(t, 3, o.HookCount())

	o.Destroy()
	o.Destroy()

	assert.Equal(t, []int{0, 1, 2}, order)
	assert.Equal(t, 0, o.HookCount())
	assert.True(t, o.IsDestroyed())
	assert.True(t, IsEnded(o))

	_, ok := o.OnEnd(func() { t.Error("已结束的作用域不应执行新钩子") })
	assert.False(t, ok)
}

// TestOwner_Unregister 测试撤销钩子
func TestOwner_Unregister(t *testing.T) {
	o := NewOwner("screen")

	var fired atomic.Int32
	unregister, ok := o.OnEnd(func() { fired.Add(1) })
	require.True(t, ok)

	unregister()
	unregister()
	assert.Equal(t, 0, o.HookCount())

	o.Destroy()
	assert.Equal(t, int32(0), fired.Load())
}

// TestOwner_StartedScope 测试可见区间作用域
func TestOwner_StartedScope(t *testing.T) {
	o := NewOwner("screen")

	// 未启动时返回已结束的作用域
	assert.True(t, IsEnded(o.StartedScope()))

	require.NoError(t, o.Start())
	first := o.StartedScope()
	assert.False(t, IsEnded(first))

	var ended atomic.Int32
	_, ok := first.OnEnd(func() { ended.Add(1) })
	require.True(t, ok)

	// Resume/Pause 仍在同一区间
	require.NoError(t, o.Resume())
	require.NoError(t, o.Pause())
	assert.False(t, IsEnded(first))

	require.NoError(t, o.Stop())
	assert.True(t, IsEnded(first))
	assert.Equal(t, int32(1), ended.Load())
	assert.False(t, IsEnded(o), "Stop 不结束 Owner 本身")

	require.NoError(t, o.Start())
	second := o.StartedScope()
	assert.False(t, IsEnded(second))

	o.Destroy()
	assert.True(t, IsEnded(second))
}

// TestOwner_OnPhaseChange 测试阶段回调
func TestOwner_OnPhaseChange(t *testing.T) {
	o := NewOwner("screen")

	var seen []Phase
	o.OnPhaseChange(func(_, p Phase) { seen = append(seen, p) })

	require.NoError(t, o.Start())
	require.NoError(t, o.Stop())
	o.Destroy()

	assert.Equal(t, []Phase{PhaseStarted, PhaseStopped, PhaseDestroyed}, seen)
}

// TestOwner_HookPanicIsolated 测试钩子 panic 不影响其他钩子
func TestOwner_HookPanicIsolated(t *testing.T) {
	o := NewOwner("screen")

	var ran atomic.Bool
	o.OnEnd(func() { panic("boom") })
	o.OnEnd(func() { ran.Store(true) })

	assert.NotPanics(t, o.Destroy)
	assert.True(t, ran.Load())
}

// TestPhase_String 测试阶段字符串
func TestPhase_String(t *testing.T) {
	assert.Equal(t, "destroyed", PhaseDestroyed.String())
	assert.Equal(t, "unknown(42)", Phase(42).String())
	assert.True(t, PhaseDestroyed.IsTerminal())
	assert.True(t, PhasePaused.IsVisible())
	assert.False(t, PhaseStopped.IsVisible())
}
