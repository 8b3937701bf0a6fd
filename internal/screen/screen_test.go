package screen

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dep2p/go-unpeek/internal/core/eventbus"
	"github.com/dep2p/go-unpeek/internal/core/lifecycle"
	"github.com/dep2p/go-unpeek/pkg/types"
)

// fakeView 记录视图收到的调用
type fakeView struct {
	mu      sync.Mutex
	calls   []string
	loading []types.LoadingState
}

func (v *fakeView) record(format string, args ...any) {
	v.mu.Lock()
	v.calls = append(v.calls, fmt.Sprintf(format, args...))
	v.mu.Unlock()
}

func (v *fakeView) ShowDialog(message string) { v.record("dialog:%s", message) }
func (v *fakeView) HideDialog() { v.record("hide_dialog") }
func (v *fakeView) ShowToast(message string, long bool) {
	v.record("toast:%s:%t", message, long)
}
func (v *fakeView) ShowError(message string, _ error) { v.record("error:%s", message) }
func (v *fakeView) Navigate(route string, _ map[string]any) {
	v.record("navigate:%s", route)
}
func (v *fakeView) Back() { v.record("back") }
func (v *fakeView) Finish(result any) { v.record("finish:%v", result) }

func (v *fakeView) SetLoading(state types.LoadingState) {
	v.mu.Lock()
	v.loading = append(v.loading, state)
	v.mu.Unlock()
}

func (v *fakeView) got() []string {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := make([]string, len(v.calls))
	copy(out, v.calls)
	return out
}

func (v *fakeView) lastLoading() types.LoadingState {
	v.mu.Lock()
	defer v.mu.Unlock()
	if len(v.loading) == 0 {
		return types.LoadingState{}
	}
	return v.loading[len(v.loading)-1]
}

func newController(t *testing.T, name string) (*Controller, *eventbus.Bus) {
	t.Helper()
	bus := eventbus.NewBus()
	c, err := NewController(name, bus)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c, bus
}

// TestController_DialogNoBackflow 测试视图重建后弹窗不会再次出现
func TestController_DialogNoBackflow(t *testing.T) {
	c, _ := newController(t, "login")

	owner1 := lifecycle.NewOwner("view-1")
	view1 := &fakeView{}
	_, err := c.Attach(owner1, view1)
	require.NoError(t, err)

	require.NoError(t, c.ShowDialog("密码错误"))
	assert.Equal(t, []string{"dialog:密码错误"}, view1.got())

	// 横竖屏切换：旧视图销毁，新视图挂载
	owner1.Destroy()
	owner2 := lifecycle.NewOwner("view-2")
	view2 := &fakeView{}
	_, err = c.Attach(owner2, view2)
	require.NoError(t, err)

	assert.Empty(t, view2.got(), "已处理的弹窗不应倒灌")
	_, ok := c.Commands().Dialog().Value()
	assert.False(t, ok, "视图处理后命令已清空")
}

// TestController_PendingCommandAppliedOnAttach 测试视图不在时下发的命令在挂载时执行
func TestController_PendingCommandAppliedOnAttach(t *testing.T) {
	c, _ := newController(t, "order")

	require.NoError(t, c.Finish(context.Background(), "done"))

	view := &fakeView{}
	_, err := c.Attach(lifecycle.NewOwner("view"), view)
	require.NoError(t, err)

	assert.Equal(t, []string{"finish:done"}, view.got())
}

// TestController_Commands 测试全部命令
func TestController_Commands(t *testing.T) {
	c, _ := newController(t, "settings")
	view := &fakeView{}
	_, err := c.Attach(lifecycle.NewOwner("view"), view)
	require.NoError(t, err)

	require.NoError(t, c.ShowDialog("a"))
	require.NoError(t, c.HideDialog())
	require.NoError(t, c.Back())

	assert.Equal(t, []string{"dialog:a", "hide_dialog", "back"}, view.got())
}

// TestController_UIEvents 测试 UI 事件只送达本界面的视图
func TestController_UIEvents(t *testing.T) {
	bus := eventbus.NewBus()
	a, err := NewController("a", bus)
	require.NoError(t, err)
	b, err := NewController("b", bus)
	require.NoError(t, err)

	viewA := &fakeView{}
	viewB := &fakeView{}
	_, err = a.Attach(lifecycle.NewOwner("view-a"), viewA)
	require.NoError(t, err)
	_, err = b.Attach(lifecycle.NewOwner("view-b"), viewB)
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, a.ShowToast(ctx, "已保存"))
	require.NoError(t, a.ShowLongToast(ctx, "同步中"))
	require.NoError(t, a.Navigate(ctx, "/detail", nil))
	require.NoError(t, b.ShowError(ctx, "网络错误", errors.New("timeout")))

	assert.Equal(t, []string{"toast:已保存:false", "toast:同步中:true", "navigate:/detail"}, viewA.got())
	assert.Equal(t, []string{"error:网络错误"}, viewB.got())
}

// TestController_UIEventsNotReplayed 测试视图不在时的 UI 事件不会补发
func TestController_UIEventsNotReplayed(t *testing.T) {
	c, _ := newController(t, "home")
	require.NoError(t, c.ShowToast(context.Background(), "lost"))

	view := &fakeView{}
	_, err := c.Attach(lifecycle.NewOwner("view"), view)
	require.NoError(t, err)
	assert.Empty(t, view.got())
}

// TestController_LoadingState 测试加载状态同步给新视图
func TestController_LoadingState(t *testing.T) {
	c, _ := newController(t, "feed")
	assert.False(t, c.IsLoading())

	owner := lifecycle.NewOwner("view-1")
	view1 := &fakeView{}
	_, err := c.Attach(owner, view1)
	require.NoError(t, err)

	require.NoError(t, c.ShowLoading(""))
	assert.True(t, c.IsLoading())
	assert.Equal(t, types.Loading(types.DefaultLoadingMessage), view1.lastLoading())

	owner.Destroy()
	view2 := &fakeView{}
	_, err = c.Attach(lifecycle.NewOwner("view-2"), view2)
	require.NoError(t, err)
	assert.True(t, view2.lastLoading().Active, "新视图看到当前加载状态")

	require.NoError(t, c.DismissLoading())
	assert.False(t, view2.lastLoading().Active)
}

// TestController_Run 测试加载包裹的任务
func TestController_Run(t *testing.T) {
	c, _ := newController(t, "profile")
	view := &fakeView{}
	_, err := c.Attach(lifecycle.NewOwner("view"), view)
	require.NoError(t, err)

	var sawLoading bool
	err = c.Run(context.Background(), "保存中", func(context.Context) error {
		sawLoading = view.lastLoading().Active
		return nil
	})
	require.NoError(t, err)
	assert.True(t, sawLoading)
	assert.False(t, c.IsLoading())

	boom := errors.New("保存失败")
	err = c.Run(context.Background(), "", func(context.Context) error { return boom })
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"error:保存失败"}, view.got())
	assert.False(t, c.IsLoading())
}

// TestController_StoreReuse 测试控制器重建时沿用 Store
func TestController_StoreReuse(t *testing.T) {
	bus := eventbus.NewBus()
	store := StoreOf("route:/login", types.GroupKeyOf("route:/login"))

	c1, err := NewController("login", bus, WithStore(store))
	require.NoError(t, err)
	c2, err := NewController("login", bus, WithStore(store))
	require.NoError(t, err)

	assert.Equal(t, c1.Store().Key(), c2.Store().Key())
	assert.Equal(t, "route:/login", store.Name())
}

// TestController_Close 测试关闭控制器
func TestController_Close(t *testing.T) {
	bus := eventbus.NewBus()
	c, err := NewController("x", bus)
	require.NoError(t, err)
	state := NewState[int](c, "count")

	owner := lifecycle.NewOwner("view")
	_, err = c.Attach(owner, &fakeView{})
	require.NoError(t, err)
	require.Greater(t, owner.HookCount(), 0)

	require.NoError(t, c.Close())
	require.NoError(t, c.Close())

	assert.Equal(t, 1, owner.HookCount(), "只剩总线订阅")
	assert.Error(t, c.ShowDialog("late"))
	assert.ErrorIs(t, c.ShowToast(context.Background(), "late"), ErrControllerClosed)
	assert.Error(t, state.Succeed(1))

	_, err = c.Attach(lifecycle.NewOwner("view-2"), &fakeView{})
	assert.ErrorIs(t, err, ErrControllerClosed)

	owner.Destroy()
	assert.Equal(t, 0, bus.Len())
}

// TestController_AttachEndedScope 测试已结束的作用域不能挂载
func TestController_AttachEndedScope(t *testing.T) {
	c, bus := newController(t, "x")
	owner := lifecycle.NewOwner("view")
	owner.Destroy()

	_, err := c.Attach(owner, &fakeView{})
	assert.ErrorIs(t, err, types.ErrScopeEnded)
	assert.Equal(t, 0, bus.Len())
	assert.Equal(t, 0, c.Loading().Len())
}

// TestBinding_Close 测试主动释放挂载
func TestBinding_Close(t *testing.T) {
	c, bus := newController(t, "x")
	owner := lifecycle.NewOwner("view")
	view := &fakeView{}

	b, err := c.Attach(owner, view)
	require.NoError(t, err)
	assert.Equal(t, 6, b.Len())

	require.NoError(t, b.Close())
	require.NoError(t, b.Close())
	assert.Equal(t, 0, owner.HookCount())
	assert.Equal(t, 0, bus.Len())

	require.NoError(t, c.ShowDialog("a"))
	assert.Empty(t, view.got())
}

// TestNewController_RequiresBus 测试缺少总线
func TestNewController_RequiresBus(t *testing.T) {
	_, err := NewController("x", nil)
	assert.Error(t, err)
}

// chainingView 处理弹窗时再下发下一条弹窗
type chainingView struct {
	fakeView
	ctrl *Controller
}

func (v *chainingView) ShowDialog(message string) {
	v.fakeView.ShowDialog(message)
	if message == "first" {
		_ = v.ctrl.ShowDialog("second")
	}
}

// TestController_CommandIssuedWhileHandling 测试处理命令期间下发的新命令不会丢失
func TestController_CommandIssuedWhileHandling(t *testing.T) {
	c, _ := newController(t, "wizard")
	view := &chainingView{ctrl: c}
	_, err := c.Attach(lifecycle.NewOwner("view"), view)
	require.NoError(t, err)

	require.NoError(t, c.ShowDialog("first"))

	assert.Equal(t, []string{"dialog:first", "dialog:second"}, view.got())
	_, ok := c.Commands().Dialog().Value()
	assert.False(t, ok, "两条命令都已处理")
}

// TestController_LoadingSyncedOnce 测试挂载时加载状态只下发一次
func TestController_LoadingSyncedOnce(t *testing.T) {
	c, _ := newController(t, "feed")

	owner := lifecycle.NewOwner("view-1")
	view1 := &fakeView{}
	_, err := c.Attach(owner, view1)
	require.NoError(t, err)
	assert.Len(t, view1.loading, 1)

	require.NoError(t, c.ShowLoading("刷新中"))
	assert.Len(t, view1.loading, 2)

	owner.Destroy()
	view2 := &fakeView{}
	_, err = c.Attach(lifecycle.NewOwner("view-2"), view2)
	require.NoError(t, err)
	require.Len(t, view2.loading, 1, "重新挂载只同步一次当前值")
	assert.Equal(t, types.Loading("刷新中"), view2.loading[0])
}

// TestController_LoadingWrittenWhileDetached 测试视图不在时的加载状态在挂载时补发
func TestController_LoadingWrittenWhileDetached(t *testing.T) {
	c, _ := newController(t, "feed")

	owner := lifecycle.NewOwner("view-1")
	_, err := c.Attach(owner, &fakeView{})
	require.NoError(t, err)
	owner.Destroy()

	require.NoError(t, c.ShowLoading(""))

	view2 := &fakeView{}
	_, err = c.Attach(lifecycle.NewOwner("view-2"), view2)
	require.NoError(t, err)
	require.Len(t, view2.loading, 1)
	assert.True(t, view2.loading[0].Active)
}

// TestController_OnClose 测试关闭回调
func TestController_OnClose(t *testing.T) {
	c, err := NewController("a", eventbus.NewBus())
	require.NoError(t, err)

	calls := 0
	c.OnClose(func() { calls++ })
	require.NoError(t, c.Close())
	require.NoError(t, c.Close())
	assert.Equal(t, 1, calls)

	c.OnClose(func() { calls++ })
	assert.Equal(t, 2, calls, "已关闭时立即执行")
}
