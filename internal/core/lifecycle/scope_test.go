package lifecycle

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dep2p/go-unpeek/pkg/types"
)

// fakeCloser 记录关闭次数
type fakeCloser struct {
	closed atomic.Int32
}

func (c *fakeCloser) Close() error {
	c.closed.Add(1)
	return nil
}

// TestBackground 测试进程级作用域
func TestBackground(t *testing.T) {
	s := Background()
	unregister, ok := s.OnEnd(func() {})
	require.True(t, ok)
	assert.NotPanics(t, unregister)
	assert.Nil(t, s.Ended())
	assert.False(t, IsEnded(s))
}

// TestFromContext 测试随 context 结束的作用域
func TestFromContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := FromContext(ctx)

	c := &fakeCloser{}
	_, err := Bind(s, c)
	require.NoError(t, err)

	cancel()

	select {
	case <-s.Ended():
	case <-time.After(time.Second):
		t.Fatal("作用域应在 context 取消后结束")
	}
	assert.Eventually(t, func() bool { return c.closed.Load() == 1 }, time.Second, 5*time.Millisecond)
}

// TestFromContext_AlreadyCanceled 测试已取消的 context
func TestFromContext_AlreadyCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := FromContext(ctx)
	assert.True(t, IsEnded(s))

	_, err := Bind(s, &fakeCloser{})
	assert.ErrorIs(t, err, types.ErrScopeEnded)
}

// TestBind 测试适配器
func TestBind(t *testing.T) {
	t.Run("CloseOnDestroy", func(t *testing.T) {
		o := NewOwner("screen")
		c := &fakeCloser{}

		_, err := Bind(o, c)
		require.NoError(t, err)

		o.Destroy()
		o.Destroy()
		assert.Equal(t, int32(1), c.closed.Load())
	})

	t.Run("UnregisterOnEarlyClose", func(t *testing.T) {
		o := NewOwner("screen")
		c := &fakeCloser{}

		unregister, err := Bind(o, c)
		require.NoError(t, err)
		unregister()

		o.Destroy()
		assert.Equal(t, int32(0), c.closed.Load())
	})

	t.Run("NilScope", func(t *testing.T) {
		_, err := Bind(nil, &fakeCloser{})
		assert.ErrorIs(t, err, types.ErrNilScope)
	})
}
