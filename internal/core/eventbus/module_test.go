package eventbus

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"

	"github.com/dep2p/go-unpeek/config"
	"github.com/dep2p/go-unpeek/internal/core/lifecycle"
	"github.com/dep2p/go-unpeek/pkg/interfaces"
	"github.com/dep2p/go-unpeek/pkg/types"
)

// ============================================================================
// Fx 模块测试
// ============================================================================

// TestModule_Load 测试 Fx 模块加载
func TestModule_Load(t *testing.T) {
	cfg := config.NewConfig()
	cfg.EventBus.SlowCallbackThreshold = config.Duration(time.Second)

	var bus interfaces.EventBus
	var concrete *Bus
	app := fxtest.New(t,
		fx.Supply(cfg),
		Module(),
		fx.Populate(&bus, &concrete),
	)
	app.RequireStart()

	require.NotNil(t, bus)
	assert.Same(t, concrete, bus)
	assert.Equal(t, time.Second, concrete.slowThreshold)

	sub, err := bus.Subscribe(types.MatchAll(), func(context.Context, types.Envelope) {}, lifecycle.Background())
	require.NoError(t, err)

	app.RequireStop()
	assert.False(t, sub.Active(), "停止时关闭总线")
}

// TestModule_Defaults 测试无配置时使用默认值
func TestModule_Defaults(t *testing.T) {
	result := ProvideEventBus(Params{})
	require.NotNil(t, result.Bus)
	assert.Equal(t, DefaultSlowCallbackThreshold, result.Bus.slowThreshold)
}
