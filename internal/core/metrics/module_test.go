package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"

	"github.com/dep2p/go-unpeek/config"
	"github.com/dep2p/go-unpeek/pkg/interfaces"
)

// TestModule_Enabled 测试启用时提供 PromReporter
func TestModule_Enabled(t *testing.T) {
	var r interfaces.Reporter
	app := fxtest.New(t,
		fx.Supply(config.NewConfig()),
		fx.Provide(func() prometheus.Registerer { return prometheus.NewRegistry() }),
		Module(),
		fx.Populate(&r),
	)
	app.RequireStart().RequireStop()

	_, ok := r.(*PromReporter)
	assert.True(t, ok)
}

// TestModule_Disabled 测试禁用时提供 Nop
func TestModule_Disabled(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Metrics.Enabled = false

	r, err := NewReporterFromParams(Params{UnifiedCfg: cfg})
	require.NoError(t, err)
	assert.Equal(t, Nop(), r)
}
