package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dep2p/go-unpeek/pkg/interfaces"
)

// TestPromReporter_Counts 测试指标计数
func TestPromReporter_Counts(t *testing.T) {
	reg := prometheus.NewRegistry()
	r, err := NewPromReporter(reg, "test")
	require.NoError(t, err)

	r.Delivered("dialog")
	r.Delivered("dialog")
	r.Skipped("dialog", interfaces.SkipConsumed)
	r.CallbackFailed("eventbus")
	r.SubscriptionOpened("dialog")
	r.SubscriptionOpened("dialog")
	r.SubscriptionClosed("dialog")

	assert.Equal(t, 2.0, testutil.ToFloat64(r.delivered.WithLabelValues("dialog")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.skipped.WithLabelValues("dialog", "consumed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.failed.WithLabelValues("eventbus")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.live.WithLabelValues("dialog")))

	n, err := testutil.GatherAndCount(reg)
	require.NoError(t, err)
	assert.Equal(t, 4, n)
}

// TestPromReporter_ReuseRegistered 测试重复注册复用已有收集器
func TestPromReporter_ReuseRegistered(t *testing.T) {
	reg := prometheus.NewRegistry()
	a, err := NewPromReporter(reg, "")
	require.NoError(t, err)
	b, err := NewPromReporter(reg, "")
	require.NoError(t, err)

	a.Delivered("x")
	b.Delivered("x")
	assert.Equal(t, 2.0, testutil.ToFloat64(a.delivered.WithLabelValues("x")))
}

// TestPromReporter_NilRegisterer 测试不注册
func TestPromReporter_NilRegisterer(t *testing.T) {
	r, err := NewPromReporter(nil, "")
	require.NoError(t, err)
	r.Delivered("x")
	assert.Len(t, r.Collectors(), 4)
}

// TestNop 测试空实现
func TestNop(t *testing.T) {
	r := Nop()
	assert.NotPanics(t, func() {
		r.Delivered("x")
		r.Skipped("x", interfaces.SkipStale)
		r.CallbackFailed("x")
		r.SubscriptionOpened("x")
		r.SubscriptionClosed("x")
	})
}
