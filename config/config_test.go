package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dep2p/go-unpeek/pkg/types"
)

// TestNewConfig_Defaults 测试默认配置
func TestNewConfig_Defaults(t *testing.T) {
	cfg := NewConfig()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, types.RejectNull, cfg.Channel.Policy())
	assert.Equal(t, 100*time.Millisecond, cfg.EventBus.SlowCallbackThreshold.Duration())
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, "unpeek", cfg.Metrics.Namespace)
	assert.False(t, cfg.Connectivity.Enabled)
}

// TestConfig_Validate 测试无效配置
func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"log format", func(c *Config) { c.Log.Format = "xml" }},
		{"null policy", func(c *Config) { c.Channel.NullPolicy = "sometimes" }},
		{"slow threshold", func(c *Config) { c.EventBus.SlowCallbackThreshold = -1 }},
		{"namespace", func(c *Config) { c.Metrics.Namespace = "1bad-name" }},
		{"probe address", func(c *Config) {
			c.Connectivity.Enabled = true
			c.Connectivity.ProbeAddress = "nohost"
		}},
		{"timeout exceeds interval", func(c *Config) {
			c.Connectivity.Enabled = true
			c.Connectivity.Timeout = Duration(time.Minute)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig()
			tt.modify(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

// TestFromJSON 测试 JSON 加载
func TestFromJSON(t *testing.T) {
	cfg, err := FromJSON([]byte(`{
		"channel": {"null_policy": "allow_null"},
		"eventbus": {"slow_callback_threshold": "250ms"},
		"connectivity": {"enabled": true, "interval": 5000000000}
	}`))
	require.NoError(t, err)

	assert.Equal(t, types.AllowNull, cfg.Channel.Policy())
	assert.Equal(t, 250*time.Millisecond, cfg.EventBus.SlowCallbackThreshold.Duration())
	assert.Equal(t, 5*time.Second, cfg.Connectivity.Interval.Duration())
	assert.Equal(t, "1.1.1.1:443", cfg.Connectivity.ProbeAddress, "未出现的字段保留默认值")

	_, err = FromJSON([]byte(`{"eventbus": {"slow_callback_threshold": "soon"}}`))
	assert.Error(t, err)
}

// TestFromYAML 测试 YAML 加载
func TestFromYAML(t *testing.T) {
	cfg, err := FromYAML([]byte(`
log:
  level: core/channel=debug,warn
  format: json
metrics:
  enabled: false
connectivity:
  enabled: true
  interval: 30s
  timeout: 2s
`))
	require.NoError(t, err)

	assert.Equal(t, "json", cfg.Log.Format)
	assert.False(t, cfg.Metrics.Enabled)
	assert.Equal(t, 30*time.Second, cfg.Connectivity.Interval.Duration())
	assert.Equal(t, 2*time.Second, cfg.Connectivity.Timeout.Duration())

	lc := cfg.Log.ToLogConfig()
	assert.Len(t, lc.SubsystemLevels, 1)
}

// TestRoundTrip 测试序列化后可以重新加载
func TestRoundTrip(t *testing.T) {
	cfg := NewConfig()
	cfg.EventBus.SlowCallbackThreshold = Duration(time.Second)

	data, err := cfg.ToYAML()
	require.NoError(t, err)
	assert.Contains(t, string(data), "slow_callback_threshold: 1s")

	back, err := FromYAML(data)
	require.NoError(t, err)
	assert.Equal(t, cfg, back)

	js, err := cfg.ToJSON()
	require.NoError(t, err)
	back, err = FromJSON(js)
	require.NoError(t, err)
	assert.Equal(t, cfg, back)
}

// TestLoadFile 测试按扩展名加载
func TestLoadFile(t *testing.T) {
	dir := t.TempDir()

	yml := filepath.Join(dir, "unpeek.yml")
	require.NoError(t, os.WriteFile(yml, []byte("metrics:\n  namespace: app\n"), 0o600))
	cfg, err := LoadFile(yml)
	require.NoError(t, err)
	assert.Equal(t, "app", cfg.Metrics.Namespace)

	js := filepath.Join(dir, "unpeek.json")
	require.NoError(t, os.WriteFile(js, []byte(`{"metrics":{"namespace":"svc"}}`), 0o600))
	cfg, err = LoadFile(js)
	require.NoError(t, err)
	assert.Equal(t, "svc", cfg.Metrics.Namespace)

	_, err = LoadFile(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}
