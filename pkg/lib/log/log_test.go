package log

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestParseLevels 测试级别字符串解析
func TestParseLevels(t *testing.T) {
	cfg := DefaultConfig()
	ParseLevels(&cfg, "core/channel=debug, core=warn ,error,bogus=nope")

	assert.Equal(t, slog.LevelError, cfg.DefaultLevel)
	assert.Equal(t, slog.LevelDebug, cfg.SubsystemLevels["core/channel"])
	assert.Equal(t, slog.LevelWarn, cfg.SubsystemLevels["core"])
	_, ok := cfg.SubsystemLevels["bogus"]
	assert.False(t, ok, "无效级别应被忽略")
}

// TestLevelForSubsystem 测试前缀回退
func TestLevelForSubsystem(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SubsystemLevels["core"] = slog.LevelWarn
	cfg.SubsystemLevels["core/channel"] = slog.LevelDebug

	assert.Equal(t, slog.LevelDebug, cfg.LevelForSubsystem("core/channel"))
	assert.Equal(t, slog.LevelWarn, cfg.LevelForSubsystem("core/eventbus"))
	assert.Equal(t, slog.LevelInfo, cfg.LevelForSubsystem("screen"))
}

// TestConfigFromEnv 测试环境变量
func TestConfigFromEnv(t *testing.T) {
	t.Setenv(EnvLevel, "screen=debug,warn")
	t.Setenv(EnvFormat, "json")

	cfg := ConfigFromEnv(DefaultConfig())
	assert.Equal(t, slog.LevelWarn, cfg.DefaultLevel)
	assert.Equal(t, slog.LevelDebug, cfg.SubsystemLevels["screen"])
	assert.Equal(t, FormatJSON, cfg.Format)
}

// TestSetup_FiltersByComponent 测试按组件过滤
func TestSetup_FiltersByComponent(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() {
		slog.SetDefault(prev)
		Reset()
	})

	var buf bytes.Buffer
	cfg := DefaultConfig()
	cfg.DefaultLevel = slog.LevelWarn
	cfg.SubsystemLevels["core/channel"] = slog.LevelDebug
	Setup(&buf, cfg)

	Logger("core/channel").Debug("可见")
	Logger("core/eventbus").Info("不可见")
	Logger("core/eventbus").Warn("告警")

	out := buf.String()
	assert.Contains(t, out, "可见")
	assert.Contains(t, out, "告警")
	assert.NotContains(t, out, "不可见")
	assert.Contains(t, out, "component=core/channel")
}

// TestSetup_JSON 测试 JSON 输出
func TestSetup_JSON(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() {
		slog.SetDefault(prev)
		Reset()
	})

	var buf bytes.Buffer
	cfg := DefaultConfig()
	cfg.Format = FormatJSON
	Setup(&buf, cfg)

	Logger("screen").Info("hello", "k", 1)
	require.NotEmpty(t, buf.String())
	assert.Contains(t, buf.String(), `"component":"screen"`)
	assert.Contains(t, buf.String(), `"k":1`)
}

// TestLazyLogger_FollowsDefault 测试声明早于 SetDefault 的 logger 也输出到新的 handler
func TestLazyLogger_FollowsDefault(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { SetDefault(prev) })

	l := Logger("core/lifecycle")
	assert.Equal(t, "core/lifecycle", l.Component())

	var buf bytes.Buffer
	SetDefault(New(&buf, nil))
	l.Warn("阶段迁移失败", "phase", "started")
	l.With("owner", "home").Info("附加属性")

	out := buf.String()
	assert.Contains(t, out, "component=core/lifecycle")
	assert.Contains(t, out, "phase=started")
	assert.Contains(t, out, "owner=home")
}
