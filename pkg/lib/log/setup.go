package log

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

// Format 日志输出格式
type Format int

const (
	// FormatText 文本格式（默认）
	FormatText Format = iota
	// FormatJSON JSON 格式
	FormatJSON
)

// 环境变量名
const (
	EnvLevel  = "UNPEEK_LOG_LEVEL"
	EnvFormat = "UNPEEK_LOG_FORMAT"
)

// Config 日志配置
type Config struct {
	// DefaultLevel 默认日志级别
	DefaultLevel slog.Level

	// SubsystemLevels 各组件的日志级别，key 为组件名或其前缀（如 "core"）
	SubsystemLevels map[string]slog.Level

	// Format 输出格式
	Format Format

	// AddSource 是否添加源码位置
	AddSource bool
}

// DefaultConfig 返回默认配置
func DefaultConfig() Config {
	return Config{
		DefaultLevel:    slog.LevelInfo,
		SubsystemLevels: make(map[string]slog.Level),
		Format:          FormatText,
	}
}

// LevelForSubsystem 获取指定组件的日志级别
//
// 先精确匹配组件名，再按 "/" 逐级回退到前缀，最后使用默认级别。
func (c *Config) LevelForSubsystem(component string) slog.Level {
	name := component
	for {
		if level, ok := c.SubsystemLevels[name]; ok {
			return level
		}
		i := strings.LastIndex(name, "/")
		if i < 0 {
			return c.DefaultLevel
		}
		name = name[:i]
	}
}

var (
	activeMu  sync.RWMutex
	activeCfg *Config
)

// levelFor 返回当前生效配置下组件的级别
//
// 未调用 Setup 时不做组件级过滤，由 slog.Default 自己的 handler 决定。
func levelFor(component string) slog.Level {
	activeMu.RLock()
	cfg := activeCfg
	activeMu.RUnlock()
	if cfg == nil {
		return slog.LevelDebug
	}
	return cfg.LevelForSubsystem(component)
}

// Setup 按配置安装默认 logger
//
// w 为 nil 时输出到 stderr。
func Setup(w io.Writer, cfg Config) {
	if w == nil {
		w = os.Stderr
	}
	if cfg.SubsystemLevels == nil {
		cfg.SubsystemLevels = make(map[string]slog.Level)
	}

	// handler 放行全部级别，过滤由 LazyLogger 按组件完成
	opts := &slog.HandlerOptions{
		Level:     slog.LevelDebug,
		AddSource: cfg.AddSource,
	}

	var handler slog.Handler
	if cfg.Format == FormatJSON {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	activeMu.Lock()
	activeCfg = &cfg
	activeMu.Unlock()

	slog.SetDefault(slog.New(handler))
}

// Reset 撤销 Setup 的组件级过滤（仅用于测试）
func Reset() {
	activeMu.Lock()
	activeCfg = nil
	activeMu.Unlock()
}

// ConfigFromEnv 从环境变量解析配置，未设置的项保留 base 中的值
//
// 环境变量:
//   - UNPEEK_LOG_LEVEL: 格式 组件=级别,组件=级别,默认级别
//     示例: core/channel=debug,core=warn,info
//   - UNPEEK_LOG_FORMAT: text 或 json
func ConfigFromEnv(base Config) Config {
	cfg := base
	if cfg.SubsystemLevels == nil {
		cfg.SubsystemLevels = make(map[string]slog.Level)
	}
	if levelStr := os.Getenv(EnvLevel); levelStr != "" {
		ParseLevels(&cfg, levelStr)
	}
	if formatStr := os.Getenv(EnvFormat); formatStr != "" {
		cfg.Format = ParseFormat(formatStr)
	}
	return cfg
}

// ParseLevels 解析级别配置字符串并写入 cfg
func ParseLevels(cfg *Config, levelStr string) {
	if cfg.SubsystemLevels == nil {
		cfg.SubsystemLevels = make(map[string]slog.Level)
	}
	for _, part := range strings.Split(levelStr, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		if name, levelName, found := strings.Cut(part, "="); found {
			if level, ok := ParseLevel(strings.TrimSpace(levelName)); ok {
				cfg.SubsystemLevels[strings.TrimSpace(name)] = level
			}
			continue
		}

		if level, ok := ParseLevel(part); ok {
			cfg.DefaultLevel = level
		}
	}
}

// ParseLevel 解析日志级别名称
func ParseLevel(name string) (slog.Level, bool) {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}

// ParseFormat 解析输出格式
func ParseFormat(s string) Format {
	if strings.EqualFold(s, "json") {
		return FormatJSON
	}
	return FormatText
}
