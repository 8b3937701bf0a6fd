// Package log 提供 unpeek 统一日志接口
//
// 基于 log/slog。各组件通过 Logger(名称) 取得 *LazyLogger，
// 输出目标与级别由 Setup 统一安装，组件侧无需持有 handler。
//
//	var logger = log.Logger("core/channel")
//	logger.Info("订阅已创建", "group", key)
package log

import (
	"context"
	"io"
	"log/slog"
)

// ComponentKey 组件名属性键
const ComponentKey = "component"

// SetDefault 替换默认 logger，不改变组件级过滤
func SetDefault(l *slog.Logger) {
	slog.SetDefault(l)
}

// New 创建文本 logger，opts 为 nil 时使用 slog 默认选项
func New(w io.Writer, opts *slog.HandlerOptions) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, opts))
}

// LazyLogger 按组件命名的 logger
//
// 不缓存 handler：每次输出都取当时的 slog.Default()，
// 因此包级变量在 Setup 之前声明也能拿到最终配置。
type LazyLogger struct {
	component string
	attr      slog.Attr
}

// Logger 返回组件 logger
func Logger(component string) *LazyLogger {
	return &LazyLogger{
		component: component,
		attr:      slog.String(ComponentKey, component),
	}
}

// Component 返回组件名
func (l *LazyLogger) Component() string {
	return l.component
}

// Enabled 组件在 level 上是否输出
func (l *LazyLogger) Enabled(level slog.Level) bool {
	return level >= levelFor(l.component)
}

// With 返回附带组件名与 args 的 *slog.Logger 快照
func (l *LazyLogger) With(args ...any) *slog.Logger {
	return slog.Default().With(l.attr).With(args...)
}

func (l *LazyLogger) emit(ctx context.Context, level slog.Level, msg string, args []any) {
	if !l.Enabled(level) {
		return
	}
	slog.Default().With(l.attr).Log(ctx, level, msg, args...)
}

func (l *LazyLogger) Debug(msg string, args ...any) {
	l.emit(context.Background(), slog.LevelDebug, msg, args)
}

func (l *LazyLogger) Info(msg string, args ...any) {
	l.emit(context.Background(), slog.LevelInfo, msg, args)
}

func (l *LazyLogger) Warn(msg string, args ...any) {
	l.emit(context.Background(), slog.LevelWarn, msg, args)
}

func (l *LazyLogger) Error(msg string, args ...any) {
	l.emit(context.Background(), slog.LevelError, msg, args)
}

// WarnContext 带 ctx 的 Warn，handler 可从 ctx 读取追踪信息
func (l *LazyLogger) WarnContext(ctx context.Context, msg string, args ...any) {
	l.emit(ctx, slog.LevelWarn, msg, args)
}

// ErrorContext 带 ctx 的 Error
func (l *LazyLogger) ErrorContext(ctx context.Context, msg string, args ...any) {
	l.emit(ctx, slog.LevelError, msg, args)
}
