package eventbus

import (
	"time"

	"github.com/benbjohnson/clock"

	"github.com/dep2p/go-unpeek/pkg/interfaces"
	"github.com/dep2p/go-unpeek/pkg/types"
)

// ============================================================================
// 本地选项函数
// ============================================================================

// Option Bus 选项
type Option func(*busSettings)

// WithClock 设置时钟，用于发布时间戳与慢回调检测
func WithClock(c clock.Clock) Option {
	return func(s *busSettings) {
		if c != nil {
			s.clock = c
		}
	}
}

// WithReporter 设置指标上报器
func WithReporter(r interfaces.Reporter) Option {
	return func(s *busSettings) {
		s.reporter = r
	}
}

// WithErrorHandler 设置回调失败处理函数
func WithErrorHandler(h types.ErrorHandler) Option {
	return func(s *busSettings) {
		s.onError = h
	}
}

// WithSlowCallbackThreshold 设置慢回调告警阈值，0 表示不检测
func WithSlowCallbackThreshold(d time.Duration) Option {
	return func(s *busSettings) {
		s.slowThreshold = d
	}
}
