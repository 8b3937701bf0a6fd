package channel

import (
	"github.com/dep2p/go-unpeek/pkg/interfaces"
	"github.com/dep2p/go-unpeek/pkg/types"
)

// settings Channel 构造参数
type settings struct {
	name       string
	policy     types.NullPolicy
	reporter   interfaces.Reporter
	onError    types.ErrorHandler
	initial    any
	hasInitial bool
}

// Option Channel 选项
type Option func(*settings)

// WithName 设置名称，用于日志和指标的 source 标签
func WithName(name string) Option {
	return func(s *settings) {
		s.name = name
	}
}

// WithNullPolicy 设置空值策略
func WithNullPolicy(p types.NullPolicy) Option {
	return func(s *settings) {
		s.policy = p
	}
}

// AllowNull 允许写入空值
//
// 等价于 WithNullPolicy(types.AllowNull)。
func AllowNull() Option {
	return WithNullPolicy(types.AllowNull)
}

// WithReporter 设置指标上报器
func WithReporter(r interfaces.Reporter) Option {
	return func(s *settings) {
		s.reporter = r
	}
}

// WithErrorHandler 设置回调失败处理函数
//
// 默认以 Error 级别记录日志。
func WithErrorHandler(h types.ErrorHandler) Option {
	return func(s *settings) {
		s.onError = h
	}
}

// WithInitialValue 设置初始值
//
// 初始值视为第一次被接受的写入（版本为 1）。
// 类型与 Channel 不符，或在 RejectNull 下为空值时，初始值被忽略并记录告警。
func WithInitialValue(v any) Option {
	return func(s *settings) {
		s.initial = v
		s.hasInitial = true
	}
}
