// Package testutil 提供测试辅助函数
package testutil

import (
	"context"
	"testing"
	"time"
)

// DefaultInterval 默认检查间隔
const DefaultInterval = 10 * time.Millisecond

// WaitForCondition 等待条件满足或超时
//
// 参数：
//   - t: 测试对象
//   - timeout: 超时时间
//   - interval: 检查间隔
//   - condition: 条件函数，返回 true 表示条件满足
//
// 返回：条件是否满足（超时返回 false）
func WaitForCondition(t testing.TB, timeout time.Duration, interval time.Duration, condition func() bool) bool {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	// 立即检查一次
	if condition() {
		return true
	}

	for {
		select {
		case <-ctx.Done():
			return condition()
		case <-ticker.C:
			if condition() {
				return true
			}
		}
	}
}

// Eventually 在指定时间内重试条件检查，超时则 fail 测试
//
// 示例:
//
//	testutil.Eventually(t, time.Second, func() bool {
//	    _, ok := monitor.Current()
//	    return ok
//	}, "应该完成首次探测")
func Eventually(t testing.TB, timeout time.Duration, condition func() bool, msg string) {
	t.Helper()
	if !WaitForCondition(t, timeout, DefaultInterval, condition) {
		t.Fatalf("等待超时: %s", msg)
	}
}

// Valuer 可读取当前值的对象，如 Channel
type Valuer[T any] interface {
	Value() (T, bool)
}

// WaitForValue 等待 v 持有满足 match 的值并返回该值
func WaitForValue[T any](t testing.TB, v Valuer[T], timeout time.Duration, match func(T) bool) T {
	t.Helper()

	var got T
	Eventually(t, timeout, func() bool {
		cur, ok := v.Value()
		if !ok || !match(cur) {
			return false
		}
		got = cur
		return true
	}, "等待值满足条件")
	return got
}
