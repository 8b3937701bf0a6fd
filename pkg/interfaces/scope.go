// Package interfaces 定义 unpeek 公共接口
//
// 本文件定义 Scope 接口，描述订阅的存活区间。
package interfaces

// Scope 生命周期作用域
//
// Scope 是任何"拥有者"（界面、控制器、请求、进程）都可以实现的统一能力，
// 订阅通过它得知自己何时应被取消。调用方在订阅时显式传入当前作用域，
// 组件不保存指向拥有者本身的引用。
type Scope interface {
	// OnEnd 注册作用域结束时执行的钩子
	//
	// 钩子在作用域进入终止阶段时执行且只执行一次。
	// 返回的 unregister 用于在订阅提前关闭时撤销钩子；
	// 作用域已经结束时返回 ok=false，钩子不会被注册也不会被执行。
	OnEnd(hook func()) (unregister func(), ok bool)

	// Ended 返回作用域结束信号
	//
	// 永不结束的作用域返回 nil channel。
	Ended() <-chan struct{}
}

// Closer 可被作用域批量关闭的订阅
type Closer interface {
	// Close 关闭订阅，可重复调用
	Close() error
}
