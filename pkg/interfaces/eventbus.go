// Package interfaces 定义 unpeek 公共接口
//
// 本文件定义 EventBus 接口，提供按标签过滤的发布订阅。
package interfaces

import (
	"context"

	"github.com/dep2p/go-unpeek/pkg/types"
)

// BusHandler 总线订阅回调
type BusHandler func(ctx context.Context, env types.Envelope)

// EventBus 定义事件总线接口
//
// 发布方和订阅方互不感知；发布同步进行，按订阅注册顺序投递，没有缓冲和回放。
type EventBus interface {
	// Publish 发布信封到所有过滤器匹配的现存订阅
	//
	// 返回本次发布中所有回调失败的合并错误。
	Publish(ctx context.Context, env types.Envelope) error

	// Subscribe 订阅匹配过滤器的事件
	//
	// 停止接收的唯一方式是关闭返回的订阅，或者 scope 结束。
	Subscribe(filter types.Filter, handler BusHandler, scope Scope) (BusSubscription, error)

	// Emitter 获取绑定到指定标签的发射器
	Emitter(tag types.Tag) (Emitter, error)

	// Len 返回现存订阅数量
	Len() int

	// Tags 返回当前有订阅或发射器的精确标签
	Tags() []types.Tag
}

// BusSubscription 定义总线订阅接口
type BusSubscription interface {
	Closer

	// Filter 返回订阅的过滤器
	Filter() types.Filter

	// Active 订阅是否仍然有效
	Active() bool
}

// Emitter 定义事件发射器接口
type Emitter interface {
	// Emit 发射事件
	Emit(ctx context.Context, payload any) error

	// Tag 返回绑定的标签
	Tag() types.Tag

	// Close 关闭发射器
	Close() error
}
