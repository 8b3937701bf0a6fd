package eventbus

import (
	"context"
	"fmt"
	"reflect"

	"github.com/dep2p/go-unpeek/pkg/interfaces"
	"github.com/dep2p/go-unpeek/pkg/types"
)

// reporterSource 可以提供指标上报器的总线
type reporterSource interface {
	Reporter() interfaces.Reporter
}

// On 订阅单个标签并按负载类型 P 回调
//
// 负载类型不是 P 的信封被跳过，记录告警并上报 type_mismatch。
//
//	sub, err := eventbus.On(bus, types.TagToast, owner, func(ctx context.Context, e types.ToastEvent) {
//	    view.ShowToast(e.Message)
//	})
func On[P any](bus interfaces.EventBus, tag types.Tag, scope interfaces.Scope, fn func(context.Context, P)) (interfaces.BusSubscription, error) {
	if tag.IsEmpty() {
		return nil, types.ErrInvalidTag
	}
	if fn == nil {
		return nil, types.ErrNilCallback
	}

	var reporter interfaces.Reporter
	if rs, ok := bus.(reporterSource); ok {
		reporter = rs.Reporter()
	}

	return bus.Subscribe(types.MatchTags(tag), func(ctx context.Context, env types.Envelope) {
		p, ok := env.Payload.(P)
		if !ok {
			logger.Warn("负载类型不匹配，已跳过",
				"tag", env.Tag,
				"want", reflect.TypeFor[P]().String(),
				"got", fmt.Sprintf("%T", env.Payload))
			if reporter != nil {
				reporter.Skipped(Source, interfaces.SkipTypeMismatch)
			}
			return
		}
		fn(ctx, p)
	}, scope)
}

// Publish 以 tag 和 payload 构造信封并发布
func Publish(ctx context.Context, bus interfaces.EventBus, tag types.Tag, payload any) error {
	return bus.Publish(ctx, types.NewEnvelope(tag, payload))
}
