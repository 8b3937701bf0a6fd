package eventbus

import (
	"time"

	"github.com/benbjohnson/clock"

	"github.com/dep2p/go-unpeek/pkg/interfaces"
	"github.com/dep2p/go-unpeek/pkg/types"
)

// DefaultSlowCallbackThreshold 默认慢回调告警阈值
const DefaultSlowCallbackThreshold = 100 * time.Millisecond

// busSettings Bus 构造参数
type busSettings struct {
	clock         clock.Clock
	reporter      interfaces.Reporter
	onError       types.ErrorHandler
	slowThreshold time.Duration
}

func defaultSettings() *busSettings {
	return &busSettings{
		clock:         clock.New(),
		slowThreshold: DefaultSlowCallbackThreshold,
	}
}
