package connectivity

import (
	"context"
	"net"
	"time"

	"github.com/dep2p/go-unpeek/config"
	"github.com/dep2p/go-unpeek/pkg/types"
)

// Prober 网络探测器接口
//
// 用于主动探测网络状态，支持测试注入。
type Prober interface {
	// Probe 执行一次探测
	Probe(ctx context.Context) types.NetState
}

// ProberFunc 函数形式的 Prober
type ProberFunc func(ctx context.Context) types.NetState

// Probe 实现 Prober
func (f ProberFunc) Probe(ctx context.Context) types.NetState {
	return f(ctx)
}

// ============================================================================
//                              DialProber
// ============================================================================

// DialProber 通过 TCP 连接探测地址判断网络是否可用
type DialProber struct {
	address string
	timeout time.Duration
	dialer  *net.Dialer
}

// 确保实现接口
var _ Prober = (*DialProber)(nil)

// NewDialProber 创建 TCP 探测器
func NewDialProber(cfg config.ConnectivityConfig) *DialProber {
	return &DialProber{
		address: cfg.ProbeAddress,
		timeout: cfg.Timeout.Duration(),
		dialer:  &net.Dialer{Timeout: cfg.Timeout.Duration()},
	}
}

// Probe 实现 Prober
func (p *DialProber) Probe(ctx context.Context) types.NetState {
	conn, err := p.dialer.DialContext(ctx, "tcp", p.address)
	if err != nil {
		logger.Debug("探测失败", "address", p.address, "err", err)
		return types.NetState{}
	}
	_ = conn.Close()
	return types.NetState{Available: true, Transport: "tcp"}
}

// Address 返回探测地址
func (p *DialProber) Address() string {
	return p.address
}

// Timeout 返回探测超时
func (p *DialProber) Timeout() time.Duration {
	return p.timeout
}
