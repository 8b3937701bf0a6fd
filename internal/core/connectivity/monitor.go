package connectivity

import (
	"context"
	"errors"
	"sync"

	"github.com/benbjohnson/clock"
	"golang.org/x/sync/singleflight"

	"github.com/dep2p/go-unpeek/config"
	"github.com/dep2p/go-unpeek/internal/core/channel"
	"github.com/dep2p/go-unpeek/pkg/interfaces"
	"github.com/dep2p/go-unpeek/pkg/lib/log"
	"github.com/dep2p/go-unpeek/pkg/types"
)

var logger = log.Logger("core/connectivity")

// StateChannelName 状态 Channel 的名称
const StateChannelName = "net_state"

// Option Monitor 选项
type Option func(*Monitor)

// WithBus 状态变化时在总线上发布 types.TagNetworkChanged
func WithBus(bus interfaces.EventBus) Option {
	return func(m *Monitor) {
		m.bus = bus
	}
}

// WithClock 设置时钟
func WithClock(c clock.Clock) Option {
	return func(m *Monitor) {
		if c != nil {
			m.clock = c
		}
	}
}

// WithReporter 设置状态 Channel 的指标上报器
func WithReporter(r interfaces.Reporter) Option {
	return func(m *Monitor) {
		m.reporter = r
	}
}

// ============================================================================
//                              Monitor
// ============================================================================

// Monitor 网络连通性监控器
type Monitor struct {
	cfg      config.ConnectivityConfig
	prober   Prober
	bus      interfaces.EventBus
	clock    clock.Clock
	reporter interfaces.Reporter

	state *channel.Channel[types.NetState]
	sf    singleflight.Group

	mu      sync.Mutex
	current types.NetState
	known   bool
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// NewMonitor 创建监控器
//
// prober 为 nil 时使用 DialProber。
func NewMonitor(cfg config.ConnectivityConfig, prober Prober, opts ...Option) *Monitor {
	m := &Monitor{
		cfg:    cfg,
		prober: prober,
		clock:  clock.New(),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.prober == nil {
		m.prober = NewDialProber(cfg)
	}
	m.state = channel.New[types.NetState](
		channel.WithName(StateChannelName),
		channel.WithReporter(m.reporter),
	)
	return m
}

// ============================================================================
//                              生命周期
// ============================================================================

// Start 启动定期探测
//
// 启动后立即探测一次。重复调用是空操作。
func (m *Monitor) Start(ctx context.Context) error {
	interval := m.cfg.Interval.Duration()
	if interval <= 0 {
		return errors.New("connectivity interval must be positive")
	}

	m.mu.Lock()
	if m.cancel != nil {
		m.mu.Unlock()
		return nil
	}
	ctx, m.cancel = context.WithCancel(ctx)
	ticker := m.clock.Ticker(interval)
	m.wg.Add(1)
	m.mu.Unlock()

	go m.probeLoop(ctx, ticker)

	logger.Info("网络监控器已启动",
		"address", m.cfg.ProbeAddress,
		"interval", interval)
	return nil
}

// Stop 停止探测，等待探测循环退出
//
// 状态 Channel 保持可用，最后一次状态仍可读取。
func (m *Monitor) Stop() error {
	m.mu.Lock()
	cancel := m.cancel
	m.cancel = nil
	m.mu.Unlock()

	if cancel == nil {
		return nil
	}
	cancel()
	m.wg.Wait()

	logger.Info("网络监控器已停止")
	return nil
}

// ============================================================================
//                              状态访问
// ============================================================================

// State 返回状态 Channel
func (m *Monitor) State() *channel.Channel[types.NetState] {
	return m.state
}

// Current 返回最近一次探测的状态，尚未探测时返回 false
func (m *Monitor) Current() (types.NetState, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current, m.known
}

// ProbeNow 立即探测一次并返回结果
//
// 并发调用合并为一次探测。合并后的探测不受发起者 ctx 取消的影响，
// 否则一个调用方取消会让其余等待者拿到离线结果。
func (m *Monitor) ProbeNow(ctx context.Context) types.NetState {
	v, _, _ := m.sf.Do("probe", func() (any, error) {
		pctx := context.WithoutCancel(ctx)
		state := m.prober.Probe(pctx)
		m.update(pctx, state)
		return state, nil
	})
	return v.(types.NetState)
}

// ============================================================================
//                              内部方法
// ============================================================================

// probeLoop 定期探测循环
func (m *Monitor) probeLoop(ctx context.Context, ticker *clock.Ticker) {
	defer m.wg.Done()
	defer ticker.Stop()

	m.ProbeNow(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.ProbeNow(ctx)
		}
	}
}

// update 记录新状态，仅在变化时写入 Channel 并发布事件
func (m *Monitor) update(ctx context.Context, state types.NetState) {
	m.mu.Lock()
	if m.known && m.current == state {
		m.mu.Unlock()
		return
	}
	prev := m.current
	m.current = state
	m.known = true
	m.mu.Unlock()

	logger.Info("网络状态变更", "from", prev.String(), "to", state.String())

	if err := m.state.Write(state); err != nil {
		logger.Warn("写入网络状态失败", "err", err)
	}

	if m.bus == nil {
		return
	}
	env := types.NewEnvelope(types.TagNetworkChanged, types.NetworkChangedEvent{
		Previous: prev,
		Current:  state,
	})
	if err := m.bus.Publish(ctx, env); err != nil {
		logger.Warn("发布网络状态事件失败", "err", err)
	}
}
