package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/dep2p/go-unpeek/pkg/interfaces"
)

// DefaultNamespace 默认指标命名空间
const DefaultNamespace = "unpeek"

// ============================================================================
//                              PromReporter
// ============================================================================

// PromReporter 基于 Prometheus 的 Reporter 实现
type PromReporter struct {
	delivered *prometheus.CounterVec
	skipped   *prometheus.CounterVec
	failed    *prometheus.CounterVec
	live      *prometheus.GaugeVec
}

// 确保实现接口
var _ interfaces.Reporter = (*PromReporter)(nil)

// NewPromReporter 创建并注册指标
//
// reg 为 nil 时不注册（仅用于本地统计）。
// 同名指标已注册时复用已有的收集器。
func NewPromReporter(reg prometheus.Registerer, namespace string) (*PromReporter, error) {
	if namespace == "" {
		namespace = DefaultNamespace
	}

	r := &PromReporter{
		delivered: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "deliveries_total",
			Help:      "Number of observer callbacks invoked.",
		}, []string{"source"}),
		skipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "skipped_total",
			Help:      "Number of deliveries skipped, by reason.",
		}, []string{"source", "reason"}),
		failed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "callback_failures_total",
			Help:      "Number of observer callbacks that failed.",
		}, []string{"source"}),
		live: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "live_subscriptions",
			Help:      "Number of live subscriptions.",
		}, []string{"source"}),
	}

	if reg == nil {
		return r, nil
	}

	var err error
	if r.delivered, err = register(reg, r.delivered); err != nil {
		return nil, err
	}
	if r.skipped, err = register(reg, r.skipped); err != nil {
		return nil, err
	}
	if r.failed, err = register(reg, r.failed); err != nil {
		return nil, err
	}
	if r.live, err = register(reg, r.live); err != nil {
		return nil, err
	}
	return r, nil
}

// register 注册收集器，已存在时返回已注册的实例
func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

// Delivered 实现 interfaces.Reporter
func (r *PromReporter) Delivered(source string) {
	r.delivered.WithLabelValues(source).Inc()
}

// Skipped 实现 interfaces.Reporter
func (r *PromReporter) Skipped(source string, reason interfaces.SkipReason) {
	r.skipped.WithLabelValues(source, string(reason)).Inc()
}

// CallbackFailed 实现 interfaces.Reporter
func (r *PromReporter) CallbackFailed(source string) {
	r.failed.WithLabelValues(source).Inc()
}

// SubscriptionOpened 实现 interfaces.Reporter
func (r *PromReporter) SubscriptionOpened(source string) {
	r.live.WithLabelValues(source).Inc()
}

// SubscriptionClosed 实现 interfaces.Reporter
func (r *PromReporter) SubscriptionClosed(source string) {
	r.live.WithLabelValues(source).Dec()
}

// Collectors 返回全部收集器（用于自定义导出）
func (r *PromReporter) Collectors() []prometheus.Collector {
	return []prometheus.Collector{r.delivered, r.skipped, r.failed, r.live}
}

// ============================================================================
//                              NopReporter
// ============================================================================

// NopReporter 不记录任何指标
type NopReporter struct{}

var nop interfaces.Reporter = NopReporter{}

// Nop 返回空实现
func Nop() interfaces.Reporter {
	return nop
}

func (NopReporter) Delivered(string) {}
func (NopReporter) Skipped(string, interfaces.SkipReason) {}
func (NopReporter) CallbackFailed(string) {}
func (NopReporter) SubscriptionOpened(string) {}
func (NopReporter) SubscriptionClosed(string) {}
