package metrics

import "github.com/prometheus/client_golang/prometheus"

// BotMetrics exposes counters/histograms for the webhook -> NLU -> send flow.
type BotMetrics struct {
	inboundTotal  *prometheus.CounterVec
	outboundTotal *prometheus.CounterVec
	nluLatency    prometheus.Histogram
}

// NewBotMetrics registers the bot metric family. sessionCount, when
// non-nil, backs an active-sessions gauge.
func NewBotMetrics(reg prometheus.Registerer, sessionCount func() float64) *BotMetrics {
	m := &BotMetrics{
		inboundTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "messenger_bot",
			Name:      "inbound_events_total",
			Help:      "Total inbound messaging events by type and outcome",
		}, []string{"event_type", "status"}),
		outboundTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "messenger_bot",
			Name:      "outbound_total",
			Help:      "Total outbound Send API calls",
		}, []string{"status"}),
		nluLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "messenger_bot",
			Name:      "nlu_latency_seconds",
			Help:      "Latency of Wit classify calls",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.inboundTotal, m.outboundTotal, m.nluLatency)

	if sessionCount != nil {
		reg.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: "messenger_bot",
			Name:      "sessions_active",
			Help:      "Live in-memory sessions",
		}, sessionCount))
	}

	return m
}

func (m *BotMetrics) ObserveInbound(eventType, status string) {
	if m == nil {
		return
	}
	m.inboundTotal.WithLabelValues(eventType, status).Inc()
}

func (m *BotMetrics) ObserveOutbound(status string) {
	if m == nil {
		return
	}
	m.outboundTotal.WithLabelValues(status).Inc()
}

func (m *BotMetrics) ObserveNLULatency(seconds float64) {
	if m == nil {
		return
	}
	m.nluLatency.Observe(seconds)
}
