package definition

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics exposes the simulator's observability surface: counters and
// gauges registered against a private prometheus.Registry so multiple
// simulator runs in the same process (as in tests) never collide on
// global registration.
type Metrics struct {
	registry *prometheus.Registry

	sends     *prometheus.CounterVec
	recvB     *prometheus.CounterVec
	recvA     *prometheus.CounterVec
	bufDepth  *prometheus.GaugeVec
	livelocks *prometheus.CounterVec
}

// NewMetrics constructs and registers a fresh Metrics instance.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		sends: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bss_sends_total",
			Help: "Number of Send operations executed, by process.",
		}, []string{"process"}),
		recvB: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bss_recv_b_total",
			Help: "Number of messages arrived at a process's BSS buffer.",
		}, []string{"process"}),
		recvA: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bss_recv_a_total",
			Help: "Number of messages released to a process's application.",
		}, []string{"process"}),
		bufDepth: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "bss_buffer_depth",
			Help: "Current number of messages queued, by process and queue.",
		}, []string{"process", "queue"}),
		livelocks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bss_livelock_total",
			Help: "Number of times the livelock heuristic aborted a process.",
		}, []string{"process"}),
	}
	reg.MustRegister(m.sends, m.recvB, m.recvA, m.bufDepth, m.livelocks)
	return m
}

// ObserveSend increments the sends counter for process.
func (m *Metrics) ObserveSend(process string) { m.sends.WithLabelValues(process).Inc() }

// ObserveRecvB increments the recv_B counter for process.
func (m *Metrics) ObserveRecvB(process string) { m.recvB.WithLabelValues(process).Inc() }

// ObserveRecvA increments the recv_A counter for process.
func (m *Metrics) ObserveRecvA(process string) { m.recvA.WithLabelValues(process).Inc() }

// ObserveLivelock increments the livelock counter for process.
func (m *Metrics) ObserveLivelock(process string) { m.livelocks.WithLabelValues(process).Inc() }

// SetQueueDepth records the current depth of queue (bss|app) for process.
func (m *Metrics) SetQueueDepth(process, queue string, depth int) {
	m.bufDepth.WithLabelValues(process, queue).Set(float64(depth))
}

// Handler returns an http.Handler serving this Metrics instance's
// registry in the Prometheus exposition format. The simulator never
// starts a listener unless the CLI is given --metrics-addr: the protocol
// itself never touches the network (spec Non-goal), this is purely an
// optional observability side-channel.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
