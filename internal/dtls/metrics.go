package dtls

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics exports dispatcher and handshake counters to Prometheus. The
// pattern (one struct per concern, registered once, thin Inc/Observe
// methods) follows how this stack's other services export observability,
// not the DTLS engine itself.
type Metrics struct {
	sessionsActive   prometheus.Gauge
	handshakesTotal  *prometheus.CounterVec
	datagramsDropped *prometheus.CounterVec
	flight4Latency   prometheus.Histogram

	flight4Started map[string]time.Time
}

// NewMetrics registers the dtlsd metrics on reg.
func NewMetrics(reg *prometheus.Registry) *Metrics {
	m := &Metrics{
		sessionsActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "dtlsd_sessions_active",
			Help: "Current number of tracked peer sessions.",
		}),
		handshakesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dtlsd_handshakes_total",
			Help: "Handshakes by terminal result.",
		}, []string{"result"}),
		datagramsDropped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dtlsd_datagrams_dropped_total",
			Help: "Inbound datagrams dropped, by reason.",
		}, []string{"reason"}),
		flight4Latency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "dtlsd_flight4_latency_seconds",
			Help:    "Time from the HelloVerifyRequest being sent to the Flight4 burst being sent.",
			Buckets: prometheus.DefBuckets,
		}),
		flight4Started: make(map[string]time.Time),
	}
	reg.MustRegister(
		m.sessionsActive,
		m.handshakesTotal,
		m.datagramsDropped,
		m.flight4Latency,
	)
	return m
}

func (m *Metrics) sessionCreated() {
	m.sessionsActive.Inc()
}

// sessionEvicted and sessionExpired only adjust the active-session gauge:
// eviction/expiry are session-lifecycle events, not one of the handshake
// results dtlsd_handshakes_total{result} enumerates.
func (m *Metrics) sessionEvicted() {
	m.sessionsActive.Dec()
}

func (m *Metrics) sessionExpired() {
	m.sessionsActive.Dec()
}

// helloVerifySent records that addr was just sent its first
// HelloVerifyRequest, starting the Flight4-latency stopwatch for that peer.
func (m *Metrics) helloVerifySent(addr string) {
	m.flight4Started[addr] = time.Now()
	m.handshakesTotal.WithLabelValues("hello_verify_sent").Inc()
}

// cookieMismatch records that addr echoed a cookie that failed validation,
// restarting the stopwatch at the fresh HelloVerifyRequest this triggers.
func (m *Metrics) cookieMismatch(addr string) {
	m.flight4Started[addr] = time.Now()
	m.handshakesTotal.WithLabelValues("cookie_mismatch").Inc()
}

// flight4Sent records that addr's cookie verified and its Flight4 burst was
// sent, closing out the stopwatch helloVerifySent/cookieMismatch started.
func (m *Metrics) flight4Sent(addr string) {
	if t, ok := m.flight4Started[addr]; ok {
		m.flight4Latency.Observe(time.Since(t).Seconds())
		delete(m.flight4Started, addr)
	}
	m.handshakesTotal.WithLabelValues("flight4_sent").Inc()
}

func (m *Metrics) datagramDropped(reason string) {
	m.datagramsDropped.WithLabelValues(reason).Inc()
}
