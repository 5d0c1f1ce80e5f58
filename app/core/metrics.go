package core

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/vitaehub/vitaehub/pkg/metrics"
)

type Metrics struct {
	apiResponseTime *prometheus.HistogramVec
	apiErrorCount   *prometheus.CounterVec

	chatStreams    *prometheus.CounterVec
	chatEvents     prometheus.Counter
	remoteWriteVec *prometheus.CounterVec
}

func setupMetrics() *Metrics {
	metrics.SetupMetricsManager("vitaehub", "api", prometheus.NewRegistry())

	m := &Metrics{
		apiResponseTime: metrics.NewHistogramVec("response_time", []string{"method", "path", "status"}),
		apiErrorCount:   metrics.NewCounterVec("response_error", []string{"method", "path", "status"}),
		chatStreams:     metrics.NewCounterVec("chat_stream_total", []string{"result"}),
		remoteWriteVec:  metrics.NewCounterVec("cv_remote_write_total", []string{"result"}),
	}

	eventVec := metrics.NewCounterVec("chat_stream_events_total", []string{"kind"})
	m.chatEvents = eventVec.WithLabelValues("data")

	return m
}

func (m *Metrics) ObserveAPIResponse(method, path, status string, cost time.Duration) {
	m.apiResponseTime.WithLabelValues(method, path, status).Observe(float64(cost.Milliseconds()))
}

func (m *Metrics) ObserveAPIError(method, path, status string) {
	m.apiErrorCount.WithLabelValues(method, path, status).Inc()
}

func (m *Metrics) ObserveChatStream(result string) {
	m.chatStreams.WithLabelValues(result).Inc()
}

func (m *Metrics) ObserveChatEvent() {
	m.chatEvents.Inc()
}

// ObserveRemoteWrite is wired into the document store so that every
// attempted database write shows up in metrics, including the ones the
// save path swallowed in favor of the cache fallback.
func (m *Metrics) ObserveRemoteWrite(userID string, err error) {
	if err != nil {
		m.remoteWriteVec.WithLabelValues("error").Inc()
		return
	}
	m.remoteWriteVec.WithLabelValues("ok").Inc()
}
