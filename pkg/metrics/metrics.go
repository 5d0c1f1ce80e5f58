package metrics

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Package-level manager so collectors can be declared where they are used
// without threading a registry through every constructor.

type manager struct {
	namespace string
	system    string
	registry  *prometheus.Registry
}

var active = &manager{
	namespace: "default",
	system:    "default",
	registry:  prometheus.NewRegistry(),
}

func SetupMetricsManager(ns, system string, registry *prometheus.Registry) {
	active = &manager{
		namespace: ns,
		system:    system,
		registry:  registry,
	}
	registry.Register(collectors.NewGoCollector())
}

func NewCounterVec(name string, labels []string) *prometheus.CounterVec {
	vec := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: normalizeName(active.namespace),
			Subsystem: normalizeName(active.system),
			Name:      normalizeName(name),
			Help:      fmt.Sprintf("%s count of /%s/%s", name, active.namespace, active.system),
		},
		labels,
	)

	// pre-touch so the series shows up before the first real observation
	vec.WithLabelValues(make([]string, len(labels))...).Add(0)

	active.registry.Register(vec)
	return vec
}

func NewHistogramVec(name string, labels []string) *prometheus.HistogramVec {
	vec := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: normalizeName(active.namespace),
			Subsystem: normalizeName(active.system),
			Name:      normalizeName(name),
			Help:      fmt.Sprintf("%s duration of /%s/%s", name, active.namespace, active.system),
		},
		labels,
	)

	vec.WithLabelValues(make([]string, len(labels))...).Observe(0)

	active.registry.Register(vec)
	return vec
}

func DefaultExportHandler() gin.HandlerFunc {
	h := promhttp.InstrumentMetricHandler(
		active.registry, promhttp.HandlerFor(active.registry, promhttp.HandlerOpts{}),
	)
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}

func normalizeName(in string) string {
	return strings.NewReplacer(".", "_", "-", "_").Replace(in)
}
