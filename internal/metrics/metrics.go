package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector owns a private registry so tests can build as many as they need.
// A nil *Collector records nothing.
type Collector struct {
	registry        *prometheus.Registry
	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	remindersSent   *prometheus.CounterVec
	remindersFailed *prometheus.CounterVec
}

func New() *Collector {
	registry := prometheus.NewRegistry()
	collector := &Collector{
		registry: registry,
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mycare",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route, method and status.",
		}, []string{"route", "method", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "mycare",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
		remindersSent: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mycare",
			Name:      "reminders_delivered_total",
			Help:      "Reminders handed to the notifier.",
		}, []string{"type"}),
		remindersFailed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mycare",
			Name:      "reminders_failed_total",
			Help:      "Reminders the notifier rejected.",
		}, []string{"type"}),
	}

	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collector.requests,
		collector.requestDuration,
		collector.remindersSent,
		collector.remindersFailed,
	)
	return collector
}

func (collector *Collector) ObserveRequest(route string, method string, status int, elapsed time.Duration) {
	if collector == nil {
		return
	}
	collector.requests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	collector.requestDuration.WithLabelValues(route).Observe(elapsed.Seconds())
}

func (collector *Collector) ReminderDelivered(reminderType string) {
	if collector == nil {
		return
	}
	collector.remindersSent.WithLabelValues(reminderType).Inc()
}

func (collector *Collector) ReminderFailed(reminderType string) {
	if collector == nil {
		return
	}
	collector.remindersFailed.WithLabelValues(reminderType).Inc()
}

func (collector *Collector) Registry() *prometheus.Registry {
	return collector.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (collector *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(collector.registry, promhttp.HandlerOpts{})
}
