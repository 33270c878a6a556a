package metrics

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

// ClientMetrics collects the toolkit's view of the backend: request outcomes,
// save outcomes per domain and listing loads per mode.
type ClientMetrics struct {
	service  string
	registry *prometheus.Registry

	requestTotal    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	saveTotal       *prometheus.CounterVec
	browseTotal     *prometheus.CounterVec
}

func NewClientMetrics(service string) *ClientMetrics {
	registry := prometheus.NewRegistry()

	requestTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "arquivia",
			Subsystem: "api",
			Name:      "requests_total",
			Help:      "Total backend API calls by operation and HTTP status.",
		},
		[]string{"service", "operation", "status"},
	)
	requestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "arquivia",
			Subsystem: "api",
			Name:      "request_duration_seconds",
			Help:      "Backend API call duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "operation"},
	)
	saveTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "arquivia",
			Subsystem: "editor",
			Name:      "saves_total",
			Help:      "Classification editor save requests by domain and outcome.",
		},
		[]string{"service", "domain", "outcome"},
	)
	browseTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "arquivia",
			Subsystem: "browser",
			Name:      "loads_total",
			Help:      "Document list loads by mode (listing or searching) and outcome.",
		},
		[]string{"service", "mode", "outcome"},
	)

	registry.MustRegister(requestTotal, requestDuration, saveTotal, browseTotal)

	return &ClientMetrics{
		service:         service,
		registry:        registry,
		requestTotal:    requestTotal,
		requestDuration: requestDuration,
		saveTotal:       saveTotal,
		browseTotal:     browseTotal,
	}
}

// ObserveRequest implements ports.RequestObserver. A zero status means no response arrived.
func (m *ClientMetrics) ObserveRequest(operation string, statusCode int, duration time.Duration, _ error) {
	status := "network_error"
	if statusCode > 0 {
		status = strconv.Itoa(statusCode)
	}
	m.requestTotal.WithLabelValues(m.service, operation, status).Inc()
	m.requestDuration.WithLabelValues(m.service, operation).Observe(duration.Seconds())
}

func (m *ClientMetrics) RecordSave(domain string, err error) {
	m.saveTotal.WithLabelValues(m.service, domain, outcome(err)).Inc()
}

func (m *ClientMetrics) RecordBrowse(mode string, err error) {
	if mode == "" {
		mode = "unknown"
	}
	m.browseTotal.WithLabelValues(m.service, mode, outcome(err)).Inc()
}

// Push sends the registry to a Prometheus pushgateway; CLI runs are too short to be scraped.
func (m *ClientMetrics) Push(ctx context.Context, gatewayURL, job string) error {
	if gatewayURL == "" {
		return nil
	}
	if job == "" {
		job = m.service
	}
	if err := push.New(gatewayURL, job).Gatherer(m.registry).PushContext(ctx); err != nil {
		return fmt.Errorf("push metrics: %w", err)
	}
	return nil
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
