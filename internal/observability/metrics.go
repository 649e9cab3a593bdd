package observability

import (
	"fmt"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

const metricsNamespace = "notification_dispatch"

const (
	OutcomeAccepted = "accepted"
	OutcomeRejected = "rejected"

	ReasonRetryExhausted = "retry_exhausted"
)

// Metrics stores Prometheus collectors for the delivery flow. The registry is
// private to the process; nothing is exported over the network.
type Metrics struct {
	registry *prometheus.Registry

	deliveryAttemptsTotal    *prometheus.CounterVec
	notificationsSentTotal   *prometheus.CounterVec
	notificationsFailedTotal *prometheus.CounterVec
	attemptsPerNotification  *prometheus.HistogramVec
}

// Totals is a point-in-time sum of the delivery counters across all notifiers.
type Totals struct {
	Sent     int
	Failed   int
	Attempts int
}

func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		deliveryAttemptsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "delivery_attempts_total",
				Help:      "Total number of delivery attempts by notifier and outcome.",
			},
			[]string{"notifier", "outcome"},
		),
		notificationsSentTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "notifications_sent_total",
				Help:      "Total number of notifications that ended in sent state.",
			},
			[]string{"notifier"},
		),
		notificationsFailedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "notifications_failed_total",
				Help:      "Total number of notifications that ended in failed state.",
			},
			[]string{"notifier", "reason"},
		),
		attemptsPerNotification: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Name:      "attempts_per_notification",
				Help:      "Number of delivery attempts a notification needed before reaching a terminal state.",
				Buckets:   prometheus.LinearBuckets(1, 1, 10),
			},
			[]string{"notifier"},
		),
	}

	registry.MustRegister(
		m.deliveryAttemptsTotal,
		m.notificationsSentTotal,
		m.notificationsFailedTotal,
		m.attemptsPerNotification,
	)

	return m
}

func (m *Metrics) IncDeliveryAttempt(notifier string, accepted bool) {
	if m == nil {
		return
	}
	outcome := OutcomeRejected
	if accepted {
		outcome = OutcomeAccepted
	}
	m.deliveryAttemptsTotal.WithLabelValues(normalizeNotifier(notifier), outcome).Inc()
}

func (m *Metrics) IncNotificationSent(notifier string) {
	if m == nil {
		return
	}
	m.notificationsSentTotal.WithLabelValues(normalizeNotifier(notifier)).Inc()
}

func (m *Metrics) IncNotificationFailed(notifier string, reason string) {
	if m == nil {
		return
	}
	reasonLabel := strings.TrimSpace(strings.ToLower(reason))
	if reasonLabel == "" {
		reasonLabel = "unknown"
	}
	m.notificationsFailedTotal.WithLabelValues(normalizeNotifier(notifier), reasonLabel).Inc()
}

func (m *Metrics) ObserveAttempts(notifier string, attempts int) {
	if m == nil {
		return
	}
	if attempts < 0 {
		attempts = 0
	}
	m.attemptsPerNotification.WithLabelValues(normalizeNotifier(notifier)).Observe(float64(attempts))
}

// Totals gathers the registry and sums every counter series.
func (m *Metrics) Totals() (Totals, error) {
	if m == nil || m.registry == nil {
		return Totals{}, nil
	}

	families, err := m.registry.Gather()
	if err != nil {
		return Totals{}, fmt.Errorf("failed to gather metrics: %w", err)
	}

	var totals Totals
	for _, family := range families {
		switch family.GetName() {
		case metricsNamespace + "_notifications_sent_total":
			totals.Sent = sumCounters(family)
		case metricsNamespace + "_notifications_failed_total":
			totals.Failed = sumCounters(family)
		case metricsNamespace + "_delivery_attempts_total":
			totals.Attempts = sumCounters(family)
		}
	}

	return totals, nil
}

func sumCounters(family *dto.MetricFamily) int {
	var sum float64
	for _, metric := range family.GetMetric() {
		sum += metric.GetCounter().GetValue()
	}
	return int(sum)
}

func normalizeNotifier(notifier string) string {
	normalized := strings.ToLower(strings.TrimSpace(notifier))
	if normalized == "" {
		return "unknown"
	}
	return normalized
}
