// Package metrics exposes prometheus instrumentation for task lifecycle,
// user directory and audit operations.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	apperrors "github.com/bobimat/workshop-tasks/internal/errors"
)

const namespace = "workshop"

var registry = prometheus.NewRegistry()

var factory = promauto.With(registry)

var (
	// OperationsTotal counts service operations by name and result. Result is
	// "ok" or the HTTP status the failure maps to.
	OperationsTotal = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "operations_total",
		Help:      "Service operations by name and result.",
	}, []string{"operation", "result"})

	OperationDuration = factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "operation_duration_seconds",
		Help:      "Service operation latency.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"operation"})

	// AuditDrift is the number of tasks whose status disagrees with their
	// newest log entry at the last reconcile check.
	AuditDrift = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "audit",
		Name:      "drift_tasks",
		Help:      "Tasks whose status differs from the newest log entry.",
	})
)

func init() {
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
}

func Observe(operation string, start time.Time, err error) {
	OperationDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	OperationsTotal.WithLabelValues(operation, result(err)).Inc()
}

func Handler() http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry})
}

func result(err error) string {
	if err == nil {
		return "ok"
	}
	return strconv.Itoa(apperrors.StatusCode(err))
}
