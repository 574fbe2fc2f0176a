package dataclient

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/sirupsen/logrus"

	"github.com/idilsaglam/taskflow/internal/model"
)

var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "taskflow_store_requests_total",
			Help: "Requests sent to the tasks table, by backend, operation and outcome.",
		},
		[]string{"backend", "op", "outcome"},
	)

	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "taskflow_store_request_duration_seconds",
			Help:    "Latency of requests sent to the tasks table.",
			Buckets: []float64{0.01, 0.05, 0.1, 0.3, 1, 3},
		},
		[]string{"backend", "op"},
	)

	inFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "taskflow_store_in_flight_requests",
			Help: "Requests to the tasks table currently in flight.",
		},
	)
)

// instrumented records metrics and debug logs around every call.
type instrumented struct {
	next    Tasks
	backend string
	log     logrus.FieldLogger
}

func instrument(next Tasks, backend string, log logrus.FieldLogger) Tasks {
	if log == nil {
		l := logrus.New()
		l.SetLevel(logrus.PanicLevel)
		log = l
	}
	return &instrumented{next: next, backend: backend, log: log}
}

func (i *instrumented) observe(op, taskID string, fn func() error) error {
	inFlight.Inc()
	defer inFlight.Dec()

	entry := i.log.WithFields(logrus.Fields{
		"component":  "dataclient",
		"backend":    i.backend,
		"op":         op,
		"request_id": uuid.NewString(),
	})
	if taskID != "" {
		entry = entry.WithField("task_id", taskID)
	}

	start := time.Now()
	err := fn()
	elapsed := time.Since(start)

	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	requestsTotal.WithLabelValues(i.backend, op, outcome).Inc()
	requestDuration.WithLabelValues(i.backend, op).Observe(elapsed.Seconds())
	entry.WithFields(logrus.Fields{
		"duration_ms": elapsed.Milliseconds(),
		"outcome":     outcome,
	}).Debug("store request")
	return err
}

func (i *instrumented) List(ctx context.Context) (tasks []model.Task, err error) {
	err = i.observe("list", "", func() error {
		tasks, err = i.next.List(ctx)
		return err
	})
	return tasks, err
}

func (i *instrumented) Insert(ctx context.Context, nt model.NewTask) error {
	return i.observe("insert", "", func() error { return i.next.Insert(ctx, nt) })
}

func (i *instrumented) SetCompleted(ctx context.Context, id string, completed bool) error {
	return i.observe("update", id, func() error { return i.next.SetCompleted(ctx, id, completed) })
}

func (i *instrumented) Delete(ctx context.Context, id string) error {
	return i.observe("delete", id, func() error { return i.next.Delete(ctx, id) })
}
