package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	PollIterations = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "homework_poll_iterations_total",
		Help: "Итерации опроса API по результату",
	}, []string{"result"})

	PollCursor = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "homework_poll_cursor_seconds",
		Help: "Текущее значение from_date",
	})

	StatusChanges = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "homework_status_changes_total",
		Help: "Обнаруженные изменения статуса работ",
	}, []string{"status"})

	MessagesSent = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "bot_messages_total",
		Help: "Сообщения, отправленные ботом",
	}, []string{"kind"})

	BotSendErrors = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "bot_send_errors_total",
		Help: "Ошибки отправки сообщений ботом",
	})

	NetworkRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "network_request_duration_seconds",
		Help:    "Длительность сетевых запросов",
		Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 15, 30, 60},
	}, []string{"component", "operation", "status"})

	NetworkRequestTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "network_request_total",
		Help: "Количество сетевых запросов",
	}, []string{"component", "operation", "status"})
)

// MustRegister регистрирует метрики.
func MustRegister(registerer prometheus.Registerer) {
	registerer.MustRegister(
		PollIterations,
		PollCursor,
		StatusChanges,
		MessagesSent,
		BotSendErrors,
		NetworkRequestDuration,
		NetworkRequestTotal,
	)
}

// ObserveNetworkRequest записывает длительность и статус сетевого запроса.
func ObserveNetworkRequest(component, operation string, start time.Time, err error) {
	if component == "" {
		component = "unknown"
	}
	if operation == "" {
		operation = "unknown"
	}
	status := "success"
	if err != nil {
		status = "error"
	}
	NetworkRequestDuration.WithLabelValues(component, operation, status).Observe(time.Since(start).Seconds())
	NetworkRequestTotal.WithLabelValues(component, operation, status).Inc()
}
