package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all custom Prometheus metrics for the application
type Metrics struct {
	// Chat metrics
	ChatTurns      prometheus.Counter
	ChatErrors     *prometheus.CounterVec
	StreamDuration prometheus.Histogram

	// Tab metrics
	TabUnlocks *prometheus.CounterVec
}

// InitMetrics initializes the Prometheus metrics. The session store feeds a
// live gauge so /metrics reflects the current session count without polling.
func InitMetrics(sessions *SessionStore) *Metrics {
	metrics := &Metrics{
		// Chat turns counter (one per accepted /chat/send)
		ChatTurns: promauto.NewCounter(prometheus.CounterOpts{
			Name: "visioncoach_chat_turns_total",
			Help: "Total number of chat turns processed",
		}),

		// Chat errors by type (upstream, relay, validation)
		ChatErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "visioncoach_chat_errors_total",
			Help: "Total number of chat errors by type",
		}, []string{"error_type"}),

		// Stream duration histogram
		StreamDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "visioncoach_stream_duration_seconds",
			Help:    "Duration of streamed chat turns in seconds",
			Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60, 120}, // up to 2 minutes for LLM responses
		}),

		// Tab unlock attempts by outcome
		TabUnlocks: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "visioncoach_tab_unlocks_total",
			Help: "Total number of tab unlock attempts by outcome",
		}, []string{"outcome"}),
	}

	// Register a collector that reads the live session count from the store
	prometheus.MustRegister(prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "visioncoach_sessions_active",
			Help: "Current number of active sessions",
		},
		func() float64 {
			if sessions != nil {
				return float64(sessions.Count())
			}
			return 0
		},
	))

	return metrics
}

// RecordChatTurn records an accepted chat turn
func (m *Metrics) RecordChatTurn() {
	m.ChatTurns.Inc()
}

// RecordChatError records a chat error
func (m *Metrics) RecordChatError(errorType string) {
	m.ChatErrors.WithLabelValues(errorType).Inc()
}

// RecordStreamDuration records how long a streamed turn took
func (m *Metrics) RecordStreamDuration(seconds float64) {
	m.StreamDuration.Observe(seconds)
}

// RecordTabUnlock records a tab unlock attempt outcome
func (m *Metrics) RecordTabUnlock(outcome string) {
	m.TabUnlocks.WithLabelValues(outcome).Inc()
}
