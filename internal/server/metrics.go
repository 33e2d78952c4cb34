package server

import (
	"time"

	log "github.com/sirupsen/logrus"
)

// actionRequestMetrics collects per-request timings for the action routes and logs them as one
// structured line when the request finishes.
type actionRequestMetrics struct {
	logger           *log.Logger
	route            string
	start            time.Time
	decodeDuration   time.Duration
	dispatchDuration time.Duration
	actions          int
	applied          int
	errorStage       string
}

func newActionRequestMetrics(logger *log.Logger, route string) *actionRequestMetrics {
	return &actionRequestMetrics{
		logger: logger,
		route:  route,
		start:  time.Now(),
	}
}

func (m *actionRequestMetrics) ObserveDecode(d time.Duration) {
	if d > 0 {
		m.decodeDuration = d
	}
}

func (m *actionRequestMetrics) ObserveDispatch(d time.Duration) {
	if d > 0 {
		m.dispatchDuration += d
	}
}

func (m *actionRequestMetrics) SetActions(n int) { m.actions = n }

func (m *actionRequestMetrics) AddApplied() { m.applied++ }

func (m *actionRequestMetrics) SetErrorStage(stage string) {
	if stage != "" {
		m.errorStage = stage
	}
}

func (m *actionRequestMetrics) Log(status int, err error) {
	if m == nil || m.logger == nil {
		return
	}
	fields := log.Fields{
		"route":    m.route,
		"status":   status,
		"total_ms": durationToMillis(time.Since(m.start)),
		"actions":  m.actions,
		"applied":  m.applied,
	}
	if m.decodeDuration > 0 {
		fields["decode_ms"] = durationToMillis(m.decodeDuration)
	}
	if m.dispatchDuration > 0 {
		fields["dispatch_ms"] = durationToMillis(m.dispatchDuration)
	}
	if m.errorStage != "" {
		fields["error_stage"] = m.errorStage
	}
	if err != nil {
		fields["error"] = err.Error()
	}
	m.logger.WithFields(fields).Info("actions.request.metrics")
}

func durationToMillis(d time.Duration) float64 {
	if d <= 0 {
		return 0
	}
	return float64(d) / float64(time.Millisecond)
}
