package monitoring

import (
	"sync"
	"time"
)

// Monitor collects and provides operational metrics for the wardrobe service
type Monitor struct {
	metrics      map[string]interface{}
	metricsMutex sync.RWMutex
	startTime    time.Time
}

// NewMonitor creates a new monitoring instance
func NewMonitor() *Monitor {
	return &Monitor{
		metrics:   make(map[string]interface{}),
		startTime: time.Now(),
	}
}

// RecordMetric records a metric value
func (m *Monitor) RecordMetric(name string, value interface{}) {
	m.metricsMutex.Lock()
	defer m.metricsMutex.Unlock()
	m.metrics[name] = value
}

// GetMetric returns a specific metric value
func (m *Monitor) GetMetric(name string) (interface{}, bool) {
	m.metricsMutex.RLock()
	defer m.metricsMutex.RUnlock()
	value, exists := m.metrics[name]
	return value, exists
}

// GetMetrics returns all current metrics
func (m *Monitor) GetMetrics() map[string]interface{} {
	m.metricsMutex.RLock()
	defer m.metricsMutex.RUnlock()

	// Create a copy to avoid concurrent map access
	metrics := make(map[string]interface{}, len(m.metrics))
	for k, v := range m.metrics {
		metrics[k] = v
	}

	// Add system metrics
	metrics["uptime_seconds"] = time.Since(m.startTime).Seconds()

	return metrics
}

// Reset clears all metrics
func (m *Monitor) Reset() {
	m.metricsMutex.Lock()
	defer m.metricsMutex.Unlock()
	m.metrics = make(map[string]interface{})
}

// RecordSync records the outcome of a remote sync operation for a user.
// Failures keep the last error string so the status endpoint can surface
// sync lag without a log dive.
func (m *Monitor) RecordSync(user, operation string, err error) {
	m.metricsMutex.Lock()
	defer m.metricsMutex.Unlock()

	prefix := user + "_sync_"
	m.metrics[prefix+"last_operation"] = operation
	m.metrics[prefix+"last_attempt"] = time.Now().Format(time.RFC3339)
	if err != nil {
		m.metrics[prefix+"last_error"] = err.Error()
	} else {
		delete(m.metrics, prefix+"last_error")
	}
}
