package monitoring

import (
	"errors"
	"testing"
)

func TestMonitor_GetMetrics(t *testing.T) {
	m := NewMonitor()
	m.RecordMetric("test_metric", 42)

	metrics := m.GetMetrics()

	// Check if our metric is present
	value, exists := metrics["test_metric"]
	if !exists {
		t.Fatalf("Expected 'test_metric' to be present in metrics, but it was not")
	}

	// Check value
	if value != 42 {
		t.Errorf("Expected 'test_metric' to be 42, but got %v", value)
	}

	// Check uptime presence
	_, exists = metrics["uptime_seconds"]
	if !exists {
		t.Errorf("Expected 'uptime_seconds' to be present in metrics, but it was not")
	}
}

func TestMonitor_RecordSync(t *testing.T) {
	m := NewMonitor()

	m.RecordSync("ada", "add_color", errors.New("connection refused"))

	metrics := m.GetMetrics()

	// Check if metrics are recorded with the proper prefix
	value, exists := metrics["ada_sync_last_operation"]
	if !exists {
		t.Fatalf("Expected 'ada_sync_last_operation' to be present in metrics, but it was not")
	}

	if value != "add_color" {
		t.Errorf("Expected 'ada_sync_last_operation' to be 'add_color', but got %v", value)
	}

	// Check timestamp and error are recorded
	_, exists = metrics["ada_sync_last_attempt"]
	if !exists {
		t.Errorf("Expected 'ada_sync_last_attempt' to be present in metrics, but it was not")
	}

	if metrics["ada_sync_last_error"] != "connection refused" {
		t.Errorf("Expected 'ada_sync_last_error' to be 'connection refused', but got %v", metrics["ada_sync_last_error"])
	}

	// A later success clears the stored error
	m.RecordSync("ada", "remove_color", nil)

	metrics = m.GetMetrics()
	if _, exists = metrics["ada_sync_last_error"]; exists {
		t.Errorf("Expected 'ada_sync_last_error' to be cleared after a successful sync, but it was present")
	}
}

func TestMonitor_Reset(t *testing.T) {
	m := NewMonitor()
	m.RecordMetric("test_metric", 42)

	m.Reset()

	metrics := m.GetMetrics()

	// Our test metric should be gone, but uptime should still be there
	_, exists := metrics["test_metric"]
	if exists {
		t.Errorf("Expected 'test_metric' to be removed after Reset(), but it was present")
	}

	// Uptime should still be present (it's added on GetMetrics call)
	_, exists = metrics["uptime_seconds"]
	if !exists {
		t.Errorf("Expected 'uptime_seconds' to be present in metrics, but it was not")
	}
}
