package visualizations

import "time"

// AlertType identifies the kind of alert.
type AlertType string

const (
	AlertFailureRate    AlertType = "webhook_failure_rate"
	AlertSlowProcessing AlertType = "slow_processing"
	AlertStoreAtCap     AlertType = "store_at_capacity"
)

// Alert represents one active operational alert.
type Alert struct {
	Type      AlertType      `json:"type"`
	Severity  string         `json:"severity"`
	Message   string         `json:"message"`
	Details   map[string]any `json:"details,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}

// minAlertSample is the minimum number of finished deliveries before the
// failure-rate alert can fire; below it the rate is mostly noise.
const minAlertSample = 5

// EvaluateAlerts checks a stats snapshot and the store fill level against
// fixed thresholds and returns the alerts currently active.
func EvaluateAlerts(snap Snapshot, storedRecords int, now time.Time) []Alert {
	var alerts []Alert

	if snap.Total >= minAlertSample && snap.SuccessRate < healthySuccessRate {
		alerts = append(alerts, Alert{
			Type:     AlertFailureRate,
			Severity: "high",
			Message:  "webhook failure rate above threshold",
			Details: map[string]any{
				"successRate": snap.SuccessRate,
				"failed":      snap.Failed,
				"total":       snap.Total,
			},
			Timestamp: now,
		})
	}

	if snap.Total > 0 && snap.AvgProcessingMs >= healthyAvgMillis {
		alerts = append(alerts, Alert{
			Type:     AlertSlowProcessing,
			Severity: "medium",
			Message:  "average webhook processing time above threshold",
			Details: map[string]any{
				"avgProcessingMs": snap.AvgProcessingMs,
			},
			Timestamp: now,
		})
	}

	if storedRecords >= MaxStoredRecords {
		alerts = append(alerts, Alert{
			Type:     AlertStoreAtCap,
			Severity: "low",
			Message:  "record store at capacity, oldest records are being evicted",
			Details: map[string]any{
				"storedRecords": storedRecords,
				"cap":           MaxStoredRecords,
			},
			Timestamp: now,
		})
	}

	return alerts
}
