package visualizations

import (
	"errors"
	"testing"
	"time"
)

func TestStatsSnapshotCounters(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	s := NewStats(func() time.Time { return now })

	s.RecordSuccess(100 * time.Millisecond)
	s.RecordSuccess(300 * time.Millisecond)
	s.RecordFailure(errors.New("store unavailable"), 200*time.Millisecond)

	snap := s.Snapshot()
	if snap.Total != 3 || snap.Succeeded != 2 || snap.Failed != 1 {
		t.Fatalf("counters = %d/%d/%d, want 3/2/1", snap.Total, snap.Succeeded, snap.Failed)
	}
	if got, want := snap.SuccessRate, 2.0/3.0; got < want-1e-9 || got > want+1e-9 {
		t.Fatalf("SuccessRate = %v, want %v", got, want)
	}
	if got, want := snap.AvgProcessingMs, 200.0; got < want-1e-6 || got > want+1e-6 {
		t.Fatalf("AvgProcessingMs = %v, want %v", got, want)
	}
	if snap.LastError != "store unavailable" {
		t.Fatalf("LastError = %q", snap.LastError)
	}
}

func TestStatsEmptySnapshotIsHealthy(t *testing.T) {
	s := NewStats(nil)
	snap := s.Snapshot()
	if snap.SuccessRate != 1 {
		t.Fatalf("SuccessRate with no traffic = %v, want 1", snap.SuccessRate)
	}
	if !snap.Healthy() {
		t.Fatal("empty snapshot should be healthy")
	}
}

func TestHealthyVerdictThresholds(t *testing.T) {
	tests := []struct {
		name string
		snap Snapshot
		want bool
	}{
		{"at both limits", Snapshot{SuccessRate: 0.95, AvgProcessingMs: 4999.9}, true},
		{"rate too low", Snapshot{SuccessRate: 0.949, AvgProcessingMs: 100}, false},
		{"too slow", Snapshot{SuccessRate: 1, AvgProcessingMs: 5000}, false},
		{"perfect", Snapshot{SuccessRate: 1, AvgProcessingMs: 12}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.snap.Healthy(); got != tc.want {
				t.Fatalf("Healthy() = %v, want %v", got, tc.want)
			}
		})
	}
}
