package visualizations

import (
	"sync"
	"time"
)

// Health verdict thresholds. Both apply to process-lifetime figures: there
// is no windowing or decay, so an early failure spike drags the verdict
// until enough later volume dilutes it. Known limitation, kept on purpose.
const (
	healthySuccessRate = 0.95
	healthyAvgMillis   = 5000.0
)

// Stats tracks running counters for the ingestion pipeline. One instance is
// constructed per process and injected wherever it is needed; there is no
// package-level state.
type Stats struct {
	mu            sync.Mutex
	startedAt     time.Time
	total         uint64
	succeeded     uint64
	failed        uint64
	avgMillis     float64
	lastError     string
	lastErrorAt   time.Time
	lastSuccessAt time.Time
	now           func() time.Time
}

// NewStats constructs a Stats tracker; now may be nil outside tests.
func NewStats(now func() time.Time) *Stats {
	if now == nil {
		now = time.Now
	}
	return &Stats{startedAt: now(), now: now}
}

// RecordSuccess counts one successful delivery and folds its duration into
// the lifetime average.
func (s *Stats) RecordSuccess(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.total++
	s.succeeded++
	s.foldDuration(d)
	s.lastSuccessAt = s.now()
}

// RecordFailure counts one failed delivery.
func (s *Stats) RecordFailure(err error, d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.total++
	s.failed++
	s.foldDuration(d)
	if err != nil {
		s.lastError = err.Error()
		s.lastErrorAt = s.now()
	}
}

// foldDuration updates the unwindowed rolling average. Callers hold the lock.
func (s *Stats) foldDuration(d time.Duration) {
	ms := float64(d.Microseconds()) / 1000.0
	s.avgMillis += (ms - s.avgMillis) / float64(s.total)
}

// Snapshot is a point-in-time copy of the counters.
type Snapshot struct {
	StartedAt        time.Time `json:"startedAt"`
	UptimeSeconds    float64   `json:"uptimeSeconds"`
	Total            uint64    `json:"total"`
	Succeeded        uint64    `json:"succeeded"`
	Failed           uint64    `json:"failed"`
	SuccessRate      float64   `json:"successRate"`
	AvgProcessingMs  float64   `json:"avgProcessingMs"`
	LastError        string    `json:"lastError,omitempty"`
	LastErrorAt      time.Time `json:"lastErrorAt,omitzero"`
	LastSuccessAt    time.Time `json:"lastSuccessAt,omitzero"`
}

// Snapshot returns a copy of the current counters.
func (s *Stats) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := Snapshot{
		StartedAt:       s.startedAt,
		UptimeSeconds:   s.now().Sub(s.startedAt).Seconds(),
		Total:           s.total,
		Succeeded:       s.succeeded,
		Failed:          s.failed,
		SuccessRate:     1,
		AvgProcessingMs: s.avgMillis,
		LastError:       s.lastError,
		LastErrorAt:     s.lastErrorAt,
		LastSuccessAt:   s.lastSuccessAt,
	}
	if s.total > 0 {
		snap.SuccessRate = float64(s.succeeded) / float64(s.total)
	}
	return snap
}

// Healthy applies the lifetime verdict: success rate at or above 95% and an
// average processing time under five seconds.
func (snap Snapshot) Healthy() bool {
	return snap.SuccessRate >= healthySuccessRate && snap.AvgProcessingMs < healthyAvgMillis
}
