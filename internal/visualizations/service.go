package visualizations

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"

	"spaik-backend/internal/shared/metrics"
	"spaik-backend/internal/shared/telemetry"
)

const (
	defaultProcessTimeout = 30 * time.Second
	defaultRetryAttempts  = 3
)

// IngestInput carries one webhook delivery through the pipeline.
type IngestInput struct {
	Body        []byte
	ContentType string
	ClientIP    string
	UserAgent   string
	RequestID   string
}

// Service orchestrates the ingestion pipeline: parse, derive metrics,
// assign identity, append to the store. Structural and validation failures
// are terminal; only post-validation processing failures are retried.
type Service struct {
	Repo    Repo
	Stats   *Stats
	Timeout time.Duration

	// Attempts and Backoff tune the retry wrapper; zero values pick the
	// defaults (3 attempts, 2^attempt seconds).
	Attempts int
	Backoff  func(attempt int) time.Duration

	now func() time.Time
}

// NewService constructs a Service with default retry behavior.
func NewService(repo Repo, stats *Stats) *Service {
	return &Service{Repo: repo, Stats: stats}
}

// Process runs the full pipeline for one delivery and returns the stored
// record. The configured timeout bounds the whole run; an expired deadline
// surfaces as context.DeadlineExceeded for the handler to map to 408.
func (s *Service) Process(ctx context.Context, in IngestInput) (Record, error) {
	start := time.Now()
	metrics.IncReceived()

	ctx, cancel := context.WithTimeout(ctx, s.timeout())
	defer cancel()

	rec, err := s.process(ctx, in)
	elapsed := time.Since(start)
	metrics.ObserveProcessingMs(float64(elapsed.Microseconds()) / 1000.0)

	if err != nil {
		metrics.IncFailed()
		s.Stats.RecordFailure(err, elapsed)
		telemetry.Error("webhook.process.failed", map[string]any{
			"request_id":  in.RequestID,
			"client_ip":   in.ClientIP,
			"error":       err.Error(),
			"duration_ms": float64(elapsed.Microseconds()) / 1000.0,
		})
		return Record{}, err
	}

	metrics.IncProcessed()
	s.Stats.RecordSuccess(elapsed)
	telemetry.Info("webhook.process.ok", map[string]any{
		"request_id":    in.RequestID,
		"record_id":     rec.ID,
		"solution_type": string(rec.Solution.Type),
		"duration_ms":   float64(elapsed.Microseconds()) / 1000.0,
	})
	return rec, nil
}

func (s *Service) process(ctx context.Context, in IngestInput) (Record, error) {
	if !supportedContentType(in.ContentType) {
		return Record{}, fmt.Errorf("%w: %s", ErrUnsupportedContentType, in.ContentType)
	}

	// Caller-input problems are terminal: retrying a malformed payload
	// three times is wasted work.
	rec, err := ParsePayload(in.Body, in.ContentType)
	if err != nil {
		return Record{}, err
	}

	err = s.withRetry(ctx, in.RequestID, func() error {
		rec.Metrics = CalculateMetrics(&rec)
		now := s.timeNow()
		rec.ID = newRecordID(now)
		rec.CreatedAt = now.UTC()
		return s.Repo.Create(ctx, rec)
	})
	if err != nil {
		return Record{}, err
	}
	return rec, nil
}

// withRetry runs op up to the configured attempts with exponential backoff,
// aggregating every attempt's error into the final failure.
func (s *Service) withRetry(ctx context.Context, requestID string, op func() error) error {
	attempts := s.Attempts
	if attempts <= 0 {
		attempts = defaultRetryAttempts
	}
	backoff := s.Backoff
	if backoff == nil {
		backoff = func(attempt int) time.Duration {
			return time.Duration(1<<uint(attempt)) * time.Second
		}
	}

	var attemptErrs []string
	for attempt := 1; attempt <= attempts; attempt++ {
		err := op()
		if err == nil {
			return nil
		}
		attemptErrs = append(attemptErrs, fmt.Sprintf("attempt %d: %v", attempt, err))
		if attempt == attempts {
			break
		}
		telemetry.Warn("webhook.process.retry", map[string]any{
			"request_id": requestID,
			"attempt":    attempt,
			"error":      err.Error(),
		})
		select {
		case <-time.After(backoff(attempt)):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return eris.Errorf("processing failed after %d attempts: %s", attempts, strings.Join(attemptErrs, "; "))
}

// Get returns a stored record by id.
func (s *Service) Get(ctx context.Context, id string) (Record, error) {
	return s.Repo.GetByID(ctx, id)
}

// StoredCount reports how many records the store currently holds.
func (s *Service) StoredCount(ctx context.Context) int {
	n, err := s.Repo.Count(ctx)
	if err != nil {
		return 0
	}
	return n
}

// ClearAll empties the store. Dev-only affordance.
func (s *Service) ClearAll(ctx context.Context) (int, error) {
	return s.Repo.Clear(ctx)
}

// Alerts evaluates the currently active operational alerts.
func (s *Service) Alerts(ctx context.Context) []Alert {
	return EvaluateAlerts(s.Stats.Snapshot(), s.StoredCount(ctx), s.timeNow().UTC())
}

func (s *Service) timeout() time.Duration {
	if s.Timeout > 0 {
		return s.Timeout
	}
	return defaultProcessTimeout
}

func (s *Service) timeNow() time.Time {
	if s.now != nil {
		return s.now()
	}
	return time.Now()
}

// newRecordID builds the public record id: vis_<unix-ms>_<random>.
func newRecordID(now time.Time) string {
	random := strings.SplitN(uuid.NewString(), "-", 2)[0]
	return fmt.Sprintf("vis_%d_%s", now.UnixMilli(), random)
}

// IsTerminal reports whether err is a caller-input problem that must not be
// retried or counted as a transient processing failure.
func IsTerminal(err error) bool {
	var vErr *ValidationError
	var pErr *ParseError
	return errors.As(err, &vErr) || errors.As(err, &pErr) || errors.Is(err, ErrUnsupportedContentType)
}
