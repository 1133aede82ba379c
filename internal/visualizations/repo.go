package visualizations

import "context"

// MaxStoredRecords caps the in-memory store; the oldest record is evicted
// FIFO when the cap is exceeded.
const MaxStoredRecords = 100

// Repo abstracts record storage. The only implementation today is the
// bounded in-memory store; the interface exists so a scaled-out deployment
// can swap in an external cache without touching the pipeline.
type Repo interface {
	Create(ctx context.Context, rec Record) error
	GetByID(ctx context.Context, id string) (Record, error)
	Count(ctx context.Context) (int, error)
	Clear(ctx context.Context) (int, error)
}
