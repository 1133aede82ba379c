package visualizations

import (
	"context"
	"sync"
)

// MemoryRepo is the bounded in-memory implementation of Repo. Everything it
// holds is lost on restart; that is a documented limitation of this
// service, not an accident.
type MemoryRepo struct {
	mu      sync.RWMutex
	cap     int
	records []Record
}

// NewMemoryRepo constructs a MemoryRepo with the standard cap.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{cap: MaxStoredRecords}
}

// Create appends rec, evicting the oldest record when the cap is exceeded.
func (r *MemoryRepo) Create(ctx context.Context, rec Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, rec)
	if len(r.records) > r.cap {
		r.records = r.records[1:]
	}
	return nil
}

// GetByID returns the stored record with the given id.
func (r *MemoryRepo) GetByID(ctx context.Context, id string) (Record, error) {
	if err := ctx.Err(); err != nil {
		return Record{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.records {
		if r.records[i].ID == id {
			return r.records[i], nil
		}
	}
	return Record{}, ErrNotFound
}

// Count reports the number of stored records.
func (r *MemoryRepo) Count(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.records), nil
}

// Clear drops all stored records and reports how many were removed. This
// backs the dev-only clear-all route.
func (r *MemoryRepo) Clear(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	n := len(r.records)
	r.records = nil
	return n, nil
}
