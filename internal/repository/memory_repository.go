package repository

import (
	"context"
	"slices"
	"sync"

	"github.com/iliyamo/portfolio-backend/internal/model"
)

// MemoryStatusRepo keeps status checks in process memory. Used with
// STORE_DRIVER=memory and in tests.
type MemoryStatusRepo struct {
	mu    sync.RWMutex
	items []model.StatusCheck
}

func NewMemoryStatusRepo() *MemoryStatusRepo { return &MemoryStatusRepo{} }

func (r *MemoryStatusRepo) Insert(ctx context.Context, s *model.StatusCheck) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	r.items = append(r.items, *s)
	r.mu.Unlock()
	return nil
}

// List returns records in insertion order.
func (r *MemoryStatusRepo) List(ctx context.Context, limit int) ([]model.StatusCheck, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	limit = clampLimit(limit, StatusListLimit)
	r.mu.RLock()
	defer r.mu.RUnlock()
	n := min(limit, len(r.items))
	return slices.Clone(r.items[:n]), nil
}

// MemoryContactRepo keeps contact submissions in process memory.
type MemoryContactRepo struct {
	mu    sync.RWMutex
	items []model.ContactSubmission
}

func NewMemoryContactRepo() *MemoryContactRepo { return &MemoryContactRepo{} }

func (r *MemoryContactRepo) Insert(ctx context.Context, s *model.ContactSubmission) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	r.items = append(r.items, *s)
	r.mu.Unlock()
	return nil
}

func (r *MemoryContactRepo) ListRecent(ctx context.Context, limit int) ([]model.ContactSubmission, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	limit = clampLimit(limit, ContactListLimit)
	r.mu.RLock()
	out := slices.Clone(r.items)
	r.mu.RUnlock()

	slices.SortStableFunc(out, func(a, b model.ContactSubmission) int {
		return b.SubmittedAt.Compare(a.SubmittedAt)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// NewMemoryStore returns a Store backed by process memory.
func NewMemoryStore() *Store {
	return &Store{
		Status:   NewMemoryStatusRepo(),
		Contacts: NewMemoryContactRepo(),
	}
}
