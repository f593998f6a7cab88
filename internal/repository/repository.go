package repository

import (
	"context"

	"github.com/iliyamo/portfolio-backend/internal/model"
)

// Collection names shared by every backend.
const (
	StatusCollection  = "status_checks"
	ContactCollection = "contact_submissions"
)

// Listing caps.
const (
	StatusListLimit  = 1000
	ContactListLimit = 100
)

// StatusRepository persists status checks. List returns at most limit
// records in no particular order.
type StatusRepository interface {
	Insert(ctx context.Context, s *model.StatusCheck) error
	List(ctx context.Context, limit int) ([]model.StatusCheck, error)
}

// ContactRepository persists contact submissions. ListRecent returns at most
// limit records, most recent SubmittedAt first.
type ContactRepository interface {
	Insert(ctx context.Context, s *model.ContactSubmission) error
	ListRecent(ctx context.Context, limit int) ([]model.ContactSubmission, error)
}

// Store bundles the two collections behind one handle so the process can
// open it once at startup and release it on shutdown.
type Store struct {
	Status   StatusRepository
	Contacts ContactRepository
	close    func(ctx context.Context) error
}

// Close releases the underlying connection, if any.
func (s *Store) Close(ctx context.Context) error {
	if s == nil || s.close == nil {
		return nil
	}
	return s.close(ctx)
}

func clampLimit(limit, max int) int {
	if limit <= 0 || limit > max {
		return max
	}
	return limit
}
