package store

import (
	"context"
	"errors"

	"github.com/pdelacruz/newscred/internal/model"
)

// ErrNotFound indicates no record exists for the requested id
var ErrNotFound = errors.New("analysis record not found")

// Store persists analysis verdicts. Saving is fire-and-forget from the
// pipeline's point of view; a failed save never fails an analysis.
type Store interface {
	// Save persists a verdict and returns its record id
	Save(ctx context.Context, verdict *model.CredibilityVerdict, requesterID string) (string, error)

	// Get loads a verdict by record id
	Get(ctx context.Context, id string) (*model.CredibilityVerdict, error)

	// List returns the most recent verdicts for a requester, newest first.
	// An empty requesterID lists across all requesters.
	List(ctx context.Context, requesterID string, limit int) ([]Record, error)
}

// Record is one persisted analysis
type Record struct {
	ID          string                    `json:"id"`
	RequesterID string                    `json:"requester_id,omitempty"`
	Verdict     *model.CredibilityVerdict `json:"verdict"`
}

// Noop discards every save. It stands in when persistence is disabled.
type Noop struct{}

// NewNoop creates the no-op store
func NewNoop() *Noop {
	return &Noop{}
}

// Save discards the verdict
func (Noop) Save(ctx context.Context, verdict *model.CredibilityVerdict, requesterID string) (string, error) {
	return "", nil
}

// Get always reports not found
func (Noop) Get(ctx context.Context, id string) (*model.CredibilityVerdict, error) {
	return nil, ErrNotFound
}

// List always returns nothing
func (Noop) List(ctx context.Context, requesterID string, limit int) ([]Record, error) {
	return nil, nil
}
