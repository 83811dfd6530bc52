package similar

import (
	"context"

	"github.com/askdesk/askdesk/internal/domain/question"
	"github.com/askdesk/askdesk/internal/domain/search/query"
)

// Repository defines the storage contract for similarity search.
type Repository interface {
	Find(ctx context.Context, filter query.Filter) ([]question.Question, error)
	// SetVector persists a freshly computed embedding so later calls can
	// skip the provider round-trip.
	SetVector(ctx context.Context, id string, vector []float32) error
}
