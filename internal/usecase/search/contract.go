package search

import (
	"context"

	"github.com/askdesk/askdesk/internal/domain/question"
	"github.com/askdesk/askdesk/internal/domain/search/query"
)

// Repository defines the storage contract for search operations.
// Find applies the structured filters; free-text matching happens here.
type Repository interface {
	Find(ctx context.Context, filter query.Filter) ([]question.Question, error)
}
