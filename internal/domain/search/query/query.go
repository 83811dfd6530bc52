package query

import (
	"fmt"
	"strings"
	"time"

	"github.com/askdesk/askdesk/internal/domain"
	"github.com/askdesk/askdesk/internal/domain/question"
)

// Search parameter limits.
const (
	MaxTermLength = 1024
	DefaultLimit  = 20
	MaxLimit      = 100
)

// Filter narrows the candidate set. Zero values mean "not filtered".
// All supplied filters combine with logical AND.
type Filter struct {
	Tags        []string
	Status      question.Status
	Priority    question.Priority
	AuthorID    string
	GroupID     string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// Query is a validated free-text search request.
type Query struct {
	term      string
	filter    Filter
	page      int
	limit     int
	sortField SortField
	direction Direction
}

// New validates and normalizes search parameters.
// The term is required and trimmed. Defaults: page=1, limit=20,
// sort=relevance, direction=desc.
func New(term string, filter Filter, page, limit int, sortField SortField, direction Direction) (Query, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return Query{}, domain.ErrEmptyQuery
	}
	if len(term) > MaxTermLength {
		return Query{}, fmt.Errorf("%w: term too long (max %d chars)", domain.ErrValidation, MaxTermLength)
	}
	if filter.Status != "" && !filter.Status.IsValid() {
		return Query{}, fmt.Errorf("%w: invalid status %q", domain.ErrValidation, filter.Status)
	}
	if filter.Priority != "" && !filter.Priority.IsValid() {
		return Query{}, fmt.Errorf("%w: invalid priority %q", domain.ErrValidation, filter.Priority)
	}
	if filter.CreatedFrom != nil && filter.CreatedTo != nil && filter.CreatedTo.Before(*filter.CreatedFrom) {
		return Query{}, fmt.Errorf("%w: created_to precedes created_from", domain.ErrValidation)
	}
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	if sortField == "" {
		sortField = SortRelevance
	}
	if !sortField.IsValid() {
		return Query{}, fmt.Errorf("%w: invalid sort field %q", domain.ErrValidation, sortField)
	}
	if direction == "" {
		direction = Desc
	}
	if !direction.IsValid() {
		return Query{}, fmt.Errorf("%w: invalid sort direction %q", domain.ErrValidation, direction)
	}

	return Query{
		term:      term,
		filter:    filter,
		page:      page,
		limit:     limit,
		sortField: sortField,
		direction: direction,
	}, nil
}

// Term returns the trimmed free-text search term.
func (q *Query) Term() string { return q.term }

// Filter returns the structured narrowing filters.
func (q *Query) Filter() Filter { return q.filter }

// Page returns the 1-based page number.
func (q *Query) Page() int { return q.page }

// Limit returns the page size.
func (q *Query) Limit() int { return q.limit }

// SortField returns the result ordering key.
func (q *Query) SortField() SortField { return q.sortField }

// Direction returns the sort direction.
func (q *Query) Direction() Direction { return q.direction }

// Offset returns the number of results to skip for the requested page.
func (q *Query) Offset() int { return (q.page - 1) * q.limit }
