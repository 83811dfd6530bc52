package suggest

import (
	"context"
	"fmt"
	"strings"

	"github.com/askdesk/askdesk/internal/domain/question"
	"github.com/askdesk/askdesk/internal/domain/search/query"
)

// MaxSuggestions caps the combined suggestion list.
const MaxSuggestions = 10

// Repository defines the storage contract for suggestion lookups.
type Repository interface {
	Find(ctx context.Context, filter query.Filter) ([]question.Question, error)
}

// Service offers search-box suggestions from existing titles and tags plus a
// static typo-correction table.
type Service struct {
	repo Repository
}

// New creates a suggestion service.
func New(repo Repository) *Service {
	return &Service{repo: repo}
}

// Suggestions returns up to MaxSuggestions entries for a partial query.
// Empty input yields an empty list, not an error. Matching titles come
// first, then matching tags, then typo corrections, de-duplicated in
// discovery order.
func (s *Service) Suggestions(ctx context.Context, partial string) ([]string, error) {
	partial = strings.TrimSpace(partial)
	if partial == "" {
		return []string{}, nil
	}
	lower := strings.ToLower(partial)

	questions, err := s.repo.Find(ctx, query.Filter{})
	if err != nil {
		return nil, fmt.Errorf("load suggestion corpus: %w", err)
	}

	seen := make(map[string]struct{})
	out := make([]string, 0, MaxSuggestions)

	add := func(v string) {
		k := strings.ToLower(v)
		if _, ok := seen[k]; ok {
			return
		}
		seen[k] = struct{}{}
		if len(out) < MaxSuggestions {
			out = append(out, v)
		}
	}

	for _, q := range questions {
		if strings.Contains(strings.ToLower(q.Title()), lower) {
			add(q.Title())
		}
	}
	for _, q := range questions {
		for _, tag := range q.Tags() {
			if strings.Contains(tag, lower) {
				add(tag)
			}
		}
	}

	// Corrections go last so the cap favors real portal content.
	for _, c := range corrections {
		if strings.Contains(lower, c.typo) {
			add(c.canonical)
		}
	}

	return out, nil
}
