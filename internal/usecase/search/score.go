package search

import (
	"sort"
	"strings"

	"github.com/askdesk/askdesk/internal/domain/question"
	"github.com/askdesk/askdesk/internal/domain/search/query"
)

// Field-match weights. The sum is clamped to 1.0.
const (
	titleWeight     = 0.8
	contentWeight   = 0.6
	tagWeight       = 0.7
	exactTitleBonus = 0.2
)

type scoredCandidate struct {
	question question.Question
	score    float64
}

// relevance computes the heuristic match score in [0, 1]: one title, one
// content, and one tag contribution regardless of how many words hit, plus a
// bonus for an exact title match.
func relevance(c *question.Question, term string) float64 {
	title := strings.ToLower(c.Title())
	content := strings.ToLower(c.Content())

	var inTitle, inContent, inTag bool
	for _, tok := range tokens(term) {
		inTitle = inTitle || strings.Contains(title, tok)
		inContent = inContent || strings.Contains(content, tok)
		inTag = inTag || c.HasTag(tok)
	}

	var score float64
	if inTitle {
		score += titleWeight
	}
	if inContent {
		score += contentWeight
	}
	if inTag {
		score += tagWeight
	}
	if score > 1 {
		score = 1
	}

	if title == strings.ToLower(strings.TrimSpace(term)) {
		score += exactTitleBonus
		if score > 1 {
			score = 1
		}
	}

	return score
}

// sortCandidates orders candidates by the requested field and direction.
// Ties keep the incoming candidate order.
func sortCandidates(scored []scoredCandidate, field query.SortField, dir query.Direction) {
	less := lessFunc(field)
	if less == nil {
		return
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if dir == query.Asc {
			return less(&scored[i], &scored[j])
		}
		return less(&scored[j], &scored[i])
	})
}

// lessFunc returns the ascending comparison for a sort field.
func lessFunc(field query.SortField) func(a, b *scoredCandidate) bool {
	switch field {
	case query.SortRelevance:
		return func(a, b *scoredCandidate) bool { return a.score < b.score }
	case query.SortCreatedAt:
		return func(a, b *scoredCandidate) bool {
			return a.question.CreatedAt().Before(b.question.CreatedAt())
		}
	case query.SortUpdatedAt:
		return func(a, b *scoredCandidate) bool {
			return a.question.UpdatedAt().Before(b.question.UpdatedAt())
		}
	case query.SortPriority:
		return func(a, b *scoredCandidate) bool {
			return a.question.Priority().Ordinal() < b.question.Priority().Ordinal()
		}
	case query.SortStatus:
		return func(a, b *scoredCandidate) bool {
			return a.question.Status() < b.question.Status()
		}
	}
	return nil
}
