package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/askdesk/askdesk/internal/domain/question"
	"github.com/askdesk/askdesk/internal/domain/search/query"
	"github.com/askdesk/askdesk/internal/domain/search/result"
)

// DefaultSnippetWindow is the snippet length used when none is configured.
const DefaultSnippetWindow = 200

// Service executes free-text searches over the question store.
type Service struct {
	repo          Repository
	snippetWindow int
}

// New creates a search service. snippetWindow <= 0 falls back to the default.
func New(repo Repository, snippetWindow int) *Service {
	if snippetWindow <= 0 {
		snippetWindow = DefaultSnippetWindow
	}
	return &Service{repo: repo, snippetWindow: snippetWindow}
}

// Search retrieves candidates matching the query filters, narrows them by the
// free-text term, scores, sorts and paginates them, and decorates the
// returned page with highlights and snippets.
func (s *Service) Search(ctx context.Context, q *query.Query) (result.Page, error) {
	candidates, err := s.repo.Find(ctx, q.Filter())
	if err != nil {
		return result.Page{}, fmt.Errorf("find candidates: %w", err)
	}

	term := q.Term()

	scored := make([]scoredCandidate, 0, len(candidates))
	for _, c := range candidates {
		if !matchesTerm(&c, term) {
			continue
		}
		scored = append(scored, scoredCandidate{question: c, score: relevance(&c, term)})
	}

	sortCandidates(scored, q.SortField(), q.Direction())

	total := len(scored)
	page := paginate(scored, q.Offset(), q.Limit())

	terms := splitTerms(term)
	results := make([]result.Result, 0, len(page))
	for _, sc := range page {
		results = append(results, result.New(
			sc.question,
			sc.score,
			buildHighlights(&sc.question, terms),
			Snippet(sc.question.Content(), term, s.snippetWindow),
		))
	}

	return result.Page{
		Results: results,
		Total:   total,
		Page:    q.Page(),
		Limit:   q.Limit(),
	}, nil
}

// matchesTerm reports whether every word of the term occurs somewhere in the
// title, content, or tags, case-insensitively. Words may match different
// fields: "next.js authentication" matches a question with next.js in the
// title and an authentication tag.
func matchesTerm(c *question.Question, term string) bool {
	title := strings.ToLower(c.Title())
	content := strings.ToLower(c.Content())
	for _, tok := range tokens(term) {
		if strings.Contains(title, tok) || strings.Contains(content, tok) || c.HasTag(tok) {
			continue
		}
		return false
	}
	return true
}

// tokens lowercases the term and splits it on whitespace.
func tokens(term string) []string {
	return strings.Fields(strings.ToLower(term))
}

func paginate(scored []scoredCandidate, offset, limit int) []scoredCandidate {
	if offset >= len(scored) {
		return nil
	}
	end := offset + limit
	if end > len(scored) {
		end = len(scored)
	}
	return scored[offset:end]
}

// buildHighlights wraps matched terms in the title and content fields.
// Fields without a match produce no highlight record.
func buildHighlights(c *question.Question, terms []string) []result.Highlight {
	var highlights []result.Highlight

	if marked, changed := Highlight(c.Title(), terms); changed {
		highlights = append(highlights, result.Highlight{Field: "title", Fragments: []string{marked}})
	}
	if marked, changed := Highlight(c.Content(), terms); changed {
		highlights = append(highlights, result.Highlight{Field: "content", Fragments: []string{marked}})
	}

	return highlights
}
