package search

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/askdesk/askdesk/internal/domain/question"
	"github.com/askdesk/askdesk/internal/domain/search/query"
)

// mockRepo implements the Repository consumer interface for tests.
type mockRepo struct {
	questions  []question.Question
	err        error
	lastFilter query.Filter
}

func (m *mockRepo) Find(_ context.Context, filter query.Filter) ([]question.Question, error) {
	m.lastFilter = filter
	return m.questions, m.err
}

var testEpoch = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

// makeQuestion builds a deterministic candidate; age shifts timestamps so
// creation order is controllable.
func makeQuestion(id, title, content string, tags []string, age time.Duration) question.Question {
	created := testEpoch.Add(-age)
	return question.Reconstruct(
		id, title, content, "grp-1", "usr-1",
		question.StatusUnanswered, question.PriorityMedium,
		tags, 0, created, created, nil, nil,
	)
}

func makeQuery(t *testing.T, term string, page, limit int, field query.SortField, dir query.Direction) query.Query {
	t.Helper()
	q, err := query.New(term, query.Filter{}, page, limit, field, dir)
	if err != nil {
		t.Fatalf("query.New: %v", err)
	}
	return q
}

// corpusOf builds n questions all matching "docker", oldest last.
func corpusOf(n int) []question.Question {
	out := make([]question.Question, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, makeQuestion(
			fmt.Sprintf("q%d", i),
			fmt.Sprintf("Docker question %02d", i),
			"Some docker content.",
			nil,
			time.Duration(i)*time.Hour,
		))
	}
	return out
}
