package result

import (
	"time"

	"github.com/askdesk/askdesk/internal/domain/question"
)

// Highlight carries marked-up fragments for a single matched field.
type Highlight struct {
	Field     string
	Fragments []string
}

// Result is a single search hit.
type Result struct {
	question   question.Question
	score      float64
	highlights []Highlight
	snippet    string
}

// New creates a search result with the score clamped to [0, 1].
func New(q question.Question, score float64, highlights []Highlight, snippet string) Result {
	if score < 0 {
		score = 0
	}
	if score > 1 {
		score = 1
	}
	return Result{question: q, score: score, highlights: highlights, snippet: snippet}
}

// Question returns the matched question.
func (r *Result) Question() question.Question { return r.question }

// Score returns the relevance score in [0, 1].
func (r *Result) Score() float64 { return r.score }

// Highlights returns the per-field marked-up fragments.
func (r *Result) Highlights() []Highlight { return r.highlights }

// Snippet returns the bounded content excerpt.
func (r *Result) Snippet() string { return r.snippet }

// Page is one page of search results plus pagination facts.
type Page struct {
	Results []Result
	Total   int
	Page    int
	Limit   int
}

// Similar is a question summary paired with a cosine similarity score.
type Similar struct {
	ID          string
	Title       string
	Content     string
	Status      question.Status
	AnswerCount int
	CreatedAt   time.Time
	Similarity  float64
}
