package chi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/askdesk/askdesk/internal/domain"
	"github.com/askdesk/askdesk/internal/domain/question"
	"github.com/askdesk/askdesk/internal/domain/search/result"
)

// Error codes surfaced in JSON error bodies.
const (
	codeBadRequest        = "bad_request"
	codeValidationFailed  = "validation_failed"
	codeQuestionNotFound  = "question_not_found"
	codeEmbeddingProvider = "embedding_provider_error"
	codeTagProvider       = "tag_provider_error"
	codeRateLimited       = "rate_limited"
	codeInternal          = "internal_error"
)

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}

// --- Response DTOs ---

type questionDTO struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Content     string     `json:"content"`
	GroupID     string     `json:"group_id"`
	AuthorID    string     `json:"author_id"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	Tags        []string   `json:"tags"`
	AnswerCount int        `json:"answer_count"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	ResolvedAt  *time.Time `json:"resolved_at,omitempty"`
}

type highlightDTO struct {
	Field     string   `json:"field"`
	Fragments []string `json:"fragments"`
}

type searchResultDTO struct {
	Question   questionDTO    `json:"question"`
	Score      float64        `json:"score"`
	Highlights []highlightDTO `json:"highlights,omitempty"`
	Snippet    string         `json:"snippet"`
}

type searchResponse struct {
	Results []searchResultDTO `json:"results"`
	Total   int               `json:"total"`
	Page    int               `json:"page"`
	Limit   int               `json:"limit"`
}

type similarDTO struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	Status      string    `json:"status"`
	AnswerCount int       `json:"answer_count"`
	CreatedAt   time.Time `json:"created_at"`
	Similarity  float64   `json:"similarity"`
}

type similarResponse struct {
	Results []similarDTO `json:"results"`
}

type autoTagRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type autoTagResponse struct {
	Tags       []string `json:"tags"`
	Confidence float64  `json:"confidence"`
}

type suggestionsResponse struct {
	Suggestions []string `json:"suggestions"`
}

func questionToDTO(q *question.Question) questionDTO {
	tags := q.Tags()
	if tags == nil {
		tags = []string{}
	}
	return questionDTO{
		ID:          q.ID(),
		Title:       q.Title(),
		Content:     q.Content(),
		GroupID:     q.GroupID(),
		AuthorID:    q.AuthorID(),
		Status:      string(q.Status()),
		Priority:    string(q.Priority()),
		Tags:        tags,
		AnswerCount: q.AnswerCount(),
		CreatedAt:   q.CreatedAt(),
		UpdatedAt:   q.UpdatedAt(),
		ResolvedAt:  q.ResolvedAt(),
	}
}

func pageToResponse(page result.Page) searchResponse {
	items := make([]searchResultDTO, 0, len(page.Results))
	for i := range page.Results {
		r := &page.Results[i]
		q := r.Question()

		highlights := make([]highlightDTO, 0, len(r.Highlights()))
		for _, h := range r.Highlights() {
			highlights = append(highlights, highlightDTO{Field: h.Field, Fragments: h.Fragments})
		}

		items = append(items, searchResultDTO{
			Question:   questionToDTO(&q),
			Score:      r.Score(),
			Highlights: highlights,
			Snippet:    r.Snippet(),
		})
	}
	return searchResponse{
		Results: items,
		Total:   page.Total,
		Page:    page.Page,
		Limit:   page.Limit,
	}
}

func similarToResponse(matches []result.Similar) similarResponse {
	items := make([]similarDTO, 0, len(matches))
	for _, m := range matches {
		items = append(items, similarDTO{
			ID:          m.ID,
			Title:       m.Title,
			Content:     m.Content,
			Status:      string(m.Status),
			AnswerCount: m.AnswerCount,
			CreatedAt:   m.CreatedAt,
			Similarity:  m.Similarity,
		})
	}
	return similarResponse{Results: items}
}

func tagResultToResponse(res domain.TagResult) autoTagResponse {
	tags := res.Tags
	if tags == nil {
		tags = []string{}
	}
	return autoTagResponse{Tags: tags, Confidence: res.Confidence}
}
