package chi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/askdesk/askdesk/internal/domain"
	"github.com/askdesk/askdesk/internal/domain/question"
	"github.com/askdesk/askdesk/internal/domain/search/query"
	autotaguc "github.com/askdesk/askdesk/internal/usecase/autotag"
	healthuc "github.com/askdesk/askdesk/internal/usecase/health"
	searchuc "github.com/askdesk/askdesk/internal/usecase/search"
	similaruc "github.com/askdesk/askdesk/internal/usecase/similar"
	suggestuc "github.com/askdesk/askdesk/internal/usecase/suggest"
)

var testEpoch = time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

type fixtureRepo struct {
	questions []question.Question
	err       error
}

func (f *fixtureRepo) Find(_ context.Context, _ query.Filter) ([]question.Question, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.questions, nil
}

func (f *fixtureRepo) SetVector(_ context.Context, _ string, _ []float32) error {
	return nil
}

func (f *fixtureRepo) Get(_ context.Context, id string) (question.Question, error) {
	for _, q := range f.questions {
		if q.ID() == id {
			return q, nil
		}
	}
	return question.Question{}, domain.ErrQuestionNotFound
}

type fixtureEmbedder struct {
	vec []float32
	err error
}

func (f *fixtureEmbedder) Embed(_ context.Context, _ string) (domain.EmbeddingResult, error) {
	if f.err != nil {
		return domain.EmbeddingResult{}, f.err
	}
	return domain.EmbeddingResult{Embedding: f.vec}, nil
}

type fixtureTagger struct {
	result domain.TagResult
	err    error
}

func (f *fixtureTagger) GenerateTags(_ context.Context, _, _ string) (domain.TagResult, error) {
	if f.err != nil {
		return domain.TagResult{}, f.err
	}
	return f.result, nil
}

type okPinger struct{}

func (okPinger) Ping(context.Context) error { return nil }

func seedQuestion(id, title, content string, tags []string, vector []float32) question.Question {
	return question.Reconstruct(
		id, title, content, "g1", "u1",
		question.StatusUnanswered, question.PriorityMedium,
		tags, 0, testEpoch, testEpoch, nil, vector,
	)
}

// newTestHandler wires a complete router over fixture data.
func newTestHandler(t *testing.T, repo *fixtureRepo, embed *fixtureEmbedder, tagger *fixtureTagger) http.Handler {
	t.Helper()
	logger := zap.NewNop()
	srv := NewServer(
		searchuc.New(repo, 0),
		similaruc.New(repo, embed, 0, 1, logger),
		autotaguc.New(tagger),
		suggestuc.New(repo),
		healthuc.New(okPinger{}, nil),
		repo,
		logger,
	)
	return srv.Router(nil)
}

func doJSON(t *testing.T, handler http.Handler, method, target, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	var decoded map[string]any
	if rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &decoded); err != nil {
			t.Fatalf("response is not JSON: %v\nbody: %s", err, rec.Body.String())
		}
	}
	return rec, decoded
}

func TestSearchEndpoint(t *testing.T) {
	repo := &fixtureRepo{questions: []question.Question{
		seedQuestion("q1", "Docker networking basics", "Bridge networks explained", []string{"docker"}, nil),
		seedQuestion("q2", "Kubernetes ingress", "Routing rules", []string{"kubernetes"}, nil),
	}}
	handler := newTestHandler(t, repo, &fixtureEmbedder{}, &fixtureTagger{})

	rec, body := doJSON(t, handler, http.MethodGet, "/api/v1/search?q=docker", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	results, _ := body["results"].([]any)
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}
	first := results[0].(map[string]any)
	q := first["question"].(map[string]any)
	if q["id"] != "q1" {
		t.Errorf("result id = %v, want q1", q["id"])
	}
	if first["score"].(float64) <= 0 {
		t.Errorf("score = %v, want > 0", first["score"])
	}
	if body["total"].(float64) != 1 {
		t.Errorf("total = %v, want 1", body["total"])
	}
}

func TestSearchEndpoint_EmptyQuery(t *testing.T) {
	handler := newTestHandler(t, &fixtureRepo{}, &fixtureEmbedder{}, &fixtureTagger{})

	rec, body := doJSON(t, handler, http.MethodGet, "/api/v1/search?q=", "")

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if body["code"] != codeValidationFailed {
		t.Errorf("code = %v, want %s", body["code"], codeValidationFailed)
	}
}

func TestSearchEndpoint_FilterParams(t *testing.T) {
	repo := &fixtureRepo{questions: []question.Question{
		seedQuestion("q1", "Docker question", "about docker", []string{"docker"}, nil),
	}}
	handler := newTestHandler(t, repo, &fixtureEmbedder{}, &fixtureTagger{})

	rec, _ := doJSON(t, handler, http.MethodGet,
		"/api/v1/search?q=docker&tags=docker&status=unanswered&page=1&limit=10&sort=createdAt&direction=asc", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
}

func TestSimilarEndpoint(t *testing.T) {
	repo := &fixtureRepo{questions: []question.Question{
		seedQuestion("q1", "Source", "question", nil, []float32{1, 0, 0}),
		seedQuestion("q2", "Close match", "content", nil, []float32{1, 0, 0}),
		seedQuestion("q3", "Unrelated", "content", nil, []float32{0, 0, 1}),
	}}
	embed := &fixtureEmbedder{vec: []float32{1, 0, 0}}
	handler := newTestHandler(t, repo, embed, &fixtureTagger{})

	rec, body := doJSON(t, handler, http.MethodGet, "/api/v1/questions/q1/similar", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	results, _ := body["results"].([]any)
	if len(results) != 1 {
		t.Fatalf("got %d similar, want only the close match", len(results))
	}
	first := results[0].(map[string]any)
	if first["id"] != "q2" {
		t.Errorf("id = %v, want q2", first["id"])
	}
	if first["similarity"].(float64) < 0.70 {
		t.Errorf("similarity below threshold: %v", first["similarity"])
	}
}

func TestSimilarEndpoint_UnknownQuestion(t *testing.T) {
	handler := newTestHandler(t, &fixtureRepo{}, &fixtureEmbedder{vec: []float32{1}}, &fixtureTagger{})

	rec, body := doJSON(t, handler, http.MethodGet, "/api/v1/questions/ghost/similar", "")

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if body["code"] != codeQuestionNotFound {
		t.Errorf("code = %v", body["code"])
	}
}

func TestSimilarEndpoint_ProviderDown(t *testing.T) {
	repo := &fixtureRepo{questions: []question.Question{
		seedQuestion("q1", "Source", "question", nil, nil),
	}}
	embed := &fixtureEmbedder{err: domain.ErrEmbeddingProviderError}
	handler := newTestHandler(t, repo, embed, &fixtureTagger{})

	rec, body := doJSON(t, handler, http.MethodGet, "/api/v1/questions/q1/similar", "")

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", rec.Code)
	}
	if body["code"] != codeEmbeddingProvider {
		t.Errorf("code = %v", body["code"])
	}
}

func TestAutoTagEndpoint(t *testing.T) {
	tagger := &fixtureTagger{result: domain.TagResult{
		Tags:       []string{"docker", "networking"},
		Confidence: 0.9,
	}}
	handler := newTestHandler(t, &fixtureRepo{}, &fixtureEmbedder{}, tagger)

	rec, body := doJSON(t, handler, http.MethodPost, "/api/v1/questions/autotag",
		`{"title":"Docker DNS","content":"Containers cannot resolve names"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	tags, _ := body["tags"].([]any)
	if len(tags) != 2 || tags[0] != "docker" {
		t.Errorf("tags = %v", tags)
	}
	if body["confidence"].(float64) != 0.9 {
		t.Errorf("confidence = %v", body["confidence"])
	}
}

func TestAutoTagEndpoint_Validation(t *testing.T) {
	handler := newTestHandler(t, &fixtureRepo{}, &fixtureEmbedder{}, &fixtureTagger{})

	rec, body := doJSON(t, handler, http.MethodPost, "/api/v1/questions/autotag",
		`{"title":"","content":"something"}`)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if body["code"] != codeValidationFailed {
		t.Errorf("code = %v", body["code"])
	}
}

func TestAutoTagEndpoint_BadBody(t *testing.T) {
	handler := newTestHandler(t, &fixtureRepo{}, &fixtureEmbedder{}, &fixtureTagger{})

	rec, body := doJSON(t, handler, http.MethodPost, "/api/v1/questions/autotag", `{not json`)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if body["code"] != codeBadRequest {
		t.Errorf("code = %v", body["code"])
	}
}

func TestAutoTagEndpoint_ProviderFailure(t *testing.T) {
	tagger := &fixtureTagger{err: domain.ErrTagProviderError}
	handler := newTestHandler(t, &fixtureRepo{}, &fixtureEmbedder{}, tagger)

	rec, body := doJSON(t, handler, http.MethodPost, "/api/v1/questions/autotag",
		`{"title":"t","content":"c"}`)

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", rec.Code)
	}
	if body["code"] != codeTagProvider {
		t.Errorf("code = %v", body["code"])
	}
}

func TestSuggestionsEndpoint(t *testing.T) {
	repo := &fixtureRepo{questions: []question.Question{
		seedQuestion("q1", "Docker networking basics", "content", []string{"docker"}, nil),
	}}
	handler := newTestHandler(t, repo, &fixtureEmbedder{}, &fixtureTagger{})

	rec, body := doJSON(t, handler, http.MethodGet, "/api/v1/search/suggestions?q=docker", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	suggestions, _ := body["suggestions"].([]any)
	if len(suggestions) != 2 {
		t.Errorf("suggestions = %v, want title and tag", suggestions)
	}
}

func TestSuggestionsEndpoint_EmptyQuery(t *testing.T) {
	handler := newTestHandler(t, &fixtureRepo{}, &fixtureEmbedder{}, &fixtureTagger{})

	rec, body := doJSON(t, handler, http.MethodGet, "/api/v1/search/suggestions", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 for empty input", rec.Code)
	}
	if suggestions, ok := body["suggestions"].([]any); !ok || len(suggestions) != 0 {
		t.Errorf("suggestions = %v, want empty array", body["suggestions"])
	}
}

func TestHealthEndpoint(t *testing.T) {
	handler := newTestHandler(t, &fixtureRepo{}, &fixtureEmbedder{}, &fixtureTagger{})

	rec, body := doJSON(t, handler, http.MethodGet, "/health", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if body["status"] != "ok" {
		t.Errorf("status = %v", body["status"])
	}
}
