package chi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	chirouter "github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/askdesk/askdesk/internal/domain"
	"github.com/askdesk/askdesk/internal/domain/question"
	"github.com/askdesk/askdesk/internal/domain/search/query"
	"github.com/askdesk/askdesk/internal/logger"
	"github.com/askdesk/askdesk/internal/metrics"
	autotaguc "github.com/askdesk/askdesk/internal/usecase/autotag"
	healthuc "github.com/askdesk/askdesk/internal/usecase/health"
	searchuc "github.com/askdesk/askdesk/internal/usecase/search"
	similaruc "github.com/askdesk/askdesk/internal/usecase/similar"
	suggestuc "github.com/askdesk/askdesk/internal/usecase/suggest"
)

// QuestionReader loads single questions for the similar-questions endpoint.
type QuestionReader interface {
	Get(ctx context.Context, id string) (question.Question, error)
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error) bool

// Server exposes the search module over HTTP.
type Server struct {
	search        *searchuc.Service
	similar       *similaruc.Service
	autotag       *autotaguc.Service
	suggest       *suggestuc.Service
	health        *healthuc.Service
	questions     QuestionReader
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	search *searchuc.Service,
	similar *similaruc.Service,
	autotag *autotaguc.Service,
	suggest *suggestuc.Service,
	health *healthuc.Service,
	questions QuestionReader,
	logger *zap.Logger,
) *Server {
	s := &Server{
		search:    search,
		similar:   similar,
		autotag:   autotag,
		suggest:   suggest,
		health:    health,
		questions: questions,
		logger:    logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrEmptyQuery, http.StatusBadRequest, codeValidationFailed),
		sentinelHandler(domain.ErrValidation, http.StatusBadRequest, codeValidationFailed),
		sentinelHandler(domain.ErrVectorDimMismatch, http.StatusBadRequest, codeValidationFailed),
		sentinelHandler(domain.ErrQuestionNotFound, http.StatusNotFound, codeQuestionNotFound),
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, codeQuestionNotFound),
		sentinelHandler(domain.ErrRateLimited, http.StatusTooManyRequests, codeRateLimited),
		sentinelHandler(domain.ErrEmbeddingProviderError, http.StatusBadGateway, codeEmbeddingProvider),
		sentinelHandler(domain.ErrTagProviderError, http.StatusBadGateway, codeTagProvider),
		timeoutHandler,
	}
	return s
}

// Router builds the chi router with middleware and all routes.
func (s *Server) Router(apiKeys []string) http.Handler {
	r := chirouter.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(RequestLoggerMiddleware(s.logger))
	r.Use(chiMiddleware.Recoverer)
	r.Use(metrics.Middleware())
	r.Use(BearerAuthMiddleware(apiKeys))

	r.Get("/health", s.Health)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chirouter.Router) {
		r.Get("/search", s.Search)
		r.Get("/search/suggestions", s.Suggestions)
		r.Get("/questions/{id}/similar", s.SimilarQuestions)
		r.Post("/questions/autotag", s.AutoTag)
	})

	return r
}

// Search handles GET /api/v1/search.
func (s *Server) Search(w http.ResponseWriter, r *http.Request) {
	q, err := queryFromRequest(r)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	page, err := s.search.Search(r.Context(), &q)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, pageToResponse(page))
}

// SimilarQuestions handles GET /api/v1/questions/{id}/similar.
func (s *Server) SimilarQuestions(w http.ResponseWriter, r *http.Request) {
	id := chirouter.URLParam(r, "id")

	q, err := s.questions.Get(r.Context(), id)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	limit := intParam(r, "limit", 0)

	matches, err := s.similar.FindSimilar(r.Context(), q.EmbeddingText(), id, limit)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, similarToResponse(matches))
}

// AutoTag handles POST /api/v1/questions/autotag.
func (s *Server) AutoTag(w http.ResponseWriter, r *http.Request) {
	var req autoTagRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	res, err := s.autotag.GenerateAutoTags(r.Context(), req.Title, req.Content)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, tagResultToResponse(res))
}

// Suggestions handles GET /api/v1/search/suggestions.
func (s *Server) Suggestions(w http.ResponseWriter, r *http.Request) {
	list, err := s.suggest.Suggestions(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, suggestionsResponse{Suggestions: list})
}

// Health handles GET /health.
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	status := http.StatusOK
	if report.Status == healthuc.Unhealthy {
		status = http.StatusServiceUnavailable
	}

	writeJSON(w, status, map[string]any{
		"status": report.Status,
		"checks": report.Checks,
	})
}

// queryFromRequest translates URL query parameters into a validated search query.
func queryFromRequest(r *http.Request) (query.Query, error) {
	params := r.URL.Query()

	filter := query.Filter{
		Status:   question.Status(params.Get("status")),
		Priority: question.Priority(params.Get("priority")),
		AuthorID: params.Get("author_id"),
		GroupID:  params.Get("group_id"),
	}
	if raw := params.Get("tags"); raw != "" {
		for _, t := range strings.Split(raw, ",") {
			if t = strings.TrimSpace(t); t != "" {
				filter.Tags = append(filter.Tags, t)
			}
		}
	}
	if t, ok := timeParam(params.Get("created_from")); ok {
		filter.CreatedFrom = &t
	}
	if t, ok := timeParam(params.Get("created_to")); ok {
		filter.CreatedTo = &t
	}

	return query.New(
		params.Get("q"),
		filter,
		intParam(r, "page", 0),
		intParam(r, "limit", 0),
		query.SortField(params.Get("sort")),
		query.Direction(params.Get("direction")),
	)
}

func intParam(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}

func timeParam(raw string) (time.Time, bool) {
	if raw == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, true
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// handleDomainError maps a domain error to an HTTP response via the ordered
// handler chain, falling back to 500.
func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	for _, h := range s.errorHandlers {
		if h(w, err) {
			return
		}
	}
	logger.FromContext(r.Context()).Error("Unhandled domain error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternal, "Internal server error")
}

// sentinelHandler matches one sentinel error and writes the mapped response.
func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, err.Error())
		return true
	}
}

// timeoutHandler maps deadline expiry on delegate calls to 504.
func timeoutHandler(w http.ResponseWriter, err error) bool {
	if !errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	writeError(w, http.StatusGatewayTimeout, codeInternal, "Upstream call timed out")
	return true
}
