package similar

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/askdesk/askdesk/internal/domain"
	"github.com/askdesk/askdesk/internal/domain/question"
	"github.com/askdesk/askdesk/internal/domain/search/query"
	"github.com/askdesk/askdesk/internal/domain/search/result"
)

// Defaults applied when the caller passes zero values.
const (
	DefaultThreshold   = 0.70
	DefaultLimit       = 5
	DefaultConcurrency = 4
)

// Service finds questions semantically close to a free-text query.
type Service struct {
	repo        Repository
	embed       domain.Embedder
	threshold   float64
	concurrency int
	logger      *zap.Logger
}

// New creates a similarity service. threshold <= 0 and concurrency <= 0 fall
// back to the defaults.
func New(repo Repository, embed domain.Embedder, threshold float64, concurrency int, logger *zap.Logger) *Service {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		repo:        repo,
		embed:       embed,
		threshold:   threshold,
		concurrency: concurrency,
		logger:      logger,
	}
}

// FindSimilar embeds the query text, compares it against every candidate
// question by cosine similarity, and returns the top matches at or above the
// threshold, excluding excludeID. A candidate whose own embedding cannot be
// obtained scores 0 instead of failing the whole call.
func (s *Service) FindSimilar(
	ctx context.Context, text, excludeID string, limit int,
) ([]result.Similar, error) {
	if strings.TrimSpace(text) == "" {
		return nil, domain.ErrEmptyQuery
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	queryRes, err := s.embed.Embed(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("failed to find similar questions: %w", err)
	}
	queryVec := queryRes.Embedding

	candidates, err := s.repo.Find(ctx, query.Filter{})
	if err != nil {
		return nil, fmt.Errorf("failed to find similar questions: %w", err)
	}

	pool := make([]question.Question, 0, len(candidates))
	for _, c := range candidates {
		if c.ID() == excludeID {
			continue
		}
		pool = append(pool, c)
	}

	similarities := make([]float64, len(pool))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i := range pool {
		i := i
		g.Go(func() error {
			sim, err := s.candidateSimilarity(gctx, &pool[i], queryVec)
			if err != nil {
				return err
			}
			similarities[i] = sim
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to find similar questions: %w", err)
	}

	matches := make([]result.Similar, 0, len(pool))
	for i := range pool {
		if similarities[i] < s.threshold {
			continue
		}
		matches = append(matches, toSimilar(&pool[i], similarities[i]))
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Similarity > matches[j].Similarity
	})

	if len(matches) > limit {
		matches = matches[:limit]
	}
	return matches, nil
}

// candidateSimilarity scores one candidate against the query vector. It
// prefers the stored embedding and only calls the provider on a miss; a
// provider failure degrades the candidate to similarity 0. A dimension
// mismatch is a real data fault and aborts the operation.
func (s *Service) candidateSimilarity(
	ctx context.Context, c *question.Question, queryVec []float32,
) (float64, error) {
	vec := c.Vector()
	if len(vec) == 0 {
		res, err := s.embed.Embed(ctx, c.EmbeddingText())
		if err != nil {
			s.logger.Warn("Candidate embedding failed, scoring 0",
				zap.String("question_id", c.ID()), zap.Error(err))
			return 0, nil
		}
		vec = res.Embedding

		if err := s.repo.SetVector(ctx, c.ID(), vec); err != nil {
			s.logger.Warn("Failed to persist candidate embedding",
				zap.String("question_id", c.ID()), zap.Error(err))
		}
	}

	sim, err := domain.CosineSimilarity(queryVec, vec)
	if err != nil {
		return 0, fmt.Errorf("question %s: %w", c.ID(), err)
	}
	return sim, nil
}

func toSimilar(c *question.Question, similarity float64) result.Similar {
	return result.Similar{
		ID:          c.ID(),
		Title:       c.Title(),
		Content:     c.Content(),
		Status:      c.Status(),
		AnswerCount: c.AnswerCount(),
		CreatedAt:   c.CreatedAt(),
		Similarity:  similarity,
	}
}
