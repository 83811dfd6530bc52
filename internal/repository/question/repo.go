package question

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/askdesk/askdesk/internal/db"
	"github.com/askdesk/askdesk/internal/domain"
	domq "github.com/askdesk/askdesk/internal/domain/question"
	"github.com/askdesk/askdesk/internal/domain/search/query"
)

var keyPrefix = domain.KeyPrefix + "question:"

// store is the consumer interface for questions (ISP).
type store interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error)
	Del(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	Scan(ctx context.Context, pattern string) ([]string, error)
}

// Repo stores questions as one hash per question.
type Repo struct {
	store store
}

// New creates a question repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// Save creates or updates a question.
func (r *Repo) Save(ctx context.Context, q *domq.Question) error {
	if err := r.store.HSet(ctx, questionKey(q.ID()), buildHashFields(q)); err != nil {
		return fmt.Errorf("hset %s: %w", q.ID(), err)
	}
	return nil
}

// Get returns a question by ID.
func (r *Repo) Get(ctx context.Context, id string) (domq.Question, error) {
	m, err := r.store.HGetAll(ctx, questionKey(id))
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return domq.Question{}, domain.ErrQuestionNotFound
		}
		return domq.Question{}, fmt.Errorf("hgetall %s: %w", id, err)
	}
	if len(m) == 0 {
		return domq.Question{}, domain.ErrQuestionNotFound
	}
	return parseHashFields(id, m), nil
}

// Delete removes a question.
func (r *Repo) Delete(ctx context.Context, id string) error {
	if err := r.store.Del(ctx, questionKey(id)); err != nil {
		return fmt.Errorf("del %s: %w", id, err)
	}
	return nil
}

// SetVector persists a computed embedding on an existing question.
func (r *Repo) SetVector(ctx context.Context, id string, vector []float32) error {
	key := questionKey(id)
	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return fmt.Errorf("exists %s: %w", id, err)
	}
	if !exists {
		return domain.ErrQuestionNotFound
	}
	if err := r.store.HSet(ctx, key, map[string]string{fieldVector: vectorToBytes(vector)}); err != nil {
		return fmt.Errorf("hset vector %s: %w", id, err)
	}
	return nil
}

// Find returns all questions matching the structured filters, ordered by
// creation time descending. The free-text term is matched by the caller.
func (r *Repo) Find(ctx context.Context, filter query.Filter) ([]domq.Question, error) {
	keys, err := r.store.Scan(ctx, keyPrefix+"*")
	if err != nil {
		return nil, fmt.Errorf("scan questions: %w", err)
	}
	if len(keys) == 0 {
		return nil, nil
	}

	maps, err := r.store.HGetAllMulti(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("load questions: %w", err)
	}

	questions := make([]domq.Question, 0, len(maps))
	for i, m := range maps {
		if len(m) == 0 {
			continue
		}
		q := parseHashFields(strings.TrimPrefix(keys[i], keyPrefix), m)
		if matchesFilter(&q, filter) {
			questions = append(questions, q)
		}
	}

	sort.SliceStable(questions, func(i, j int) bool {
		return questions[i].CreatedAt().After(questions[j].CreatedAt())
	})

	return questions, nil
}

// matchesFilter applies every supplied filter with logical AND.
func matchesFilter(q *domq.Question, f query.Filter) bool {
	if f.Status != "" && q.Status() != f.Status {
		return false
	}
	if f.Priority != "" && q.Priority() != f.Priority {
		return false
	}
	if f.AuthorID != "" && q.AuthorID() != f.AuthorID {
		return false
	}
	if f.GroupID != "" && q.GroupID() != f.GroupID {
		return false
	}
	if f.CreatedFrom != nil && q.CreatedAt().Before(*f.CreatedFrom) {
		return false
	}
	if f.CreatedTo != nil && q.CreatedAt().After(*f.CreatedTo) {
		return false
	}
	for _, tag := range f.Tags {
		if !q.HasTag(tag) {
			return false
		}
	}
	return true
}

func questionKey(id string) string {
	return keyPrefix + id
}
