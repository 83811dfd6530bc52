package question

import (
	"context"
	"path"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/askdesk/askdesk/internal/db"
	domq "github.com/askdesk/askdesk/internal/domain/question"
)

// fakeStore is an in-memory stand-in for the Redis hash store.
type fakeStore struct {
	hashes map[string]map[string]string

	hsetErr  error
	scanErr  error
	multiErr error
	getErr   error
}

func newFakeStore() *fakeStore {
	return &fakeStore{hashes: make(map[string]map[string]string)}
}

func (f *fakeStore) HSet(_ context.Context, key string, fields map[string]string) error {
	if f.hsetErr != nil {
		return f.hsetErr
	}
	h, ok := f.hashes[key]
	if !ok {
		h = make(map[string]string, len(fields))
		f.hashes[key] = h
	}
	for k, v := range fields {
		h[k] = v
	}
	return nil
}

func (f *fakeStore) HGetAll(_ context.Context, key string) (map[string]string, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	h, ok := f.hashes[key]
	if !ok {
		return nil, db.ErrKeyNotFound
	}
	out := make(map[string]string, len(h))
	for k, v := range h {
		out[k] = v
	}
	return out, nil
}

func (f *fakeStore) HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error) {
	if f.multiErr != nil {
		return nil, f.multiErr
	}
	out := make([]map[string]string, len(keys))
	for i, key := range keys {
		m, err := f.HGetAll(ctx, key)
		if err != nil {
			m = map[string]string{}
		}
		out[i] = m
	}
	return out, nil
}

func (f *fakeStore) Del(_ context.Context, key string) error {
	delete(f.hashes, key)
	return nil
}

func (f *fakeStore) Exists(_ context.Context, key string) (bool, error) {
	_, ok := f.hashes[key]
	return ok, nil
}

func (f *fakeStore) Scan(_ context.Context, pattern string) ([]string, error) {
	if f.scanErr != nil {
		return nil, f.scanErr
	}
	// Deterministic order keeps assertions simple.
	var keys []string
	for k := range f.hashes {
		if ok, _ := path.Match(pattern, k); ok {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

var testEpoch = time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

func makeQuestion(t *testing.T, id string, opts ...func(*questionSpec)) *domq.Question {
	t.Helper()
	spec := &questionSpec{
		title:    "Question " + id,
		content:  "Content of question " + id,
		groupID:  "g1",
		authorID: "u1",
		status:   domq.StatusUnanswered,
		priority: domq.PriorityMedium,
		created:  testEpoch,
	}
	for _, o := range opts {
		o(spec)
	}
	q := domq.Reconstruct(
		id, spec.title, spec.content, spec.groupID, spec.authorID,
		spec.status, spec.priority, spec.tags, spec.answerCount,
		spec.created, spec.created, spec.resolvedAt, spec.vector,
	)
	return &q
}

type questionSpec struct {
	title       string
	content     string
	groupID     string
	authorID    string
	status      domq.Status
	priority    domq.Priority
	tags        []string
	answerCount int
	created     time.Time
	resolvedAt  *time.Time
	vector      []float32
}

func withTags(tags ...string) func(*questionSpec) {
	return func(s *questionSpec) { s.tags = tags }
}

func withStatus(st domq.Status) func(*questionSpec) {
	return func(s *questionSpec) { s.status = st }
}

func withAuthor(id string) func(*questionSpec) {
	return func(s *questionSpec) { s.authorID = id }
}

func withCreated(ts time.Time) func(*questionSpec) {
	return func(s *questionSpec) { s.created = ts }
}

func withVector(v []float32) func(*questionSpec) {
	return func(s *questionSpec) { s.vector = v }
}

func withResolvedAt(ts time.Time) func(*questionSpec) {
	return func(s *questionSpec) { s.resolvedAt = &ts }
}

func hasKeySuffix(store *fakeStore, id string) bool {
	for k := range store.hashes {
		if strings.HasSuffix(k, id) {
			return true
		}
	}
	return false
}
