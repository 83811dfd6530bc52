package question

import (
	"fmt"
	"strings"
	"time"
)

// Field length limits enforced at creation time.
const (
	MaxTitleLength   = 100
	MaxContentLength = 10000
	MaxTags          = 10
)

// Question is the question aggregate (immutable value object).
type Question struct {
	id          string
	title       string
	content     string
	groupID     string
	authorID    string
	status      Status
	priority    Priority
	tags        []string
	answerCount int
	createdAt   time.Time
	updatedAt   time.Time
	resolvedAt  *time.Time
	vector      []float32
}

// New validates and creates a Question. New questions start unanswered.
// Title: non-empty, max 100 chars. Content: non-empty, max 10000 chars.
func New(id, title, content, groupID, authorID string, priority Priority, tags []string) (Question, error) {
	if id == "" {
		return Question{}, fmt.Errorf("question ID is required")
	}
	if strings.TrimSpace(title) == "" {
		return Question{}, fmt.Errorf("title is required")
	}
	if len([]rune(title)) > MaxTitleLength {
		return Question{}, fmt.Errorf("title too long (max %d chars)", MaxTitleLength)
	}
	if strings.TrimSpace(content) == "" {
		return Question{}, fmt.Errorf("content is required")
	}
	if len([]rune(content)) > MaxContentLength {
		return Question{}, fmt.Errorf("content too long (max %d chars)", MaxContentLength)
	}
	if groupID == "" {
		return Question{}, fmt.Errorf("group ID is required")
	}
	if authorID == "" {
		return Question{}, fmt.Errorf("author ID is required")
	}
	if priority == "" {
		priority = PriorityMedium
	}
	if !priority.IsValid() {
		return Question{}, fmt.Errorf("invalid priority %q", priority)
	}
	if len(tags) > MaxTags {
		return Question{}, fmt.Errorf("too many tags (max %d)", MaxTags)
	}

	now := time.Now().UTC()
	return Question{
		id:        id,
		title:     title,
		content:   content,
		groupID:   groupID,
		authorID:  authorID,
		status:    StatusUnanswered,
		priority:  priority,
		tags:      normalizeTags(tags),
		createdAt: now,
		updatedAt: now,
	}, nil
}

// Reconstruct creates a Question without validation (storage hydration).
func Reconstruct(
	id, title, content, groupID, authorID string,
	status Status, priority Priority, tags []string, answerCount int,
	createdAt, updatedAt time.Time, resolvedAt *time.Time, vector []float32,
) Question {
	return Question{
		id:          id,
		title:       title,
		content:     content,
		groupID:     groupID,
		authorID:    authorID,
		status:      status,
		priority:    priority,
		tags:        tags,
		answerCount: answerCount,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
		resolvedAt:  resolvedAt,
		vector:      vector,
	}
}

// ID returns the question identifier.
func (q *Question) ID() string { return q.id }

// Title returns the question title.
func (q *Question) Title() string { return q.title }

// Content returns the question body.
func (q *Question) Content() string { return q.content }

// GroupID returns the owning group identifier.
func (q *Question) GroupID() string { return q.groupID }

// AuthorID returns the author identifier.
func (q *Question) AuthorID() string { return q.authorID }

// Status returns the lifecycle status.
func (q *Question) Status() Status { return q.status }

// Priority returns the triage priority.
func (q *Question) Priority() Priority { return q.priority }

// Tags returns the ordered tag list.
func (q *Question) Tags() []string { return q.tags }

// AnswerCount returns the number of answers posted so far.
func (q *Question) AnswerCount() int { return q.answerCount }

// CreatedAt returns the creation timestamp.
func (q *Question) CreatedAt() time.Time { return q.createdAt }

// UpdatedAt returns the last-modified timestamp.
func (q *Question) UpdatedAt() time.Time { return q.updatedAt }

// ResolvedAt returns the resolution timestamp (nil if unresolved).
func (q *Question) ResolvedAt() *time.Time { return q.resolvedAt }

// Vector returns the stored embedding (nil if not yet computed).
func (q *Question) Vector() []float32 { return q.vector }

// HasTag reports whether any tag contains the given term, case-insensitively.
func (q *Question) HasTag(term string) bool {
	term = strings.ToLower(term)
	for _, t := range q.tags {
		if strings.Contains(strings.ToLower(t), term) {
			return true
		}
	}
	return false
}

// EmbeddingText is the text a question is vectorized from.
func (q *Question) EmbeddingText() string {
	return q.title + "\n" + q.content
}

// normalizeTags lowercases and de-duplicates while preserving order.
func normalizeTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
