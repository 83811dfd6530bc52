package question

import (
	"encoding/binary"
	"math"
	"strconv"
	"strings"
	"time"

	domq "github.com/askdesk/askdesk/internal/domain/question"
)

// Hash field names. The vector field is prefixed to keep it apart from
// regular attributes when inspecting keys by hand.
const (
	fieldTitle       = "title"
	fieldContent     = "content"
	fieldGroupID     = "group_id"
	fieldAuthorID    = "author_id"
	fieldStatus      = "status"
	fieldPriority    = "priority"
	fieldTags        = "tags"
	fieldAnswerCount = "answer_count"
	fieldCreatedAt   = "created_at"
	fieldUpdatedAt   = "updated_at"
	fieldResolvedAt  = "resolved_at"
	fieldVector      = "__vector"
)

// tagSeparator joins tags into a single hash field. The unit separator
// cannot occur in user-entered tags.
const tagSeparator = "\x1f"

// buildHashFields converts a domain Question into a flat map[string]string for HSET.
func buildHashFields(q *domq.Question) map[string]string {
	m := map[string]string{
		fieldTitle:       q.Title(),
		fieldContent:     q.Content(),
		fieldGroupID:     q.GroupID(),
		fieldAuthorID:    q.AuthorID(),
		fieldStatus:      string(q.Status()),
		fieldPriority:    string(q.Priority()),
		fieldTags:        strings.Join(q.Tags(), tagSeparator),
		fieldAnswerCount: strconv.Itoa(q.AnswerCount()),
		fieldCreatedAt:   q.CreatedAt().UTC().Format(time.RFC3339Nano),
		fieldUpdatedAt:   q.UpdatedAt().UTC().Format(time.RFC3339Nano),
	}
	if t := q.ResolvedAt(); t != nil {
		m[fieldResolvedAt] = t.UTC().Format(time.RFC3339Nano)
	}
	if v := q.Vector(); len(v) > 0 {
		m[fieldVector] = vectorToBytes(v)
	}
	return m
}

// parseHashFields converts a flat hash map back into a domain Question.
func parseHashFields(id string, m map[string]string) domq.Question {
	var tags []string
	if raw := m[fieldTags]; raw != "" {
		tags = strings.Split(raw, tagSeparator)
	}

	answerCount, _ := strconv.Atoi(m[fieldAnswerCount])

	createdAt := parseTime(m[fieldCreatedAt])
	updatedAt := parseTime(m[fieldUpdatedAt])

	var resolvedAt *time.Time
	if raw := m[fieldResolvedAt]; raw != "" {
		t := parseTime(raw)
		resolvedAt = &t
	}

	return domq.Reconstruct(
		id,
		m[fieldTitle],
		m[fieldContent],
		m[fieldGroupID],
		m[fieldAuthorID],
		domq.Status(m[fieldStatus]),
		domq.Priority(m[fieldPriority]),
		tags,
		answerCount,
		createdAt,
		updatedAt,
		resolvedAt,
		bytesToVector(m[fieldVector]),
	)
}

func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// vectorToBytes serializes []float32 to a binary string (4 bytes per float, little-endian).
func vectorToBytes(v []float32) string {
	buf := make([]byte, len(v)*4)
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return string(buf)
}

// bytesToVector deserializes a binary string back to []float32.
func bytesToVector(s string) []float32 {
	b := []byte(s)
	if len(b) == 0 || len(b)%4 != 0 {
		return nil
	}
	v := make([]float32, len(b)/4)
	for i := range v {
		v[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[i*4:]))
	}
	return v
}
