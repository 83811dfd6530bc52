package question

import (
	"strings"
	"testing"
	"time"
)

func TestNew_Valid(t *testing.T) {
	q, err := New("q1", "How to rotate credentials?", "Full question body.", "grp-1", "usr-1", PriorityHigh, []string{"Security", "security", " ops "})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if q.Status() != StatusUnanswered {
		t.Errorf("new question status = %q, want unanswered", q.Status())
	}
	if q.Priority() != PriorityHigh {
		t.Errorf("priority = %q", q.Priority())
	}
	tags := q.Tags()
	if len(tags) != 2 || tags[0] != "security" || tags[1] != "ops" {
		t.Errorf("tags not normalized: %v", tags)
	}
	if q.CreatedAt().IsZero() || q.UpdatedAt().IsZero() {
		t.Error("timestamps not set")
	}
}

func TestNew_DefaultsPriority(t *testing.T) {
	q, err := New("q1", "title", "content", "grp-1", "usr-1", "", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Priority() != PriorityMedium {
		t.Errorf("default priority = %q, want medium", q.Priority())
	}
}

func TestNew_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		id       string
		title    string
		content  string
		groupID  string
		authorID string
		priority Priority
	}{
		{"empty id", "", "t", "c", "g", "a", PriorityLow},
		{"empty title", "q1", "   ", "c", "g", "a", PriorityLow},
		{"title too long", "q1", strings.Repeat("x", MaxTitleLength+1), "c", "g", "a", PriorityLow},
		{"empty content", "q1", "t", "", "g", "a", PriorityLow},
		{"content too long", "q1", "t", strings.Repeat("x", MaxContentLength+1), "g", "a", PriorityLow},
		{"empty group", "q1", "t", "c", "", "a", PriorityLow},
		{"empty author", "q1", "t", "c", "g", "", PriorityLow},
		{"bad priority", "q1", "t", "c", "g", "a", "urgent"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.id, tt.title, tt.content, tt.groupID, tt.authorID, tt.priority, nil)
			if err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestHasTag(t *testing.T) {
	q := Reconstruct("q1", "t", "c", "g", "a", StatusAnswered, PriorityLow,
		[]string{"authentication", "next.js"}, 0, time.Now(), time.Now(), nil, nil)

	if !q.HasTag("auth") {
		t.Error("expected substring tag match for 'auth'")
	}
	if !q.HasTag("AUTHENTICATION") {
		t.Error("expected case-insensitive tag match")
	}
	if q.HasTag("kubernetes") {
		t.Error("unexpected tag match")
	}
}

func TestEmbeddingText(t *testing.T) {
	q := Reconstruct("q1", "Title", "Body", "g", "a", StatusUnanswered, PriorityLow,
		nil, 0, time.Now(), time.Now(), nil, nil)
	if got := q.EmbeddingText(); got != "Title\nBody" {
		t.Errorf("EmbeddingText = %q", got)
	}
}
