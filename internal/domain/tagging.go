package domain

import "context"

// MaxAutoTags caps how many tags a provider result may carry to the caller.
const MaxAutoTags = 5

// TagProvider proposes tags for a title/content pair via an external LLM.
type TagProvider interface {
	GenerateTags(ctx context.Context, title, content string) (TagResult, error)
}

// TagResult is the raw provider output before usecase-level normalization.
type TagResult struct {
	Tags       []string
	Confidence float64
}
