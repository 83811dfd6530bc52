package autotag

import (
	"context"
	"fmt"
	"strings"

	"github.com/askdesk/askdesk/internal/domain"
)

// Service proposes tags for a question draft via an LLM provider.
type Service struct {
	provider domain.TagProvider
}

// New creates an auto-tag service.
func New(provider domain.TagProvider) *Service {
	return &Service{provider: provider}
}

// GenerateAutoTags asks the provider for tags and normalizes the answer:
// tags are lowercased, de-duplicated, and capped at domain.MaxAutoTags
// regardless of what the provider returns; confidence is clamped to [0, 1].
func (s *Service) GenerateAutoTags(ctx context.Context, title, content string) (domain.TagResult, error) {
	if strings.TrimSpace(title) == "" || strings.TrimSpace(content) == "" {
		return domain.TagResult{}, fmt.Errorf("%w: title and content are required", domain.ErrValidation)
	}

	raw, err := s.provider.GenerateTags(ctx, title, content)
	if err != nil {
		return domain.TagResult{}, fmt.Errorf("failed to generate tags: %w", err)
	}

	return normalize(raw), nil
}

func normalize(raw domain.TagResult) domain.TagResult {
	seen := make(map[string]struct{}, len(raw.Tags))
	tags := make([]string, 0, domain.MaxAutoTags)
	for _, t := range raw.Tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		tags = append(tags, t)
		if len(tags) == domain.MaxAutoTags {
			break
		}
	}

	confidence := raw.Confidence
	if confidence < 0 {
		confidence = 0
	}
	if confidence > 1 {
		confidence = 1
	}

	return domain.TagResult{Tags: tags, Confidence: confidence}
}
