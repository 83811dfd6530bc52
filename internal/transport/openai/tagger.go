package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/askdesk/askdesk/internal/domain"
	"github.com/askdesk/askdesk/internal/metrics"
)

const tagSystemPrompt = `You label questions on an internal engineering Q&A portal.
Given a question title and body, respond with a JSON object of the form
{"tags": ["..."], "confidence": 0.0}
Rules:
- at most 5 tags
- lowercase technical terms only (frameworks, languages, protocols, tools)
- confidence is your overall certainty in [0, 1]
Respond with JSON only, no prose.`

// Tagger proposes tags for a question via an OpenAI-compatible chat API.
type Tagger struct {
	client  *openai.Client
	model   string
	timeout time.Duration
	logger  *zap.Logger
}

// TaggerConfig holds the tag-generation provider settings.
type TaggerConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
	Logger  *zap.Logger
}

// NewTagger creates an OpenAI-compatible tag-generation provider.
func NewTagger(cfg *TaggerConfig) *Tagger {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Tagger{
		client:  openai.NewClientWithConfig(clientCfg),
		model:   cfg.Model,
		timeout: cfg.Timeout,
		logger:  logger,
	}
}

// tagResponse matches the JSON structure the model is instructed to emit.
type tagResponse struct {
	Tags       []string `json:"tags"`
	Confidence float64  `json:"confidence"`
}

// GenerateTags implements domain.TagProvider.
// All failures are wrapped with domain.ErrTagProviderError.
func (t *Tagger) GenerateTags(ctx context.Context, title, content string) (domain.TagResult, error) {
	if t.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.timeout)
		defer cancel()
	}

	resp, err := t.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       t.model,
		Temperature: 0,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: tagSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: "Title: " + title + "\n\nBody:\n" + content},
		},
	})
	if err != nil {
		metrics.TaggingRequestsTotal.WithLabelValues(t.model, "error").Inc()
		return domain.TagResult{}, fmt.Errorf("chat completion: %w: %w", domain.ErrTagProviderError, err)
	}

	if len(resp.Choices) == 0 {
		metrics.TaggingRequestsTotal.WithLabelValues(t.model, "error").Inc()
		return domain.TagResult{}, fmt.Errorf("empty completion response: %w", domain.ErrTagProviderError)
	}

	raw := resp.Choices[0].Message.Content

	var parsed tagResponse
	if err := json.Unmarshal([]byte(extractJSONObject(raw)), &parsed); err != nil {
		metrics.TaggingRequestsTotal.WithLabelValues(t.model, "error").Inc()
		t.logger.Warn("Failed to parse tag response", zap.String("raw", raw), zap.Error(err))
		return domain.TagResult{}, fmt.Errorf("parse tag response: %w: %w", domain.ErrTagProviderError, err)
	}

	metrics.TaggingRequestsTotal.WithLabelValues(t.model, "success").Inc()

	return domain.TagResult{Tags: parsed.Tags, Confidence: parsed.Confidence}, nil
}

// extractJSONObject trims anything outside the outermost braces. Some models
// wrap JSON output in markdown fences despite JSON mode.
func extractJSONObject(s string) string {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end <= start {
		return s
	}
	return s[start : end+1]
}
