package domain

import "errors"

var (
	// ErrNotFound signals a missing resource.
	ErrNotFound = errors.New("not found")
	// ErrQuestionNotFound signals a missing question.
	ErrQuestionNotFound = errors.New("question not found")
	// ErrValidation signals rejected input.
	ErrValidation = errors.New("validation failed")
	// ErrEmptyQuery signals an empty or whitespace-only search term.
	ErrEmptyQuery = errors.New("search query is required")
	// ErrVectorDimMismatch signals a vector dimension mismatch.
	ErrVectorDimMismatch = errors.New("vector dimension mismatch")
	// ErrEmbeddingProviderError signals an embedding provider failure.
	ErrEmbeddingProviderError = errors.New("embedding provider error")
	// ErrTagProviderError signals a tag-generation provider failure.
	ErrTagProviderError = errors.New("tag provider error")
	// ErrRateLimited signals a rate limit hit.
	ErrRateLimited = errors.New("rate limited")
)

// KeyPrefix namespaces every key the service writes to the store.
const KeyPrefix = "askdesk:"
