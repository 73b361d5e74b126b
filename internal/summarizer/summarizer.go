package summarizer

import (
	"context"
	"errors"

	"instagist/internal/domain"
)

// ErrEmptyInput is returned when there is nothing to summarize after
// normalization.
var ErrEmptyInput = errors.New("input is empty")

// Input describes the payload for a summary request.
type Input struct {
	// Text contains the plain text to summarize.
	Text string
	// Style selects the summary shape (bullet points or a paragraph).
	Style domain.Style
	// SourceURL is optional metadata that helps the model reference the origin.
	SourceURL string
}

// Summarizer produces a single summary for a given input text.
type Summarizer interface {
	Summarize(ctx context.Context, input Input) (string, error)
	// Name identifies the backend for logging, caching and stored summaries.
	Name() string
	// Model reports the model identifier the backend sends requests to.
	// Backends without a model (the extractive fallback) return "".
	Model() string
}
