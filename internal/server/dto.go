package server

import (
	"time"

	"instagist/internal/domain"
	"instagist/internal/gist"
)

type summarizeRequest struct {
	Text       string `json:"text"`
	Style      string `json:"style"`
	Regenerate bool   `json:"regenerate"`
}

type SourceResponse struct {
	Kind string `json:"kind"`
	Name string `json:"name,omitempty"`
	URL  string `json:"url,omitempty"`
}

type SummarizeResponse struct {
	ID         int64          `json:"id,omitempty"`
	Summary    string         `json:"summary"`
	Style      string         `json:"style"`
	Provider   string         `json:"provider"`
	Model      string         `json:"model,omitempty"`
	CacheHit   bool           `json:"cache_hit"`
	InputChars int64          `json:"input_chars"`
	Source     SourceResponse `json:"source"`
	CreatedAt  string         `json:"created_at"`
}

type SummaryResponse struct {
	ID         int64  `json:"id"`
	CreatedAt  string `json:"created_at"`
	Style      string `json:"style"`
	SourceKind string `json:"source_kind"`
	SourceName string `json:"source_name,omitempty"`
	Provider   string `json:"provider,omitempty"`
	Model      string `json:"model,omitempty"`
	InputChars int64  `json:"input_chars"`
	Summary    string `json:"summary"`
}

type SummariesResponse struct {
	Items  []SummaryResponse `json:"items"`
	Total  int64             `json:"total"`
	Limit  int64             `json:"limit"`
	Offset int64             `json:"offset"`
}

func toSummaryResponse(s domain.Summary) SummaryResponse {
	return SummaryResponse{
		ID:         s.ID,
		CreatedAt:  s.CreatedAt.UTC().Format(time.RFC3339),
		Style:      string(s.Style),
		SourceKind: string(s.SourceKind),
		SourceName: s.SourceName,
		Provider:   s.Provider,
		Model:      s.Model,
		InputChars: s.InputChars,
		Summary:    s.Text,
	}
}

func toSummarizeResponse(
	stored *domain.Summary,
	doc domain.Document,
	result gist.Result,
) SummarizeResponse {
	return SummarizeResponse{
		ID:         stored.ID,
		Summary:    result.Text,
		Style:      string(stored.Style),
		Provider:   result.Provider,
		Model:      result.Model,
		CacheHit:   result.CacheHit,
		InputChars: stored.InputChars,
		Source: SourceResponse{
			Kind: string(doc.SourceKind),
			Name: doc.SourceName,
			URL:  doc.SourceURL,
		},
		CreatedAt: stored.CreatedAt.UTC().Format(time.RFC3339),
	}
}
