package summarizer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	geminiDefaultBaseURL = "https://generativelanguage.googleapis.com"
	geminiEndpointFormat = "/v1beta/models/%s:generateContent"
	geminiDefaultTimeout = 60 * time.Second

	geminiMaxErrorBodyBytes = 4 << 10
)

// GeminiSummarizer calls the Google Generative Language API.
type GeminiSummarizer struct {
	client *http.Client
	url    string
	apiKey string
	model  string
}

func NewGeminiSummarizer(apiKey string, model string, timeout time.Duration) (*GeminiSummarizer, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("API key is empty")
	}

	model = strings.TrimSpace(model)
	if model == "" {
		return nil, errors.New("model is empty")
	}

	if timeout <= 0 {
		timeout = geminiDefaultTimeout
	}

	endpoint := geminiDefaultBaseURL + fmt.Sprintf(geminiEndpointFormat, url.PathEscape(model))

	return &GeminiSummarizer{
		client: &http.Client{Timeout: timeout},
		url:    endpoint,
		apiKey: apiKey,
		model:  model,
	}, nil
}

func (s *GeminiSummarizer) Name() string {
	return "gemini"
}

func (s *GeminiSummarizer) Model() string {
	return s.model
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiGenerateRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiGenerateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

func (s *GeminiSummarizer) Summarize(ctx context.Context, input Input) (string, error) {
	text := strings.TrimSpace(input.Text)
	if text == "" {
		return "", ErrEmptyInput
	}

	body, err := json.Marshal(geminiGenerateRequest{
		Contents: []geminiContent{
			{Role: "user", Parts: []geminiPart{{Text: Prompt(input)}}},
		},
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, geminiMaxErrorBodyBytes))
		return "", fmt.Errorf(
			"do request: unexpected status %d: %s",
			resp.StatusCode,
			strings.TrimSpace(string(detail)),
		)
	}

	var generated geminiGenerateResponse
	if err = json.NewDecoder(resp.Body).Decode(&generated); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	if len(generated.Candidates) == 0 {
		return "", errors.New("no candidates in response")
	}

	var b strings.Builder
	for _, part := range generated.Candidates[0].Content.Parts {
		b.WriteString(part.Text)
	}

	summary := strings.TrimSpace(b.String())
	if summary == "" {
		return "", errors.New("no summary generated")
	}

	return summary, nil
}
