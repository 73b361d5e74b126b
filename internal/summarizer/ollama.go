package summarizer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	ollamaGeneratePath = "/api/generate"

	// Local inference can be slow on first load, keep the client generous.
	ollamaDefaultTimeout = 120 * time.Second

	ollamaMaxErrorBodyBytes = 4 << 10
)

// OllamaSummarizer talks to a local Ollama server's generate API. It is the
// default backend: nothing leaves the machine.
type OllamaSummarizer struct {
	client  *http.Client
	baseURL string
	model   string
}

func NewOllamaSummarizer(baseURL, model string, timeout time.Duration) (*OllamaSummarizer, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("base URL is empty")
	}

	model = strings.TrimSpace(model)
	if model == "" {
		return nil, errors.New("model is empty")
	}

	if timeout <= 0 {
		timeout = ollamaDefaultTimeout
	}

	return &OllamaSummarizer{
		client:  &http.Client{Timeout: timeout},
		baseURL: baseURL,
		model:   model,
	}, nil
}

func (s *OllamaSummarizer) Name() string {
	return "ollama"
}

func (s *OllamaSummarizer) Model() string {
	return s.model
}

type ollamaGenerateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type ollamaGenerateResponse struct {
	Response string `json:"response"`
	Done     bool   `json:"done"`
	Error    string `json:"error,omitempty"`
}

func (s *OllamaSummarizer) Summarize(ctx context.Context, input Input) (string, error) {
	text := strings.TrimSpace(input.Text)
	if text == "" {
		return "", ErrEmptyInput
	}

	body, err := json.Marshal(ollamaGenerateRequest{
		Model:  s.model,
		Prompt: Prompt(input),
		Stream: false,
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	url := s.baseURL + ollamaGeneratePath
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, ollamaMaxErrorBodyBytes))
		return "", fmt.Errorf(
			"do request: unexpected status %d: %s",
			resp.StatusCode,
			strings.TrimSpace(string(detail)),
		)
	}

	var generated ollamaGenerateResponse
	if err = json.NewDecoder(resp.Body).Decode(&generated); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	if generated.Error != "" {
		return "", fmt.Errorf("ollama error: %s", generated.Error)
	}

	summary := strings.TrimSpace(generated.Response)
	if summary == "" {
		return "", errors.New("no summary generated")
	}

	return summary, nil
}
