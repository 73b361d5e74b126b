package summarizer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const anthropicMaxTokens = 1024

// AnthropicSummarizer calls Anthropic's Messages API.
type AnthropicSummarizer struct {
	client anthropic.Client
	model  anthropic.Model
}

func NewAnthropicSummarizer(apiKey string, model string) (*AnthropicSummarizer, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("API key is empty")
	}

	resolved := anthropic.ModelClaudeHaiku4_5
	if model = strings.TrimSpace(model); model != "" {
		resolved = anthropic.Model(model)
	}

	return &AnthropicSummarizer{
		client: anthropic.NewClient(option.WithAPIKey(apiKey)),
		model:  resolved,
	}, nil
}

func (s *AnthropicSummarizer) Name() string {
	return "anthropic"
}

func (s *AnthropicSummarizer) Model() string {
	return string(s.model)
}

func (s *AnthropicSummarizer) Summarize(ctx context.Context, input Input) (string, error) {
	text := strings.TrimSpace(input.Text)
	if text == "" {
		return "", ErrEmptyInput
	}

	resp, err := s.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     s.model,
		MaxTokens: anthropicMaxTokens,
		System: []anthropic.TextBlockParam{
			{Text: Instructions(input.Style)},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(UserPrompt(input))),
		},
	})
	if err != nil {
		return "", fmt.Errorf("do request: %w", err)
	}

	if len(resp.Content) == 0 {
		return "", errors.New("no content in response")
	}

	summary := strings.TrimSpace(resp.Content[0].Text)
	if summary == "" {
		return "", errors.New("no summary generated")
	}

	return summary, nil
}
