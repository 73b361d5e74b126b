package summarizer

import (
	"context"
	"fmt"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/responses"
)

const (
	baseMaxOutputTokens  int64 = 512
	limitMaxOutputTokens int64 = 2048
)

// OpenAISummarizer calls OpenAI's Responses API to produce summaries.
type OpenAISummarizer struct {
	client openai.Client
	model  string
}

// NewOpenAISummarizer builds a new summarizer instance. An empty model picks
// the default small model.
func NewOpenAISummarizer(apiKey string, model string) (*OpenAISummarizer, error) {
	model = strings.TrimSpace(model)
	if model == "" {
		model = openai.ChatModelGPT5Mini2025_08_07
	}

	return &OpenAISummarizer{
		client: openai.NewClient(option.WithAPIKey(apiKey)),
		model:  model,
	}, nil
}

func (s *OpenAISummarizer) Name() string {
	return "openai"
}

func (s *OpenAISummarizer) Model() string {
	return s.model
}

// Summarize produces a single summary in the requested style. Output that is
// cut off by the token budget retries with a doubled budget up to a limit.
func (s *OpenAISummarizer) Summarize(ctx context.Context, input Input) (string, error) {
	text := strings.TrimSpace(input.Text)
	if text == "" {
		return "", ErrEmptyInput
	}

	params := responses.ResponseNewParams{
		Model:        s.model,
		Instructions: openai.String(Instructions(input.Style)),
		Input: responses.ResponseNewParamsInputUnion{
			OfString: openai.String(UserPrompt(input)),
		},
	}
	if strings.HasPrefix(s.model, "gpt-5") {
		params.ServiceTier = responses.ResponseNewParamsServiceTierFlex
		params.Reasoning = responses.ReasoningParam{
			Effort: openai.ReasoningEffortLow,
		}
	}

	maxOutputTokens := baseMaxOutputTokens
	for {
		params.MaxOutputTokens = openai.Int(maxOutputTokens)

		resp, err := s.client.Responses.New(ctx, params)
		if err != nil {
			return "", fmt.Errorf("do request: %w", err)
		}

		if resp.Status == "incomplete" {
			if resp.IncompleteDetails.Reason == "max_output_tokens" && maxOutputTokens < limitMaxOutputTokens {
				maxOutputTokens *= 2
				if maxOutputTokens > limitMaxOutputTokens {
					maxOutputTokens = limitMaxOutputTokens
				}
				continue
			}
			return "", fmt.Errorf(
				"response is incomplete (reason = %s, maxOutputTokens = %d)",
				resp.IncompleteDetails.Reason,
				maxOutputTokens,
			)
		}

		summary := strings.TrimSpace(resp.OutputText())
		if summary == "" {
			return "", fmt.Errorf("output text is missing (status = %s)", resp.Status)
		}
		return summary, nil
	}
}
