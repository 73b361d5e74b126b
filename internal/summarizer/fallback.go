package summarizer

import (
	"context"
	"strings"

	"instagist/internal/domain"
)

const (
	fallbackMaxBullets    = 3
	fallbackMaxChars      = 400
	fallbackEllipsis      = "..."
	fallbackName          = "fallback"
	fallbackParagraphJoin = " "
)

// Fallback is an extractive summarizer used when no model backend is
// configured. It keeps the service usable offline: the leading sentences of
// the input stand in for a model summary.
type Fallback struct{}

func NewFallback() *Fallback {
	return &Fallback{}
}

func (f *Fallback) Name() string {
	return fallbackName
}

func (f *Fallback) Model() string {
	return ""
}

func (f *Fallback) Summarize(_ context.Context, input Input) (string, error) {
	text := strings.TrimSpace(input.Text)
	if text == "" {
		return "", ErrEmptyInput
	}

	sentences := SplitSentences(text)
	if len(sentences) == 0 {
		return truncateRunes(collapseWhitespace(text), fallbackMaxChars), nil
	}

	if input.Style == domain.StyleParagraph {
		return fallbackParagraph(sentences), nil
	}
	return fallbackBullets(sentences), nil
}

func fallbackBullets(sentences []string) string {
	n := min(len(sentences), fallbackMaxBullets)

	var b strings.Builder
	for i := range n {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString("- ")
		b.WriteString(truncateRunes(collapseWhitespace(sentences[i]), fallbackMaxChars))
	}

	return b.String()
}

func fallbackParagraph(sentences []string) string {
	var b strings.Builder
	for _, sentence := range sentences {
		normalized := collapseWhitespace(sentence)
		if normalized == "" {
			continue
		}

		if b.Len() > 0 {
			if b.Len()+len(fallbackParagraphJoin)+len(normalized) > fallbackMaxChars {
				break
			}
			b.WriteString(fallbackParagraphJoin)
		}
		b.WriteString(normalized)
	}

	return truncateRunes(b.String(), fallbackMaxChars)
}

func collapseWhitespace(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

func truncateRunes(text string, maxChars int) string {
	runes := []rune(text)
	if len(runes) <= maxChars {
		return text
	}

	trimmed := strings.TrimSpace(string(runes[:maxChars]))
	if trimmed == "" {
		return text
	}

	return trimmed + fallbackEllipsis
}
