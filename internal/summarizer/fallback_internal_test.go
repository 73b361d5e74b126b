package summarizer

import (
	"context"
	"errors"
	"strings"
	"testing"

	"instagist/internal/domain"
)

func TestFallbackEmptyInput(t *testing.T) {
	f := NewFallback()

	if _, err := f.Summarize(context.Background(), Input{Text: "   "}); !errors.Is(err, ErrEmptyInput) {
		t.Fatalf("expected ErrEmptyInput, got %v", err)
	}
}

func TestFallbackBullets(t *testing.T) {
	f := NewFallback()

	text := "First point here. Second point here. Third point here. Fourth point here."
	summary, err := f.Summarize(context.Background(), Input{Text: text, Style: domain.StyleBullets})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines := strings.Split(summary, "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 bullets, got %d: %q", len(lines), summary)
	}

	for _, line := range lines {
		if !strings.HasPrefix(line, "- ") {
			t.Fatalf("expected bullet prefix, got %q", line)
		}
	}

	if strings.Contains(summary, "Fourth point") {
		t.Fatalf("expected fourth sentence to be dropped, got %q", summary)
	}
}

func TestFallbackParagraph(t *testing.T) {
	f := NewFallback()

	text := "First sentence.\n\nSecond   sentence\twith gaps."
	summary, err := f.Summarize(context.Background(), Input{Text: text, Style: domain.StyleParagraph})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "First sentence. Second sentence with gaps."
	if summary != want {
		t.Fatalf("unexpected paragraph: got %q want %q", summary, want)
	}
}

func TestFallbackParagraphRespectsCap(t *testing.T) {
	f := NewFallback()

	text := strings.Repeat("Filler sentence with some words. ", 50)
	summary, err := f.Summarize(context.Background(), Input{Text: text, Style: domain.StyleParagraph})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len([]rune(summary)) > fallbackMaxChars+len(fallbackEllipsis) {
		t.Fatalf("expected paragraph within cap, got %d chars", len([]rune(summary)))
	}
}

func TestTruncateRunes(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxChars int
		want     string
	}{
		{
			"short text unchanged",
			"short",
			10,
			"short",
		},
		{
			"long text truncated with ellipsis",
			"abcdefghij",
			5,
			"abcde...",
		},
		{
			"multibyte runes counted as runes",
			"ааааа",
			5,
			"ааааа",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := truncateRunes(test.input, test.maxChars); got != test.want {
				t.Fatalf("got %q, want %q", got, test.want)
			}
		})
	}
}
