package export

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"instagist/internal/domain"
)

func newTestSummary() *domain.Summary {
	return &domain.Summary{
		ID:         7,
		CreatedAt:  time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		Style:      domain.StyleBullets,
		SourceKind: domain.SourceURL,
		SourceName: "Example Article",
		Provider:   "ollama",
		Model:      "gemma:2b",
		Text:       "- First point\n- Second point\n- Third point",
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected Format
		ok       bool
	}{
		{name: "empty defaults to text", raw: "", expected: FormatText, ok: true},
		{name: "txt", raw: "txt", expected: FormatText, ok: true},
		{name: "uppercase", raw: " TXT ", expected: FormatText, ok: true},
		{name: "markdown", raw: "markdown", expected: FormatMarkdown, ok: true},
		{name: "md", raw: "md", expected: FormatMarkdown, ok: true},
		{name: "pdf", raw: "pdf", expected: FormatPDF, ok: true},
		{name: "unknown", raw: "docx"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			actual, ok := ParseFormat(test.raw)
			if ok != test.ok {
				t.Fatalf("unexpected ok: %v", ok)
			}

			if actual != test.expected {
				t.Fatalf("unexpected format: %q", actual)
			}
		})
	}
}

func TestRenderText(t *testing.T) {
	file, err := Render(newTestSummary(), FormatText)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := "- First point\n- Second point\n- Third point\n"
	if string(file.Data) != expected {
		t.Fatalf("unexpected data: %q", file.Data)
	}

	if file.ContentType != "text/plain; charset=utf-8" {
		t.Fatalf("unexpected content type: %q", file.ContentType)
	}

	if file.Name != "summary-7.txt" {
		t.Fatalf("unexpected name: %q", file.Name)
	}
}

func TestRenderMarkdown(t *testing.T) {
	file, err := Render(newTestSummary(), FormatMarkdown)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	text := string(file.Data)
	if !strings.HasPrefix(text, "# Example Article\n\n") {
		t.Fatalf("unexpected heading: %q", text)
	}

	if !strings.Contains(text, "*2025-06-01 12:00 UTC · ollama / gemma:2b*\n\n") {
		t.Fatalf("expected meta line: %q", text)
	}

	if !strings.Contains(text, "- Second point") {
		t.Fatalf("unexpected body: %q", text)
	}

	if file.Name != "summary-7.md" {
		t.Fatalf("unexpected name: %q", file.Name)
	}
}

func TestRenderMarkdownFallbackTitle(t *testing.T) {
	summary := newTestSummary()
	summary.SourceName = "  "

	file, err := Render(summary, FormatMarkdown)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.HasPrefix(string(file.Data), "# Summary\n") {
		t.Fatalf("unexpected heading: %q", file.Data)
	}
}

func TestRenderPDF(t *testing.T) {
	file, err := Render(newTestSummary(), FormatPDF)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !bytes.HasPrefix(file.Data, []byte("%PDF")) {
		t.Fatalf("expected PDF header, got %q", file.Data[:min(len(file.Data), 8)])
	}

	if len(file.Data) < 500 {
		t.Fatalf("suspiciously small PDF: %d bytes", len(file.Data))
	}

	if file.ContentType != "application/pdf" {
		t.Fatalf("unexpected content type: %q", file.ContentType)
	}

	if file.Name != "summary-7.pdf" {
		t.Fatalf("unexpected name: %q", file.Name)
	}
}

func TestRenderUnsupportedFormat(t *testing.T) {
	if _, err := Render(newTestSummary(), Format("docx")); err == nil {
		t.Fatalf("expected error for unsupported format")
	}
}

func TestMetaLine(t *testing.T) {
	summary := newTestSummary()

	line := metaLine(summary)
	if !strings.Contains(line, "2025-06-01 12:00 UTC") ||
		!strings.Contains(line, "ollama / gemma:2b") {
		t.Fatalf("unexpected meta line: %q", line)
	}

	summary.Model = ""
	if line = metaLine(summary); !strings.HasSuffix(line, "ollama") {
		t.Fatalf("unexpected meta line: %q", line)
	}
}
