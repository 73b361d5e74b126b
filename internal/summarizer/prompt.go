package summarizer

import (
	"strings"

	"instagist/internal/domain"
)

const (
	bulletsInstructions = `Summarize the following text in 3 simple bullet points for a general audience.

Rules:
- Each bullet starts with "- " on its own line.
- Keep only the core ideas and critical context (dates, numbers, names).
- Neutral tone, no fillers.
- Answer in the same language as the input.`

	paragraphInstructions = `Summarize the following text in a single concise paragraph suitable for a general audience.

Rules:
- One paragraph, no lists or headings.
- Keep only the core ideas and critical context (dates, numbers, names).
- Neutral tone, no fillers.
- Answer in the same language as the input.`
)

// Instructions returns the system instructions for a summary style.
func Instructions(style domain.Style) string {
	if style == domain.StyleParagraph {
		return paragraphInstructions
	}
	return bulletsInstructions
}

// UserPrompt renders the content block sent alongside the instructions.
func UserPrompt(input Input) string {
	var b strings.Builder

	if sourceURL := strings.TrimSpace(input.SourceURL); sourceURL != "" {
		b.WriteString("Source:\n")
		b.WriteString(sourceURL)
		b.WriteString("\n")
	}
	b.WriteString("Content:\n")
	b.WriteString(strings.TrimSpace(input.Text))

	return b.String()
}

// Prompt renders a single self-contained prompt for backends without a
// separate system message (Ollama's generate API, Gemini's contents).
func Prompt(input Input) string {
	return Instructions(input.Style) + "\n\n" + UserPrompt(input)
}
