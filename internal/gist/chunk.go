package gist

import (
	"strings"
	"unicode/utf8"

	"instagist/internal/summarizer"
)

const chunkSeparator = "\n\n"

// splitText cuts text into pieces of at most maxChars runes each, preferring
// paragraph boundaries, then sentence boundaries. A single sentence longer
// than maxChars is split mid-word as a last resort. Order is preserved.
func splitText(text string, maxChars int) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	if maxChars <= 0 || utf8.RuneCountInString(text) <= maxChars {
		return []string{text}
	}

	var chunks []string
	var builder strings.Builder
	builderRunes := 0

	flush := func() {
		chunk := strings.TrimSpace(builder.String())
		if chunk != "" {
			chunks = append(chunks, chunk)
		}
		builder.Reset()
		builderRunes = 0
	}

	appendPiece := func(piece string) {
		pieceRunes := utf8.RuneCountInString(piece)
		separatorRunes := 0
		if builderRunes > 0 {
			separatorRunes = utf8.RuneCountInString(chunkSeparator)
		}

		if builderRunes+separatorRunes+pieceRunes > maxChars {
			flush()
			separatorRunes = 0
		}

		if builderRunes > 0 {
			builder.WriteString(chunkSeparator)
			builderRunes += separatorRunes
		}
		builder.WriteString(piece)
		builderRunes += pieceRunes
	}

	for _, paragraph := range strings.Split(text, chunkSeparator) {
		paragraph = strings.TrimSpace(paragraph)
		if paragraph == "" {
			continue
		}

		if utf8.RuneCountInString(paragraph) <= maxChars {
			appendPiece(paragraph)

			continue
		}

		for _, sentence := range summarizer.SplitSentences(paragraph) {
			if utf8.RuneCountInString(sentence) <= maxChars {
				appendPiece(sentence)

				continue
			}

			for _, part := range splitRunes(sentence, maxChars) {
				appendPiece(part)
			}
		}
	}

	flush()

	return chunks
}

func splitRunes(text string, maxChars int) []string {
	runes := []rune(text)

	var parts []string
	for start := 0; start < len(runes); start += maxChars {
		end := min(start+maxChars, len(runes))
		part := strings.TrimSpace(string(runes[start:end]))
		if part != "" {
			parts = append(parts, part)
		}
	}

	return parts
}
