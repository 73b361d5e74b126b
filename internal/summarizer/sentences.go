package summarizer

import "strings"

// SplitSentences breaks text into trimmed sentences on ., !, ? and newline
// boundaries. It is intentionally crude: it backs the extractive fallback and
// the chunker, not any user-visible NLP.
func SplitSentences(text string) []string {
	var sentences []string
	var b strings.Builder

	flush := func() {
		if s := strings.TrimSpace(b.String()); s != "" {
			sentences = append(sentences, s)
		}
		b.Reset()
	}

	runes := []rune(strings.TrimSpace(text))
	for i, r := range runes {
		b.WriteRune(r)

		switch r {
		case '\n':
			flush()
		case '.', '!', '?':
			if i+1 == len(runes) || runes[i+1] == ' ' || runes[i+1] == '\n' || runes[i+1] == '\t' {
				flush()
			}
		}
	}
	flush()

	return sentences
}
