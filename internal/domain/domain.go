package domain

import (
	"strings"
	"time"
)

// Style selects the shape of the generated summary.
type Style string

const (
	StyleBullets   Style = "bullets"
	StyleParagraph Style = "paragraph"

	DefaultStyle = StyleBullets
)

// ParseStyle normalizes a user-supplied style name. An empty value maps to
// the default style.
func ParseStyle(raw string) (Style, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "":
		return DefaultStyle, true
	case "bullets", "bullet":
		return StyleBullets, true
	case "paragraph":
		return StyleParagraph, true
	default:
		return "", false
	}
}

// SourceKind records how the input text arrived.
type SourceKind string

const (
	SourcePasted SourceKind = "pasted"
	SourceUpload SourceKind = "upload"
	SourceURL    SourceKind = "url"
	SourceFeed   SourceKind = "feed"
)

// Document is input text after extraction and normalization.
type Document struct {
	Text       string
	Title      string
	SourceKind SourceKind
	SourceName string
	SourceURL  string
}

// Summary is a stored summarization result.
type Summary struct {
	ID          int64
	CreatedAt   time.Time
	Style       Style
	SourceKind  SourceKind
	SourceName  string
	Provider    string
	Model       string
	InputChars  int64
	InputSHA256 string
	Text        string
}
