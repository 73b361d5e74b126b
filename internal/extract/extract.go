// Package extract turns user input into plain text ready for summarization.
// Pasted text is used as is unless it is a single URL, in which case the page
// is fetched and its readable content extracted. Uploaded files are decoded
// and routed by sniffing: HTML and feed payloads get structured extraction,
// anything else is treated as plain text.
package extract

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"regexp"
	"strings"
	"time"

	"instagist/internal/domain"

	"mvdan.cc/xurls/v2"
)

var (
	ErrNoContent  = errors.New("no readable text found")
	ErrBinaryFile = errors.New("file looks binary, expected text")
)

type Extractor struct {
	client        *http.Client
	urlRe         *regexp.Regexp
	maxFetchBytes int64
	log           *slog.Logger
}

func NewExtractor(
	fetchTimeout time.Duration,
	maxFetchBytes int64,
	log *slog.Logger,
) (*Extractor, error) {
	urlRe, err := xurls.StrictMatchingScheme("https?://")
	if err != nil {
		return nil, fmt.Errorf("create URL regexp: %w", err)
	}

	if fetchTimeout <= 0 {
		fetchTimeout = defaultFetchTimeout
	}
	if maxFetchBytes <= 0 {
		maxFetchBytes = defaultMaxFetchBytes
	}

	return &Extractor{
		client:        &http.Client{Timeout: fetchTimeout},
		urlRe:         urlRe,
		maxFetchBytes: maxFetchBytes,
		log:           log,
	}, nil
}

// FromText builds a document from pasted input. When the entire input is one
// http(s) URL the page is fetched and extracted instead.
func (e *Extractor) FromText(
	ctx context.Context,
	pasted string,
) (domain.Document, error) {
	text := strings.TrimSpace(pasted)
	if text == "" {
		return domain.Document{}, ErrNoContent
	}

	if pageURL, ok := e.bareURL(text); ok {
		doc, err := e.fromURL(ctx, pageURL)
		if err != nil {
			return domain.Document{}, fmt.Errorf("extract URL content: %w", err)
		}

		return doc, nil
	}

	return domain.Document{
		Text:       sanitizeText(text),
		SourceKind: domain.SourcePasted,
	}, nil
}

// FromUpload builds a document from an uploaded file's bytes.
func (e *Extractor) FromUpload(
	filename string,
	data []byte,
) (domain.Document, error) {
	decoded, err := decodeText(data)
	if err != nil {
		return domain.Document{}, fmt.Errorf("decode upload: %w", err)
	}

	name := strings.TrimSpace(filename)

	doc := domain.Document{
		SourceKind: domain.SourceUpload,
		SourceName: name,
	}

	switch {
	case looksLikeFeed("", decoded):
		title, text, feedErr := extractFeed(decoded)
		if feedErr != nil {
			return domain.Document{}, feedErr
		}

		doc.Title = title
		doc.Text = text
	case looksLikeHTML("", decoded):
		title, text, htmlErr := extractHTML(decoded)
		if htmlErr != nil {
			return domain.Document{}, htmlErr
		}

		doc.Title = title
		doc.Text = text
	default:
		doc.Text = decoded
	}

	if doc.Text == "" {
		return domain.Document{}, ErrNoContent
	}

	if doc.SourceName == "" {
		doc.SourceName = doc.Title
	}

	return doc, nil
}

// bareURL reports whether the entire trimmed text is a single http(s) URL.
func (e *Extractor) bareURL(text string) (string, bool) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" || strings.ContainsAny(trimmed, " \t\r\n") {
		return "", false
	}

	if e.urlRe.FindString(trimmed) != trimmed {
		return "", false
	}

	return trimmed, true
}

func (e *Extractor) fromURL(
	ctx context.Context,
	pageURL string,
) (domain.Document, error) {
	body, contentType, err := e.fetch(ctx, pageURL)
	if err != nil {
		return domain.Document{}, err
	}

	decoded, err := decodeText(body)
	if err != nil {
		return domain.Document{}, err
	}

	if looksLikeFeed(contentType, decoded) {
		title, text, feedErr := extractFeed(decoded)
		if feedErr != nil {
			return domain.Document{}, feedErr
		}
		if text == "" {
			return domain.Document{}, ErrNoContent
		}

		return domain.Document{
			Text:       text,
			Title:      title,
			SourceKind: domain.SourceFeed,
			SourceName: firstNonEmpty(title, pageURL),
			SourceURL:  pageURL,
		}, nil
	}

	title, text, err := extractHTML(decoded)
	if err != nil {
		return domain.Document{}, err
	}
	if text == "" {
		return domain.Document{}, ErrNoContent
	}

	return domain.Document{
		Text:       text,
		Title:      title,
		SourceKind: domain.SourceURL,
		SourceName: firstNonEmpty(title, pageURL),
		SourceURL:  pageURL,
	}, nil
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return strings.TrimSpace(value)
		}
	}

	return ""
}
