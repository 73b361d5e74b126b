package extract

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"
)

const feedMaxItems = 20

// extractFeed renders an RSS/Atom payload as a plain text digest: the feed
// title plus one block per item, capped at feedMaxItems items.
func extractFeed(payload string) (string, string, error) {
	parsed, err := gofeed.NewParser().ParseString(payload)
	if err != nil {
		return "", "", fmt.Errorf("parse feed: %w", err)
	}

	title := strings.TrimSpace(parsed.Title)

	items := parsed.Items
	if len(items) > feedMaxItems {
		items = items[:feedMaxItems]
	}

	var textBuilder strings.Builder

	for _, item := range items {
		if item == nil {
			continue
		}

		fragment := strings.TrimSpace(item.Title)

		body := strings.TrimSpace(item.Description)
		if body == "" {
			body = strings.TrimSpace(item.Content)
		}
		if body != "" {
			body = stripMarkup(body)
		}

		if body != "" {
			if fragment != "" {
				fragment += "\n"
			}
			fragment += body
		}

		if fragment == "" {
			continue
		}

		if textBuilder.Len() > 0 {
			textBuilder.WriteString("\n\n")
		}
		textBuilder.WriteString(fragment)
	}

	return title, strings.TrimSpace(textBuilder.String()), nil
}

// stripMarkup flattens HTML fragments that feeds commonly put in item
// descriptions.
func stripMarkup(fragment string) string {
	if !strings.Contains(fragment, "<") {
		return fragment
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return fragment
	}

	return strings.TrimSpace(doc.Text())
}

func looksLikeFeed(contentType string, body string) bool {
	ct := strings.ToLower(contentType)
	if strings.Contains(ct, "rss") || strings.Contains(ct, "atom") {
		return true
	}

	head := strings.ToLower(probeHead(body))

	return strings.Contains(head, "<rss") ||
		strings.Contains(head, "<rdf") ||
		strings.Contains(head, "<feed")
}
