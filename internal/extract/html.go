package extract

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const blockSelector = "p, h1, h2, h3, h4, h5, h6, li, blockquote, pre"

// extractHTML returns the page title and its readable text. Boilerplate
// elements are dropped, and the main content container is preferred over the
// full body when the page declares one.
func extractHTML(page string) (string, string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return "", "", fmt.Errorf("create document from reader: %w", err)
	}

	title := ""
	if content, ok := doc.Find("meta[property='og:title']").Attr("content"); ok {
		title = strings.TrimSpace(content)
	}
	if title == "" {
		title = strings.TrimSpace(doc.Find("title").First().Text())
	}

	doc.Find("script, style, noscript, template, iframe, svg, nav, header, footer, aside, form, button").
		Remove()

	root := doc.Find("article").First()
	if root.Length() == 0 {
		root = doc.Find("main").First()
	}
	if root.Length() == 0 {
		root = doc.Find("body").First()
	}
	if root.Length() == 0 {
		root = doc.Selection
	}

	root.Find("br").Each(func(_ int, br *goquery.Selection) {
		br.ReplaceWithHtml("\n")
	})

	var textBuilder strings.Builder

	root.Find(blockSelector).Each(func(_ int, s *goquery.Selection) {
		// Nested blocks are covered by their enclosing block.
		if s.ParentsFiltered(blockSelector).Length() > 0 {
			return
		}

		fragment := strings.TrimSpace(s.Text())
		if fragment == "" {
			return
		}

		if textBuilder.Len() > 0 {
			textBuilder.WriteString("\n\n")
		}
		textBuilder.WriteString(fragment)
	})

	text := strings.TrimSpace(textBuilder.String())
	if text == "" {
		text = collapseLines(root.Text())
	}

	return title, text, nil
}

// collapseLines trims every line and drops blank runs, for pages without
// block-level markup.
func collapseLines(text string) string {
	var lines []string
	for line := range strings.Lines(text) {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		lines = append(lines, line)
	}

	return strings.Join(lines, "\n")
}

func looksLikeHTML(contentType string, body string) bool {
	if strings.Contains(strings.ToLower(contentType), "text/html") {
		return true
	}

	head := strings.ToLower(probeHead(body))

	return strings.Contains(head, "<!doctype html") ||
		strings.Contains(head, "<html")
}
