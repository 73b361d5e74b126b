package extract

import (
	"strings"
	"testing"
)

const articlePage = `<!DOCTYPE html>
<html>
<head>
<title>Fallback Title</title>
<meta property="og:title" content="OG Title">
<style>body { color: red; }</style>
</head>
<body>
<nav><a href="/">Home</a> <a href="/about">About</a></nav>
<article>
<h1>Article Heading</h1>
<p>First paragraph of the article.</p>
<p>Second paragraph with <b>markup</b>.</p>
<script>console.log("tracking");</script>
</article>
<footer>Copyright notice</footer>
</body>
</html>`

func TestExtractHTMLPrefersArticle(t *testing.T) {
	title, text, err := extractHTML(articlePage)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if title != "OG Title" {
		t.Fatalf("unexpected title: %q", title)
	}

	if !strings.Contains(text, "Article Heading") ||
		!strings.Contains(text, "First paragraph of the article.") ||
		!strings.Contains(text, "Second paragraph with markup.") {
		t.Fatalf("expected article content, got %q", text)
	}

	if strings.Contains(text, "Home") || strings.Contains(text, "Copyright") {
		t.Fatalf("expected boilerplate to be dropped, got %q", text)
	}

	if strings.Contains(text, "tracking") || strings.Contains(text, "color: red") {
		t.Fatalf("expected script and style content to be dropped, got %q", text)
	}
}

func TestExtractHTMLTitleFallsBackToTitleTag(t *testing.T) {
	page := `<html><head><title> Fallback Title </title></head>` +
		`<body><p>Body text.</p></body></html>`

	title, _, err := extractHTML(page)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if title != "Fallback Title" {
		t.Fatalf("unexpected title: %q", title)
	}
}

func TestExtractHTMLUsesBodyWithoutArticle(t *testing.T) {
	page := `<html><body><p>Only paragraph.</p><p>Another one.</p></body></html>`

	_, text, err := extractHTML(page)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if text != "Only paragraph.\n\nAnother one." {
		t.Fatalf("unexpected text: %q", text)
	}
}

func TestExtractHTMLNestedBlocksAppearOnce(t *testing.T) {
	page := `<html><body><blockquote><p>Quoted once.</p></blockquote></body></html>`

	_, text, err := extractHTML(page)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if strings.Count(text, "Quoted once.") != 1 {
		t.Fatalf("expected nested block to appear once, got %q", text)
	}
}

func TestExtractHTMLFallsBackToRawText(t *testing.T) {
	page := `<html><body><div>Unstructured  content</div>
<div>on two lines</div></body></html>`

	_, text, err := extractHTML(page)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(text, "Unstructured  content") ||
		!strings.Contains(text, "on two lines") {
		t.Fatalf("unexpected text: %q", text)
	}
}

func TestLooksLikeHTML(t *testing.T) {
	if !looksLikeHTML("text/html; charset=utf-8", "") {
		t.Fatalf("expected content type to mark HTML")
	}

	if !looksLikeHTML("", "<!DOCTYPE html><html><body></body></html>") {
		t.Fatalf("expected doctype probe to mark HTML")
	}

	if looksLikeHTML("", "plain text here") {
		t.Fatalf("expected plain text to not look like HTML")
	}
}
