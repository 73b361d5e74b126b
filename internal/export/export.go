// Package export renders stored summaries as downloadable files.
package export

import (
	"fmt"
	"strings"

	"instagist/internal/domain"
)

type Format string

const (
	FormatText     Format = "txt"
	FormatMarkdown Format = "md"
	FormatPDF      Format = "pdf"
)

// ParseFormat normalizes a user-supplied format name. An empty value maps to
// plain text.
func ParseFormat(raw string) (Format, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "txt", "text":
		return FormatText, true
	case "md", "markdown":
		return FormatMarkdown, true
	case "pdf":
		return FormatPDF, true
	default:
		return "", false
	}
}

// File is a rendered download.
type File struct {
	Data        []byte
	ContentType string
	Name        string
}

func Render(summary *domain.Summary, format Format) (*File, error) {
	switch format {
	case FormatText:
		return &File{
			Data:        renderText(summary),
			ContentType: "text/plain; charset=utf-8",
			Name:        fileName(summary, format),
		}, nil
	case FormatMarkdown:
		return &File{
			Data:        renderMarkdown(summary),
			ContentType: "text/markdown; charset=utf-8",
			Name:        fileName(summary, format),
		}, nil
	case FormatPDF:
		data, err := renderPDF(summary)
		if err != nil {
			return nil, fmt.Errorf("render PDF: %w", err)
		}

		return &File{
			Data:        data,
			ContentType: "application/pdf",
			Name:        fileName(summary, format),
		}, nil
	default:
		return nil, fmt.Errorf("unsupported format: %q", format)
	}
}

func renderText(summary *domain.Summary) []byte {
	return []byte(strings.TrimSpace(summary.Text) + "\n")
}

func renderMarkdown(summary *domain.Summary) []byte {
	var b strings.Builder

	b.WriteString("# ")
	b.WriteString(title(summary))
	b.WriteString("\n\n")
	b.WriteString("*")
	b.WriteString(metaLine(summary))
	b.WriteString("*\n\n")
	b.WriteString(strings.TrimSpace(summary.Text))
	b.WriteString("\n")

	return []byte(b.String())
}

func title(summary *domain.Summary) string {
	if name := strings.TrimSpace(summary.SourceName); name != "" {
		return name
	}

	return "Summary"
}

func fileName(summary *domain.Summary, format Format) string {
	return fmt.Sprintf("summary-%d.%s", summary.ID, format)
}
