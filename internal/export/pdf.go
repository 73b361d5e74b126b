package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"

	"instagist/internal/domain"
)

const (
	pdfMargin          = 40.0
	pdfTitleFontSize   = 16.0
	pdfMetaFontSize    = 9.0
	pdfBodyFontSize    = 11.0
	pdfTitleLineHeight = 20.0
	pdfMetaLineHeight  = 12.0
	pdfBodyLineHeight  = 16.0
)

func renderPDF(summary *domain.Summary) ([]byte, error) {
	pdf := fpdf.New("P", "pt", "Letter", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(true, pdfMargin)
	pdf.AddPage()

	// Core fonts only speak CP1252, so UTF-8 text is transliterated.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Helvetica", "B", pdfTitleFontSize)
	pdf.MultiCell(0, pdfTitleLineHeight, tr(title(summary)), "", "L", false)
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", pdfMetaFontSize)
	pdf.SetTextColor(120, 120, 120)
	pdf.MultiCell(0, pdfMetaLineHeight, tr(metaLine(summary)), "", "L", false)
	pdf.Ln(8)

	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "", pdfBodyFontSize)
	pdf.MultiCell(0, pdfBodyLineHeight, tr(strings.TrimSpace(summary.Text)), "", "L", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("write PDF: %w", err)
	}

	return buf.Bytes(), nil
}

func metaLine(summary *domain.Summary) string {
	parts := []string{summary.CreatedAt.UTC().Format("2006-01-02 15:04 UTC")}

	if provider := strings.TrimSpace(summary.Provider); provider != "" {
		if model := strings.TrimSpace(summary.Model); model != "" {
			parts = append(parts, provider+" / "+model)
		} else {
			parts = append(parts, provider)
		}
	}

	return strings.Join(parts, " · ")
}
