package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/gosimple/unidecode"
	"github.com/jung-kurt/gofpdf"
)

// PDFExporter renders datasets into a basic tabular PDF. Core fonts only cover
// Latin-1, so every cell is transliterated before it is drawn.
type PDFExporter struct{}

// NewPDFExporter constructs a PDF exporter.
func NewPDFExporter() *PDFExporter {
	return &PDFExporter{}
}

// Render creates a PDF document with an optional title and table body.
func (e *PDFExporter) Render(data Dataset, title string) ([]byte, error) {
	if len(data.Headers) == 0 {
		return nil, fmt.Errorf("pdf requires at least one header")
	}
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 15, 10)
	pdf.SetTitle(transliterate(title), false)
	pdf.AddPage()

	if title != "" {
		pdf.SetFont("Arial", "B", 14)
		pdf.CellFormat(0, 10, strings.ToUpper(transliterate(title)), "", 1, "C", false, 0, "")
		pdf.Ln(5)
	}

	widths := columnWidths(data, 190.0)

	pdf.SetFont("Arial", "B", 10)
	for i, header := range data.Headers {
		pdf.CellFormat(widths[i], 8, transliterate(header), "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for _, row := range data.Rows {
		for i, header := range data.Headers {
			pdf.CellFormat(widths[i], 7, transliterate(row[header]), "1", 0, "", false, 0, "")
		}
		pdf.Ln(-1)
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// columnWidths gives the first column half the page and splits the rest.
func columnWidths(data Dataset, total float64) []float64 {
	widths := make([]float64, len(data.Headers))
	if len(widths) == 1 {
		widths[0] = total
		return widths
	}
	widths[0] = total / 2
	rest := (total - widths[0]) / float64(len(widths)-1)
	for i := 1; i < len(widths); i++ {
		widths[i] = rest
	}
	return widths
}

func transliterate(s string) string {
	return unidecode.Unidecode(s)
}
