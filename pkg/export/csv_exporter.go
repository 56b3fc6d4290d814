package export

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
)

// utf8BOM lets spreadsheet apps detect UTF-8 and show Cyrillic headers.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Dataset is a table keyed by header name.
type Dataset struct {
	Headers []string
	Rows    []map[string]string
}

// CSVOption tweaks a CSVExporter.
type CSVOption func(*CSVExporter)

// WithoutBOM drops the byte order mark, for consumers that parse the file.
func WithoutBOM() CSVOption {
	return func(e *CSVExporter) { e.bom = false }
}

// WithComma sets the field delimiter, e.g. ';' for locales that use a
// decimal comma.
func WithComma(comma rune) CSVOption {
	return func(e *CSVExporter) { e.comma = comma }
}

// CSVExporter writes a Dataset as UTF-8 CSV, BOM-prefixed by default.
type CSVExporter struct {
	bom   bool
	comma rune
}

// NewCSVExporter builds a CSV exporter.
func NewCSVExporter(opts ...CSVOption) *CSVExporter {
	e := &CSVExporter{bom: true, comma: ','}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Render writes the header line and one record per row; cells missing from a
// row are left empty.
func (e *CSVExporter) Render(data Dataset) ([]byte, error) {
	if len(data.Headers) == 0 {
		return nil, errors.New("csv export needs at least one column")
	}

	var buf bytes.Buffer
	if e.bom {
		buf.Write(utf8BOM)
	}
	w := csv.NewWriter(&buf)
	w.Comma = e.comma

	records := make([][]string, 0, len(data.Rows)+1)
	records = append(records, data.Headers)
	for _, row := range data.Rows {
		record := make([]string, len(data.Headers))
		for i, header := range data.Headers {
			record[i] = row[header]
		}
		records = append(records, record)
	}
	if err := w.WriteAll(records); err != nil {
		return nil, fmt.Errorf("write csv: %w", err)
	}
	return buf.Bytes(), nil
}
