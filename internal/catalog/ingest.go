// File path: internal/catalog/ingest.go
package catalog

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/xuri/excelize/v2"

	"github.com/sgci-marketing/persona-studio/internal/common"
)

// Catalog kinds reported back to the upload confirmation message.
const (
	KindPDF         = "pdf"
	KindSpreadsheet = "spreadsheet"
)

const spreadsheetHeader = "CATALOGUE PRODUITS BANCAIRES (DETAILLE):\n\n"

// Catalog is the flattened plain-text form of an uploaded product reference
// document. Units counts pages for PDFs and product rows for spreadsheets.
type Catalog struct {
	Text  string `json:"-"`
	Kind  string `json:"kind"`
	Units int    `json:"units"`
}

// Preview returns the first n characters of the catalog text.
func (c Catalog) Preview(n int) string {
	runes := []rune(c.Text)
	if n >= len(runes) {
		return c.Text
	}
	return string(runes[:n])
}

// Ingest extracts one plain-text string from an uploaded reference
// document. The filename extension selects the extractor. Any failure is
// returned to the caller; the caller keeps its previous catalog.
func Ingest(filename string, data []byte) (Catalog, error) {
	logger := common.Logger()
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		cat, err := ingestPDF(data)
		if err != nil {
			logger.Warn("catalog: pdf ingestion failed", "file", filename, "error", err)
			return Catalog{}, err
		}
		logger.Info("catalog: pdf ingested", "file", filename, "pages", cat.Units, "chars", len(cat.Text))
		return cat, nil
	case ".xlsx", ".xls":
		cat, err := ingestSpreadsheet(data)
		if err != nil {
			logger.Warn("catalog: spreadsheet ingestion failed", "file", filename, "error", err)
			return Catalog{}, err
		}
		logger.Info("catalog: spreadsheet ingested", "file", filename, "rows", cat.Units, "chars", len(cat.Text))
		return cat, nil
	default:
		return Catalog{}, fmt.Errorf("unsupported catalog file type: %s", filename)
	}
}

// ingestPDF concatenates per-page extracted text in page order, one newline
// between pages.
func ingestPDF(data []byte) (Catalog, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return Catalog{}, fmt.Errorf("open pdf: %w", err)
	}
	total := reader.NumPage()
	if total == 0 {
		return Catalog{}, fmt.Errorf("pdf contains no pages")
	}
	var b strings.Builder
	for i := 1; i <= total; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			b.WriteString("\n")
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return Catalog{}, fmt.Errorf("extract page %d: %w", i, err)
		}
		b.WriteString(text)
		b.WriteString("\n")
	}
	return Catalog{Text: b.String(), Kind: KindPDF, Units: total}, nil
}

// ingestSpreadsheet emits one block per product row: a PRODUIT marker, one
// "column: value" line per column, a blank line between blocks. Values are
// ASCII-folded here so the text survives downstream rendering.
func ingestSpreadsheet(data []byte) (Catalog, error) {
	file, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return Catalog{}, fmt.Errorf("open spreadsheet: %w", err)
	}
	defer file.Close()
	sheets := file.GetSheetList()
	if len(sheets) == 0 {
		return Catalog{}, fmt.Errorf("spreadsheet contains no sheets")
	}
	rows, err := file.GetRows(sheets[0])
	if err != nil {
		return Catalog{}, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	if len(rows) < 2 {
		return Catalog{}, fmt.Errorf("spreadsheet needs a header row and at least one product row")
	}
	header := rows[0]
	var b strings.Builder
	b.WriteString(spreadsheetHeader)
	for i, row := range rows[1:] {
		fmt.Fprintf(&b, "--- PRODUIT %d ---\n", i+1)
		for c, col := range header {
			value := ""
			if c < len(row) {
				value = row[c]
			}
			fmt.Fprintf(&b, "%s: %s\n", col, Fold(value))
		}
		b.WriteString("\n")
	}
	return Catalog{Text: b.String(), Kind: KindSpreadsheet, Units: len(rows) - 1}, nil
}
