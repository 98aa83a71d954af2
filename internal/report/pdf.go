// File path: internal/report/pdf.go
package report

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"

	"github.com/sgci-marketing/persona-studio/internal/catalog"
	"github.com/sgci-marketing/persona-studio/internal/common"
)

// Download file name patterns for a persona.
func TxtFileName(id int) string { return fmt.Sprintf("persona_cluster_%d.txt", id) }
func PDFFileName(id int) string { return fmt.Sprintf("persona_cluster_%d.pdf", id) }

const attribution = "Genere par le Generateur de Personas Marketing - Societe Generale Cote d'Ivoire"

// RenderPDF lays the persona text out as a paginated A4 document: a fixed
// title block, the classified body, and an attribution footer. The built-in
// fonts only cover cp1252, so all text is ASCII-folded first (same lossy
// normalization as catalog ingestion); only the bullet glyph goes through
// the cp1252 translator.
func RenderPDF(id int, name, text string) ([]byte, error) {
	logger := common.Logger()
	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetMargins(20, 20, 20)
	doc.SetAutoPageBreak(true, 20)
	doc.AddPage()
	tr := doc.UnicodeTranslatorFromDescriptor("")
	bullet := tr("•")

	doc.SetFont("Helvetica", "B", 24)
	doc.SetTextColor(0xd3, 0x2f, 0x2f)
	doc.CellFormat(0, 12, "PERSONA MARKETING", "", 1, "C", false, 0, "")
	doc.Ln(4)

	writeHeading(doc, fmt.Sprintf("Cluster %d: %s", id, catalog.Fold(name)))
	doc.Ln(5)

	for _, inst := range ClassifyAll(catalog.Fold(text)) {
		switch inst.Kind {
		case Spacer:
			doc.Ln(3)
		case Heading:
			writeHeading(doc, inst.Text)
		case Bullet:
			writeBody(doc, bullet+" "+inst.Text)
		case Body:
			if inst.Text != "" {
				writeBody(doc, inst.Text)
			}
		}
	}

	doc.Ln(10)
	doc.SetFont("Helvetica", "", 9)
	doc.SetTextColor(0x80, 0x80, 0x80)
	doc.MultiCell(0, 5, attribution, "", "C", false)

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		logger.Error("report: pdf output failed", "segment", id, "error", err)
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	logger.Info("report: pdf rendered", "segment", id, "bytes", buf.Len())
	return buf.Bytes(), nil
}

func writeHeading(doc *fpdf.Fpdf, text string) {
	doc.SetFont("Helvetica", "B", 16)
	doc.SetTextColor(0xb7, 0x1c, 0x1c)
	doc.Ln(2)
	doc.MultiCell(0, 8, text, "", "L", false)
	doc.Ln(2)
}

func writeBody(doc *fpdf.Fpdf, text string) {
	doc.SetFont("Helvetica", "", 11)
	doc.SetTextColor(0, 0, 0)
	doc.MultiCell(0, 6, text, "", "J", false)
	doc.Ln(1)
}
