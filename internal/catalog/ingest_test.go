// File path: internal/catalog/ingest_test.go
package catalog

import (
	"bytes"
	"strings"
	"testing"

	"github.com/go-pdf/fpdf"
	"github.com/xuri/excelize/v2"
)

func buildWorkbook(t *testing.T, rows [][]interface{}) []byte {
	t.Helper()
	file := excelize.NewFile()
	defer file.Close()
	for r, row := range rows {
		for c, value := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				t.Fatalf("cell name: %v", err)
			}
			if err := file.SetCellValue("Sheet1", cell, value); err != nil {
				t.Fatalf("set cell: %v", err)
			}
		}
	}
	buf, err := file.WriteToBuffer()
	if err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	return buf.Bytes()
}

func TestIngestSpreadsheetBlocks(t *testing.T) {
	data := buildWorkbook(t, [][]interface{}{
		{"Produit", "Tarif", "Cible"},
		{"Compte Sogénial", "5 000 FCFA/mois", "Jeunes actifs"},
		{"Carte Visa Première", "15 000 FCFA/an", "Clients premium"},
	})
	cat, err := Ingest("catalogue.xlsx", data)
	if err != nil {
		t.Fatalf("ingest: %v", err)
	}
	if cat.Kind != KindSpreadsheet {
		t.Fatalf("expected spreadsheet kind, got %q", cat.Kind)
	}
	if cat.Units != 2 {
		t.Fatalf("expected 2 product rows, got %d", cat.Units)
	}
	if !strings.Contains(cat.Text, "--- PRODUIT 1 ---\n") || !strings.Contains(cat.Text, "--- PRODUIT 2 ---\n") {
		t.Fatalf("expected per-row markers, got:\n%s", cat.Text)
	}
	// Accents fold to ASCII and every column lands as "name: value".
	if !strings.Contains(cat.Text, "Produit: Compte Sogenial\n") {
		t.Fatalf("expected folded product line, got:\n%s", cat.Text)
	}
	if !strings.Contains(cat.Text, "Cible: Clients premium\n") {
		t.Fatalf("expected column lines for every column, got:\n%s", cat.Text)
	}
	blocks := strings.Split(strings.TrimSuffix(cat.Text, "\n"), "\n\n")
	if len(blocks) < 3 {
		t.Fatalf("expected blank-line separated blocks, got %d parts", len(blocks))
	}
}

func TestIngestSpreadsheetRejectsHeaderOnly(t *testing.T) {
	data := buildWorkbook(t, [][]interface{}{{"Produit", "Tarif"}})
	if _, err := Ingest("catalogue.xlsx", data); err == nil {
		t.Fatal("expected error for header-only workbook")
	}
}

func TestIngestUnsupportedType(t *testing.T) {
	if _, err := Ingest("catalogue.docx", []byte("x")); err == nil {
		t.Fatal("expected error for unsupported extension")
	}
}

func buildPDF(t *testing.T, pages []string) []byte {
	t.Helper()
	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetFont("Helvetica", "", 12)
	for _, text := range pages {
		doc.AddPage()
		doc.Cell(0, 10, text)
	}
	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		t.Fatalf("write pdf: %v", err)
	}
	return buf.Bytes()
}

func TestIngestPDFPages(t *testing.T) {
	data := buildPDF(t, []string{"PAGEONE produit essentiel", "PAGETWO carte visa"})
	cat, err := Ingest("catalogue.pdf", data)
	if err != nil {
		t.Fatalf("ingest: %v", err)
	}
	if cat.Kind != KindPDF {
		t.Fatalf("expected pdf kind, got %q", cat.Kind)
	}
	if cat.Units != 2 {
		t.Fatalf("expected 2 pages, got %d", cat.Units)
	}
	first := strings.Index(cat.Text, "PAGEONE")
	second := strings.Index(cat.Text, "PAGETWO")
	if first < 0 || second < 0 {
		t.Fatalf("expected text from both pages, got:\n%s", cat.Text)
	}
	if first > second {
		t.Fatal("expected page text concatenated in page order")
	}
	// One newline after each page's extracted text.
	if !strings.Contains(cat.Text[first:second], "\n") {
		t.Fatalf("expected newline between pages, got %q", cat.Text[first:second])
	}
	if !strings.HasSuffix(cat.Text, "\n") {
		t.Fatalf("expected trailing newline after the last page, got %q", cat.Text)
	}
}

func TestIngestCorruptPDF(t *testing.T) {
	if _, err := Ingest("catalogue.pdf", []byte("not a pdf")); err == nil {
		t.Fatal("expected error for corrupt pdf")
	}
}

func TestFold(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"Société Générale Côte d'Ivoire", "Societe Generale Cote d'Ivoire"},
		{"tarif: 15 000 € par an", "tarif: 15 000  par an"},
		{"Fidélité — points", "Fidelite  points"},
		{"plain ascii", "plain ascii"},
	}
	for _, tc := range cases {
		if got := Fold(tc.in); got != tc.want {
			t.Fatalf("Fold(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestPreview(t *testing.T) {
	cat := Catalog{Text: "abcdef"}
	if cat.Preview(3) != "abc" {
		t.Fatalf("expected 3-char preview, got %q", cat.Preview(3))
	}
	if cat.Preview(100) != "abcdef" {
		t.Fatalf("expected full text, got %q", cat.Preview(100))
	}
}
