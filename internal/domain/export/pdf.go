package export

import (
	"io"

	"github.com/jung-kurt/gofpdf"
)

const pdfPageWidth = 277.0

func WritePDF(w io.Writer, t Table) error {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, t.Title)
	pdf.Ln(12)

	if len(t.Header) == 0 {
		return pdf.Output(w)
	}
	width := pdfPageWidth / float64(len(t.Header))
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Helvetica", "B", 8)
	for _, h := range t.Header {
		pdf.CellFormat(width, 7, tr(h), "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 8)
	for _, row := range t.Rows {
		for _, cell := range row {
			pdf.CellFormat(width, 6, tr(truncate(cell, 40)), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}
	return pdf.Output(w)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
