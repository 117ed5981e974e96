package export

import (
	"io"

	"github.com/go-pdf/fpdf"
)

var pdfColumnWidths = []float64{45, 45, 50, 85, 45}

const pdfRowHeight = 7

func writePDF(w io.Writer, rows [][]string) error {
	pdf := fpdf.New("L", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	header := func() {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.SetFillColor(41, 128, 185)
		pdf.SetTextColor(255, 255, 255)
		for i, col := range rows[0] {
			pdf.CellFormat(pdfColumnWidths[i], pdfRowHeight, tr(col), "1", 0, "L", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(0, 0, 0)
	}

	pdf.AddPage()
	header()

	_, pageHeight := pdf.GetPageSize()
	_, _, _, bottom := pdf.GetMargins()

	for _, row := range rows[1:] {
		if pdf.GetY()+pdfRowHeight > pageHeight-bottom {
			pdf.AddPage()
			header()
		}
		for i, value := range row {
			pdf.CellFormat(pdfColumnWidths[i], pdfRowHeight, tr(value), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	return pdf.Output(w)
}
