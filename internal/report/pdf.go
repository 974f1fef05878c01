package report

import (
	"errors"
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"

	"github.com/MKhiriev/go-sql-trainer/models"
)

// ErrRenderingPDF is returned when fpdf fails to produce the document.
var ErrRenderingPDF = errors.New("error rendering pdf")

// DocumentTitle is printed at the top of the first page.
const DocumentTitle = "Predefined Tables"

const (
	fontFamily = "Helvetica"
	rowHeight  = 7.0
)

type rgb struct{ r, g, b int }

var (
	colorGrey       = rgb{128, 128, 128}
	colorWhiteSmoke = rgb{245, 245, 245}
	colorBeige      = rgb{245, 245, 220}
	colorBlack      = rgb{0, 0, 0}
)

// RenderPDF writes a Letter-sized PDF with one titled grid per table, in the
// order given. Header cells use the table's Labels.
func RenderPDF(w io.Writer, tables []models.TableData) error {
	return renderPDF(w, tables, true)
}

func renderPDF(w io.Writer, tables []models.TableData, compress bool) error {
	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetCompression(compress)
	pdf.SetTitle(DocumentTitle, true)
	pdf.SetAutoPageBreak(true, 15)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()
	pdf.SetFont(fontFamily, "B", 20)
	pdf.CellFormat(0, 14, DocumentTitle, "", 1, "C", false, 0, "")
	pdf.Ln(4)

	for _, t := range tables {
		renderSection(pdf, tr, t)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("%w: %w", ErrRenderingPDF, err)
	}
	return nil
}

func renderSection(pdf *fpdf.Fpdf, tr func(string) string, t models.TableData) {
	pageWidth, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()

	header := t.Table.Labels
	if len(header) == 0 {
		header = t.Columns
	}
	if len(header) == 0 {
		return
	}
	colWidth := (pageWidth - left - right) / float64(len(header))

	pdf.SetFont(fontFamily, "B", 14)
	pdf.SetTextColor(colorBlack.r, colorBlack.g, colorBlack.b)
	pdf.CellFormat(0, 10, tr(t.Table.Title+" Table"), "", 1, "L", false, 0, "")

	pdf.SetDrawColor(colorBlack.r, colorBlack.g, colorBlack.b)
	pdf.SetLineWidth(0.3)

	pdf.SetFont(fontFamily, "B", 10)
	pdf.SetFillColor(colorGrey.r, colorGrey.g, colorGrey.b)
	pdf.SetTextColor(colorWhiteSmoke.r, colorWhiteSmoke.g, colorWhiteSmoke.b)
	for _, label := range header {
		pdf.CellFormat(colWidth, rowHeight, tr(label), "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont(fontFamily, "", 9)
	pdf.SetFillColor(colorBeige.r, colorBeige.g, colorBeige.b)
	pdf.SetTextColor(colorBlack.r, colorBlack.g, colorBlack.b)
	for _, row := range t.Rows {
		for i := range header {
			var cell string
			if i < len(row) {
				cell = row[i]
			}
			pdf.CellFormat(colWidth, rowHeight, fit(pdf, tr(cell), colWidth), "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
	}
	pdf.Ln(6)
}

// fit shortens s so that it fits in a cell of the given width.
func fit(pdf *fpdf.Fpdf, s string, width float64) string {
	const padding = 2.0
	if pdf.GetStringWidth(s) <= width-padding {
		return s
	}
	r := []rune(s)
	for len(r) > 0 && pdf.GetStringWidth(string(r)+"...") > width-padding {
		r = r[:len(r)-1]
	}
	return string(r) + "..."
}
