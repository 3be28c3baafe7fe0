package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/pkg/errors"
)

// pdfEpoch stamps every generated file so that identical descriptions give identical bytes.
var pdfEpoch = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

const (
	creator     = "Masomo Apply"
	labelWidth  = 55.0
	lineHeight  = 6.0
	marginLeft  = 20.0
	marginTop   = 20.0
	marginRight = 20.0
)

// SerializePDF renders d as an A4 PDF. The output is deterministic.
func SerializePDF(d Description) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(marginLeft, marginTop, marginRight)
	pdf.SetAutoPageBreak(true, 20)
	pdf.SetCreationDate(pdfEpoch)
	pdf.SetModificationDate(pdfEpoch)
	pdf.SetCatalogSort(true)
	pdf.SetCompression(true)
	pdf.SetTitle(d.Title, true)
	pdf.SetSubject(d.Subject, true)
	pdf.SetCreator(creator, true)
	pdf.AliasNbPages("")

	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.SetTextColor(128, 128, 128)
		pdf.CellFormat(0, 10, fmt.Sprintf("Page %d of {nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	width, _ := pdf.GetPageSize()
	contentWidth := width - marginLeft - marginRight

	for i, page := range d.Pages {
		pdf.AddPage()
		if i == 0 {
			pdf.SetFont("Helvetica", "B", 18)
			pdf.SetTextColor(20, 40, 80)
			pdf.MultiCell(contentWidth, 9, tr(d.Title), "", "L", false)
			pdf.SetFont("Helvetica", "", 10)
			pdf.SetTextColor(100, 100, 100)
			pdf.CellFormat(contentWidth, lineHeight, tr(d.Subject), "", 1, "L", false, 0, "")
			pdf.Ln(4)
		}
		for _, sec := range page.Sections {
			writeSection(pdf, tr, sec, contentWidth)
		}
	}

	if err := pdf.Error(); err != nil {
		return nil, errors.Wrap(err, "rendering pdf")
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, errors.Wrap(err, "writing pdf")
	}
	return buf.Bytes(), nil
}

func writeSection(pdf *fpdf.Fpdf, tr func(string) string, sec Section, width float64) {
	pdf.SetFont("Helvetica", "B", 13)
	pdf.SetTextColor(20, 40, 80)
	pdf.CellFormat(width, 8, tr(sec.Heading), "B", 1, "L", false, 0, "")
	pdf.Ln(2)

	pdf.SetTextColor(0, 0, 0)
	for _, f := range sec.Fields {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(labelWidth, lineHeight, tr(f.Label), "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(width-labelWidth, lineHeight, tr(f.Value), "", "L", false)
	}
	pdf.SetFont("Helvetica", "", 10)
	for _, item := range sec.Items {
		pdf.CellFormat(5, lineHeight, tr("•"), "", 0, "L", false, 0, "")
		pdf.MultiCell(width-5, lineHeight, tr(item), "", "L", false)
	}
	for _, p := range sec.Paragraphs {
		pdf.MultiCell(width, lineHeight, tr(p), "", "J", false)
		pdf.Ln(2)
	}
	pdf.Ln(4)
}
