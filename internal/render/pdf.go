// Package render lays an invoice out on an A4 page and produces the
// print-ready PDF. Rendering is a pure function of the invoice and the
// issuer settings: the same inputs always produce the same bytes.
package render

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image/png"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"pharmacare-system/internal/billing"
)

// Mode selects the output sink. Both modes render identical bytes; only the
// delivery disposition differs.
type Mode int

const (
	ModeDownload Mode = iota
	ModePreview
)

// Document is a finished render. Filename follows <invoiceNumber>.pdf with
// the number taken verbatim; sanitize upstream if the numbering scheme can
// produce path-unsafe characters.
type Document struct {
	Filename string
	Inline   bool
	Data     []byte
}

const (
	leftMargin  = 14.0
	rightEdge   = 196.0
	topMargin   = 20.0
	tableTop    = 65.0
	tableBottom = 277.0
	headerRowH  = 8.0
	rowH        = 10.0
	termsLineH  = 4.0
	termsWidth  = 90.0
	pageBottom  = 287.0
)

type tableColumn struct {
	title string
	width float64
	align string
}

var tableColumns = []tableColumn{
	{"Sr", 10, "C"},
	{"Item", 62, "L"},
	{"HSN", 20, "L"},
	{"Exp", 18, "L"},
	{"Qty", 12, "C"},
	{"Rate", 20, "L"},
	{"GST", 14, "L"},
	{"Amount", 26, "R"},
}

// The PDF creation date is pinned so repeated renders of the same invoice
// are byte-identical.
var fixedCreation = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)

// Generate renders the invoice with the given settings. A missing or
// undecodable signature image degrades to the text-only signature line;
// rendering itself never fails on bad assets.
func Generate(inv *billing.Invoice, settings billing.Settings, mode Mode) (*Document, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetCatalogSort(true)
	pdf.SetCreationDate(fixedCreation)
	pdf.SetModificationDate(fixedCreation)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	drawHeader(pdf, settings)
	drawInvoiceInfo(pdf, inv)
	tableEnd := drawItemTable(pdf, inv)

	// Terms must be wrapped before the footer band is positioned: the bank
	// details sit below however many lines the terms actually take.
	pdf.SetFont("Helvetica", "", 8)
	termsLines := splitTerms(pdf, settings.Terms)

	layout := layoutFooter(tableEnd, len(termsLines))
	if layout.bottom() > pageBottom {
		pdf.AddPage()
		layout = layoutFooter(topMargin, len(termsLines))
	}

	drawSummaryBox(pdf, inv, layout)
	drawFooter(pdf, settings, termsLines, layout)
	drawSignature(pdf, inv.InvoiceNumber, settings, layout)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render invoice %s: %w", inv.InvoiceNumber, err)
	}
	return &Document{
		Filename: inv.InvoiceNumber + ".pdf",
		Inline:   mode == ModePreview,
		Data:     buf.Bytes(),
	}, nil
}

func drawHeader(pdf *gofpdf.Fpdf, s billing.Settings) {
	pdf.SetFont("Helvetica", "", 20)
	pdf.SetTextColor(40, 40, 40)
	pdf.Text(leftMargin, 20, s.PharmacyName)

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(80, 80, 80)
	pdf.Text(leftMargin, 26, s.Address)
	pdf.Text(leftMargin, 32, fmt.Sprintf("Phone: %s | GSTIN: %s", s.Phone, s.GSTIN))

	pdf.SetDrawColor(200, 200, 200)
	pdf.Line(leftMargin, 36, rightEdge, 36)
}

func drawInvoiceInfo(pdf *gofpdf.Fpdf, inv *billing.Invoice) {
	pdf.SetFont("Helvetica", "", 12)
	pdf.SetTextColor(40, 40, 40)
	pdf.Text(leftMargin, 45, "TAX INVOICE")

	pdf.SetFont("Helvetica", "", 10)
	pdf.Text(leftMargin, 52, "Invoice No: "+inv.InvoiceNumber)
	pdf.Text(leftMargin, 58, "Date: "+inv.Date)

	pdf.Text(120, 52, "Customer: "+inv.CustomerName)
	if inv.CustomerGST != "" {
		pdf.Text(120, 58, "GSTIN: "+inv.CustomerGST)
	}
}

// drawItemTable renders the line items in entry order, breaking to a new
// page with a repeated header row whenever the remaining height runs out.
// It returns the y position just under the last row drawn.
func drawItemTable(pdf *gofpdf.Fpdf, inv *billing.Invoice) float64 {
	y := drawTableHead(pdf, tableTop)
	for i, item := range inv.Items {
		if y+rowH > tableBottom {
			pdf.AddPage()
			y = drawTableHead(pdf, topMargin)
		}
		drawTableRow(pdf, y, i, item)
		y += rowH
	}
	return y
}

func drawTableHead(pdf *gofpdf.Fpdf, y float64) float64 {
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(14, 165, 233)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetXY(leftMargin, y)
	for _, col := range tableColumns {
		pdf.CellFormat(col.width, headerRowH, col.title, "1", 0, "C", true, 0, "")
	}
	return y + headerRowH
}

func drawTableRow(pdf *gofpdf.Fpdf, y float64, index int, item billing.InvoiceItem) {
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(40, 40, 40)

	cells := []string{
		strconv.Itoa(index + 1),
		"", // name and batch are drawn as two lines below
		item.HSNCode,
		item.ExpiryDate,
		strconv.Itoa(item.Quantity),
		item.Rate.StringFixed(2),
		strconv.Itoa(item.GSTRate) + "%",
		item.TotalAmount.StringFixed(2),
	}

	x := leftMargin
	for i, col := range tableColumns {
		pdf.SetXY(x, y)
		pdf.CellFormat(col.width, rowH, cells[i], "1", 0, col.align, false, 0, "")
		x += col.width
	}

	itemX := leftMargin + tableColumns[0].width + 2
	pdf.Text(itemX, y+4, item.Name)
	pdf.Text(itemX, y+8, "Batch: "+item.BatchNumber)
}

// footerLayout anchors every block below the item table. All offsets are
// relative to anchorY, which is the table end (or the top margin when the
// footer band spilled onto a fresh page).
type footerLayout struct {
	summaryY   float64 // summary box baseline
	termsY     float64 // first wrapped terms line
	bankY      float64 // "Bank Details:" label, below the wrapped terms
	signatureY float64 // signature image top
}

func layoutFooter(anchorY float64, termsLineCount int) footerLayout {
	f := anchorY + 10
	termsY := f + 20
	return footerLayout{
		summaryY:   f,
		termsY:     termsY,
		bankY:      termsY + float64(termsLineCount)*termsLineH + 8,
		signatureY: f + 35,
	}
}

func (l footerLayout) bottom() float64 {
	bankEnd := l.bankY + 15
	signatureEnd := l.signatureY + 20
	if bankEnd > signatureEnd {
		return bankEnd
	}
	return signatureEnd
}

func drawSummaryBox(pdf *gofpdf.Fpdf, inv *billing.Invoice, layout footerLayout) {
	f := layout.summaryY

	pdf.SetFillColor(248, 250, 252)
	pdf.Rect(130, f-5, 70, 35, "F")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(40, 40, 40)
	pdf.Text(135, f, "Total Qty:")
	textRight(pdf, 195, f, strconv.Itoa(inv.TotalQuantity()))

	pdf.Text(135, f+6, "Sub Total:")
	textRight(pdf, 195, f+6, "Rs. "+inv.SubTotal.StringFixed(2))

	pdf.Text(135, f+12, "Tax (GST):")
	textRight(pdf, 195, f+12, "Rs. "+inv.TotalTax.StringFixed(2))

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Text(135, f+22, "Grand Total:")
	textRight(pdf, 195, f+22, "Rs. "+inv.GrandTotal.StringFixed(2))
}

func drawFooter(pdf *gofpdf.Fpdf, s billing.Settings, termsLines []string, layout footerLayout) {
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(100, 100, 100)

	pdf.Text(leftMargin, layout.termsY-5, "Terms & Conditions:")
	for i, line := range termsLines {
		pdf.Text(leftMargin, layout.termsY+float64(i)*termsLineH, line)
	}

	if s.BankName == "" && s.AccountNumber == "" {
		return
	}
	pdf.SetFont("Helvetica", "B", 8)
	pdf.Text(leftMargin, layout.bankY, "Bank Details:")
	pdf.SetFont("Helvetica", "", 8)
	y := layout.bankY + 5
	for _, line := range []string{
		bankLine("Bank: ", s.BankName),
		bankLine("A/c No: ", s.AccountNumber),
		bankLine("IFSC: ", s.IFSC),
	} {
		if line == "" {
			continue
		}
		pdf.Text(leftMargin, y, line)
		y += 5
	}
}

func bankLine(label, value string) string {
	if value == "" {
		return ""
	}
	return label + value
}

func drawSignature(pdf *gofpdf.Fpdf, invoiceNumber string, s billing.Settings, layout footerLayout) {
	if raw, ok := decodeSignature(s.SignatureImage); ok {
		opts := gofpdf.ImageOptions{ImageType: "PNG"}
		pdf.RegisterImageOptionsReader("signature", opts, bytes.NewReader(raw))
		if pdf.Err() {
			log.Printf("invoice %s: skipping unrenderable signature image: %v", invoiceNumber, pdf.Error())
			pdf.ClearError()
		} else {
			pdf.ImageOptions("signature", 150, layout.signatureY, 30, 15, false, opts, 0, "")
		}
	}
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(100, 100, 100)
	pdf.Text(155, layout.signatureY+20, "Authorized Signatory")
}

// decodeSignature accepts a bare base64 PNG or a data URI and rejects
// anything that does not decode to a readable PNG.
func decodeSignature(data string) ([]byte, bool) {
	if data == "" {
		return nil, false
	}
	if strings.HasPrefix(data, "data:") {
		i := strings.Index(data, ",")
		if i < 0 {
			return nil, false
		}
		data = data[i+1:]
	}
	raw, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return nil, false
	}
	if _, err := png.DecodeConfig(bytes.NewReader(raw)); err != nil {
		return nil, false
	}
	return raw, true
}

func splitTerms(pdf *gofpdf.Fpdf, terms string) []string {
	if terms == "" {
		return nil
	}
	return pdf.SplitText(terms, termsWidth)
}

func textRight(pdf *gofpdf.Fpdf, x, y float64, s string) {
	pdf.Text(x-pdf.GetStringWidth(s), y, s)
}
