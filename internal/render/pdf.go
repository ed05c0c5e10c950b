package render

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"invoiceflow/internal/domain"
)

// A4 layout constants, in millimeters.
const (
	pageLeft   = 20.0
	pageRight  = 190.0
	pageBottom = 277.0
	tableBreak = 257.0 // last y at which a table row may start
)

// Column x positions of the line-item table.
const (
	colDescX   = pageLeft
	colQtyX    = 110.0
	colRateX   = 130.0
	colAmountX = 160.0
)

// accent is the highlight color used for the title and grand total.
var accent = [3]int{99, 102, 241}

// RenderPDF paints doc onto a fixed-layout A4 document and returns the
// finished PDF bytes. The renderer takes no clock and holds no state between
// calls, so rendering the same document twice produces the same pages; the
// exact byte layout can differ between calls because font objects are
// written in map order.
func RenderPDF(doc domain.InvoiceDocument) ([]byte, error) {
	pdf := buildPDF(doc)
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf %q: %w", doc.InvoiceNumber, err)
	}
	return buf.Bytes(), nil
}

func buildPDF(doc domain.InvoiceDocument) *gofpdf.Fpdf {
	pdf := gofpdf.New("P", "mm", "A4", "")
	// Fixed creation date so output never depends on the clock.
	pdf.SetCreationDate(time.Unix(0, 0))
	pdf.SetAutoPageBreak(false, 0)
	// Core fonts are cp1252, which has no rupee sign. INR amounts use "Rs."
	// in the PDF; the HTML preview keeps the real symbol.
	cp1252 := pdf.UnicodeTranslatorFromDescriptor("")
	tr := func(s string) string {
		return cp1252(strings.ReplaceAll(s, "₹", "Rs. "))
	}
	pdf.AddPage()

	drawHeader(pdf, tr, doc)
	drawBusinessBlock(pdf, tr, doc)
	drawMetaBlock(pdf, tr, doc)
	drawBillToBlock(pdf, tr, doc)
	drawItemsTable(pdf, tr, doc)
	drawTotals(pdf, tr, doc)
	drawNotesAndFooter(pdf, tr, doc)
	return pdf
}

// FileName returns the download name for a rendered invoice,
// "<invoiceNumber>.pdf". The number is sanitized for use in a
// Content-Disposition header.
func FileName(invoiceNumber string) string {
	name := sanitizeFilename(invoiceNumber)
	if name == "" {
		name = "invoice"
	}
	return name + ".pdf"
}

func drawHeader(pdf *gofpdf.Fpdf, tr func(string) string, doc domain.InvoiceDocument) {
	pdf.SetFont("Helvetica", "B", 24)
	pdf.SetTextColor(accent[0], accent[1], accent[2])
	pdf.Text(pageLeft, 28, "INVOICE")

	pdf.SetFont("Helvetica", "", 12)
	pdf.SetTextColor(90, 90, 90)
	pdf.Text(pageLeft, 36, tr(doc.InvoiceNumber))

	drawLogo(pdf, doc.BusinessLogo)

	pdf.SetTextColor(0, 0, 0)
	pdf.SetY(44)
}

// drawLogo embeds the business logo top-right when it decodes to a PNG or
// JPEG image. Malformed data is skipped and the render proceeds without it.
func drawLogo(pdf *gofpdf.Fpdf, dataURL string) {
	img, imgType, err := decodeLogo(dataURL)
	if err != nil {
		return
	}
	name := "business-logo"
	opts := gofpdf.ImageOptions{ImageType: imgType, ReadDpi: true}
	pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(img))
	if pdf.Err() {
		// Unreadable image data must not abort the render.
		pdf.ClearError()
		return
	}
	pdf.ImageOptions(name, 162, 14, 28, 0, false, opts, 0, "")
}

// decodeLogo extracts the raw image bytes from a base64 data URL and sniffs
// the format. Only PNG and JPEG are embeddable.
func decodeLogo(dataURL string) ([]byte, string, error) {
	if dataURL == "" {
		return nil, "", fmt.Errorf("no logo")
	}
	payload := dataURL
	if strings.HasPrefix(dataURL, "data:") {
		idx := strings.Index(dataURL, ",")
		if idx < 0 {
			return nil, "", fmt.Errorf("malformed data URL")
		}
		payload = dataURL[idx+1:]
	}
	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", fmt.Errorf("decode logo: %w", err)
	}
	switch {
	case bytes.HasPrefix(raw, []byte("\x89PNG\r\n\x1a\n")):
		return raw, "PNG", nil
	case bytes.HasPrefix(raw, []byte{0xFF, 0xD8, 0xFF}):
		return raw, "JPG", nil
	}
	return nil, "", fmt.Errorf("unsupported logo format")
}

func drawBusinessBlock(pdf *gofpdf.Fpdf, tr func(string) string, doc domain.InvoiceDocument) {
	pdf.SetX(pageLeft)
	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(0, 6, tr(doc.BusinessName), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(90, 90, 90)
	for _, line := range partyLines(doc.BusinessAddress, doc.BusinessPhone, doc.BusinessEmail, doc.BusinessWebsite) {
		pdf.SetX(pageLeft)
		pdf.CellFormat(0, 4.5, tr(line), "", 1, "L", false, 0, "")
	}
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(4)
}

func drawMetaBlock(pdf *gofpdf.Fpdf, tr func(string) string, doc domain.InvoiceDocument) {
	pdf.SetFont("Helvetica", "", 10)
	for _, f := range metaFields(doc) {
		pdf.SetX(pageLeft)
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(35, 5.5, tr(f.Label+":"), "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(0, 5.5, tr(f.Value), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)
}

func drawBillToBlock(pdf *gofpdf.Fpdf, tr func(string) string, doc domain.InvoiceDocument) {
	pdf.SetX(pageLeft)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(0, 6, "Bill To:", "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetX(pageLeft)
	pdf.CellFormat(0, 5, tr(doc.ClientName), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(90, 90, 90)
	for _, line := range partyLines(doc.ClientEmail, doc.ClientPhone, doc.ClientAddress) {
		pdf.SetX(pageLeft)
		pdf.CellFormat(0, 4.5, tr(line), "", 1, "L", false, 0, "")
	}
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(6)
}

func drawTableHeader(pdf *gofpdf.Fpdf) {
	y := pdf.GetY()
	pdf.SetFont("Helvetica", "B", 10)
	pdf.Text(colDescX, y, "Description")
	pdf.Text(colQtyX, y, "Qty")
	pdf.Text(colRateX, y, "Rate")
	pdf.Text(colAmountX, y, "Amount")
	pdf.Line(pageLeft, y+2, pageRight, y+2)
	pdf.SetY(y + 8)
	pdf.SetFont("Helvetica", "", 10)
}

func drawItemsTable(pdf *gofpdf.Fpdf, tr func(string) string, doc domain.InvoiceDocument) {
	drawTableHeader(pdf)
	for _, item := range doc.Items {
		if pdf.GetY() > tableBreak {
			pdf.AddPage()
			pdf.SetY(24)
			drawTableHeader(pdf)
		}
		y := pdf.GetY()
		pdf.Text(colDescX, y, tr(item.Description))
		pdf.Text(colQtyX, y, fmt.Sprintf("%d", item.Quantity))
		pdf.Text(colRateX, y, tr(FormatAmount(doc.Currency, item.Rate)))
		pdf.Text(colAmountX, y, tr(FormatAmount(doc.Currency, item.Amount())))
		pdf.SetY(y + 7)
	}
	pdf.Line(pageLeft, pdf.GetY(), pageRight, pdf.GetY())
	pdf.Ln(6)
}

func drawTotals(pdf *gofpdf.Fpdf, tr func(string) string, doc domain.InvoiceDocument) {
	lines := totalLines(doc)
	needed := float64(len(lines))*7 + 10
	if pdf.GetY()+needed > pageBottom {
		pdf.AddPage()
		pdf.SetY(24)
	}

	labelX := 120.0
	for _, line := range lines {
		y := pdf.GetY()
		if line.Emphasized {
			pdf.Line(labelX, y-2, pageRight, y-2)
			pdf.SetFont("Helvetica", "B", 13)
			pdf.SetTextColor(accent[0], accent[1], accent[2])
			y += 2
		}
		pdf.Text(labelX, y, tr(line.Label+":"))
		w := pdf.GetStringWidth(tr(line.Amount))
		pdf.Text(pageRight-w, y, tr(line.Amount))
		pdf.SetY(y + 7)
	}
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(4)
}

func drawNotesAndFooter(pdf *gofpdf.Fpdf, tr func(string) string, doc domain.InvoiceDocument) {
	if doc.Notes != "" {
		drawTextBlock(pdf, tr, "Notes:", doc.Notes, "L")
	}
	if doc.Footer != "" {
		drawTextBlock(pdf, tr, "", doc.Footer, "C")
	}
}

// drawTextBlock writes an optional heading followed by wrapped body text,
// continuing onto a new page when the fixed page bounds run out.
func drawTextBlock(pdf *gofpdf.Fpdf, tr func(string) string, heading, body, align string) {
	if pdf.GetY() > tableBreak {
		pdf.AddPage()
		pdf.SetY(24)
	}
	if heading != "" {
		pdf.SetX(pageLeft)
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(0, 6, heading, "", 1, "L", false, 0, "")
	}
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(90, 90, 90)
	lines := pdf.SplitText(tr(body), pageRight-pageLeft)
	for _, line := range lines {
		if pdf.GetY() > pageBottom-6 {
			pdf.AddPage()
			pdf.SetY(24)
		}
		pdf.SetX(pageLeft)
		pdf.CellFormat(pageRight-pageLeft, 4.5, line, "", 1, align, false, 0, "")
	}
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(4)
}
