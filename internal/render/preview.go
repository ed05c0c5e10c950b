// Package render turns an InvoiceDocument into its visual representations:
// a structured preview for on-screen display and a paginated PDF for
// download. Both derive from the same input so they can never disagree.
package render

import (
	"fmt"

	"invoiceflow/internal/domain"
)

// Preview is the structured on-screen representation of an invoice. Every
// string is fully formatted; the UI only places the blocks.
type Preview struct {
	Title         string        `json:"title"`
	InvoiceNumber string        `json:"invoice_number"`
	Business      PartyBlock    `json:"business"`
	Client        PartyBlock    `json:"client"`
	Meta          []MetaField   `json:"meta"`
	Items         []PreviewItem `json:"items"`
	TotalLines    []TotalLine   `json:"total_lines"`
	Notes         string        `json:"notes,omitempty"`
	Footer        string        `json:"footer,omitempty"`
}

// PartyBlock holds the identity lines for the business or the client.
// Optional fields are omitted entirely so following lines shift up.
type PartyBlock struct {
	Name  string   `json:"name"`
	Lines []string `json:"lines,omitempty"`
}

// MetaField is one labeled entry of the invoice details block.
type MetaField struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// PreviewItem is one formatted row of the line-item table.
type PreviewItem struct {
	Description string `json:"description"`
	Quantity    string `json:"quantity"`
	Rate        string `json:"rate"`
	Amount      string `json:"amount"`
}

// TotalLine is one row of the totals summary. Emphasized marks the grand
// total.
type TotalLine struct {
	Label      string `json:"label"`
	Amount     string `json:"amount"`
	Emphasized bool   `json:"emphasized,omitempty"`
}

// BuildPreview lays out doc in fixed reading order. The conditional rules
// match the PDF exactly: the discount line appears only when the discount
// amount is positive (with the percentage in the label for that variant),
// the tax line only when the tax amount is non-zero, and notes/footer only
// when non-empty.
func BuildPreview(doc domain.InvoiceDocument) Preview {
	p := Preview{
		Title:         "INVOICE",
		InvoiceNumber: doc.InvoiceNumber,
		Business: PartyBlock{
			Name:  doc.BusinessName,
			Lines: partyLines(doc.BusinessAddress, doc.BusinessPhone, doc.BusinessEmail, doc.BusinessWebsite),
		},
		Client: PartyBlock{
			Name:  doc.ClientName,
			Lines: partyLines(doc.ClientEmail, doc.ClientPhone, doc.ClientAddress),
		},
		Notes:  doc.Notes,
		Footer: doc.Footer,
	}

	p.Meta = metaFields(doc)

	for _, it := range doc.Items {
		p.Items = append(p.Items, PreviewItem{
			Description: it.Description,
			Quantity:    fmt.Sprintf("%d", it.Quantity),
			Rate:        FormatAmount(doc.Currency, it.Rate),
			Amount:      FormatAmount(doc.Currency, it.Amount()),
		})
	}

	p.TotalLines = totalLines(doc)
	return p
}

// metaFields builds the shared metadata block used by both the preview and
// the PDF. Payment terms only appear when set.
func metaFields(doc domain.InvoiceDocument) []MetaField {
	meta := []MetaField{
		{Label: "Invoice Date", Value: FormatLongDate(doc.InvoiceDate)},
		{Label: "Due Date", Value: FormatLongDate(doc.DueDate)},
		{Label: "Currency", Value: doc.Currency},
	}
	if doc.PaymentTerms != "" {
		meta = append(meta, MetaField{Label: "Payment Terms", Value: doc.PaymentTerms})
	}
	return meta
}

// totalLines builds the shared totals summary used by both the preview and
// the PDF.
func totalLines(doc domain.InvoiceDocument) []TotalLine {
	lines := []TotalLine{
		{Label: "Subtotal", Amount: FormatAmount(doc.Currency, doc.Totals.Subtotal)},
	}
	if doc.Totals.DiscountAmount.IsPositive() {
		label := "Discount"
		if doc.Discount.Type == domain.DiscountPercentage {
			label = fmt.Sprintf("Discount (%s%%)", doc.Discount.Value.String())
		}
		lines = append(lines, TotalLine{
			Label:  label,
			Amount: "-" + FormatAmount(doc.Currency, doc.Totals.DiscountAmount),
		})
	}
	if !doc.Totals.TaxAmount.IsZero() {
		lines = append(lines, TotalLine{
			Label:  fmt.Sprintf("Tax (%s%%)", doc.TaxRate.String()),
			Amount: FormatAmount(doc.Currency, doc.Totals.TaxAmount),
		})
	}
	lines = append(lines, TotalLine{
		Label:      "Total",
		Amount:     FormatAmount(doc.Currency, doc.Totals.GrandTotal),
		Emphasized: true,
	})
	return lines
}

func partyLines(fields ...string) []string {
	var lines []string
	for _, f := range fields {
		if f != "" {
			lines = append(lines, f)
		}
	}
	return lines
}
