package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LineItem is one billable row on an invoice draft.
type LineItem struct {
	Description string          `db:"description" json:"description"`
	Quantity    int             `db:"quantity" json:"quantity"`
	Rate        decimal.Decimal `db:"rate" json:"rate"`
}

// Amount returns the extended amount (quantity x rate) for the line.
func (li LineItem) Amount() decimal.Decimal {
	return li.Rate.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// Discount is the reduction applied to the subtotal. Exactly one variant is
// active, selected by Type; Value is ignored for DiscountNone.
type Discount struct {
	Type  DiscountType    `json:"type"`
	Value decimal.Decimal `json:"value"`
}

// Totals is the reconciled set of monetary amounts derived from the line
// items, tax rate, and discount. Immutable once computed.
//
// TaxableAmount = Subtotal - DiscountAmount and GrandTotal = TaxableAmount +
// TaxAmount always hold. DiscountAmount is not clamped to the subtotal: a
// fixed discount larger than the subtotal yields a negative taxable amount,
// tax, and grand total.
type Totals struct {
	Subtotal       decimal.Decimal `db:"subtotal" json:"subtotal"`
	DiscountAmount decimal.Decimal `db:"discount_amount" json:"discount_amount"`
	TaxableAmount  decimal.Decimal `db:"taxable_amount" json:"taxable_amount"`
	TaxAmount      decimal.Decimal `db:"tax_amount" json:"tax_amount"`
	GrandTotal     decimal.Decimal `db:"total" json:"total"`
}

// InvoiceDocument is the immutable render input: everything the preview and
// the PDF need, including already-reconciled totals. Constructed fresh per
// render, either from current form state (totals just computed) or from a
// persisted invoice (totals trusted as stored).
type InvoiceDocument struct {
	BusinessName    string
	BusinessAddress string
	BusinessPhone   string
	BusinessEmail   string
	BusinessWebsite string
	BusinessLogo    string // base64 data URL, may be empty

	InvoiceNumber string
	InvoiceDate   string
	DueDate       string

	ClientName    string
	ClientEmail   string
	ClientAddress string
	ClientPhone   string

	Currency     string
	TaxRate      decimal.Decimal
	Discount     Discount
	PaymentTerms string
	Notes        string
	Footer       string

	Items  []LineItem
	Totals Totals
}

// Invoice is the persisted record of a created invoice. Monetary fields are
// decimal throughout and serialize as decimal strings.
type Invoice struct {
	ID uuid.UUID `db:"id" json:"id"`

	BusinessName    string `db:"business_name" json:"business_name"`
	BusinessAddress string `db:"business_address" json:"business_address"`
	BusinessPhone   string `db:"business_phone" json:"business_phone"`
	BusinessEmail   string `db:"business_email" json:"business_email"`
	BusinessWebsite string `db:"business_website" json:"business_website"`
	BusinessLogo    string `db:"business_logo" json:"business_logo"`

	InvoiceNumber string `db:"invoice_number" json:"invoice_number"`
	InvoiceDate   string `db:"invoice_date" json:"invoice_date"`
	DueDate       string `db:"due_date" json:"due_date"`

	ClientName    string `db:"client_name" json:"client_name"`
	ClientEmail   string `db:"client_email" json:"client_email"`
	ClientAddress string `db:"client_address" json:"client_address"`
	ClientPhone   string `db:"client_phone" json:"client_phone"`

	Currency      string          `db:"currency" json:"currency"`
	TaxRate       decimal.Decimal `db:"tax_rate" json:"tax_rate"`
	DiscountType  DiscountType    `db:"discount_type" json:"discount_type"`
	DiscountValue decimal.Decimal `db:"discount_value" json:"discount_value"`

	Totals `json:"totals"`

	PaymentTerms string `db:"payment_terms" json:"payment_terms"`
	Notes        string `db:"notes" json:"notes"`
	Footer       string `db:"footer" json:"footer"`

	Status InvoiceStatus `db:"status" json:"status"`

	Items []LineItem `db:"-" json:"items"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Document builds the render input for a persisted invoice. The stored
// totals are carried over as-is, without recomputation.
func (inv *Invoice) Document() InvoiceDocument {
	return InvoiceDocument{
		BusinessName:    inv.BusinessName,
		BusinessAddress: inv.BusinessAddress,
		BusinessPhone:   inv.BusinessPhone,
		BusinessEmail:   inv.BusinessEmail,
		BusinessWebsite: inv.BusinessWebsite,
		BusinessLogo:    inv.BusinessLogo,
		InvoiceNumber:   inv.InvoiceNumber,
		InvoiceDate:     inv.InvoiceDate,
		DueDate:         inv.DueDate,
		ClientName:      inv.ClientName,
		ClientEmail:     inv.ClientEmail,
		ClientAddress:   inv.ClientAddress,
		ClientPhone:     inv.ClientPhone,
		Currency:        inv.Currency,
		TaxRate:         inv.TaxRate,
		Discount:        Discount{Type: inv.DiscountType, Value: inv.DiscountValue},
		PaymentTerms:    inv.PaymentTerms,
		Notes:           inv.Notes,
		Footer:          inv.Footer,
		Items:           inv.Items,
		Totals:          inv.Totals,
	}
}
