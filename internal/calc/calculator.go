// Package calc computes invoice totals. It is the single calculation module
// shared by the live-preview path and the persistence path, so the two can
// never diverge.
package calc

import (
	"github.com/shopspring/decimal"

	"invoiceflow/internal/domain"
)

var oneHundred = decimal.NewFromInt(100)

// ComputeTotals reconciles line items, a tax rate (percent units), and a
// discount into a Totals value.
//
// The function is total: an empty item list yields a zero subtotal, and a
// fixed discount exceeding the subtotal yields negative taxable, tax, and
// grand total amounts, propagated without clamping. All arithmetic stays in
// full decimal precision; rounding to two places happens only when amounts
// are formatted for display.
func ComputeTotals(items []domain.LineItem, taxRate decimal.Decimal, discount domain.Discount) domain.Totals {
	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.Amount())
	}

	var discountAmount decimal.Decimal
	switch discount.Type {
	case domain.DiscountPercentage:
		discountAmount = subtotal.Mul(discount.Value).Div(oneHundred)
	case domain.DiscountFixed:
		discountAmount = discount.Value
	default:
		discountAmount = decimal.Zero
	}

	taxable := subtotal.Sub(discountAmount)
	tax := taxable.Mul(taxRate).Div(oneHundred)

	return domain.Totals{
		Subtotal:       subtotal,
		DiscountAmount: discountAmount,
		TaxableAmount:  taxable,
		TaxAmount:      tax,
		GrandTotal:     taxable.Add(tax),
	}
}
