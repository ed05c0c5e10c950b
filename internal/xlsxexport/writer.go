// Package xlsxexport converts stored invoices into an Excel workbook for
// download. One row per invoice; line items are summarized as a count.
package xlsxexport

import (
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"invoiceflow/internal/domain"
)

const sheetName = "Invoices"

// columns defines the header row (16 columns).
var columns = []string{
	"Invoice Number",
	"Status",
	"Invoice Date",
	"Due Date",
	"Business Name",
	"Client Name",
	"Client Email",
	"Currency",
	"Subtotal",
	"Discount",
	"Tax Rate",
	"Tax",
	"Total",
	"Line Item Count",
	"Payment Terms",
	"Created At",
}

// BuildWorkbook returns an in-memory workbook with a header row followed by
// one row per invoice, in the order given.
func BuildWorkbook(invoices []domain.Invoice) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	header := make([]interface{}, len(columns))
	for i, c := range columns {
		header[i] = c
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	for i := range invoices {
		row := invoiceToRow(&invoices[i])
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+1, err)
		}
	}
	return f, nil
}

// invoiceToRow converts a single invoice to a 16-element row.
func invoiceToRow(inv *domain.Invoice) []interface{} {
	return []interface{}{
		inv.InvoiceNumber,
		string(inv.Status),
		inv.InvoiceDate,
		inv.DueDate,
		inv.BusinessName,
		inv.ClientName,
		inv.ClientEmail,
		inv.Currency,
		formatMoney(inv.Subtotal),
		formatMoney(inv.DiscountAmount),
		inv.TaxRate.String(),
		formatMoney(inv.TaxAmount),
		formatMoney(inv.GrandTotal),
		strconv.Itoa(len(inv.Items)),
		inv.PaymentTerms,
		inv.CreatedAt.Format(time.RFC3339),
	}
}

func formatMoney(v decimal.Decimal) string {
	return v.StringFixed(2)
}

// BuildFilename returns the filename for Content-Disposition.
// Format: invoices_{YYYY-MM-DD}.xlsx
func BuildFilename() string {
	return fmt.Sprintf("invoices_%s.xlsx", time.Now().Format("2006-01-02"))
}
