package xlsxexport

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invoiceflow/internal/domain"
)

func sampleInvoice(number string) domain.Invoice {
	return domain.Invoice{
		ID:            uuid.New(),
		BusinessName:  "Acme Studio",
		InvoiceNumber: number,
		InvoiceDate:   "2024-03-15",
		DueDate:       "2024-04-14",
		ClientName:    "Globex Inc",
		ClientEmail:   "billing@globex.test",
		Currency:      "USD",
		TaxRate:       decimal.RequireFromString("8"),
		DiscountType:  domain.DiscountPercentage,
		DiscountValue: decimal.RequireFromString("10"),
		Totals: domain.Totals{
			Subtotal:       decimal.RequireFromString("250"),
			DiscountAmount: decimal.RequireFromString("25"),
			TaxableAmount:  decimal.RequireFromString("225"),
			TaxAmount:      decimal.RequireFromString("18"),
			GrandTotal:     decimal.RequireFromString("243"),
		},
		PaymentTerms: "Net 30",
		Status:       domain.StatusSent,
		Items: []domain.LineItem{
			{Description: "Design", Quantity: 2, Rate: decimal.RequireFromString("100")},
			{Description: "Hosting", Quantity: 1, Rate: decimal.RequireFromString("50")},
		},
		CreatedAt: time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC),
	}
}

func TestBuildWorkbook_HeaderAndRows(t *testing.T) {
	f, err := BuildWorkbook([]domain.Invoice{sampleInvoice("INV-001"), sampleInvoice("INV-002")})
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Len(t, rows[0], 16)
	assert.Equal(t, "Invoice Number", rows[0][0])
	assert.Equal(t, "Created At", rows[0][15])

	assert.Equal(t, "INV-001", rows[1][0])
	assert.Equal(t, "sent", rows[1][1])
	assert.Equal(t, "250.00", rows[1][8])
	assert.Equal(t, "25.00", rows[1][9])
	assert.Equal(t, "8", rows[1][10])
	assert.Equal(t, "18.00", rows[1][11])
	assert.Equal(t, "243.00", rows[1][12])
	assert.Equal(t, "2", rows[1][13])
	assert.Equal(t, "2024-03-15T10:30:00Z", rows[1][15])

	assert.Equal(t, "INV-002", rows[2][0])
}

func TestBuildWorkbook_Empty(t *testing.T) {
	f, err := BuildWorkbook(nil)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)
	require.Len(t, rows, 1)
}

func TestBuildFilename(t *testing.T) {
	name := BuildFilename()
	assert.True(t, strings.HasPrefix(name, "invoices_"))
	assert.True(t, strings.HasSuffix(name, ".xlsx"))
}
