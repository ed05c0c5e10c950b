package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"invoiceflow/internal/domain"
	"invoiceflow/internal/service"
	"invoiceflow/mocks"
)

func validInput() *service.InvoiceInput {
	return &service.InvoiceInput{
		BusinessName:  "Acme Studio",
		InvoiceNumber: "INV-001",
		InvoiceDate:   "2024-03-15",
		DueDate:       "2024-04-14",
		ClientName:    "Globex Inc",
		Currency:      "USD",
		TaxRate:       decimal.RequireFromString("8"),
		DiscountType:  domain.DiscountPercentage,
		DiscountValue: decimal.RequireFromString("10"),
		Items: []service.LineItemInput{
			{Description: "Design", Quantity: 2, Rate: decimal.RequireFromString("100")},
			{Description: "Hosting", Quantity: 1, Rate: decimal.RequireFromString("50")},
		},
	}
}

func TestInvoiceService_Create_ComputesTotals(t *testing.T) {
	repo := new(mocks.MockInvoiceRepo)
	svc := service.NewInvoiceService(repo)

	repo.On("GetByNumber", mock.Anything, "INV-001").Return(nil, domain.ErrNotFound)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Invoice")).Return(nil)

	inv, err := svc.Create(context.Background(), validInput())

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, inv.ID)
	assert.Equal(t, domain.StatusDraft, inv.Status)
	assert.True(t, inv.Subtotal.Equal(decimal.RequireFromString("250")), "subtotal %s", inv.Subtotal)
	assert.True(t, inv.DiscountAmount.Equal(decimal.RequireFromString("25")), "discount %s", inv.DiscountAmount)
	assert.True(t, inv.TaxableAmount.Equal(decimal.RequireFromString("225")), "taxable %s", inv.TaxableAmount)
	assert.True(t, inv.TaxAmount.Equal(decimal.RequireFromString("18")), "tax %s", inv.TaxAmount)
	assert.True(t, inv.GrandTotal.Equal(decimal.RequireFromString("243")), "total %s", inv.GrandTotal)
	require.Len(t, inv.Items, 2)
	repo.AssertExpectations(t)
}

func TestInvoiceService_Create_DefaultsCurrencyAndDiscountType(t *testing.T) {
	repo := new(mocks.MockInvoiceRepo)
	svc := service.NewInvoiceService(repo)

	repo.On("GetByNumber", mock.Anything, "INV-001").Return(nil, domain.ErrNotFound)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Invoice")).Return(nil)

	input := validInput()
	input.Currency = ""
	input.DiscountType = ""
	input.DiscountValue = decimal.Decimal{}

	inv, err := svc.Create(context.Background(), input)

	require.NoError(t, err)
	assert.Equal(t, "USD", inv.Currency)
	assert.Equal(t, domain.DiscountNone, inv.DiscountType)
	assert.True(t, inv.DiscountAmount.IsZero())
}

func TestInvoiceService_Create_RepoErrorPropagates(t *testing.T) {
	repo := new(mocks.MockInvoiceRepo)
	svc := service.NewInvoiceService(repo)

	repo.On("GetByNumber", mock.Anything, "INV-001").Return(nil, domain.ErrNotFound)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Invoice")).Return(assert.AnError)

	inv, err := svc.Create(context.Background(), validInput())

	assert.Nil(t, inv)
	assert.ErrorIs(t, err, assert.AnError)
}

func TestInvoiceService_Create_DuplicateNumberRejected(t *testing.T) {
	repo := new(mocks.MockInvoiceRepo)
	svc := service.NewInvoiceService(repo)

	existing := &domain.Invoice{ID: uuid.New(), InvoiceNumber: "INV-001"}
	repo.On("GetByNumber", mock.Anything, "INV-001").Return(existing, nil)

	inv, err := svc.Create(context.Background(), validInput())

	assert.Nil(t, inv)
	assert.ErrorIs(t, err, domain.ErrInvoiceNumberTaken)
	repo.AssertNotCalled(t, "Create")
}

func TestInvoiceService_GetByID_NotFound(t *testing.T) {
	repo := new(mocks.MockInvoiceRepo)
	svc := service.NewInvoiceService(repo)

	id := uuid.New()
	repo.On("GetByID", mock.Anything, id).Return(nil, domain.ErrNotFound)

	inv, err := svc.GetByID(context.Background(), id)

	assert.Nil(t, inv)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestInvoiceService_UpdateStatus_Success(t *testing.T) {
	repo := new(mocks.MockInvoiceRepo)
	svc := service.NewInvoiceService(repo)

	id := uuid.New()
	updated := &domain.Invoice{ID: id, Status: domain.StatusPaid}
	repo.On("UpdateStatus", mock.Anything, id, domain.StatusPaid).Return(nil)
	repo.On("GetByID", mock.Anything, id).Return(updated, nil)

	inv, err := svc.UpdateStatus(context.Background(), id, domain.StatusPaid)

	require.NoError(t, err)
	assert.Equal(t, domain.StatusPaid, inv.Status)
	repo.AssertExpectations(t)
}

func TestInvoiceService_UpdateStatus_InvalidStatus(t *testing.T) {
	repo := new(mocks.MockInvoiceRepo)
	svc := service.NewInvoiceService(repo)

	inv, err := svc.UpdateStatus(context.Background(), uuid.New(), "archived")

	assert.Nil(t, inv)
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)
	repo.AssertNotCalled(t, "UpdateStatus")
}

func TestInvoiceService_UpdateStatus_NotFound(t *testing.T) {
	repo := new(mocks.MockInvoiceRepo)
	svc := service.NewInvoiceService(repo)

	id := uuid.New()
	repo.On("UpdateStatus", mock.Anything, id, domain.StatusSent).Return(domain.ErrNotFound)

	inv, err := svc.UpdateStatus(context.Background(), id, domain.StatusSent)

	assert.Nil(t, inv)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestInvoiceService_Preview_MatchesComputedTotals(t *testing.T) {
	repo := new(mocks.MockInvoiceRepo)
	svc := service.NewInvoiceService(repo)

	p := svc.Preview(validInput())

	require.NotEmpty(t, p.TotalLines)
	assert.Equal(t, "Subtotal", p.TotalLines[0].Label)
	assert.Equal(t, "$250.00", p.TotalLines[0].Amount)
	last := p.TotalLines[len(p.TotalLines)-1]
	assert.Equal(t, "Total", last.Label)
	assert.Equal(t, "$243.00", last.Amount)
}

func TestInvoiceService_RenderPDF_UsesStoredTotals(t *testing.T) {
	repo := new(mocks.MockInvoiceRepo)
	svc := service.NewInvoiceService(repo)

	id := uuid.New()
	stored := &domain.Invoice{
		ID:            id,
		BusinessName:  "Acme Studio",
		InvoiceNumber: "INV-042",
		ClientName:    "Globex Inc",
		Currency:      "USD",
		DiscountType:  domain.DiscountNone,
		Totals: domain.Totals{
			Subtotal:   decimal.RequireFromString("100"),
			GrandTotal: decimal.RequireFromString("100"),
		},
		Items: []domain.LineItem{
			{Description: "Svc", Quantity: 1, Rate: decimal.RequireFromString("100")},
		},
	}
	repo.On("GetByID", mock.Anything, id).Return(stored, nil)

	out, filename, err := svc.RenderPDF(context.Background(), id)

	require.NoError(t, err)
	assert.Equal(t, "INV-042.pdf", filename)
	require.NotEmpty(t, out)
	assert.Equal(t, "%PDF", string(out[:4]))
}

func TestInvoiceService_RenderPDF_NotFound(t *testing.T) {
	repo := new(mocks.MockInvoiceRepo)
	svc := service.NewInvoiceService(repo)

	id := uuid.New()
	repo.On("GetByID", mock.Anything, id).Return(nil, domain.ErrNotFound)

	out, _, err := svc.RenderPDF(context.Background(), id)

	assert.Nil(t, out)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestInvoiceService_RenderPDFFromInput(t *testing.T) {
	repo := new(mocks.MockInvoiceRepo)
	svc := service.NewInvoiceService(repo)

	out, filename, err := svc.RenderPDFFromInput(validInput())

	require.NoError(t, err)
	assert.Equal(t, "INV-001.pdf", filename)
	assert.Equal(t, "%PDF", string(out[:4]))
	repo.AssertNotCalled(t, "Create")
}
