package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"invoiceflow/internal/calc"
	"invoiceflow/internal/domain"
	"invoiceflow/internal/port"
	"invoiceflow/internal/render"
)

// LineItemInput is one billable row of an invoice payload.
type LineItemInput struct {
	Description string          `json:"description" binding:"required"`
	Quantity    int             `json:"quantity" binding:"required,min=1"`
	Rate        decimal.Decimal `json:"rate"`
}

// InvoiceInput is the DTO shared by invoice creation, preview, and ad-hoc PDF
// rendering. Monetary fields accept JSON numbers or decimal strings.
type InvoiceInput struct {
	BusinessName    string `json:"business_name" binding:"required"`
	BusinessAddress string `json:"business_address"`
	BusinessPhone   string `json:"business_phone"`
	BusinessEmail   string `json:"business_email"`
	BusinessWebsite string `json:"business_website"`
	BusinessLogo    string `json:"business_logo"`

	InvoiceNumber string `json:"invoice_number" binding:"required"`
	InvoiceDate   string `json:"invoice_date"`
	DueDate       string `json:"due_date"`

	ClientName    string `json:"client_name" binding:"required"`
	ClientEmail   string `json:"client_email"`
	ClientAddress string `json:"client_address"`
	ClientPhone   string `json:"client_phone"`

	Currency      string              `json:"currency"`
	TaxRate       decimal.Decimal     `json:"tax_rate"`
	DiscountType  domain.DiscountType `json:"discount_type" binding:"omitempty,oneof=none percentage fixed"`
	DiscountValue decimal.Decimal     `json:"discount_value"`

	PaymentTerms string `json:"payment_terms"`
	Notes        string `json:"notes"`
	Footer       string `json:"footer"`

	Items []LineItemInput `json:"items" binding:"required,min=1,dive"`
}

// InvoiceService defines the invoice management contract.
type InvoiceService interface {
	Create(ctx context.Context, input *InvoiceInput) (*domain.Invoice, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Invoice, error)
	List(ctx context.Context, offset, limit int) ([]domain.Invoice, int, error)
	ListAll(ctx context.Context) ([]domain.Invoice, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.InvoiceStatus) (*domain.Invoice, error)
	Preview(input *InvoiceInput) render.Preview
	RenderPDF(ctx context.Context, id uuid.UUID) ([]byte, string, error)
	RenderPDFFromInput(input *InvoiceInput) ([]byte, string, error)
}

type invoiceService struct {
	repo port.InvoiceRepository
}

// NewInvoiceService creates a new InvoiceService implementation.
func NewInvoiceService(repo port.InvoiceRepository) InvoiceService {
	return &invoiceService{repo: repo}
}

// Create computes totals server-side and persists the invoice as a draft.
// Client-supplied totals are never trusted. Invoice numbers are unique;
// reusing one fails with domain.ErrInvoiceNumberTaken.
func (s *invoiceService) Create(ctx context.Context, input *InvoiceInput) (*domain.Invoice, error) {
	if _, err := s.repo.GetByNumber(ctx, input.InvoiceNumber); err == nil {
		return nil, domain.ErrInvoiceNumberTaken
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("invoiceService.Create: %w", err)
	}

	items := lineItems(input)
	inv := &domain.Invoice{
		ID:              uuid.New(),
		BusinessName:    input.BusinessName,
		BusinessAddress: input.BusinessAddress,
		BusinessPhone:   input.BusinessPhone,
		BusinessEmail:   input.BusinessEmail,
		BusinessWebsite: input.BusinessWebsite,
		BusinessLogo:    input.BusinessLogo,
		InvoiceNumber:   input.InvoiceNumber,
		InvoiceDate:     input.InvoiceDate,
		DueDate:         input.DueDate,
		ClientName:      input.ClientName,
		ClientEmail:     input.ClientEmail,
		ClientAddress:   input.ClientAddress,
		ClientPhone:     input.ClientPhone,
		Currency:        currency(input),
		TaxRate:         input.TaxRate,
		DiscountType:    discountType(input),
		DiscountValue:   input.DiscountValue,
		Totals:          calc.ComputeTotals(items, input.TaxRate, discount(input)),
		PaymentTerms:    input.PaymentTerms,
		Notes:           input.Notes,
		Footer:          input.Footer,
		Status:          domain.StatusDraft,
		Items:           items,
	}

	if err := s.repo.Create(ctx, inv); err != nil {
		return nil, err
	}
	log.Printf("invoice created: id=%s number=%s total=%s", inv.ID, inv.InvoiceNumber, inv.GrandTotal)
	return inv, nil
}

func (s *invoiceService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Invoice, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *invoiceService) List(ctx context.Context, offset, limit int) ([]domain.Invoice, int, error) {
	return s.repo.List(ctx, offset, limit)
}

func (s *invoiceService) ListAll(ctx context.Context) ([]domain.Invoice, error) {
	return s.repo.ListAll(ctx)
}

// UpdateStatus validates the target status, applies it, and returns the
// updated record.
func (s *invoiceService) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.InvoiceStatus) (*domain.Invoice, error) {
	if !domain.ValidInvoiceStatus(status) {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidStatus, status)
	}
	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

// Preview lays out the given form state without persisting anything.
func (s *invoiceService) Preview(input *InvoiceInput) render.Preview {
	return render.BuildPreview(document(input))
}

// RenderPDF renders a stored invoice using its persisted totals.
func (s *invoiceService) RenderPDF(ctx context.Context, id uuid.UUID) ([]byte, string, error) {
	inv, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, "", err
	}
	out, err := render.RenderPDF(inv.Document())
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", domain.ErrRenderFailed, err)
	}
	return out, render.FileName(inv.InvoiceNumber), nil
}

// RenderPDFFromInput renders unsaved form state, computing totals first.
func (s *invoiceService) RenderPDFFromInput(input *InvoiceInput) ([]byte, string, error) {
	out, err := render.RenderPDF(document(input))
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", domain.ErrRenderFailed, err)
	}
	return out, render.FileName(input.InvoiceNumber), nil
}

// document builds the render input for unsaved form state. Totals are
// computed fresh from the items.
func document(input *InvoiceInput) domain.InvoiceDocument {
	items := lineItems(input)
	return domain.InvoiceDocument{
		BusinessName:    input.BusinessName,
		BusinessAddress: input.BusinessAddress,
		BusinessPhone:   input.BusinessPhone,
		BusinessEmail:   input.BusinessEmail,
		BusinessWebsite: input.BusinessWebsite,
		BusinessLogo:    input.BusinessLogo,
		InvoiceNumber:   input.InvoiceNumber,
		InvoiceDate:     input.InvoiceDate,
		DueDate:         input.DueDate,
		ClientName:      input.ClientName,
		ClientEmail:     input.ClientEmail,
		ClientAddress:   input.ClientAddress,
		ClientPhone:     input.ClientPhone,
		Currency:        currency(input),
		TaxRate:         input.TaxRate,
		Discount:        discount(input),
		PaymentTerms:    input.PaymentTerms,
		Notes:           input.Notes,
		Footer:          input.Footer,
		Items:           items,
		Totals:          calc.ComputeTotals(items, input.TaxRate, discount(input)),
	}
}

func lineItems(input *InvoiceInput) []domain.LineItem {
	items := make([]domain.LineItem, len(input.Items))
	for i, it := range input.Items {
		items[i] = domain.LineItem{Description: it.Description, Quantity: it.Quantity, Rate: it.Rate}
	}
	return items
}

func discount(input *InvoiceInput) domain.Discount {
	return domain.Discount{Type: discountType(input), Value: input.DiscountValue}
}

// discountType defaults an empty discount type to none.
func discountType(input *InvoiceInput) domain.DiscountType {
	if input.DiscountType == "" {
		return domain.DiscountNone
	}
	return input.DiscountType
}

// currency defaults an empty currency to USD.
func currency(input *InvoiceInput) string {
	if input.Currency == "" {
		return "USD"
	}
	return input.Currency
}
