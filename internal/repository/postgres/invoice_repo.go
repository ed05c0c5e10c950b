package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"invoiceflow/internal/domain"
	"invoiceflow/internal/port"
)

type invoiceRepo struct {
	db *sqlx.DB
}

// NewInvoiceRepo creates a new PostgreSQL-backed InvoiceRepository.
func NewInvoiceRepo(db *sqlx.DB) port.InvoiceRepository {
	return &invoiceRepo{db: db}
}

func (r *invoiceRepo) Create(ctx context.Context, inv *domain.Invoice) error {
	now := time.Now().UTC()
	inv.CreatedAt = now
	inv.UpdatedAt = now

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("invoiceRepo.Create begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `INSERT INTO invoices (
			id, business_name, business_address, business_phone, business_email,
			business_website, business_logo, invoice_number, invoice_date, due_date,
			client_name, client_email, client_address, client_phone,
			currency, tax_rate, discount_type, discount_value,
			subtotal, discount_amount, taxable_amount, tax_amount, total,
			payment_terms, notes, footer, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
			$11, $12, $13, $14, $15, $16, $17, $18,
			$19, $20, $21, $22, $23, $24, $25, $26, $27, $28, $29)`

	_, err = tx.ExecContext(ctx, query,
		inv.ID, inv.BusinessName, inv.BusinessAddress, inv.BusinessPhone, inv.BusinessEmail,
		inv.BusinessWebsite, inv.BusinessLogo, inv.InvoiceNumber, inv.InvoiceDate, inv.DueDate,
		inv.ClientName, inv.ClientEmail, inv.ClientAddress, inv.ClientPhone,
		inv.Currency, inv.TaxRate, inv.DiscountType, inv.DiscountValue,
		inv.Subtotal, inv.DiscountAmount, inv.TaxableAmount, inv.TaxAmount, inv.GrandTotal,
		inv.PaymentTerms, inv.Notes, inv.Footer, inv.Status, inv.CreatedAt, inv.UpdatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return domain.ErrInvoiceNumberTaken
		}
		return fmt.Errorf("invoiceRepo.Create: %w", err)
	}

	itemQuery := `INSERT INTO invoice_items (invoice_id, position, description, quantity, rate, amount)
		VALUES ($1, $2, $3, $4, $5, $6)`
	for i, item := range inv.Items {
		_, err = tx.ExecContext(ctx, itemQuery,
			inv.ID, i, item.Description, item.Quantity, item.Rate, item.Amount())
		if err != nil {
			return fmt.Errorf("invoiceRepo.Create item %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("invoiceRepo.Create commit: %w", err)
	}
	return nil
}

func (r *invoiceRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Invoice, error) {
	var inv domain.Invoice
	err := r.db.GetContext(ctx, &inv, "SELECT * FROM invoices WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("invoiceRepo.GetByID: %w", err)
	}

	if err := r.loadItems(ctx, []*domain.Invoice{&inv}); err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *invoiceRepo) GetByNumber(ctx context.Context, number string) (*domain.Invoice, error) {
	var inv domain.Invoice
	err := r.db.GetContext(ctx, &inv, "SELECT * FROM invoices WHERE invoice_number = $1", number)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("invoiceRepo.GetByNumber: %w", err)
	}

	if err := r.loadItems(ctx, []*domain.Invoice{&inv}); err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *invoiceRepo) List(ctx context.Context, offset, limit int) ([]domain.Invoice, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM invoices")
	if err != nil {
		return nil, 0, fmt.Errorf("invoiceRepo.List count: %w", err)
	}

	var invoices []domain.Invoice
	err = r.db.SelectContext(ctx, &invoices,
		"SELECT * FROM invoices ORDER BY created_at DESC, id LIMIT $1 OFFSET $2",
		limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("invoiceRepo.List: %w", err)
	}

	refs := make([]*domain.Invoice, len(invoices))
	for i := range invoices {
		refs[i] = &invoices[i]
	}
	if err := r.loadItems(ctx, refs); err != nil {
		return nil, 0, err
	}
	return invoices, total, nil
}

func (r *invoiceRepo) ListAll(ctx context.Context) ([]domain.Invoice, error) {
	var invoices []domain.Invoice
	err := r.db.SelectContext(ctx, &invoices,
		"SELECT * FROM invoices ORDER BY created_at DESC, id")
	if err != nil {
		return nil, fmt.Errorf("invoiceRepo.ListAll: %w", err)
	}

	refs := make([]*domain.Invoice, len(invoices))
	for i := range invoices {
		refs[i] = &invoices[i]
	}
	if err := r.loadItems(ctx, refs); err != nil {
		return nil, err
	}
	return invoices, nil
}

func (r *invoiceRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.InvoiceStatus) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE invoices SET status = $1, updated_at = $2 WHERE id = $3",
		status, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("invoiceRepo.UpdateStatus: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// invoiceItemRow is the scan target for invoice_items.
type invoiceItemRow struct {
	InvoiceID uuid.UUID `db:"invoice_id"`
	Position  int       `db:"position"`
	domain.LineItem
}

// loadItems attaches line items to each invoice in invs with one query.
func (r *invoiceRepo) loadItems(ctx context.Context, invs []*domain.Invoice) error {
	if len(invs) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, len(invs))
	byID := make(map[uuid.UUID]*domain.Invoice, len(invs))
	for i, inv := range invs {
		ids[i] = inv.ID
		byID[inv.ID] = inv
	}

	query, args, err := sqlx.In(
		`SELECT invoice_id, position, description, quantity, rate
		 FROM invoice_items WHERE invoice_id IN (?) ORDER BY invoice_id, position`, ids)
	if err != nil {
		return fmt.Errorf("invoiceRepo.loadItems build: %w", err)
	}

	var rows []invoiceItemRow
	err = r.db.SelectContext(ctx, &rows, r.db.Rebind(query), args...)
	if err != nil {
		return fmt.Errorf("invoiceRepo.loadItems: %w", err)
	}

	for _, row := range rows {
		inv := byID[row.InvoiceID]
		inv.Items = append(inv.Items, row.LineItem)
	}
	return nil
}
