// Package memory provides an in-process InvoiceRepository. It is the default
// storage driver; all data is lost on restart.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"invoiceflow/internal/domain"
)

// InvoiceRepo stores invoices in a mutex-guarded map.
type InvoiceRepo struct {
	mu       sync.RWMutex
	invoices map[uuid.UUID]domain.Invoice
	seq      map[uuid.UUID]int
	next     int
}

// NewInvoiceRepo creates an empty in-memory repository.
func NewInvoiceRepo() *InvoiceRepo {
	return &InvoiceRepo{
		invoices: make(map[uuid.UUID]domain.Invoice),
		seq:      make(map[uuid.UUID]int),
	}
}

// Create stores a copy of inv. Timestamps are assigned if unset. Invoice
// numbers are unique; a second invoice with the same number is rejected
// with domain.ErrInvoiceNumberTaken.
func (r *InvoiceRepo) Create(_ context.Context, inv *domain.Invoice) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.invoices {
		if existing.InvoiceNumber == inv.InvoiceNumber {
			return domain.ErrInvoiceNumberTaken
		}
	}

	if inv.CreatedAt.IsZero() {
		now := time.Now().UTC()
		inv.CreatedAt = now
		inv.UpdatedAt = now
	}

	stored := *inv
	stored.Items = append([]domain.LineItem(nil), inv.Items...)
	r.invoices[inv.ID] = stored
	r.next++
	r.seq[inv.ID] = r.next
	return nil
}

// GetByID returns the invoice with the given id, or domain.ErrNotFound.
func (r *InvoiceRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Invoice, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	inv, ok := r.invoices[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	inv.Items = append([]domain.LineItem(nil), inv.Items...)
	return &inv, nil
}

// GetByNumber returns the invoice with the given invoice number, or
// domain.ErrNotFound.
func (r *InvoiceRepo) GetByNumber(_ context.Context, number string) (*domain.Invoice, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, inv := range r.invoices {
		if inv.InvoiceNumber == number {
			inv.Items = append([]domain.LineItem(nil), inv.Items...)
			return &inv, nil
		}
	}
	return nil, domain.ErrNotFound
}

// List returns a page of invoices ordered newest first, plus the total count.
func (r *InvoiceRepo) List(_ context.Context, offset, limit int) ([]domain.Invoice, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := r.sorted()
	total := len(all)
	if offset >= total {
		return []domain.Invoice{}, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return all[offset:end], total, nil
}

// ListAll returns every invoice ordered newest first.
func (r *InvoiceRepo) ListAll(_ context.Context) ([]domain.Invoice, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sorted(), nil
}

// UpdateStatus sets the status of the invoice with the given id.
func (r *InvoiceRepo) UpdateStatus(_ context.Context, id uuid.UUID, status domain.InvoiceStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	inv, ok := r.invoices[id]
	if !ok {
		return domain.ErrNotFound
	}
	inv.Status = status
	r.invoices[id] = inv
	return nil
}

// sorted returns copies of all invoices ordered by creation time descending.
// Ties fall back to insertion order so paging stays stable.
func (r *InvoiceRepo) sorted() []domain.Invoice {
	out := make([]domain.Invoice, 0, len(r.invoices))
	for _, inv := range r.invoices {
		inv.Items = append([]domain.LineItem(nil), inv.Items...)
		out = append(out, inv)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return r.seq[out[i].ID] > r.seq[out[j].ID]
	})
	return out
}
