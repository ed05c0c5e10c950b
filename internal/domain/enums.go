package domain

// DiscountType selects the active discount variant.
type DiscountType string

const (
	DiscountNone       DiscountType = "none"
	DiscountPercentage DiscountType = "percentage"
	DiscountFixed      DiscountType = "fixed"
)

// ValidDiscountType reports whether t is one of the known variants.
func ValidDiscountType(t DiscountType) bool {
	switch t {
	case DiscountNone, DiscountPercentage, DiscountFixed:
		return true
	}
	return false
}

// InvoiceStatus represents the lifecycle of a persisted invoice. Records are
// created as draft; status is mutated externally and records are never
// deleted.
type InvoiceStatus string

const (
	StatusDraft   InvoiceStatus = "draft"
	StatusSent    InvoiceStatus = "sent"
	StatusPaid    InvoiceStatus = "paid"
	StatusOverdue InvoiceStatus = "overdue"
)

// ValidInvoiceStatus reports whether s is one of the known statuses.
func ValidInvoiceStatus(s InvoiceStatus) bool {
	switch s {
	case StatusDraft, StatusSent, StatusPaid, StatusOverdue:
		return true
	}
	return false
}
