package domain

import "errors"

var (
	ErrNotFound           = errors.New("resource not found")
	ErrInvalidStatus      = errors.New("invalid invoice status")
	ErrInvoiceNumberTaken = errors.New("invoice number already exists")
	ErrRenderFailed       = errors.New("document rendering failed")
)
