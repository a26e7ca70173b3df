package shop

import "errors"

var (
	ErrNotFound = errors.New("record not found")
	// ErrNoTenant is returned by writes made without a resolved tenant.
	ErrNoTenant     = errors.New("no tenant resolved")
	ErrInvalidInput = errors.New("invalid input")
)
