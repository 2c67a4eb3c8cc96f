package service

import "errors"

// Error kinds. Handlers map these to HTTP status codes with errors.Is.
var (
	// ErrNotFound is returned when a resource is not found
	ErrNotFound = errors.New("resource not found")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")

	// ErrConflict is returned when an operation does not fit the entity's current status
	ErrConflict = errors.New("resource conflict")
)

// Error carries a client-facing reason and the kind it belongs to
type Error struct {
	kind   error
	reason string
}

func newError(kind error, reason string) *Error {
	return &Error{kind: kind, reason: reason}
}

func (e *Error) Error() string { return e.reason }

func (e *Error) Unwrap() error { return e.kind }

// Not found
var (
	ErrCustomerNotFound   = newError(ErrNotFound, "customer not found")
	ErrTechnicianNotFound = newError(ErrNotFound, "technician not found")
	ErrQuoteNotFound      = newError(ErrNotFound, "quote not found")
	ErrJobNotFound        = newError(ErrNotFound, "job not found")
	ErrInvoiceNotFound    = newError(ErrNotFound, "invoice not found")
)

// Validation
var (
	ErrNameRequired          = newError(ErrInvalidInput, "name is required")
	ErrCustomerRefNotFound   = newError(ErrInvalidInput, "customerId not found")
	ErrTechnicianRefNotFound = newError(ErrInvalidInput, "technicianId not found")
)

// Status conflicts
var (
	ErrQuoteAlreadyApproved  = newError(ErrConflict, "quote is already approved")
	ErrQuoteAlreadyConverted = newError(ErrConflict, "quote is already converted")
	ErrJobAlreadyCompleted   = newError(ErrConflict, "job is already completed")
)
