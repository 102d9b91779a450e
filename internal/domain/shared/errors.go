package shared

import "fmt"

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// Is reports whether target carries the same error code, so that
// errors.Is matches freshly built errors against the sentinels below.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNotFound            = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists       = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput        = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrConcurrencyConflict = NewDomainError("CONCURRENCY_CONFLICT", "Resource was modified by another process")
	ErrInvalidState        = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
	ErrInsufficientStock   = NewDomainError("INSUFFICIENT_STOCK", "Insufficient stock available")
	ErrOutOfStock          = NewDomainError("OUT_OF_STOCK", "Product is out of stock")
	ErrPriceNotDefined     = NewDomainError("PRICE_NOT_DEFINED", "No price rule defined for product")
	ErrDuplicateSingleton  = NewDomainError("DUPLICATE_SINGLETON", "Only one cash register may exist")
)

// InsufficientStockError reports how much stock was available when a
// request for more could not be satisfied.
type InsufficientStockError struct {
	Available int64
	Requested int64
}

// NewInsufficientStockError creates an InsufficientStockError
func NewInsufficientStockError(available, requested int64) *InsufficientStockError {
	return &InsufficientStockError{Available: available, Requested: requested}
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock: available %d, requested %d", e.Available, e.Requested)
}

// Unwrap exposes the INSUFFICIENT_STOCK domain error
func (e *InsufficientStockError) Unwrap() error {
	return ErrInsufficientStock
}

// NotFoundError builds a NOT_FOUND error naming the missing resource
func NotFoundError(resource string, ref any) *DomainError {
	return NewDomainError("NOT_FOUND", fmt.Sprintf("%s %v not found", resource, ref))
}

// InvalidInput builds an INVALID_INPUT error with a specific message
func InvalidInput(message string) *DomainError {
	return NewDomainError("INVALID_INPUT", message)
}
