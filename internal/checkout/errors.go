package checkout

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyCart    = errors.New("cart is empty, nothing to checkout")
	ErrInvalidPromo = errors.New("invalid promo code")
)

// FieldError is a single field-level validation failure.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError carries the field errors in form order; the first entry is
// the field the UI should focus.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("checkout form invalid: %s: %s", e.Fields[0].Field, e.Fields[0].Message)
}
