package vocabulary

import "errors"

// Validation failures, checked in this order.
var (
	ErrEmptyTerm        = errors.New("empty term")
	ErrEmptyDescription = errors.New("empty description")
)

// ValidationError carries a user-facing message for a rejected word.
type ValidationError struct {
	Err     error
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}
