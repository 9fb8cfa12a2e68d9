package ledger

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the ledger. Callers branch with errors.Is and
// own the user-facing messaging; nothing here is retried or swallowed.
var (
	// ErrInvalidInput marks a negative quantity, unit price or tax rate.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidTransition marks a status change with no edge in the
	// transition table.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrEmptyDocument marks an attempt to send a document with no line items.
	ErrEmptyDocument = errors.New("document has no line items")

	// ErrValidation marks a non-positive payment amount.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound marks a payment id absent from the invoice's history.
	ErrNotFound = errors.New("not found")

	// ErrOverpayment is returned only when the policy forbids payments that
	// push amount paid above the invoice total.
	ErrOverpayment = errors.New("payment exceeds balance due")
)

// TransitionError reports a rejected status change with the edge that was
// attempted. It unwraps to ErrInvalidTransition or ErrEmptyDocument.
type TransitionError struct {
	From   string
	To     string
	Reason error
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("transition %s -> %s: %v", e.From, e.To, e.Reason)
}

func (e *TransitionError) Unwrap() error { return e.Reason }
