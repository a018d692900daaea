package payment

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidProduct     = errors.New("Invalid product")
	ErrMissingPaymentInfo = errors.New("Missing payment information")
	// ErrReservedDelimiter rejects purchase context that could not be decoded
	// unambiguously later. Checked before any provider call.
	ErrReservedDelimiter = errors.New("username and product name must not contain '|'")
	// ErrNoApprovalLink means the provider accepted the payment but returned
	// no approval redirect for the payer.
	ErrNoApprovalLink = errors.New("provider returned no approval link")
	// ErrMalformedCustomData means the purchase context echoed back by the
	// provider could not be decoded.
	ErrMalformedCustomData = errors.New("malformed purchase metadata")
)

// CreationError wraps a provider-side failure while creating a payment. The
// provider detail is logged, never shown to the caller.
type CreationError struct {
	Err error
}

func (e *CreationError) Error() string {
	return fmt.Sprintf("payment creation failed: %v", e.Err)
}

func (e *CreationError) Unwrap() error { return e.Err }

// ExecutionError wraps a provider-side failure while executing an approved
// payment.
type ExecutionError struct {
	Err error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("payment execution failed: %v", e.Err)
}

func (e *ExecutionError) Unwrap() error { return e.Err }
