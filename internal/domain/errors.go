package domain

import (
	"errors"
	"fmt"
)

// DomainError represents a business logic error
type DomainError struct {
	Code    string
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for errors.Is/As support
func (e *DomainError) Unwrap() error {
	return e.Err
}

const (
	ErrCodeNotFound            = "NOT_FOUND"
	ErrCodeConflictingState    = "CONFLICTING_STATE"
	ErrCodeValidationFailure   = "VALIDATION_FAILURE"
	ErrCodeVoucherAlreadyUsed  = "VOUCHER_ALREADY_USED"
	ErrCodeGatewayFailure      = "GATEWAY_FAILURE"
	ErrCodeGatewayLookupFailed = "GATEWAY_LOOKUP_FAILED"
	ErrCodePaymentNotFound     = "PAYMENT_NOT_FOUND"
	ErrCodePaymentIncomplete   = "PAYMENT_INCOMPLETE"
	ErrCodeAlreadyRefunded     = "ALREADY_REFUNDED"
	ErrCodeStorageUnavailable  = "STORAGE_UNAVAILABLE"
)

// NewNotFoundError covers both absent records and records owned by another
// user, so callers cannot probe for existence.
func NewNotFoundError(entity string) *DomainError {
	return &DomainError{
		Code:    ErrCodeNotFound,
		Message: fmt.Sprintf("%s not found", entity),
	}
}

func NewConflictingStateError(message string) *DomainError {
	return &DomainError{
		Code:    ErrCodeConflictingState,
		Message: message,
	}
}

func NewValidationError(message string) *DomainError {
	return &DomainError{
		Code:    ErrCodeValidationFailure,
		Message: message,
	}
}

func NewInvalidVoucherError() *DomainError {
	return &DomainError{
		Code:    ErrCodeValidationFailure,
		Message: "voucher is invalid or does not exist",
	}
}

func NewVoucherAlreadyUsedError() *DomainError {
	return &DomainError{
		Code:    ErrCodeVoucherAlreadyUsed,
		Message: "voucher has already been used",
	}
}

func NewGatewayFailureError(operation string, err error) *DomainError {
	return &DomainError{
		Code:    ErrCodeGatewayFailure,
		Message: fmt.Sprintf("payment gateway request failed: %s", operation),
		Err:     err,
	}
}

func NewGatewayLookupFailedError(err error) *DomainError {
	return &DomainError{
		Code:    ErrCodeGatewayLookupFailed,
		Message: "could not look up the order payment at the gateway",
		Err:     err,
	}
}

func NewPaymentNotFoundError(orderNumber string) *DomainError {
	return &DomainError{
		Code:    ErrCodePaymentNotFound,
		Message: fmt.Sprintf("no payment found for order %s", orderNumber),
	}
}

func NewPaymentIncompleteError(orderNumber string) *DomainError {
	return &DomainError{
		Code:    ErrCodePaymentIncomplete,
		Message: fmt.Sprintf("payment for order %s has not been completed", orderNumber),
	}
}

func NewAlreadyRefundedError(orderNumber string) *DomainError {
	return &DomainError{
		Code:    ErrCodeAlreadyRefunded,
		Message: fmt.Sprintf("payment for order %s was already refunded at the gateway", orderNumber),
	}
}

func NewStorageUnavailableError(operation string, err error) *DomainError {
	return &DomainError{
		Code:    ErrCodeStorageUnavailable,
		Message: fmt.Sprintf("storage unavailable: %s", operation),
		Err:     err,
	}
}

// IsErrorCode checks if an error is a DomainError with a specific code
func IsErrorCode(err error, code string) bool {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code == code
	}
	return false
}
