package application

import (
	"errors"
	"net/http"

	"github.com/storefin/backend/internal/domain"
)

// ToHTTPStatus maps a domain error to the status code the REST layer
// should answer with. Anything that is not a DomainError is an internal
// fault.
func ToHTTPStatus(err error) int {
	var domainErr *domain.DomainError
	if !errors.As(err, &domainErr) {
		return http.StatusInternalServerError
	}

	switch domainErr.Code {
	case domain.ErrCodeNotFound:
		return http.StatusNotFound
	case domain.ErrCodeValidationFailure, domain.ErrCodeVoucherAlreadyUsed:
		return http.StatusBadRequest
	case domain.ErrCodeConflictingState, domain.ErrCodeAlreadyRefunded:
		return http.StatusConflict
	case domain.ErrCodePaymentNotFound, domain.ErrCodePaymentIncomplete:
		return http.StatusPaymentRequired
	case domain.ErrCodeGatewayFailure, domain.ErrCodeGatewayLookupFailed:
		return http.StatusBadGateway
	case domain.ErrCodeStorageUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// ToErrorCode extracts the machine-checkable error code for a response.
func ToErrorCode(err error) string {
	var domainErr *domain.DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code
	}
	return "INTERNAL_ERROR"
}
