// Package rest holds the HTTP response envelope and the JSON shapes the
// handlers expose.
package rest

import (
	"encoding/json"
	"net/http"

	"github.com/storefin/backend/internal/application"
)

type ErrorResponse struct {
	Success bool        `json:"success"`
	Error   ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// WriteError maps application errors to HTTP responses
func WriteError(w http.ResponseWriter, err error) {
	statusCode := application.ToHTTPStatus(err)
	errorCode := application.ToErrorCode(err)

	message := err.Error()
	if statusCode == http.StatusInternalServerError {
		// Internal faults keep their detail in the logs, not the response.
		message = "internal server error"
	}

	response := ErrorResponse{
		Success: false,
		Error: ErrorDetail{
			Code:    errorCode,
			Message: message,
		},
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(response)
}
