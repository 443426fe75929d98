// Package response writes JSON error bodies from plain net/http middleware that
// runs outside huma, using the same shape huma handlers produce.
package response

import (
	"log/slog"
	"net/http"

	"github.com/goccy/go-json"

	domainerrors "github.com/listenupapp/bookshelf-server/internal/errors"
)

// ErrorBody is the JSON error shape shared with huma handlers.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// JSON writes v as a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, v any, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		if logger != nil {
			logger.Error("Failed to encode JSON response", "error", err)
		}
	}
}

// Error writes a domain error with its mapped HTTP status.
func Error(w http.ResponseWriter, err *domainerrors.Error, logger *slog.Logger) {
	JSON(w, err.HTTPStatus(), ErrorBody{
		Code:    string(err.Code),
		Message: err.Message,
		Details: err.Details,
	}, logger)
}

// TooManyRequests writes a 429 response.
func TooManyRequests(w http.ResponseWriter, message string, logger *slog.Logger) {
	w.Header().Set("Retry-After", "1")
	Error(w, &domainerrors.Error{Code: domainerrors.CodeRateLimited, Message: message}, logger)
}
