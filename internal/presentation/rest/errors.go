package rest

import (
	"errors"
	"net/http"

	"github.com/yadav-krish/ticket-booking-prediction/internal/domain/model"
)

// ErrorResponse is the JSON body returned for failed API calls.
type ErrorResponse struct {
	Error string `json:"error"`
}

// statusFor maps a use case error to an HTTP status and a message that is
// safe to show the caller. Internal errors are never echoed.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, model.ErrInvalidQuery):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, model.ErrPredictionNotFound):
		return http.StatusNotFound, "prediction not found"
	case errors.Is(err, model.ErrScaling):
		return http.StatusUnprocessableEntity, "Error during scaling: " + err.Error()
	case errors.Is(err, model.ErrUnknownCategory), errors.Is(err, model.ErrSchemaMismatch):
		return http.StatusUnprocessableEntity, err.Error()
	default:
		return http.StatusInternalServerError, "internal error"
	}
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, ErrorResponse{Error: msg})
}
