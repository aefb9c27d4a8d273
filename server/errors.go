package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/filecab/filecab/catalog"
)

// errorResponse is the JSON error envelope. The message is built here from
// the catalog's structured errors; the catalog never carries presentation
// text itself.
type errorResponse struct {
	Error string `json:"error"`
}

// statusFor maps catalog error kinds onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, catalog.ErrInvalidInput),
		errors.Is(err, catalog.ErrInvalidQuery):
		return http.StatusBadRequest
	case errors.Is(err, catalog.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, catalog.ErrDuplicateName):
		return http.StatusConflict
	case errors.Is(err, catalog.ErrNotFound),
		errors.Is(err, catalog.ErrParentNotFound),
		errors.Is(err, catalog.ErrLocationMissing),
		errors.Is(err, catalog.ErrIndexOutOfRange):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) respondError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		s.logger.Error().Err(err).Msg("Unexpected error")
		msg = "internal server error"
	}
	respondJSON(w, status, errorResponse{Error: msg})
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// Encoding errors past this point only surface as a broken connection
	_ = json.NewEncoder(w).Encode(v)
}
