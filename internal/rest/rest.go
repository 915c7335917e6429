package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/klokku/freelancer/internal/repository"
	log "github.com/sirupsen/logrus"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// WriteJSON encodes body with the given status. Encoding failures after the
// header was sent can only be logged.
func WriteJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Errorf("failed to encode response: %v", err)
	}
}

func WriteError(w http.ResponseWriter, status int, message string, details string) {
	WriteJSON(w, status, ErrorResponse{
		Error:   message,
		Details: details,
	})
}

// DecodeBody decodes the JSON request body into dst and answers 400 on failure.
// It returns false when the response has already been written.
func DecodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body format", err.Error())
		return false
	}
	return true
}

// WriteRepositoryError maps storage errors to a response. ErrNotFound
// becomes 404, everything else 500.
func WriteRepositoryError(w http.ResponseWriter, err error) {
	if errors.Is(err, repository.ErrNotFound) {
		WriteError(w, http.StatusNotFound, "Not found", "")
		return
	}
	if errors.Is(err, repository.ErrMalformedData) {
		WriteError(w, http.StatusInternalServerError, "Stored data is malformed", err.Error())
		return
	}
	WriteError(w, http.StatusInternalServerError, "Internal server error", err.Error())
}
