package handlers

import (
	"encoding/json"
	"net/http"

	pkgerrors "github.com/AaronCarney/collabboard-sub001/pkg/errors"
)

// respondJSON writes a JSON body with the given status
func respondJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// respondError maps the error taxonomy to HTTP statuses
func respondError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case pkgerrors.IsValidation(err):
		status = http.StatusBadRequest
	case pkgerrors.IsNotFound(err):
		status = http.StatusNotFound
	case pkgerrors.IsConflict(err):
		status = http.StatusConflict
	case pkgerrors.IsRateLimited(err):
		status = http.StatusTooManyRequests
	}
	respondJSON(w, status, map[string]string{"error": err.Error()})
}
