package config

import (
	"encoding/json"
	"net/http"

	"github.com/saulo-duarte/examly-api/internal/apperror"
)

func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		Logger.WithError(err).Error("Failed to encode response")
	}
}

func Message(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]string{"message": message})
}

// WriteError maps err onto the error taxonomy. Internal failures are logged
// with their cause and answered with a generic message.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	status := apperror.Status(err)
	if status == http.StatusInternalServerError {
		WithContext(r.Context()).WithError(err).Error("Request failed")
	}
	Message(w, status, apperror.PublicMessage(err))
}

func DecodeJSON(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperror.Validation("invalid request body")
	}
	return nil
}
