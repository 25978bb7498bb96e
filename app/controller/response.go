package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	log "github.com/sirupsen/logrus"

	"koon7r-storefront/apperr"
	"koon7r-storefront/models"
)

// maxBodyBytes bounds request bodies. Orders and custom items carry inline images.
const maxBodyBytes = 32 << 20

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Error string `json:"error"`
}

// decodeJSON reads the request body into v. Decode failures become validation errors.
func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return apperr.Validation("", fmt.Sprintf("Invalid request body: %v", err))
	}
	return nil
}

// writeJSON encodes v with status
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("❌ writeJSON: Error encoding response: %v", err)
	}
}

// statusFor maps an error to its HTTP status
func statusFor(err error) int {
	switch {
	case apperr.IsValidation(err):
		return http.StatusBadRequest
	case errors.Is(err, apperr.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, apperr.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, apperr.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperr.ErrDatabaseUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// respondError logs err under the handler name and writes {"error": "..."}.
// Internal errors are not echoed to the client.
func respondError(w http.ResponseWriter, handler string, err error) {
	status := statusFor(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		log.Printf("❌ %s: %v", handler, err)
		message = "internal server error"
	} else {
		log.Printf("⚠️ %s: %v", handler, err)
	}
	writeJSON(w, status, ErrorResponse{Error: message})
}

func respondSuccess(w http.ResponseWriter) {
	writeJSON(w, http.StatusOK, models.SuccessResponse{Success: true})
}
