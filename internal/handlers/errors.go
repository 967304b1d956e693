package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/jlfs-dev/picshare/internal/apperrors"
)

// ErrMessageInternal is the generic message for 500 responses. Do not expose internal details to clients.
const ErrMessageInternal = "internal server error"

// JSONError sends a JSON error response with a single "error" field.
func JSONError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// PlainError sends a plain-text error body, matching the contract for
// not-found, bad-argument and bad-credentials responses.
func PlainError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	w.Write([]byte(message))
}

// WriteDomainError is the single place domain errors become HTTP responses:
//
//	FieldExistsError      -> 409 {"error":"Conflict","message":...}
//	UserNotFoundError     -> 404 plain message
//	InvalidArgumentError  -> 400 plain message
//	ErrInvalidCredentials -> 401 plain message
//	anything else         -> 500 opaque
func WriteDomainError(w http.ResponseWriter, err error) {
	var (
		conflict   *apperrors.FieldExistsError
		notFound   *apperrors.UserNotFoundError
		invalidArg *apperrors.InvalidArgumentError
	)

	switch {
	case errors.As(err, &conflict):
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]string{
			"error":   "Conflict",
			"message": conflict.Message,
		})
	case errors.As(err, &notFound):
		PlainError(w, notFound.Error(), http.StatusNotFound)
	case errors.As(err, &invalidArg):
		PlainError(w, invalidArg.Message, http.StatusBadRequest)
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		PlainError(w, err.Error(), http.StatusUnauthorized)
	default:
		slog.Error("unhandled error", "error", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
	}
}
