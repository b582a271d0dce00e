package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/vendora/vendora/pkg/apperr"
	"github.com/vendora/vendora/pkg/logger"
)

type envelope struct {
	Status  int         `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Errors  interface{} `json:"errors,omitempty"`
}

func write(w http.ResponseWriter, status int, body envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body) //nolint:errcheck
}

// Success sends a 200 JSON response with data.
func Success(w http.ResponseWriter, data interface{}) {
	write(w, http.StatusOK, envelope{Status: http.StatusOK, Data: data})
}

// Created sends a 201 JSON response with data.
func Created(w http.ResponseWriter, data interface{}) {
	write(w, http.StatusCreated, envelope{Status: http.StatusCreated, Data: data})
}

// Error sends a JSON error response.
func Error(w http.ResponseWriter, status int, message string) {
	write(w, status, envelope{Status: status, Message: message})
}

// ValidationError sends a 400 with a field-level error map.
func ValidationError(w http.ResponseWriter, errs map[string]string) {
	write(w, http.StatusBadRequest, envelope{
		Status:  http.StatusBadRequest,
		Message: "Validation failed",
		Errors:  errs,
	})
}

// Unauthorized sends a 401.
func Unauthorized(w http.ResponseWriter) {
	Error(w, http.StatusUnauthorized, "Unauthorized")
}

// Forbidden sends a 403.
func Forbidden(w http.ResponseWriter) {
	Error(w, http.StatusForbidden, "Forbidden")
}

// NotFound sends a 404.
func NotFound(w http.ResponseWriter) {
	Error(w, http.StatusNotFound, "Not found")
}

// Err maps an application error to its HTTP representation. This is the one
// place error taxonomy meets status codes; handlers call it and move on.
//
// Cross-tenant errors deliberately share the generic Forbidden body so the
// response never discloses whether the foreign record exists.
func Err(w http.ResponseWriter, r *http.Request, err error) {
	var verr *apperr.Validation

	switch {
	case errors.As(err, &verr):
		ValidationError(w, verr.Fields)
	case errors.Is(err, apperr.ErrValidation):
		Error(w, http.StatusBadRequest, "Validation failed")
	case errors.Is(err, apperr.ErrTenantRequired):
		Error(w, http.StatusNotFound, "No tenant resolved. Provide the tenant domain header.")
	case errors.Is(err, apperr.ErrTenantMismatch),
		errors.Is(err, apperr.ErrCrossTenantProduct),
		errors.Is(err, apperr.ErrForbidden):
		Forbidden(w)
	case errors.Is(err, apperr.ErrInvalidCredential):
		Unauthorized(w)
	case errors.Is(err, apperr.ErrNotFound):
		NotFound(w)
	default:
		// Store and other internal failures stay opaque to the caller.
		logger.WithCtx(r.Context()).Error("internal error",
			"error", err.Error(),
			"method", r.Method,
			"path", r.URL.Path,
		)
		Error(w, http.StatusInternalServerError, "Internal Server Error")
	}
}
