package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"pottyspotty/internal/store"
	"pottyspotty/internal/submission"
)

const (
	codeMissingFields       = "missing_fields"
	codeValidationFailed    = "validation_failed"
	codeDuplicateRestroom   = "duplicate_restroom"
	codeGeocodeFailure      = "geocode_failure"
	codeInvalidArgument     = "invalid_argument"
	codePersistenceError    = "persistence_error"
	codeInternal            = "internal_error"
	codeDatabaseUnavailable = "database_unavailable"
)

// classify maps a service or store error to its HTTP status, code and message.
func classify(err error) (int, string, string) {
	switch {
	case errors.Is(err, submission.ErrMissingFields):
		msg := "Missing required fields: name and address are required."
		var fieldErr *submission.FieldError
		if errors.As(err, &fieldErr) && len(fieldErr.Fields) > 0 {
			msg = "Missing required fields: " + strings.Join(fieldErr.Fields, ", ")
		}
		return http.StatusBadRequest, codeMissingFields, msg
	case errors.Is(err, submission.ErrInvalidInput), errors.Is(err, store.ErrValidation):
		return http.StatusBadRequest, codeValidationFailed, err.Error()
	case errors.Is(err, submission.ErrDuplicateRestroom), errors.Is(err, store.ErrDuplicate):
		return http.StatusConflict, codeDuplicateRestroom, "Restroom already exists"
	case errors.Is(err, submission.ErrGeocodeFailure):
		return http.StatusBadRequest, codeGeocodeFailure,
			"Unable to find the location for this address. Please check the street, city, and state."
	case errors.Is(err, errInvalidParam), errors.Is(err, store.ErrInvalidArgument):
		return http.StatusBadRequest, codeInvalidArgument, err.Error()
	case errors.Is(err, submission.ErrPersistence), errors.Is(err, store.ErrPersistence):
		return http.StatusInternalServerError, codePersistenceError, "Server Error"
	default:
		return http.StatusInternalServerError, codeInternal, "Server Error"
	}
}

func respondWithDomainError(c *gin.Context, logger *zap.Logger, route string, err error) {
	status, code, message := classify(err)
	if status >= http.StatusInternalServerError {
		logger.Error("request failed", zap.String("route", route), zap.Error(err))
	}
	respondWithError(c, logger, status, route, code, message)
}

// respondValidationError renders binding failures field by field.
func respondValidationError(c *gin.Context, logger *zap.Logger, route string, err error) {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		missing := make([]string, 0, len(validationErrors))
		invalid := make([]string, 0)
		for _, fieldError := range validationErrors {
			field := fieldPath(fieldError.Namespace())
			switch fieldError.Tag() {
			case "required":
				missing = append(missing, field)
			default:
				invalid = append(invalid, fmt.Sprintf("%s is invalid", field))
			}
		}
		if len(missing) > 0 {
			respondWithError(c, logger, http.StatusBadRequest, route, codeMissingFields,
				"Missing required fields: "+strings.Join(missing, ", "))
			return
		}
		respondWithError(c, logger, http.StatusBadRequest, route, codeValidationFailed, strings.Join(invalid, "; "))
		return
	}

	respondWithError(c, logger, http.StatusBadRequest, route, codeValidationFailed, "invalid request body")
}

// fieldPath turns "Input.Address.Street" into "address.street".
func fieldPath(namespace string) string {
	parts := strings.Split(namespace, ".")
	if len(parts) > 1 {
		parts = parts[1:]
	}
	for i, p := range parts {
		parts[i] = lowerCamel(p)
	}
	return strings.Join(parts, ".")
}

func lowerCamel(field string) string {
	if field == "" {
		return field
	}
	return strings.ToLower(field[:1]) + field[1:]
}
