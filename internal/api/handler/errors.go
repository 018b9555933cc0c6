package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rpdbs/research-databank/internal/core/domain"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// MapError resolves err to an HTTP status and client-facing message. known is
// false for errors that have no mapping; their message is generic.
func MapError(err error) (code int, msg string, known bool) {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message), true
	}

	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid credentials", true
	case errors.Is(err, domain.ErrSessionNotFound):
		return http.StatusUnauthorized, "session expired", true
	case errors.Is(err, domain.ErrProjectNotFound):
		return http.StatusNotFound, "project not found", true
	case errors.Is(err, domain.ErrPublicViewDisabled):
		return http.StatusNotFound, "not found", true
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "access forbidden", true
	case errors.Is(err, domain.ErrValidation):
		return http.StatusUnprocessableEntity, err.Error(), true
	case errors.Is(err, domain.ErrUserExists):
		return http.StatusConflict, "user already exists", true
	}

	return http.StatusInternalServerError, "internal server error", false
}
