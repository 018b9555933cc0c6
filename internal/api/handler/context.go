package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rpdbs/research-databank/internal/api/middleware"
	"github.com/rpdbs/research-databank/internal/core/domain"
)

// ctxSession returns the session injected by the Auth middleware. A missing
// session means the route was mounted without Auth.
func ctxSession(c echo.Context) (domain.Session, error) {
	s, ok := middleware.SessionFrom(c)
	if !ok || !s.Role.Valid() {
		return domain.Session{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
	}
	return s, nil
}

// bindAndValidate decodes the request into req and runs struct validation.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	return c.Validate(req)
}
