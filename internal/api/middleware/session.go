package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/rpdbs/research-databank/internal/core/domain"
)

const sessionKey = "session"

// SetSession binds s to the request context.
func SetSession(c echo.Context, s domain.Session) {
	c.Set(sessionKey, s)
}

// SessionFrom returns the session bound by Auth.
func SessionFrom(c echo.Context) (domain.Session, bool) {
	s, ok := c.Get(sessionKey).(domain.Session)
	return s, ok
}
