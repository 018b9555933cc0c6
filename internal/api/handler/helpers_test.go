package handler

import (
	"io"
	"net/http/httptest"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/rpdbs/research-databank/internal/api/middleware"
	"github.com/rpdbs/research-databank/internal/core/domain"
)

var (
	adminSession  = domain.Session{ID: "sid-admin", AccountID: 1, Username: "admin", Role: domain.RoleAdmin}
	userSession   = domain.Session{ID: "sid-user", AccountID: 2, Username: "alice", Role: domain.RoleUser}
	viewerSession = domain.Session{ID: "sid-viewer", Username: "public", Role: domain.RoleViewer, Public: true}
)

// newTestContext builds an echo context with the production validator and
// error mapping. A nil session leaves the request unauthenticated.
func newTestContext(method, target, body string, session *domain.Session) (*echo.Echo, echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		code, msg, _ := MapError(err)
		_ = c.JSON(code, errorResponse{Error: msg})
	}

	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if session != nil {
		middleware.SetSession(c, *session)
	}
	return e, c, rec
}

func serve(e *echo.Echo, c echo.Context, h echo.HandlerFunc) {
	if err := h(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
}
