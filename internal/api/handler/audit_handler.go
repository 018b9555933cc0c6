package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/rpdbs/research-databank/internal/core/domain"
	"github.com/rpdbs/research-databank/internal/core/ports"
)

type AuditHandler struct {
	service ports.AuditService
}

func NewAuditHandler(service ports.AuditService) *AuditHandler {
	return &AuditHandler{service: service}
}

type auditListResponse struct {
	Count   int                  `json:"count"`
	Entries []*domain.AuditEntry `json:"entries"`
}

// List handles GET /v1/audit.
//
// @Summary      Audit trail, newest first
// @Tags         audit
// @Produce      json
// @Security     BearerAuth
// @Param        limit  query     int  false  "Maximum entries (default 100)"
// @Success      200    {object}  auditListResponse
// @Failure      403    {object}  errorResponse
// @Router       /v1/audit [get]
func (h *AuditHandler) List(c echo.Context) error {
	s, err := ctxSession(c)
	if err != nil {
		return err
	}

	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid limit")
		}
	}

	entries, err := h.service.List(c.Request().Context(), s, limit)
	if err != nil {
		return err
	}
	if entries == nil {
		entries = []*domain.AuditEntry{}
	}
	return c.JSON(http.StatusOK, auditListResponse{Count: len(entries), Entries: entries})
}
