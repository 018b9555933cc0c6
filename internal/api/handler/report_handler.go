package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rpdbs/research-databank/internal/core/ports"
)

type ReportHandler struct {
	service ports.ProjectService
}

func NewReportHandler(service ports.ProjectService) *ReportHandler {
	return &ReportHandler{service: service}
}

// Summary handles GET /v1/reports/summary.
//
// @Summary      Project aggregates
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Param        status  query     string  false  "Exact status"
// @Param        year    query     int     false  "Start-date year"
// @Success      200     {object}  domain.ProjectSummary
// @Failure      403     {object}  errorResponse
// @Router       /v1/reports/summary [get]
func (h *ReportHandler) Summary(c echo.Context) error {
	s, err := ctxSession(c)
	if err != nil {
		return err
	}
	q, err := bindQuery(c)
	if err != nil {
		return err
	}

	summary, err := h.service.Summary(c.Request().Context(), s, toProjectFilter(q))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, summary)
}
