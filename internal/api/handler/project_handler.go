package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/rpdbs/research-databank/internal/core/ports"
	"github.com/rpdbs/research-databank/internal/export"
	"github.com/rpdbs/research-databank/internal/pkg/metrics"
)

// ProjectHandler handles HTTP requests for project operations.
type ProjectHandler struct {
	service ports.ProjectService
}

func NewProjectHandler(service ports.ProjectService) *ProjectHandler {
	return &ProjectHandler{service: service}
}

// List handles GET /v1/projects.
//
// @Summary      List visible projects
// @Tags         projects
// @Produce      json
// @Security     BearerAuth
// @Param        search  query     string  false  "Case-insensitive title substring"
// @Param        status  query     string  false  "Exact status"  Enums(New, Continuing, On-going, Completed)
// @Param        year    query     int     false  "Start-date year"
// @Success      200     {object}  listProjectsResponse
// @Failure      400     {object}  errorResponse
// @Failure      401     {object}  errorResponse
// @Router       /v1/projects [get]
func (h *ProjectHandler) List(c echo.Context) error {
	s, err := ctxSession(c)
	if err != nil {
		return err
	}
	q, err := bindQuery(c)
	if err != nil {
		return err
	}

	projects, err := h.service.List(c.Request().Context(), s, toProjectFilter(q))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toListResponse(projects))
}

// Get handles GET /v1/projects/:id.
//
// @Summary      Get a project
// @Tags         projects
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Project ID"
// @Success      200  {object}  projectResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/projects/{id} [get]
func (h *ProjectHandler) Get(c echo.Context) error {
	s, err := ctxSession(c)
	if err != nil {
		return err
	}
	id, err := projectID(c)
	if err != nil {
		return err
	}

	p, err := h.service.Get(c.Request().Context(), s, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProjectResponse(p))
}

// Create handles POST /v1/projects.
//
// @Summary      Create a project
// @Tags         projects
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      projectRequest  true  "Project details"
// @Success      201   {object}  projectResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/projects [post]
func (h *ProjectHandler) Create(c echo.Context) error {
	s, err := ctxSession(c)
	if err != nil {
		return err
	}
	var req projectRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	p, err := h.service.Create(c.Request().Context(), s, toProjectFields(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toProjectResponse(p))
}

// Update handles PUT /v1/projects/:id. Every editable field is replaced.
//
// @Summary      Update a project
// @Tags         projects
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int             true  "Project ID"
// @Param        body  body      projectRequest  true  "Project details"
// @Success      200   {object}  projectResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/projects/{id} [put]
func (h *ProjectHandler) Update(c echo.Context) error {
	s, err := ctxSession(c)
	if err != nil {
		return err
	}
	id, err := projectID(c)
	if err != nil {
		return err
	}
	var req projectRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	p, err := h.service.Update(c.Request().Context(), s, id, toProjectFields(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProjectResponse(p))
}

// Delete handles DELETE /v1/projects/:id.
//
// @Summary      Delete a project
// @Tags         projects
// @Security     BearerAuth
// @Param        id   path  int  true  "Project ID"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/projects/{id} [delete]
func (h *ProjectHandler) Delete(c echo.Context) error {
	s, err := ctxSession(c)
	if err != nil {
		return err
	}
	id, err := projectID(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), s, id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Export handles GET /v1/projects/export and returns the filtered list as a
// spreadsheet.
//
// @Summary      Export projects
// @Tags         projects
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security     BearerAuth
// @Param        search  query  string  false  "Case-insensitive title substring"
// @Param        status  query  string  false  "Exact status"
// @Param        year    query  int     false  "Start-date year"
// @Success      200     {file}  file
// @Failure      403     {object}  errorResponse
// @Router       /v1/projects/export [get]
func (h *ProjectHandler) Export(c echo.Context) error {
	s, err := ctxSession(c)
	if err != nil {
		return err
	}
	q, err := bindQuery(c)
	if err != nil {
		return err
	}

	projects, err := h.service.Export(c.Request().Context(), s, toProjectFilter(q))
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := export.WriteProjects(&buf, projects); err != nil {
		return fmt.Errorf("export projects: %w", err)
	}

	metrics.ExportsTotal.Inc()
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", export.FileName))
	return c.Blob(http.StatusOK, export.ContentType, buf.Bytes())
}

func projectID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid project id")
	}
	return id, nil
}

func bindQuery(c echo.Context) (projectQuery, error) {
	var q projectQuery
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &q); err != nil {
		return q, echo.NewHTTPError(http.StatusBadRequest, "invalid query parameters")
	}
	if err := c.Validate(&q); err != nil {
		return q, err
	}
	return q, nil
}
