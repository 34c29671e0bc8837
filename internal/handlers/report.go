package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	authmw "github.com/mzhdanov/bugtrack/internal/middleware/auth"
	"github.com/mzhdanov/bugtrack/internal/models"
	"github.com/mzhdanov/bugtrack/internal/repository"
	"github.com/mzhdanov/bugtrack/internal/service"
	"github.com/mzhdanov/bugtrack/internal/util"
)

type ReportHandler struct {
	Reports *service.ReportService
	Query   *service.QueryService
}

func filtersFromQuery(c echo.Context) repository.ReportFilters {
	f := repository.ReportFilters{
		Search:   c.QueryParam("search"),
		Status:   c.QueryParam("status"),
		Priority: c.QueryParam("priority"),
	}
	if id, err := parseUint(c.QueryParam("menu_id")); err == nil {
		f.MenuID = id
	}
	if id, err := parseUint(c.QueryParam("assigned_to")); err == nil {
		f.AssignedTo = id
	}
	if id, err := parseUint(c.QueryParam("user_id")); err == nil {
		f.UserID = id
	}
	if t, err := time.Parse("2006-01-02", c.QueryParam("created_from")); err == nil {
		f.CreatedFrom = &t
	}
	if t, err := time.Parse("2006-01-02", c.QueryParam("created_to")); err == nil {
		end := t.Add(24*time.Hour - time.Second)
		f.CreatedTo = &end
	}
	return f
}

func (h *ReportHandler) List(c echo.Context) error {
	actor := authmw.ActorFromContext(c)
	page := parseIntDefault(c.QueryParam("page"), 1)
	size := parseIntDefault(c.QueryParam("per_page"), util.DefaultPageSize)

	reports, pagination, err := h.Query.List(c.Request().Context(), filtersFromQuery(c), page, size, actor)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"data":       reports,
		"pagination": pagination,
	})
}

func (h *ReportHandler) Create(c echo.Context) error {
	actor := authmw.ActorFromContext(c)

	var req service.CreateReportInput
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err)
	}
	if req.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "name is required")
	}

	report, err := h.Reports.Create(c.Request().Context(), actor.ID, req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, report)
}

func (h *ReportHandler) Get(c echo.Context) error {
	id, err := parseUint(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid report id")
	}

	report, err := h.Query.Get(c.Request().Context(), id, authmw.ActorFromContext(c))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, report)
}

// Update is the owner-facing patch: category and content fields only, and
// only while the report is not closed. Status and assignment stay with the
// admin endpoint.
func (h *ReportHandler) Update(c echo.Context) error {
	actor := authmw.ActorFromContext(c)
	id, err := parseUint(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid report id")
	}

	current, err := h.Query.Get(c.Request().Context(), id, actor)
	if err != nil {
		return httpError(err)
	}
	if !actor.IsAdmin() && current.Status == models.StatusClosed {
		return httpError(service.ErrReportClosed)
	}

	var changes service.ReportChanges
	if err := c.Bind(&changes); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err)
	}
	if !actor.IsAdmin() {
		changes.Status = nil
		changes.AssignedTo = models.OptionalID{}
	}

	report, err := h.Reports.Update(c.Request().Context(), id, changes)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, report)
}

// AdminUpdate applies the full change set, assignment and status included.
func (h *ReportHandler) AdminUpdate(c echo.Context) error {
	id, err := parseUint(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid report id")
	}

	var changes service.ReportChanges
	if err := c.Bind(&changes); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err)
	}

	report, err := h.Reports.Update(c.Request().Context(), id, changes)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, report)
}

func (h *ReportHandler) BulkStatus(c echo.Context) error {
	var req struct {
		IDs    []uint `json:"ids"`
		Status string `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err)
	}

	count, err := h.Reports.BulkUpdateStatus(c.Request().Context(), req.IDs, req.Status)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "updated_count": count})
}

func (h *ReportHandler) BulkAssign(c echo.Context) error {
	var req struct {
		IDs        []uint `json:"ids"`
		AssignedTo *uint  `json:"assigned_to"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err)
	}

	count, err := h.Reports.BulkAssign(c.Request().Context(), req.IDs, req.AssignedTo)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "assigned_count": count})
}
