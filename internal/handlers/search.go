package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	authmw "github.com/mzhdanov/bugtrack/internal/middleware/auth"
	"github.com/mzhdanov/bugtrack/internal/search"
	"github.com/mzhdanov/bugtrack/internal/util"
)

type SearchHandler struct {
	Search *search.Service
}

func (h *SearchHandler) Reports(c echo.Context) error {
	q := c.QueryParam("q")
	if q == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "q is required")
	}

	actor := authmw.ActorFromContext(c)
	page := parseIntDefault(c.QueryParam("page"), 1)
	size := parseIntDefault(c.QueryParam("per_page"), util.DefaultPageSize)
	from, limit := util.Calculate(page, size)

	// Non-admins only search their own reports.
	var ownerID uint
	if !actor.IsAdmin() {
		ownerID = actor.ID
	}

	total, docs, err := h.Search.Search(c.Request().Context(), q, ownerID, from, limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"total": total, "reports": docs})
}
