package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	authmw "github.com/mzhdanov/bugtrack/internal/middleware/auth"
	"github.com/mzhdanov/bugtrack/internal/service"
)

type CommentHandler struct {
	Comments *service.CommentService
}

func (h *CommentHandler) Create(c echo.Context) error {
	actor := authmw.ActorFromContext(c)
	reportID, err := parseUint(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid report id")
	}

	var req struct {
		Comment    string `json:"comment"`
		IsInternal bool   `json:"is_internal"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err)
	}
	if req.Comment == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "comment is required")
	}

	comment, err := h.Comments.Add(c.Request().Context(), actor, reportID, req.Comment, req.IsInternal)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, comment)
}

func (h *CommentHandler) ListForReport(c echo.Context) error {
	actor := authmw.ActorFromContext(c)
	reportID, err := parseUint(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid report id")
	}

	comments, err := h.Comments.ListForReport(c.Request().Context(), actor, reportID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, comments)
}

func (h *CommentHandler) Update(c echo.Context) error {
	actor := authmw.ActorFromContext(c)
	id, err := parseUint(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid comment id")
	}

	var req struct {
		Comment string `json:"comment"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err)
	}
	if req.Comment == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "comment is required")
	}

	comment, err := h.Comments.Update(c.Request().Context(), actor, id, req.Comment)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, comment)
}

func (h *CommentHandler) Delete(c echo.Context) error {
	actor := authmw.ActorFromContext(c)
	id, err := parseUint(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid comment id")
	}

	if err := h.Comments.Delete(c.Request().Context(), actor, id); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
