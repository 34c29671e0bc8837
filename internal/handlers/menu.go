package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	authmw "github.com/mzhdanov/bugtrack/internal/middleware/auth"
	"github.com/mzhdanov/bugtrack/internal/service"
)

type MenuHandler struct {
	Menus *service.MenuService
}

// List shows only active categories to regular users; admins get the lot.
func (h *MenuHandler) List(c echo.Context) error {
	actor := authmw.ActorFromContext(c)
	menus, err := h.Menus.List(c.Request().Context(), !actor.IsAdmin())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, menus)
}

func (h *MenuHandler) CreateMenu(c echo.Context) error {
	var req struct {
		Name string `json:"name"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err)
	}
	if req.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "name is required")
	}

	menu, err := h.Menus.CreateMenu(c.Request().Context(), req.Name)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, menu)
}

func (h *MenuHandler) UpdateMenu(c echo.Context) error {
	id, err := parseUint(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid menu id")
	}

	var req struct {
		Name     *string `json:"name"`
		IsActive *bool   `json:"is_active"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err)
	}

	menu, err := h.Menus.UpdateMenu(c.Request().Context(), id, req.Name, req.IsActive)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, menu)
}

func (h *MenuHandler) DeleteMenu(c echo.Context) error {
	id, err := parseUint(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid menu id")
	}
	if err := h.Menus.DeleteMenu(c.Request().Context(), id); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *MenuHandler) CreateSubMenu(c echo.Context) error {
	menuID, err := parseUint(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid menu id")
	}

	var req struct {
		Name string `json:"name"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err)
	}
	if req.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "name is required")
	}

	sub, err := h.Menus.CreateSubMenu(c.Request().Context(), menuID, req.Name)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, sub)
}

func (h *MenuHandler) UpdateSubMenu(c echo.Context) error {
	id, err := parseUint(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid sub-menu id")
	}

	var req struct {
		Name     *string `json:"name"`
		IsActive *bool   `json:"is_active"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err)
	}

	sub, err := h.Menus.UpdateSubMenu(c.Request().Context(), id, req.Name, req.IsActive)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, sub)
}

func (h *MenuHandler) DeleteSubMenu(c echo.Context) error {
	id, err := parseUint(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid sub-menu id")
	}
	if err := h.Menus.DeleteSubMenu(c.Request().Context(), id); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
