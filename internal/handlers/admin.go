package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mzhdanov/bugtrack/internal/hash"
	"github.com/mzhdanov/bugtrack/internal/models"
	"github.com/mzhdanov/bugtrack/internal/repository"
)

// AdminHandler covers user administration and the stats summary. Plain
// repo-backed plumbing, no service layer in between.
type AdminHandler struct {
	Users   *repository.UserRepo
	Reports *repository.ReportRepo
}

func (h *AdminHandler) CreateUser(c echo.Context) error {
	var req struct {
		Username string `json:"username"`
		FullName string `json:"full_name"`
		Email    string `json:"email"`
		Password string `json:"password"`
		Role     string `json:"role"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err)
	}
	if req.Username == "" || req.Password == "" || req.Email == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "username, email and password are required")
	}
	if req.Role == "" {
		req.Role = models.RoleUser
	}
	if req.Role != models.RoleUser && req.Role != models.RoleAdmin {
		return echo.NewHTTPError(http.StatusBadRequest, "unknown role")
	}

	taken, err := h.Users.UsernameOrEmailTaken(c.Request().Context(), req.Username, req.Email)
	if err != nil {
		return httpError(err)
	}
	if taken {
		return echo.NewHTTPError(http.StatusConflict, "username or email already taken")
	}

	pwHash, err := hash.HashPassword(req.Password)
	if err != nil {
		return httpError(err)
	}

	user := &models.User{
		Username:     req.Username,
		FullName:     req.FullName,
		Email:        req.Email,
		PasswordHash: pwHash,
		Role:         req.Role,
		IsActive:     true,
	}
	if err := h.Users.Create(c.Request().Context(), user); err != nil {
		return httpError(err)
	}

	user.PasswordHash = ""
	return c.JSON(http.StatusCreated, user)
}

func (h *AdminHandler) SetUserActive(c echo.Context) error {
	id, err := parseUint(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid user id")
	}

	var req struct {
		IsActive bool `json:"is_active"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err)
	}

	if err := h.Users.SetActive(c.Request().Context(), id, req.IsActive); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "user not found")
		}
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

func (h *AdminHandler) Stats(c echo.Context) error {
	counts, err := h.Reports.StatusCounts(c.Request().Context())
	if err != nil {
		return httpError(err)
	}

	var total int64
	for _, n := range counts {
		total += n
	}
	return c.JSON(http.StatusOK, echo.Map{
		"total":     total,
		"by_status": counts,
	})
}
