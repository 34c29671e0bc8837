package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	authmw "github.com/mzhdanov/bugtrack/internal/middleware/auth"
	"github.com/mzhdanov/bugtrack/internal/service"
)

type AuthHandler struct {
	Auth     *service.AuthService
	TokenTTL time.Duration
}

func CreateCookie(name, value, path string, exp time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     path,
		Expires:  exp,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	}
}

func (h *AuthHandler) Register(c echo.Context) error {
	var req service.RegisterInput
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err)
	}
	if req.Username == "" || req.Password == "" || req.Email == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "username, email and password are required")
	}

	user, err := h.Auth.Register(c.Request().Context(), req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, user)
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err)
	}

	user, raw, err := h.Auth.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return httpError(err)
	}

	c.SetCookie(CreateCookie(authmw.SessionCookie, raw, "/", time.Now().Add(h.TokenTTL)))

	return c.JSON(http.StatusOK, echo.Map{
		"token": raw,
		"user":  user,
	})
}

// Logout always reports success, even with a missing or garbage token.
func (h *AuthHandler) Logout(c echo.Context) error {
	if raw := authmw.TokenFromRequest(c); raw != "" {
		h.Auth.Logout(c.Request().Context(), raw)
	}

	expired := time.Now().Add(-time.Hour)
	c.SetCookie(CreateCookie(authmw.SessionCookie, "", "/", expired))

	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

func (h *AuthHandler) Me(c echo.Context) error {
	return c.JSON(http.StatusOK, authmw.CurrentUser(c))
}
