package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/mzhdanov/bugtrack/internal/authz"
	"github.com/mzhdanov/bugtrack/internal/models"
	"github.com/mzhdanov/bugtrack/internal/service"
	"github.com/mzhdanov/bugtrack/internal/token"
)

const SessionCookie = "sessionToken"

type SessionMiddleware struct {
	Auth *service.AuthService
}

// TokenFromRequest prefers the Authorization header, falling back to the
// session cookie set by the login handler.
func TokenFromRequest(c echo.Context) string {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	if cookie, err := c.Cookie(SessionCookie); err == nil {
		return cookie.Value
	}
	return ""
}

func setUserContext(c echo.Context, user *models.User) {
	c.Set("user", user)
	c.Set("userID", user.ID)
	c.Set("role", user.Role)
}

// ActorFromContext reads what RequireLogin stored.
func ActorFromContext(c echo.Context) authz.Actor {
	id, _ := c.Get("userID").(uint)
	role, _ := c.Get("role").(string)
	return authz.Actor{ID: id, Role: role}
}

func CurrentUser(c echo.Context) *models.User {
	user, _ := c.Get("user").(*models.User)
	return user
}

func (m *SessionMiddleware) resolve(c echo.Context) (*models.User, error) {
	raw := TokenFromRequest(c)
	if raw == "" {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing token")
	}

	user, err := m.Auth.ResolveSession(c.Request().Context(), raw)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAccountInactive):
			return nil, echo.NewHTTPError(http.StatusForbidden, err.Error())
		case errors.Is(err, service.ErrTokenInvalidated),
			errors.Is(err, service.ErrUserNotFound),
			errors.Is(err, token.ErrMalformedToken),
			errors.Is(err, token.ErrInvalidSignature),
			errors.Is(err, token.ErrTokenExpired):
			return nil, echo.NewHTTPError(http.StatusUnauthorized, err.Error())
		}
		return nil, err
	}
	return user, nil
}

func (m *SessionMiddleware) RequireLogin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, err := m.resolve(c)
		if err != nil {
			return err
		}
		setUserContext(c, user)
		return next(c)
	}
}

func (m *SessionMiddleware) AdminOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, err := m.resolve(c)
		if err != nil {
			return err
		}
		if user.Role != models.RoleAdmin {
			return echo.NewHTTPError(http.StatusForbidden, "not enough rights")
		}
		setUserContext(c, user)
		return next(c)
	}
}
