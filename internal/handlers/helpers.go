package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/mzhdanov/bugtrack/internal/service"
	"github.com/mzhdanov/bugtrack/internal/token"
)

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}

func parseUint(s string) (uint, error) {
	v, err := strconv.ParseUint(s, 10, 32)
	return uint(v), err
}

// httpError maps the service sentinels onto response codes. Unknown errors
// come back as a bare 500, store failures included.
func httpError(err error) error {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrTokenInvalidated),
		errors.Is(err, token.ErrMalformedToken),
		errors.Is(err, token.ErrInvalidSignature),
		errors.Is(err, token.ErrTokenExpired):
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrAccountInactive),
		errors.Is(err, service.ErrForbidden):
		return echo.NewHTTPError(http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrReportNotFound),
		errors.Is(err, service.ErrMenuNotFound),
		errors.Is(err, service.ErrSubMenuNotFound),
		errors.Is(err, service.ErrCommentNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrInvalidMenu),
		errors.Is(err, service.ErrInvalidSubMenu),
		errors.Is(err, service.ErrCategoryMismatch),
		errors.Is(err, service.ErrInvalidAssignee),
		errors.Is(err, service.ErrInvalidStatus),
		errors.Is(err, service.ErrInvalidPriority),
		errors.Is(err, service.ErrTooManyScreenshots):
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, service.ErrUserExists),
		errors.Is(err, service.ErrDependencyExists),
		errors.Is(err, service.ErrReportClosed):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	}
	return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
}
