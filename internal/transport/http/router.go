package httpserver

import (
	"github.com/labstack/echo/v4"

	"github.com/mzhdanov/bugtrack/internal/handlers"
	authmw "github.com/mzhdanov/bugtrack/internal/middleware/auth"
)

type Deps struct {
	Auth     *handlers.AuthHandler
	Reports  *handlers.ReportHandler
	Menus    *handlers.MenuHandler
	Comments *handlers.CommentHandler
	Search   *handlers.SearchHandler
	Admin    *handlers.AdminHandler
	Session  *authmw.SessionMiddleware
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(200) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(200) })

	v1 := e.Group("/api/v1")

	v1.POST("/register", d.Auth.Register)
	v1.POST("/login", d.Auth.Login)
	v1.POST("/logout", d.Auth.Logout)

	user := v1.Group("", d.Session.RequireLogin)

	user.GET("/me", d.Auth.Me)
	user.GET("/menus", d.Menus.List)

	user.GET("/reports", d.Reports.List)
	user.POST("/reports", d.Reports.Create)
	user.GET("/reports/search", d.Search.Reports)
	user.GET("/reports/:id", d.Reports.Get)
	user.PATCH("/reports/:id", d.Reports.Update)

	user.GET("/reports/:id/comments", d.Comments.ListForReport)
	user.POST("/reports/:id/comments", d.Comments.Create)
	user.PATCH("/comments/:id", d.Comments.Update)
	user.DELETE("/comments/:id", d.Comments.Delete)

	admin := v1.Group("/admin", d.Session.AdminOnly)

	admin.PATCH("/reports/:id", d.Reports.AdminUpdate)
	admin.POST("/reports/bulk-status", d.Reports.BulkStatus)
	admin.POST("/reports/bulk-assign", d.Reports.BulkAssign)

	admin.POST("/menus", d.Menus.CreateMenu)
	admin.PATCH("/menus/:id", d.Menus.UpdateMenu)
	admin.DELETE("/menus/:id", d.Menus.DeleteMenu)
	admin.POST("/menus/:id/sub-menus", d.Menus.CreateSubMenu)
	admin.PATCH("/sub-menus/:id", d.Menus.UpdateSubMenu)
	admin.DELETE("/sub-menus/:id", d.Menus.DeleteSubMenu)

	admin.POST("/users", d.Admin.CreateUser)
	admin.PATCH("/users/:id/active", d.Admin.SetUserActive)

	admin.GET("/stats", d.Admin.Stats)
}
