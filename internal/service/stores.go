package service

import (
	"context"
	"time"

	"github.com/mzhdanov/bugtrack/internal/models"
	"github.com/mzhdanov/bugtrack/internal/repository"
)

// Store interfaces consumed by the core services. The gorm repos in
// internal/repository satisfy them; tests may substitute their own.

type UserStore interface {
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	FindByID(ctx context.Context, id uint) (*models.User, error)
	UpdateLastLogin(ctx context.Context, id uint, at time.Time) error
	ActiveExists(ctx context.Context, id uint) (bool, error)
	UsernameOrEmailTaken(ctx context.Context, username, email string) (bool, error)
	Create(ctx context.Context, user *models.User) error
}

type MenuStore interface {
	FindActiveMenu(ctx context.Context, id uint) (*models.Menu, error)
	FindActiveSubMenu(ctx context.Context, id uint) (*models.SubMenu, error)
}

type ReportStore interface {
	FindByID(ctx context.Context, id uint) (*models.Report, error)
	Create(ctx context.Context, report *models.Report) error
	Save(ctx context.Context, report *models.Report) error
	ListFiltered(ctx context.Context, f repository.ReportFilters) ([]models.Report, int64, error)
}
