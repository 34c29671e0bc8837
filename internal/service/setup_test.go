package service

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/mzhdanov/bugtrack/internal/hash"
	"github.com/mzhdanov/bugtrack/internal/models"
	"github.com/mzhdanov/bugtrack/internal/repository"
	"github.com/mzhdanov/bugtrack/internal/revocation"
	"github.com/mzhdanov/bugtrack/internal/token"
)

func initTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect to in-memory db: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Menu{},
		&models.SubMenu{},
		&models.Report{},
		&models.ReportComment{},
	); err != nil {
		t.Fatalf("failed to migrate tables: %v", err)
	}

	return db
}

type testEnv struct {
	DB       *gorm.DB
	Users    *repository.UserRepo
	Menus    *repository.MenuRepo
	Reports  *repository.ReportRepo
	Comments *repository.CommentRepo

	Auth       *AuthService
	ReportSvc  *ReportService
	QuerySvc   *QueryService
	MenuSvc    *MenuService
	CommentSvc *CommentService
	Codec      *token.Codec
	Registry   *revocation.MemoryRegistry
}

func newTestEnv(t *testing.T) *testEnv {
	db := initTestDB(t)

	users := &repository.UserRepo{DB: db}
	menus := &repository.MenuRepo{DB: db}
	reports := &repository.ReportRepo{DB: db}
	comments := &repository.CommentRepo{DB: db}

	codec := token.NewCodec([]byte("test-secret"), time.Hour)
	registry := revocation.NewMemoryRegistry()

	return &testEnv{
		DB:       db,
		Users:    users,
		Menus:    menus,
		Reports:  reports,
		Comments: comments,

		Auth:       &AuthService{Users: users, Codec: codec, Revoked: registry},
		ReportSvc:  &ReportService{Reports: reports, Menus: menus, Users: users},
		QuerySvc:   &QueryService{Reports: reports},
		MenuSvc:    &MenuService{Menus: menus, Reports: reports},
		CommentSvc: &CommentService{Comments: comments, Reports: reports},
		Codec:      codec,
		Registry:   registry,
	}
}

func (e *testEnv) seedUser(t *testing.T, username, password, role string, active bool) *models.User {
	pwHash, err := hash.HashPassword(password)
	require.NoError(t, err)

	user := &models.User{
		Username:     username,
		FullName:     username,
		Email:        username + "@example.com",
		PasswordHash: pwHash,
		Role:         role,
		IsActive:     active,
	}
	require.NoError(t, e.DB.Create(user).Error)
	return user
}

func (e *testEnv) seedCategory(t *testing.T, menuName, subName string) (*models.Menu, *models.SubMenu) {
	menu := &models.Menu{Name: menuName, IsActive: true}
	require.NoError(t, e.DB.Create(menu).Error)

	sub := &models.SubMenu{MenuID: menu.ID, Name: subName, IsActive: true}
	require.NoError(t, e.DB.Create(sub).Error)
	return menu, sub
}

func (e *testEnv) seedReport(t *testing.T, userID uint, menu *models.Menu, sub *models.SubMenu) *models.Report {
	report, err := e.ReportSvc.Create(context.Background(), userID, CreateReportInput{
		Name:        "broken widget",
		Description: "it does not work",
		MenuID:      menu.ID,
		SubMenuID:   sub.ID,
	})
	require.NoError(t, err)
	return report
}
