package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mzhdanov/bugtrack/internal/models"
)

func strPtr(s string) *string { return &s }
func uintPtr(v uint) *uint    { return &v }

func TestCreateReportDefaults(t *testing.T) {
	env := newTestEnv(t)
	user := env.seedUser(t, "reporter", "password", models.RoleUser, true)
	menu, sub := env.seedCategory(t, "Billing", "Invoices")

	report := env.seedReport(t, user.ID, menu, sub)
	require.Equal(t, models.StatusPending, report.Status)
	require.Equal(t, models.PriorityMedium, report.Priority)
	require.Nil(t, report.ResolvedAt)
	require.NotNil(t, report.User)
	require.NotNil(t, report.Menu)
	require.NotNil(t, report.SubMenu)
}

func TestCreateReportValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.seedUser(t, "reporter", "password", models.RoleUser, true)
	menu, sub := env.seedCategory(t, "Billing", "Invoices")
	otherMenu, otherSub := env.seedCategory(t, "Payments", "Cards")

	_, err := env.ReportSvc.Create(ctx, user.ID, CreateReportInput{
		Name: "x", MenuID: menu.ID + 100, SubMenuID: sub.ID,
	})
	require.ErrorIs(t, err, ErrInvalidMenu)

	_, err = env.ReportSvc.Create(ctx, user.ID, CreateReportInput{
		Name: "x", MenuID: menu.ID, SubMenuID: otherSub.ID + 100,
	})
	require.ErrorIs(t, err, ErrInvalidSubMenu)

	// Sub-menu from another menu.
	_, err = env.ReportSvc.Create(ctx, user.ID, CreateReportInput{
		Name: "x", MenuID: menu.ID, SubMenuID: otherSub.ID,
	})
	require.ErrorIs(t, err, ErrCategoryMismatch)
	_ = otherMenu

	_, err = env.ReportSvc.Create(ctx, user.ID, CreateReportInput{
		Name: "x", MenuID: menu.ID, SubMenuID: sub.ID,
		Screenshots: []string{"a", "b", "c", "d", "e", "f"},
	})
	require.ErrorIs(t, err, ErrTooManyScreenshots)

	_, err = env.ReportSvc.Create(ctx, user.ID, CreateReportInput{
		Name: "x", MenuID: menu.ID, SubMenuID: sub.ID, Priority: "urgent",
	})
	require.ErrorIs(t, err, ErrInvalidPriority)
}

func TestResolvedAtInvariant(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.seedUser(t, "reporter", "password", models.RoleUser, true)
	menu, sub := env.seedCategory(t, "Billing", "Invoices")
	report := env.seedReport(t, user.ID, menu, sub)

	// Any walk through the status graph keeps resolved_at tied to the
	// resolved status.
	transitions := []string{
		models.StatusProgress,
		models.StatusResolved,
		models.StatusProgress,
		models.StatusResolved,
		models.StatusClosed,
		models.StatusPending,
	}
	for _, status := range transitions {
		updated, err := env.ReportSvc.Update(ctx, report.ID, ReportChanges{Status: &status})
		require.NoError(t, err)
		if status == models.StatusResolved {
			require.NotNil(t, updated.ResolvedAt, "status=%s", status)
		} else {
			require.Nil(t, updated.ResolvedAt, "status=%s", status)
		}
	}
}

func TestUpdateLeavesResolvedAtBetweenNonResolved(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.seedUser(t, "reporter", "password", models.RoleUser, true)
	menu, sub := env.seedCategory(t, "Billing", "Invoices")
	report := env.seedReport(t, user.ID, menu, sub)

	// pending -> progress -> closed never touches resolved_at.
	for _, status := range []string{models.StatusProgress, models.StatusClosed} {
		updated, err := env.ReportSvc.Update(ctx, report.ID, ReportChanges{Status: &status})
		require.NoError(t, err)
		require.Nil(t, updated.ResolvedAt)
	}

	// A non-status update on a resolved report keeps the stamp.
	status := models.StatusResolved
	updated, err := env.ReportSvc.Update(ctx, report.ID, ReportChanges{Status: &status})
	require.NoError(t, err)
	stamp := updated.ResolvedAt
	require.NotNil(t, stamp)

	updated, err = env.ReportSvc.Update(ctx, report.ID, ReportChanges{Description: strPtr("more detail")})
	require.NoError(t, err)
	require.NotNil(t, updated.ResolvedAt)
	require.Equal(t, stamp.Unix(), updated.ResolvedAt.Unix())
}

func TestUpdateCategoryRules(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.seedUser(t, "reporter", "password", models.RoleUser, true)
	menu, sub := env.seedCategory(t, "Billing", "Invoices")
	otherMenu, otherSub := env.seedCategory(t, "Payments", "Cards")
	report := env.seedReport(t, user.ID, menu, sub)

	_, err := env.ReportSvc.Update(ctx, report.ID, ReportChanges{MenuID: uintPtr(9999)})
	require.ErrorIs(t, err, ErrInvalidMenu)

	_, err = env.ReportSvc.Update(ctx, report.ID, ReportChanges{SubMenuID: uintPtr(9999)})
	require.ErrorIs(t, err, ErrInvalidSubMenu)

	// Sub-menu must match the report's current menu when menu_id is absent.
	_, err = env.ReportSvc.Update(ctx, report.ID, ReportChanges{SubMenuID: &otherSub.ID})
	require.ErrorIs(t, err, ErrCategoryMismatch)

	// And a menu-only change cannot strand the current sub-menu under a
	// foreign menu.
	_, err = env.ReportSvc.Update(ctx, report.ID, ReportChanges{MenuID: &otherMenu.ID})
	require.ErrorIs(t, err, ErrCategoryMismatch)

	// Re-sending the current menu alone is a no-op, not a mismatch.
	updated, err := env.ReportSvc.Update(ctx, report.ID, ReportChanges{MenuID: &menu.ID})
	require.NoError(t, err)
	require.Equal(t, menu.ID, updated.MenuID)
	require.Equal(t, sub.ID, updated.SubMenuID)

	// And the incoming menu when both change together.
	updated, err = env.ReportSvc.Update(ctx, report.ID, ReportChanges{
		MenuID:    &otherMenu.ID,
		SubMenuID: &otherSub.ID,
	})
	require.NoError(t, err)
	require.Equal(t, otherMenu.ID, updated.MenuID)
	require.Equal(t, otherSub.ID, updated.SubMenuID)

	// Mismatch with an incoming menu present.
	_, err = env.ReportSvc.Update(ctx, report.ID, ReportChanges{
		MenuID:    &menu.ID,
		SubMenuID: &otherSub.ID,
	})
	require.ErrorIs(t, err, ErrCategoryMismatch)

	// Inactive sub-menus are not selectable.
	require.NoError(t, env.DB.Model(&models.SubMenu{}).Where("id = ?", sub.ID).Update("is_active", false).Error)
	_, err = env.ReportSvc.Update(ctx, report.ID, ReportChanges{MenuID: &menu.ID, SubMenuID: &sub.ID})
	require.ErrorIs(t, err, ErrInvalidSubMenu)
}

func TestUpdateAssignment(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.seedUser(t, "reporter", "password", models.RoleUser, true)
	admin := env.seedUser(t, "triager", "password", models.RoleAdmin, true)
	inactive := env.seedUser(t, "gone", "password", models.RoleUser, false)
	menu, sub := env.seedCategory(t, "Billing", "Invoices")
	report := env.seedReport(t, user.ID, menu, sub)

	_, err := env.ReportSvc.Update(ctx, report.ID, ReportChanges{
		AssignedTo: models.OptionalID{Set: true, Value: &inactive.ID},
	})
	require.ErrorIs(t, err, ErrInvalidAssignee)

	updated, err := env.ReportSvc.Update(ctx, report.ID, ReportChanges{
		AssignedTo: models.OptionalID{Set: true, Value: &admin.ID},
	})
	require.NoError(t, err)
	require.NotNil(t, updated.AssignedTo)
	require.Equal(t, admin.ID, *updated.AssignedTo)
	require.NotNil(t, updated.Assignee)

	// Absent field leaves assignment alone.
	updated, err = env.ReportSvc.Update(ctx, report.ID, ReportChanges{Name: strPtr("renamed")})
	require.NoError(t, err)
	require.NotNil(t, updated.AssignedTo)

	// Explicit null unassigns.
	updated, err = env.ReportSvc.Update(ctx, report.ID, ReportChanges{
		AssignedTo: models.OptionalID{Set: true, Value: nil},
	})
	require.NoError(t, err)
	require.Nil(t, updated.AssignedTo)
}

func TestUpdateReportNotFound(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.ReportSvc.Update(context.Background(), 12345, ReportChanges{Name: strPtr("x")})
	require.ErrorIs(t, err, ErrReportNotFound)
}

func TestBulkUpdateStatus(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.seedUser(t, "reporter", "password", models.RoleUser, true)
	menu, sub := env.seedCategory(t, "Billing", "Invoices")

	first := env.seedReport(t, user.ID, menu, sub)
	second := env.seedReport(t, user.ID, menu, sub)

	// One id is stale; best-effort still updates the rest and counts them.
	count, err := env.ReportSvc.BulkUpdateStatus(ctx, []uint{first.ID, second.ID, 9999}, models.StatusResolved)
	require.NoError(t, err)
	require.Equal(t, 2, count)

	for _, id := range []uint{first.ID, second.ID} {
		report, err := env.Reports.FindByID(ctx, id)
		require.NoError(t, err)
		require.Equal(t, models.StatusResolved, report.Status)
		require.NotNil(t, report.ResolvedAt)
	}

	_, err = env.ReportSvc.BulkUpdateStatus(ctx, []uint{first.ID}, "bogus")
	require.ErrorIs(t, err, ErrInvalidStatus)
}

func TestBulkAssign(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.seedUser(t, "reporter", "password", models.RoleUser, true)
	admin := env.seedUser(t, "triager", "password", models.RoleAdmin, true)
	menu, sub := env.seedCategory(t, "Billing", "Invoices")

	first := env.seedReport(t, user.ID, menu, sub)
	second := env.seedReport(t, user.ID, menu, sub)

	count, err := env.ReportSvc.BulkAssign(ctx, []uint{first.ID, second.ID}, &admin.ID)
	require.NoError(t, err)
	require.Equal(t, 2, count)

	count, err = env.ReportSvc.BulkAssign(ctx, []uint{first.ID, second.ID}, nil)
	require.NoError(t, err)
	require.Equal(t, 2, count)

	report, err := env.Reports.FindByID(ctx, first.ID)
	require.NoError(t, err)
	require.Nil(t, report.AssignedTo)
}
