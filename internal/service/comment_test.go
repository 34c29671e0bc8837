package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mzhdanov/bugtrack/internal/authz"
	"github.com/mzhdanov/bugtrack/internal/models"
)

func TestCommentVisibility(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.seedUser(t, "alice", "password", models.RoleUser, true)
	admin := env.seedUser(t, "root", "password", models.RoleAdmin, true)
	menu, sub := env.seedCategory(t, "Billing", "Invoices")
	report := env.seedReport(t, alice.ID, menu, sub)

	owner := authz.Actor{ID: alice.ID, Role: models.RoleUser}
	adminActor := authz.Actor{ID: admin.ID, Role: models.RoleAdmin}

	_, err := env.CommentSvc.Add(ctx, owner, report.ID, "any update?", false)
	require.NoError(t, err)
	_, err = env.CommentSvc.Add(ctx, adminActor, report.ID, "triage note", true)
	require.NoError(t, err)

	// Internal comments are admin-only, both to read and to write.
	_, err = env.CommentSvc.Add(ctx, owner, report.ID, "sneaky", true)
	require.ErrorIs(t, err, ErrForbidden)

	forOwner, err := env.CommentSvc.ListForReport(ctx, owner, report.ID)
	require.NoError(t, err)
	require.Len(t, forOwner, 1)
	require.False(t, forOwner[0].IsInternal)

	forAdmin, err := env.CommentSvc.ListForReport(ctx, adminActor, report.ID)
	require.NoError(t, err)
	require.Len(t, forAdmin, 2)
}

func TestCommentAccessIsOwnerScoped(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.seedUser(t, "alice", "password", models.RoleUser, true)
	bob := env.seedUser(t, "bob", "password", models.RoleUser, true)
	menu, sub := env.seedCategory(t, "Billing", "Invoices")
	report := env.seedReport(t, alice.ID, menu, sub)

	stranger := authz.Actor{ID: bob.ID, Role: models.RoleUser}
	_, err := env.CommentSvc.Add(ctx, stranger, report.ID, "hello", false)
	require.ErrorIs(t, err, ErrReportNotFound)

	_, err = env.CommentSvc.ListForReport(ctx, stranger, report.ID)
	require.ErrorIs(t, err, ErrReportNotFound)
}

func TestCommentModifyRules(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.seedUser(t, "alice", "password", models.RoleUser, true)
	bob := env.seedUser(t, "bob", "password", models.RoleUser, true)
	admin := env.seedUser(t, "root", "password", models.RoleAdmin, true)
	menu, sub := env.seedCategory(t, "Billing", "Invoices")
	report := env.seedReport(t, alice.ID, menu, sub)

	owner := authz.Actor{ID: alice.ID, Role: models.RoleUser}
	comment, err := env.CommentSvc.Add(ctx, owner, report.ID, "first draft", false)
	require.NoError(t, err)

	// Another user cannot touch it, its author and admins can.
	_, err = env.CommentSvc.Update(ctx, authz.Actor{ID: bob.ID, Role: models.RoleUser}, comment.ID, "defaced")
	require.ErrorIs(t, err, ErrForbidden)

	updated, err := env.CommentSvc.Update(ctx, owner, comment.ID, "second draft")
	require.NoError(t, err)
	require.Equal(t, "second draft", updated.Comment)

	require.NoError(t, env.CommentSvc.Delete(ctx, authz.Actor{ID: admin.ID, Role: models.RoleAdmin}, comment.ID))
	require.ErrorIs(t, env.CommentSvc.Delete(ctx, owner, comment.ID), ErrCommentNotFound)
}
