package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mzhdanov/bugtrack/internal/events"
	"github.com/mzhdanov/bugtrack/internal/logging"
	"github.com/mzhdanov/bugtrack/internal/models"
	"github.com/mzhdanov/bugtrack/internal/repository"
	"github.com/mzhdanov/bugtrack/internal/search"
)

type ReportService struct {
	Reports  ReportStore
	Menus    MenuStore
	Users    UserStore
	Producer *events.Producer
	Search   *search.Service
}

// ReportChanges is a partial update: nil pointers mean "leave unchanged".
// AssignedTo additionally distinguishes explicit null (unassign) from an
// absent key, which plain pointers cannot express.
type ReportChanges struct {
	Name        *string           `json:"name"`
	Description *string           `json:"description"`
	Status      *string           `json:"status"`
	Priority    *string           `json:"priority"`
	MenuID      *uint             `json:"menu_id"`
	SubMenuID   *uint             `json:"sub_menu_id"`
	AssignedTo  models.OptionalID `json:"assigned_to"`
	Screenshots *[]string         `json:"screenshots"`
}

type CreateReportInput struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	MenuID      uint     `json:"menu_id"`
	SubMenuID   uint     `json:"sub_menu_id"`
	Priority    string   `json:"priority"`
	Screenshots []string `json:"screenshots"`
}

func (s *ReportService) publish(ctx context.Context, key string, event map[string]interface{}) {
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if err := s.Producer.PublishEvent(pubCtx, events.TopicReportEvents, key, event); err != nil {
		logging.FromContext(ctx).Error("kafka publish error", "error", err)
	}
}

func (s *ReportService) index(ctx context.Context, report *models.Report) {
	if err := s.Search.IndexReport(ctx, report); err != nil {
		logging.FromContext(ctx).Error("search index error", "report_id", report.ID, "error", err)
	}
}

// validateCategory checks that subMenuID names an active sub-menu belonging
// to menuID.
func (s *ReportService) validateCategory(ctx context.Context, menuID, subMenuID uint) error {
	if _, err := s.Menus.FindActiveMenu(ctx, menuID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrInvalidMenu
		}
		return err
	}

	sub, err := s.Menus.FindActiveSubMenu(ctx, subMenuID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrInvalidSubMenu
		}
		return err
	}
	if sub.MenuID != menuID {
		return ErrCategoryMismatch
	}
	return nil
}

func (s *ReportService) Create(ctx context.Context, userID uint, in CreateReportInput) (*models.Report, error) {
	if err := s.validateCategory(ctx, in.MenuID, in.SubMenuID); err != nil {
		return nil, err
	}

	priority := in.Priority
	if priority == "" {
		priority = models.PriorityMedium
	}
	if !models.ValidPriority(priority) {
		return nil, ErrInvalidPriority
	}
	if len(in.Screenshots) > models.MaxScreenshots {
		return nil, ErrTooManyScreenshots
	}

	report := &models.Report{
		UserID:      userID,
		MenuID:      in.MenuID,
		SubMenuID:   in.SubMenuID,
		Name:        in.Name,
		Description: in.Description,
		Status:      models.StatusPending,
		Priority:    priority,
		Screenshots: in.Screenshots,
	}
	if err := s.Reports.Create(ctx, report); err != nil {
		return nil, err
	}

	s.publish(ctx, fmt.Sprint(report.ID), map[string]interface{}{
		"type":      "report_created",
		"report_id": report.ID,
		"user_id":   report.UserID,
		"priority":  report.Priority,
	})
	s.index(ctx, report)

	return s.Reports.FindByID(ctx, report.ID)
}

// Update applies a partial change set to one report, enforcing category
// consistency, assignee validity and the resolved_at invariant:
// resolved_at is set exactly while status == resolved.
func (s *ReportService) Update(ctx context.Context, id uint, changes ReportChanges) (*models.Report, error) {
	report, err := s.Reports.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrReportNotFound
		}
		return nil, err
	}

	if changes.MenuID != nil {
		if _, err := s.Menus.FindActiveMenu(ctx, *changes.MenuID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, ErrInvalidMenu
			}
			return nil, err
		}
		// A menu change that keeps the current sub-menu is only consistent
		// when that sub-menu belongs to the incoming menu.
		if changes.SubMenuID == nil && *changes.MenuID != report.MenuID {
			return nil, ErrCategoryMismatch
		}
	}

	if changes.SubMenuID != nil {
		sub, err := s.Menus.FindActiveSubMenu(ctx, *changes.SubMenuID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, ErrInvalidSubMenu
			}
			return nil, err
		}
		effectiveMenu := report.MenuID
		if changes.MenuID != nil {
			effectiveMenu = *changes.MenuID
		}
		if sub.MenuID != effectiveMenu {
			return nil, ErrCategoryMismatch
		}
		report.SubMenuID = *changes.SubMenuID
	}
	if changes.MenuID != nil {
		report.MenuID = *changes.MenuID
	}

	if changes.AssignedTo.Set {
		if changes.AssignedTo.Value != nil {
			ok, err := s.Users.ActiveExists(ctx, *changes.AssignedTo.Value)
			if err != nil {
				return nil, err
			}
			if !ok {
				return nil, ErrInvalidAssignee
			}
		}
		report.AssignedTo = changes.AssignedTo.Value
	}

	prevStatus := report.Status
	if changes.Status != nil {
		if !models.ValidStatus(*changes.Status) {
			return nil, ErrInvalidStatus
		}
		report.Status = *changes.Status
		if report.Status == models.StatusResolved {
			now := time.Now()
			report.ResolvedAt = &now
		} else if prevStatus == models.StatusResolved {
			report.ResolvedAt = nil
		}
	}

	if changes.Name != nil {
		report.Name = *changes.Name
	}
	if changes.Description != nil {
		report.Description = *changes.Description
	}
	if changes.Priority != nil {
		if !models.ValidPriority(*changes.Priority) {
			return nil, ErrInvalidPriority
		}
		report.Priority = *changes.Priority
	}
	if changes.Screenshots != nil {
		if len(*changes.Screenshots) > models.MaxScreenshots {
			return nil, ErrTooManyScreenshots
		}
		report.Screenshots = *changes.Screenshots
	}

	report.UpdatedAt = time.Now()
	if err := s.Reports.Save(ctx, report); err != nil {
		return nil, err
	}

	if changes.Status != nil && report.Status != prevStatus {
		s.publish(ctx, fmt.Sprint(report.ID), map[string]interface{}{
			"type":      "report_status_changed",
			"report_id": report.ID,
			"from":      prevStatus,
			"to":        report.Status,
		})
	}
	if changes.AssignedTo.Set {
		s.publish(ctx, fmt.Sprint(report.ID), map[string]interface{}{
			"type":        "report_assigned",
			"report_id":   report.ID,
			"assigned_to": report.AssignedTo,
		})
	}
	s.index(ctx, report)

	return s.Reports.FindByID(ctx, report.ID)
}

// BulkUpdateStatus is best-effort: each id is validated and updated on its
// own and the count of rows actually changed comes back.
func (s *ReportService) BulkUpdateStatus(ctx context.Context, ids []uint, status string) (int, error) {
	if !models.ValidStatus(status) {
		return 0, ErrInvalidStatus
	}

	updated := 0
	for _, id := range ids {
		if _, err := s.Update(ctx, id, ReportChanges{Status: &status}); err != nil {
			logging.FromContext(ctx).Warn("bulk status update skipped", "report_id", id, "error", err)
			continue
		}
		updated++
	}
	return updated, nil
}

func (s *ReportService) BulkAssign(ctx context.Context, ids []uint, assignee *uint) (int, error) {
	changes := ReportChanges{AssignedTo: models.OptionalID{Set: true, Value: assignee}}

	assigned := 0
	for _, id := range ids {
		if _, err := s.Update(ctx, id, changes); err != nil {
			logging.FromContext(ctx).Warn("bulk assign skipped", "report_id", id, "error", err)
			continue
		}
		assigned++
	}
	return assigned, nil
}
