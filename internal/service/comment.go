package service

import (
	"context"
	"errors"

	"github.com/mzhdanov/bugtrack/internal/authz"
	"github.com/mzhdanov/bugtrack/internal/models"
	"github.com/mzhdanov/bugtrack/internal/repository"
)

type CommentService struct {
	Comments *repository.CommentRepo
	Reports  ReportStore
}

func (s *CommentService) reportFor(ctx context.Context, actor authz.Actor, reportID uint) (*models.Report, error) {
	report, err := s.Reports.FindByID(ctx, reportID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrReportNotFound
		}
		return nil, err
	}
	// Hide other users' reports rather than admit they exist.
	if !authz.CanAccessReport(actor, report) {
		return nil, ErrReportNotFound
	}
	return report, nil
}

func (s *CommentService) Add(ctx context.Context, actor authz.Actor, reportID uint, text string, internal bool) (*models.ReportComment, error) {
	if _, err := s.reportFor(ctx, actor, reportID); err != nil {
		return nil, err
	}
	if internal && !authz.CanSeeInternal(actor) {
		return nil, ErrForbidden
	}

	comment := &models.ReportComment{
		ReportID:   reportID,
		UserID:     actor.ID,
		Comment:    text,
		IsInternal: internal,
	}
	if err := s.Comments.Create(ctx, comment); err != nil {
		return nil, err
	}
	return s.Comments.FindByID(ctx, comment.ID)
}

func (s *CommentService) ListForReport(ctx context.Context, actor authz.Actor, reportID uint) ([]models.ReportComment, error) {
	if _, err := s.reportFor(ctx, actor, reportID); err != nil {
		return nil, err
	}
	return s.Comments.ListByReport(ctx, reportID, authz.CanSeeInternal(actor))
}

func (s *CommentService) Update(ctx context.Context, actor authz.Actor, id uint, text string) (*models.ReportComment, error) {
	comment, err := s.Comments.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}
	if !authz.CanModifyComment(actor, comment) {
		return nil, ErrForbidden
	}

	comment.Comment = text
	if err := s.Comments.Save(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *CommentService) Delete(ctx context.Context, actor authz.Actor, id uint) error {
	comment, err := s.Comments.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrCommentNotFound
		}
		return err
	}
	if !authz.CanModifyComment(actor, comment) {
		return ErrForbidden
	}
	return s.Comments.Delete(ctx, comment.ID)
}
