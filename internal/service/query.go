package service

import (
	"context"
	"errors"

	"github.com/mzhdanov/bugtrack/internal/authz"
	"github.com/mzhdanov/bugtrack/internal/models"
	"github.com/mzhdanov/bugtrack/internal/repository"
	"github.com/mzhdanov/bugtrack/internal/util"
)

type QueryService struct {
	Reports ReportStore
}

type Page struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PerPage    int   `json:"per_page"`
	TotalPages int64 `json:"total_pages"`
}

// List returns a filtered page of reports with owner, category and assignee
// summaries. Non-admin actors only ever see their own reports, whatever
// user_id filter they passed.
func (s *QueryService) List(ctx context.Context, f repository.ReportFilters, page, size int, actor authz.Actor) ([]models.Report, Page, error) {
	f.UserID = authz.ScopeToOwner(actor, f.UserID)

	from, limit := util.Calculate(page, size)
	f.Offset, f.Limit = from, limit
	if page < 1 {
		page = 1
	}

	reports, total, err := s.Reports.ListFiltered(ctx, f)
	if err != nil {
		return nil, Page{}, err
	}

	for i := range reports {
		stripHashes(&reports[i])
	}

	return reports, Page{
		Total:      total,
		Page:       page,
		PerPage:    limit,
		TotalPages: util.TotalPages(total, limit),
	}, nil
}

// Get fetches one report, hidden from non-owners unless the actor is admin.
func (s *QueryService) Get(ctx context.Context, id uint, actor authz.Actor) (*models.Report, error) {
	report, err := s.Reports.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrReportNotFound
		}
		return nil, err
	}
	if !authz.CanAccessReport(actor, report) {
		return nil, ErrReportNotFound
	}
	stripHashes(report)
	return report, nil
}

// Password hashes never leave the core, belt and braces on top of the
// json:"-" tag.
func stripHashes(report *models.Report) {
	if report.User != nil {
		report.User.PasswordHash = ""
	}
	if report.Assignee != nil {
		report.Assignee.PasswordHash = ""
	}
}
