package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/mzhdanov/bugtrack/internal/models"
)

type ReportRepo struct {
	DB *gorm.DB
}

// ReportFilters mirrors the list endpoint's query parameters. Zero values
// mean "no filter"; the query service applies owner scoping before the
// struct reaches this layer.
type ReportFilters struct {
	Search      string
	Status      string
	Priority    string
	MenuID      uint
	AssignedTo  uint
	UserID      uint
	CreatedFrom *time.Time
	CreatedTo   *time.Time
	Offset      int
	Limit       int
}

func (r *ReportRepo) preloaded(ctx context.Context) *gorm.DB {
	return r.DB.WithContext(ctx).
		Preload("User").
		Preload("Menu").
		Preload("SubMenu").
		Preload("Assignee")
}

func (r *ReportRepo) FindByID(ctx context.Context, id uint) (*models.Report, error) {
	var report models.Report
	if err := r.preloaded(ctx).First(&report, id).Error; err != nil {
		return nil, translate(err)
	}
	return &report, nil
}

func (r *ReportRepo) Create(ctx context.Context, report *models.Report) error {
	return r.DB.WithContext(ctx).Create(report).Error
}

func (r *ReportRepo) Save(ctx context.Context, report *models.Report) error {
	return r.DB.WithContext(ctx).Save(report).Error
}

func (r *ReportRepo) applyFilters(q *gorm.DB, f ReportFilters) *gorm.DB {
	if f.Search != "" {
		pattern := "%" + f.Search + "%"
		q = q.Where("LOWER(name) LIKE LOWER(?) OR LOWER(description) LIKE LOWER(?)", pattern, pattern)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Priority != "" {
		q = q.Where("priority = ?", f.Priority)
	}
	if f.MenuID != 0 {
		q = q.Where("menu_id = ?", f.MenuID)
	}
	if f.AssignedTo != 0 {
		q = q.Where("assigned_to = ?", f.AssignedTo)
	}
	if f.UserID != 0 {
		q = q.Where("user_id = ?", f.UserID)
	}
	if f.CreatedFrom != nil {
		q = q.Where("created_at >= ?", *f.CreatedFrom)
	}
	if f.CreatedTo != nil {
		q = q.Where("created_at <= ?", *f.CreatedTo)
	}
	return q
}

func (r *ReportRepo) ListFiltered(ctx context.Context, f ReportFilters) ([]models.Report, int64, error) {
	var total int64
	counted := r.applyFilters(r.DB.WithContext(ctx).Model(&models.Report{}), f)
	if err := counted.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var reports []models.Report
	q := r.applyFilters(r.preloaded(ctx).Model(&models.Report{}), f).
		Order("created_at DESC").
		Offset(f.Offset).
		Limit(f.Limit)
	if err := q.Find(&reports).Error; err != nil {
		return nil, 0, err
	}

	return reports, total, nil
}

func (r *ReportRepo) CountByMenu(ctx context.Context, menuID uint) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&models.Report{}).
		Where("menu_id = ?", menuID).Count(&count).Error
	return count, err
}

func (r *ReportRepo) CountBySubMenu(ctx context.Context, subMenuID uint) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&models.Report{}).
		Where("sub_menu_id = ?", subMenuID).Count(&count).Error
	return count, err
}

func (r *ReportRepo) StatusCounts(ctx context.Context) (map[string]int64, error) {
	type row struct {
		Status string
		Total  int64
	}
	var rows []row
	if err := r.DB.WithContext(ctx).Model(&models.Report{}).
		Select("status, COUNT(*) AS total").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		counts[r.Status] = r.Total
	}
	return counts, nil
}
