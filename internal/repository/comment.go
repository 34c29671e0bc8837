package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/mzhdanov/bugtrack/internal/models"
)

type CommentRepo struct {
	DB *gorm.DB
}

func (r *CommentRepo) Create(ctx context.Context, comment *models.ReportComment) error {
	return r.DB.WithContext(ctx).Create(comment).Error
}

func (r *CommentRepo) FindByID(ctx context.Context, id uint) (*models.ReportComment, error) {
	var comment models.ReportComment
	if err := r.DB.WithContext(ctx).Preload("User").First(&comment, id).Error; err != nil {
		return nil, translate(err)
	}
	return &comment, nil
}

func (r *CommentRepo) ListByReport(ctx context.Context, reportID uint, includeInternal bool) ([]models.ReportComment, error) {
	q := r.DB.WithContext(ctx).Preload("User").
		Where("report_id = ?", reportID).
		Order("created_at ASC")
	if !includeInternal {
		q = q.Where("is_internal = ?", false)
	}

	var comments []models.ReportComment
	if err := q.Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

func (r *CommentRepo) Save(ctx context.Context, comment *models.ReportComment) error {
	return r.DB.WithContext(ctx).Save(comment).Error
}

func (r *CommentRepo) Delete(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Delete(&models.ReportComment{}, id).Error
}
