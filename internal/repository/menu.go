package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/mzhdanov/bugtrack/internal/models"
)

type MenuRepo struct {
	DB *gorm.DB
}

func (r *MenuRepo) FindActiveMenu(ctx context.Context, id uint) (*models.Menu, error) {
	var menu models.Menu
	if err := r.DB.WithContext(ctx).
		Where("id = ? AND is_active = ?", id, true).
		First(&menu).Error; err != nil {
		return nil, translate(err)
	}
	return &menu, nil
}

func (r *MenuRepo) FindActiveSubMenu(ctx context.Context, id uint) (*models.SubMenu, error) {
	var sub models.SubMenu
	if err := r.DB.WithContext(ctx).
		Where("id = ? AND is_active = ?", id, true).
		First(&sub).Error; err != nil {
		return nil, translate(err)
	}
	return &sub, nil
}

func (r *MenuRepo) FindMenu(ctx context.Context, id uint) (*models.Menu, error) {
	var menu models.Menu
	if err := r.DB.WithContext(ctx).First(&menu, id).Error; err != nil {
		return nil, translate(err)
	}
	return &menu, nil
}

func (r *MenuRepo) FindSubMenu(ctx context.Context, id uint) (*models.SubMenu, error) {
	var sub models.SubMenu
	if err := r.DB.WithContext(ctx).First(&sub, id).Error; err != nil {
		return nil, translate(err)
	}
	return &sub, nil
}

// ListMenus returns menus with their sub-menus; when activeOnly is set,
// inactive categories are hidden from selection without touching history.
func (r *MenuRepo) ListMenus(ctx context.Context, activeOnly bool) ([]models.Menu, error) {
	q := r.DB.WithContext(ctx).Model(&models.Menu{}).Order("id ASC")
	if activeOnly {
		q = q.Where("is_active = ?", true).
			Preload("SubMenus", "is_active = ?", true)
	} else {
		q = q.Preload("SubMenus")
	}

	var menus []models.Menu
	if err := q.Find(&menus).Error; err != nil {
		return nil, err
	}
	return menus, nil
}

func (r *MenuRepo) CreateMenu(ctx context.Context, menu *models.Menu) error {
	return r.DB.WithContext(ctx).Create(menu).Error
}

func (r *MenuRepo) SaveMenu(ctx context.Context, menu *models.Menu) error {
	return r.DB.WithContext(ctx).Save(menu).Error
}

func (r *MenuRepo) DeleteMenu(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Delete(&models.Menu{}, id).Error
}

func (r *MenuRepo) CreateSubMenu(ctx context.Context, sub *models.SubMenu) error {
	return r.DB.WithContext(ctx).Create(sub).Error
}

func (r *MenuRepo) SaveSubMenu(ctx context.Context, sub *models.SubMenu) error {
	return r.DB.WithContext(ctx).Save(sub).Error
}

func (r *MenuRepo) DeleteSubMenu(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Delete(&models.SubMenu{}, id).Error
}

func (r *MenuRepo) MenuExists(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := r.DB.WithContext(ctx).Model(&models.Menu{}).
		Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
