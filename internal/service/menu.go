package service

import (
	"context"
	"errors"
	"time"

	"github.com/mzhdanov/bugtrack/internal/models"
	"github.com/mzhdanov/bugtrack/internal/repository"
)

type MenuService struct {
	Menus   *repository.MenuRepo
	Reports *repository.ReportRepo
}

func (s *MenuService) List(ctx context.Context, activeOnly bool) ([]models.Menu, error) {
	return s.Menus.ListMenus(ctx, activeOnly)
}

func (s *MenuService) CreateMenu(ctx context.Context, name string) (*models.Menu, error) {
	menu := &models.Menu{Name: name, IsActive: true}
	if err := s.Menus.CreateMenu(ctx, menu); err != nil {
		return nil, err
	}
	return menu, nil
}

func (s *MenuService) UpdateMenu(ctx context.Context, id uint, name *string, isActive *bool) (*models.Menu, error) {
	menu, err := s.Menus.FindMenu(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrMenuNotFound
		}
		return nil, err
	}

	if name != nil {
		menu.Name = *name
	}
	if isActive != nil {
		menu.IsActive = *isActive
	}
	menu.UpdatedAt = time.Now()

	if err := s.Menus.SaveMenu(ctx, menu); err != nil {
		return nil, err
	}
	return menu, nil
}

// DeleteMenu refuses while any report still references the menu; categories
// are deactivated instead of cascade-deleted.
func (s *MenuService) DeleteMenu(ctx context.Context, id uint) error {
	if _, err := s.Menus.FindMenu(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrMenuNotFound
		}
		return err
	}

	count, err := s.Reports.CountByMenu(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrDependencyExists
	}
	return s.Menus.DeleteMenu(ctx, id)
}

func (s *MenuService) CreateSubMenu(ctx context.Context, menuID uint, name string) (*models.SubMenu, error) {
	if _, err := s.Menus.FindActiveMenu(ctx, menuID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidMenu
		}
		return nil, err
	}

	sub := &models.SubMenu{MenuID: menuID, Name: name, IsActive: true}
	if err := s.Menus.CreateSubMenu(ctx, sub); err != nil {
		return nil, err
	}
	return sub, nil
}

func (s *MenuService) UpdateSubMenu(ctx context.Context, id uint, name *string, isActive *bool) (*models.SubMenu, error) {
	sub, err := s.Menus.FindSubMenu(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSubMenuNotFound
		}
		return nil, err
	}

	if name != nil {
		sub.Name = *name
	}
	if isActive != nil {
		sub.IsActive = *isActive
	}
	sub.UpdatedAt = time.Now()

	if err := s.Menus.SaveSubMenu(ctx, sub); err != nil {
		return nil, err
	}
	return sub, nil
}

func (s *MenuService) DeleteSubMenu(ctx context.Context, id uint) error {
	if _, err := s.Menus.FindSubMenu(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrSubMenuNotFound
		}
		return err
	}

	count, err := s.Reports.CountBySubMenu(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrDependencyExists
	}
	return s.Menus.DeleteSubMenu(ctx, id)
}
