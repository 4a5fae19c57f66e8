package store

import (
	"context"
	"fmt"

	"restaurant-ordering-api/models"
)

func (s *Store) ListMenu(ctx context.Context) ([]models.MenuItem, error) {
	items := []models.MenuItem{}
	if err := s.db.WithContext(ctx).Order("id").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("list menu: %w", err)
	}
	return items, nil
}

func (s *Store) CountMenu(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(&models.MenuItem{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count menu: %w", err)
	}
	return n, nil
}

func (s *Store) MenuItemByID(ctx context.Context, id uint) (*models.MenuItem, error) {
	var item models.MenuItem
	if err := s.db.WithContext(ctx).First(&item, id).Error; err != nil {
		return nil, translate(err)
	}
	return &item, nil
}

// ExistingMenuItemIDs returns the subset of ids that refer to menu items.
func (s *Store) ExistingMenuItemIDs(ctx context.Context, ids []uint) (map[uint]bool, error) {
	found := make(map[uint]bool, len(ids))
	if len(ids) == 0 {
		return found, nil
	}
	var existing []uint
	err := s.db.WithContext(ctx).Model(&models.MenuItem{}).Where("id IN ?", ids).Pluck("id", &existing).Error
	if err != nil {
		return nil, fmt.Errorf("look up menu items: %w", err)
	}
	for _, id := range existing {
		found[id] = true
	}
	return found, nil
}

func (s *Store) CreateMenuItem(ctx context.Context, item *models.MenuItem) error {
	if err := s.db.WithContext(ctx).Create(item).Error; err != nil {
		return fmt.Errorf("create menu item: %w", err)
	}
	return nil
}

// CreateMenuItems inserts all items in one batch.
func (s *Store) CreateMenuItems(ctx context.Context, items []models.MenuItem) error {
	if len(items) == 0 {
		return nil
	}
	if err := s.db.WithContext(ctx).Create(&items).Error; err != nil {
		return fmt.Errorf("create menu items: %w", err)
	}
	return nil
}

// SaveMenuItem writes every column of an existing item.
func (s *Store) SaveMenuItem(ctx context.Context, item *models.MenuItem) error {
	if err := s.db.WithContext(ctx).Save(item).Error; err != nil {
		return fmt.Errorf("save menu item: %w", err)
	}
	return nil
}

// DeleteMenuItem returns ErrNotFound when no row was removed.
func (s *Store) DeleteMenuItem(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&models.MenuItem{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete menu item: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
