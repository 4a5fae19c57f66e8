package store

import (
	"context"
	"fmt"

	"restaurant-ordering-api/models"

	"gorm.io/gorm"
)

// CreateOrder inserts the order and its initial history row together.
func (s *Store) CreateOrder(ctx context.Context, order *models.Order) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return err
		}
		return tx.Create(&models.OrderStatusHistory{
			OrderID:   order.ID,
			ToStatus:  order.Status,
			ChangedBy: order.UserID,
		}).Error
	})
	if err != nil {
		return fmt.Errorf("create order: %w", err)
	}
	return nil
}

// ListOrders returns every order, newest first.
func (s *Store) ListOrders(ctx context.Context) ([]models.Order, error) {
	orders := []models.Order{}
	if err := s.db.WithContext(ctx).Order("created_at desc, id desc").Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

func (s *Store) OrderByID(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	if err := s.db.WithContext(ctx).First(&order, id).Error; err != nil {
		return nil, translate(err)
	}
	return &order, nil
}

// UpdateOrderStatus sets the status and records the transition. It returns
// the updated order, or ErrNotFound.
func (s *Store) UpdateOrderStatus(ctx context.Context, id uint, status string, changedBy uint) (*models.Order, error) {
	var order models.Order
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&order, id).Error; err != nil {
			return err
		}
		prev := order.Status
		if prev == status {
			return nil
		}
		order.Status = status
		if err := tx.Save(&order).Error; err != nil {
			return err
		}
		return tx.Create(&models.OrderStatusHistory{
			OrderID:    order.ID,
			FromStatus: prev,
			ToStatus:   status,
			ChangedBy:  changedBy,
		}).Error
	})
	if err != nil {
		return nil, translate(err)
	}
	return &order, nil
}

// DeleteOrder removes the order and its history, or returns ErrNotFound.
func (s *Store) DeleteOrder(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.Order{}, id)
		if res.Error != nil {
			return fmt.Errorf("delete order: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		if err := tx.Where("order_id = ?", id).Delete(&models.OrderStatusHistory{}).Error; err != nil {
			return fmt.Errorf("delete order history: %w", err)
		}
		return nil
	})
}

// OrderHistory lists status changes oldest first. ErrNotFound if the order
// does not exist.
func (s *Store) OrderHistory(ctx context.Context, orderID uint) ([]models.OrderStatusHistory, error) {
	if _, err := s.OrderByID(ctx, orderID); err != nil {
		return nil, err
	}
	history := []models.OrderStatusHistory{}
	err := s.db.WithContext(ctx).Where("order_id = ?", orderID).Order("id").Find(&history).Error
	if err != nil {
		return nil, fmt.Errorf("order history: %w", err)
	}
	return history, nil
}
