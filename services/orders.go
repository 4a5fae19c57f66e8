package services

import (
	"context"
	"log/slog"

	"restaurant-ordering-api/metrics"
	"restaurant-ordering-api/models"
)

type OrderStore interface {
	CreateOrder(ctx context.Context, order *models.Order) error
	ListOrders(ctx context.Context) ([]models.Order, error)
	OrderByID(ctx context.Context, id uint) (*models.Order, error)
	UpdateOrderStatus(ctx context.Context, id uint, status string, changedBy uint) (*models.Order, error)
	DeleteOrder(ctx context.Context, id uint) error
	OrderHistory(ctx context.Context, orderID uint) ([]models.OrderStatusHistory, error)
}

// LineItemValidator checks a client payload before it is stored.
type LineItemValidator interface {
	Validate(ctx context.Context, items models.LineItems) error
}

type OrderService struct {
	store     OrderStore
	validator LineItemValidator
	logger    *slog.Logger
}

// NewOrderService builds the ledger. validator may be nil, in which case
// line items are stored without inspection.
func NewOrderService(orders OrderStore, validator LineItemValidator, logger *slog.Logger) *OrderService {
	return &OrderService{store: orders, validator: validator, logger: logger}
}

// Create places an order for the caller with status pending.
func (s *OrderService) Create(ctx context.Context, userID uint, items models.LineItems) (*models.Order, error) {
	if len(items) == 0 {
		return nil, invalidInput("items are required")
	}
	if s.validator != nil {
		if err := s.validator.Validate(ctx, items); err != nil {
			return nil, err
		}
	}

	order := &models.Order{UserID: userID, Items: items, Status: models.StatusPending}
	if err := s.store.CreateOrder(ctx, order); err != nil {
		return nil, err
	}

	metrics.RecordOrderCreated()
	s.logger.Info("order placed", "order_id", order.ID, "user_id", userID)
	return order, nil
}

// List returns all orders regardless of who placed them.
func (s *OrderService) List(ctx context.Context) ([]models.Order, error) {
	return s.store.ListOrders(ctx)
}

// UpdateStatus sets a new status. An empty status leaves the order as is.
func (s *OrderService) UpdateStatus(ctx context.Context, id uint, status string, changedBy uint) (*models.Order, error) {
	if status == "" {
		order, err := s.store.OrderByID(ctx, id)
		if err != nil {
			return nil, notFound(err)
		}
		return order, nil
	}

	order, err := s.store.UpdateOrderStatus(ctx, id, status, changedBy)
	if err != nil {
		return nil, notFound(err)
	}

	metrics.RecordOrderStatusChange(status)
	s.logger.Info("order status updated", "order_id", id, "status", status, "changed_by", changedBy)
	return order, nil
}

func (s *OrderService) Delete(ctx context.Context, id uint) error {
	if err := s.store.DeleteOrder(ctx, id); err != nil {
		return notFound(err)
	}
	s.logger.Info("order deleted", "order_id", id)
	return nil
}

// History lists the status changes of one order, oldest first.
func (s *OrderService) History(ctx context.Context, id uint) ([]models.OrderStatusHistory, error) {
	history, err := s.store.OrderHistory(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return history, nil
}
