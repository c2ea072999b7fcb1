package service

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kehilianouar/gymdada-api/internal/domain"
	"github.com/kehilianouar/gymdada-api/internal/events"
	"github.com/kehilianouar/gymdada-api/internal/repository"
	"github.com/kehilianouar/gymdada-api/pkg/errors"
)

// OrderService handles back-office order management: reads, listings and
// operator-driven status changes.
type OrderService struct {
	repos     *repository.Repositories
	publisher events.Publisher
	logger    *zap.Logger
}

// NewOrderService creates a new order service
func NewOrderService(repos *repository.Repositories, publisher events.Publisher, logger *zap.Logger) *OrderService {
	return &OrderService{
		repos:     repos,
		publisher: publisher,
		logger:    logger,
	}
}

// Get returns one order by id
func (s *OrderService) Get(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	return s.repos.Order.GetByID(ctx, id)
}

// List returns orders newest first, optionally filtered by status
func (s *OrderService) List(ctx context.Context, status domain.OrderStatus, limit, offset int) ([]*domain.Order, error) {
	if status == "" {
		return s.repos.Order.List(ctx, limit, offset)
	}
	if !status.IsValid() {
		return nil, &errors.ErrValidation{Message: "unknown order status"}
	}
	return s.repos.Order.ListByStatus(ctx, status, limit, offset)
}

// Events returns the audit trail of an order
func (s *OrderService) Events(ctx context.Context, id uuid.UUID) ([]*domain.OrderEvent, error) {
	if _, err := s.repos.Order.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return s.repos.OrderEvent.GetByOrderID(ctx, id)
}

// UpdateStatus applies an operator-driven status change. Transitions are
// checked against the status adjacency table; setting the current status
// again is an idempotent success.
func (s *OrderService) UpdateStatus(ctx context.Context, id uuid.UUID, newStatus domain.OrderStatus) (*domain.Order, error) {
	if !newStatus.IsValid() {
		return nil, &errors.ErrValidation{Message: "unknown order status"}
	}

	order, err := s.repos.Order.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if order.Status == newStatus {
		return order, nil
	}

	if !order.Status.CanTransitionTo(newStatus) {
		return nil, &errors.ErrInvalidStateTransition{From: order.Status, To: newStatus}
	}

	if err := s.repos.Order.UpdateStatus(ctx, id, newStatus); err != nil {
		return nil, err
	}

	from := order.Status
	order.Status = newStatus

	event := &domain.OrderEvent{
		OrderID:   id,
		EventType: "status_changed",
		EventData: map[string]interface{}{
			"from": from,
			"to":   newStatus,
		},
	}
	if err := s.repos.OrderEvent.Create(ctx, event); err != nil {
		s.logger.Warn("Failed to record status_changed event", zap.Error(err))
	}
	if err := s.publisher.OrderStatusChanged(ctx, order, from); err != nil {
		s.logger.Warn("Failed to publish order.status_changed", zap.Error(err))
	}

	s.logger.Info("Order status updated",
		zap.String("order_id", id.String()),
		zap.String("from", string(from)),
		zap.String("to", string(newStatus)))

	return order, nil
}
