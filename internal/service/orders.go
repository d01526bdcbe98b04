package service

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/solemate-shop/solemate-api/internal/apperrors"
	"github.com/solemate-shop/solemate-api/internal/events"
	"github.com/solemate-shop/solemate-api/internal/metrics"
	"github.com/solemate-shop/solemate-api/internal/models"
	"github.com/solemate-shop/solemate-api/internal/repository"
)

// OrderService owns the order lifecycle: creation, listing, status
// transitions and self-service cancellation.
type OrderService struct {
	orders       repository.OrderRepository
	carts        repository.CartRepository
	cache        repository.OrderCache
	cartCache    repository.CartCache
	publisher    events.Publisher
	cacheEnabled bool
	logger       *zap.Logger
}

// NewOrderService wires the order service.
func NewOrderService(
	orders repository.OrderRepository,
	carts repository.CartRepository,
	cache repository.OrderCache,
	cartCache repository.CartCache,
	publisher events.Publisher,
	cacheEnabled bool,
	logger *zap.Logger,
) *OrderService {
	return &OrderService{
		orders:       orders,
		carts:        carts,
		cache:        cache,
		cartCache:    cartCache,
		publisher:    publisher,
		cacheEnabled: cacheEnabled,
		logger:       logger,
	}
}

// CreateOrder persists a checkout submission for userID. Cash orders start
// PENDING, everything else starts PROCESSING because the buyer is about to
// be redirected to the payment page; paymentStatus always starts PENDING.
// The user's server-side cart is cleared as a side effect.
func (s *OrderService) CreateOrder(ctx context.Context, userID string, req *models.CreateOrderRequest) (*models.Order, error) {
	if err := ValidateCreateOrderRequest(req); err != nil {
		return nil, err
	}

	now := time.Now()
	order := &models.Order{
		ID:             uuid.NewString(),
		OrderNumber:    generateOrderNumber(),
		UserID:         userID,
		Items:          req.Items,
		ShippingInfo:   req.ShippingAddress,
		Total:          req.Total,
		Status:         models.InitialStatus(req.PaymentMethod),
		PaymentStatus:  models.PaymentStatusPending,
		PaymentMethod:  req.PaymentMethod,
		DeliveryMethod: req.DeliveryMethod,
		Notes:          req.Notes,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	err := s.orders.Create(ctx, order)
	if err == repository.ErrDuplicateOrderNumber {
		// Millisecond timestamp plus a 3-digit suffix can collide under
		// load; the unique constraint catches it and we retry once.
		order.OrderNumber = generateOrderNumber()
		err = s.orders.Create(ctx, order)
	}
	if err != nil {
		return nil, err
	}

	// The cart snapshot must go regardless of the order-cache flag, or a
	// cached pre-checkout cart outlives the cleared rows.
	if err := s.carts.Clear(ctx, userID); err != nil {
		s.logger.Warn("failed to clear cart after order creation",
			zap.String("user_id", userID), zap.Error(err))
	}
	if err := s.cartCache.Invalidate(ctx, userID); err != nil {
		s.logger.Warn("failed to invalidate cart cache after order creation",
			zap.String("user_id", userID), zap.Error(err))
	}

	if err := s.publisher.PublishOrderCreated(ctx, order); err != nil {
		s.logger.Warn("failed to publish order created event",
			zap.String("order_id", order.ID), zap.Error(err))
	}

	metrics.OrdersCreated.WithLabelValues(order.PaymentMethod).Inc()

	s.logger.Info("order created",
		zap.String("order_id", order.ID),
		zap.String("order_number", order.OrderNumber),
		zap.String("status", string(order.Status)))

	return order, nil
}

// GetOrder fetches one order. Non-admin callers only see their own orders;
// an order owned by someone else is indistinguishable from a missing one.
func (s *OrderService) GetOrder(ctx context.Context, id, userID string, isAdmin bool) (*models.Order, error) {
	if s.cacheEnabled {
		if order, err := s.cache.Get(ctx, id); err == nil && order != nil {
			if !isAdmin && order.UserID != userID {
				return nil, apperrors.ErrNotFound
			}
			return order, nil
		}
	}

	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !isAdmin && order.UserID != userID {
		return nil, apperrors.ErrNotFound
	}

	if s.cacheEnabled {
		if err := s.cache.Set(ctx, order); err != nil {
			s.logger.Warn("failed to cache order", zap.String("order_id", id), zap.Error(err))
		}
	}

	return order, nil
}

// ListOrders returns a page of orders plus pagination metadata. The filter's
// UserID scopes the listing; empty means all users (admin only, enforced at
// the handler).
func (s *OrderService) ListOrders(ctx context.Context, filter *models.OrderListFilter) ([]*models.Order, models.Pagination, error) {
	filter.Normalize()

	orders, total, err := s.orders.List(ctx, filter)
	if err != nil {
		return nil, models.Pagination{}, err
	}

	return orders, models.NewPagination(filter.Page, filter.Limit, total), nil
}

// UpdateStatus applies an admin status update. Transitions are checked
// against the explicit tables; out-of-order writes are rejected.
func (s *OrderService) UpdateStatus(ctx context.Context, id string, req *models.UpdateOrderStatusRequest) (*models.Order, error) {
	if err := ValidateUpdateOrderStatusRequest(req); err != nil {
		return nil, err
	}

	current, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Status != nil && !models.ValidTransition(current.Status, *req.Status) {
		return nil, apperrors.NewValidationError("status", fmt.Sprintf(
			"invalid status transition from %s to %s", current.Status, *req.Status))
	}
	if req.PaymentStatus != nil && !models.ValidPaymentTransition(current.PaymentStatus, *req.PaymentStatus) {
		return nil, apperrors.NewValidationError("paymentStatus", fmt.Sprintf(
			"invalid payment status transition from %s to %s", current.PaymentStatus, *req.PaymentStatus))
	}

	order, err := s.orders.UpdateStatus(ctx, id, req)
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, order)

	if req.Status != nil && *req.Status != current.Status {
		metrics.OrderStatusChanges.WithLabelValues(string(*req.Status)).Inc()
		if err := s.publisher.PublishOrderStatusChanged(ctx, order, current.Status); err != nil {
			s.logger.Warn("failed to publish status change event",
				zap.String("order_id", order.ID), zap.Error(err))
		}
	}

	return order, nil
}

// CancelOrder is the self-service cancellation: owners may cancel only while
// the order is still PENDING.
func (s *OrderService) CancelOrder(ctx context.Context, id, userID string) (*models.Order, error) {
	order, err := s.GetOrder(ctx, id, userID, false)
	if err != nil {
		return nil, err
	}

	if !order.CanCancel() {
		return nil, apperrors.ErrConflict
	}

	cancelled := models.OrderStatusCancelled
	order, err = s.orders.UpdateStatus(ctx, id, &models.UpdateOrderStatusRequest{Status: &cancelled})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, order)
	metrics.OrderStatusChanges.WithLabelValues(string(cancelled)).Inc()

	if err := s.publisher.PublishOrderCancelled(ctx, order, "cancelled by customer"); err != nil {
		s.logger.Warn("failed to publish order cancelled event",
			zap.String("order_id", order.ID), zap.Error(err))
	}

	return order, nil
}

func (s *OrderService) invalidate(ctx context.Context, order *models.Order) {
	if !s.cacheEnabled {
		return
	}
	s.cache.Delete(ctx, order.ID)
}

func generateOrderNumber() string {
	return fmt.Sprintf("ORD-%d-%d", time.Now().UnixMilli(), rand.Intn(1000))
}
