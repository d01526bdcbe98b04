package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/solemate-shop/solemate-api/internal/apperrors"
	"github.com/solemate-shop/solemate-api/internal/events"
	"github.com/solemate-shop/solemate-api/internal/liqpay"
	"github.com/solemate-shop/solemate-api/internal/metrics"
	"github.com/solemate-shop/solemate-api/internal/models"
	"github.com/solemate-shop/solemate-api/internal/repository"
)

// PaymentService is the bridge to the hosted LiqPay checkout: it signs
// outgoing payloads and reconciles the asynchronous callback into the
// order's payment state.
type PaymentService struct {
	orders       repository.OrderRepository
	cache        repository.OrderCache
	liqpay       *liqpay.Client
	publisher    events.Publisher
	cacheEnabled bool
	logger       *zap.Logger
}

// NewPaymentService wires the payment bridge.
func NewPaymentService(
	orders repository.OrderRepository,
	cache repository.OrderCache,
	lp *liqpay.Client,
	publisher events.Publisher,
	cacheEnabled bool,
	logger *zap.Logger,
) *PaymentService {
	return &PaymentService{
		orders:       orders,
		cache:        cache,
		liqpay:       lp,
		publisher:    publisher,
		cacheEnabled: cacheEnabled,
		logger:       logger,
	}
}

// CreatePayment returns the signed payload the client posts to the hosted
// checkout page. The order must belong to the caller and must not already be
// paid. Marking the order PROCESSING here is deliberate: "buyer sent to the
// payment page" and "payment in flight" are the same state in this flow, and
// the callback is the only reconciliation point.
func (s *PaymentService) CreatePayment(ctx context.Context, userID string, req *models.CreatePaymentRequest) (*models.CreatePaymentResponse, error) {
	if err := ValidateCreatePaymentRequest(req); err != nil {
		return nil, err
	}

	order, err := s.orders.GetByID(ctx, req.OrderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, apperrors.ErrNotFound
	}
	if order.PaymentStatus == models.PaymentStatusPaid {
		return nil, apperrors.ErrConflict
	}

	amount := req.Amount
	if amount == 0 {
		amount = order.Total
	}

	data, signature, err := s.liqpay.Checkout(order.ID, amount, req.Description)
	if err != nil {
		return nil, err
	}

	if err := s.orders.SetPaymentStatus(ctx, order.ID, models.PaymentStatusProcessing); err != nil {
		return nil, err
	}
	s.invalidate(ctx, order)

	s.logger.Info("payment intent created",
		zap.String("order_id", order.ID),
		zap.Float64("amount", amount))

	return &models.CreatePaymentResponse{Data: data, Signature: signature}, nil
}

// HandleCallback processes the provider webhook. The signature is the sole
// authenticity check; a mismatch drops the callback without touching the
// order. Verified payloads are persisted to payment_data in every case, and
// only "success" and "failure"/"error" outcomes change state. Replaying an
// identical callback re-applies the identical write.
func (s *PaymentService) HandleCallback(ctx context.Context, data, signature string) error {
	if !s.liqpay.Verify(data, signature) {
		metrics.PaymentSignatureFailures.Inc()
		return apperrors.NewValidationError("signature", "invalid callback signature")
	}

	cb, err := liqpay.DecodeCallback(data)
	if err != nil {
		return apperrors.NewValidationError("data", "malformed callback payload")
	}

	order, err := s.orders.GetByID(ctx, cb.OrderID)
	if err != nil {
		return err
	}

	metrics.PaymentCallbacks.WithLabelValues(cb.Status).Inc()

	switch cb.Status {
	case "success", "sandbox":
		order, err = s.orders.ApplyPaymentResult(ctx, order.ID,
			models.OrderStatusProcessing, models.PaymentStatusPaid, cb.Raw)
	case "failure", "error":
		order, err = s.orders.ApplyPaymentResult(ctx, order.ID,
			models.OrderStatusCancelled, models.PaymentStatusFailed, cb.Raw)
	default:
		// Intermediate outcomes (wait_accept, processing, ...) are kept
		// for audit but do not move the order.
		s.logger.Info("payment callback recorded without state change",
			zap.String("order_id", order.ID),
			zap.String("provider_status", cb.Status))
		if err := s.orders.RecordPaymentData(ctx, order.ID, cb.Raw); err != nil {
			return err
		}
		s.invalidate(ctx, order)
		return nil
	}
	if err != nil {
		return err
	}

	s.invalidate(ctx, order)

	if err := s.publisher.PublishPaymentReconciled(ctx, order, cb.Status); err != nil {
		s.logger.Warn("failed to publish payment reconciled event",
			zap.String("order_id", order.ID), zap.Error(err))
	}

	s.logger.Info("payment callback reconciled",
		zap.String("order_id", order.ID),
		zap.String("provider_status", cb.Status),
		zap.String("payment_status", string(order.PaymentStatus)))

	return nil
}

// GetPaymentStatus reads the locally reconciled state of an order, scoped to
// its owner. There is no live round-trip to the provider; the answer is only
// as fresh as the last callback.
func (s *PaymentService) GetPaymentStatus(ctx context.Context, orderID, userID string, isAdmin bool) (*models.PaymentStatusResponse, error) {
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !isAdmin && order.UserID != userID {
		return nil, apperrors.ErrNotFound
	}

	return &models.PaymentStatusResponse{
		OrderID:       order.ID,
		Status:        order.Status,
		PaymentStatus: order.PaymentStatus,
	}, nil
}

func (s *PaymentService) invalidate(ctx context.Context, order *models.Order) {
	if !s.cacheEnabled {
		return
	}
	s.cache.Delete(ctx, order.ID)
}
