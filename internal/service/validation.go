package service

import (
	"strings"

	"github.com/solemate-shop/solemate-api/internal/apperrors"
	"github.com/solemate-shop/solemate-api/internal/models"
)

// ValidateCreateOrderRequest rejects a checkout submission before anything
// is persisted.
func ValidateCreateOrderRequest(req *models.CreateOrderRequest) error {
	if len(req.Items) == 0 {
		return apperrors.NewValidationError("items", "at least one item is required")
	}

	for _, item := range req.Items {
		if item.ProductID == "" {
			return apperrors.NewValidationError("items", "product ID is required for every item")
		}
		if item.Quantity <= 0 {
			return apperrors.NewValidationError("items", "quantity must be positive")
		}
		if item.Price < 0 {
			return apperrors.NewValidationError("items", "price cannot be negative")
		}
	}

	if err := validateShippingInfo(&req.ShippingAddress); err != nil {
		return err
	}

	if req.Total <= 0 {
		return apperrors.NewValidationError("total", "total is required")
	}

	if !models.ValidPaymentMethod(req.PaymentMethod) {
		return apperrors.NewValidationError("paymentMethod", "invalid payment method")
	}
	if !models.ValidDeliveryMethod(req.DeliveryMethod) {
		return apperrors.NewValidationError("deliveryMethod", "invalid delivery method")
	}

	return nil
}

func validateShippingInfo(s *models.ShippingInfo) error {
	required := []struct {
		field, value string
	}{
		{"shippingAddress.firstName", s.FirstName},
		{"shippingAddress.lastName", s.LastName},
		{"shippingAddress.email", s.Email},
		{"shippingAddress.phone", s.Phone},
		{"shippingAddress.city", s.City},
		{"shippingAddress.address", s.Address},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return apperrors.NewValidationError(r.field, "field is required")
		}
	}
	return nil
}

// ValidateUpdateOrderStatusRequest rejects empty or unknown-value updates.
func ValidateUpdateOrderStatusRequest(req *models.UpdateOrderStatusRequest) error {
	if req.Empty() {
		return apperrors.NewValidationError("body", "at least one field must be provided")
	}
	if req.Status != nil && !models.ValidOrderStatus(*req.Status) {
		return apperrors.NewValidationError("status", "invalid order status")
	}
	if req.PaymentStatus != nil && !models.ValidPaymentStatus(*req.PaymentStatus) {
		return apperrors.NewValidationError("paymentStatus", "invalid payment status")
	}
	if req.DeliveryMethod != nil && !models.ValidDeliveryMethod(*req.DeliveryMethod) {
		return apperrors.NewValidationError("deliveryMethod", "invalid delivery method")
	}
	return nil
}

// ValidateRegisterRequest checks an account registration.
func ValidateRegisterRequest(req *models.RegisterRequest) error {
	if !strings.Contains(req.Email, "@") {
		return apperrors.NewValidationError("email", "valid email is required")
	}
	if strings.TrimSpace(req.Name) == "" {
		return apperrors.NewValidationError("name", "name is required")
	}
	if len(req.Password) < 6 {
		return apperrors.NewValidationError("password", "password must be at least 6 characters")
	}
	return nil
}

// ValidateAddCartItemRequest checks a cart line addition.
func ValidateAddCartItemRequest(req *models.AddCartItemRequest) error {
	if req.ProductID == "" {
		return apperrors.NewValidationError("productId", "product ID is required")
	}
	if req.Size == "" {
		return apperrors.NewValidationError("size", "size is required")
	}
	if req.Color == "" {
		return apperrors.NewValidationError("color", "color is required")
	}
	return nil
}

// ValidateCreatePaymentRequest checks a hosted-checkout payload request.
func ValidateCreatePaymentRequest(req *models.CreatePaymentRequest) error {
	if req.OrderID == "" {
		return apperrors.NewValidationError("orderId", "order ID is required")
	}
	if req.Amount < 0 {
		return apperrors.NewValidationError("amount", "amount cannot be negative")
	}
	return nil
}
