package models

import "time"

// CreateOrderRequest is the checkout submission. The total is computed
// client-side and trusted as submitted; see the payment callback for the
// only server-side reconciliation point.
type CreateOrderRequest struct {
	Items           []OrderItem  `json:"items"`
	ShippingAddress ShippingInfo `json:"shippingAddress"`
	DeliveryMethod  string       `json:"deliveryMethod"`
	PaymentMethod   string       `json:"paymentMethod"`
	Total           float64      `json:"total"`
	Notes           string       `json:"notes"`
}

// UpdateOrderStatusRequest is a partial update; at least one field must be
// set or the request is rejected.
type UpdateOrderStatusRequest struct {
	Status         *OrderStatus   `json:"status,omitempty"`
	PaymentStatus  *PaymentStatus `json:"paymentStatus,omitempty"`
	DeliveryMethod *string        `json:"deliveryMethod,omitempty"`
	Notes          *string        `json:"notes,omitempty"`
}

// Empty reports whether the update carries no fields at all.
func (r *UpdateOrderStatusRequest) Empty() bool {
	return r.Status == nil && r.PaymentStatus == nil && r.DeliveryMethod == nil && r.Notes == nil
}

// OrderListFilter selects a page of orders. UserID empty means all users
// (admin listing).
type OrderListFilter struct {
	UserID        string
	Status        *OrderStatus
	PaymentStatus *PaymentStatus
	From          *time.Time
	To            *time.Time
	Page          int
	Limit         int
}

// Normalize clamps pagination to [1,100] and fills defaults.
func (f *OrderListFilter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = 20
	}
	if f.Limit > 100 {
		f.Limit = 100
	}
}

// Offset converts page/limit into a row offset.
func (f *OrderListFilter) Offset() int {
	return (f.Page - 1) * f.Limit
}

// Pagination is the list-response metadata block.
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// NewPagination derives the metadata for a completed page query.
func NewPagination(page, limit, total int) Pagination {
	pages := total / limit
	if total%limit != 0 {
		pages++
	}
	return Pagination{Page: page, Limit: limit, Total: total, TotalPages: pages}
}

// CreatePaymentRequest asks for a signed hosted-checkout payload.
type CreatePaymentRequest struct {
	OrderID     string  `json:"orderId"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
}

// CreatePaymentResponse carries the payload the client posts to the
// provider's hosted page, unmodified.
type CreatePaymentResponse struct {
	Data      string `json:"data"`
	Signature string `json:"signature"`
}

// PaymentStatusResponse is the locally reconciled payment state of an order,
// only as fresh as the last provider callback.
type PaymentStatusResponse struct {
	OrderID       string        `json:"orderId"`
	Status        OrderStatus   `json:"status"`
	PaymentStatus PaymentStatus `json:"paymentStatus"`
}
