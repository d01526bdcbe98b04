package models

import (
	"encoding/json"
	"time"
)

// OrderStatus tracks fulfillment progress.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "PENDING"
	OrderStatusProcessing OrderStatus = "PROCESSING"
	OrderStatusShipped    OrderStatus = "SHIPPED"
	OrderStatusDelivered  OrderStatus = "DELIVERED"
	OrderStatusCancelled  OrderStatus = "CANCELLED"
)

// PaymentStatus tracks money, independently of fulfillment.
type PaymentStatus string

const (
	PaymentStatusPending    PaymentStatus = "PENDING"
	PaymentStatusProcessing PaymentStatus = "PROCESSING"
	PaymentStatusPaid       PaymentStatus = "PAID"
	PaymentStatusFailed     PaymentStatus = "FAILED"
	PaymentStatusRefunded   PaymentStatus = "REFUNDED"
)

const (
	PaymentMethodCard   = "card"
	PaymentMethodCash   = "cash"
	PaymentMethodLiqPay = "liqpay"
)

const (
	DeliveryNovaPoshta = "nova-poshta"
	DeliveryUkrPoshta  = "ukr-poshta"
	DeliveryCourier    = "courier"
)

// Order is a persisted purchase record owned by one user.
type Order struct {
	ID             string          `json:"id"`
	OrderNumber    string          `json:"orderNumber"`
	UserID         string          `json:"userId"`
	Items          []OrderItem     `json:"items"`
	ShippingInfo   ShippingInfo    `json:"shippingInfo"`
	Total          float64         `json:"total"`
	Status         OrderStatus     `json:"status"`
	PaymentStatus  PaymentStatus   `json:"paymentStatus"`
	PaymentMethod  string          `json:"paymentMethod"`
	DeliveryMethod string          `json:"deliveryMethod"`
	PaymentData    json.RawMessage `json:"paymentData,omitempty"`
	Notes          string          `json:"notes,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

// OrderItem is one (product, size, color, quantity, price) tuple, with the
// display fields captured at checkout time.
type OrderItem struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Image     string  `json:"image,omitempty"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	Size      string  `json:"size"`
	Color     string  `json:"color"`
}

// ShippingInfo is the address/contact block submitted at checkout.
type ShippingInfo struct {
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	City       string `json:"city"`
	Address    string `json:"address"`
	PostalCode string `json:"postalCode,omitempty"`
}

// CanCancel reports whether the owner may still cancel the order.
func (o *Order) CanCancel() bool {
	return o.Status == OrderStatusPending
}

var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:    {OrderStatusProcessing, OrderStatusCancelled},
	OrderStatusProcessing: {OrderStatusShipped, OrderStatusCancelled},
	OrderStatusShipped:    {OrderStatusDelivered},
	OrderStatusDelivered:  {},
	OrderStatusCancelled:  {},
}

var paymentTransitions = map[PaymentStatus][]PaymentStatus{
	PaymentStatusPending:    {PaymentStatusProcessing, PaymentStatusFailed},
	PaymentStatusProcessing: {PaymentStatusPaid, PaymentStatusFailed},
	PaymentStatusPaid:       {PaymentStatusRefunded},
	PaymentStatusFailed:     {PaymentStatusProcessing},
	PaymentStatusRefunded:   {},
}

// ValidTransition reports whether status may move from one value to another.
// Same-state writes are allowed so replayed payment callbacks stay idempotent.
func ValidTransition(from, to OrderStatus) bool {
	if from == to {
		return true
	}
	for _, s := range orderTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// ValidPaymentTransition is the payment-status counterpart of ValidTransition.
func ValidPaymentTransition(from, to PaymentStatus) bool {
	if from == to {
		return true
	}
	for _, s := range paymentTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// ValidOrderStatus reports whether s is a known fulfillment status.
func ValidOrderStatus(s OrderStatus) bool {
	_, ok := orderTransitions[s]
	return ok
}

// ValidPaymentStatus reports whether s is a known payment status.
func ValidPaymentStatus(s PaymentStatus) bool {
	_, ok := paymentTransitions[s]
	return ok
}

// ValidPaymentMethod reports whether m is an accepted payment method.
func ValidPaymentMethod(m string) bool {
	return m == PaymentMethodCard || m == PaymentMethodCash || m == PaymentMethodLiqPay
}

// ValidDeliveryMethod reports whether m is an accepted delivery method.
func ValidDeliveryMethod(m string) bool {
	return m == DeliveryNovaPoshta || m == DeliveryUkrPoshta || m == DeliveryCourier
}

// InitialStatus returns the fulfillment status a fresh order starts in.
// Cash-on-delivery orders wait for confirmation; everything else goes
// straight to processing because the buyer is being sent to the payment page.
func InitialStatus(paymentMethod string) OrderStatus {
	if paymentMethod == PaymentMethodCash {
		return OrderStatusPending
	}
	return OrderStatusProcessing
}
