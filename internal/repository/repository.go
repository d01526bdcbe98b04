package repository

import (
	"context"
	"encoding/json"

	"github.com/solemate-shop/solemate-api/internal/models"
)

// OrderRepository owns the orders table.
type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	GetByID(ctx context.Context, id string) (*models.Order, error)
	List(ctx context.Context, filter *models.OrderListFilter) ([]*models.Order, int, error)
	UpdateStatus(ctx context.Context, id string, req *models.UpdateOrderStatusRequest) (*models.Order, error)
	SetPaymentStatus(ctx context.Context, id string, status models.PaymentStatus) error
	ApplyPaymentResult(ctx context.Context, id string, status models.OrderStatus, paymentStatus models.PaymentStatus, paymentData json.RawMessage) (*models.Order, error)
	RecordPaymentData(ctx context.Context, id string, paymentData json.RawMessage) error
}

// UserRepository owns the users table.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
}

// ProductRepository reads the catalog.
type ProductRepository interface {
	List(ctx context.Context, filter *models.ProductListFilter) ([]*models.Product, int, error)
	GetByID(ctx context.Context, id string) (*models.Product, error)
}

// CartRepository owns the per-user persisted cart lines.
type CartRepository interface {
	GetByUser(ctx context.Context, userID string) ([]models.CartItem, error)
	Upsert(ctx context.Context, item *models.CartItem) error
	UpdateQuantity(ctx context.Context, userID, productID, size, color string, quantity int) error
	Remove(ctx context.Context, userID, productID, size, color string) error
	Clear(ctx context.Context, userID string) error
}

// CartCache holds the assembled per-user cart snapshot.
type CartCache interface {
	Get(ctx context.Context, userID string) (*models.CartResponse, error)
	Set(ctx context.Context, userID string, cart *models.CartResponse) error
	Invalidate(ctx context.Context, userID string) error
}

// OrderCache is the cache-aside layer in front of OrderRepository reads.
type OrderCache interface {
	Get(ctx context.Context, id string) (*models.Order, error)
	Set(ctx context.Context, order *models.Order) error
	Delete(ctx context.Context, id string) error
}
