package service

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/solemate-shop/solemate-api/internal/apperrors"
	"github.com/solemate-shop/solemate-api/internal/models"
	"github.com/solemate-shop/solemate-api/internal/repository"
)

type fakeOrderRepo struct {
	mu           sync.Mutex
	orders       map[string]models.Order
	createCalls  int
	dupRemaining int
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: map[string]models.Order{}}
}

func (r *fakeOrderRepo) Create(_ context.Context, order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.createCalls++
	if r.dupRemaining > 0 {
		r.dupRemaining--
		return repository.ErrDuplicateOrderNumber
	}
	r.orders[order.ID] = *order
	return nil
}

func (r *fakeOrderRepo) GetByID(_ context.Context, id string) (*models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	order, ok := r.orders[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	copied := order
	return &copied, nil
}

func (r *fakeOrderRepo) List(_ context.Context, filter *models.OrderListFilter) ([]*models.Order, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []*models.Order
	for id := range r.orders {
		order := r.orders[id]
		if filter.UserID != "" && order.UserID != filter.UserID {
			continue
		}
		if filter.Status != nil && order.Status != *filter.Status {
			continue
		}
		copied := order
		matched = append(matched, &copied)
	}
	total := len(matched)

	offset := filter.Offset()
	if offset > len(matched) {
		offset = len(matched)
	}
	matched = matched[offset:]
	if len(matched) > filter.Limit {
		matched = matched[:filter.Limit]
	}
	return matched, total, nil
}

func (r *fakeOrderRepo) UpdateStatus(_ context.Context, id string, req *models.UpdateOrderStatusRequest) (*models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	order, ok := r.orders[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	if req.Status != nil {
		order.Status = *req.Status
	}
	if req.PaymentStatus != nil {
		order.PaymentStatus = *req.PaymentStatus
	}
	if req.DeliveryMethod != nil {
		order.DeliveryMethod = *req.DeliveryMethod
	}
	if req.Notes != nil {
		order.Notes = *req.Notes
	}
	r.orders[id] = order
	copied := order
	return &copied, nil
}

func (r *fakeOrderRepo) SetPaymentStatus(_ context.Context, id string, status models.PaymentStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	order, ok := r.orders[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	order.PaymentStatus = status
	r.orders[id] = order
	return nil
}

func (r *fakeOrderRepo) ApplyPaymentResult(_ context.Context, id string, status models.OrderStatus, paymentStatus models.PaymentStatus, paymentData json.RawMessage) (*models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	order, ok := r.orders[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	order.Status = status
	order.PaymentStatus = paymentStatus
	order.PaymentData = paymentData
	r.orders[id] = order
	copied := order
	return &copied, nil
}

func (r *fakeOrderRepo) RecordPaymentData(_ context.Context, id string, paymentData json.RawMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	order, ok := r.orders[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	order.PaymentData = paymentData
	r.orders[id] = order
	return nil
}

func (r *fakeOrderRepo) stored(id string) models.Order {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.orders[id]
}

type fakeCartRepo struct {
	mu         sync.Mutex
	items      map[string][]models.CartItem
	clearCalls []string
}

func newFakeCartRepo() *fakeCartRepo {
	return &fakeCartRepo{items: map[string][]models.CartItem{}}
}

func (r *fakeCartRepo) GetByUser(_ context.Context, userID string) ([]models.CartItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.CartItem(nil), r.items[userID]...), nil
}

func (r *fakeCartRepo) Upsert(_ context.Context, item *models.CartItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	lines := r.items[item.UserID]
	for i, line := range lines {
		if line.ProductID == item.ProductID && line.Size == item.Size && line.Color == item.Color {
			lines[i].Quantity += item.Quantity
			return nil
		}
	}
	r.items[item.UserID] = append(lines, *item)
	return nil
}

func (r *fakeCartRepo) UpdateQuantity(_ context.Context, userID, productID, size, color string, quantity int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, line := range r.items[userID] {
		if line.ProductID == productID && line.Size == size && line.Color == color {
			r.items[userID][i].Quantity = quantity
			return nil
		}
	}
	return apperrors.ErrNotFound
}

func (r *fakeCartRepo) Remove(_ context.Context, userID, productID, size, color string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	lines := r.items[userID]
	for i, line := range lines {
		if line.ProductID == productID && line.Size == size && line.Color == color {
			r.items[userID] = append(lines[:i], lines[i+1:]...)
			return nil
		}
	}
	return apperrors.ErrNotFound
}

func (r *fakeCartRepo) Clear(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clearCalls = append(r.clearCalls, userID)
	delete(r.items, userID)
	return nil
}

type fakeCartCache struct {
	mu    sync.Mutex
	carts map[string]*models.CartResponse
}

func newFakeCartCache() *fakeCartCache {
	return &fakeCartCache{carts: map[string]*models.CartResponse{}}
}

func (c *fakeCartCache) Get(_ context.Context, userID string) (*models.CartResponse, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.carts[userID], nil
}

func (c *fakeCartCache) Set(_ context.Context, userID string, cart *models.CartResponse) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.carts[userID] = cart
	return nil
}

func (c *fakeCartCache) Invalidate(_ context.Context, userID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.carts, userID)
	return nil
}

type fakeProductRepo struct {
	products map[string]*models.Product
}

func (r *fakeProductRepo) List(_ context.Context, _ *models.ProductListFilter) ([]*models.Product, int, error) {
	var out []*models.Product
	for _, p := range r.products {
		out = append(out, p)
	}
	return out, len(out), nil
}

func (r *fakeProductRepo) GetByID(_ context.Context, id string) (*models.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return p, nil
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*models.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return repository.ErrDuplicateEmail
		}
	}
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return u, nil
}
