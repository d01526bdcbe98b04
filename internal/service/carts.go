package service

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/solemate-shop/solemate-api/internal/cart"
	"github.com/solemate-shop/solemate-api/internal/models"
	"github.com/solemate-shop/solemate-api/internal/repository"
)

// CartService owns the server-side cart. Reads go through a cache with
// singleflight so concurrent misses for the same user collapse into one
// database query; every mutation invalidates.
type CartService struct {
	repo     repository.CartRepository
	cache    repository.CartCache
	products repository.ProductRepository
	sfg      singleflight.Group
	logger   *zap.Logger
}

// NewCartService wires the cart service.
func NewCartService(repo repository.CartRepository, cache repository.CartCache, products repository.ProductRepository, logger *zap.Logger) *CartService {
	return &CartService{repo: repo, cache: cache, products: products, logger: logger}
}

// GetCart assembles the user's cart with derived totals.
func (s *CartService) GetCart(ctx context.Context, userID string) (*models.CartResponse, error) {
	v, err, _ := s.sfg.Do(userID, func() (interface{}, error) {
		if cached, err := s.cache.Get(ctx, userID); err == nil && cached != nil {
			return cached, nil
		}

		items, err := s.repo.GetByUser(ctx, userID)
		if err != nil {
			return nil, err
		}
		resp := buildCartResponse(items)

		if err := s.cache.Set(ctx, userID, resp); err != nil {
			s.logger.Warn("failed to cache cart", zap.String("user_id", userID), zap.Error(err))
		}

		return resp, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*models.CartResponse), nil
}

// AddItem merges a line into the user's cart; the product must exist.
func (s *CartService) AddItem(ctx context.Context, userID string, req *models.AddCartItemRequest) (*models.CartResponse, error) {
	if err := ValidateAddCartItemRequest(req); err != nil {
		return nil, err
	}

	if _, err := s.products.GetByID(ctx, req.ProductID); err != nil {
		return nil, err
	}

	qty := req.Quantity
	if qty < 1 {
		qty = 1
	}

	item := &models.CartItem{
		ID:        uuid.NewString(),
		UserID:    userID,
		ProductID: req.ProductID,
		Size:      req.Size,
		Color:     req.Color,
		Quantity:  qty,
	}
	if err := s.repo.Upsert(ctx, item); err != nil {
		return nil, err
	}

	return s.refresh(ctx, userID)
}

// UpdateItem replaces a line's quantity; below 1 removes the line.
func (s *CartService) UpdateItem(ctx context.Context, userID string, req *models.UpdateCartItemRequest) (*models.CartResponse, error) {
	var err error
	if req.Quantity < 1 {
		err = s.repo.Remove(ctx, userID, req.ProductID, req.Size, req.Color)
	} else {
		err = s.repo.UpdateQuantity(ctx, userID, req.ProductID, req.Size, req.Color, req.Quantity)
	}
	if err != nil {
		return nil, err
	}

	return s.refresh(ctx, userID)
}

// RemoveItem deletes one line.
func (s *CartService) RemoveItem(ctx context.Context, userID string, req *models.RemoveCartItemRequest) (*models.CartResponse, error) {
	if err := s.repo.Remove(ctx, userID, req.ProductID, req.Size, req.Color); err != nil {
		return nil, err
	}
	return s.refresh(ctx, userID)
}

// Clear empties the user's cart.
func (s *CartService) Clear(ctx context.Context, userID string) error {
	if err := s.repo.Clear(ctx, userID); err != nil {
		return err
	}
	s.cache.Invalidate(ctx, userID)
	return nil
}

func (s *CartService) refresh(ctx context.Context, userID string) (*models.CartResponse, error) {
	s.cache.Invalidate(ctx, userID)

	items, err := s.repo.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return buildCartResponse(items), nil
}

// buildCartResponse derives total and item count through the cart reducer,
// the single computation path for both (never stored, never incremented).
func buildCartResponse(items []models.CartItem) *models.CartResponse {
	var c cart.Cart
	for _, it := range items {
		c.Add(cart.Line{
			ProductID: it.ProductID,
			Name:      it.Name,
			Price:     it.Price,
			Size:      it.Size,
			Color:     it.Color,
		}, it.Quantity)
	}

	return &models.CartResponse{
		Items:     items,
		Total:     c.Total(),
		ItemCount: c.ItemCount(),
	}
}
