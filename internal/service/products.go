package service

import (
	"context"

	"github.com/solemate-shop/solemate-api/internal/models"
	"github.com/solemate-shop/solemate-api/internal/repository"
)

// ProductService is the read-only catalog facade.
type ProductService struct {
	products repository.ProductRepository
}

// NewProductService wires the product service.
func NewProductService(products repository.ProductRepository) *ProductService {
	return &ProductService{products: products}
}

// ListProducts returns a filtered catalog page plus pagination metadata.
func (s *ProductService) ListProducts(ctx context.Context, filter *models.ProductListFilter) ([]*models.Product, models.Pagination, error) {
	filter.Normalize()

	products, total, err := s.products.List(ctx, filter)
	if err != nil {
		return nil, models.Pagination{}, err
	}

	return products, models.NewPagination(filter.Page, filter.Limit, total), nil
}

// GetProduct fetches one product by id.
func (s *ProductService) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	return s.products.GetByID(ctx, id)
}
