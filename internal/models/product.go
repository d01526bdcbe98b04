package models

import "time"

// ProductSize is one size option with its own stock counter.
type ProductSize struct {
	Size  string `json:"size"`
	Stock int    `json:"stock"`
}

// Product is a catalog entry. Sizes, colors, images and features are stored
// as JSON columns; the catalog is read-heavy and never joined against.
type Product struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Slug        string        `json:"slug"`
	Price       float64       `json:"price"`
	Description string        `json:"description"`
	Category    string        `json:"category"`
	Brand       string        `json:"brand"`
	Sizes       []ProductSize `json:"sizes"`
	Colors      []string      `json:"colors"`
	Images      []string      `json:"images"`
	Stock       int           `json:"stock"`
	InStock     bool          `json:"inStock"`
	Material    string        `json:"material,omitempty"`
	Features    []string      `json:"features,omitempty"`
	Rating      float64       `json:"rating"`
	ReviewCount int           `json:"reviewCount"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

// ProductListFilter selects a catalog page.
type ProductListFilter struct {
	Category string
	Brand    string
	Page     int
	Limit    int
}

// Normalize clamps pagination the same way order listings do.
func (f *ProductListFilter) Normalize() {
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
func (f *ProductListFilter) Offset() int {
	return (f.Page - 1) * f.Limit
}
