package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/solemate-shop/solemate-api/internal/apperrors"
	"github.com/solemate-shop/solemate-api/internal/models"
)

// PostgresProductRepository implements ProductRepository on PostgreSQL.
type PostgresProductRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

func NewPostgresProductRepository(db *sql.DB, logger *zap.Logger) *PostgresProductRepository {
	return &PostgresProductRepository{db: db, logger: logger}
}

const productColumns = `
	id, name, slug, price, description, category, brand,
	sizes, colors, images, stock, in_stock, material, features,
	rating, review_count, created_at, updated_at
`

func (r *PostgresProductRepository) List(ctx context.Context, filter *models.ProductListFilter) ([]*models.Product, int, error) {
	var conds []string
	var args []interface{}

	if filter.Category != "" {
		args = append(args, filter.Category)
		conds = append(conds, fmt.Sprintf("category = $%d", len(args)))
	}
	if filter.Brand != "" {
		args = append(args, filter.Brand)
		conds = append(conds, fmt.Sprintf("brand = $%d", len(args)))
	}

	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM products"+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf("SELECT %s FROM products%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d",
		productColumns, where, len(args)+1, len(args)+2)
	args = append(args, filter.Limit, filter.Offset())

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	products := make([]*models.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, 0, err
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return products, total, nil
}

func (r *PostgresProductRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	p, err := scanProduct(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		r.logger.Error("failed to fetch product", zap.String("product_id", id), zap.Error(err))
		return nil, err
	}
	return p, nil
}

func scanProduct(row rowScanner) (*models.Product, error) {
	var p models.Product
	var sizesJSON, colorsJSON, imagesJSON, featuresJSON []byte
	var material sql.NullString

	err := row.Scan(
		&p.ID, &p.Name, &p.Slug, &p.Price, &p.Description, &p.Category, &p.Brand,
		&sizesJSON, &colorsJSON, &imagesJSON, &p.Stock, &p.InStock, &material, &featuresJSON,
		&p.Rating, &p.ReviewCount, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(sizesJSON, &p.Sizes); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(colorsJSON, &p.Colors); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(imagesJSON, &p.Images); err != nil {
		return nil, err
	}
	if len(featuresJSON) > 0 {
		if err := json.Unmarshal(featuresJSON, &p.Features); err != nil {
			return nil, err
		}
	}
	if material.Valid {
		p.Material = material.String
	}

	return &p, nil
}
