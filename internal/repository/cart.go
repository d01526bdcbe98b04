package repository

import (
	"context"
	"database/sql"
	"time"

	"go.uber.org/zap"

	"github.com/solemate-shop/solemate-api/internal/apperrors"
	"github.com/solemate-shop/solemate-api/internal/models"
)

// PostgresCartRepository implements CartRepository on PostgreSQL. One row per
// (user, product, size, color); the unique constraint makes Upsert a merge.
type PostgresCartRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

func NewPostgresCartRepository(db *sql.DB, logger *zap.Logger) *PostgresCartRepository {
	return &PostgresCartRepository{db: db, logger: logger}
}

func (r *PostgresCartRepository) GetByUser(ctx context.Context, userID string) ([]models.CartItem, error) {
	query := `
		SELECT ci.id, ci.user_id, ci.product_id, ci.size, ci.color, ci.quantity,
		       p.price, p.name, COALESCE(p.images->>0, ''),
		       ci.created_at, ci.updated_at
		FROM cart_items ci
		JOIN products p ON p.id = ci.product_id
		WHERE ci.user_id = $1
		ORDER BY ci.created_at
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]models.CartItem, 0)
	for rows.Next() {
		var it models.CartItem
		if err := rows.Scan(&it.ID, &it.UserID, &it.ProductID, &it.Size, &it.Color,
			&it.Quantity, &it.Price, &it.Name, &it.Image,
			&it.CreatedAt, &it.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// Upsert inserts a line or increments the quantity of an existing one.
func (r *PostgresCartRepository) Upsert(ctx context.Context, item *models.CartItem) error {
	query := `
		INSERT INTO cart_items (id, user_id, product_id, size, color, quantity, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
		ON CONFLICT (user_id, product_id, size, color)
		DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity, updated_at = EXCLUDED.updated_at
	`
	_, err := r.db.ExecContext(ctx, query,
		item.ID, item.UserID, item.ProductID, item.Size, item.Color,
		item.Quantity, time.Now())
	if err != nil {
		r.logger.Error("failed to upsert cart item",
			zap.String("user_id", item.UserID),
			zap.String("product_id", item.ProductID),
			zap.Error(err))
	}
	return err
}

func (r *PostgresCartRepository) UpdateQuantity(ctx context.Context, userID, productID, size, color string, quantity int) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE cart_items SET quantity = $5, updated_at = $6
		WHERE user_id = $1 AND product_id = $2 AND size = $3 AND color = $4
	`, userID, productID, size, color, quantity, time.Now())
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PostgresCartRepository) Remove(ctx context.Context, userID, productID, size, color string) error {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM cart_items
		WHERE user_id = $1 AND product_id = $2 AND size = $3 AND color = $4
	`, userID, productID, size, color)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PostgresCartRepository) Clear(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM cart_items WHERE user_id = $1`, userID)
	return err
}
