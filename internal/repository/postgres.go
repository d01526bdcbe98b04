package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/solemate-shop/solemate-api/internal/apperrors"
	"github.com/solemate-shop/solemate-api/internal/models"
)

// ErrDuplicateOrderNumber surfaces a unique-constraint hit on order_number
// so the service can regenerate and retry.
var ErrDuplicateOrderNumber = errors.New("duplicate order number")

// PostgresOrderRepository implements OrderRepository on PostgreSQL. Items and
// shipping info are stored as JSONB columns; orders are never joined against
// product rows after creation.
type PostgresOrderRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewPostgresOrderRepository creates a PostgreSQL order repository.
func NewPostgresOrderRepository(db *sql.DB, logger *zap.Logger) *PostgresOrderRepository {
	return &PostgresOrderRepository{db: db, logger: logger}
}

const orderColumns = `
	id, order_number, user_id, items, shipping_info, total,
	status, payment_status, payment_method, delivery_method,
	payment_data, notes, created_at, updated_at
`

// Create inserts a new order row.
func (r *PostgresOrderRepository) Create(ctx context.Context, order *models.Order) error {
	itemsJSON, err := json.Marshal(order.Items)
	if err != nil {
		return err
	}
	shippingJSON, err := json.Marshal(order.ShippingInfo)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO orders (
			id, order_number, user_id, items, shipping_info, total,
			status, payment_status, payment_method, delivery_method,
			notes, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err = r.db.ExecContext(ctx, query,
		order.ID,
		order.OrderNumber,
		order.UserID,
		itemsJSON,
		shippingJSON,
		order.Total,
		order.Status,
		order.PaymentStatus,
		order.PaymentMethod,
		order.DeliveryMethod,
		order.Notes,
		order.CreatedAt,
		order.UpdatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return ErrDuplicateOrderNumber
		}
		r.logger.Error("failed to create order",
			zap.String("user_id", order.UserID),
			zap.Error(err))
		return err
	}

	r.logger.Info("order created",
		zap.String("order_id", order.ID),
		zap.String("order_number", order.OrderNumber),
		zap.Float64("total", order.Total))
	return nil
}

// GetByID retrieves an order by its id.
func (r *PostgresOrderRepository) GetByID(ctx context.Context, id string) (*models.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`

	row := r.db.QueryRowContext(ctx, query, id)
	order, err := scanOrder(row)
	if err == sql.ErrNoRows {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		r.logger.Error("failed to fetch order", zap.String("order_id", id), zap.Error(err))
		return nil, err
	}
	return order, nil
}

// List retrieves a page of orders plus the unpaginated total.
func (r *PostgresOrderRepository) List(ctx context.Context, filter *models.OrderListFilter) ([]*models.Order, int, error) {
	var conds []string
	var args []interface{}

	add := func(cond string, val interface{}) {
		args = append(args, val)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if filter.UserID != "" {
		add("user_id = $%d", filter.UserID)
	}
	if filter.Status != nil {
		add("status = $%d", *filter.Status)
	}
	if filter.PaymentStatus != nil {
		add("payment_status = $%d", *filter.PaymentStatus)
	}
	if filter.From != nil {
		add("created_at >= $%d", *filter.From)
	}
	if filter.To != nil {
		add("created_at <= $%d", *filter.To)
	}

	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM orders"+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf("SELECT %s FROM orders%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d",
		orderColumns, where, len(args)+1, len(args)+2)
	args = append(args, filter.Limit, filter.Offset())

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	orders := make([]*models.Order, 0)
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, 0, err
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return orders, total, nil
}

// UpdateStatus applies a partial status update and returns the fresh row.
func (r *PostgresOrderRepository) UpdateStatus(ctx context.Context, id string, req *models.UpdateOrderStatusRequest) (*models.Order, error) {
	query := `
		UPDATE orders
		SET status = COALESCE($2, status),
		    payment_status = COALESCE($3, payment_status),
		    delivery_method = COALESCE($4, delivery_method),
		    notes = COALESCE($5, notes),
		    updated_at = $6
		WHERE id = $1
		RETURNING id
	`

	var returned string
	err := r.db.QueryRowContext(ctx, query, id,
		statusArg(req.Status), paymentStatusArg(req.PaymentStatus),
		req.DeliveryMethod, req.Notes, time.Now()).Scan(&returned)
	if err == sql.ErrNoRows {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		r.logger.Error("failed to update order status", zap.String("order_id", id), zap.Error(err))
		return nil, err
	}

	return r.GetByID(ctx, id)
}

// SetPaymentStatus writes only the payment_status column.
func (r *PostgresOrderRepository) SetPaymentStatus(ctx context.Context, id string, status models.PaymentStatus) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE orders SET payment_status = $2, updated_at = $3 WHERE id = $1`,
		id, status, time.Now())
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// ApplyPaymentResult writes both status fields and the raw provider payload
// in one statement, so a callback is a single idempotent write.
func (r *PostgresOrderRepository) ApplyPaymentResult(ctx context.Context, id string, status models.OrderStatus, paymentStatus models.PaymentStatus, paymentData json.RawMessage) (*models.Order, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE orders
		SET status = $2, payment_status = $3, payment_data = $4, updated_at = $5
		WHERE id = $1
	`, id, status, paymentStatus, []byte(paymentData), time.Now())
	if err != nil {
		r.logger.Error("failed to apply payment result", zap.String("order_id", id), zap.Error(err))
		return nil, err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return nil, apperrors.ErrNotFound
	}

	return r.GetByID(ctx, id)
}

// RecordPaymentData stores the raw callback payload without touching state,
// for outcomes the service does not act on.
func (r *PostgresOrderRepository) RecordPaymentData(ctx context.Context, id string, paymentData json.RawMessage) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE orders SET payment_data = $2, updated_at = $3 WHERE id = $1`,
		id, []byte(paymentData), time.Now())
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanOrder(row rowScanner) (*models.Order, error) {
	var order models.Order
	var itemsJSON, shippingJSON []byte
	var paymentData []byte
	var notes sql.NullString

	err := row.Scan(
		&order.ID,
		&order.OrderNumber,
		&order.UserID,
		&itemsJSON,
		&shippingJSON,
		&order.Total,
		&order.Status,
		&order.PaymentStatus,
		&order.PaymentMethod,
		&order.DeliveryMethod,
		&paymentData,
		&notes,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(itemsJSON, &order.Items); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(shippingJSON, &order.ShippingInfo); err != nil {
		return nil, err
	}
	if len(paymentData) > 0 {
		order.PaymentData = json.RawMessage(paymentData)
	}
	if notes.Valid {
		order.Notes = notes.String
	}

	return &order, nil
}

func statusArg(s *models.OrderStatus) interface{} {
	if s == nil {
		return nil
	}
	return string(*s)
}

func paymentStatusArg(s *models.PaymentStatus) interface{} {
	if s == nil {
		return nil
	}
	return string(*s)
}
