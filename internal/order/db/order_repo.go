package db

import (
	"context"
	"errors"
	"fmt"

	"justfood/internal/order"
	"justfood/pkg/logger"
	"justfood/pkg/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type OrderRepo struct {
	pool  *pgxpool.Pool
	mylog *logger.Logger
}

// querier is satisfied by both the pool and a transaction, so snapshots can
// be assembled inside the transaction that produced them.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func NewOrderRepo(pool *pgxpool.Pool, mylog *logger.Logger) *OrderRepo {
	return &OrderRepo{
		pool:  pool,
		mylog: mylog,
	}
}

// CreateOrder inserts the address, the order row, its items and the initial
// PENDING status-log entry in one transaction. Either everything lands or
// nothing does.
func (r *OrderRepo) CreateOrder(ctx context.Context, params order.CreateOrderParams) (*models.Order, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var addressID int64
	err = tx.QueryRow(ctx, `
		INSERT INTO addresses (user_id, label, line1, line2, city, state, pincode, phone)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`,
		params.UserID,
		orDefault(params.Address.Label, "Home"),
		params.Address.Line1,
		params.Address.Line2,
		params.Address.City,
		params.Address.State,
		params.Address.Pincode,
		params.Address.Phone,
	).Scan(&addressID)
	if err != nil {
		return nil, fmt.Errorf("failed to insert address: %w", err)
	}

	var orderID int64
	err = tx.QueryRow(ctx, `
		INSERT INTO orders (
			order_number,
			user_id,
			guest_name,
			guest_phone,
			address_id,
			total_amount,
			payment_method,
			payment_status,
			status
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`,
		params.OrderNumber,
		params.UserID,
		params.GuestName,
		params.GuestPhone,
		addressID,
		params.TotalAmount,
		params.PaymentMethod,
		models.PaymentPending,
		order.StatusPending.String(),
	).Scan(&orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to insert order: %w", err)
	}

	for _, item := range params.Items {
		_, err = tx.Exec(ctx, `
			INSERT INTO order_items (order_id, sku, title, qty, unit_price, total_price)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, orderID, item.SKU, item.Title, item.Quantity, item.UnitPrice, item.TotalPrice)
		if err != nil {
			return nil, fmt.Errorf("failed to insert item: %w", err)
		}
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO order_status_log (order_id, status, note)
		VALUES ($1, $2, $3)
	`, orderID, order.StatusPending.String(), "Order placed")
	if err != nil {
		return nil, fmt.Errorf("failed to insert order status log: %w", err)
	}

	snapshot, err := r.getByNumber(ctx, tx, params.OrderNumber)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return snapshot, nil
}

// Transition locks the order row, re-reads the current status under the
// lock and only then applies the change, so two concurrent requests cannot
// both pass the legality check against the same stale state. The status
// update and the log append commit together or not at all.
func (r *OrderRepo) Transition(ctx context.Context, orderNumber string, target order.Status, note string) (*models.Order, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var orderID int64
	var currentStr string
	err = tx.QueryRow(ctx, `
		SELECT id, status FROM orders WHERE order_number = $1 FOR UPDATE
	`, orderNumber).Scan(&orderID, &currentStr)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, order.ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to read order: %w", err)
	}

	current := order.Status(currentStr)
	if !current.CanTransitionTo(target) {
		return nil, &order.InvalidTransitionError{From: current, To: target}
	}

	_, err = tx.Exec(ctx, `
		UPDATE orders SET status = $1, updated_at = NOW() WHERE id = $2
	`, target.String(), orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to update status: %w", err)
	}

	var noteArg *string
	if note != "" {
		noteArg = &note
	}
	_, err = tx.Exec(ctx, `
		INSERT INTO order_status_log (order_id, status, note)
		VALUES ($1, $2, $3)
	`, orderID, target.String(), noteArg)
	if err != nil {
		return nil, fmt.Errorf("failed to insert order status log: %w", err)
	}

	// Snapshot inside the transaction: the returned order must reflect this
	// transition, not whatever a later one may have written by the time we read.
	snapshot, err := r.getByNumber(ctx, tx, orderNumber)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return snapshot, nil
}

func (r *OrderRepo) GetByNumber(ctx context.Context, orderNumber string) (*models.Order, error) {
	return r.getByNumber(ctx, r.pool, orderNumber)
}

func (r *OrderRepo) getByNumber(ctx context.Context, q querier, orderNumber string) (*models.Order, error) {
	var o models.Order
	var addr models.Address
	err := q.QueryRow(ctx, `
		SELECT o.id, o.order_number, o.user_id, o.guest_name, o.guest_phone,
		       o.address_id, o.total_amount, o.payment_method, o.payment_status,
		       o.razorpay_order_id, o.razorpay_payment_id, o.status,
		       o.created_at, o.updated_at,
		       a.id, a.user_id, a.label, a.line1, a.line2, a.city, a.state, a.pincode, a.phone, a.created_at
		FROM orders o
		JOIN addresses a ON a.id = o.address_id
		WHERE o.order_number = $1
	`, orderNumber).Scan(
		&o.ID, &o.OrderNumber, &o.UserID, &o.GuestName, &o.GuestPhone,
		&o.AddressID, &o.TotalAmount, &o.PaymentMethod, &o.PaymentStatus,
		&o.RazorpayOrderID, &o.RazorpayPaymentID, &o.Status,
		&o.CreatedAt, &o.UpdatedAt,
		&addr.ID, &addr.UserID, &addr.Label, &addr.Line1, &addr.Line2,
		&addr.City, &addr.State, &addr.Pincode, &addr.Phone, &addr.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, order.ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to read order: %w", err)
	}
	o.Address = &addr

	items, err := r.itemsForOrder(ctx, q, o.ID)
	if err != nil {
		return nil, err
	}
	o.Items = items

	logs, err := r.statusHistory(ctx, q, o.ID)
	if err != nil {
		return nil, err
	}
	o.StatusLogs = logs

	return &o, nil
}

func (r *OrderRepo) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]models.Order, int, error) {
	return r.list(ctx, `WHERE user_id = $1`, []any{userID}, limit, offset)
}

func (r *OrderRepo) List(ctx context.Context, status string, limit, offset int) ([]models.Order, int, error) {
	if status == "" {
		return r.list(ctx, ``, nil, limit, offset)
	}
	return r.list(ctx, `WHERE status = $1`, []any{status}, limit, offset)
}

func (r *OrderRepo) AttachGatewayOrder(ctx context.Context, orderNumber, gatewayOrderID string) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE orders SET razorpay_order_id = $1, updated_at = NOW()
		WHERE order_number = $2
	`, gatewayOrderID, orderNumber)
	if err != nil {
		return fmt.Errorf("failed to attach gateway order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return order.ErrOrderNotFound
	}
	return nil
}

func (r *OrderRepo) MarkPaid(ctx context.Context, orderNumber, paymentID string) (*models.Order, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `
		UPDATE orders
		SET payment_status = $1, razorpay_payment_id = $2, updated_at = NOW()
		WHERE order_number = $3
	`, models.PaymentPaid, paymentID, orderNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to mark order paid: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, order.ErrOrderNotFound
	}

	snapshot, err := r.getByNumber(ctx, tx, orderNumber)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return snapshot, nil
}

// Dashboard aggregates the staff overview: order counters, today's revenue
// excluding cancellations, and the five most-ordered items.
func (r *OrderRepo) Dashboard(ctx context.Context) (*models.DashboardStats, error) {
	var stats models.DashboardStats
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE status = $1),
		       COUNT(*) FILTER (WHERE created_at::date = CURRENT_DATE),
		       COALESCE(SUM(total_amount) FILTER (
		           WHERE created_at::date = CURRENT_DATE AND status <> $2), 0)
		FROM orders
	`, order.StatusPending.String(), order.StatusCancelled.String()).Scan(
		&stats.TotalOrders, &stats.PendingOrders, &stats.TodayOrders, &stats.TodayRevenue,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to read dashboard counters: %w", err)
	}

	rows, err := r.pool.Query(ctx, `
		SELECT i.title, SUM(i.qty)::int
		FROM order_items i
		JOIN orders o ON o.id = i.order_id
		WHERE o.status <> $1
		GROUP BY i.title
		ORDER BY SUM(i.qty) DESC, i.title ASC
		LIMIT 5
	`, order.StatusCancelled.String())
	if err != nil {
		return nil, fmt.Errorf("failed to read popular items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item models.PopularItem
		if err := rows.Scan(&item.Title, &item.Quantity); err != nil {
			return nil, err
		}
		stats.PopularItems = append(stats.PopularItems, item)
	}
	return &stats, rows.Err()
}

func (r *OrderRepo) list(ctx context.Context, where string, args []any, limit, offset int) ([]models.Order, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM orders `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT id, order_number, user_id, guest_name, guest_phone, address_id,
		       total_amount, payment_method, payment_status,
		       razorpay_order_id, razorpay_payment_id, status, created_at, updated_at
		FROM orders %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, where, len(args)+1, len(args)+2)

	rows, err := r.pool.Query(ctx, query, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	var orders []models.Order
	for rows.Next() {
		var o models.Order
		err := rows.Scan(
			&o.ID, &o.OrderNumber, &o.UserID, &o.GuestName, &o.GuestPhone, &o.AddressID,
			&o.TotalAmount, &o.PaymentMethod, &o.PaymentStatus,
			&o.RazorpayOrderID, &o.RazorpayPaymentID, &o.Status, &o.CreatedAt, &o.UpdatedAt,
		)
		if err != nil {
			return nil, 0, err
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return orders, total, nil
}

func (r *OrderRepo) itemsForOrder(ctx context.Context, q querier, orderID int64) ([]models.OrderItem, error) {
	rows, err := q.Query(ctx, `
		SELECT id, order_id, sku, title, qty, unit_price, total_price, created_at
		FROM order_items
		WHERE order_id = $1
		ORDER BY id ASC
	`, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to read order items: %w", err)
	}
	defer rows.Close()

	var items []models.OrderItem
	for rows.Next() {
		var item models.OrderItem
		err := rows.Scan(&item.ID, &item.OrderID, &item.SKU, &item.Title,
			&item.Quantity, &item.UnitPrice, &item.TotalPrice, &item.CreatedAt)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *OrderRepo) statusHistory(ctx context.Context, q querier, orderID int64) ([]models.StatusLog, error) {
	rows, err := q.Query(ctx, `
		SELECT id, order_id, status, note, created_at
		FROM order_status_log
		WHERE order_id = $1
		ORDER BY created_at ASC, id ASC
	`, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to read status history: %w", err)
	}
	defer rows.Close()

	var logs []models.StatusLog
	for rows.Next() {
		var entry models.StatusLog
		err := rows.Scan(&entry.ID, &entry.OrderID, &entry.Status, &entry.Note, &entry.CreatedAt)
		if err != nil {
			return nil, err
		}
		logs = append(logs, entry)
	}
	return logs, rows.Err()
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
