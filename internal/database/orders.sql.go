package database

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const orderColumns = `id, customer_id, table_id, waiter_id, status, order_type, total_amount, discount_percent, payment_type, transaction_id, proof_image, is_deleted, created_at, updated_at`

func scanOrder(row rowScanner) (Order, error) {
	var i Order
	err := row.Scan(
		&i.ID,
		&i.CustomerID,
		&i.TableID,
		&i.WaiterID,
		&i.Status,
		&i.OrderType,
		&i.TotalAmount,
		&i.DiscountPercent,
		&i.PaymentType,
		&i.TransactionID,
		&i.ProofImage,
		&i.IsDeleted,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const createOrder = `INSERT INTO orders (customer_id, table_id, waiter_id, status, order_type, total_amount, payment_type, transaction_id, proof_image)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
RETURNING ` + orderColumns

type CreateOrderParams struct {
	CustomerID    pgtype.UUID    `json:"customer_id"`
	TableID       pgtype.UUID    `json:"table_id"`
	WaiterID      pgtype.UUID    `json:"waiter_id"`
	Status        string         `json:"status"`
	OrderType     string         `json:"order_type"`
	TotalAmount   pgtype.Numeric `json:"total_amount"`
	PaymentType   pgtype.Text    `json:"payment_type"`
	TransactionID pgtype.Text    `json:"transaction_id"`
	ProofImage    pgtype.Text    `json:"proof_image"`
}

func (q *Queries) CreateOrder(ctx context.Context, arg CreateOrderParams) (Order, error) {
	row := q.db.QueryRow(ctx, createOrder,
		arg.CustomerID,
		arg.TableID,
		arg.WaiterID,
		arg.Status,
		arg.OrderType,
		arg.TotalAmount,
		arg.PaymentType,
		arg.TransactionID,
		arg.ProofImage,
	)
	return scanOrder(row)
}

const getOrder = `SELECT ` + orderColumns + ` FROM orders WHERE id = $1 AND is_deleted = false
`

func (q *Queries) GetOrder(ctx context.Context, id uuid.UUID) (Order, error) {
	return scanOrder(q.db.QueryRow(ctx, getOrder, id))
}

const getOrderDetail = `SELECT o.id, o.customer_id, o.table_id, o.waiter_id, o.status, o.order_type, o.total_amount, o.discount_percent,
       o.payment_type, o.transaction_id, o.proof_image, o.is_deleted, o.created_at, o.updated_at,
       c.name AS customer_name, c.phone AS customer_phone, t.table_number, u.name AS waiter_name
FROM orders o
LEFT JOIN customers c ON c.id = o.customer_id
LEFT JOIN restaurant_tables t ON t.id = o.table_id
LEFT JOIN users u ON u.id = o.waiter_id
WHERE o.id = $1 AND o.is_deleted = false
`

// OrderDetailRow is an order joined with its customer, table and waiter.
// The joins do not filter soft-deleted references so historical orders keep their labels.
type OrderDetailRow struct {
	Order
	CustomerName  pgtype.Text `json:"customer_name"`
	CustomerPhone pgtype.Text `json:"customer_phone"`
	TableNumber   pgtype.Int4 `json:"table_number"`
	WaiterName    pgtype.Text `json:"waiter_name"`
}

func scanOrderDetail(row rowScanner) (OrderDetailRow, error) {
	var i OrderDetailRow
	err := row.Scan(
		&i.ID,
		&i.CustomerID,
		&i.TableID,
		&i.WaiterID,
		&i.Status,
		&i.OrderType,
		&i.TotalAmount,
		&i.DiscountPercent,
		&i.PaymentType,
		&i.TransactionID,
		&i.ProofImage,
		&i.IsDeleted,
		&i.CreatedAt,
		&i.UpdatedAt,
		&i.CustomerName,
		&i.CustomerPhone,
		&i.TableNumber,
		&i.WaiterName,
	)
	return i, err
}

func (q *Queries) GetOrderDetail(ctx context.Context, id uuid.UUID) (OrderDetailRow, error) {
	return scanOrderDetail(q.db.QueryRow(ctx, getOrderDetail, id))
}

const listOrders = `SELECT o.id, o.customer_id, o.table_id, o.waiter_id, o.status, o.order_type, o.total_amount, o.discount_percent,
       o.payment_type, o.transaction_id, o.proof_image, o.is_deleted, o.created_at, o.updated_at,
       c.name AS customer_name, c.phone AS customer_phone, t.table_number, u.name AS waiter_name
FROM orders o
LEFT JOIN customers c ON c.id = o.customer_id
LEFT JOIN restaurant_tables t ON t.id = o.table_id
LEFT JOIN users u ON u.id = o.waiter_id
WHERE o.is_deleted = false
  AND ($1::text IS NULL OR o.status = $1::text)
  AND ($2::text IS NULL OR o.order_type = $2::text)
  AND ($3::timestamptz IS NULL OR o.created_at >= $3::timestamptz)
  AND ($4::timestamptz IS NULL OR o.created_at < $4::timestamptz)
ORDER BY o.created_at DESC
LIMIT $5 OFFSET $6
`

type ListOrdersParams struct {
	Status    pgtype.Text        `json:"status"`
	OrderType pgtype.Text        `json:"order_type"`
	StartDate pgtype.Timestamptz `json:"start_date"`
	EndDate   pgtype.Timestamptz `json:"end_date"`
	Limit     int32              `json:"limit"`
	Offset    int32              `json:"offset"`
}

func (q *Queries) ListOrders(ctx context.Context, arg ListOrdersParams) ([]OrderDetailRow, error) {
	rows, err := q.db.Query(ctx, listOrders,
		arg.Status,
		arg.OrderType,
		arg.StartDate,
		arg.EndDate,
		arg.Limit,
		arg.Offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []OrderDetailRow{}
	for rows.Next() {
		i, err := scanOrderDetail(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const softDeleteOrder = `UPDATE orders SET is_deleted = true, updated_at = now()
WHERE id = $1 AND is_deleted = false
RETURNING id
`

func (q *Queries) SoftDeleteOrder(ctx context.Context, id uuid.UUID) (uuid.UUID, error) {
	row := q.db.QueryRow(ctx, softDeleteOrder, id)
	var deleted uuid.UUID
	err := row.Scan(&deleted)
	return deleted, err
}

const updateOrder = `UPDATE orders SET
    customer_id = $2,
    table_id = $3,
    waiter_id = $4,
    status = $5,
    payment_type = $6,
    transaction_id = $7,
    proof_image = $8,
    updated_at = now()
WHERE id = $1 AND is_deleted = false
RETURNING ` + orderColumns

type UpdateOrderParams struct {
	ID            uuid.UUID   `json:"id"`
	CustomerID    pgtype.UUID `json:"customer_id"`
	TableID       pgtype.UUID `json:"table_id"`
	WaiterID      pgtype.UUID `json:"waiter_id"`
	Status        string      `json:"status"`
	PaymentType   pgtype.Text `json:"payment_type"`
	TransactionID pgtype.Text `json:"transaction_id"`
	ProofImage    pgtype.Text `json:"proof_image"`
}

func (q *Queries) UpdateOrder(ctx context.Context, arg UpdateOrderParams) (Order, error) {
	row := q.db.QueryRow(ctx, updateOrder,
		arg.ID,
		arg.CustomerID,
		arg.TableID,
		arg.WaiterID,
		arg.Status,
		arg.PaymentType,
		arg.TransactionID,
		arg.ProofImage,
	)
	return scanOrder(row)
}

const updateOrderTotal = `UPDATE orders SET total_amount = $2, discount_percent = $3, updated_at = now()
WHERE id = $1 AND is_deleted = false
RETURNING ` + orderColumns

type UpdateOrderTotalParams struct {
	ID              uuid.UUID      `json:"id"`
	TotalAmount     pgtype.Numeric `json:"total_amount"`
	DiscountPercent int32          `json:"discount_percent"`
}

func (q *Queries) UpdateOrderTotal(ctx context.Context, arg UpdateOrderTotalParams) (Order, error) {
	return scanOrder(q.db.QueryRow(ctx, updateOrderTotal, arg.ID, arg.TotalAmount, arg.DiscountPercent))
}
