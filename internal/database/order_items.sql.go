package database

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const orderItemColumns = `id, order_id, item_id, quantity, price, special_request, is_deleted, created_at, updated_at`

func scanOrderItem(row rowScanner) (OrderItem, error) {
	var i OrderItem
	err := row.Scan(
		&i.ID,
		&i.OrderID,
		&i.ItemID,
		&i.Quantity,
		&i.Price,
		&i.SpecialRequest,
		&i.IsDeleted,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const createOrderItem = `INSERT INTO order_items (order_id, item_id, quantity, price, special_request)
VALUES ($1, $2, $3, $4, $5)
RETURNING ` + orderItemColumns

type CreateOrderItemParams struct {
	OrderID        uuid.UUID      `json:"order_id"`
	ItemID         uuid.UUID      `json:"item_id"`
	Quantity       int32          `json:"quantity"`
	Price          pgtype.Numeric `json:"price"`
	SpecialRequest pgtype.Text    `json:"special_request"`
}

func (q *Queries) CreateOrderItem(ctx context.Context, arg CreateOrderItemParams) (OrderItem, error) {
	row := q.db.QueryRow(ctx, createOrderItem,
		arg.OrderID,
		arg.ItemID,
		arg.Quantity,
		arg.Price,
		arg.SpecialRequest,
	)
	return scanOrderItem(row)
}

const getOrderItem = `SELECT ` + orderItemColumns + ` FROM order_items WHERE id = $1 AND is_deleted = false
`

func (q *Queries) GetOrderItem(ctx context.Context, id uuid.UUID) (OrderItem, error) {
	return scanOrderItem(q.db.QueryRow(ctx, getOrderItem, id))
}

const listOrderItemsByOrder = `SELECT oi.id, oi.order_id, oi.item_id, oi.quantity, oi.price, oi.special_request, oi.is_deleted, oi.created_at, oi.updated_at,
       i.name AS item_name
FROM order_items oi
JOIN items i ON i.id = oi.item_id
WHERE oi.order_id = $1 AND oi.is_deleted = false
ORDER BY oi.created_at ASC
`

type ListOrderItemsByOrderRow struct {
	OrderItem
	ItemName string `json:"item_name"`
}

func (q *Queries) ListOrderItemsByOrder(ctx context.Context, orderID uuid.UUID) ([]ListOrderItemsByOrderRow, error) {
	rows, err := q.db.Query(ctx, listOrderItemsByOrder, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []ListOrderItemsByOrderRow{}
	for rows.Next() {
		var i ListOrderItemsByOrderRow
		if err := rows.Scan(
			&i.ID,
			&i.OrderID,
			&i.ItemID,
			&i.Quantity,
			&i.Price,
			&i.SpecialRequest,
			&i.IsDeleted,
			&i.CreatedAt,
			&i.UpdatedAt,
			&i.ItemName,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const softDeleteOrderItem = `UPDATE order_items SET is_deleted = true, updated_at = now()
WHERE id = $1 AND is_deleted = false
RETURNING id
`

func (q *Queries) SoftDeleteOrderItem(ctx context.Context, id uuid.UUID) (uuid.UUID, error) {
	row := q.db.QueryRow(ctx, softDeleteOrderItem, id)
	var deleted uuid.UUID
	err := row.Scan(&deleted)
	return deleted, err
}

const updateOrderItem = `UPDATE order_items SET quantity = $2, price = $3, special_request = $4, updated_at = now()
WHERE id = $1 AND is_deleted = false
RETURNING ` + orderItemColumns

type UpdateOrderItemParams struct {
	ID             uuid.UUID      `json:"id"`
	Quantity       int32          `json:"quantity"`
	Price          pgtype.Numeric `json:"price"`
	SpecialRequest pgtype.Text    `json:"special_request"`
}

func (q *Queries) UpdateOrderItem(ctx context.Context, arg UpdateOrderItemParams) (OrderItem, error) {
	row := q.db.QueryRow(ctx, updateOrderItem,
		arg.ID,
		arg.Quantity,
		arg.Price,
		arg.SpecialRequest,
	)
	return scanOrderItem(row)
}
