package database

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const tableColumns = `id, table_number, capacity, status, assigned_waiter, is_deleted, created_at, updated_at`

func scanTable(row rowScanner) (RestaurantTable, error) {
	var i RestaurantTable
	err := row.Scan(
		&i.ID,
		&i.TableNumber,
		&i.Capacity,
		&i.Status,
		&i.AssignedWaiter,
		&i.IsDeleted,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const createTable = `INSERT INTO restaurant_tables (table_number, capacity, status, assigned_waiter)
VALUES ($1, $2, $3, $4)
RETURNING ` + tableColumns

type CreateTableParams struct {
	TableNumber    int32       `json:"table_number"`
	Capacity       int32       `json:"capacity"`
	Status         string      `json:"status"`
	AssignedWaiter pgtype.UUID `json:"assigned_waiter"`
}

func (q *Queries) CreateTable(ctx context.Context, arg CreateTableParams) (RestaurantTable, error) {
	row := q.db.QueryRow(ctx, createTable,
		arg.TableNumber,
		arg.Capacity,
		arg.Status,
		arg.AssignedWaiter,
	)
	return scanTable(row)
}

const getActiveTable = `SELECT ` + tableColumns + ` FROM restaurant_tables WHERE id = $1 AND is_deleted = false
`

func (q *Queries) GetActiveTable(ctx context.Context, id uuid.UUID) (RestaurantTable, error) {
	return scanTable(q.db.QueryRow(ctx, getActiveTable, id))
}

const getTable = `SELECT ` + tableColumns + ` FROM restaurant_tables WHERE id = $1
`

// GetTable returns the table regardless of soft-deletion.
func (q *Queries) GetTable(ctx context.Context, id uuid.UUID) (RestaurantTable, error) {
	return scanTable(q.db.QueryRow(ctx, getTable, id))
}

const listTables = `SELECT t.id, t.table_number, t.capacity, t.status, t.assigned_waiter, t.is_deleted, t.created_at, t.updated_at,
       u.name AS waiter_name, u.role AS waiter_role
FROM restaurant_tables t
LEFT JOIN users u ON u.id = t.assigned_waiter
WHERE t.is_deleted = false
ORDER BY t.table_number ASC
`

type ListTablesRow struct {
	RestaurantTable
	WaiterName pgtype.Text `json:"waiter_name"`
	WaiterRole pgtype.Text `json:"waiter_role"`
}

func (q *Queries) ListTables(ctx context.Context) ([]ListTablesRow, error) {
	rows, err := q.db.Query(ctx, listTables)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []ListTablesRow{}
	for rows.Next() {
		var i ListTablesRow
		if err := rows.Scan(
			&i.ID,
			&i.TableNumber,
			&i.Capacity,
			&i.Status,
			&i.AssignedWaiter,
			&i.IsDeleted,
			&i.CreatedAt,
			&i.UpdatedAt,
			&i.WaiterName,
			&i.WaiterRole,
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

const softDeleteTable = `UPDATE restaurant_tables SET is_deleted = true, updated_at = now()
WHERE id = $1 AND is_deleted = false
RETURNING id
`

func (q *Queries) SoftDeleteTable(ctx context.Context, id uuid.UUID) (uuid.UUID, error) {
	row := q.db.QueryRow(ctx, softDeleteTable, id)
	var deleted uuid.UUID
	err := row.Scan(&deleted)
	return deleted, err
}

const updateTable = `UPDATE restaurant_tables SET
    table_number = $2,
    capacity = $3,
    status = $4,
    assigned_waiter = $5,
    updated_at = now()
WHERE id = $1 AND is_deleted = false
RETURNING ` + tableColumns

type UpdateTableParams struct {
	ID             uuid.UUID   `json:"id"`
	TableNumber    int32       `json:"table_number"`
	Capacity       int32       `json:"capacity"`
	Status         string      `json:"status"`
	AssignedWaiter pgtype.UUID `json:"assigned_waiter"`
}

func (q *Queries) UpdateTable(ctx context.Context, arg UpdateTableParams) (RestaurantTable, error) {
	row := q.db.QueryRow(ctx, updateTable,
		arg.ID,
		arg.TableNumber,
		arg.Capacity,
		arg.Status,
		arg.AssignedWaiter,
	)
	return scanTable(row)
}
