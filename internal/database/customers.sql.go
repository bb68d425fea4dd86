package database

import (
	"context"

	"github.com/google/uuid"
)

const customerColumns = `id, name, phone, is_deleted, created_at, updated_at`

func scanCustomer(row rowScanner) (Customer, error) {
	var i Customer
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.Phone,
		&i.IsDeleted,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const createCustomer = `INSERT INTO customers (name, phone)
VALUES ($1, $2)
RETURNING ` + customerColumns

type CreateCustomerParams struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

func (q *Queries) CreateCustomer(ctx context.Context, arg CreateCustomerParams) (Customer, error) {
	return scanCustomer(q.db.QueryRow(ctx, createCustomer, arg.Name, arg.Phone))
}

const getActiveCustomer = `SELECT ` + customerColumns + ` FROM customers WHERE id = $1 AND is_deleted = false
`

func (q *Queries) GetActiveCustomer(ctx context.Context, id uuid.UUID) (Customer, error) {
	return scanCustomer(q.db.QueryRow(ctx, getActiveCustomer, id))
}

const getCustomerByPhone = `SELECT ` + customerColumns + ` FROM customers
WHERE phone = $1 AND is_deleted = false
ORDER BY created_at ASC
LIMIT 1
`

func (q *Queries) GetCustomerByPhone(ctx context.Context, phone string) (Customer, error) {
	return scanCustomer(q.db.QueryRow(ctx, getCustomerByPhone, phone))
}

const listCustomers = `SELECT ` + customerColumns + ` FROM customers
WHERE is_deleted = false
ORDER BY created_at DESC
LIMIT $1 OFFSET $2
`

type ListCustomersParams struct {
	Limit  int32 `json:"limit"`
	Offset int32 `json:"offset"`
}

func (q *Queries) ListCustomers(ctx context.Context, arg ListCustomersParams) ([]Customer, error) {
	rows, err := q.db.Query(ctx, listCustomers, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Customer{}
	for rows.Next() {
		i, err := scanCustomer(rows)
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

const softDeleteCustomer = `UPDATE customers SET is_deleted = true, updated_at = now()
WHERE id = $1 AND is_deleted = false
RETURNING id
`

func (q *Queries) SoftDeleteCustomer(ctx context.Context, id uuid.UUID) (uuid.UUID, error) {
	row := q.db.QueryRow(ctx, softDeleteCustomer, id)
	var deleted uuid.UUID
	err := row.Scan(&deleted)
	return deleted, err
}

const updateCustomer = `UPDATE customers SET name = $2, phone = $3, updated_at = now()
WHERE id = $1 AND is_deleted = false
RETURNING ` + customerColumns

type UpdateCustomerParams struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Phone string    `json:"phone"`
}

func (q *Queries) UpdateCustomer(ctx context.Context, arg UpdateCustomerParams) (Customer, error) {
	return scanCustomer(q.db.QueryRow(ctx, updateCustomer, arg.ID, arg.Name, arg.Phone))
}
