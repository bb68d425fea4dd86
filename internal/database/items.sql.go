package database

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const itemColumns = `id, name, description, price, category_id, image, status, is_deleted, created_at, updated_at`

func scanItem(row rowScanner) (Item, error) {
	var i Item
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.Description,
		&i.Price,
		&i.CategoryID,
		&i.Image,
		&i.Status,
		&i.IsDeleted,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const createItem = `INSERT INTO items (name, description, price, category_id, image, status)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING ` + itemColumns

type CreateItemParams struct {
	Name        string         `json:"name"`
	Description pgtype.Text    `json:"description"`
	Price       pgtype.Numeric `json:"price"`
	CategoryID  uuid.UUID      `json:"category_id"`
	Image       pgtype.Text    `json:"image"`
	Status      string         `json:"status"`
}

func (q *Queries) CreateItem(ctx context.Context, arg CreateItemParams) (Item, error) {
	row := q.db.QueryRow(ctx, createItem,
		arg.Name,
		arg.Description,
		arg.Price,
		arg.CategoryID,
		arg.Image,
		arg.Status,
	)
	return scanItem(row)
}

const getVisibleItem = `SELECT i.id, i.name, i.description, i.price, i.category_id, i.image, i.status, i.is_deleted, i.created_at, i.updated_at
FROM items i
JOIN categories c ON c.id = i.category_id
WHERE i.id = $1 AND i.is_deleted = false AND c.is_deleted = false
`

// GetVisibleItem hides items whose category has been soft-deleted.
func (q *Queries) GetVisibleItem(ctx context.Context, id uuid.UUID) (Item, error) {
	return scanItem(q.db.QueryRow(ctx, getVisibleItem, id))
}

const listVisibleItems = `SELECT i.id, i.name, i.description, i.price, i.category_id, i.image, i.status, i.is_deleted, i.created_at, i.updated_at,
       c.name AS category_name
FROM items i
JOIN categories c ON c.id = i.category_id
WHERE i.is_deleted = false AND c.is_deleted = false
  AND ($1::uuid IS NULL OR i.category_id = $1::uuid)
  AND ($2::text IS NULL OR i.status = $2::text)
ORDER BY c.name ASC, i.name ASC
`

type ListVisibleItemsParams struct {
	CategoryID pgtype.UUID `json:"category_id"`
	Status     pgtype.Text `json:"status"`
}

type ListVisibleItemsRow struct {
	Item
	CategoryName string `json:"category_name"`
}

func (q *Queries) ListVisibleItems(ctx context.Context, arg ListVisibleItemsParams) ([]ListVisibleItemsRow, error) {
	rows, err := q.db.Query(ctx, listVisibleItems, arg.CategoryID, arg.Status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []ListVisibleItemsRow{}
	for rows.Next() {
		var i ListVisibleItemsRow
		if err := rows.Scan(
			&i.ID,
			&i.Name,
			&i.Description,
			&i.Price,
			&i.CategoryID,
			&i.Image,
			&i.Status,
			&i.IsDeleted,
			&i.CreatedAt,
			&i.UpdatedAt,
			&i.CategoryName,
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

const softDeleteItem = `UPDATE items SET is_deleted = true, updated_at = now()
WHERE id = $1 AND is_deleted = false
RETURNING id
`

func (q *Queries) SoftDeleteItem(ctx context.Context, id uuid.UUID) (uuid.UUID, error) {
	row := q.db.QueryRow(ctx, softDeleteItem, id)
	var deleted uuid.UUID
	err := row.Scan(&deleted)
	return deleted, err
}

const updateItem = `UPDATE items SET
    name = $2,
    description = $3,
    price = $4,
    category_id = $5,
    image = $6,
    status = $7,
    updated_at = now()
WHERE id = $1 AND is_deleted = false
RETURNING ` + itemColumns

type UpdateItemParams struct {
	ID          uuid.UUID      `json:"id"`
	Name        string         `json:"name"`
	Description pgtype.Text    `json:"description"`
	Price       pgtype.Numeric `json:"price"`
	CategoryID  uuid.UUID      `json:"category_id"`
	Image       pgtype.Text    `json:"image"`
	Status      string         `json:"status"`
}

func (q *Queries) UpdateItem(ctx context.Context, arg UpdateItemParams) (Item, error) {
	row := q.db.QueryRow(ctx, updateItem,
		arg.ID,
		arg.Name,
		arg.Description,
		arg.Price,
		arg.CategoryID,
		arg.Image,
		arg.Status,
	)
	return scanItem(row)
}
