package database

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const categoryColumns = `id, name, description, is_deleted, created_at, updated_at`

func scanCategory(row rowScanner) (Category, error) {
	var i Category
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.Description,
		&i.IsDeleted,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const createCategory = `INSERT INTO categories (name, description)
VALUES ($1, $2)
RETURNING ` + categoryColumns

type CreateCategoryParams struct {
	Name        string      `json:"name"`
	Description pgtype.Text `json:"description"`
}

func (q *Queries) CreateCategory(ctx context.Context, arg CreateCategoryParams) (Category, error) {
	return scanCategory(q.db.QueryRow(ctx, createCategory, arg.Name, arg.Description))
}

const getActiveCategory = `SELECT ` + categoryColumns + ` FROM categories WHERE id = $1 AND is_deleted = false
`

func (q *Queries) GetActiveCategory(ctx context.Context, id uuid.UUID) (Category, error) {
	return scanCategory(q.db.QueryRow(ctx, getActiveCategory, id))
}

const listCategories = `SELECT ` + categoryColumns + ` FROM categories
WHERE is_deleted = false
ORDER BY name ASC
`

func (q *Queries) ListCategories(ctx context.Context) ([]Category, error) {
	rows, err := q.db.Query(ctx, listCategories)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Category{}
	for rows.Next() {
		i, err := scanCategory(rows)
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

const softDeleteCategory = `UPDATE categories SET is_deleted = true, updated_at = now()
WHERE id = $1 AND is_deleted = false
RETURNING id
`

func (q *Queries) SoftDeleteCategory(ctx context.Context, id uuid.UUID) (uuid.UUID, error) {
	row := q.db.QueryRow(ctx, softDeleteCategory, id)
	var deleted uuid.UUID
	err := row.Scan(&deleted)
	return deleted, err
}

const updateCategory = `UPDATE categories SET name = $2, description = $3, updated_at = now()
WHERE id = $1 AND is_deleted = false
RETURNING ` + categoryColumns

type UpdateCategoryParams struct {
	ID          uuid.UUID   `json:"id"`
	Name        string      `json:"name"`
	Description pgtype.Text `json:"description"`
}

func (q *Queries) UpdateCategory(ctx context.Context, arg UpdateCategoryParams) (Category, error) {
	return scanCategory(q.db.QueryRow(ctx, updateCategory, arg.ID, arg.Name, arg.Description))
}
