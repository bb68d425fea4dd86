package database

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const cookingCommentColumns = `id, category_id, comment, is_deleted, created_at, updated_at`

func scanCookingComment(row rowScanner) (CookingComment, error) {
	var i CookingComment
	err := row.Scan(
		&i.ID,
		&i.CategoryID,
		&i.Comment,
		&i.IsDeleted,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const createCookingComment = `INSERT INTO cooking_comments (category_id, comment)
VALUES ($1, $2)
RETURNING ` + cookingCommentColumns

type CreateCookingCommentParams struct {
	CategoryID uuid.UUID `json:"category_id"`
	Comment    string    `json:"comment"`
}

func (q *Queries) CreateCookingComment(ctx context.Context, arg CreateCookingCommentParams) (CookingComment, error) {
	return scanCookingComment(q.db.QueryRow(ctx, createCookingComment, arg.CategoryID, arg.Comment))
}

const getCookingComment = `SELECT ` + cookingCommentColumns + ` FROM cooking_comments WHERE id = $1 AND is_deleted = false
`

func (q *Queries) GetCookingComment(ctx context.Context, id uuid.UUID) (CookingComment, error) {
	return scanCookingComment(q.db.QueryRow(ctx, getCookingComment, id))
}

const listCookingComments = `SELECT ` + cookingCommentColumns + ` FROM cooking_comments
WHERE is_deleted = false
  AND ($1::uuid IS NULL OR category_id = $1::uuid)
ORDER BY created_at ASC
`

func (q *Queries) ListCookingComments(ctx context.Context, categoryID pgtype.UUID) ([]CookingComment, error) {
	rows, err := q.db.Query(ctx, listCookingComments, categoryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []CookingComment{}
	for rows.Next() {
		i, err := scanCookingComment(rows)
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

const softDeleteCookingComment = `UPDATE cooking_comments SET is_deleted = true, updated_at = now()
WHERE id = $1 AND is_deleted = false
RETURNING id
`

func (q *Queries) SoftDeleteCookingComment(ctx context.Context, id uuid.UUID) (uuid.UUID, error) {
	row := q.db.QueryRow(ctx, softDeleteCookingComment, id)
	var deleted uuid.UUID
	err := row.Scan(&deleted)
	return deleted, err
}

const updateCookingComment = `UPDATE cooking_comments SET category_id = $2, comment = $3, updated_at = now()
WHERE id = $1 AND is_deleted = false
RETURNING ` + cookingCommentColumns

type UpdateCookingCommentParams struct {
	ID         uuid.UUID `json:"id"`
	CategoryID uuid.UUID `json:"category_id"`
	Comment    string    `json:"comment"`
}

func (q *Queries) UpdateCookingComment(ctx context.Context, arg UpdateCookingCommentParams) (CookingComment, error) {
	return scanCookingComment(q.db.QueryRow(ctx, updateCookingComment, arg.ID, arg.CategoryID, arg.Comment))
}
