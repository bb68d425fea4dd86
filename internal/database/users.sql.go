package database

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const userColumns = `id, name, email, phone, hashed_password, role, profile_image, is_deleted, created_at, updated_at`

func scanUser(row rowScanner) (User, error) {
	var i User
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.Email,
		&i.Phone,
		&i.HashedPassword,
		&i.Role,
		&i.ProfileImage,
		&i.IsDeleted,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const countActiveAdmins = `SELECT count(*) FROM users WHERE role = 'admin' AND is_deleted = false
`

func (q *Queries) CountActiveAdmins(ctx context.Context) (int64, error) {
	row := q.db.QueryRow(ctx, countActiveAdmins)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const createUser = `INSERT INTO users (name, email, phone, hashed_password, role, profile_image)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING ` + userColumns

type CreateUserParams struct {
	Name           string      `json:"name"`
	Email          string      `json:"email"`
	Phone          string      `json:"phone"`
	HashedPassword string      `json:"hashed_password"`
	Role           string      `json:"role"`
	ProfileImage   pgtype.Text `json:"profile_image"`
}

func (q *Queries) CreateUser(ctx context.Context, arg CreateUserParams) (User, error) {
	row := q.db.QueryRow(ctx, createUser,
		arg.Name,
		arg.Email,
		arg.Phone,
		arg.HashedPassword,
		arg.Role,
		arg.ProfileImage,
	)
	return scanUser(row)
}

const getActiveUser = `SELECT ` + userColumns + ` FROM users WHERE id = $1 AND is_deleted = false
`

func (q *Queries) GetActiveUser(ctx context.Context, id uuid.UUID) (User, error) {
	return scanUser(q.db.QueryRow(ctx, getActiveUser, id))
}

const getUser = `SELECT ` + userColumns + ` FROM users WHERE id = $1
`

// GetUser returns the user regardless of soft-deletion.
func (q *Queries) GetUser(ctx context.Context, id uuid.UUID) (User, error) {
	return scanUser(q.db.QueryRow(ctx, getUser, id))
}

const getUserByName = `SELECT ` + userColumns + ` FROM users WHERE name = $1
ORDER BY is_deleted ASC, created_at ASC
LIMIT 1
`

func (q *Queries) GetUserByName(ctx context.Context, name string) (User, error) {
	return scanUser(q.db.QueryRow(ctx, getUserByName, name))
}

const listUsers = `SELECT ` + userColumns + ` FROM users
WHERE is_deleted = false
  AND ($1::text IS NULL OR role = $1::text)
ORDER BY name ASC
`

func (q *Queries) ListUsers(ctx context.Context, role pgtype.Text) ([]User, error) {
	rows, err := q.db.Query(ctx, listUsers, role)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []User{}
	for rows.Next() {
		i, err := scanUser(rows)
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

const softDeleteUser = `UPDATE users SET is_deleted = true, updated_at = now()
WHERE id = $1 AND is_deleted = false
RETURNING id
`

func (q *Queries) SoftDeleteUser(ctx context.Context, id uuid.UUID) (uuid.UUID, error) {
	row := q.db.QueryRow(ctx, softDeleteUser, id)
	var deleted uuid.UUID
	err := row.Scan(&deleted)
	return deleted, err
}

const updateUser = `UPDATE users SET
    name = $2,
    email = $3,
    phone = $4,
    role = $5,
    hashed_password = COALESCE($6::text, hashed_password),
    profile_image = COALESCE($7::text, profile_image),
    updated_at = now()
WHERE id = $1 AND is_deleted = false
RETURNING ` + userColumns

type UpdateUserParams struct {
	ID             uuid.UUID   `json:"id"`
	Name           string      `json:"name"`
	Email          string      `json:"email"`
	Phone          string      `json:"phone"`
	Role           string      `json:"role"`
	HashedPassword pgtype.Text `json:"hashed_password"`
	ProfileImage   pgtype.Text `json:"profile_image"`
}

func (q *Queries) UpdateUser(ctx context.Context, arg UpdateUserParams) (User, error) {
	row := q.db.QueryRow(ctx, updateUser,
		arg.ID,
		arg.Name,
		arg.Email,
		arg.Phone,
		arg.Role,
		arg.HashedPassword,
		arg.ProfileImage,
	)
	return scanUser(row)
}
