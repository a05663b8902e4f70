package repositories

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kollect/backend/internal/models"
)

const userColumns = `id, email, password_hash, username, first_name, last_name, phone_number,
	province, city, postal_code, address, is_brand, is_kol, signup_completed, created_at, updated_at`

type UserRepo struct {
	pool *pgxpool.Pool
}

func NewUserRepo(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

func scanUser(row pgx.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Username, &u.FirstName, &u.LastName,
		&u.PhoneNumber, &u.Province, &u.City, &u.PostalCode, &u.Address,
		&u.IsBrand, &u.IsKOL, &u.SignupCompleted, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

// Create inserts a user. A taken email yields ErrAlreadyExists.
func (r *UserRepo) Create(ctx context.Context, u *models.User) error {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO users (email, password_hash, username, first_name, last_name, phone_number,
		                   province, city, postal_code, address, is_brand, is_kol, signup_completed)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id, created_at, updated_at
	`, u.Email, u.PasswordHash, u.Username, u.FirstName, u.LastName, u.PhoneNumber,
		u.Province, u.City, u.PostalCode, u.Address, u.IsBrand, u.IsKOL, u.SignupCompleted,
	).Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if pgErrCode(err) == pgUniqueViolation {
			return ErrAlreadyExists
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (r *UserRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email))
}

func (r *UserRepo) Update(ctx context.Context, u *models.User) error {
	err := r.pool.QueryRow(ctx, `
		UPDATE users SET username = $1, first_name = $2, last_name = $3, phone_number = $4,
		       province = $5, city = $6, postal_code = $7, address = $8,
		       is_brand = $9, is_kol = $10, signup_completed = $11, updated_at = now()
		WHERE id = $12
		RETURNING updated_at
	`, u.Username, u.FirstName, u.LastName, u.PhoneNumber, u.Province, u.City, u.PostalCode, u.Address,
		u.IsBrand, u.IsKOL, u.SignupCompleted, u.ID,
	).Scan(&u.UpdatedAt)
	return notFound(err)
}

// Delete removes the user; campaigns and bookmarks go with it by cascade.
func (r *UserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
