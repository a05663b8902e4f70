package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kollect/backend/internal/models"
	"github.com/kollect/backend/internal/repositories"
)

const userColumns = `id, email, password_hash, username, first_name, last_name, phone_number,
	province, city, postal_code, address, is_brand, is_kol, signup_completed, created_at, updated_at`

type UserRepo struct {
	db *sql.DB
}

func scanUser(row *sql.Row) (*models.User, error) {
	var u models.User
	var createdAt, updatedAt int64
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Username, &u.FirstName, &u.LastName,
		&u.PhoneNumber, &u.Province, &u.City, &u.PostalCode, &u.Address,
		&u.IsBrand, &u.IsKOL, &u.SignupCompleted, &createdAt, &updatedAt)
	if err != nil {
		return nil, notFound(err)
	}
	u.CreatedAt = fromMillis(createdAt)
	u.UpdatedAt = fromMillis(updatedAt)
	return &u, nil
}

func (r *UserRepo) Create(ctx context.Context, u *models.User) error {
	u.ID = uuid.New()
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (`+userColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, u.ID, u.Email, u.PasswordHash, u.Username, u.FirstName, u.LastName, u.PhoneNumber,
		u.Province, u.City, u.PostalCode, u.Address, u.IsBrand, u.IsKOL, u.SignupCompleted,
		toMillis(now), toMillis(now))
	if err != nil {
		if isUniqueViolation(err) {
			return repositories.ErrAlreadyExists
		}
		return fmt.Errorf("create user: %w", err)
	}
	u.CreatedAt = fromMillis(toMillis(now))
	u.UpdatedAt = u.CreatedAt
	return nil
}

func (r *UserRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return scanUser(r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id))
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return scanUser(r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE email = ?`, email))
}

func (r *UserRepo) Update(ctx context.Context, u *models.User) error {
	now := time.Now().UTC()
	res, err := r.db.ExecContext(ctx, `
		UPDATE users SET username = ?, first_name = ?, last_name = ?, phone_number = ?,
		       province = ?, city = ?, postal_code = ?, address = ?,
		       is_brand = ?, is_kol = ?, signup_completed = ?, updated_at = ?
		WHERE id = ?
	`, u.Username, u.FirstName, u.LastName, u.PhoneNumber, u.Province, u.City, u.PostalCode, u.Address,
		u.IsBrand, u.IsKOL, u.SignupCompleted, toMillis(now), u.ID)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	ok, err := affected(res)
	if err != nil {
		return err
	}
	if !ok {
		return repositories.ErrNotFound
	}
	u.UpdatedAt = fromMillis(toMillis(now))
	return nil
}

func (r *UserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	ok, err := affected(res)
	if err != nil {
		return err
	}
	if !ok {
		return repositories.ErrNotFound
	}
	return nil
}
