package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"goldenticket-service/internal/models"
)

type AdminRepository interface {
	Create(ctx context.Context, admin *models.AdminAccount) error
	GetByEmail(ctx context.Context, email string) (*models.AdminAccount, error)
	UpdateLastLogin(ctx context.Context, id string) error
}

type adminRepository struct {
	db *sqlx.DB
}

func NewAdminRepository(db *sqlx.DB) AdminRepository {
	return &adminRepository{db: db}
}

func (r *adminRepository) Create(ctx context.Context, admin *models.AdminAccount) error {
	if admin.CreatedAt.IsZero() {
		admin.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO admin_account (id, email, password_hash, is_active, created_at)
		VALUES (:id, :email, :password_hash, :is_active, :created_at)
		ON CONFLICT (email) DO NOTHING`

	_, err := r.db.NamedExecContext(ctx, query, admin)
	if err != nil {
		return fmt.Errorf("failed to create admin account: %w", err)
	}
	return nil
}

// GetByEmail returns (nil, nil) when no account has that email.
func (r *adminRepository) GetByEmail(ctx context.Context, email string) (*models.AdminAccount, error) {
	var admin models.AdminAccount
	query := `
		SELECT id, email, password_hash, is_active, created_at, last_login
		FROM admin_account
		WHERE email = $1
	`

	err := r.db.GetContext(ctx, &admin, query, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get admin by email: %w", err)
	}

	return &admin, nil
}

func (r *adminRepository) UpdateLastLogin(ctx context.Context, id string) error {
	query := `UPDATE admin_account SET last_login = NOW() WHERE id = $1`

	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to update last login: %w", err)
	}
	return nil
}
