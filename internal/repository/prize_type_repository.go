package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"goldenticket-service/internal/models"
)

type PrizeTypeRepository interface {
	Create(ctx context.Context, prize *models.PrizeType) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.PrizeType, error)
	GetAll(ctx context.Context) ([]models.PrizeType, error)
	Update(ctx context.Context, prize *models.PrizeType) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type prizeTypeRepository struct {
	db *sqlx.DB
}

func NewPrizeTypeRepository(db *sqlx.DB) PrizeTypeRepository {
	return &prizeTypeRepository{db: db}
}

func (r *prizeTypeRepository) Create(ctx context.Context, prize *models.PrizeType) error {
	if prize.ID == uuid.Nil {
		prize.ID = uuid.New()
	}
	now := time.Now()
	if prize.CreatedAt.IsZero() {
		prize.CreatedAt = now
	}
	prize.UpdatedAt = now

	query := `
		INSERT INTO prize_type (
			id, title, description, default_quantity, priority,
			fixed_distribution_date, fixed_distribution_time, created_at, updated_at
		) VALUES (
			:id, :title, :description, :default_quantity, :priority,
			:fixed_distribution_date, :fixed_distribution_time, :created_at, :updated_at
		)`

	_, err := r.db.NamedExecContext(ctx, query, prize)
	if err != nil {
		return fmt.Errorf("failed to create prize type: %w", err)
	}
	return nil
}

func (r *prizeTypeRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.PrizeType, error) {
	var prize models.PrizeType
	query := `
		SELECT id, title, description, default_quantity, priority,
		       fixed_distribution_date, fixed_distribution_time, created_at, updated_at
		FROM prize_type
		WHERE id = $1
	`

	err := r.db.GetContext(ctx, &prize, query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get prize type by id: %w", err)
	}

	return &prize, nil
}

// GetAll returns the catalog ordered by ascending priority. The allocator
// relies on this ordering and never re-sorts.
func (r *prizeTypeRepository) GetAll(ctx context.Context) ([]models.PrizeType, error) {
	var prizes []models.PrizeType
	query := `
		SELECT id, title, description, default_quantity, priority,
		       fixed_distribution_date, fixed_distribution_time, created_at, updated_at
		FROM prize_type
		ORDER BY priority ASC, created_at ASC
	`

	err := r.db.SelectContext(ctx, &prizes, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get prize types: %w", err)
	}

	return prizes, nil
}

func (r *prizeTypeRepository) Update(ctx context.Context, prize *models.PrizeType) error {
	prize.UpdatedAt = time.Now()

	query := `
		UPDATE prize_type SET
			title = :title,
			description = :description,
			default_quantity = :default_quantity,
			priority = :priority,
			fixed_distribution_date = :fixed_distribution_date,
			fixed_distribution_time = :fixed_distribution_time,
			updated_at = :updated_at
		WHERE id = :id`

	result, err := r.db.NamedExecContext(ctx, query, prize)
	if err != nil {
		return fmt.Errorf("failed to update prize type: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("prize type not found")
	}

	return nil
}

func (r *prizeTypeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM prize_type WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete prize type: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("prize type not found")
	}

	return nil
}
