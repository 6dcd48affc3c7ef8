package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"goldenticket-service/internal/models"
)

type GamePeriodRepository interface {
	Create(ctx context.Context, period *models.GamePeriod) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.GamePeriod, error)
	GetAll(ctx context.Context) ([]models.GamePeriod, error)
	GetActiveForDate(ctx context.Context, day time.Time) (*models.GamePeriod, error)
	Update(ctx context.Context, period *models.GamePeriod) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type gamePeriodRepository struct {
	db *sqlx.DB
}

func NewGamePeriodRepository(db *sqlx.DB) GamePeriodRepository {
	return &gamePeriodRepository{db: db}
}

func (r *gamePeriodRepository) Create(ctx context.Context, period *models.GamePeriod) error {
	if period.ID == uuid.Nil {
		period.ID = uuid.New()
	}
	now := time.Now()
	if period.CreatedAt.IsZero() {
		period.CreatedAt = now
	}
	period.UpdatedAt = now

	query := `
		INSERT INTO game_period (id, title, date_start, date_end, is_active, created_at, updated_at)
		VALUES (:id, :title, :date_start, :date_end, :is_active, :created_at, :updated_at)`

	_, err := r.db.NamedExecContext(ctx, query, period)
	if err != nil {
		return fmt.Errorf("failed to create game period: %w", err)
	}
	return nil
}

func (r *gamePeriodRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.GamePeriod, error) {
	var period models.GamePeriod
	query := `
		SELECT id, title, date_start, date_end, is_active, created_at, updated_at
		FROM game_period
		WHERE id = $1
	`

	err := r.db.GetContext(ctx, &period, query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get game period by id: %w", err)
	}

	return &period, nil
}

func (r *gamePeriodRepository) GetAll(ctx context.Context) ([]models.GamePeriod, error) {
	var periods []models.GamePeriod
	query := `
		SELECT id, title, date_start, date_end, is_active, created_at, updated_at
		FROM game_period
		ORDER BY date_start DESC
	`

	err := r.db.SelectContext(ctx, &periods, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get game periods: %w", err)
	}

	return periods, nil
}

// GetActiveForDate returns the active period covering the given calendar day.
func (r *gamePeriodRepository) GetActiveForDate(ctx context.Context, day time.Time) (*models.GamePeriod, error) {
	var period models.GamePeriod
	query := `
		SELECT id, title, date_start, date_end, is_active, created_at, updated_at
		FROM game_period
		WHERE is_active = TRUE AND date_start <= $1 AND date_end >= $1
		ORDER BY date_start DESC
		LIMIT 1
	`

	err := r.db.GetContext(ctx, &period, query, day.Format("2006-01-02"))
	if err != nil {
		return nil, fmt.Errorf("failed to get active game period for date: %w", err)
	}

	return &period, nil
}

func (r *gamePeriodRepository) Update(ctx context.Context, period *models.GamePeriod) error {
	period.UpdatedAt = time.Now()

	query := `
		UPDATE game_period SET
			title = :title,
			date_start = :date_start,
			date_end = :date_end,
			is_active = :is_active,
			updated_at = :updated_at
		WHERE id = :id`

	result, err := r.db.NamedExecContext(ctx, query, period)
	if err != nil {
		return fmt.Errorf("failed to update game period: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("game period not found")
	}

	return nil
}

func (r *gamePeriodRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM game_period WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete game period: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("game period not found")
	}

	return nil
}
