package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"goldenticket-service/internal/models"
)

type AllocationRepository interface {
	CreateAllocation(ctx context.Context, alloc *models.PeriodPrizeAllocation) error
	CreateDailyDistribution(ctx context.Context, dist *models.DailyDistribution) error
	ExistsForPeriod(ctx context.Context, periodID uuid.UUID) (bool, error)
	GetDistributionsForPeriod(ctx context.Context, periodID uuid.UUID) ([]models.DailyDistribution, error)
	GetDrawableForDay(ctx context.Context, periodID uuid.UUID, day time.Time) ([]models.DrawableDistribution, error)
	ClaimUnit(ctx context.Context, distributionID uuid.UUID) (bool, error)
}

type allocationRepository struct {
	db *sqlx.DB
}

func NewAllocationRepository(db *sqlx.DB) AllocationRepository {
	return &allocationRepository{db: db}
}

func (r *allocationRepository) CreateAllocation(ctx context.Context, alloc *models.PeriodPrizeAllocation) error {
	if alloc.ID == uuid.Nil {
		alloc.ID = uuid.New()
	}
	if alloc.CreatedAt.IsZero() {
		alloc.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO period_prize_allocation (id, game_period_id, prize_type_id, quantity_total, created_at)
		VALUES (:id, :game_period_id, :prize_type_id, :quantity_total, :created_at)`

	_, err := r.db.NamedExecContext(ctx, query, alloc)
	if err != nil {
		return fmt.Errorf("failed to create period prize allocation: %w", err)
	}
	return nil
}

func (r *allocationRepository) CreateDailyDistribution(ctx context.Context, dist *models.DailyDistribution) error {
	if dist.ID == uuid.Nil {
		dist.ID = uuid.New()
	}
	if dist.CreatedAt.IsZero() {
		dist.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO daily_distribution (
			id, period_prize_allocation_id, day, quantity_available,
			quantity_distributed, distribution_time, created_at
		) VALUES (
			:id, :period_prize_allocation_id, :day, :quantity_available,
			:quantity_distributed, :distribution_time, :created_at
		)`

	_, err := r.db.NamedExecContext(ctx, query, dist)
	if err != nil {
		return fmt.Errorf("failed to create daily distribution: %w", err)
	}
	return nil
}

func (r *allocationRepository) ExistsForPeriod(ctx context.Context, periodID uuid.UUID) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM period_prize_allocation WHERE game_period_id = $1)`

	err := r.db.GetContext(ctx, &exists, query, periodID)
	if err != nil {
		return false, fmt.Errorf("failed to check allocation existence: %w", err)
	}

	return exists, nil
}

func (r *allocationRepository) GetDistributionsForPeriod(ctx context.Context, periodID uuid.UUID) ([]models.DailyDistribution, error) {
	var dists []models.DailyDistribution
	query := `
		SELECT d.id, d.period_prize_allocation_id, d.day, d.quantity_available,
		       d.quantity_distributed, d.distribution_time, d.created_at
		FROM daily_distribution d
		JOIN period_prize_allocation a ON a.id = d.period_prize_allocation_id
		WHERE a.game_period_id = $1
		ORDER BY d.day ASC
	`

	err := r.db.SelectContext(ctx, &dists, query, periodID)
	if err != nil {
		return nil, fmt.Errorf("failed to get distributions for period: %w", err)
	}

	return dists, nil
}

// GetDrawableForDay returns the day's distribution rows joined to their lot,
// ordered by lot priority, as the draw walks them.
func (r *allocationRepository) GetDrawableForDay(ctx context.Context, periodID uuid.UUID, day time.Time) ([]models.DrawableDistribution, error) {
	var rows []models.DrawableDistribution
	query := `
		SELECT d.id, d.period_prize_allocation_id, d.day, d.quantity_available,
		       d.quantity_distributed, d.distribution_time, d.created_at,
		       a.game_period_id, a.prize_type_id, p.title AS prize_title, p.priority
		FROM daily_distribution d
		JOIN period_prize_allocation a ON a.id = d.period_prize_allocation_id
		JOIN prize_type p ON p.id = a.prize_type_id
		WHERE a.game_period_id = $1 AND d.day = $2
		ORDER BY p.priority ASC, d.created_at ASC
	`

	err := r.db.SelectContext(ctx, &rows, query, periodID, day.Format("2006-01-02"))
	if err != nil {
		return nil, fmt.Errorf("failed to get drawable distributions: %w", err)
	}

	return rows, nil
}

// ClaimUnit increments quantity_distributed if a unit is still available.
// Returns false when the row was already exhausted; the optimistic WHERE
// clause keeps concurrent draws from over-distributing.
func (r *allocationRepository) ClaimUnit(ctx context.Context, distributionID uuid.UUID) (bool, error) {
	query := `
		UPDATE daily_distribution
		SET quantity_distributed = quantity_distributed + 1
		WHERE id = $1 AND quantity_distributed < quantity_available`

	result, err := r.db.ExecContext(ctx, query, distributionID)
	if err != nil {
		return false, fmt.Errorf("failed to claim distribution unit: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rowsAffected > 0, nil
}
