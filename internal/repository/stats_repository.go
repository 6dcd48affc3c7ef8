package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"goldenticket-service/internal/models"
)

type StatsRepository interface {
	DistributionTotalsByDay(ctx context.Context, periodID uuid.UUID) ([]models.DayDistributionStat, error)
}

type statsRepository struct {
	db *sqlx.DB
}

func NewStatsRepository(db *sqlx.DB) StatsRepository {
	return &statsRepository{db: db}
}

func (r *statsRepository) DistributionTotalsByDay(ctx context.Context, periodID uuid.UUID) ([]models.DayDistributionStat, error) {
	var stats []models.DayDistributionStat
	query := `
		SELECT d.day, SUM(d.quantity_available) AS quantity_available,
		       SUM(d.quantity_distributed) AS quantity_distributed
		FROM daily_distribution d
		JOIN period_prize_allocation a ON a.id = d.period_prize_allocation_id
		WHERE a.game_period_id = $1
		GROUP BY d.day
		ORDER BY d.day ASC
	`

	err := r.db.SelectContext(ctx, &stats, query, periodID)
	if err != nil {
		return nil, fmt.Errorf("failed to get distribution totals by day: %w", err)
	}

	return stats, nil
}
