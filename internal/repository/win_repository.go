package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"goldenticket-service/internal/models"
)

type WinRepository interface {
	Create(ctx context.Context, win *models.Win) error
	ListWinners(ctx context.Context, periodID uuid.UUID) ([]models.WinnerRow, error)
	GetRaffleEligible(ctx context.Context, periodID, prizeTypeID uuid.UUID) ([]models.Participant, error)
	CountByPrize(ctx context.Context, periodID uuid.UUID) ([]models.PrizeWinStat, error)
}

type winRepository struct {
	db *sqlx.DB
}

func NewWinRepository(db *sqlx.DB) WinRepository {
	return &winRepository{db: db}
}

func (r *winRepository) Create(ctx context.Context, win *models.Win) error {
	if win.ID == uuid.Nil {
		win.ID = uuid.New()
	}
	if win.WonAt.IsZero() {
		win.WonAt = time.Now()
	}

	query := `
		INSERT INTO win (
			id, participant_id, game_period_id, prize_type_id,
			daily_distribution_id, receipt_id, source, won_at
		) VALUES (
			:id, :participant_id, :game_period_id, :prize_type_id,
			:daily_distribution_id, :receipt_id, :source, :won_at
		)`

	_, err := r.db.NamedExecContext(ctx, query, win)
	if err != nil {
		return fmt.Errorf("failed to create win: %w", err)
	}
	return nil
}

func (r *winRepository) ListWinners(ctx context.Context, periodID uuid.UUID) ([]models.WinnerRow, error) {
	var winners []models.WinnerRow
	query := `
		SELECT w.id AS win_id, pa.first_name, pa.last_name, pa.email, pa.phone_number,
		       p.title AS prize_title, w.source, w.won_at
		FROM win w
		JOIN participant pa ON pa.id = w.participant_id
		JOIN prize_type p ON p.id = w.prize_type_id
		WHERE w.game_period_id = $1
		ORDER BY w.won_at ASC
	`

	err := r.db.SelectContext(ctx, &winners, query, periodID)
	if err != nil {
		return nil, fmt.Errorf("failed to list winners: %w", err)
	}

	return winners, nil
}

// GetRaffleEligible returns participants holding a validated receipt in the
// period who have not already won the given lot. The raffle draws from this
// pool.
func (r *winRepository) GetRaffleEligible(ctx context.Context, periodID, prizeTypeID uuid.UUID) ([]models.Participant, error) {
	var participants []models.Participant
	query := `
		SELECT DISTINCT pa.id, pa.first_name, pa.last_name, pa.email, pa.phone_number, pa.opt_in, pa.created_at
		FROM participant pa
		JOIN receipt rc ON rc.participant_id = pa.id
		WHERE rc.game_period_id = $1
		  AND rc.status = 'validated'
		  AND NOT EXISTS (
			SELECT 1 FROM win w
			WHERE w.participant_id = pa.id
			  AND w.game_period_id = $1
			  AND w.prize_type_id = $2
		  )
		ORDER BY pa.created_at ASC
	`

	err := r.db.SelectContext(ctx, &participants, query, periodID, prizeTypeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get raffle eligible participants: %w", err)
	}

	return participants, nil
}

func (r *winRepository) CountByPrize(ctx context.Context, periodID uuid.UUID) ([]models.PrizeWinStat, error) {
	var stats []models.PrizeWinStat
	query := `
		SELECT p.title AS prize_title, COUNT(*) AS win_count
		FROM win w
		JOIN prize_type p ON p.id = w.prize_type_id
		WHERE w.game_period_id = $1
		GROUP BY p.title
		ORDER BY win_count DESC
	`

	err := r.db.SelectContext(ctx, &stats, query, periodID)
	if err != nil {
		return nil, fmt.Errorf("failed to count wins by prize: %w", err)
	}

	return stats, nil
}
