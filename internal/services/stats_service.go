package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"goldenticket-service/internal/models"
	"goldenticket-service/internal/repository"
)

// StatsService assembles the admin dashboard aggregate.
type StatsService struct {
	participantRepo repository.ParticipantRepository
	receiptRepo     repository.ReceiptRepository
	winRepo         repository.WinRepository
	statsRepo       repository.StatsRepository
}

func NewStatsService(
	participantRepo repository.ParticipantRepository,
	receiptRepo repository.ReceiptRepository,
	winRepo repository.WinRepository,
	statsRepo repository.StatsRepository,
) *StatsService {
	return &StatsService{
		participantRepo: participantRepo,
		receiptRepo:     receiptRepo,
		winRepo:         winRepo,
		statsRepo:       statsRepo,
	}
}

func (s *StatsService) ListWinners(ctx context.Context, periodID uuid.UUID) ([]models.WinnerRow, error) {
	return s.winRepo.ListWinners(ctx, periodID)
}

func (s *StatsService) GetGameStats(ctx context.Context, periodID uuid.UUID) (*models.GameStats, error) {
	participants, err := s.participantRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count participants: %w", err)
	}

	receiptCounts, err := s.receiptRepo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	winsByPrize, err := s.winRepo.CountByPrize(ctx, periodID)
	if err != nil {
		return nil, err
	}

	dailyTotals, err := s.statsRepo.DistributionTotalsByDay(ctx, periodID)
	if err != nil {
		return nil, err
	}

	return &models.GameStats{
		Participants:    participants,
		ReceiptsPending: receiptCounts[models.ReceiptStatusPending],
		ReceiptsOK:      receiptCounts[models.ReceiptStatusValidated],
		ReceiptsKO:      receiptCounts[models.ReceiptStatusRejected],
		WinsByPrize:     winsByPrize,
		DailyTotals:     dailyTotals,
	}, nil
}
