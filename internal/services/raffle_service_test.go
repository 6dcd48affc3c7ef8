package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goldenticket-service/internal/models"
)

type fakeWinRepo struct {
	eligible []models.Participant
	wins     []models.Win
}

func (f *fakeWinRepo) Create(ctx context.Context, win *models.Win) error {
	if win.ID == uuid.Nil {
		win.ID = uuid.New()
	}
	f.wins = append(f.wins, *win)
	return nil
}

func (f *fakeWinRepo) ListWinners(ctx context.Context, periodID uuid.UUID) ([]models.WinnerRow, error) {
	return nil, nil
}

func (f *fakeWinRepo) GetRaffleEligible(ctx context.Context, periodID, prizeTypeID uuid.UUID) ([]models.Participant, error) {
	return f.eligible, nil
}

func (f *fakeWinRepo) CountByPrize(ctx context.Context, periodID uuid.UUID) ([]models.PrizeWinStat, error) {
	return nil, nil
}

func eligiblePool(n int) []models.Participant {
	pool := make([]models.Participant, n)
	for i := range pool {
		pool[i] = models.Participant{ID: uuid.New(), Email: uuid.NewString() + "@example.fr"}
	}
	return pool
}

func TestRunRafflePicksRequestedCount(t *testing.T) {
	prize := models.PrizeType{ID: uuid.New(), Title: "Casque audio", Priority: 1}
	winRepo := &fakeWinRepo{eligible: eligiblePool(10)}
	svc := NewRaffleService(&fakePrizeRepo{catalog: []models.PrizeType{prize}}, winRepo, nil)

	result, err := svc.RunRaffle(context.Background(), models.RaffleRequest{
		GamePeriodID: uuid.New(),
		PrizeTypeID:  prize.ID,
		WinnerCount:  3,
	})
	require.NoError(t, err)

	assert.Equal(t, "Casque audio", result.PrizeTitle)
	assert.Len(t, result.Winners, 3)
	require.Len(t, winRepo.wins, 3)
	for _, win := range winRepo.wins {
		assert.Equal(t, models.WinSourceRaffle, win.Source)
		assert.Nil(t, win.DailyDistributionID)
		assert.Nil(t, win.ReceiptID)
	}

	// no participant picked twice
	seen := map[uuid.UUID]bool{}
	for _, winner := range result.Winners {
		assert.False(t, seen[winner.ID])
		seen[winner.ID] = true
	}
}

func TestRunRaffleSmallPool(t *testing.T) {
	prize := models.PrizeType{ID: uuid.New(), Title: "Casque audio", Priority: 1}
	winRepo := &fakeWinRepo{eligible: eligiblePool(2)}
	svc := NewRaffleService(&fakePrizeRepo{catalog: []models.PrizeType{prize}}, winRepo, nil)

	result, err := svc.RunRaffle(context.Background(), models.RaffleRequest{
		GamePeriodID: uuid.New(),
		PrizeTypeID:  prize.ID,
		WinnerCount:  5,
	})
	require.NoError(t, err)
	assert.Len(t, result.Winners, 2, "pool smaller than requested count picks everyone")
}

func TestRunRaffleValidation(t *testing.T) {
	prize := models.PrizeType{ID: uuid.New(), Title: "Casque audio", Priority: 1}

	svc := NewRaffleService(&fakePrizeRepo{catalog: []models.PrizeType{prize}}, &fakeWinRepo{}, nil)

	_, err := svc.RunRaffle(context.Background(), models.RaffleRequest{
		PrizeTypeID: prize.ID,
		WinnerCount: 0,
	})
	assert.ErrorContains(t, err, "must be positive")

	_, err = svc.RunRaffle(context.Background(), models.RaffleRequest{
		PrizeTypeID: prize.ID,
		WinnerCount: 1,
	})
	assert.ErrorContains(t, err, "no eligible participants")

	_, err = svc.RunRaffle(context.Background(), models.RaffleRequest{
		PrizeTypeID: uuid.New(),
		WinnerCount: 1,
	})
	assert.ErrorContains(t, err, "prize type not found")
}
