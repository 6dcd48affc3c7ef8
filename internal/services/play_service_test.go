package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goldenticket-service/internal/models"
)

func drawableRow(prizeTitle string, available, distributed int, distributionTime *string) models.DrawableDistribution {
	return models.DrawableDistribution{
		DailyDistribution: models.DailyDistribution{
			ID:                  uuid.New(),
			QuantityAvailable:   available,
			QuantityDistributed: distributed,
			DistributionTime:    distributionTime,
		},
		PrizeTypeID: uuid.New(),
		PrizeTitle:  prizeTitle,
	}
}

func newDrawUnderTest(rows []models.DrawableDistribution) (*PlayService, *fakeAllocationRepo, *fakeWinRepo) {
	allocRepo := &fakeAllocationRepo{drawable: rows, claimDenied: map[uuid.UUID]bool{}}
	winRepo := &fakeWinRepo{}
	svc := NewPlayService(nil, nil, nil, allocRepo, winRepo, nil, nil)
	return svc, allocRepo, winRepo
}

func TestDrawClaimsFirstAvailableRow(t *testing.T) {
	noon := time.Date(2026, 9, 15, 12, 0, 0, 0, time.UTC)
	exhausted := drawableRow("Ticket d'or", 5, 5, nil)
	open := drawableRow("Menu offert", 100, 12, nil)
	svc, allocRepo, winRepo := newDrawUnderTest([]models.DrawableDistribution{exhausted, open})

	participantID, periodID, receiptID := uuid.New(), uuid.New(), uuid.New()
	win, title, err := svc.draw(context.Background(), participantID, periodID, receiptID, noon)
	require.NoError(t, err)
	require.NotNil(t, win)

	assert.Equal(t, "Menu offert", title)
	assert.Equal(t, open.PrizeTypeID, win.PrizeTypeID)
	require.NotNil(t, win.DailyDistributionID)
	assert.Equal(t, open.ID, *win.DailyDistributionID)
	require.NotNil(t, win.ReceiptID)
	assert.Equal(t, receiptID, *win.ReceiptID)
	assert.Equal(t, models.WinSourceScratch, win.Source)

	// the exhausted row is never claimed against
	assert.Equal(t, []uuid.UUID{open.ID}, allocRepo.claimed)
	require.Len(t, winRepo.wins, 1)
}

func TestDrawHoldsBackFixedTimeLot(t *testing.T) {
	noon := time.Date(2026, 9, 15, 12, 0, 0, 0, time.UTC)
	evening := "18:00"
	held := drawableRow("Ticket d'or", 1, 0, &evening)
	open := drawableRow("Boisson offerte", 50, 0, nil)
	svc, allocRepo, _ := newDrawUnderTest([]models.DrawableDistribution{held, open})

	win, title, err := svc.draw(context.Background(), uuid.New(), uuid.New(), uuid.New(), noon)
	require.NoError(t, err)
	require.NotNil(t, win)
	assert.Equal(t, "Boisson offerte", title)
	assert.Equal(t, []uuid.UUID{open.ID}, allocRepo.claimed)

	// past the release time the held lot wins first
	evening7pm := time.Date(2026, 9, 15, 19, 0, 0, 0, time.UTC)
	svc, allocRepo, _ = newDrawUnderTest([]models.DrawableDistribution{held, open})
	win, title, err = svc.draw(context.Background(), uuid.New(), uuid.New(), uuid.New(), evening7pm)
	require.NoError(t, err)
	require.NotNil(t, win)
	assert.Equal(t, "Ticket d'or", title)
	assert.Equal(t, []uuid.UUID{held.ID}, allocRepo.claimed)
}

func TestDrawContinuesPastLostClaim(t *testing.T) {
	noon := time.Date(2026, 9, 15, 12, 0, 0, 0, time.UTC)
	contested := drawableRow("Casque audio", 10, 9, nil)
	open := drawableRow("Menu offert", 100, 0, nil)
	svc, allocRepo, winRepo := newDrawUnderTest([]models.DrawableDistribution{contested, open})
	allocRepo.claimDenied[contested.ID] = true

	win, title, err := svc.draw(context.Background(), uuid.New(), uuid.New(), uuid.New(), noon)
	require.NoError(t, err)
	require.NotNil(t, win)
	assert.Equal(t, "Menu offert", title)
	assert.Equal(t, []uuid.UUID{open.ID}, allocRepo.claimed)
	require.Len(t, winRepo.wins, 1)
}

func TestDrawLosesWhenNothingClaimable(t *testing.T) {
	noon := time.Date(2026, 9, 15, 12, 0, 0, 0, time.UTC)
	exhausted := drawableRow("Menu offert", 20, 20, nil)
	evening := "20:00"
	held := drawableRow("Ticket d'or", 1, 0, &evening)
	svc, allocRepo, winRepo := newDrawUnderTest([]models.DrawableDistribution{exhausted, held})

	win, title, err := svc.draw(context.Background(), uuid.New(), uuid.New(), uuid.New(), noon)
	require.NoError(t, err)
	assert.Nil(t, win, "losing is a normal outcome")
	assert.Empty(t, title)
	assert.Empty(t, allocRepo.claimed)
	assert.Empty(t, winRepo.wins)
}

func TestReleaseTimePassed(t *testing.T) {
	noon := time.Date(2026, 9, 15, 12, 0, 0, 0, time.UTC)

	assert.True(t, releaseTimePassed("11:59", noon))
	assert.True(t, releaseTimePassed("12:00", noon), "the release minute itself counts as released")
	assert.False(t, releaseTimePassed("12:01", noon))
	assert.False(t, releaseTimePassed("18:00", noon))

	// garbage never blocks the lot
	assert.True(t, releaseTimePassed("6pm", noon))
}
