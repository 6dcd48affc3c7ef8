package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goldenticket-service/internal/models"
)

func strPtr(s string) *string { return &s }

func TestPeriodFromRequestValidation(t *testing.T) {
	_, err := periodFromRequest(models.GamePeriodRequest{Title: "", DateStart: "2026-09-01", DateEnd: "2026-09-30"})
	assert.ErrorContains(t, err, "title is required")

	_, err = periodFromRequest(models.GamePeriodRequest{Title: "Rentrée", DateStart: "01/09/2026", DateEnd: "2026-09-30"})
	assert.ErrorContains(t, err, "invalid date_start")

	_, err = periodFromRequest(models.GamePeriodRequest{Title: "Rentrée", DateStart: "2026-09-30", DateEnd: "2026-09-01"})
	assert.ErrorContains(t, err, "must not be before")

	period, err := periodFromRequest(models.GamePeriodRequest{Title: "  Rentrée  ", DateStart: "2026-09-01", DateEnd: "2026-09-30", IsActive: true})
	require.NoError(t, err)
	assert.Equal(t, "Rentrée", period.Title)
	assert.Equal(t, time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), period.DateStart)
	assert.True(t, period.IsActive)

	// single-day period is valid
	_, err = periodFromRequest(models.GamePeriodRequest{Title: "Flash", DateStart: "2026-09-01", DateEnd: "2026-09-01"})
	assert.NoError(t, err)
}

func TestPrizeFromRequestFixedDistribution(t *testing.T) {
	// date without time is refused, and vice versa
	_, err := prizeFromRequest(models.PrizeTypeRequest{
		Title:                 "Ticket d'or",
		FixedDistributionDate: strPtr("2026-09-15"),
	})
	assert.ErrorContains(t, err, "must be set together")

	_, err = prizeFromRequest(models.PrizeTypeRequest{
		Title:                 "Ticket d'or",
		FixedDistributionTime: strPtr("18:00"),
	})
	assert.ErrorContains(t, err, "must be set together")

	_, err = prizeFromRequest(models.PrizeTypeRequest{
		Title:                 "Ticket d'or",
		FixedDistributionDate: strPtr("15/09/2026"),
		FixedDistributionTime: strPtr("18:00"),
	})
	assert.ErrorContains(t, err, "invalid fixed_distribution_date")

	_, err = prizeFromRequest(models.PrizeTypeRequest{
		Title:                 "Ticket d'or",
		FixedDistributionDate: strPtr("2026-09-15"),
		FixedDistributionTime: strPtr("6pm"),
	})
	assert.ErrorContains(t, err, "invalid fixed_distribution_time")

	prize, err := prizeFromRequest(models.PrizeTypeRequest{
		Title:                 "Ticket d'or",
		DefaultQuantity:       3,
		Priority:              1,
		FixedDistributionDate: strPtr("2026-09-15"),
		FixedDistributionTime: strPtr("18:00"),
	})
	require.NoError(t, err)
	assert.True(t, prize.HasFixedDistribution())
	assert.Equal(t, time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC), *prize.FixedDistributionDate)
}

func TestPrizeFromRequestQuantity(t *testing.T) {
	_, err := prizeFromRequest(models.PrizeTypeRequest{Title: "Menu offert", DefaultQuantity: -1})
	assert.ErrorContains(t, err, "must not be negative")

	prize, err := prizeFromRequest(models.PrizeTypeRequest{Title: "Menu offert", DefaultQuantity: 0})
	require.NoError(t, err)
	assert.False(t, prize.HasFixedDistribution())
}
