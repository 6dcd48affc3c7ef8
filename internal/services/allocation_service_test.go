package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goldenticket-service/internal/models"
)

type fakePeriodRepo struct {
	periods map[uuid.UUID]*models.GamePeriod
}

func (f *fakePeriodRepo) Create(ctx context.Context, period *models.GamePeriod) error { return nil }
func (f *fakePeriodRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.GamePeriod, error) {
	period, ok := f.periods[id]
	if !ok {
		return nil, fmt.Errorf("failed to get game period by id: no rows")
	}
	return period, nil
}
func (f *fakePeriodRepo) GetAll(ctx context.Context) ([]models.GamePeriod, error) { return nil, nil }
func (f *fakePeriodRepo) GetActiveForDate(ctx context.Context, day time.Time) (*models.GamePeriod, error) {
	return nil, nil
}
func (f *fakePeriodRepo) Update(ctx context.Context, period *models.GamePeriod) error { return nil }
func (f *fakePeriodRepo) Delete(ctx context.Context, id uuid.UUID) error              { return nil }

type fakePrizeRepo struct {
	catalog []models.PrizeType
}

func (f *fakePrizeRepo) Create(ctx context.Context, prize *models.PrizeType) error { return nil }
func (f *fakePrizeRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.PrizeType, error) {
	for i := range f.catalog {
		if f.catalog[i].ID == id {
			return &f.catalog[i], nil
		}
	}
	return nil, fmt.Errorf("failed to get prize type by id: no rows")
}
func (f *fakePrizeRepo) GetAll(ctx context.Context) ([]models.PrizeType, error) {
	return f.catalog, nil
}
func (f *fakePrizeRepo) Update(ctx context.Context, prize *models.PrizeType) error { return nil }
func (f *fakePrizeRepo) Delete(ctx context.Context, id uuid.UUID) error            { return nil }

type fakeAllocationRepo struct {
	allocations   []models.PeriodPrizeAllocation
	distributions []models.DailyDistribution

	failAllocationAfter int // fail CreateAllocation once this many have succeeded; 0 disables

	drawable    []models.DrawableDistribution
	claimDenied map[uuid.UUID]bool // rows whose unit another play grabbed first
	claimed     []uuid.UUID
}

func (f *fakeAllocationRepo) CreateAllocation(ctx context.Context, alloc *models.PeriodPrizeAllocation) error {
	if f.failAllocationAfter > 0 && len(f.allocations) >= f.failAllocationAfter {
		return fmt.Errorf("failed to create period prize allocation: connection reset")
	}
	if alloc.ID == uuid.Nil {
		alloc.ID = uuid.New()
	}
	f.allocations = append(f.allocations, *alloc)
	return nil
}

func (f *fakeAllocationRepo) CreateDailyDistribution(ctx context.Context, dist *models.DailyDistribution) error {
	if dist.ID == uuid.Nil {
		dist.ID = uuid.New()
	}
	f.distributions = append(f.distributions, *dist)
	return nil
}

func (f *fakeAllocationRepo) ExistsForPeriod(ctx context.Context, periodID uuid.UUID) (bool, error) {
	for _, alloc := range f.allocations {
		if alloc.GamePeriodID == periodID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeAllocationRepo) GetDistributionsForPeriod(ctx context.Context, periodID uuid.UUID) ([]models.DailyDistribution, error) {
	return f.distributions, nil
}

func (f *fakeAllocationRepo) GetDrawableForDay(ctx context.Context, periodID uuid.UUID, day time.Time) ([]models.DrawableDistribution, error) {
	return f.drawable, nil
}

func (f *fakeAllocationRepo) ClaimUnit(ctx context.Context, distributionID uuid.UUID) (bool, error) {
	if f.claimDenied[distributionID] {
		return false, nil
	}
	f.claimed = append(f.claimed, distributionID)
	return true, nil
}

func day(value string) time.Time {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return t
}

func newTestPeriod(start, end string) *models.GamePeriod {
	return &models.GamePeriod{
		ID:        uuid.New(),
		Title:     "Rentrée 2026",
		DateStart: day(start),
		DateEnd:   day(end),
		IsActive:  true,
	}
}

func newAllocatorUnderTest(period *models.GamePeriod, catalog []models.PrizeType) (*AllocationService, *fakeAllocationRepo) {
	periodRepo := &fakePeriodRepo{periods: map[uuid.UUID]*models.GamePeriod{period.ID: period}}
	prizeRepo := &fakePrizeRepo{catalog: catalog}
	allocRepo := &fakeAllocationRepo{}
	return NewAllocationService(periodRepo, prizeRepo, allocRepo), allocRepo
}

// distByLot collects the written quantities for one allocation, in insert order.
func distByLot(repo *fakeAllocationRepo, allocID uuid.UUID) []models.DailyDistribution {
	var out []models.DailyDistribution
	for _, dist := range repo.distributions {
		if dist.PeriodPrizeAllocationID == allocID {
			out = append(out, dist)
		}
	}
	return out
}

func TestPeriodDaysInclusive(t *testing.T) {
	days := PeriodDays(day("2026-09-01"), day("2026-09-03"))
	require.Len(t, days, 3)
	assert.Equal(t, day("2026-09-01"), days[0])
	assert.Equal(t, day("2026-09-03"), days[2])

	// single-day period still yields one day
	days = PeriodDays(day("2026-09-01"), day("2026-09-01"))
	require.Len(t, days, 1)
}

func TestAllocateFillsDaysChronologically(t *testing.T) {
	period := newTestPeriod("2026-09-01", "2026-09-02")
	prize := models.PrizeType{ID: uuid.New(), Title: "Menu offert", Priority: 1}
	svc, repo := newAllocatorUnderTest(period, []models.PrizeType{prize})

	err := svc.AllocatePrizes(context.Background(), period.ID,
		[]models.AllocationRequest{{PrizeTypeID: prize.ID, Quantity: 1500}})
	require.NoError(t, err)

	require.Len(t, repo.allocations, 1)
	assert.Equal(t, 1500, repo.allocations[0].QuantityTotal)

	dists := distByLot(repo, repo.allocations[0].ID)
	require.Len(t, dists, 2)
	assert.Equal(t, day("2026-09-01"), dists[0].Day)
	assert.Equal(t, 1200, dists[0].QuantityAvailable)
	assert.Equal(t, day("2026-09-02"), dists[1].Day)
	assert.Equal(t, 300, dists[1].QuantityAvailable)
	for _, dist := range dists {
		assert.Zero(t, dist.QuantityDistributed)
	}
}

func TestAllocateOverflowFallback(t *testing.T) {
	// 3000 units over 2 days: the capped pass fills both days to 1200, the
	// overflow fallback then dumps the remaining 600 on the first day.
	period := newTestPeriod("2026-09-01", "2026-09-02")
	prize := models.PrizeType{ID: uuid.New(), Title: "Boisson offerte", Priority: 1}
	svc, repo := newAllocatorUnderTest(period, []models.PrizeType{prize})

	err := svc.AllocatePrizes(context.Background(), period.ID,
		[]models.AllocationRequest{{PrizeTypeID: prize.ID, Quantity: 3000}})
	require.NoError(t, err)

	dists := distByLot(repo, repo.allocations[0].ID)
	require.Len(t, dists, 3)

	totals := map[string]int{}
	for _, dist := range dists {
		totals[dist.Day.Format("2006-01-02")] += dist.QuantityAvailable
	}
	assert.Equal(t, 1800, totals["2026-09-01"])
	assert.Equal(t, 1200, totals["2026-09-02"])
}

func TestAllocateCapSharedAcrossLots(t *testing.T) {
	period := newTestPeriod("2026-09-01", "2026-09-02")
	first := models.PrizeType{ID: uuid.New(), Title: "Casque audio", Priority: 1}
	second := models.PrizeType{ID: uuid.New(), Title: "Menu offert", Priority: 2}
	svc, repo := newAllocatorUnderTest(period, []models.PrizeType{first, second})

	err := svc.AllocatePrizes(context.Background(), period.ID, []models.AllocationRequest{
		{PrizeTypeID: first.ID, Quantity: 800},
		{PrizeTypeID: second.ID, Quantity: 800},
	})
	require.NoError(t, err)

	require.Len(t, repo.allocations, 2)
	assert.Equal(t, first.ID, repo.allocations[0].PrizeTypeID, "catalog order must be preserved")
	assert.Equal(t, second.ID, repo.allocations[1].PrizeTypeID)

	firstDists := distByLot(repo, repo.allocations[0].ID)
	require.Len(t, firstDists, 1)
	assert.Equal(t, 800, firstDists[0].QuantityAvailable)

	// second lot only finds 400 units of day-one capacity left
	secondDists := distByLot(repo, repo.allocations[1].ID)
	require.Len(t, secondDists, 2)
	assert.Equal(t, day("2026-09-01"), secondDists[0].Day)
	assert.Equal(t, 400, secondDists[0].QuantityAvailable)
	assert.Equal(t, day("2026-09-02"), secondDists[1].Day)
	assert.Equal(t, 400, secondDists[1].QuantityAvailable)
}

func TestAllocateFixedDateBypassesCap(t *testing.T) {
	period := newTestPeriod("2026-09-01", "2026-09-03")
	fixedDate := day("2026-09-02")
	fixedTime := "18:00"
	golden := models.PrizeType{
		ID:                    uuid.New(),
		Title:                 "Ticket d'or",
		Priority:              1,
		FixedDistributionDate: &fixedDate,
		FixedDistributionTime: &fixedTime,
	}
	filler := models.PrizeType{ID: uuid.New(), Title: "Menu offert", Priority: 2}
	svc, repo := newAllocatorUnderTest(period, []models.PrizeType{golden, filler})

	err := svc.AllocatePrizes(context.Background(), period.ID, []models.AllocationRequest{
		{PrizeTypeID: golden.ID, Quantity: 2000},
		{PrizeTypeID: filler.ID, Quantity: 1500},
	})
	require.NoError(t, err)

	goldenDists := distByLot(repo, repo.allocations[0].ID)
	require.Len(t, goldenDists, 1, "fixed-date lot must land whole on its day")
	assert.Equal(t, fixedDate, goldenDists[0].Day)
	assert.Equal(t, 2000, goldenDists[0].QuantityAvailable)
	require.NotNil(t, goldenDists[0].DistributionTime)
	assert.Equal(t, "18:00", *goldenDists[0].DistributionTime)

	// the fixed lot filled Sep 2 past the cap, so the capped lot skips it
	fillerDists := distByLot(repo, repo.allocations[1].ID)
	require.Len(t, fillerDists, 2)
	assert.Equal(t, day("2026-09-01"), fillerDists[0].Day)
	assert.Equal(t, 1200, fillerDists[0].QuantityAvailable)
	assert.Equal(t, day("2026-09-03"), fillerDists[1].Day)
	assert.Equal(t, 300, fillerDists[1].QuantityAvailable)
}

func TestAllocateFixedDateMissingTimeUsesCappedPath(t *testing.T) {
	period := newTestPeriod("2026-09-01", "2026-09-01")
	fixedDate := day("2026-09-01")
	prize := models.PrizeType{
		ID:                    uuid.New(),
		Title:                 "Ticket d'or",
		Priority:              1,
		FixedDistributionDate: &fixedDate,
		// no FixedDistributionTime: not a fixed-date lot
	}
	svc, repo := newAllocatorUnderTest(period, []models.PrizeType{prize})

	err := svc.AllocatePrizes(context.Background(), period.ID,
		[]models.AllocationRequest{{PrizeTypeID: prize.ID, Quantity: 100}})
	require.NoError(t, err)

	dists := distByLot(repo, repo.allocations[0].ID)
	require.Len(t, dists, 1)
	assert.Nil(t, dists[0].DistributionTime)
}

func TestAllocateSkipsZeroAndUnknownQuantities(t *testing.T) {
	period := newTestPeriod("2026-09-01", "2026-09-02")
	wanted := models.PrizeType{ID: uuid.New(), Title: "Menu offert", Priority: 1}
	skipped := models.PrizeType{ID: uuid.New(), Title: "Casque audio", Priority: 2}
	absent := models.PrizeType{ID: uuid.New(), Title: "Boisson offerte", Priority: 3}
	svc, repo := newAllocatorUnderTest(period, []models.PrizeType{wanted, skipped, absent})

	err := svc.AllocatePrizes(context.Background(), period.ID, []models.AllocationRequest{
		{PrizeTypeID: wanted.ID, Quantity: 10},
		{PrizeTypeID: skipped.ID, Quantity: 0},
	})
	require.NoError(t, err)

	require.Len(t, repo.allocations, 1)
	assert.Equal(t, wanted.ID, repo.allocations[0].PrizeTypeID)
}

func TestAllocateRerunDuplicatesRows(t *testing.T) {
	// The run itself never dedups; re-run protection lives at the HTTP layer.
	period := newTestPeriod("2026-09-01", "2026-09-02")
	prize := models.PrizeType{ID: uuid.New(), Title: "Menu offert", Priority: 1}
	svc, repo := newAllocatorUnderTest(period, []models.PrizeType{prize})

	requests := []models.AllocationRequest{{PrizeTypeID: prize.ID, Quantity: 100}}
	require.NoError(t, svc.AllocatePrizes(context.Background(), period.ID, requests))
	require.NoError(t, svc.AllocatePrizes(context.Background(), period.ID, requests))

	assert.Len(t, repo.allocations, 2)
	assert.Len(t, repo.distributions, 2)

	exists, err := svc.HasAllocations(context.Background(), period.ID)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestAllocateFailFastKeepsEarlierRows(t *testing.T) {
	period := newTestPeriod("2026-09-01", "2026-09-02")
	first := models.PrizeType{ID: uuid.New(), Title: "Menu offert", Priority: 1}
	second := models.PrizeType{ID: uuid.New(), Title: "Casque audio", Priority: 2}

	periodRepo := &fakePeriodRepo{periods: map[uuid.UUID]*models.GamePeriod{period.ID: period}}
	prizeRepo := &fakePrizeRepo{catalog: []models.PrizeType{first, second}}
	allocRepo := &fakeAllocationRepo{failAllocationAfter: 1}
	svc := NewAllocationService(periodRepo, prizeRepo, allocRepo)

	err := svc.AllocatePrizes(context.Background(), period.ID, []models.AllocationRequest{
		{PrizeTypeID: first.ID, Quantity: 50},
		{PrizeTypeID: second.ID, Quantity: 50},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"Casque audio"`)

	// no rollback: the first lot's rows stay in place
	assert.Len(t, allocRepo.allocations, 1)
	assert.Len(t, allocRepo.distributions, 1)
}

func TestAllocateUnknownPeriod(t *testing.T) {
	prize := models.PrizeType{ID: uuid.New(), Title: "Menu offert", Priority: 1}
	svc, _ := newAllocatorUnderTest(newTestPeriod("2026-09-01", "2026-09-02"), []models.PrizeType{prize})

	err := svc.AllocatePrizes(context.Background(), uuid.New(),
		[]models.AllocationRequest{{PrizeTypeID: prize.ID, Quantity: 10}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "game period not found")
}

func TestResolveRequests(t *testing.T) {
	first := models.PrizeType{ID: uuid.New(), Title: "Menu Offert", DefaultQuantity: 500, Priority: 1}
	second := models.PrizeType{ID: uuid.New(), Title: "Casque audio", DefaultQuantity: 20, Priority: 2}
	catalog := []models.PrizeType{first, second}

	requests := ResolveRequests(catalog, map[string]int{
		"menu offert": 750, // matches case-insensitively
	})

	require.Len(t, requests, 2)
	assert.Equal(t, first.ID, requests[0].PrizeTypeID)
	assert.Equal(t, 750, requests[0].Quantity)
	assert.Equal(t, second.ID, requests[1].PrizeTypeID)
	assert.Equal(t, 20, requests[1].Quantity, "absent lots fall back to their default quantity")
}
