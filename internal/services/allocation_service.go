package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"goldenticket-service/internal/models"
	"goldenticket-service/internal/repository"
	"goldenticket-service/pkg/utils"
)

// DailyDistributionCap is the maximum number of prize units scheduled on one
// calendar day by the capped rotation. The overflow fallback deliberately
// ignores it: over-allocating a day beats silently dropping prizes.
const DailyDistributionCap = 1200

// DayCounter accumulates the units already scheduled per calendar day across
// one allocation run, all lots included.
type DayCounter struct {
	counts map[string]int
}

func NewDayCounter() *DayCounter {
	return &DayCounter{counts: make(map[string]int)}
}

func (c *DayCounter) Add(day time.Time, units int) {
	c.counts[dayKey(day)] += units
}

func (c *DayCounter) Used(day time.Time) int {
	return c.counts[dayKey(day)]
}

func dayKey(day time.Time) string {
	return day.Format("2006-01-02")
}

// PeriodDays materializes the inclusive day range [start, end] as calendar
// days. Callers guarantee start <= end.
func PeriodDays(start, end time.Time) []time.Time {
	startDay := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	endDay := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)

	days := []time.Time{}
	for d := startDay; !d.After(endDay); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// plannedDay is one daily_distribution row the allocator is about to write.
type plannedDay struct {
	Day              time.Time
	Quantity         int
	DistributionTime *string
}

// planLot places one lot's requested quantity across the period days.
//
// Fixed-date lots land whole on their configured day, cap unchecked; that day
// may not even lie inside the period (kept as-is, unvalidated). Everything
// else goes through the capped rotation: one chronological pass placing
// min(remaining, cap - used) per day, skipping full days. Whatever is still
// left after that pass goes through the overflow fallback, a second pass that
// ignores the cap entirely.
func planLot(prize models.PrizeType, quantity int, days []time.Time, counter *DayCounter) []plannedDay {
	if prize.HasFixedDistribution() {
		day := *prize.FixedDistributionDate
		day = time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
		counter.Add(day, quantity)
		return []plannedDay{{
			Day:              day,
			Quantity:         quantity,
			DistributionTime: prize.FixedDistributionTime,
		}}
	}

	planned := []plannedDay{}
	remaining := quantity

	// Capped rotation: chronological single pass.
	for _, day := range days {
		if remaining <= 0 {
			break
		}
		capacity := DailyDistributionCap - counter.Used(day)
		if capacity <= 0 {
			continue // day is full, skip it
		}
		units := remaining
		if capacity < units {
			units = capacity
		}
		counter.Add(day, units)
		planned = append(planned, plannedDay{Day: day, Quantity: units})
		remaining -= units
	}

	// Overflow fallback: total supply exceeds the period's capped capacity.
	if remaining > 0 {
		log.Printf("lot %q exceeds capped capacity, overflow fallback places %d remaining units", prize.Title, remaining)
		for _, day := range days {
			if remaining <= 0 {
				break
			}
			units := remaining
			if quantity < units {
				units = quantity
			}
			counter.Add(day, units)
			planned = append(planned, plannedDay{Day: day, Quantity: units})
			remaining -= units
		}
	}

	return planned
}

// ResolveRequests normalizes the open title-keyed request map into the typed,
// catalog-ordered form the allocator consumes. Keys compare lowercased and
// trimmed; a lot absent from the map falls back to its default quantity.
// Entries resolving to a quantity <= 0 are kept here and skipped by the run.
func ResolveRequests(catalog []models.PrizeType, raw map[string]int) []models.AllocationRequest {
	requests := make([]models.AllocationRequest, 0, len(catalog))
	for _, prize := range catalog {
		quantity, ok := raw[utils.NormalizeTitle(prize.Title)]
		if !ok {
			quantity = prize.DefaultQuantity
		}
		requests = append(requests, models.AllocationRequest{
			PrizeTypeID: prize.ID,
			Quantity:    quantity,
		})
	}
	return requests
}

// AllocationService runs the day-by-day prize distribution for a game period.
type AllocationService struct {
	periodRepo repository.GamePeriodRepository
	prizeRepo  repository.PrizeTypeRepository
	allocRepo  repository.AllocationRepository
}

func NewAllocationService(
	periodRepo repository.GamePeriodRepository,
	prizeRepo repository.PrizeTypeRepository,
	allocRepo repository.AllocationRepository,
) *AllocationService {
	return &AllocationService{
		periodRepo: periodRepo,
		prizeRepo:  prizeRepo,
		allocRepo:  allocRepo,
	}
}

// AllocatePrizes creates one period_prize_allocation per requested lot and
// its daily_distribution rows, processing lots strictly in catalog order and
// days in chronological order.
//
// Persistence is fail-fast without rollback: an insert failure aborts the run
// immediately and rows written for earlier lots stay in place. Re-running for
// the same period therefore duplicates rows; callers guard against re-runs
// before invoking this.
func (s *AllocationService) AllocatePrizes(ctx context.Context, periodID uuid.UUID, requests []models.AllocationRequest) error {
	period, err := s.periodRepo.GetByID(ctx, periodID)
	if err != nil {
		return fmt.Errorf("game period not found: %w", err)
	}

	catalog, err := s.prizeRepo.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to load prize catalog: %w", err)
	}

	quantities := make(map[uuid.UUID]int, len(requests))
	for _, req := range requests {
		quantities[req.PrizeTypeID] = req.Quantity
	}

	days := PeriodDays(period.DateStart, period.DateEnd)
	counter := NewDayCounter()

	for _, prize := range catalog {
		quantity, ok := quantities[prize.ID]
		if !ok || quantity <= 0 {
			continue
		}

		alloc := &models.PeriodPrizeAllocation{
			GamePeriodID:  periodID,
			PrizeTypeID:   prize.ID,
			QuantityTotal: quantity,
		}
		if err := s.allocRepo.CreateAllocation(ctx, alloc); err != nil {
			return fmt.Errorf("failed to create allocation for lot %q: %w", prize.Title, err)
		}

		for _, planned := range planLot(prize, quantity, days, counter) {
			dist := &models.DailyDistribution{
				PeriodPrizeAllocationID: alloc.ID,
				Day:                     planned.Day,
				QuantityAvailable:       planned.Quantity,
				QuantityDistributed:     0,
				DistributionTime:        planned.DistributionTime,
			}
			if err := s.allocRepo.CreateDailyDistribution(ctx, dist); err != nil {
				return fmt.Errorf("failed to create daily distribution for lot %q on %s: %w",
					prize.Title, dayKey(planned.Day), err)
			}
		}

		log.Printf("allocated %d units of lot %q over period %s", quantity, prize.Title, periodID)
	}

	return nil
}

// HasAllocations reports whether an allocation run already wrote rows for the
// period. The HTTP layer uses it to reject accidental re-runs.
func (s *AllocationService) HasAllocations(ctx context.Context, periodID uuid.UUID) (bool, error) {
	return s.allocRepo.ExistsForPeriod(ctx, periodID)
}

// GetDistributions returns the period's daily distribution rows for the
// admin view.
func (s *AllocationService) GetDistributions(ctx context.Context, periodID uuid.UUID) ([]models.DailyDistribution, error) {
	return s.allocRepo.GetDistributionsForPeriod(ctx, periodID)
}
