package models

import (
	"time"

	"github.com/google/uuid"
)

// GamePeriod is the date range ("periode de jeu") during which purchases and
// plays are valid. date_start <= date_end, both inclusive.
type GamePeriod struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Title     string    `json:"title" db:"title"`
	DateStart time.Time `json:"date_start" db:"date_start"`
	DateEnd   time.Time `json:"date_end" db:"date_end"`
	IsActive  bool      `json:"is_active" db:"is_active"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// PrizeType is a prize ("lot") offered in the game. Priority orders the draw
// process (lower = drawn first); it does not reorder allocation. When both
// FixedDistributionDate and FixedDistributionTime are set the whole requested
// quantity is scheduled on that single day, bypassing the daily cap.
type PrizeType struct {
	ID                    uuid.UUID  `json:"id" db:"id"`
	Title                 string     `json:"title" db:"title"`
	Description           *string    `json:"description" db:"description"`
	DefaultQuantity       int        `json:"default_quantity" db:"default_quantity"`
	Priority              int        `json:"priority" db:"priority"`
	FixedDistributionDate *time.Time `json:"fixed_distribution_date" db:"fixed_distribution_date"`
	FixedDistributionTime *string    `json:"fixed_distribution_time" db:"fixed_distribution_time"`
	CreatedAt             time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt             time.Time  `json:"updated_at" db:"updated_at"`
}

// HasFixedDistribution reports whether this lot must land on one fixed day.
// Both fields are required, matching the single both-present condition the
// allocation run checks.
func (p *PrizeType) HasFixedDistribution() bool {
	return p.FixedDistributionDate != nil && p.FixedDistributionTime != nil
}

// PeriodPrizeAllocation ("periode_jeu_lot") records the total quantity
// requested for one (game period, prize type) pair in an allocation run.
type PeriodPrizeAllocation struct {
	ID            uuid.UUID `json:"id" db:"id"`
	GamePeriodID  uuid.UUID `json:"game_period_id" db:"game_period_id"`
	PrizeTypeID   uuid.UUID `json:"prize_type_id" db:"prize_type_id"`
	QuantityTotal int       `json:"quantity_total" db:"quantity_total"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}

// DailyDistribution ("repartition_lot_jour") schedules part of an allocation
// on one calendar day. QuantityDistributed is only ever incremented by the
// draw process; the allocator inserts rows with it at zero.
type DailyDistribution struct {
	ID                      uuid.UUID `json:"id" db:"id"`
	PeriodPrizeAllocationID uuid.UUID `json:"period_prize_allocation_id" db:"period_prize_allocation_id"`
	Day                     time.Time `json:"day" db:"day"`
	QuantityAvailable       int       `json:"quantity_available" db:"quantity_available"`
	QuantityDistributed     int       `json:"quantity_distributed" db:"quantity_distributed"`
	DistributionTime        *string   `json:"distribution_time" db:"distribution_time"`
	CreatedAt               time.Time `json:"created_at" db:"created_at"`
}

// DrawableDistribution is a daily_distribution row joined to its lot, as the
// draw process reads it.
type DrawableDistribution struct {
	DailyDistribution
	GamePeriodID uuid.UUID `json:"game_period_id" db:"game_period_id"`
	PrizeTypeID  uuid.UUID `json:"prize_type_id" db:"prize_type_id"`
	PrizeTitle   string    `json:"prize_title" db:"prize_title"`
	Priority     int       `json:"priority" db:"priority"`
}

// AllocationRequest is one resolved entry of an allocation run: the open
// title-keyed request map is normalized into this typed, catalog-ordered form
// before the allocator runs.
type AllocationRequest struct {
	PrizeTypeID uuid.UUID `json:"prize_type_id"`
	Quantity    int       `json:"quantity"`
}
