package models

import "github.com/google/uuid"

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterParticipantRequest struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
	OptIn       bool   `json:"opt_in"`
}

type PrizeTypeRequest struct {
	Title                 string  `json:"title"`
	Description           *string `json:"description"`
	DefaultQuantity       int     `json:"default_quantity"`
	Priority              int     `json:"priority"`
	FixedDistributionDate *string `json:"fixed_distribution_date"` // YYYY-MM-DD
	FixedDistributionTime *string `json:"fixed_distribution_time"` // HH:MM
}

type GamePeriodRequest struct {
	Title     string `json:"title"`
	DateStart string `json:"date_start"` // YYYY-MM-DD
	DateEnd   string `json:"date_end"`   // YYYY-MM-DD
	IsActive  bool   `json:"is_active"`
}

type RestaurantRequest struct {
	Name     string  `json:"name"`
	Address  *string `json:"address"`
	City     *string `json:"city"`
	IsActive bool    `json:"is_active"`
}

type RejectReceiptRequest struct {
	Reason string `json:"reason"`
}

type RaffleRequest struct {
	GamePeriodID uuid.UUID `json:"game_period_id"`
	PrizeTypeID  uuid.UUID `json:"prize_type_id"`
	WinnerCount  int       `json:"winner_count"`
}
