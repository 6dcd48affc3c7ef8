package models

import (
	"time"

	"github.com/google/uuid"
)

type WinSource string

const (
	WinSourceScratch WinSource = "scratch"
	WinSourceRaffle  WinSource = "raffle"
)

// Win records one prize unit handed to a participant, either by the scratch
// draw or by an admin raffle ("tirage au sort").
type Win struct {
	ID                  uuid.UUID  `json:"id" db:"id"`
	ParticipantID       uuid.UUID  `json:"participant_id" db:"participant_id"`
	GamePeriodID        uuid.UUID  `json:"game_period_id" db:"game_period_id"`
	PrizeTypeID         uuid.UUID  `json:"prize_type_id" db:"prize_type_id"`
	DailyDistributionID *uuid.UUID `json:"daily_distribution_id" db:"daily_distribution_id"`
	ReceiptID           *uuid.UUID `json:"receipt_id" db:"receipt_id"`
	Source              WinSource  `json:"source" db:"source"`
	WonAt               time.Time  `json:"won_at" db:"won_at"`
}

// WinnerRow is a win joined to its participant and lot, as exports and the
// admin winners table read it.
type WinnerRow struct {
	WinID       uuid.UUID `json:"win_id" db:"win_id"`
	FirstName   string    `json:"first_name" db:"first_name"`
	LastName    string    `json:"last_name" db:"last_name"`
	Email       string    `json:"email" db:"email"`
	PhoneNumber string    `json:"phone_number" db:"phone_number"`
	PrizeTitle  string    `json:"prize_title" db:"prize_title"`
	Source      WinSource `json:"source" db:"source"`
	WonAt       time.Time `json:"won_at" db:"won_at"`
}
