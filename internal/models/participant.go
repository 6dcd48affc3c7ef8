package models

import (
	"time"

	"github.com/google/uuid"

	"goldenticket-service/pkg/utils"
)

type Participant struct {
	ID          uuid.UUID `json:"id" db:"id"`
	FirstName   string    `json:"first_name" db:"first_name"`
	LastName    string    `json:"last_name" db:"last_name"`
	Email       string    `json:"email" db:"email"`
	PhoneNumber string    `json:"phone_number" db:"phone_number"`
	OptIn       bool      `json:"opt_in" db:"opt_in"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

type ReceiptStatus string

const (
	ReceiptStatusPending   ReceiptStatus = "pending"
	ReceiptStatusValidated ReceiptStatus = "validated"
	ReceiptStatusRejected  ReceiptStatus = "rejected"
)

// Receipt is a submitted purchase receipt photo. OCRPayload holds the raw
// field map returned by the vision model.
type Receipt struct {
	ID             uuid.UUID     `json:"id" db:"id"`
	ParticipantID  uuid.UUID     `json:"participant_id" db:"participant_id"`
	GamePeriodID   *uuid.UUID    `json:"game_period_id" db:"game_period_id"`
	RestaurantID   *uuid.UUID    `json:"restaurant_id" db:"restaurant_id"`
	PhotoObject    string        `json:"photo_object" db:"photo_object"`
	PhotoSHA256    string        `json:"photo_sha256" db:"photo_sha256"`
	OCRPayload     utils.JSONMap `json:"ocr_payload" db:"ocr_payload"`
	RestaurantName *string       `json:"restaurant_name" db:"restaurant_name"`
	PurchaseDate   *time.Time    `json:"purchase_date" db:"purchase_date"`
	TotalAmount    *float64      `json:"total_amount" db:"total_amount"`
	Status         ReceiptStatus `json:"status" db:"status"`
	RejectReason   *string       `json:"reject_reason" db:"reject_reason"`
	Played         bool          `json:"played" db:"played"`
	CreatedAt      time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at" db:"updated_at"`
}

type Restaurant struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Address   *string   `json:"address" db:"address"`
	City      *string   `json:"city" db:"city"`
	IsActive  bool      `json:"is_active" db:"is_active"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
