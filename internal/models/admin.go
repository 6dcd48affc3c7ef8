package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type AdminAccount struct {
	ID           string     `json:"id" db:"id"`
	Email        string     `json:"email" db:"email"`
	PasswordHash string     `json:"-" db:"password_hash"`
	IsActive     bool       `json:"is_active" db:"is_active"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	LastLogin    *time.Time `json:"last_login" db:"last_login"`
}

// AdminSession lives in Redis under session:<id> with a TTL.
type AdminSession struct {
	ID         string    `json:"id"`
	AdminID    string    `json:"admin_id"`
	TokenHash  string    `json:"token_hash"`
	DeviceInfo *string   `json:"device_info"`
	IPAddress  *string   `json:"ip_address"`
	ExpiresAt  time.Time `json:"expires_at"`
	CreatedAt  time.Time `json:"created_at"`
	IsActive   bool      `json:"is_active"`
}

type Claims struct {
	jwt.RegisteredClaims
	Id      string
	AdminID string
	Email   string
}
