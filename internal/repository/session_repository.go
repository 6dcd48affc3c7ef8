package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"goldenticket-service/internal/models"
)

// SessionRepository handles admin session Redis operations
type SessionRepository interface {
	CreateSession(ctx context.Context, session *models.AdminSession) error
	GetSession(ctx context.Context, sessionID string) (*models.AdminSession, error)
	DeleteSession(ctx context.Context, sessionID string) error
	GetSessionByTokenHash(ctx context.Context, tokenHash string) (*models.AdminSession, error)
}

type sessionRepository struct {
	client     *redis.Client
	expiration time.Duration
}

// NewSessionRepository creates a new session repository
func NewSessionRepository(client *redis.Client) SessionRepository {
	return &sessionRepository{
		client:     client,
		expiration: 12 * time.Hour,
	}
}

func (r *sessionRepository) CreateSession(ctx context.Context, session *models.AdminSession) error {
	if session.ID == "" {
		return fmt.Errorf("session ID cannot be empty")
	}
	if session.AdminID == "" {
		return fmt.Errorf("admin ID cannot be empty")
	}

	session.ExpiresAt = time.Now().Add(r.expiration)
	session.IsActive = true

	sessionData, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	pipe := r.client.Pipeline()
	pipe.Set(ctx, r.getSessionKey(session.ID), sessionData, r.expiration)
	pipe.Set(ctx, r.getTokenKey(session.TokenHash), session.ID, r.expiration)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}

	return nil
}

func (r *sessionRepository) GetSession(ctx context.Context, sessionID string) (*models.AdminSession, error) {
	data, err := r.client.Get(ctx, r.getSessionKey(sessionID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, fmt.Errorf("session not found")
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	var session models.AdminSession
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	return &session, nil
}

func (r *sessionRepository) DeleteSession(ctx context.Context, sessionID string) error {
	session, err := r.GetSession(ctx, sessionID)
	if err != nil {
		return err
	}

	pipe := r.client.Pipeline()
	pipe.Del(ctx, r.getSessionKey(sessionID))
	pipe.Del(ctx, r.getTokenKey(session.TokenHash))
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	return nil
}

// GetSessionByTokenHash resolves the token index written at creation time.
func (r *sessionRepository) GetSessionByTokenHash(ctx context.Context, tokenHash string) (*models.AdminSession, error) {
	sessionID, err := r.client.Get(ctx, r.getTokenKey(tokenHash)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, fmt.Errorf("session not found")
		}
		return nil, fmt.Errorf("failed to resolve session token: %w", err)
	}

	return r.GetSession(ctx, sessionID)
}

func (r *sessionRepository) getSessionKey(sessionID string) string {
	return fmt.Sprintf("session:%s", sessionID)
}

func (r *sessionRepository) getTokenKey(tokenHash string) string {
	return fmt.Sprintf("session:token:%s", tokenHash)
}
