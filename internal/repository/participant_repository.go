package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"goldenticket-service/internal/models"
)

type ParticipantRepository interface {
	Create(ctx context.Context, participant *models.Participant) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Participant, error)
	GetByEmail(ctx context.Context, email string) (*models.Participant, error)
	GetAll(ctx context.Context, limit, offset int) ([]models.Participant, error)
	Count(ctx context.Context) (int, error)
}

type participantRepository struct {
	db *sqlx.DB
}

func NewParticipantRepository(db *sqlx.DB) ParticipantRepository {
	return &participantRepository{db: db}
}

func (r *participantRepository) Create(ctx context.Context, participant *models.Participant) error {
	if participant.ID == uuid.Nil {
		participant.ID = uuid.New()
	}
	if participant.CreatedAt.IsZero() {
		participant.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO participant (id, first_name, last_name, email, phone_number, opt_in, created_at)
		VALUES (:id, :first_name, :last_name, :email, :phone_number, :opt_in, :created_at)`

	_, err := r.db.NamedExecContext(ctx, query, participant)
	if err != nil {
		return fmt.Errorf("failed to create participant: %w", err)
	}
	return nil
}

func (r *participantRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Participant, error) {
	var participant models.Participant
	query := `
		SELECT id, first_name, last_name, email, phone_number, opt_in, created_at
		FROM participant
		WHERE id = $1
	`

	err := r.db.GetContext(ctx, &participant, query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get participant by id: %w", err)
	}

	return &participant, nil
}

// GetByEmail returns (nil, nil) when no participant has that email.
func (r *participantRepository) GetByEmail(ctx context.Context, email string) (*models.Participant, error) {
	var participant models.Participant
	query := `
		SELECT id, first_name, last_name, email, phone_number, opt_in, created_at
		FROM participant
		WHERE email = $1
	`

	err := r.db.GetContext(ctx, &participant, query, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get participant by email: %w", err)
	}

	return &participant, nil
}

func (r *participantRepository) GetAll(ctx context.Context, limit, offset int) ([]models.Participant, error) {
	var participants []models.Participant
	query := `
		SELECT id, first_name, last_name, email, phone_number, opt_in, created_at
		FROM participant
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	err := r.db.SelectContext(ctx, &participants, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to get participants: %w", err)
	}

	return participants, nil
}

func (r *participantRepository) Count(ctx context.Context) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM participant`

	err := r.db.GetContext(ctx, &count, query)
	if err != nil {
		return 0, fmt.Errorf("failed to count participants: %w", err)
	}

	return count, nil
}
