package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"goldenticket-service/internal/models"
)

type ReceiptRepository interface {
	Create(ctx context.Context, receipt *models.Receipt) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Receipt, error)
	GetAll(ctx context.Context, status *models.ReceiptStatus, limit, offset int) ([]models.Receipt, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.ReceiptStatus, rejectReason *string) error
	MarkPlayed(ctx context.Context, id uuid.UUID) (bool, error)
	ExistsBySHA256(ctx context.Context, sha string) (bool, error)
	CountByStatus(ctx context.Context) (map[models.ReceiptStatus]int, error)
}

type receiptRepository struct {
	db *sqlx.DB
}

func NewReceiptRepository(db *sqlx.DB) ReceiptRepository {
	return &receiptRepository{db: db}
}

func (r *receiptRepository) Create(ctx context.Context, receipt *models.Receipt) error {
	if receipt.ID == uuid.Nil {
		receipt.ID = uuid.New()
	}
	now := time.Now()
	if receipt.CreatedAt.IsZero() {
		receipt.CreatedAt = now
	}
	receipt.UpdatedAt = now

	query := `
		INSERT INTO receipt (
			id, participant_id, game_period_id, restaurant_id, photo_object, photo_sha256,
			ocr_payload, restaurant_name, purchase_date, total_amount, status,
			reject_reason, played, created_at, updated_at
		) VALUES (
			:id, :participant_id, :game_period_id, :restaurant_id, :photo_object, :photo_sha256,
			:ocr_payload, :restaurant_name, :purchase_date, :total_amount, :status,
			:reject_reason, :played, :created_at, :updated_at
		)`

	_, err := r.db.NamedExecContext(ctx, query, receipt)
	if err != nil {
		return fmt.Errorf("failed to create receipt: %w", err)
	}
	return nil
}

func (r *receiptRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Receipt, error) {
	var receipt models.Receipt
	query := `
		SELECT id, participant_id, game_period_id, restaurant_id, photo_object, photo_sha256,
		       ocr_payload, restaurant_name, purchase_date, total_amount, status,
		       reject_reason, played, created_at, updated_at
		FROM receipt
		WHERE id = $1
	`

	err := r.db.GetContext(ctx, &receipt, query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get receipt by id: %w", err)
	}

	return &receipt, nil
}

func (r *receiptRepository) GetAll(ctx context.Context, status *models.ReceiptStatus, limit, offset int) ([]models.Receipt, error) {
	var receipts []models.Receipt
	query := `
		SELECT id, participant_id, game_period_id, restaurant_id, photo_object, photo_sha256,
		       ocr_payload, restaurant_name, purchase_date, total_amount, status,
		       reject_reason, played, created_at, updated_at
		FROM receipt
	`

	args := []interface{}{}
	if status != nil {
		args = append(args, *status)
		query += fmt.Sprintf(" WHERE status = $%d", len(args))
	}

	query += " ORDER BY created_at DESC"
	args = append(args, limit)
	query += fmt.Sprintf(" LIMIT $%d", len(args))
	args = append(args, offset)
	query += fmt.Sprintf(" OFFSET $%d", len(args))

	err := r.db.SelectContext(ctx, &receipts, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get receipts: %w", err)
	}

	return receipts, nil
}

func (r *receiptRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status models.ReceiptStatus, rejectReason *string) error {
	query := `
		UPDATE receipt SET
			status = $2,
			reject_reason = $3,
			updated_at = NOW()
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id, status, rejectReason)
	if err != nil {
		return fmt.Errorf("failed to update receipt status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("receipt not found")
	}

	return nil
}

// MarkPlayed flips the played flag. The WHERE clause makes a receipt usable
// for exactly one play; returns false when it was already consumed.
func (r *receiptRepository) MarkPlayed(ctx context.Context, id uuid.UUID) (bool, error) {
	query := `
		UPDATE receipt SET played = TRUE, updated_at = NOW()
		WHERE id = $1 AND played = FALSE AND status = 'validated'`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return false, fmt.Errorf("failed to mark receipt played: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rowsAffected > 0, nil
}

func (r *receiptRepository) ExistsBySHA256(ctx context.Context, sha string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM receipt WHERE photo_sha256 = $1)`

	err := r.db.GetContext(ctx, &exists, query, sha)
	if err != nil {
		return false, fmt.Errorf("failed to check receipt existence: %w", err)
	}

	return exists, nil
}

func (r *receiptRepository) CountByStatus(ctx context.Context) (map[models.ReceiptStatus]int, error) {
	rows := []struct {
		Status models.ReceiptStatus `db:"status"`
		Count  int                  `db:"count"`
	}{}

	query := `SELECT status, COUNT(*) AS count FROM receipt GROUP BY status`

	err := r.db.SelectContext(ctx, &rows, query)
	if err != nil {
		return nil, fmt.Errorf("failed to count receipts by status: %w", err)
	}

	counts := map[models.ReceiptStatus]int{}
	for _, row := range rows {
		counts[row.Status] = row.Count
	}

	return counts, nil
}
