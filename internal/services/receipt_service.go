package services

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"goldenticket-service/internal/ai/gemini"
	"goldenticket-service/internal/database/minio"
	"goldenticket-service/internal/models"
	"goldenticket-service/internal/repository"
	"goldenticket-service/pkg/utils"
)

// ReceiptService runs the submission pipeline: photo dedup, MinIO upload, OCR
// extraction and the automatic validation decision. Admins can still override
// a pending receipt by hand.
type ReceiptService struct {
	receiptRepo     repository.ReceiptRepository
	participantRepo repository.ParticipantRepository
	restaurantRepo  repository.RestaurantRepository
	periodRepo      repository.GamePeriodRepository
	minioClient     *minio.MinioClient
	geminiSelector  *gemini.GeminiClientSelector
	redisClient     *redis.Client
}

func NewReceiptService(
	receiptRepo repository.ReceiptRepository,
	participantRepo repository.ParticipantRepository,
	restaurantRepo repository.RestaurantRepository,
	periodRepo repository.GamePeriodRepository,
	minioClient *minio.MinioClient,
	geminiSelector *gemini.GeminiClientSelector,
	redisClient *redis.Client,
) *ReceiptService {
	return &ReceiptService{
		receiptRepo:     receiptRepo,
		participantRepo: participantRepo,
		restaurantRepo:  restaurantRepo,
		periodRepo:      periodRepo,
		minioClient:     minioClient,
		geminiSelector:  geminiSelector,
		redisClient:     redisClient,
	}
}

// Submit accepts one receipt photo for a participant. The same photo can only
// be submitted once, game-wide: dedup is by content hash, not by filename.
func (s *ReceiptService) Submit(ctx context.Context, participantID uuid.UUID, photo []byte, filename string) (*models.Receipt, error) {
	if len(photo) == 0 {
		return nil, fmt.Errorf("empty receipt photo")
	}

	if _, err := s.participantRepo.GetByID(ctx, participantID); err != nil {
		return nil, fmt.Errorf("participant not found: %w", err)
	}

	// Dedup is by content hash: the Redis key takes the fast path and
	// doubles as a lock against two concurrent uploads of the same photo;
	// the database check covers Redis flushes.
	sha := utils.SHA256Hex(photo)
	acquired, err := s.redisClient.SetNX(ctx, "receipt:sha:"+sha, participantID.String(), 0).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to check receipt dedup key: %w", err)
	}
	if !acquired {
		return nil, fmt.Errorf("receipt photo already submitted")
	}

	exists, err := s.receiptRepo.ExistsBySHA256(ctx, sha)
	if err != nil {
		s.releaseDedupKey(ctx, sha)
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("receipt photo already submitted")
	}

	objectName := fmt.Sprintf("%s/%s%s", participantID, uuid.New(), strings.ToLower(path.Ext(filename)))
	if err := s.minioClient.UploadBytes(ctx, minio.Storage.ReceiptPhotos, objectName, photo, "image/jpeg"); err != nil {
		s.releaseDedupKey(ctx, sha)
		return nil, fmt.Errorf("failed to store receipt photo: %w", err)
	}

	receipt := &models.Receipt{
		ParticipantID: participantID,
		PhotoObject:   objectName,
		PhotoSHA256:   sha,
		Status:        models.ReceiptStatusPending,
	}

	payload, err := gemini.SendAIWithImageAndRetry(ctx, gemini.ReceiptExtractionPrompt, photo, s.geminiSelector)
	if err != nil {
		// OCR outage must not lose the submission; the receipt stays
		// pending for manual review.
		slog.Warn("receipt OCR failed, leaving receipt pending", "error", err)
		if err := s.receiptRepo.Create(ctx, receipt); err != nil {
			s.releaseDedupKey(ctx, sha)
			return nil, err
		}
		return receipt, nil
	}

	receipt.OCRPayload = payload
	s.applyExtraction(ctx, receipt, payload)

	if err := s.receiptRepo.Create(ctx, receipt); err != nil {
		s.releaseDedupKey(ctx, sha)
		return nil, err
	}

	return receipt, nil
}

func (s *ReceiptService) releaseDedupKey(ctx context.Context, sha string) {
	if err := s.redisClient.Del(ctx, "receipt:sha:"+sha).Err(); err != nil {
		log.Printf("failed to release receipt dedup key for %s: %v", sha, err)
	}
}

// applyExtraction copies the OCR fields onto the receipt and decides the
// automatic status: validated when the photo is a readable receipt from a
// participating restaurant dated inside an active game period, pending
// otherwise. Outright non-receipts are rejected on the spot.
func (s *ReceiptService) applyExtraction(ctx context.Context, receipt *models.Receipt, payload map[string]any) {
	if isReceipt, ok := payload["is_receipt"].(bool); ok && !isReceipt {
		reason := "photo is not a purchase receipt"
		receipt.Status = models.ReceiptStatusRejected
		receipt.RejectReason = &reason
		return
	}

	if name, ok := payload["restaurant_name"].(string); ok && name != "" {
		receipt.RestaurantName = &name
		restaurant, err := s.restaurantRepo.FindActiveByName(ctx, name)
		if err != nil {
			log.Printf("restaurant lookup failed for %q: %v", name, err)
		} else if restaurant != nil {
			receipt.RestaurantID = &restaurant.ID
		}
	}

	if raw, ok := payload["purchase_date"].(string); ok && raw != "" {
		if purchaseDate, err := time.Parse("2006-01-02", raw); err == nil {
			receipt.PurchaseDate = &purchaseDate
			period, err := s.periodRepo.GetActiveForDate(ctx, purchaseDate)
			if err == nil {
				receipt.GamePeriodID = &period.ID
			}
		}
	}

	if amount, ok := payload["total_amount"].(float64); ok {
		receipt.TotalAmount = &amount
	}

	if receipt.RestaurantID != nil && receipt.GamePeriodID != nil {
		receipt.Status = models.ReceiptStatusValidated
	}
}

func (s *ReceiptService) GetByID(ctx context.Context, id uuid.UUID) (*models.Receipt, error) {
	return s.receiptRepo.GetByID(ctx, id)
}

func (s *ReceiptService) GetAll(ctx context.Context, status *models.ReceiptStatus, limit, offset int) ([]models.Receipt, error) {
	return s.receiptRepo.GetAll(ctx, status, limit, offset)
}

// Validate manually approves a pending receipt.
func (s *ReceiptService) Validate(ctx context.Context, id uuid.UUID) error {
	receipt, err := s.receiptRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if receipt.Status == models.ReceiptStatusValidated {
		return nil
	}
	return s.receiptRepo.UpdateStatus(ctx, id, models.ReceiptStatusValidated, nil)
}

// Reject marks a receipt rejected with the admin's reason.
func (s *ReceiptService) Reject(ctx context.Context, id uuid.UUID, reason string) error {
	if strings.TrimSpace(reason) == "" {
		return fmt.Errorf("reject reason is required")
	}
	if _, err := s.receiptRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.receiptRepo.UpdateStatus(ctx, id, models.ReceiptStatusRejected, &reason)
}

// GetPhotoURL returns a short-lived presigned link to the stored photo.
func (s *ReceiptService) GetPhotoURL(ctx context.Context, id uuid.UUID) (string, error) {
	receipt, err := s.receiptRepo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	return s.minioClient.GetPresignedURL(ctx, minio.Storage.ReceiptPhotos, receipt.PhotoObject, 15*time.Minute)
}
