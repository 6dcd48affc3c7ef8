package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"goldenticket-service/internal/event"
	"goldenticket-service/internal/models"
	"goldenticket-service/internal/repository"
)

// PlayResult is the outcome of one scratch play.
type PlayResult struct {
	Won        bool        `json:"won"`
	PrizeTitle string      `json:"prize_title,omitempty"`
	Win        *models.Win `json:"win,omitempty"`
}

// PlayService runs the scratch draw. Each validated receipt buys exactly one
// play, and a participant plays at most once per calendar day.
type PlayService struct {
	receiptRepo     repository.ReceiptRepository
	participantRepo repository.ParticipantRepository
	periodRepo      repository.GamePeriodRepository
	allocRepo       repository.AllocationRepository
	winRepo         repository.WinRepository
	redisClient     *redis.Client
	winPublisher    *event.WinPublisher
}

func NewPlayService(
	receiptRepo repository.ReceiptRepository,
	participantRepo repository.ParticipantRepository,
	periodRepo repository.GamePeriodRepository,
	allocRepo repository.AllocationRepository,
	winRepo repository.WinRepository,
	redisClient *redis.Client,
	winPublisher *event.WinPublisher,
) *PlayService {
	return &PlayService{
		receiptRepo:     receiptRepo,
		participantRepo: participantRepo,
		periodRepo:      periodRepo,
		allocRepo:       allocRepo,
		winRepo:         winRepo,
		redisClient:     redisClient,
		winPublisher:    winPublisher,
	}
}

// Play consumes a validated receipt and draws against today's distribution.
// Losing is a normal outcome, not an error.
func (s *PlayService) Play(ctx context.Context, participantID, receiptID uuid.UUID) (*PlayResult, error) {
	receipt, err := s.receiptRepo.GetByID(ctx, receiptID)
	if err != nil {
		return nil, fmt.Errorf("receipt not found: %w", err)
	}
	if receipt.ParticipantID != participantID {
		return nil, fmt.Errorf("receipt does not belong to participant")
	}
	if receipt.Status != models.ReceiptStatusValidated {
		return nil, fmt.Errorf("receipt is not validated")
	}
	if receipt.Played {
		return nil, fmt.Errorf("receipt already used for a play")
	}

	now := time.Now().UTC()
	period, err := s.periodRepo.GetActiveForDate(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("no active game period today")
	}

	guardKey := s.playGuardKey(participantID, now)
	acquired, err := s.redisClient.SetNX(ctx, guardKey, receiptID.String(), 24*time.Hour).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to acquire daily play guard: %w", err)
	}
	if !acquired {
		return nil, fmt.Errorf("participant already played today")
	}

	consumed, err := s.receiptRepo.MarkPlayed(ctx, receiptID)
	if err != nil {
		s.releaseGuard(ctx, guardKey)
		return nil, err
	}
	if !consumed {
		s.releaseGuard(ctx, guardKey)
		return nil, fmt.Errorf("receipt already used for a play")
	}

	win, prizeTitle, err := s.draw(ctx, participantID, period.ID, receiptID, now)
	if err != nil {
		return nil, err
	}
	if win == nil {
		return &PlayResult{Won: false}, nil
	}

	return &PlayResult{Won: true, PrizeTitle: prizeTitle, Win: win}, nil
}

// draw walks today's distribution rows in lot priority order and claims the
// first unit still available. Fixed-time lots are held back until their
// release time has passed.
func (s *PlayService) draw(ctx context.Context, participantID, periodID, receiptID uuid.UUID, now time.Time) (*models.Win, string, error) {
	rows, err := s.allocRepo.GetDrawableForDay(ctx, periodID, now)
	if err != nil {
		return nil, "", err
	}

	for _, row := range rows {
		if row.QuantityDistributed >= row.QuantityAvailable {
			continue
		}
		if row.DistributionTime != nil && !releaseTimePassed(*row.DistributionTime, now) {
			continue
		}

		claimed, err := s.allocRepo.ClaimUnit(ctx, row.ID)
		if err != nil {
			return nil, "", err
		}
		if !claimed {
			continue // another play got the last unit first
		}

		win := &models.Win{
			ParticipantID:       participantID,
			GamePeriodID:        periodID,
			PrizeTypeID:         row.PrizeTypeID,
			DailyDistributionID: &row.ID,
			ReceiptID:           &receiptID,
			Source:              models.WinSourceScratch,
		}
		if err := s.winRepo.Create(ctx, win); err != nil {
			return nil, "", err
		}

		s.publishWin(ctx, win, row.PrizeTitle)
		return win, row.PrizeTitle, nil
	}

	return nil, "", nil
}

func (s *PlayService) publishWin(ctx context.Context, win *models.Win, prizeTitle string) {
	if s.winPublisher == nil {
		return
	}

	participant, err := s.participantRepo.GetByID(ctx, win.ParticipantID)
	if err != nil {
		log.Printf("failed to load winner %s for notification: %v", win.ParticipantID, err)
		return
	}

	err = s.winPublisher.PublishWin(ctx, event.WinEvent{
		WinID:            win.ID.String(),
		ParticipantEmail: participant.Email,
		ParticipantName:  participant.FirstName + " " + participant.LastName,
		PrizeTitle:       prizeTitle,
		Source:           string(win.Source),
	})
	if err != nil {
		log.Printf("failed to publish win event for %s: %v", win.ID, err)
	}
}

func (s *PlayService) releaseGuard(ctx context.Context, key string) {
	if err := s.redisClient.Del(ctx, key).Err(); err != nil {
		log.Printf("failed to release play guard %s: %v", key, err)
	}
}

func (s *PlayService) playGuardKey(participantID uuid.UUID, now time.Time) string {
	return fmt.Sprintf("play:%s:%s", participantID, now.Format("2006-01-02"))
}

// releaseTimePassed checks an HH:MM release time against the current clock.
// An unparseable value does not block the lot.
func releaseTimePassed(distributionTime string, now time.Time) bool {
	release, err := time.Parse("15:04", distributionTime)
	if err != nil {
		log.Printf("invalid distribution time %q, treating lot as released", distributionTime)
		return true
	}

	releaseAt := time.Date(now.Year(), now.Month(), now.Day(), release.Hour(), release.Minute(), 0, 0, now.Location())
	return !now.Before(releaseAt)
}
