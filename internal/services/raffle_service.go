package services

import (
	"context"
	"fmt"
	"log"
	"math/rand"

	"goldenticket-service/internal/event"
	"goldenticket-service/internal/models"
	"goldenticket-service/internal/repository"
)

// RaffleResult lists who the draw picked for one lot.
type RaffleResult struct {
	PrizeTitle string               `json:"prize_title"`
	Winners    []models.Participant `json:"winners"`
}

// RaffleService runs the admin-triggered random draw ("tirage au sort") among
// participants holding a validated receipt in the period.
type RaffleService struct {
	prizeRepo    repository.PrizeTypeRepository
	winRepo      repository.WinRepository
	winPublisher *event.WinPublisher
}

func NewRaffleService(prizeRepo repository.PrizeTypeRepository, winRepo repository.WinRepository, winPublisher *event.WinPublisher) *RaffleService {
	return &RaffleService{
		prizeRepo:    prizeRepo,
		winRepo:      winRepo,
		winPublisher: winPublisher,
	}
}

// RunRaffle shuffles the eligible pool and records one win per picked
// participant. Picks fewer winners than requested when the pool is smaller.
func (s *RaffleService) RunRaffle(ctx context.Context, req models.RaffleRequest) (*RaffleResult, error) {
	if req.WinnerCount <= 0 {
		return nil, fmt.Errorf("winner count must be positive")
	}

	prize, err := s.prizeRepo.GetByID(ctx, req.PrizeTypeID)
	if err != nil {
		return nil, fmt.Errorf("prize type not found: %w", err)
	}

	pool, err := s.winRepo.GetRaffleEligible(ctx, req.GamePeriodID, req.PrizeTypeID)
	if err != nil {
		return nil, err
	}
	if len(pool) == 0 {
		return nil, fmt.Errorf("no eligible participants for raffle")
	}

	rand.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})

	count := req.WinnerCount
	if len(pool) < count {
		count = len(pool)
	}
	picked := pool[:count]

	for _, participant := range picked {
		win := &models.Win{
			ParticipantID: participant.ID,
			GamePeriodID:  req.GamePeriodID,
			PrizeTypeID:   req.PrizeTypeID,
			Source:        models.WinSourceRaffle,
		}
		if err := s.winRepo.Create(ctx, win); err != nil {
			return nil, fmt.Errorf("failed to record raffle win for %s: %w", participant.Email, err)
		}

		if s.winPublisher != nil {
			err := s.winPublisher.PublishWin(ctx, event.WinEvent{
				WinID:            win.ID.String(),
				ParticipantEmail: participant.Email,
				ParticipantName:  participant.FirstName + " " + participant.LastName,
				PrizeTitle:       prize.Title,
				Source:           string(models.WinSourceRaffle),
			})
			if err != nil {
				log.Printf("failed to publish raffle win event for %s: %v", win.ID, err)
			}
		}
	}

	log.Printf("raffle picked %d winner(s) for lot %q in period %s", count, prize.Title, req.GamePeriodID)

	return &RaffleResult{PrizeTitle: prize.Title, Winners: picked}, nil
}
