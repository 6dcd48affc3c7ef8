package services

import (
	"context"
	"fmt"
	"strings"

	"goldenticket-service/internal/models"
	"goldenticket-service/internal/repository"
	"goldenticket-service/pkg/utils"
)

type ParticipantService struct {
	participantRepo repository.ParticipantRepository
}

func NewParticipantService(participantRepo repository.ParticipantRepository) *ParticipantService {
	return &ParticipantService{participantRepo: participantRepo}
}

// Register creates a participant, or returns the existing account when the
// email is already registered. Returning players re-enter with the same email
// throughout the game, so this is not an error.
func (s *ParticipantService) Register(ctx context.Context, req models.RegisterParticipantRequest) (*models.Participant, bool, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if ok, _ := utils.ValidateEmail(email); !ok {
		return nil, false, fmt.Errorf("invalid email address")
	}
	if ok, _ := utils.ValidatePhone(strings.TrimSpace(req.PhoneNumber)); !ok {
		return nil, false, fmt.Errorf("invalid phone number")
	}
	if strings.TrimSpace(req.FirstName) == "" || strings.TrimSpace(req.LastName) == "" {
		return nil, false, fmt.Errorf("first name and last name are required")
	}

	existing, err := s.participantRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return existing, false, nil
	}

	participant := &models.Participant{
		FirstName:   strings.TrimSpace(req.FirstName),
		LastName:    strings.TrimSpace(req.LastName),
		Email:       email,
		PhoneNumber: strings.TrimSpace(req.PhoneNumber),
		OptIn:       req.OptIn,
	}
	if err := s.participantRepo.Create(ctx, participant); err != nil {
		return nil, false, err
	}

	return participant, true, nil
}

func (s *ParticipantService) GetAll(ctx context.Context, limit, offset int) ([]models.Participant, error) {
	return s.participantRepo.GetAll(ctx, limit, offset)
}
