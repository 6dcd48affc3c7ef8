package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goldenticket-service/internal/models"
)

type fakeParticipantRepo struct {
	participants []models.Participant
}

func (f *fakeParticipantRepo) Create(ctx context.Context, participant *models.Participant) error {
	if participant.ID == uuid.Nil {
		participant.ID = uuid.New()
	}
	f.participants = append(f.participants, *participant)
	return nil
}

func (f *fakeParticipantRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Participant, error) {
	for i := range f.participants {
		if f.participants[i].ID == id {
			return &f.participants[i], nil
		}
	}
	return nil, fmt.Errorf("failed to get participant by id: no rows")
}

func (f *fakeParticipantRepo) GetByEmail(ctx context.Context, email string) (*models.Participant, error) {
	for i := range f.participants {
		if f.participants[i].Email == email {
			return &f.participants[i], nil
		}
	}
	return nil, nil
}

func (f *fakeParticipantRepo) GetAll(ctx context.Context, limit, offset int) ([]models.Participant, error) {
	if offset >= len(f.participants) {
		return nil, nil
	}
	end := offset + limit
	if end > len(f.participants) {
		end = len(f.participants)
	}
	return f.participants[offset:end], nil
}

func (f *fakeParticipantRepo) Count(ctx context.Context) (int, error) {
	return len(f.participants), nil
}

func TestRegisterParticipant(t *testing.T) {
	repo := &fakeParticipantRepo{}
	svc := NewParticipantService(repo)

	participant, created, err := svc.Register(context.Background(), models.RegisterParticipantRequest{
		FirstName:   " Jean ",
		LastName:    "Dupont",
		Email:       "Jean.Dupont@Example.fr",
		PhoneNumber: "0612345678",
		OptIn:       true,
	})
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "Jean", participant.FirstName)
	assert.Equal(t, "jean.dupont@example.fr", participant.Email, "email is stored lowercased")

	// same email again returns the existing account
	again, created, err := svc.Register(context.Background(), models.RegisterParticipantRequest{
		FirstName:   "Jean",
		LastName:    "Dupont",
		Email:       "jean.dupont@example.fr",
		PhoneNumber: "0612345678",
	})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, participant.ID, again.ID)
	assert.Len(t, repo.participants, 1)
}

func TestGetAllParticipantsPageWindow(t *testing.T) {
	repo := &fakeParticipantRepo{}
	for i := 0; i < 5; i++ {
		repo.participants = append(repo.participants, models.Participant{ID: uuid.New()})
	}
	svc := NewParticipantService(repo)

	page, err := svc.GetAll(context.Background(), 2, 2)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, repo.participants[2].ID, page[0].ID)

	// window past the end is empty, not an error
	page, err = svc.GetAll(context.Background(), 2, 10)
	require.NoError(t, err)
	assert.Empty(t, page)
}

func TestRegisterParticipantValidation(t *testing.T) {
	svc := NewParticipantService(&fakeParticipantRepo{})

	_, _, err := svc.Register(context.Background(), models.RegisterParticipantRequest{
		FirstName: "Jean", LastName: "Dupont", Email: "broken", PhoneNumber: "0612345678",
	})
	assert.ErrorContains(t, err, "invalid email")

	_, _, err = svc.Register(context.Background(), models.RegisterParticipantRequest{
		FirstName: "Jean", LastName: "Dupont", Email: "jean@example.fr", PhoneNumber: "12345",
	})
	assert.ErrorContains(t, err, "invalid phone")

	_, _, err = svc.Register(context.Background(), models.RegisterParticipantRequest{
		FirstName: " ", LastName: "Dupont", Email: "jean@example.fr", PhoneNumber: "0612345678",
	})
	assert.ErrorContains(t, err, "required")
}
