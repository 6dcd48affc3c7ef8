package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"goldenticket-service/internal/models"
	"goldenticket-service/internal/repository"
	"goldenticket-service/pkg/utils"
)

// AdminService handles back-office authentication: password login, the Redis
// session backing each issued token, and the bootstrap account.
type AdminService struct {
	adminRepo   repository.AdminRepository
	sessionRepo repository.SessionRepository
	jwtService  *JWTService
}

func NewAdminService(adminRepo repository.AdminRepository, sessionRepo repository.SessionRepository, jwtService *JWTService) *AdminService {
	return &AdminService{
		adminRepo:   adminRepo,
		sessionRepo: sessionRepo,
		jwtService:  jwtService,
	}
}

// InitDefaultAdmin creates the bootstrap back-office account when it does not
// exist yet. Safe to call on every startup.
func (s *AdminService) InitDefaultAdmin(ctx context.Context, email, password string) error {
	if email == "" || password == "" {
		return fmt.Errorf("default admin email and password must not be empty")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash default admin password: %w", err)
	}

	admin := &models.AdminAccount{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		IsActive:     true,
	}
	if err := s.adminRepo.Create(ctx, admin); err != nil {
		return err
	}

	log.Printf("default admin account ensured for %s", email)
	return nil
}

// Login verifies the password, issues a JWT and stores the matching session
// in Redis. The token hash is indexed so the middleware can resolve the
// session from the bearer token alone.
func (s *AdminService) Login(ctx context.Context, email, password string, deviceInfo, ipAddress *string) (*models.AdminAccount, string, error) {
	admin, err := s.adminRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", fmt.Errorf("failed to look up admin account: %w", err)
	}
	if admin == nil || !admin.IsActive {
		return nil, "", fmt.Errorf("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		return nil, "", fmt.Errorf("invalid credentials")
	}

	token, err := s.jwtService.GenerateNewToken(admin.ID, admin.Email)
	if err != nil {
		return nil, "", err
	}

	session := &models.AdminSession{
		ID:         uuid.New().String(),
		AdminID:    admin.ID,
		TokenHash:  utils.SHA256Hex([]byte(token)),
		DeviceInfo: deviceInfo,
		IPAddress:  ipAddress,
		CreatedAt:  time.Now(),
	}
	if err := s.sessionRepo.CreateSession(ctx, session); err != nil {
		return nil, "", err
	}

	if err := s.adminRepo.UpdateLastLogin(ctx, admin.ID); err != nil {
		log.Printf("failed to update last login for %s: %v", admin.Email, err)
	}

	return admin, token, nil
}

// ValidateToken checks both the JWT signature and the live Redis session.
// A logged-out token fails here even while its JWT is still within expiry.
func (s *AdminService) ValidateToken(ctx context.Context, token string) (*models.Claims, error) {
	claims, err := s.jwtService.VerifyToken(token)
	if err != nil {
		return nil, err
	}

	session, err := s.sessionRepo.GetSessionByTokenHash(ctx, utils.SHA256Hex([]byte(token)))
	if err != nil {
		return nil, fmt.Errorf("session not found or expired")
	}
	if !session.IsActive || session.AdminID != claims.AdminID {
		return nil, fmt.Errorf("session invalid")
	}

	return claims, nil
}

// Logout drops the Redis session behind the token. The JWT itself becomes
// useless because validation requires the session.
func (s *AdminService) Logout(ctx context.Context, token string) error {
	session, err := s.sessionRepo.GetSessionByTokenHash(ctx, utils.SHA256Hex([]byte(token)))
	if err != nil {
		return fmt.Errorf("session not found")
	}
	return s.sessionRepo.DeleteSession(ctx, session.ID)
}
