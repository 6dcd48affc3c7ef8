package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"goldenticket-service/internal/models"
	"goldenticket-service/internal/repository"
)

// CatalogService covers the admin-managed reference data: game periods, the
// prize catalog and the participating restaurants.
type CatalogService struct {
	periodRepo     repository.GamePeriodRepository
	prizeRepo      repository.PrizeTypeRepository
	restaurantRepo repository.RestaurantRepository
}

func NewCatalogService(
	periodRepo repository.GamePeriodRepository,
	prizeRepo repository.PrizeTypeRepository,
	restaurantRepo repository.RestaurantRepository,
) *CatalogService {
	return &CatalogService{
		periodRepo:     periodRepo,
		prizeRepo:      prizeRepo,
		restaurantRepo: restaurantRepo,
	}
}

func (s *CatalogService) CreatePeriod(ctx context.Context, req models.GamePeriodRequest) (*models.GamePeriod, error) {
	period, err := periodFromRequest(req)
	if err != nil {
		return nil, err
	}
	if err := s.periodRepo.Create(ctx, period); err != nil {
		return nil, err
	}
	return period, nil
}

func (s *CatalogService) UpdatePeriod(ctx context.Context, id uuid.UUID, req models.GamePeriodRequest) (*models.GamePeriod, error) {
	period, err := periodFromRequest(req)
	if err != nil {
		return nil, err
	}
	period.ID = id
	if err := s.periodRepo.Update(ctx, period); err != nil {
		return nil, err
	}
	return period, nil
}

func (s *CatalogService) GetPeriods(ctx context.Context) ([]models.GamePeriod, error) {
	return s.periodRepo.GetAll(ctx)
}

func (s *CatalogService) GetPeriod(ctx context.Context, id uuid.UUID) (*models.GamePeriod, error) {
	return s.periodRepo.GetByID(ctx, id)
}

func (s *CatalogService) DeletePeriod(ctx context.Context, id uuid.UUID) error {
	return s.periodRepo.Delete(ctx, id)
}

func periodFromRequest(req models.GamePeriodRequest) (*models.GamePeriod, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, fmt.Errorf("period title is required")
	}

	dateStart, err := time.Parse("2006-01-02", req.DateStart)
	if err != nil {
		return nil, fmt.Errorf("invalid date_start, expected YYYY-MM-DD")
	}
	dateEnd, err := time.Parse("2006-01-02", req.DateEnd)
	if err != nil {
		return nil, fmt.Errorf("invalid date_end, expected YYYY-MM-DD")
	}
	if dateEnd.Before(dateStart) {
		return nil, fmt.Errorf("date_end must not be before date_start")
	}

	return &models.GamePeriod{
		Title:     strings.TrimSpace(req.Title),
		DateStart: dateStart,
		DateEnd:   dateEnd,
		IsActive:  req.IsActive,
	}, nil
}

func (s *CatalogService) CreatePrizeType(ctx context.Context, req models.PrizeTypeRequest) (*models.PrizeType, error) {
	prize, err := prizeFromRequest(req)
	if err != nil {
		return nil, err
	}
	if err := s.prizeRepo.Create(ctx, prize); err != nil {
		return nil, err
	}
	return prize, nil
}

func (s *CatalogService) UpdatePrizeType(ctx context.Context, id uuid.UUID, req models.PrizeTypeRequest) (*models.PrizeType, error) {
	prize, err := prizeFromRequest(req)
	if err != nil {
		return nil, err
	}
	prize.ID = id
	if err := s.prizeRepo.Update(ctx, prize); err != nil {
		return nil, err
	}
	return prize, nil
}

func (s *CatalogService) GetPrizeTypes(ctx context.Context) ([]models.PrizeType, error) {
	return s.prizeRepo.GetAll(ctx)
}

func (s *CatalogService) DeletePrizeType(ctx context.Context, id uuid.UUID) error {
	return s.prizeRepo.Delete(ctx, id)
}

func prizeFromRequest(req models.PrizeTypeRequest) (*models.PrizeType, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, fmt.Errorf("prize title is required")
	}
	if req.DefaultQuantity < 0 {
		return nil, fmt.Errorf("default quantity must not be negative")
	}

	prize := &models.PrizeType{
		Title:           strings.TrimSpace(req.Title),
		Description:     req.Description,
		DefaultQuantity: req.DefaultQuantity,
		Priority:        req.Priority,
	}

	// A fixed distribution needs both the date and the release time.
	if (req.FixedDistributionDate == nil) != (req.FixedDistributionTime == nil) {
		return nil, fmt.Errorf("fixed_distribution_date and fixed_distribution_time must be set together")
	}
	if req.FixedDistributionDate != nil {
		fixedDate, err := time.Parse("2006-01-02", *req.FixedDistributionDate)
		if err != nil {
			return nil, fmt.Errorf("invalid fixed_distribution_date, expected YYYY-MM-DD")
		}
		if _, err := time.Parse("15:04", *req.FixedDistributionTime); err != nil {
			return nil, fmt.Errorf("invalid fixed_distribution_time, expected HH:MM")
		}
		prize.FixedDistributionDate = &fixedDate
		prize.FixedDistributionTime = req.FixedDistributionTime
	}

	return prize, nil
}

func (s *CatalogService) CreateRestaurant(ctx context.Context, req models.RestaurantRequest) (*models.Restaurant, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("restaurant name is required")
	}

	restaurant := &models.Restaurant{
		Name:     strings.TrimSpace(req.Name),
		Address:  req.Address,
		City:     req.City,
		IsActive: req.IsActive,
	}
	if err := s.restaurantRepo.Create(ctx, restaurant); err != nil {
		return nil, err
	}
	return restaurant, nil
}

func (s *CatalogService) UpdateRestaurant(ctx context.Context, id uuid.UUID, req models.RestaurantRequest) (*models.Restaurant, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("restaurant name is required")
	}

	restaurant := &models.Restaurant{
		ID:       id,
		Name:     strings.TrimSpace(req.Name),
		Address:  req.Address,
		City:     req.City,
		IsActive: req.IsActive,
	}
	if err := s.restaurantRepo.Update(ctx, restaurant); err != nil {
		return nil, err
	}
	return restaurant, nil
}

func (s *CatalogService) GetRestaurants(ctx context.Context) ([]models.Restaurant, error) {
	return s.restaurantRepo.GetAll(ctx)
}

func (s *CatalogService) DeleteRestaurant(ctx context.Context, id uuid.UUID) error {
	return s.restaurantRepo.Delete(ctx, id)
}
