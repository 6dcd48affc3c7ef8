package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"goldenticket-service/internal/models"
)

type RestaurantRepository interface {
	Create(ctx context.Context, restaurant *models.Restaurant) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Restaurant, error)
	GetAll(ctx context.Context) ([]models.Restaurant, error)
	FindActiveByName(ctx context.Context, name string) (*models.Restaurant, error)
	Update(ctx context.Context, restaurant *models.Restaurant) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type restaurantRepository struct {
	db *sqlx.DB
}

func NewRestaurantRepository(db *sqlx.DB) RestaurantRepository {
	return &restaurantRepository{db: db}
}

func (r *restaurantRepository) Create(ctx context.Context, restaurant *models.Restaurant) error {
	if restaurant.ID == uuid.Nil {
		restaurant.ID = uuid.New()
	}
	now := time.Now()
	if restaurant.CreatedAt.IsZero() {
		restaurant.CreatedAt = now
	}
	restaurant.UpdatedAt = now

	query := `
		INSERT INTO restaurant (id, name, address, city, is_active, created_at, updated_at)
		VALUES (:id, :name, :address, :city, :is_active, :created_at, :updated_at)`

	_, err := r.db.NamedExecContext(ctx, query, restaurant)
	if err != nil {
		return fmt.Errorf("failed to create restaurant: %w", err)
	}
	return nil
}

func (r *restaurantRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Restaurant, error) {
	var restaurant models.Restaurant
	query := `
		SELECT id, name, address, city, is_active, created_at, updated_at
		FROM restaurant
		WHERE id = $1
	`

	err := r.db.GetContext(ctx, &restaurant, query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get restaurant by id: %w", err)
	}

	return &restaurant, nil
}

func (r *restaurantRepository) GetAll(ctx context.Context) ([]models.Restaurant, error) {
	var restaurants []models.Restaurant
	query := `
		SELECT id, name, address, city, is_active, created_at, updated_at
		FROM restaurant
		ORDER BY name ASC
	`

	err := r.db.SelectContext(ctx, &restaurants, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get restaurants: %w", err)
	}

	return restaurants, nil
}

// FindActiveByName matches the OCR-extracted venue name against the catalog,
// case-insensitively. Returns (nil, nil) when nothing matches.
func (r *restaurantRepository) FindActiveByName(ctx context.Context, name string) (*models.Restaurant, error) {
	var restaurant models.Restaurant
	query := `
		SELECT id, name, address, city, is_active, created_at, updated_at
		FROM restaurant
		WHERE is_active = TRUE AND LOWER(TRIM(name)) = $1
		LIMIT 1
	`

	err := r.db.GetContext(ctx, &restaurant, query, strings.ToLower(strings.TrimSpace(name)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find restaurant by name: %w", err)
	}

	return &restaurant, nil
}

func (r *restaurantRepository) Update(ctx context.Context, restaurant *models.Restaurant) error {
	restaurant.UpdatedAt = time.Now()

	query := `
		UPDATE restaurant SET
			name = :name,
			address = :address,
			city = :city,
			is_active = :is_active,
			updated_at = :updated_at
		WHERE id = :id`

	result, err := r.db.NamedExecContext(ctx, query, restaurant)
	if err != nil {
		return fmt.Errorf("failed to update restaurant: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("restaurant not found")
	}

	return nil
}

func (r *restaurantRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM restaurant WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete restaurant: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("restaurant not found")
	}

	return nil
}
