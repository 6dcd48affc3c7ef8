package postgres

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"goldenticket-service/internal/config"
)

var DB_Status bool

func ConnectAndCreateDB(cfg config.PostgresConfig) (*sqlx.DB, error) {
	defaultConnStr := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=postgres sslmode=disable",
		cfg.Host, cfg.Port, cfg.Username, cfg.Password)

	defaultDB, err := sql.Open("postgres", defaultConnStr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to default postgres db: %w", err)
	}
	defer defaultDB.Close()

	var exists bool
	checkQuery := `SELECT EXISTS(SELECT 1 FROM pg_database WHERE datname = $1)`
	err = defaultDB.QueryRow(checkQuery, cfg.DBname).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("failed to check if database exists: %w", err)
	}

	if !exists {
		createQuery := fmt.Sprintf(`CREATE DATABASE "%s"`, cfg.DBname)
		_, err = defaultDB.Exec(createQuery)
		if err != nil {
			return nil, fmt.Errorf("failed to create database %s: %w", cfg.DBname, err)
		}
		log.Printf("Database '%s' created successfully", cfg.DBname)
	}

	targetConnStr := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.Host, cfg.Port, cfg.Username, cfg.Password, cfg.DBname)

	db, err := sqlx.Connect("postgres", targetConnStr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to target database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping target database: %w", err)
	}
	DB_Status = true

	if err := ensureSchema(db); err != nil {
		return nil, fmt.Errorf("failed to ensure schema: %w", err)
	}

	return db, nil
}

func RetryConnectOnFailed(wait_amount time.Duration, db **sqlx.DB, cfg config.PostgresConfig) {
	if DB_Status {
		log.Printf("false database lost connection alert! abort retry")
		return
	}

	newDB, err := ConnectAndCreateDB(cfg)
	if err == nil {
		*db = newDB
		log.Printf("database retry connection successfully")
		return
	}
	log.Printf("failed to retry connect database: %s, next retry in %v", err, wait_amount)
	time.Sleep(wait_amount)

	RetryConnectOnFailed(wait_amount, db, cfg)
}

func ensureSchema(db *sqlx.DB) error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS admin_account (
			id TEXT PRIMARY KEY,
			email TEXT UNIQUE NOT NULL,
			password_hash TEXT NOT NULL,
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			last_login TIMESTAMPTZ
		)`,
		`CREATE TABLE IF NOT EXISTS restaurant (
			id UUID PRIMARY KEY,
			name TEXT NOT NULL,
			address TEXT,
			city TEXT,
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS game_period (
			id UUID PRIMARY KEY,
			title TEXT NOT NULL,
			date_start DATE NOT NULL,
			date_end DATE NOT NULL,
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			CHECK (date_start <= date_end)
		)`,
		`CREATE TABLE IF NOT EXISTS prize_type (
			id UUID PRIMARY KEY,
			title TEXT NOT NULL,
			description TEXT,
			default_quantity INTEGER NOT NULL DEFAULT 0,
			priority INTEGER NOT NULL DEFAULT 100,
			fixed_distribution_date DATE,
			fixed_distribution_time TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS period_prize_allocation (
			id UUID PRIMARY KEY,
			game_period_id UUID NOT NULL REFERENCES game_period(id),
			prize_type_id UUID NOT NULL REFERENCES prize_type(id),
			quantity_total INTEGER NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS daily_distribution (
			id UUID PRIMARY KEY,
			period_prize_allocation_id UUID NOT NULL REFERENCES period_prize_allocation(id),
			day DATE NOT NULL,
			quantity_available INTEGER NOT NULL,
			quantity_distributed INTEGER NOT NULL DEFAULT 0,
			distribution_time TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS participant (
			id UUID PRIMARY KEY,
			first_name TEXT NOT NULL,
			last_name TEXT NOT NULL,
			email TEXT UNIQUE NOT NULL,
			phone_number TEXT NOT NULL,
			opt_in BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS receipt (
			id UUID PRIMARY KEY,
			participant_id UUID NOT NULL REFERENCES participant(id),
			game_period_id UUID REFERENCES game_period(id),
			restaurant_id UUID REFERENCES restaurant(id),
			photo_object TEXT NOT NULL,
			photo_sha256 TEXT NOT NULL,
			ocr_payload JSONB,
			restaurant_name TEXT,
			purchase_date DATE,
			total_amount NUMERIC,
			status TEXT NOT NULL DEFAULT 'pending',
			reject_reason TEXT,
			played BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS win (
			id UUID PRIMARY KEY,
			participant_id UUID NOT NULL REFERENCES participant(id),
			game_period_id UUID NOT NULL REFERENCES game_period(id),
			prize_type_id UUID NOT NULL REFERENCES prize_type(id),
			daily_distribution_id UUID REFERENCES daily_distribution(id),
			receipt_id UUID REFERENCES receipt(id),
			source TEXT NOT NULL,
			won_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_daily_distribution_day ON daily_distribution(day)`,
		`CREATE INDEX IF NOT EXISTS idx_receipt_participant ON receipt(participant_id)`,
		`CREATE INDEX IF NOT EXISTS idx_win_period ON win(game_period_id)`,
	}

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to execute schema statement: %w", err)
		}
	}
	return nil
}
