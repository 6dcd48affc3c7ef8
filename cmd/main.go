package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"

	"goldenticket-service/internal/ai/gemini"
	"goldenticket-service/internal/config"
	"goldenticket-service/internal/database/minio"
	"goldenticket-service/internal/database/postgres"
	"goldenticket-service/internal/database/redis"
	"goldenticket-service/internal/event"
	"goldenticket-service/internal/handlers"
	"goldenticket-service/internal/notification"
	"goldenticket-service/internal/repository"
	"goldenticket-service/internal/services"
)

func setupLogging() (*os.File, error) {
	logDir := filepath.Join("/goldenticket", "log", "game_service")
	err := os.MkdirAll(logDir, 0o755)
	if err != nil {
		return nil, fmt.Errorf("failed to create log directory: %v", err)
	}

	currentTime := time.Now()
	logFileName := fmt.Sprintf("log_%s.log", currentTime.Format("2006-01-02"))
	logFile := filepath.Join(logDir, logFileName)

	file, err := os.OpenFile(logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %v", err)
	}

	log.SetOutput(file)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	return file, nil
}

func main() {
	logFile, err := setupLogging()
	if err != nil {
		log.Printf("Failed to set up file logging, using stderr: %v", err)
	} else {
		defer logFile.Close()
	}

	cfg := config.New()
	ctx := context.Background()

	log.Printf("Connecting to PostgreSQL with: host=%s, port=%s, user=%s, dbname=%s",
		cfg.PostgresCfg.Host, cfg.PostgresCfg.Port, cfg.PostgresCfg.Username, cfg.PostgresCfg.DBname)
	db, err := postgres.ConnectAndCreateDB(cfg.PostgresCfg)
	if err != nil {
		log.Printf("error connect to database: %s", err)
		go postgres.RetryConnectOnFailed(30*time.Second, &db, cfg.PostgresCfg)
	}

	redisClient, err := redis.NewRedisClient(cfg.RedisCfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()

	minioClient, err := minio.NewMinioClient(cfg.MinioCfg)
	if err != nil {
		log.Fatalf("Failed to connect to MinIO: %v", err)
	}

	geminiClients := make([]gemini.GeminiClient, 0, len(cfg.GeminiAPICfg.APIKeys))
	for _, key := range cfg.GeminiAPICfg.APIKeys {
		client, err := gemini.NewGenAIClient(key, cfg.GeminiAPICfg.FlashName, cfg.GeminiAPICfg.ProName)
		if err != nil {
			log.Printf("Failed to init Gemini client: %v", err)
			continue
		}
		geminiClients = append(geminiClients, *client)
	}
	if len(geminiClients) == 0 {
		log.Printf("Warning: no Gemini clients configured, receipts will stay pending for manual review")
	}
	geminiSelector := gemini.NewGeminiClientSelector(geminiClients)

	var winPublisher *event.WinPublisher
	rabbitConn, err := event.ConnectRabbitMQ(cfg.RabbitMQCfg)
	if err != nil {
		log.Printf("Warning: RabbitMQ unavailable, win notifications disabled: %v", err)
	} else {
		defer rabbitConn.Close()
		winPublisher = event.NewWinPublisher(rabbitConn)

		if cfg.EmailCfg.Address != "" {
			emailService := notification.NewEmailService(cfg.EmailCfg.Address, cfg.EmailCfg.Password)
			consumer, err := notification.NewQueueConsumer(rabbitConn, emailService)
			if err != nil {
				log.Printf("Warning: failed to start win notification consumer: %v", err)
			} else {
				go func() {
					if err := consumer.StartConsuming(ctx); err != nil {
						log.Printf("win notification consumer stopped: %v", err)
					}
				}()
			}
		}
	}

	// Repositories
	periodRepo := repository.NewGamePeriodRepository(db)
	prizeRepo := repository.NewPrizeTypeRepository(db)
	allocRepo := repository.NewAllocationRepository(db)
	restaurantRepo := repository.NewRestaurantRepository(db)
	participantRepo := repository.NewParticipantRepository(db)
	receiptRepo := repository.NewReceiptRepository(db)
	winRepo := repository.NewWinRepository(db)
	statsRepo := repository.NewStatsRepository(db)
	adminRepo := repository.NewAdminRepository(db)
	sessionRepo := repository.NewSessionRepository(redisClient)

	// Services
	jwtService := services.NewJWTService(cfg.AuthCfg.JWTSecret)
	adminService := services.NewAdminService(adminRepo, sessionRepo, jwtService)
	catalogService := services.NewCatalogService(periodRepo, prizeRepo, restaurantRepo)
	allocationService := services.NewAllocationService(periodRepo, prizeRepo, allocRepo)
	participantService := services.NewParticipantService(participantRepo)
	receiptService := services.NewReceiptService(receiptRepo, participantRepo, restaurantRepo, periodRepo, minioClient, geminiSelector, redisClient)
	playService := services.NewPlayService(receiptRepo, participantRepo, periodRepo, allocRepo, winRepo, redisClient, winPublisher)
	raffleService := services.NewRaffleService(prizeRepo, winRepo, winPublisher)
	statsService := services.NewStatsService(participantRepo, receiptRepo, winRepo, statsRepo)
	exportService := services.NewExportService(winRepo, minioClient)

	if err := adminService.InitDefaultAdmin(ctx, "admin@goldenticket.local", cfg.AuthCfg.AdminPWD); err != nil {
		log.Printf("Failed to init default admin: %v", err)
	}

	// HTTP layer
	router := gin.Default()
	router.GET("/checkhealth", func(c *gin.Context) {
		c.String(200, "Game service is healthy")
	})

	middleware := handlers.NewMiddleware(adminService)
	handlers.NewAuthHandler(adminService).RegisterRoutes(router, middleware)
	handlers.NewCatalogHandler(catalogService).RegisterRoutes(router, middleware)
	handlers.NewAllocationHandler(allocationService, catalogService).RegisterRoutes(router, middleware)
	handlers.NewParticipantHandler(participantService).RegisterRoutes(router, middleware)
	handlers.NewReceiptHandler(receiptService).RegisterRoutes(router, middleware)
	handlers.NewPlayHandler(playService).RegisterRoutes(router)
	handlers.NewRaffleHandler(raffleService).RegisterRoutes(router, middleware)
	handlers.NewStatsHandler(statsService, exportService).RegisterRoutes(router, middleware)

	log.Printf("Game service listening on :%s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
