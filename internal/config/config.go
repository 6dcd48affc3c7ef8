package config

import (
	"os"
	"strings"
)

type GameServiceConfig struct {
	Port         string
	PostgresCfg  PostgresConfig
	RedisCfg     RedisConfig
	MinioCfg     MinioConfig
	RabbitMQCfg  RabbitMQConfig
	GeminiAPICfg GeminiAPIConfig
	AuthCfg      AuthConfig
	EmailCfg     EmailConfig
}

type PostgresConfig struct {
	DBname   string
	Username string
	Password string
	Host     string
	Port     string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type MinioConfig struct {
	MinioURL         string
	MinioAccessKey   string
	MinioSecretKey   string
	MinioLocation    string
	MinioSecure      string
	MinioResourceURL string
}

type RabbitMQConfig struct {
	Username string
	Password string
	Host     string
	Port     string
}

type GeminiAPIConfig struct {
	APIKeys   []string
	FlashName string
	ProName   string
}

type AuthConfig struct {
	JWTSecret string
	AdminPWD  string
}

type EmailConfig struct {
	Address  string
	Password string
}

func New() *GameServiceConfig {
	return &GameServiceConfig{
		Port: getEnvOrDefault("PORT", "8086"),
		PostgresCfg: PostgresConfig{
			DBname:   getEnvOrDefault("POSTGRES_DB", "goldenticket"),
			Username: getEnvOrDefault("POSTGRES_USER", "postgres"),
			Password: getEnvOrDefault("POSTGRES_PASSWORD", "postgres"),
			Host:     getEnvOrDefault("POSTGRES_HOST", "localhost"),
			Port:     getEnvOrDefault("POSTGRES_PORT", "5432"),
		},
		RedisCfg: RedisConfig{
			Host:     getEnvOrDefault("REDIS_HOST", "localhost"),
			Port:     getEnvOrDefault("REDIS_PORT", "6379"),
			Password: getEnvOrDefault("REDIS_PASSWORD", ""),
			DB:       0,
		},
		MinioCfg: MinioConfig{
			MinioURL:         getEnvOrDefault("MINIO_ENDPOINT", "http://localhost:9407"),
			MinioAccessKey:   getEnvOrDefault("MINIO_ACCESS_KEY", "minio"),
			MinioSecretKey:   getEnvOrDefault("MINIO_SECRET_KEY", "minio123"),
			MinioLocation:    getEnvOrDefault("MINIO_LOCATION", "us-east-1"),
			MinioSecure:      getEnvOrDefault("MINIO_SECURE", "false"),
			MinioResourceURL: getEnvOrDefault("MINIO_RESOURCE_URL", "http://localhost:9407/"),
		},
		RabbitMQCfg: RabbitMQConfig{
			Username: getEnvOrDefault("RABBITMQ_USER", "admin"),
			Password: getEnvOrDefault("RABBITMQ_PWD", "admin"),
			Host:     getEnvOrDefault("RABBITMQ_HOST", "localhost"),
			Port:     getEnvOrDefault("RABBITMQ_PORT", "5672"),
		},
		GeminiAPICfg: GeminiAPIConfig{
			APIKeys:   splitKeys(getEnvOrDefault("GEMINI_KEYS", "")),
			FlashName: getEnvOrDefault("GEMINI_FLASH_MODEL", "gemini-2.5-flash"),
			ProName:   getEnvOrDefault("GEMINI_PRO_MODEL", "gemini-2.5-pro"),
		},
		AuthCfg: AuthConfig{
			JWTSecret: getEnvOrDefault("JWT_SECRET", "dev-secret"),
			AdminPWD:  getEnvOrDefault("ADMIN_PWD", "changeme123"),
		},
		EmailCfg: EmailConfig{
			Address:  getEnvOrDefault("EMAIL_ADDRESS", ""),
			Password: getEnvOrDefault("EMAIL_PASSWORD", ""),
		},
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitKeys(raw string) []string {
	if raw == "" {
		return nil
	}
	keys := []string{}
	for _, k := range strings.Split(raw, ",") {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, k)
		}
	}
	return keys
}
