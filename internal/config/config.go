// Package config loads the application settings from the environment.
package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config holds every runtime setting. Values come from the environment,
// optionally seeded from a .env file by the caller (godotenv).
type Config struct {
	HTTPAddr string `envconfig:"HTTP_ADDR" default:":3001"`

	DBHost     string `envconfig:"DB_HOST" default:"localhost"`
	DBPort     string `envconfig:"DB_PORT" default:"5432"`
	DBUser     string `envconfig:"DB_USER" default:"user"`
	DBPassword string `envconfig:"DB_PASSWORD" default:"password"`
	DBName     string `envconfig:"DB_NAME" default:"omnichatdb"`

	RedisAddr     string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	RedisPassword string `envconfig:"REDIS_PASSWORD"`
	RedisDB       int    `envconfig:"REDIS_DB"`

	JWTSecret string `envconfig:"JWT_SECRET" default:"dev-only-secret"`

	// Facebook webhook verification and outbound Send API.
	FacebookVerifyToken string `envconfig:"FB_VERIFY_TOKEN"`
	FacebookPageToken   string `envconfig:"FB_PAGE_TOKEN"`
	FacebookAPIBaseURL  string `envconfig:"FB_API_BASE_URL" default:"https://graph.facebook.com/v18.0"`

	// Text-generation collaborator for the automated Facebook reply.
	GenAPIKey  string `envconfig:"GEN_API_KEY"`
	GenBaseURL string `envconfig:"GEN_BASE_URL" default:"https://api.openai.com/v1"`
	GenModel   string `envconfig:"GEN_MODEL" default:"gpt-4o-mini"`

	// Optional ops monitor; disabled when the token is empty.
	TelegramBotToken    string `envconfig:"TELEGRAM_BOT_TOKEN"`
	TelegramAdminChatID int64  `envconfig:"TELEGRAM_ADMIN_CHAT_ID"`
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return &cfg, nil
}

// PostgresDSN assembles the GORM connection string.
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort)
}
