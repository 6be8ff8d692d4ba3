package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Config contains runtime configuration values.
type Config struct {
	FirebaseProjectID string `env:"FIREBASE_PROJECT_ID" env-required:"true"`
	CredentialsFile   string `env:"GOOGLE_APPLICATION_CREDENTIALS"`

	Locale           string `env:"LOCALE" env-default:"en"`
	AndroidChannelID string `env:"ANDROID_CHANNEL_ID" env-default:"cayyap_notifications"`
	StaffRole        string `env:"STAFF_ROLE" env-default:"waiter"`

	UsersCollection         string `env:"USERS_COLLECTION" env-default:"users"`
	NotificationsCollection string `env:"NOTIFICATIONS_COLLECTION" env-default:"notifications"`
	OrdersCollection        string `env:"ORDERS_COLLECTION" env-default:"orders"`
	RelationsCollection     string `env:"RELATIONS_COLLECTION" env-default:"relations"`

	HTTPAddr          string `env:"HTTP_ADDR" env-default:":8080"`
	FirestoreListen   bool   `env:"FIRESTORE_LISTEN" env-default:"true"`
	NATSURL           string `env:"NATS_URL"`
	NATSSubjectPrefix string `env:"NATS_SUBJECT_PREFIX" env-default:"cayyap"`

	RedisAddr         string        `env:"REDIS_ADDR"`
	RedisPassword     string        `env:"REDIS_PASSWORD"`
	RedisDB           int           `env:"REDIS_DB" env-default:"0"`
	DirectoryCacheTTL time.Duration `env:"DIRECTORY_CACHE_TTL" env-default:"60s"`

	SummaryCron       string        `env:"SUMMARY_CRON" env-default:"@hourly"`
	DiscordWebhookURL string        `env:"DISCORD_WEBHOOK_URL"`
	RequestTimeout    time.Duration `env:"REQUEST_TIMEOUT" env-default:"30s"`
	LogLevel          string        `env:"LOG_LEVEL" env-default:"info"`
}

const defaultTimeout = 30 * time.Second

// Load builds a Config from environment variables, reading .env first when present.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	return FromEnv()
}

// FromEnv builds a Config from the process environment only.
func FromEnv() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}
	if strings.TrimSpace(cfg.FirebaseProjectID) == "" {
		return nil, errors.New("FIREBASE_PROJECT_ID is required")
	}

	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = defaultTimeout
	}
	if cfg.DirectoryCacheTTL <= 0 {
		cfg.DirectoryCacheTTL = time.Minute
	}
	return &cfg, nil
}

// Collections returns the watched collection names in routing order.
func (c *Config) Collections() []string {
	return []string{c.NotificationsCollection, c.OrdersCollection, c.RelationsCollection}
}
