package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Environment string
	LogLevel    string

	APIBaseURL   string
	APIKeyHeader string
	APIKey       string // переопределяет сохранённую сессию
	ClubID       int64
	HTTPTimeout  time.Duration
	APIRateLimit float64

	SessionFile    string
	EmptyDayPolicy string
	Location       *time.Location

	DBDSN string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	TelegramToken       string
	TelegramAdminChatID int64

	SyncFields   []int64
	SyncInterval time.Duration
}

func Load() (*Config, error) {
	// Пытаемся загрузить .env файл (игнорируем ошибку, если файла нет)
	if err := godotenv.Load(".env"); err != nil {
		log.Println("⚠️  No .env file found, using environment variables")
	} else {
		log.Println("✅ Loaded configuration from .env file")
	}

	return FromEnv(os.Getenv)
}

// FromEnv собирает конфиг из функции чтения переменных окружения
func FromEnv(getenv func(string) string) (*Config, error) {
	cfg := &Config{
		Environment:    getenv("ENV"),
		LogLevel:       strings.ToLower(getenv("LOG_LEVEL")),
		APIBaseURL:     strings.TrimRight(getenv("API_BASE_URL"), "/"),
		APIKeyHeader:   getenv("API_KEY_HEADER"),
		APIKey:         getenv("API_KEY"),
		SessionFile:    getenv("SESSION_FILE"),
		EmptyDayPolicy: strings.ToLower(getenv("EMPTY_DAY_POLICY")),
		DBDSN:          getenv("DB_DSN"),
		RedisAddr:      getenv("REDIS_ADDR"),
		RedisPassword:  getenv("REDIS_PASSWORD"),
		TelegramToken:  getenv("TELEGRAM_TOKEN"),
	}

	// Устанавливаем дефолтные значения
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}
	if cfg.APIKeyHeader == "" {
		cfg.APIKeyHeader = "X-API-Key"
	}
	if cfg.EmptyDayPolicy == "" {
		cfg.EmptyDayPolicy = "open"
	}
	if cfg.EmptyDayPolicy != "open" && cfg.EmptyDayPolicy != "closed" {
		return nil, fmt.Errorf("EMPTY_DAY_POLICY must be open or closed, got %q", cfg.EmptyDayPolicy)
	}
	if cfg.SessionFile == "" {
		cfg.SessionFile = defaultSessionFile()
	}

	var err error
	if cfg.ClubID, err = parseInt64(getenv, "CLUB_ID"); err != nil {
		return nil, err
	}
	if cfg.TelegramAdminChatID, err = parseInt64(getenv, "TELEGRAM_ADMIN_CHAT_ID"); err != nil {
		return nil, err
	}
	if cfg.HTTPTimeout, err = parseDuration(getenv, "HTTP_TIMEOUT", 15*time.Second); err != nil {
		return nil, err
	}
	if cfg.SyncInterval, err = parseDuration(getenv, "SYNC_INTERVAL", 24*time.Hour); err != nil {
		return nil, err
	}

	cfg.APIRateLimit = 20
	if v := getenv("API_RATE_LIMIT"); v != "" {
		cfg.APIRateLimit, err = strconv.ParseFloat(v, 64)
		if err != nil || cfg.APIRateLimit <= 0 {
			return nil, fmt.Errorf("API_RATE_LIMIT must be a positive number, got %q", v)
		}
	}

	if v := getenv("REDIS_DB"); v != "" {
		cfg.RedisDB, err = strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("REDIS_DB must be an integer, got %q", v)
		}
	}

	cfg.Location = time.Local
	if tz := getenv("TIMEZONE"); tz != "" {
		cfg.Location, err = time.LoadLocation(tz)
		if err != nil {
			return nil, fmt.Errorf("load timezone %q: %w", tz, err)
		}
	}

	for _, raw := range strings.Split(getenv("SYNC_FIELDS"), ",") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("SYNC_FIELDS contains invalid field id %q", raw)
		}
		cfg.SyncFields = append(cfg.SyncFields, id)
	}

	// Проверяем обязательные поля
	if cfg.APIBaseURL == "" {
		return nil, fmt.Errorf("API_BASE_URL is required but not set")
	}

	return cfg, nil
}

// IsProduction включён ли production режим
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// JournalEnabled настроена ли база журнала синхронизаций
func (c *Config) JournalEnabled() bool {
	return c.DBDSN != ""
}

// CacheEnabled настроен ли Redis
func (c *Config) CacheEnabled() bool {
	return c.RedisAddr != ""
}

// TelegramEnabled настроен ли Telegram
func (c *Config) TelegramEnabled() bool {
	return c.TelegramToken != ""
}

func parseInt64(getenv func(string) string, key string) (int64, error) {
	v := getenv(key)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer, got %q", key, v)
	}
	return n, nil
}

func parseDuration(getenv func(string) string, key string, fallback time.Duration) (time.Duration, error) {
	v := getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("%s must be a positive duration, got %q", key, v)
	}
	return d, nil
}

func defaultSessionFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "clubadmin", "session.json")
}
