package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	DataSource   string
	PriceCSVPath string
	RentCSVPath  string
	SQLitePath   string

	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string

	HTTPAddr           string
	RequestTimeout     time.Duration
	CORSAllowedOrigins []string

	RefreshSchedule string
	ROIModelURL     string
	ROIModelTimeout time.Duration

	DefaultDownPaymentPct  float64
	DefaultInterestRatePct float64
	DefaultMaintenancePct  float64

	MaxRetries     int
	MaxConcurrency int

	TelegramBotToken string
	LogLevel         string
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	return &Config{
		DataSource:   strings.ToLower(getEnv("DATA_SOURCE", "csv")),
		PriceCSVPath: getEnv("PRICE_CSV_PATH", "./data/prices.csv"),
		RentCSVPath:  getEnv("RENT_CSV_PATH", "./data/rents.csv"),
		SQLitePath:   getEnv("SQLITE_PATH", "./data/proptech.db"),

		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:     getEnv("POSTGRES_USER", "proptech"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", "proptech123"),
		PostgresDB:       getEnv("POSTGRES_DB", "proptech_db"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),

		HTTPAddr:           getEnv("HTTP_ADDR", ":5001"),
		RequestTimeout:     time.Duration(getEnvInt("REQUEST_TIMEOUT_SEC", 10)) * time.Second,
		CORSAllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS", []string{"*"}),

		RefreshSchedule: getEnv("REFRESH_SCHEDULE", ""),
		ROIModelURL:     getEnv("ROI_MODEL_URL", ""),
		ROIModelTimeout: time.Duration(getEnvInt("ROI_MODEL_TIMEOUT_MS", 2000)) * time.Millisecond,

		DefaultDownPaymentPct:  getEnvFloat("DEFAULT_DOWN_PAYMENT_PCT", 20),
		DefaultInterestRatePct: getEnvFloat("DEFAULT_INTEREST_RATE_PCT", 8.5),
		DefaultMaintenancePct:  getEnvFloat("DEFAULT_MAINTENANCE_PCT", 2),

		MaxRetries:     getEnvInt("MAX_RETRIES", 3),
		MaxConcurrency: getEnvInt("MAX_CONCURRENCY", 4),

		TelegramBotToken: getEnv("TELEGRAM_BOT_TOKEN", ""),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
	}
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return "host=" + c.PostgresHost +
		" port=" + c.PostgresPort +
		" user=" + c.PostgresUser +
		" password=" + c.PostgresPassword +
		" dbname=" + c.PostgresDB +
		" sslmode=" + c.PostgresSSLMode
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if val := os.Getenv(key); val != "" {
		f, err := strconv.ParseFloat(val, 64)
		if err == nil {
			return f
		}
	}
	return fallback
}

// getEnvList splits a comma-separated variable, dropping empty items.
func getEnvList(key string, fallback []string) []string {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	var out []string
	for _, item := range strings.Split(val, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
