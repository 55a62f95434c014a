package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database     DatabaseConfig
	JWT          JWTConfig
	App          AppConfig
	SMTP         SMTPConfig
	Leave        LeaveConfig
	Notification NotificationConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port               int
	Env                string
	LogLevel           string
	CORSAllowedOrigins []string
	// ImportRateLimit is the number of roster imports a caller may start per minute.
	ImportRateLimit int
}

// SMTPConfig holds outgoing mail settings. An empty Host disables sending.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	FromName string
}

// LeaveConfig holds engine defaults.
type LeaveConfig struct {
	DefaultTimezone string
	CalendarDomain  string
}

type NotificationConfig struct {
	Workers   int
	QueueSize int
}

// Load reads .env when present, then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	config := &Config{}

	dbPort, err := getEnvInt("DB_PORT", 5432)
	if err != nil {
		return nil, err
	}
	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", ""),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "chll-leave"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	appPort, err := getEnvInt("APP_PORT", 8080)
	if err != nil {
		return nil, err
	}
	importLimit, err := getEnvInt("IMPORT_RATE_LIMIT", 6)
	if err != nil {
		return nil, err
	}
	config.App = AppConfig{
		Port:               appPort,
		Env:                getEnv("APP_ENV", "development"),
		LogLevel:           getEnv("LOG_LEVEL", ""),
		CORSAllowedOrigins: getEnvSlice("CORS_ALLOWED_ORIGINS"),
		ImportRateLimit:    importLimit,
	}

	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
	}

	smtpPort, err := getEnvInt("SMTP_PORT", 587)
	if err != nil {
		return nil, err
	}
	config.SMTP = SMTPConfig{
		Host:     getEnv("SMTP_HOST", ""),
		Port:     smtpPort,
		Username: getEnv("SMTP_USERNAME", ""),
		Password: getEnv("SMTP_PASSWORD", ""),
		From:     getEnv("SMTP_FROM", "noreply@chll.cz"),
		FromName: getEnv("SMTP_FROM_NAME", "Chll"),
	}

	config.Leave = LeaveConfig{
		DefaultTimezone: getEnv("LEAVE_DEFAULT_TIMEZONE", "Europe/Prague"),
		CalendarDomain:  getEnv("CALENDAR_DOMAIN", "chll.cz"),
	}

	workers, err := getEnvInt("NOTIFICATION_WORKERS", 2)
	if err != nil {
		return nil, err
	}
	queueSize, err := getEnvInt("NOTIFICATION_QUEUE_SIZE", 256)
	if err != nil {
		return nil, err
	}
	config.Notification = NotificationConfig{
		Workers:   workers,
		QueueSize: queueSize,
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if _, err := time.ParseDuration(c.JWT.AccessExpiration); err != nil {
		return fmt.Errorf("invalid JWT_ACCESS_EXPIRATION_TIME: %w", err)
	}
	if c.HasDatabase() && c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required when DB_HOST is set")
	}
	if _, err := time.LoadLocation(c.Leave.DefaultTimezone); err != nil {
		return fmt.Errorf("invalid LEAVE_DEFAULT_TIMEZONE: %w", err)
	}
	if c.Leave.CalendarDomain == "" {
		return fmt.Errorf("CALENDAR_DOMAIN is required")
	}
	if c.Notification.Workers < 1 {
		return fmt.Errorf("NOTIFICATION_WORKERS must be at least 1")
	}
	if c.Notification.QueueSize < 1 {
		return fmt.Errorf("NOTIFICATION_QUEUE_SIZE must be at least 1")
	}
	if c.App.ImportRateLimit < 1 {
		return fmt.Errorf("IMPORT_RATE_LIMIT must be at least 1")
	}
	return nil
}

// HasDatabase reports whether a PostgreSQL host is configured. Without one the
// server runs on the in-memory store.
func (c *Config) HasDatabase() bool {
	return c.Database.Host != ""
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getEnvSlice(env string) []string {
	value := getEnv(env, "")
	if value == "" {
		return []string{}
	}
	var result []string
	for _, v := range strings.Split(value, ",") {
		if v = strings.TrimSpace(v); v != "" {
			result = append(result, v)
		}
	}
	return result
}
