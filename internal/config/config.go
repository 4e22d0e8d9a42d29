package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	commoncfg "iot-dashboard/common/config"
)

// Config iot-dashboard (HTTP API) settings
type Config struct {
	HTTP struct {
		Addr        string
		CORSOrigins []string
	}
	Log struct {
		Level  string
		Format string
	}
	Session struct {
		Secret string
		TTL    time.Duration
	}
	Chat struct {
		ReplyDelay time.Duration
	}
	DefaultLocale string

	// Optional backing services, off unless explicitly enabled
	DBEnabled    bool
	Database     commoncfg.DatabaseConfig
	RedisEnabled bool
	Redis        commoncfg.RedisConfig
	EventStream  string
}

func Load() (*Config, error) {
	cfg := &Config{}
	cfg.HTTP.Addr = getEnv("HTTP_ADDR", ":8080")
	cfg.HTTP.CORSOrigins = splitList(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"))

	cfg.Log.Level = getEnv("LOG_LEVEL", "info")
	cfg.Log.Format = getEnv("LOG_FORMAT", "json")

	cfg.Session.Secret = getEnv("SESSION_SECRET", "iot-dashboard-dev-secret")
	cfg.Session.TTL = time.Duration(parseInt(getEnv("SESSION_TTL_MINUTES", "480"), 480)) * time.Minute
	cfg.Chat.ReplyDelay = time.Duration(parseInt(getEnv("CHAT_REPLY_DELAY_MS", "1000"), 1000)) * time.Millisecond
	cfg.DefaultLocale = getEnv("DEFAULT_LOCALE", "en")

	cfg.DBEnabled = getEnv("DB_ENABLED", "false") == "true"
	cfg.Database = commoncfg.DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "postgres",
		Password: "postgres",
		Database: "iot_dashboard",
		SSLMode:  "disable",
	}
	cfg.Database.LoadFromEnv("DB")

	cfg.RedisEnabled = getEnv("REDIS_ENABLED", "false") == "true"
	cfg.Redis = commoncfg.RedisConfig{Addr: "localhost:6379"}
	cfg.Redis.LoadFromEnv("REDIS")
	cfg.EventStream = getEnv("EVENT_STREAM", "iot-dashboard:events")

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the service cannot start with
func (c *Config) Validate() error {
	var errs []error
	if c.HTTP.Addr == "" {
		errs = append(errs, errors.New("HTTP_ADDR is required"))
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		errs = append(errs, fmt.Errorf("LOG_FORMAT must be json or console, got %q", c.Log.Format))
	}
	if len(c.Session.Secret) < 16 {
		errs = append(errs, errors.New("SESSION_SECRET must be at least 16 bytes"))
	}
	if c.Session.TTL <= 0 {
		errs = append(errs, errors.New("SESSION_TTL_MINUTES must be positive"))
	}
	if c.Chat.ReplyDelay <= 0 {
		errs = append(errs, errors.New("CHAT_REPLY_DELAY_MS must be positive"))
	}
	if c.DefaultLocale == "" {
		errs = append(errs, errors.New("DEFAULT_LOCALE is required"))
	}
	if c.RedisEnabled && c.EventStream == "" {
		errs = append(errs, errors.New("EVENT_STREAM is required when REDIS_ENABLED"))
	}
	return errors.Join(errs...)
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseInt(s string, def int) int {
	i, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return i
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
