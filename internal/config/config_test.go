package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.HTTP.CORSOrigins)
	assert.Equal(t, 8*time.Hour, cfg.Session.TTL)
	assert.Equal(t, time.Second, cfg.Chat.ReplyDelay)
	assert.Equal(t, "en", cfg.DefaultLocale)
	assert.False(t, cfg.DBEnabled)
	assert.False(t, cfg.RedisEnabled)
	assert.Equal(t, 5432, cfg.Database.Port)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example,")
	t.Setenv("CHAT_REPLY_DELAY_MS", "250")
	t.Setenv("SESSION_TTL_MINUTES", "15")
	t.Setenv("DEFAULT_LOCALE", "fa")
	t.Setenv("DB_ENABLED", "true")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("REDIS_ENABLED", "true")
	t.Setenv("REDIS_ADDR", "cache:6379")
	t.Setenv("REDIS_DB", "2")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTP.Addr)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.HTTP.CORSOrigins)
	assert.Equal(t, 250*time.Millisecond, cfg.Chat.ReplyDelay)
	assert.Equal(t, 15*time.Minute, cfg.Session.TTL)
	assert.Equal(t, "fa", cfg.DefaultLocale)
	assert.True(t, cfg.DBEnabled)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 6543, cfg.Database.Port)
	assert.True(t, cfg.RedisEnabled)
	assert.Equal(t, "cache:6379", cfg.Redis.Addr)
	assert.Equal(t, 2, cfg.Redis.DB)
}

func TestLoad_Invalid(t *testing.T) {
	t.Setenv("LOG_FORMAT", "xml")
	t.Setenv("SESSION_SECRET", "short")
	t.Setenv("CHAT_REPLY_DELAY_MS", "-5")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LOG_FORMAT")
	assert.Contains(t, err.Error(), "SESSION_SECRET")
	assert.Contains(t, err.Error(), "CHAT_REPLY_DELAY_MS")
}
