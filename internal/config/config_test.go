package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envOf(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestFromEnvDefaults(t *testing.T) {
	cfg, err := FromEnv(envOf(map[string]string{
		"API_BASE_URL": "https://api.example.com/v1/",
	}))
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "https://api.example.com/v1", cfg.APIBaseURL)
	assert.Equal(t, "X-API-Key", cfg.APIKeyHeader)
	assert.Equal(t, "open", cfg.EmptyDayPolicy)
	assert.Equal(t, 15*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 24*time.Hour, cfg.SyncInterval)
	assert.Equal(t, float64(20), cfg.APIRateLimit)
	assert.NotEmpty(t, cfg.SessionFile)
	assert.False(t, cfg.JournalEnabled())
	assert.False(t, cfg.CacheEnabled())
	assert.False(t, cfg.TelegramEnabled())
}

func TestFromEnvOverrides(t *testing.T) {
	cfg, err := FromEnv(envOf(map[string]string{
		"ENV":                    "production",
		"API_BASE_URL":           "http://localhost:3000",
		"CLUB_ID":                "7",
		"EMPTY_DAY_POLICY":       "Closed",
		"SYNC_FIELDS":            "1, 2,3",
		"SYNC_INTERVAL":          "6h",
		"TELEGRAM_TOKEN":         "token",
		"TELEGRAM_ADMIN_CHAT_ID": "-100500",
		"TIMEZONE":               "UTC",
		"REDIS_ADDR":             "localhost:6379",
		"REDIS_DB":               "2",
	}))
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, int64(7), cfg.ClubID)
	assert.Equal(t, "closed", cfg.EmptyDayPolicy)
	assert.Equal(t, []int64{1, 2, 3}, cfg.SyncFields)
	assert.Equal(t, 6*time.Hour, cfg.SyncInterval)
	assert.Equal(t, int64(-100500), cfg.TelegramAdminChatID)
	assert.Equal(t, time.UTC, cfg.Location)
	assert.Equal(t, 2, cfg.RedisDB)
	assert.True(t, cfg.CacheEnabled())
	assert.True(t, cfg.TelegramEnabled())
}

func TestFromEnvErrors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"missing base url", map[string]string{}},
		{"bad policy", map[string]string{"API_BASE_URL": "x", "EMPTY_DAY_POLICY": "maybe"}},
		{"bad club id", map[string]string{"API_BASE_URL": "x", "CLUB_ID": "abc"}},
		{"bad timeout", map[string]string{"API_BASE_URL": "x", "HTTP_TIMEOUT": "-1s"}},
		{"bad sync fields", map[string]string{"API_BASE_URL": "x", "SYNC_FIELDS": "1,b"}},
		{"bad rate", map[string]string{"API_BASE_URL": "x", "API_RATE_LIMIT": "0"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromEnv(envOf(tt.env))
			assert.Error(t, err)
		})
	}
}
