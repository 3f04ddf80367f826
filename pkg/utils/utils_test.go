package utils

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Name     string `validate:"required"`
	Capacity int    `validate:"min=1"`
	Time     string `validate:"required,timeofday"`
}

func TestValidateStruct(t *testing.T) {
	t.Parallel()
	errs := ValidateStruct(sampleRequest{Capacity: 0, Time: "24:10"})

	assert.Equal(t, "This field is required", errs["Name"])
	assert.Equal(t, "Minimum value is 1", errs["Capacity"])
	assert.Equal(t, "Must be a time in HH:MM format", errs["Time"])
	assert.Equal(t,
		"Capacity: Minimum value is 1; Name: This field is required; Time: Must be a time in HH:MM format",
		FormatValidationErrors(errs))

	assert.Nil(t, ValidateStruct(sampleRequest{Name: "Hall 1", Capacity: 40, Time: "18:30"}))
}

func TestParseInt(t *testing.T) {
	t.Parallel()
	assert.Equal(t, 3, ParseInt("3", 1))
	assert.Equal(t, 1, ParseInt("", 1))
	assert.Equal(t, 10, ParseInt("x", 10))
	assert.Equal(t, 10, ParseInt("-2", 10))
}

func TestGenerateOrderID(t *testing.T) {
	t.Parallel()
	id := GenerateOrderID(time.Date(2025, 3, 1, 14, 5, 9, 0, time.UTC))
	assert.Regexp(t, `^BOOK-20250301-140509-\d{4}$`, id)
}

func TestCalculateTotalPages(t *testing.T) {
	t.Parallel()
	assert.Equal(t, 3, CalculateTotalPages(21, 10))
	assert.Equal(t, 0, CalculateTotalPages(0, 10))
	assert.Equal(t, 20, CalculateOffset(3, 10))
}

func TestLoadConfigFrom(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	content := "APP_NAME=halls\nPORT=9090\nDB_NAME=venue\nREDIS_ADDR=localhost:6379\nSCHEDULE_STRICT_MIDNIGHT=true\nAPP_TIMEZONE=Africa/Casablanca\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	t.Setenv("PORT", "7070")

	cfg, err := LoadConfigFrom(path)
	require.NoError(t, err)

	assert.Equal(t, "halls", cfg.App.Name)
	assert.Equal(t, "7070", cfg.App.Port)
	assert.Equal(t, "venue", cfg.Database.Name)
	assert.Equal(t, int32(10), cfg.Database.MaxConns)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 10*time.Second, cfg.Redis.LockTTL)
	assert.True(t, cfg.Schedule.StrictMidnight)
	assert.Equal(t, 30, cfg.Schedule.BookingWindowDays)
	assert.Equal(t, "venue.events", cfg.AMQP.Exchange)
}

func TestLoadConfigWithoutFile(t *testing.T) {
	t.Setenv("DB_NAME", "fromenv")

	cfg, err := LoadConfigFrom(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, "fromenv", cfg.Database.Name)
	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, time.UTC, cfg.App.Location())
	assert.False(t, cfg.RateLimit.Enabled)
	assert.Equal(t, 60, cfg.RateLimit.Capacity)
	assert.Equal(t, time.Second, cfg.RateLimit.RefillInterval)
	assert.Equal(t, 10*time.Minute, cfg.RateLimit.TTL)
	assert.Equal(t, 10*time.Second, cfg.Redis.LockTTL)
	assert.Empty(t, cfg.App.CORSOrigins)
}

func TestLoadConfigRateLimitFloors(t *testing.T) {
	t.Setenv("RATE_LIMIT_CAPACITY", "0")
	t.Setenv("RATE_LIMIT_REFILL_INTERVAL", "1m")
	t.Setenv("RATE_LIMIT_TTL", "1m")
	t.Setenv("CORS_ORIGINS", "https://a.example, ,https://b.example")

	cfg, err := LoadConfigFrom(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, 1, cfg.RateLimit.Capacity)
	assert.Equal(t, 5*time.Minute, cfg.RateLimit.TTL)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.App.CORSOrigins)
}

func TestLoadConfigLockTTLFloor(t *testing.T) {
	for _, raw := range []string{"0", "-5"} {
		t.Setenv("LOCK_TTL_SECONDS", raw)

		cfg, err := LoadConfigFrom(filepath.Join(t.TempDir(), "missing.env"))
		require.NoError(t, err)
		assert.Equal(t, time.Second, cfg.Redis.LockTTL, raw)
	}
}
