package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("OUTBOX_MAX_ATTEMPTS", "")
	t.Setenv("OUTBOX_BASE_BACKOFF", "")
	t.Setenv("SEED_COLLEGES", "")

	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 8, cfg.OutboxMaxAttempts)
	assert.Equal(t, 5*time.Second, cfg.OutboxBaseBackoff)
	assert.Equal(t, "@every 30s", cfg.OutboxRetrySchedule)
	assert.False(t, cfg.SeedColleges)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("OUTBOX_MAX_ATTEMPTS", "3")
	t.Setenv("OUTBOX_BASE_BACKOFF", "250ms")
	t.Setenv("SEED_COLLEGES", "TRUE")

	cfg := Load()

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 3, cfg.OutboxMaxAttempts)
	assert.Equal(t, 250*time.Millisecond, cfg.OutboxBaseBackoff)
	assert.True(t, cfg.SeedColleges)
}

func TestLoadIgnoresInvalidNumbers(t *testing.T) {
	t.Setenv("OUTBOX_MAX_ATTEMPTS", "zero")
	t.Setenv("OUTBOX_MAX_BACKOFF", "-1s")

	cfg := Load()

	assert.Equal(t, 8, cfg.OutboxMaxAttempts)
	assert.Equal(t, 10*time.Minute, cfg.OutboxMaxBackoff)
}
