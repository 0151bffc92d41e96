package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		t.Setenv("APP_TIMEZONE", "")
		t.Setenv("EVALUATOR_INTERVAL", "")
		t.Setenv("SMTP_PORT", "")
		t.Setenv("DB_AUTO_MIGRATE", "")

		cfg := Load()

		assert.Equal(t, time.UTC, cfg.Timezone)
		assert.Equal(t, 24*time.Hour, cfg.EvaluatorInterval)
		assert.Equal(t, 587, cfg.SMTP.Port)
		assert.True(t, cfg.DB.AutoMigrate)
		assert.False(t, cfg.IsProduction())
	})

	t.Run("overrides", func(t *testing.T) {
		t.Setenv("APP_ENV", "production")
		t.Setenv("APP_TIMEZONE", "Asia/Jakarta")
		t.Setenv("EVALUATOR_INTERVAL", "1h")
		t.Setenv("SMTP_PORT", "2525")
		t.Setenv("DB_AUTO_MIGRATE", "false")

		cfg := Load()

		assert.Equal(t, "Asia/Jakarta", cfg.Timezone.String())
		assert.Equal(t, time.Hour, cfg.EvaluatorInterval)
		assert.Equal(t, 2525, cfg.SMTP.Port)
		assert.False(t, cfg.DB.AutoMigrate)
		assert.True(t, cfg.IsProduction())
	})

	t.Run("bad values fall back", func(t *testing.T) {
		t.Setenv("APP_TIMEZONE", "Mars/Olympus")
		t.Setenv("EVALUATOR_INTERVAL", "soon")
		t.Setenv("SMTP_PORT", "abc")

		cfg := Load()

		assert.Equal(t, time.UTC, cfg.Timezone)
		assert.Equal(t, 24*time.Hour, cfg.EvaluatorInterval)
		assert.Equal(t, 587, cfg.SMTP.Port)
	})
}
