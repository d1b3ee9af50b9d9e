package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"estiloplus-backend/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := config.Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "http://localhost:8080", cfg.BaseURL)
	assert.Equal(t, "images", cfg.SupabaseStorageBucket)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("SUPABASE_URL", "https://project.supabase.co")
	t.Setenv("SUPABASE_STORAGE_BUCKET", "try-on")

	cfg := config.Load()

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, "https://project.supabase.co", cfg.SupabaseURL)
	assert.Equal(t, "try-on", cfg.SupabaseStorageBucket)
}
