package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setCredentials(t *testing.T) {
	t.Setenv("GOOGLE_MAPS_API_KEY", "maps-key")
	t.Setenv("GEMINI_API_KEY", "gemini-key")
}

func TestLoadDefaults(t *testing.T) {
	setCredentials(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8000", cfg.Port)
	assert.Equal(t, "development", cfg.AppEnv)
	assert.Equal(t, "maps-key", cfg.MapsConfig.APIKey)
	assert.Equal(t, "https://maps.googleapis.com", cfg.MapsConfig.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.MapsConfig.Timeout)
	assert.Equal(t, 400, cfg.MapsConfig.PhotoMaxWidth)
	assert.Equal(t, "gemini-key", cfg.LLMConfig.APIKey)
	assert.Equal(t, "gemini-2.0-flash", cfg.LLMConfig.Model)
	assert.InDelta(t, 0.2, cfg.LLMConfig.Temperature, 1e-6)
	assert.False(t, cfg.KafkaConfig.Enabled)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
}

func TestLoadOverrides(t *testing.T) {
	setCredentials(t)
	t.Setenv("ROUTEPLANNER_SERVICE_PORT", "9090")
	t.Setenv("ROUTEPLANNER_MAPS_TIMEOUT", "4s")
	t.Setenv("ROUTEPLANNER_LLM_MODEL", "gemini-2.5-flash")
	t.Setenv("ROUTEPLANNER_KAFKA_ENABLED", "true")
	t.Setenv("ROUTEPLANNER_KAFKA_BROKERS", "kafka:9092")
	t.Setenv("ROUTEPLANNER_CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Port)
	assert.Equal(t, 4*time.Second, cfg.MapsConfig.Timeout)
	assert.Equal(t, "gemini-2.5-flash", cfg.LLMConfig.Model)
	assert.True(t, cfg.KafkaConfig.Enabled)
	assert.Equal(t, []string{"kafka:9092"}, cfg.KafkaConfig.Brokers)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
}

func TestLoadAcceptsGoogleAPIKey(t *testing.T) {
	t.Setenv("GOOGLE_MAPS_API_KEY", "maps-key")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("GOOGLE_API_KEY", "google-key")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "google-key", cfg.LLMConfig.APIKey)
}

func TestLoadRequiresCredentials(t *testing.T) {
	t.Setenv("GOOGLE_MAPS_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("GOOGLE_API_KEY", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GOOGLE_MAPS_API_KEY")
	assert.Contains(t, err.Error(), "GEMINI_API_KEY")
}
