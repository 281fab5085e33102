package config

import (
	"errors"
	"time"

	"github.com/Kilat-Pet-Delivery/service-route-planner/internal/platform/config"
)

// EnvPrefix prefixes every non-credential environment variable.
const EnvPrefix = "ROUTEPLANNER"

// ServiceConfig holds all configuration for the route planner service.
type ServiceConfig struct {
	Port               string
	AppEnv             string
	MapsConfig         MapsConfig
	LLMConfig          LLMConfig
	KafkaConfig        config.KafkaConfig
	CORSAllowedOrigins []string
}

// MapsConfig holds Google Maps Web Service settings.
type MapsConfig struct {
	APIKey        string
	BaseURL       string
	Timeout       time.Duration
	PhotoMaxWidth int
}

// LLMConfig holds intent extraction model settings.
type LLMConfig struct {
	APIKey      string
	Model       string
	Temperature float32
}

// Load reads configuration from environment variables.
func Load() (*ServiceConfig, error) {
	v, err := config.Load(EnvPrefix)
	if err != nil {
		return nil, err
	}

	v.SetDefault("service_port", ":8000")
	v.SetDefault("maps_base_url", "https://maps.googleapis.com")
	v.SetDefault("photo_max_width", 400)
	v.SetDefault("llm_model", "gemini-2.0-flash")
	v.SetDefault("llm_temperature", 0.2)
	v.SetDefault("cors_allowed_origins", "*")

	if err := config.BindUnprefixed(v, "google_maps_api_key", "GOOGLE_MAPS_API_KEY"); err != nil {
		return nil, err
	}
	if err := config.BindUnprefixed(v, "gemini_api_key", "GEMINI_API_KEY", "GOOGLE_API_KEY"); err != nil {
		return nil, err
	}

	cfg := &ServiceConfig{
		Port:   config.GetServicePort(v, "SERVICE_PORT"),
		AppEnv: config.GetAppEnv(v),
		MapsConfig: MapsConfig{
			APIKey:        v.GetString("google_maps_api_key"),
			BaseURL:       v.GetString("maps_base_url"),
			Timeout:       config.GetDuration(v, "maps_timeout", 10*time.Second),
			PhotoMaxWidth: v.GetInt("photo_max_width"),
		},
		LLMConfig: LLMConfig{
			APIKey:      v.GetString("gemini_api_key"),
			Model:       v.GetString("llm_model"),
			Temperature: float32(v.GetFloat64("llm_temperature")),
		},
		KafkaConfig:        config.LoadKafkaConfig(v),
		CORSAllowedOrigins: config.SplitList(v.GetString("cors_allowed_origins")),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports missing credentials.
func (c *ServiceConfig) Validate() error {
	var errs []error
	if c.MapsConfig.APIKey == "" {
		errs = append(errs, errors.New("GOOGLE_MAPS_API_KEY is not set"))
	}
	if c.LLMConfig.APIKey == "" {
		errs = append(errs, errors.New("GEMINI_API_KEY is not set"))
	}
	return errors.Join(errs...)
}
