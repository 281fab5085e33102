package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// KafkaConfig holds Kafka connection settings.
type KafkaConfig struct {
	Enabled     bool
	Brokers     []string
	GroupPrefix string
}

// Load reads a .env file if one exists and returns a viper instance bound to
// environment variables with the given prefix (e.g. PLANNER_SERVICE_PORT).
func Load(prefix string) (*viper.Viper, error) {
	// A missing .env file is normal outside local development.
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix(prefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetDefault("app_env", "development")
	v.SetDefault("kafka_enabled", false)
	v.SetDefault("kafka_brokers", "localhost:9092")
	v.SetDefault("kafka_group_prefix", "")

	return v, nil
}

// BindUnprefixed binds key to the first of envNames, ignoring the prefix.
// Credentials keep their conventional names (GOOGLE_MAPS_API_KEY and friends).
func BindUnprefixed(v *viper.Viper, key string, envNames ...string) error {
	args := append([]string{key}, envNames...)
	return v.BindEnv(args...)
}

// GetServicePort returns the listen address for key, normalized to ":port".
func GetServicePort(v *viper.Viper, key string) string {
	port := strings.TrimSpace(v.GetString(strings.ToLower(key)))
	if port == "" {
		return ""
	}
	if !strings.Contains(port, ":") {
		port = ":" + port
	}
	return port
}

// GetAppEnv returns the deployment environment name.
func GetAppEnv(v *viper.Viper) string {
	return strings.ToLower(v.GetString("app_env"))
}

// GetDuration returns key as a duration, falling back to def when unset or invalid.
func GetDuration(v *viper.Viper, key string, def time.Duration) time.Duration {
	d := v.GetDuration(key)
	if d <= 0 {
		return def
	}
	return d
}

// SplitList splits a comma separated setting, dropping blanks.
func SplitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// LoadKafkaConfig reads Kafka settings.
func LoadKafkaConfig(v *viper.Viper) KafkaConfig {
	return KafkaConfig{
		Enabled:     v.GetBool("kafka_enabled"),
		Brokers:     SplitList(v.GetString("kafka_brokers")),
		GroupPrefix: v.GetString("kafka_group_prefix"),
	}
}
