package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/teamtrack/task-tracker-api/internal/constants"
)

// DefaultJWTSecret is the development fallback signing key. The server
// refuses to start with it in release mode.
const DefaultJWTSecret = "default-secret-change-me"

// Config holds application level configuration aggregated from env/config files.
type Config struct {
	Server struct {
		Addr    string
		GinMode string
	}
	Database struct {
		Host     string
		Port     string
		User     string
		Password string
		Name     string
		SSLMode  string
	}
	Auth struct {
		JWTSecret       string
		TokenTTLMinutes int
	}
}

// Load reads configuration from environment variables and an optional config file.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("TASKTRACKER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("server.addr", "0.0.0.0:8080")
	v.SetDefault("server.ginmode", "debug")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.user", "taskuser")
	v.SetDefault("database.password", "taskpassword")
	v.SetDefault("database.name", "task_tracker")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("auth.jwtsecret", DefaultJWTSecret)
	v.SetDefault("auth.tokenttlminutes", constants.DefaultTokenTTLMinutes)

	v.SetConfigName("config")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // optional file

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}
