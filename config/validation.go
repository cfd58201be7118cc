package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateConfig checks that the loaded configuration is usable for the
// current environment.
func ValidateConfig(cfg *Config) error {
	switch cfg.DBDriver {
	case "sqlite":
		if cfg.DBPath == "" {
			return ValidationError{Field: "DB_PATH", Message: "required with the sqlite driver"}
		}
	case "postgres":
		if cfg.DBUser == "" {
			return ValidationError{Field: "DB_USER", Message: "required with the postgres driver"}
		}
		if cfg.DBName == "" {
			return ValidationError{Field: "DB_NAME", Message: "required with the postgres driver"}
		}
	default:
		return ValidationError{Field: "DB_DRIVER", Message: fmt.Sprintf("unsupported driver %q", cfg.DBDriver)}
	}

	if cfg.JWTSecret == "" {
		if IsProduction() {
			return ValidationError{Field: "JWT_SECRET", Message: "required in production"}
		}
		cfg.JWTSecret = "dev-secret"
	}

	if cfg.ServerPort == "" {
		return ValidationError{Field: "SERVER_PORT", Message: "must not be empty"}
	}

	return nil
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
