package config

import (
	"fmt"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateConfig checks that every required setting is present. Startup
// aborts on the first missing value.
func ValidateConfig(cfg *Config) error {
	required := map[string]string{
		"server_port": cfg.ServerPort,
		"db_host":     cfg.DBHost,
		"db_port":     cfg.DBPort,
		"db_user":     cfg.DBUser,
		"db_password": cfg.DBPassword,
		"db_name":     cfg.DBName,
		"db_ssl_mode": cfg.DBSSLMode,
	}

	for field, value := range required {
		if value == "" {
			return ValidationError{Field: field, Message: "required value is missing"}
		}
	}

	return nil
}
