// Package config defines the configuration structure types shared across
// the application.
package config

// HelpdeskConfig holds the connection settings for the remote helpdesk API.
type HelpdeskConfig struct {
	BaseURL          string `mapstructure:"base_url" validate:"required,url"`
	Token            string `mapstructure:"token" validate:"required"`
	TimeoutSeconds   int    `mapstructure:"timeout_seconds" validate:"gte=1"`
	PageSize         int    `mapstructure:"page_size" validate:"gte=1,lte=1000"`
	ActivityPageSize int    `mapstructure:"activity_page_size" validate:"gte=1,lte=1000"`
}

// DatabaseConfig holds the local store settings.
type DatabaseConfig struct {
	Path string `mapstructure:"path" validate:"required"`
}

// LoggerConfig holds logging configuration.
type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

// SyncConfig holds tunables for the sync run itself.
type SyncConfig struct {
	// DefaultDays is the size of the date window when no --from is given.
	DefaultDays int `mapstructure:"default_days" validate:"gte=1"`
	// OperatorFallback is the identity used when an activity carries no
	// operator reference.
	OperatorFallback string `mapstructure:"operator_fallback"`
}
