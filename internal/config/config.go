package config

// Supported database drivers.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Practice PracticeConfig `mapstructure:"practice" validate:"required"`
}

// ServerConfig contains HTTP server and logging settings.
type ServerConfig struct {
	Port           int      `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel       string   `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	AllowedOrigins []string `mapstructure:"allowed_origins" validate:"dive,required"`
}

// DatabaseConfig selects the storage backend. For postgres URL is a
// connection string; for sqlite it is a file path.
type DatabaseConfig struct {
	Driver string `mapstructure:"driver" validate:"required,oneof=postgres sqlite"`
	URL    string `mapstructure:"url" validate:"required"`
}

// PracticeConfig contains settings of the interactive trainer.
type PracticeConfig struct {
	DefaultUserID int64 `mapstructure:"default_user_id" validate:"required,gt=0"`
}
