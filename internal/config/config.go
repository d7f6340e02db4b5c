// Package config loads corpstat settings from TOML and the environment.
package config

// Config is the root configuration.
type Config struct {
	Parse    ParseConfig    `toml:"parse"`
	Database DatabaseConfig `toml:"database"`
	Log      LogConfig      `toml:"log"`
}

// ParseConfig holds settings for a parse run.
type ParseConfig struct {
	Output   string `toml:"output"   env:"CORPSTAT_OUTPUT"   env-default:"output/parse_result.json"`
	Progress string `toml:"progress" env:"CORPSTAT_PROGRESS" env-default:"auto"`
}

// DatabaseConfig holds persistence settings. An empty DSN with the sqlite
// driver means the default database under the XDG data home.
type DatabaseConfig struct {
	Enabled bool   `toml:"enabled" env:"CORPSTAT_DB_ENABLED" env-default:"false"`
	Driver  string `toml:"driver"  env:"CORPSTAT_DB_DRIVER"  env-default:"sqlite"`
	DSN     string `toml:"dsn"     env:"CORPSTAT_DB_DSN"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `toml:"level"  env:"CORPSTAT_LOG_LEVEL"  env-default:"warn"`
	Format string `toml:"format" env:"CORPSTAT_LOG_FORMAT" env-default:"text"`
}

// Database drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Progress modes.
const (
	ProgressAuto   = "auto"
	ProgressAlways = "always"
	ProgressNever  = "never"
)
