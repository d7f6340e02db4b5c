package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/ilyakaznacheev/cleanenv"
)

// Load reads configuration from a TOML file and environment variables.
// Priority: ENV > file > defaults. A missing file is not an error; the
// configuration then comes from ENV and defaults only.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigPath()
	}

	var cfg Config
	if _, err := os.Stat(path); err == nil {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	} else if errors.Is(err, fs.ErrNotExist) {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("config: read env: %w", err)
		}
	} else {
		return nil, fmt.Errorf("config: stat %s: %w", path, err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}
	return &cfg, nil
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	cfg := Config{
		Parse:    ParseConfig{Output: "output/parse_result.json", Progress: ProgressAuto},
		Database: DatabaseConfig{Driver: DriverSQLite},
		Log:      LogConfig{Level: "warn", Format: "text"},
	}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Database.Driver == DriverSQLite && c.Database.DSN == "" {
		c.Database.DSN = DefaultDBPath()
	}
}

// Encode writes cfg as TOML.
func Encode(w io.Writer, cfg Config) error {
	return toml.NewEncoder(w).Encode(cfg)
}

// DefaultTemplate is written when the config file is created.
const DefaultTemplate = `# corpstat configuration

[parse]
# Where the JSON statistics document is written.
output = "output/parse_result.json"
# Progress bar: auto (only on a terminal), always, never.
progress = "auto"

[database]
# Persist word and transition counts after every parse.
enabled = false
# sqlite or postgres.
driver = "sqlite"
# Empty means %s for sqlite.
dsn = ""

[log]
# debug, info, warn, error.
level = "warn"
# text or json.
format = "text"
`

// Template returns DefaultTemplate with the default database path filled in.
func Template() string {
	return fmt.Sprintf(DefaultTemplate, DefaultDBPath())
}
