package config

import (
	"fmt"
	"slices"
	"strings"
)

// Validate checks enumerated values. Load calls it automatically.
func (c *Config) Validate() error {
	if err := c.Parse.validate(); err != nil {
		return fmt.Errorf("parse: %w", err)
	}
	if err := c.Database.validate(); err != nil {
		return fmt.Errorf("database: %w", err)
	}
	if err := c.Log.validate(); err != nil {
		return fmt.Errorf("log: %w", err)
	}
	return nil
}

func (p ParseConfig) validate() error {
	if !slices.Contains([]string{ProgressAuto, ProgressAlways, ProgressNever}, p.Progress) {
		return fmt.Errorf("progress must be auto, always or never (got %q)", p.Progress)
	}
	return nil
}

func (d DatabaseConfig) validate() error {
	switch d.Driver {
	case DriverSQLite:
	case DriverPostgres:
		if d.Enabled && d.DSN == "" {
			return fmt.Errorf("dsn is required for the postgres driver")
		}
	default:
		return fmt.Errorf("unknown driver %q", d.Driver)
	}
	return nil
}

func (l LogConfig) validate() error {
	if !slices.Contains([]string{"debug", "info", "warn", "error"}, strings.ToLower(l.Level)) {
		return fmt.Errorf("unknown level %q", l.Level)
	}
	if !slices.Contains([]string{"text", "json"}, strings.ToLower(l.Format)) {
		return fmt.Errorf("unknown format %q", l.Format)
	}
	return nil
}
