package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/BurntSushi/toml"
)

func writeTOML(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write toml: %v", err)
	}
	return path
}

func TestLoadDefaultsWithoutFile(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/data")
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Parse.Output != "output/parse_result.json" {
		t.Fatalf("unexpected output %q", cfg.Parse.Output)
	}
	if cfg.Parse.Progress != ProgressAuto {
		t.Fatalf("unexpected progress %q", cfg.Parse.Progress)
	}
	if cfg.Database.Enabled {
		t.Fatalf("database should be disabled by default")
	}
	if cfg.Database.Driver != DriverSQLite {
		t.Fatalf("unexpected driver %q", cfg.Database.Driver)
	}
	if want := filepath.Join("/data", "corpstat", "corpstat.db"); cfg.Database.DSN != want {
		t.Fatalf("expected dsn %q, got %q", want, cfg.Database.DSN)
	}
	if cfg.Log.Level != "warn" || cfg.Log.Format != "text" {
		t.Fatalf("unexpected log config %+v", cfg.Log)
	}
}

func TestLoadFile(t *testing.T) {
	path := writeTOML(t, `
[parse]
output = "stats.json"
progress = "never"

[database]
enabled = true
driver = "postgres"
dsn = "postgres://u:p@localhost:5432/corpus"

[log]
level = "debug"
format = "json"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Parse.Output != "stats.json" || cfg.Parse.Progress != ProgressNever {
		t.Fatalf("unexpected parse config %+v", cfg.Parse)
	}
	if !cfg.Database.Enabled || cfg.Database.Driver != DriverPostgres {
		t.Fatalf("unexpected database config %+v", cfg.Database)
	}
	if cfg.Database.DSN != "postgres://u:p@localhost:5432/corpus" {
		t.Fatalf("unexpected dsn %q", cfg.Database.DSN)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "json" {
		t.Fatalf("unexpected log config %+v", cfg.Log)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := writeTOML(t, "[database]\nenabled = false\ndsn = \"/tmp/file.db\"\n")
	t.Setenv("CORPSTAT_DB_ENABLED", "true")
	t.Setenv("CORPSTAT_DB_DSN", "/tmp/env.db")
	t.Setenv("CORPSTAT_OUTPUT", "env.json")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !cfg.Database.Enabled {
		t.Fatalf("expected env to enable the database")
	}
	if cfg.Database.DSN != "/tmp/env.db" {
		t.Fatalf("expected env dsn, got %q", cfg.Database.DSN)
	}
	if cfg.Parse.Output != "env.json" {
		t.Fatalf("expected env output, got %q", cfg.Parse.Output)
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "driver", content: "[database]\ndriver = \"mysql\"\n"},
		{name: "postgres without dsn", content: "[database]\nenabled = true\ndriver = \"postgres\"\n"},
		{name: "progress", content: "[parse]\nprogress = \"sometimes\"\n"},
		{name: "level", content: "[log]\nlevel = \"loud\"\n"},
		{name: "format", content: "[log]\nformat = \"xml\"\n"},
		{name: "syntax", content: "[log\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(writeTOML(t, tt.content)); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestTemplateDecodesToDefaults(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/data")
	var cfg Config
	if _, err := toml.Decode(Template(), &cfg); err != nil {
		t.Fatalf("decode template: %v", err)
	}
	cfg.applyDefaults()
	if cfg != Default() {
		t.Fatalf("template %+v differs from defaults %+v", cfg, Default())
	}
	if !strings.Contains(Template(), filepath.Join("/data", "corpstat", "corpstat.db")) {
		t.Fatalf("template should mention the default database path")
	}
}

func TestEncode(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, Default()); err != nil {
		t.Fatalf("encode: %v", err)
	}
	var cfg Config
	if _, err := toml.Decode(buf.String(), &cfg); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if cfg != Default() {
		t.Fatalf("round trip mismatch: %+v", cfg)
	}
}

func TestXDGPaths(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/cfg")
	t.Setenv("XDG_DATA_HOME", "/data")
	if got := DefaultConfigPath(); got != filepath.Join("/cfg", "corpstat", "config.toml") {
		t.Fatalf("unexpected config path %q", got)
	}
	if got := DefaultDBPath(); got != filepath.Join("/data", "corpstat", "corpstat.db") {
		t.Fatalf("unexpected db path %q", got)
	}
}
