package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Database.Host != "localhost" {
		t.Errorf("expected default db host localhost, got %q", cfg.Database.Host)
	}
	if cfg.Logs.MaxLimit != 500 {
		t.Errorf("expected default max log limit 500, got %d", cfg.Logs.MaxLimit)
	}
	if cfg.Server.APIKey != "" {
		t.Errorf("expected auth disabled by default, got key %q", cfg.Server.APIKey)
	}
}

func TestLoad_FileValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
server:
  port: 9999
database:
  host: db.internal
  name: roster
logs:
  max_limit: 50
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != 9999 {
		t.Errorf("expected port 9999, got %d", cfg.Server.Port)
	}
	if cfg.Database.Host != "db.internal" {
		t.Errorf("expected host db.internal, got %q", cfg.Database.Host)
	}
	if cfg.Logs.MaxLimit != 50 {
		t.Errorf("expected max limit 50, got %d", cfg.Logs.MaxLimit)
	}
	// Untouched sections still get defaults.
	if cfg.Database.Port != 5432 {
		t.Errorf("expected default db port, got %d", cfg.Database.Port)
	}
}

func TestLoad_EnvOverridesBeatFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("server:\n  port: 9000\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("SENTINEL_SERVER_PORT", "7001")
	t.Setenv("SENTINEL_API_KEY", "secret")
	t.Setenv("SENTINEL_DB_PASSWORD", "hunter2")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != 7001 {
		t.Errorf("expected env port 7001, got %d", cfg.Server.Port)
	}
	if cfg.Server.APIKey != "secret" {
		t.Errorf("expected env api key, got %q", cfg.Server.APIKey)
	}
	if cfg.Database.Password != "hunter2" {
		t.Errorf("expected env db password, got %q", cfg.Database.Password)
	}
}

func TestDSN(t *testing.T) {
	d := DatabaseConfig{Host: "h", Port: 5433, Name: "n", User: "u", Password: "p"}
	want := "postgres://u:p@h:5433/n?sslmode=disable"
	if got := d.DSN(); got != want {
		t.Errorf("DSN: got %q, want %q", got, want)
	}
}
