package config

import "testing"

func TestLoadServerDefaults(t *testing.T) {
	cfg, err := LoadServer()
	if err != nil {
		t.Fatalf("LoadServer() error = %v", err)
	}
	if cfg.DBPath != "basketbet.db" {
		t.Fatalf("DBPath = %q, want basketbet.db", cfg.DBPath)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Fatalf("HTTPAddr = %q, want :8080", cfg.HTTPAddr)
	}
	if cfg.AdminAPIKey != "" {
		t.Fatalf("AdminAPIKey = %q, want empty default", cfg.AdminAPIKey)
	}
}

func TestLoadServerParse(t *testing.T) {
	t.Setenv("DB_PATH", "/var/lib/basketbet/game.db")
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("ADMIN_API_KEY", "s3cret")

	cfg, err := LoadServer()
	if err != nil {
		t.Fatalf("LoadServer() error = %v", err)
	}
	if cfg.DBPath != "/var/lib/basketbet/game.db" {
		t.Fatalf("DBPath = %q", cfg.DBPath)
	}
	if cfg.HTTPAddr != ":9090" {
		t.Fatalf("HTTPAddr = %q, want :9090", cfg.HTTPAddr)
	}
	if cfg.AdminAPIKey != "s3cret" {
		t.Fatalf("AdminAPIKey = %q", cfg.AdminAPIKey)
	}
}
