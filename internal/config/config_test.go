package config

import "testing"

func TestLoadFrom_Defaults(t *testing.T) {
	cfg, err := LoadFrom(map[string]string{})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.HTTPAddr != ":8080" || cfg.MigrationsDir != "db/migrations" || cfg.CORSOrigin != "*" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.UsePostgres() || cfg.JournalPath != "" {
		t.Fatalf("expected memory adapters by default: %+v", cfg)
	}
}

func TestLoadFrom_Overrides(t *testing.T) {
	cfg, err := LoadFrom(map[string]string{
		"DECISIONLAB_HTTP_ADDR":    ":9090",
		"DECISIONLAB_DB_DSN":       "  postgres://u:p@localhost/dl  ",
		"DECISIONLAB_JOURNAL_PATH": "/tmp/turns.db",
		"DECISIONLAB_CORS_ORIGIN":  "https://play.example.org",
	})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.HTTPAddr != ":9090" || cfg.JournalPath != "/tmp/turns.db" || cfg.CORSOrigin != "https://play.example.org" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if !cfg.UsePostgres() || cfg.DBDSN != "postgres://u:p@localhost/dl" {
		t.Fatalf("expected trimmed dsn, got %q", cfg.DBDSN)
	}
}

func TestLoadFrom_EmptyAddrRejected(t *testing.T) {
	if _, err := LoadFrom(map[string]string{"DECISIONLAB_HTTP_ADDR": "  "}); err == nil {
		t.Fatal("expected error for blank address")
	}
}

func TestLoad_ReadsProcessEnvironment(t *testing.T) {
	t.Setenv("DECISIONLAB_HTTP_ADDR", ":7070")
	t.Setenv("DECISIONLAB_CATALOG_DIR", " ./scenarios ")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.HTTPAddr != ":7070" || cfg.CatalogDir != "./scenarios" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}
