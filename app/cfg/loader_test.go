package cfg

import (
	"testing"
	"time"
)

func TestGetVersion(t *testing.T) {
	// Test default version
	if GetVersion() == "" {
		t.Error("GetVersion should never return empty string")
	}

	version := GetVersion()
	if version != "dev" && version != "unknown" {
		// This is fine, version could be set at build time
		t.Logf("Version: %s", version)
	}
}

func TestLoadArgsFlags(t *testing.T) {
	cfg, err := LoadArgs([]string{
		"--notion-database-id", "db-123",
		"--notion-token", "secret",
		"--port", "9090",
		"--notion-rate-limit", "1.5",
		"--timezone", "UTC",
	})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if cfg.NotionDatabaseID != "db-123" {
		t.Errorf("Expected database id 'db-123', got '%s'", cfg.NotionDatabaseID)
	}
	if cfg.NotionToken != "secret" {
		t.Errorf("Expected token 'secret', got '%s'", cfg.NotionToken)
	}
	if cfg.Port != "9090" {
		t.Errorf("Expected port '9090', got '%s'", cfg.Port)
	}
	if cfg.NotionRateLimit != 1.5 {
		t.Errorf("Expected rate limit 1.5, got %v", cfg.NotionRateLimit)
	}
	if Get() != cfg {
		t.Error("Expected Get to return the loaded configuration")
	}
}

func TestLoadArgsEnvironment(t *testing.T) {
	t.Setenv("NOTION_DATABASE_ID", "from-env")
	t.Setenv("SCHEMA_FILE", "/etc/notiongram/schema.yml")

	cfg, err := LoadArgs([]string{"--timezone", "UTC"})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if cfg.NotionDatabaseID != "from-env" {
		t.Errorf("Expected database id 'from-env', got '%s'", cfg.NotionDatabaseID)
	}
	if cfg.SchemaFile != "/etc/notiongram/schema.yml" {
		t.Errorf("Expected schema file from env, got '%s'", cfg.SchemaFile)
	}
}

func TestLoadArgsMissingDatabaseIDIsNotFatal(t *testing.T) {
	t.Setenv("NOTION_DATABASE_ID", "")

	cfg, err := LoadArgs([]string{"--timezone", "UTC"})
	if err != nil {
		t.Fatalf("Expected missing database id to be accepted at startup, got: %v", err)
	}
	if cfg.NotionDatabaseID != "" {
		t.Errorf("Expected empty database id, got '%s'", cfg.NotionDatabaseID)
	}
}

func TestLoadArgsRejectsNegativeRateLimit(t *testing.T) {
	if _, err := LoadArgs([]string{"--notion-rate-limit=-1", "--timezone", "UTC"}); err == nil {
		t.Error("Expected error for negative rate limit")
	}
}

func TestLoadArgsHelp(t *testing.T) {
	cfg, err := LoadArgs([]string{"--help"})
	if err != nil {
		t.Fatalf("Expected help to return without error, got: %v", err)
	}
	if cfg != nil {
		t.Error("Expected nil configuration when help is requested")
	}
}

func TestConfigHelpers(t *testing.T) {
	cfg := &Cfg{Port: "8080"}

	if cfg.GetNotionTimeout() != 30*time.Second {
		t.Errorf("Expected default timeout 30s, got %v", cfg.GetNotionTimeout())
	}
	if cfg.GetSelfURL() != "http://localhost:8080" {
		t.Errorf("Expected localhost self URL, got '%s'", cfg.GetSelfURL())
	}

	cfg.NotionTimeout = 5
	cfg.BaseUrl = "https://feed.example.com"
	if cfg.GetNotionTimeout() != 5*time.Second {
		t.Errorf("Expected timeout 5s, got %v", cfg.GetNotionTimeout())
	}
	if cfg.GetSelfURL() != "https://feed.example.com" {
		t.Errorf("Expected base URL, got '%s'", cfg.GetSelfURL())
	}
}
