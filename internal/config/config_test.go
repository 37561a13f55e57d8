package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	config := Default()

	if config.Server.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", config.Server.Port)
	}
	if config.Database.Path != "./data/showtrack.db" {
		t.Errorf("expected default database path ./data/showtrack.db, got %s", config.Database.Path)
	}
	if config.Server.PostLoginRedirect != "/" {
		t.Errorf("expected default post-login redirect /, got %s", config.Server.PostLoginRedirect)
	}
	if config.Auth.JWTSecret != "" {
		t.Error("default config must not ship a JWT secret")
	}
}

func TestLoad(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")

	testConfig := `[server]
host = "0.0.0.0"
port = 9090
secure_cookies = true

[database]
path = "/custom/shows.db"

[auth]
jwt_secret = "0123456789abcdef0123456789abcdef"

[auth.google]
client_id = "test_client_id"
client_secret = "test_secret"
callback_url = "http://localhost:9090/auth/google/callback"
`
	if err := os.WriteFile(configPath, []byte(testConfig), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	config, err := Load(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if config.Database.Path != "/custom/shows.db" {
		t.Errorf("expected database path /custom/shows.db, got %s", config.Database.Path)
	}
	if config.Addr() != "0.0.0.0:9090" {
		t.Errorf("expected addr 0.0.0.0:9090, got %s", config.Addr())
	}
	if config.Auth.Google.ClientID != "test_client_id" {
		t.Errorf("expected google client_id test_client_id, got %s", config.Auth.Google.ClientID)
	}
	if !config.Server.SecureCookies {
		t.Error("expected secure_cookies true")
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	config, err := Load(filepath.Join(t.TempDir(), "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("a missing config file should not be an error, got %v", err)
	}
	if config.Server.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", config.Server.Port)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "7070")
	t.Setenv("DB_PATH", "/env/shows.db")
	t.Setenv("JWT_SECRET", "ffffffffffffffffffffffffffffffff")

	config, err := Load("")
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if config.Server.Port != 7070 {
		t.Errorf("expected env port 7070, got %d", config.Server.Port)
	}
	if config.Database.Path != "/env/shows.db" {
		t.Errorf("expected env database path, got %s", config.Database.Path)
	}
	if config.Auth.JWTSecret == "" {
		t.Error("expected env JWT secret to be applied")
	}
}
