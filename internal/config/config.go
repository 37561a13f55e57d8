// Package config loads application settings from a TOML file with
// environment-variable overrides on top. File for the stable shape,
// environment for per-deployment values and secrets.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

// Config is the application configuration.
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Auth     AuthConfig     `toml:"auth"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Host              string `toml:"host"`
	Port              int    `toml:"port"`
	PostLoginRedirect string `toml:"post_login_redirect"`
	SecureCookies     bool   `toml:"secure_cookies"`
}

// DatabaseConfig contains the SQLite settings.
type DatabaseConfig struct {
	Path string `toml:"path"`
}

// AuthConfig contains session and OAuth settings. An empty JWTSecret
// disables the auth surface entirely.
type AuthConfig struct {
	JWTSecret string       `toml:"jwt_secret"`
	Google    GoogleConfig `toml:"google"`
}

// GoogleConfig contains the Google OAuth client credentials.
type GoogleConfig struct {
	ClientID     string `toml:"client_id"`
	ClientSecret string `toml:"client_secret"`
	CallbackURL  string `toml:"callback_url"`
}

// Default returns a Config with defaults parsed from the embedded example file.
func Default() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("config: failed to parse embedded default config: %v", err))
	}
	return &config
}

// Load reads a TOML configuration file and applies environment overrides.
// A missing file is fine — defaults plus environment is a valid setup.
func Load(path string) (*Config, error) {
	config := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("config: reading %s: %w", path, err)
			}
		} else if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("config: parsing %s: %w", path, err)
		}
	}

	config.applyEnv()
	return config, nil
}

// applyEnv overlays environment variables onto the loaded file values.
// Environment always wins — that is the contract container platforms expect.
func (c *Config) applyEnv() {
	if v := os.Getenv("HOST"); v != "" {
		c.Server.Host = v
	}
	if v := os.Getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Server.Port = port
		}
	}
	if v := os.Getenv("POST_LOGIN_REDIRECT"); v != "" {
		c.Server.PostLoginRedirect = v
	}
	if v := os.Getenv("SECURE_COOKIES"); v != "" {
		if secure, err := strconv.ParseBool(v); err == nil {
			c.Server.SecureCookies = secure
		}
	}
	if v := os.Getenv("DB_PATH"); v != "" {
		c.Database.Path = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		c.Auth.JWTSecret = v
	}
	if v := os.Getenv("GOOGLE_CLIENT_ID"); v != "" {
		c.Auth.Google.ClientID = v
	}
	if v := os.Getenv("GOOGLE_CLIENT_SECRET"); v != "" {
		c.Auth.Google.ClientSecret = v
	}
	if v := os.Getenv("GOOGLE_CALLBACK_URL"); v != "" {
		c.Auth.Google.CallbackURL = v
	}
}

// Addr returns the listen address in host:port form.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
