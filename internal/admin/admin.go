// Package admin is the out-of-core competition-manager administration
// stub (§6, §7): it loads the remote system's credentials and exposes the
// session-shaped interface the real browser-automation client would
// implement, without performing any automation itself. Grounded on
// opentrack_admin/cli.py's test-login command and config.go's
// godotenv.Load pattern.
package admin

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config holds the remote competition-manager system's credentials and
// base URL, loaded from the process environment (optionally via a .env
// file in the working directory).
type Config struct {
	BaseURL  string
	Username string
	Password string
}

// LoadConfig reads COMPETITIONMANAGER_BASE_URL/USERNAME/PASSWORD from the
// environment, loading a .env file first if present. A missing .env file
// is not an error: real deployments set environment variables directly.
func LoadConfig() *Config {
	_ = godotenv.Load()

	return &Config{
		BaseURL:  envOrDefault("COMPETITIONMANAGER_BASE_URL", "https://admin.competitionmanager.example"),
		Username: os.Getenv("COMPETITIONMANAGER_USERNAME"),
		Password: os.Getenv("COMPETITIONMANAGER_PASSWORD"),
	}
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Validate reports whether both credentials required for a login attempt
// are present.
func (c *Config) Validate() error {
	if c.Username == "" || c.Password == "" {
		return fmt.Errorf("admin: COMPETITIONMANAGER_USERNAME and COMPETITIONMANAGER_PASSWORD must be set")
	}
	return nil
}

// Session is the shape a real browser-automation client would implement
// (login, navigate, import a schedule). No implementation ships in this
// module — the remote system and its automation are an out-of-core
// collaborator per §1.
type Session interface {
	Login() error
	IsLoggedIn() bool
	ImportSchedule(csvPath string) error
	Close() error
}

// Unconfigured is the only Session this module constructs, with or without
// credentials: every method reports the system as unreachable.
type Unconfigured struct {
	Reason string
}

// NewSession returns an Unconfigured session describing why; a real
// Session implementation is out of scope for this module.
func NewSession(cfg *Config) Session {
	if err := cfg.Validate(); err != nil {
		return Unconfigured{Reason: err.Error()}
	}
	return Unconfigured{Reason: "admin: remote automation client not implemented in this module"}
}

func (u Unconfigured) Login() error                { return fmt.Errorf("%s", u.Reason) }
func (u Unconfigured) IsLoggedIn() bool            { return false }
func (u Unconfigured) ImportSchedule(string) error { return fmt.Errorf("%s", u.Reason) }
func (u Unconfigured) Close() error                { return nil }
