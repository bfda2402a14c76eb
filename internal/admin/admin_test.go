package admin

import "testing"

func TestConfigValidateRequiresCredentials(t *testing.T) {
	cfg := &Config{BaseURL: "https://example.test"}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation to fail without username/password")
	}

	cfg.Username = "meet-admin"
	cfg.Password = "secret"
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected validation to pass with both credentials set, got %v", err)
	}
}

func TestNewSessionIsAlwaysUnconfigured(t *testing.T) {
	session := NewSession(&Config{Username: "meet-admin", Password: "secret"})
	if session.IsLoggedIn() {
		t.Error("expected a fresh session to report as not logged in")
	}
	if err := session.Login(); err == nil {
		t.Error("expected Login to fail: no automation client ships in this module")
	}
	if err := session.ImportSchedule("schedule.csv"); err == nil {
		t.Error("expected ImportSchedule to fail for an unconfigured session")
	}
	if err := session.Close(); err != nil {
		t.Errorf("expected Close to be a no-op, got %v", err)
	}
}

func TestNewSessionReportsMissingCredentials(t *testing.T) {
	session := NewSession(&Config{})
	err := session.Login()
	if err == nil {
		t.Fatal("expected Login to fail for a session with no credentials")
	}
}
