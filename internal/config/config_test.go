package config

import (
	"reflect"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != "4000" {
		t.Errorf("default port = %q, want 4000", cfg.Server.Port)
	}
	if !cfg.ResultsAPI.MockAPI {
		t.Error("mock mode should default on")
	}
	want := []string{"Lotto", "Super 6", "3D", "Play 4", "Big 4", "Pick 2"}
	if !reflect.DeepEqual(cfg.ResultsAPI.RequiredGames, want) {
		t.Errorf("default required games = %v, want %v", cfg.ResultsAPI.RequiredGames, want)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "5001")
	t.Setenv("ADMIN_EMAILS", "boss@example.com,ops@example.com")
	t.Setenv("RESULTS_API_MOCK", "false")
	t.Setenv("JWT_EXPIRES_IN", "60")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != "5001" {
		t.Errorf("port = %q, want env override 5001", cfg.Server.Port)
	}
	wantAdmins := []string{"boss@example.com", "ops@example.com"}
	if !reflect.DeepEqual(cfg.Auth.AdminEmails, wantAdmins) {
		t.Errorf("admin emails = %v, want %v", cfg.Auth.AdminEmails, wantAdmins)
	}
	if cfg.ResultsAPI.MockAPI {
		t.Error("mock mode should be disabled by env override")
	}
	if cfg.JWT.ExpiresIn != 60 {
		t.Errorf("expires in = %d, want 60", cfg.JWT.ExpiresIn)
	}
}

func TestGetEnvHelpersFallBack(t *testing.T) {
	if got := GetEnv("UNSET_TEST_KEY", "fallback"); got != "fallback" {
		t.Errorf("GetEnv = %q, want fallback", got)
	}
	if got := GetEnvAsInt("UNSET_TEST_KEY", 7); got != 7 {
		t.Errorf("GetEnvAsInt = %d, want 7", got)
	}
	if got := GetEnvAsBool("UNSET_TEST_KEY", true); !got {
		t.Error("GetEnvAsBool should fall back to true")
	}

	t.Setenv("BAD_INT", "not-a-number")
	if got := GetEnvAsInt("BAD_INT", 7); got != 7 {
		t.Errorf("GetEnvAsInt on garbage = %d, want fallback 7", got)
	}
}
