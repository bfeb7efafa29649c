package config

import "testing"

func TestValidate(t *testing.T) {
	cfg := Load()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate, got %v", err)
	}

	bad := cfg
	bad.MaxBodyBytes = 10
	if err := bad.Validate(); err == nil {
		t.Fatal("expected body size validation error")
	}

	bad = cfg
	bad.CaptureScale = 9
	if err := bad.Validate(); err == nil {
		t.Fatal("expected capture scale validation error")
	}

	bad = cfg
	bad.JWTSecret = "secret"
	bad.AdminEmail = ""
	if err := bad.Validate(); err == nil {
		t.Fatal("expected admin credentials validation error")
	}

	bad = cfg
	bad.Environment = "production"
	bad.DatabaseURL = ""
	if err := bad.Validate(); err == nil {
		t.Fatal("expected database url validation error in production")
	}
}
