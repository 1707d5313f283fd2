package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	Load()

	if AppConfig.APIPort != "8080" {
		t.Errorf("APIPort = %s, want 8080", AppConfig.APIPort)
	}
	if AppConfig.JWTExp != 168*time.Hour {
		t.Errorf("JWTExp = %v, want 168h", AppConfig.JWTExp)
	}
	if AppConfig.IsProduction() {
		t.Error("default env must not be production")
	}
	if AppConfig.DBConnStr == "" {
		t.Error("DBConnStr not assembled")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_EXPIRATION_HOURS", "24")
	Load()

	if !AppConfig.IsProduction() {
		t.Error("APP_ENV=production not honored")
	}
	if AppConfig.JWTExp != 24*time.Hour {
		t.Errorf("JWTExp = %v, want 24h", AppConfig.JWTExp)
	}
}
