package config

import (
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("MONGO_DATABASE", "comanda_test")
	t.Setenv("TOKEN_TTL", "48h")
	t.Setenv("ORDER_DELETE_REMOVES_TABLE", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.JWTSecret != "test-secret" {
		t.Errorf("expected JWT secret to be read from env, got %q", cfg.JWTSecret)
	}
	if cfg.MongoDatabase != "comanda_test" {
		t.Errorf("expected mongo database comanda_test, got %q", cfg.MongoDatabase)
	}
	if cfg.TokenTTL != 48*time.Hour {
		t.Errorf("expected token ttl 48h, got %v", cfg.TokenTTL)
	}
	if !cfg.OrderDeleteRemovesTable {
		t.Error("expected cascade flag to be enabled")
	}
	if cfg.HTTPAddr == "" {
		t.Error("expected default http addr to be set")
	}
}

func TestLoad_MissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error when JWT_SECRET is missing")
	}
}
