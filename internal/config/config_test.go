package config

import (
	"testing"
	"time"
)

func TestValidate_ReportsMissingRequired(t *testing.T) {
	c := Config{}
	if err := c.Validate(); err == nil {
		t.Fatalf("expected validation error")
	}
}

func TestValidate_AppliesTokenTTLDefaults(t *testing.T) {
	c := Config{
		App:   AppConfig{Env: "local", Port: 8080},
		DB:    DBConfig{Host: "localhost", Port: 5432, User: "postgres", Password: "x", Name: "social"},
		Redis: RedisConfig{Host: "localhost", Port: 6379},
		Auth:  AuthConfig{JWTSecret: "secret"},
	}
	if err := c.Validate(); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if c.Auth.AccessTokenTTL != 24*time.Hour {
		t.Fatalf("expected 24h access TTL default, got %v", c.Auth.AccessTokenTTL)
	}
	if c.Auth.RefreshTokenTTL != 336*time.Hour {
		t.Fatalf("expected 336h refresh TTL default, got %v", c.Auth.RefreshTokenTTL)
	}
}

func TestValidate_RefreshTTLMustExceedAccessTTL(t *testing.T) {
	c := Config{
		App:   AppConfig{Env: "local", Port: 8080},
		DB:    DBConfig{Host: "localhost", Port: 5432, User: "postgres", Password: "x", Name: "social"},
		Redis: RedisConfig{Host: "localhost", Port: 6379},
		Auth: AuthConfig{
			JWTSecret:       "secret",
			AccessTokenTTL:  48 * time.Hour,
			RefreshTokenTTL: 24 * time.Hour,
		},
	}
	if err := c.Validate(); err == nil {
		t.Fatalf("expected error for refresh TTL <= access TTL")
	}
}

func TestValidate_ProductionRequiresIssuerAndAudience(t *testing.T) {
	c := Config{
		App:   AppConfig{Env: "production", Port: 8080},
		DB:    DBConfig{Host: "localhost", Port: 5432, User: "postgres", Password: "x", Name: "social", SSLMode: "require"},
		Redis: RedisConfig{Host: "localhost", Port: 6379},
		Auth:  AuthConfig{JWTSecret: "secret"},
	}
	if err := c.Validate(); err == nil {
		t.Fatalf("expected error for production without issuer/audience")
	}
}

func TestValidate_LocalDefaultsSSLMode(t *testing.T) {
	c := Config{
		App:   AppConfig{Env: "local", Port: 8080},
		DB:    DBConfig{Host: "localhost", Port: 5432, User: "postgres", Password: "x", Name: "social"},
		Redis: RedisConfig{Host: "localhost", Port: 6379},
		Auth:  AuthConfig{JWTSecret: "secret"},
	}
	if err := c.Validate(); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if c.DB.SSLMode != "disable" {
		t.Fatalf("expected sslmode disable default, got %q", c.DB.SSLMode)
	}
}
