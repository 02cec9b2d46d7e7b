package main

import (
	"os"
	"testing"

	"business-hub/backend/internal/config"
)

func TestApplicationStartupConfig(t *testing.T) {
	os.Setenv("ENVIRONMENT", "development")
	os.Setenv("DB_HOST", "localhost")
	os.Setenv("REDIS_HOST", "localhost")
	defer func() {
		os.Unsetenv("ENVIRONMENT")
		os.Unsetenv("DB_HOST")
		os.Unsetenv("REDIS_HOST")
	}()

	cfg, err := config.LoadConfig()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	if cfg == nil {
		t.Fatal("Configuration should not be nil")
	}
	if cfg.IsProduction() {
		t.Error("Expected development environment")
	}
}
