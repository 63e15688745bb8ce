package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.App.Name != "teukgeun" {
		t.Errorf("App.Name = %v, expected teukgeun", cfg.App.Name)
	}
	if cfg.Engine.MaxShiftMinutes != 300 {
		t.Errorf("Engine.MaxShiftMinutes = %v, expected 300", cfg.Engine.MaxShiftMinutes)
	}
	if cfg.Engine.DefaultWeeklyCapMinutes != 720 {
		t.Errorf("Engine.DefaultWeeklyCapMinutes = %v, expected 720", cfg.Engine.DefaultWeeklyCapMinutes)
	}
	if cfg.Engine.MaxRetries != 10 {
		t.Errorf("Engine.MaxRetries = %v, expected 10", cfg.Engine.MaxRetries)
	}
	if cfg.Database.ConnMaxLifetime != 5*time.Minute {
		t.Errorf("ConnMaxLifetime = %v, expected 5m", cfg.Database.ConnMaxLifetime)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("ENGINE_MAX_RETRIES", "3")
	t.Setenv("APP_ENV", "production")
	t.Setenv("DB_PORT", "5433")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Engine.MaxRetries != 3 {
		t.Errorf("Engine.MaxRetries = %v, expected 3", cfg.Engine.MaxRetries)
	}
	if !cfg.IsProduction() {
		t.Error("IsProduction() should be true")
	}
	if cfg.Database.Port != 5433 {
		t.Errorf("Database.Port = %v, expected 5433", cfg.Database.Port)
	}
}

func TestDatabaseConfig_DSN(t *testing.T) {
	dbCfg := DatabaseConfig{
		Host: "localhost", Port: 5432,
		User: "teukgeun", Password: "secret",
		Name: "teukgeun", SSLMode: "disable",
	}

	expected := "host=localhost port=5432 user=teukgeun password=secret dbname=teukgeun sslmode=disable"
	if dsn := dbCfg.DSN(); dsn != expected {
		t.Errorf("DSN() = %v, expected %v", dsn, expected)
	}
}
