package daemon

import (
	"testing"
	"time"
)

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("WATCHD_INTERVAL", "")
	t.Setenv("WATCHD_PORT", "")

	cfg, err := LoadConfigFromEnv()
	if err != nil {
		t.Fatalf("LoadConfigFromEnv() error = %v", err)
	}
	if cfg.Interval != 24*time.Hour {
		t.Errorf("interval = %v, want 24h", cfg.Interval)
	}
	if cfg.Port != "8080" {
		t.Errorf("port = %q, want 8080", cfg.Port)
	}
}

func TestLoadConfigFromEnv_Overrides(t *testing.T) {
	t.Setenv("WATCHD_INTERVAL", "1h")
	t.Setenv("WATCHD_PORT", "9090")

	cfg, err := LoadConfigFromEnv()
	if err != nil {
		t.Fatalf("LoadConfigFromEnv() error = %v", err)
	}
	if cfg.Interval != time.Hour {
		t.Errorf("interval = %v", cfg.Interval)
	}
	if cfg.Port != "9090" {
		t.Errorf("port = %q", cfg.Port)
	}
}

func TestLoadConfigFromEnv_RejectsShortInterval(t *testing.T) {
	t.Setenv("WATCHD_INTERVAL", "30s")

	if _, err := LoadConfigFromEnv(); err == nil {
		t.Error("LoadConfigFromEnv() accepted a sub-minute interval")
	}
}

func TestLoadConfigFromEnv_RejectsBadDuration(t *testing.T) {
	t.Setenv("WATCHD_INTERVAL", "daily")

	if _, err := LoadConfigFromEnv(); err == nil {
		t.Error("LoadConfigFromEnv() accepted an unparseable interval")
	}
}
