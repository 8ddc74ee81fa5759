package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadFileDefaults(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Port != 8080 || cfg.Mode != "release" {
		t.Errorf("port=%d mode=%s", cfg.Port, cfg.Mode)
	}
	if cfg.PingPeriod != 54*time.Second || cfg.Tick != time.Second {
		t.Errorf("ping=%s tick=%s", cfg.PingPeriod, cfg.Tick)
	}
	if cfg.Backpressure != "disconnect" {
		t.Errorf("backpressure=%s", cfg.Backpressure)
	}
	if cfg.MaxFailedChecks != 3 || cfg.RateBurst != 20 {
		t.Errorf("max_failed_checks=%d rate_burst=%d", cfg.MaxFailedChecks, cfg.RateBurst)
	}
}

func TestLoadFileOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.test.yaml")
	data := []byte("mode: debug\nport: 9000\ncheck_interval: 10s\nrate_limit: 2.5\nbackpressure: drop\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PARTY_MAX_FAILED_CHECKS", "5")

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Mode != "debug" || cfg.Port != 9000 {
		t.Errorf("mode=%s port=%d", cfg.Mode, cfg.Port)
	}
	if cfg.CheckInterval != 10*time.Second || cfg.RateLimit != 2.5 {
		t.Errorf("check_interval=%s rate_limit=%v", cfg.CheckInterval, cfg.RateLimit)
	}
	if cfg.Backpressure != "drop" {
		t.Errorf("backpressure=%s", cfg.Backpressure)
	}
	if cfg.MaxFailedChecks != 5 {
		t.Errorf("max_failed_checks=%d, want env override 5", cfg.MaxFailedChecks)
	}
}

func TestLoadFileInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"port", "port: 0\n"},
		{"tick", "tick: 0s\n"},
		{"checks", "max_failed_checks: 0\n"},
		{"buffer", "send_buffer: 0\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "bad.yaml")
			if err := os.WriteFile(path, []byte(tt.yaml), 0o600); err != nil {
				t.Fatal(err)
			}
			if _, err := LoadFile(path); err == nil {
				t.Error("expected an error")
			}
		})
	}
}
