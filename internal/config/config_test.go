package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "gateway.toml")

	contents := `
region_name = "/mdgate-prod"
symbol_count = 2
symbols = ["600000.SH", "000001.SZ"]
heartbeat_interval_ms = 500
unlink_on_exit = true
diag_socket_path = "/tmp/mdgate.sock"

[limit_ratio_overrides]
"600000.SH" = 0.15

[venues.mock]
enabled = true
mock = true
symbols = ["600000.SH", "000001.SZ"]

[venues.real]
enabled = false
ws_url = "wss://example.invalid/feed"
symbols = ["600000.SH"]
`
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.RegionName != "/mdgate-prod" {
		t.Errorf("RegionName = %q, want /mdgate-prod", cfg.RegionName)
	}
	if cfg.SymbolCount != 2 {
		t.Errorf("SymbolCount = %d, want 2", cfg.SymbolCount)
	}
	if cfg.HeartbeatIntervalMs != 500 {
		t.Errorf("HeartbeatIntervalMs = %d, want 500", cfg.HeartbeatIntervalMs)
	}
	if !cfg.UnlinkOnExit {
		t.Error("UnlinkOnExit = false, want true")
	}
	if cfg.LimitRatioOverrides["600000.SH"] != 0.15 {
		t.Errorf("LimitRatioOverrides[600000.SH] = %v, want 0.15", cfg.LimitRatioOverrides["600000.SH"])
	}

	mock, ok := cfg.Venues["mock"]
	if !ok || !mock.Enabled || !mock.Mock {
		t.Fatalf("venues.mock = %+v, ok=%v", mock, ok)
	}
	real, ok := cfg.Venues["real"]
	if !ok || real.Enabled || real.WSURL != "wss://example.invalid/feed" {
		t.Fatalf("venues.real = %+v, ok=%v", real, ok)
	}
}

func TestLoadDefaultsHeartbeatInterval(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "gateway.toml")
	if err := os.WriteFile(path, []byte(`region_name = "/mdgate-test"`), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HeartbeatIntervalMs != 1000 {
		t.Errorf("HeartbeatIntervalMs = %d, want default 1000", cfg.HeartbeatIntervalMs)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/gateway.toml"); err == nil {
		t.Fatal("Load of a missing file should fail")
	}
}
