package configs

import "testing"

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != DefaultPort {
		t.Errorf("expected default port %d, got %d", DefaultPort, cfg.Port)
	}
	if cfg.LogPath != DefaultLogPath {
		t.Errorf("expected default log path %q, got %q", DefaultLogPath, cfg.LogPath)
	}
}

func TestLoadConfigParsesPortAndLogPath(t *testing.T) {
	cfg, err := LoadConfig([]string{"6000", "custom.log"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != 6000 {
		t.Errorf("expected port 6000, got %d", cfg.Port)
	}
	if cfg.LogPath != "custom.log" {
		t.Errorf("expected log path custom.log, got %q", cfg.LogPath)
	}
}

func TestLoadConfigRejectsNonNumericPort(t *testing.T) {
	if _, err := LoadConfig([]string{"not-a-port"}); err == nil {
		t.Fatalf("expected an error for a non-numeric port argument")
	}
}

func TestLoadConfigRejectsOutOfRangePort(t *testing.T) {
	if _, err := LoadConfig([]string{"70000"}); err == nil {
		t.Fatalf("expected an error for a port above 65535")
	}
	if _, err := LoadConfig([]string{"0"}); err == nil {
		t.Fatalf("expected an error for port 0")
	}
}
