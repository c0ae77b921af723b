package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HEADER_SCAN_ROWS", "")
	t.Setenv("STRICT_MATCH", "")
	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.HeaderScanRows != 10 {
		t.Fatalf("HeaderScanRows=%d", cfg.HeaderScanRows)
	}
	if !cfg.StrictMatch {
		t.Fatal("strict match should default to true")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PROJECT_NAME", "Escola Municipal")
	t.Setenv("STRICT_MATCH", "off")
	t.Setenv("DB_PAGE_SIZE", "abc")
	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.ProjectName != "Escola Municipal" {
		t.Fatalf("ProjectName=%q", cfg.ProjectName)
	}
	if cfg.StrictMatch {
		t.Fatal("STRICT_MATCH=off not honored")
	}
	if cfg.DBPageSize != 10 {
		t.Fatalf("invalid int should fall back, got %d", cfg.DBPageSize)
	}
}

func TestLoadListenerDefaults(t *testing.T) {
	t.Setenv("LISTENER_INTERVAL_SEC", "0")
	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.ListenerIntervalSec != 60 {
		t.Fatalf("non-positive interval should fall back, got %d", cfg.ListenerIntervalSec)
	}
	if cfg.ListenerFetchMax != 50 || cfg.ListenerProcessBatch != 20 {
		t.Fatalf("fetch=%d batch=%d", cfg.ListenerFetchMax, cfg.ListenerProcessBatch)
	}
}
