package main

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

func TestReadConfigMissing(t *testing.T) {
	cfg, found, err := readConfig(filepath.Join(t.TempDir(), "none.yaml"))
	if err != nil || found {
		t.Fatalf("found = %v, err = %v", found, err)
	}
	if cfg.Addr != defaultConfig().Addr || len(cfg.Pipeline.Tokens) == 0 {
		t.Errorf("cfg = %+v, want defaults", cfg)
	}
}

func TestReadConfigOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `addr: ":9000"
fold_cache_size: 0
pipeline:
  query: [clean_query]
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, found, err := readConfig(path)
	if err != nil || !found {
		t.Fatalf("found = %v, err = %v", found, err)
	}
	if cfg.Addr != ":9000" || cfg.FoldCacheSize != 0 {
		t.Errorf("cfg = %+v", cfg)
	}
	if !slices.Equal(cfg.Pipeline.Query, []string{"clean_query"}) {
		t.Errorf("query stage = %v", cfg.Pipeline.Query)
	}
	if !slices.Equal(cfg.Pipeline.Tokens, defaultConfig().Pipeline.Tokens) {
		t.Errorf("tokens stage = %v, want defaults kept", cfg.Pipeline.Tokens)
	}
	if _, _, err := reload(path, newLogger("error")); err != nil {
		t.Errorf("reload: %v", err)
	}
}

func TestReadConfigInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	os.WriteFile(path, []byte("addr: [unclosed"), 0o644)
	if _, _, err := readConfig(path); err == nil {
		t.Fatal("expected parse error")
	}

	os.WriteFile(path, []byte("pipeline:\n  tokens: [nope]\n"), 0o644)
	if _, _, err := reload(path, newLogger("error")); err == nil {
		t.Fatal("expected unknown processor error")
	}
}

func TestEachLine(t *testing.T) {
	var got []string
	err := eachLine(strings.NewReader("8 rue X\n\n  3 bis av Y  \n"), func(s string) { got = append(got, s) })
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(got, []string{"8 rue X", "3 bis av Y"}) {
		t.Errorf("lines = %q", got)
	}
}

func TestReloadPicksUpRateLimit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("rate_limit: 10\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, p, err := reload(path, newLogger("error"))
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if p == nil {
		t.Fatal("reload returned no pipeline")
	}
	if cfg.RateLimit != 10 {
		t.Errorf("RateLimit = %d, want 10", cfg.RateLimit)
	}

	if err := os.WriteFile(path, []byte("rate_limit: 0\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if cfg, _, _ = reload(path, newLogger("error")); cfg.RateLimit != 0 {
		t.Errorf("RateLimit = %d, want 0 after second reload", cfg.RateLimit)
	}
}
