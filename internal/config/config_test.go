package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := DefaultConfig()
	if *cfg != *want {
		t.Errorf("got %+v, want defaults %+v", cfg, want)
	}
}

func TestSaveThenLoadRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	cfg := &Config{DefaultQuality: 0.8, Concurrency: 2, Archive: true, EqualityTolerance: 0.01}
	if err := Save(cfg, path); err != nil {
		t.Fatalf("unexpected error saving: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error loading: %v", err)
	}
	if *got != *cfg {
		t.Errorf("got %+v, want %+v", got, cfg)
	}
}

func TestLoadPartialFilePreservesOtherDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	if err := os.WriteFile(path, []byte("archive: true\n"), 0644); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	def := DefaultConfig()
	if got.DefaultQuality != def.DefaultQuality || got.Concurrency != def.Concurrency {
		t.Errorf("expected unset fields to keep defaults, got %+v", got)
	}
	if !got.Archive {
		t.Errorf("expected archive override to apply")
	}
}
