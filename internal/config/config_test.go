package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Chdir: %v", err)
	}
	defer os.Chdir(wd)

	v, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	cfg := FromViper(v)
	if cfg.MinSup != DefaultMinSup {
		t.Errorf("MinSup = %v, want %v", cfg.MinSup, DefaultMinSup)
	}
	if cfg.MinConf != DefaultMinConf {
		t.Errorf("MinConf = %v, want %v", cfg.MinConf, DefaultMinConf)
	}
	if cfg.Prune != DefaultPrune {
		t.Errorf("Prune = %v, want %v", cfg.Prune, DefaultPrune)
	}
}

func TestLoadExplicitFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := "minsup: 0.2\nminconf: 0.9\nprune: false\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	v, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	cfg := FromViper(v)
	if cfg.MinSup != 0.2 || cfg.MinConf != 0.9 || cfg.Prune {
		t.Errorf("cfg = %+v, want minsup=0.2 minconf=0.9 prune=false", cfg)
	}
}

func TestLoadProjectConfig(t *testing.T) {
	dir := t.TempDir()
	ermineDir := filepath.Join(dir, ".ermine")
	if err := os.MkdirAll(ermineDir, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	content := "minsup: 0.7\n"
	if err := os.WriteFile(filepath.Join(ermineDir, "config.yaml"), []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	sub := filepath.Join(dir, "a", "b")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}

	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd: %v", err)
	}
	if err := os.Chdir(sub); err != nil {
		t.Fatalf("Chdir: %v", err)
	}
	defer os.Chdir(wd)

	v, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := FromViper(v).MinSup; got != 0.7 {
		t.Errorf("MinSup = %v, want 0.7 (walked up to project .ermine/config.yaml)", got)
	}
}
