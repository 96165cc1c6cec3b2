package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_NotFound(t *testing.T) {
	dir := t.TempDir()
	_, err := Load(dir)
	if !errors.Is(err, ErrConfigNotFound) {
		t.Fatalf("Load() error = %v, want ErrConfigNotFound", err)
	}
}

func TestLoad_Defaults(t *testing.T) {
	dir := t.TempDir()
	toml := `[debug]
tokens = true
`
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte(toml), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !cfg.Debug.Tokens {
		t.Error("Debug.Tokens = false, want true")
	}
	if cfg.Transport.Port != defaultTransportPort {
		t.Errorf("Transport.Port = %d, want default %d", cfg.Transport.Port, defaultTransportPort)
	}
}

func TestSave_WritesValidFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)
	if err := Default().Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() after Save() error = %v", err)
	}
	if cfg.Transport.Port != defaultTransportPort {
		t.Errorf("Transport.Port = %d, want %d", cfg.Transport.Port, defaultTransportPort)
	}
}
