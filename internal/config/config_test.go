// internal/config/config_test.go
package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Game.GridDimensions != 5 {
		t.Errorf("Expected grid dimensions 5, got %d", cfg.Game.GridDimensions)
	}
	if cfg.Game.MaxAttempts != 5 {
		t.Errorf("Expected 5 max attempts, got %d", cfg.Game.MaxAttempts)
	}
	if cfg.Game.DefaultTotalLinesLimit != 30 {
		t.Errorf("Expected default total lines limit 30, got %d", cfg.Game.DefaultTotalLinesLimit)
	}

	for _, dir := range []string{cfg.DataDir, cfg.ShapesDir, cfg.SubmissionsDir, cfg.LogDir} {
		if _, err := os.Stat(dir); err != nil {
			t.Errorf("Expected directory %s to exist: %v", dir, err)
		}
	}
}

func TestLoadAppliesFileOverlay(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dataDir := filepath.Join(home, ".doodleday")
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		t.Fatalf("Failed to create data dir: %v", err)
	}
	overlay := "game:\n  max_attempts: 3\n  snap_radius: 30\n"
	if err := os.WriteFile(filepath.Join(dataDir, "config.yaml"), []byte(overlay), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Game.MaxAttempts != 3 {
		t.Errorf("Expected overlay max_attempts 3, got %d", cfg.Game.MaxAttempts)
	}
	if cfg.Game.SnapRadius != 30 {
		t.Errorf("Expected overlay snap_radius 30, got %v", cfg.Game.SnapRadius)
	}
	// Untouched settings keep their defaults.
	if cfg.Game.GridDimensions != 5 {
		t.Errorf("Expected default grid dimensions 5, got %d", cfg.Game.GridDimensions)
	}
}

func TestLoadRejectsInvalidOverlay(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dataDir := filepath.Join(home, ".doodleday")
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		t.Fatalf("Failed to create data dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dataDir, "config.yaml"), []byte("game:\n  grid_dimensions: 1\n"), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	if _, err := Load(); err == nil {
		t.Fatal("Expected error for grid_dimensions below 2")
	}
}
