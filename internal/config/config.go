// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Game holds the puzzle and canvas tunables.
type Game struct {
	// GridDimensions is the lattice size N of the N x N puzzle board.
	GridDimensions int `yaml:"grid_dimensions"`
	// MaxAttempts is the per-day attempt budget.
	MaxAttempts int `yaml:"max_attempts"`
	// DefaultTotalLinesLimit applies when a shape record carries no limit.
	DefaultTotalLinesLimit int `yaml:"default_total_lines_limit"`
	// SnapRadius is the pixel radius for the puzzle grid's snap policy.
	SnapRadius float64 `yaml:"snap_radius"`
	// MinCellSize is the smallest per-cell pixel size the grid shrinks to.
	MinCellSize float64 `yaml:"min_cell_size"`
	// LineThickness is the default stroke thickness.
	LineThickness float64 `yaml:"line_thickness"`
}

// Config holds application paths and game settings.
type Config struct {
	HomeDir        string `yaml:"-"`
	DataDir        string `yaml:"-"`
	DatabasePath   string `yaml:"database_path"`
	ShapesDir      string `yaml:"shapes_dir"`
	SubmissionsDir string `yaml:"submissions_dir"`
	LogDir         string `yaml:"log_dir"`
	Game           Game   `yaml:"game"`
}

// Load resolves paths under ~/.doodleday, applies defaults, and overlays
// config.yaml if present. Directories are created as needed.
func Load() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	dataDir := filepath.Join(home, ".doodleday")
	cfg := &Config{
		HomeDir:        home,
		DataDir:        dataDir,
		DatabasePath:   filepath.Join(dataDir, "doodleday.db"),
		ShapesDir:      filepath.Join(dataDir, "shapes"),
		SubmissionsDir: filepath.Join(dataDir, "submissions"),
		LogDir:         filepath.Join(dataDir, "logs"),
		Game: Game{
			GridDimensions:         5,
			MaxAttempts:            5,
			DefaultTotalLinesLimit: 30,
			SnapRadius:             20,
			MinCellSize:            40,
			LineThickness:          2,
		},
	}

	if err := cfg.applyFile(filepath.Join(dataDir, "config.yaml")); err != nil {
		return nil, err
	}

	for _, dir := range []string{dataDir, cfg.ShapesDir, cfg.SubmissionsDir, cfg.LogDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, err
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyFile overlays settings from a yaml file. A missing file is fine;
// defaults stand.
func (c *Config) applyFile(path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) validate() error {
	if c.Game.GridDimensions < 2 {
		return fmt.Errorf("grid_dimensions must be >= 2, got %d", c.Game.GridDimensions)
	}
	if c.Game.MaxAttempts < 1 {
		return fmt.Errorf("max_attempts must be >= 1, got %d", c.Game.MaxAttempts)
	}
	if c.Game.SnapRadius <= 0 {
		return fmt.Errorf("snap_radius must be positive, got %v", c.Game.SnapRadius)
	}
	return nil
}
