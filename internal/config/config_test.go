package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	// Board defaults
	if cfg.Board.Width != 2.0 {
		t.Errorf("expected board width 2.0, got %v", cfg.Board.Width)
	}
	if cfg.Board.Height != 1.0 {
		t.Errorf("expected board height 1.0, got %v", cfg.Board.Height)
	}
	if cfg.Board.SlatCount != 20 {
		t.Errorf("expected 20 slat pairs, got %d", cfg.Board.SlatCount)
	}
	if cfg.Board.AngleDeg != 45 {
		t.Errorf("expected slat angle 45, got %v", cfg.Board.AngleDeg)
	}

	// Sweep defaults
	if cfg.Sweep.AngleDeg != 60 {
		t.Errorf("expected sweep 60, got %v", cfg.Sweep.AngleDeg)
	}
	if cfg.Sweep.Speed != 5 {
		t.Errorf("expected speed 5, got %v", cfg.Sweep.Speed)
	}

	// Export defaults
	if cfg.Export.FrameCount != 30 {
		t.Errorf("expected 30 frames, got %d", cfg.Export.FrameCount)
	}
	if cfg.Export.OutputPath != "billboard.gif" {
		t.Errorf("expected output path 'billboard.gif', got %s", cfg.Export.OutputPath)
	}

	// Window defaults
	if cfg.Window.Width != 1280 {
		t.Errorf("expected width 1280, got %d", cfg.Window.Width)
	}
	if !cfg.Window.VSync {
		t.Error("expected vsync to be true by default")
	}

	// Logging defaults
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
board:
  width: 3.0
  height: 1.5
  slat_count: 40
  angle_deg: 30

sweep:
  angle_deg: 90
  speed: 8

export:
  frame_count: 60
  max_width: 800
  output_path: "out.gif"

window:
  width: 1920
  height: 1080
  vsync: false

logging:
  level: "debug"
  log_file: "viewer.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Board.Width != 3.0 {
		t.Errorf("expected board width 3.0, got %v", cfg.Board.Width)
	}
	if cfg.Board.SlatCount != 40 {
		t.Errorf("expected 40 slat pairs, got %d", cfg.Board.SlatCount)
	}
	if cfg.Board.AngleDeg != 30 {
		t.Errorf("expected slat angle 30, got %v", cfg.Board.AngleDeg)
	}

	if cfg.Sweep.AngleDeg != 90 {
		t.Errorf("expected sweep 90, got %v", cfg.Sweep.AngleDeg)
	}
	if cfg.Sweep.Speed != 8 {
		t.Errorf("expected speed 8, got %v", cfg.Sweep.Speed)
	}

	if cfg.Export.FrameCount != 60 {
		t.Errorf("expected 60 frames, got %d", cfg.Export.FrameCount)
	}
	if cfg.Export.MaxWidth != 800 {
		t.Errorf("expected max width 800, got %d", cfg.Export.MaxWidth)
	}
	if cfg.Export.OutputPath != "out.gif" {
		t.Errorf("expected output path 'out.gif', got %s", cfg.Export.OutputPath)
	}

	if cfg.Window.Width != 1920 {
		t.Errorf("expected width 1920, got %d", cfg.Window.Width)
	}
	if cfg.Window.VSync {
		t.Error("expected vsync to be false")
	}

	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "viewer.log" {
		t.Errorf("expected log file 'viewer.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
board:
  width: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	if err := loadFromFile(cfg, "/nonexistent/path/config.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		verify func(*testing.T, *Config)
	}{
		{
			name:   "negative board size",
			mutate: func(c *Config) { c.Board.Width = -1; c.Board.Height = 0 },
			verify: func(t *testing.T, c *Config) {
				if c.Board.Width <= 0 || c.Board.Height <= 0 {
					t.Errorf("board size not restored: %vx%v", c.Board.Width, c.Board.Height)
				}
			},
		},
		{
			name:   "slat count out of range",
			mutate: func(c *Config) { c.Board.SlatCount = 5000 },
			verify: func(t *testing.T, c *Config) {
				if c.Board.SlatCount != 200 {
					t.Errorf("expected slat count clamped to 200, got %d", c.Board.SlatCount)
				}
			},
		},
		{
			name:   "slat angle at ninety",
			mutate: func(c *Config) { c.Board.AngleDeg = 90 },
			verify: func(t *testing.T, c *Config) {
				if c.Board.AngleDeg >= 90 {
					t.Errorf("expected angle below 90, got %v", c.Board.AngleDeg)
				}
			},
		},
		{
			name:   "sweep beyond half circle",
			mutate: func(c *Config) { c.Sweep.AngleDeg = 360 },
			verify: func(t *testing.T, c *Config) {
				if c.Sweep.AngleDeg != 180 {
					t.Errorf("expected sweep clamped to 180, got %v", c.Sweep.AngleDeg)
				}
			},
		},
		{
			name:   "zero speed",
			mutate: func(c *Config) { c.Sweep.Speed = 0 },
			verify: func(t *testing.T, c *Config) {
				if c.Sweep.Speed <= 0 {
					t.Errorf("expected positive speed, got %v", c.Sweep.Speed)
				}
			},
		},
		{
			name:   "empty output path",
			mutate: func(c *Config) { c.Export.OutputPath = "" },
			verify: func(t *testing.T, c *Config) {
				if c.Export.OutputPath == "" {
					t.Error("expected output path restored")
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			cfg.Clamp()
			tt.verify(t, cfg)
		})
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	tmpDir := t.TempDir()
	os.Chdir(tmpDir)

	// No config file exists - should return empty
	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("window:\n  width: 800\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	if path := findConfigFile(); path == "" {
		t.Error("expected to find config.yaml in current directory")
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name:  "slat flags",
			setup: func() { *flagSlats = 64; *flagAngle = 15 },
			verify: func(cfg *Config) {
				if cfg.Board.SlatCount != 64 {
					t.Errorf("expected 64 slat pairs, got %d", cfg.Board.SlatCount)
				}
				if cfg.Board.AngleDeg != 15 {
					t.Errorf("expected slat angle 15, got %v", cfg.Board.AngleDeg)
				}
			},
			teardown: func() { *flagSlats = 0; *flagAngle = -1 },
		},
		{
			name:  "sweep flags",
			setup: func() { *flagSweep = 120; *flagSpeed = 10 },
			verify: func(cfg *Config) {
				if cfg.Sweep.AngleDeg != 120 {
					t.Errorf("expected sweep 120, got %v", cfg.Sweep.AngleDeg)
				}
				if cfg.Sweep.Speed != 10 {
					t.Errorf("expected speed 10, got %v", cfg.Sweep.Speed)
				}
			},
			teardown: func() { *flagSweep = -1; *flagSpeed = 0 },
		},
		{
			name:  "width and height flags",
			setup: func() { *flagWidth = 2560; *flagHeight = 1440 },
			verify: func(cfg *Config) {
				if cfg.Window.Width != 2560 {
					t.Errorf("expected width 2560, got %d", cfg.Window.Width)
				}
				if cfg.Window.Height != 1440 {
					t.Errorf("expected height 1440, got %d", cfg.Window.Height)
				}
			},
			teardown: func() { *flagWidth = 0; *flagHeight = 0 },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)
			tt.verify(cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
window:
  width: 1600
  height: 900
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Flag overrides the file
	*flagConfig = configPath
	*flagWidth = 1920
	defer func() {
		*flagConfig = ""
		*flagWidth = 0
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Width should come from the flag (1920), not the file (1600)
	if cfg.Window.Width != 1920 {
		t.Errorf("expected width 1920 from flag, got %d", cfg.Window.Width)
	}

	// Height should come from the file since no flag override
	if cfg.Window.Height != 900 {
		t.Errorf("expected height 900 from file, got %d", cfg.Window.Height)
	}
}

func TestSaveTo(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "nested", "config.yaml")

	cfg := Default()
	cfg.Board.SlatCount = 77
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("failed to reload config: %v", err)
	}
	if loaded.Board.SlatCount != 77 {
		t.Errorf("expected slat count 77 after round trip, got %d", loaded.Board.SlatCount)
	}
}
