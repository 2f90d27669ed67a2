// Package config handles viewer configuration loading and management.
package config

// Config holds all viewer settings.
type Config struct {
	Board   BoardConfig   `yaml:"board"`
	Sweep   SweepConfig   `yaml:"sweep"`
	Export  ExportConfig  `yaml:"export"`
	Window  WindowConfig  `yaml:"window"`
	Logging LoggingConfig `yaml:"logging"`
}

// BoardConfig describes the zigzag billboard geometry.
type BoardConfig struct {
	Width     float64 `yaml:"width"`      // World units
	Height    float64 `yaml:"height"`     // World units
	SlatCount int     `yaml:"slat_count"` // Prism pairs across the board
	AngleDeg  float64 `yaml:"angle_deg"`  // Slat tilt, degrees in [0, 90)
}

// SweepConfig holds the camera sweep animation settings.
type SweepConfig struct {
	AngleDeg float64 `yaml:"angle_deg"` // Total sweep arc, degrees
	Speed    float64 `yaml:"speed"`     // 5 means one cycle per 3 seconds
}

// ExportConfig holds GIF export settings.
type ExportConfig struct {
	FrameCount int    `yaml:"frame_count"`
	MaxWidth   int    `yaml:"max_width"` // Output pixels, 0 means no limit
	OutputPath string `yaml:"output_path"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Width  int  `yaml:"width"`
	Height int  `yaml:"height"`
	VSync  bool `yaml:"vsync"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Board: BoardConfig{
			Width:     2.0,
			Height:    1.0,
			SlatCount: 20,
			AngleDeg:  45,
		},
		Sweep: SweepConfig{
			AngleDeg: 60,
			Speed:    5,
		},
		Export: ExportConfig{
			FrameCount: 30,
			MaxWidth:   640,
			OutputPath: "billboard.gif",
		},
		Window: WindowConfig{
			Width:  1280,
			Height: 720,
			VSync:  true,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Clamp pulls every field back into its valid range. Hand-edited config
// files can carry anything, so this runs after every load.
func (c *Config) Clamp() {
	if c.Board.Width <= 0 {
		c.Board.Width = 2.0
	}
	if c.Board.Height <= 0 {
		c.Board.Height = 1.0
	}
	if c.Board.SlatCount < 1 {
		c.Board.SlatCount = 1
	}
	if c.Board.SlatCount > 200 {
		c.Board.SlatCount = 200
	}
	if c.Board.AngleDeg < 0 {
		c.Board.AngleDeg = 0
	}
	if c.Board.AngleDeg >= 90 {
		c.Board.AngleDeg = 89
	}
	if c.Sweep.AngleDeg < 0 {
		c.Sweep.AngleDeg = 0
	}
	if c.Sweep.AngleDeg > 180 {
		c.Sweep.AngleDeg = 180
	}
	if c.Sweep.Speed <= 0 {
		c.Sweep.Speed = 5
	}
	if c.Export.FrameCount < 1 {
		c.Export.FrameCount = 30
	}
	if c.Export.MaxWidth < 0 {
		c.Export.MaxWidth = 0
	}
	if c.Export.OutputPath == "" {
		c.Export.OutputPath = "billboard.gif"
	}
	if c.Window.Width < 320 {
		c.Window.Width = 1280
	}
	if c.Window.Height < 240 {
		c.Window.Height = 720
	}
}
