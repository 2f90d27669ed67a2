package config

import "flag"

var (
	flagConfig = flag.String("config", "", "Path to config file")
	flagDebug  = flag.Bool("debug", false, "Enable debug logging")
	flagWidth  = flag.Int("width", 0, "Window width")
	flagHeight = flag.Int("height", 0, "Window height")
	flagSlats  = flag.Int("slats", 0, "Slat pair count")
	flagAngle  = flag.Float64("slat-angle", -1, "Slat tilt angle in degrees")
	flagSweep  = flag.Float64("sweep", -1, "Camera sweep arc in degrees")
	flagSpeed  = flag.Float64("speed", 0, "Sweep speed (5 = one cycle per 3s)")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagWidth > 0 {
		cfg.Window.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Window.Height = *flagHeight
	}
	if *flagSlats > 0 {
		cfg.Board.SlatCount = *flagSlats
	}
	if *flagAngle >= 0 {
		cfg.Board.AngleDeg = *flagAngle
	}
	if *flagSweep >= 0 {
		cfg.Sweep.AngleDeg = *flagSweep
	}
	if *flagSpeed > 0 {
		cfg.Sweep.Speed = *flagSpeed
	}
}
