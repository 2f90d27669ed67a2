// Package billboard builds the zigzag billboard geometry and its GPU
// resources. The board is a corrugated surface: each slat carries a
// left-facing and a right-facing triangle pair, so the perceived image
// flips with the viewer's horizontal angle.
package billboard

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is wrapped by all configuration validation failures.
var ErrInvalidConfig = errors.New("invalid billboard configuration")

// Config describes the board geometry.
type Config struct {
	Width     float64 // board width in world units, > 0
	Height    float64 // board height in world units, > 0
	SlatCount int     // number of zigzag segments, >= 1
	AngleDeg  float64 // slat angle in degrees, [0, 90); tan is unbounded at 90
}

// Validate checks the configuration before any geometry math runs.
// An angle of exactly 0 produces a flat, coplanar board; that is a
// degenerate but valid configuration and is not rejected.
func (c Config) Validate() error {
	if c.Width <= 0 {
		return fmt.Errorf("%w: width %v must be positive", ErrInvalidConfig, c.Width)
	}
	if c.Height <= 0 {
		return fmt.Errorf("%w: height %v must be positive", ErrInvalidConfig, c.Height)
	}
	if c.SlatCount < 1 {
		return fmt.Errorf("%w: slat count %d must be at least 1", ErrInvalidConfig, c.SlatCount)
	}
	if c.AngleDeg < 0 || c.AngleDeg >= 90 {
		return fmt.Errorf("%w: slat angle %v must be in [0, 90)", ErrInvalidConfig, c.AngleDeg)
	}
	return nil
}

// Aspect returns width/height.
func (c Config) Aspect() float64 {
	return c.Width / c.Height
}
