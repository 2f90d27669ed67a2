// Package sweep drives the camera's back-and-forth horizontal orbit.
//
// Angle is the only sweep formula in the repository. The live preview and
// the GIF exporter both call it, so an export is a deterministic,
// discretized sample of exactly the motion the user previewed.
package sweep

import (
	gomath "math"
	"time"
)

// baseDuration is one full sweep cycle at speed 5.
const baseDuration = 3 * time.Second

// Angle returns the camera azimuth in radians for a sweep position.
// progress traces one full cosine cycle over [0,1]: the left extreme
// (-sweep/2) at 0, the right extreme (+sweep/2) at 0.5, and back to the
// left extreme at 1.
func Angle(progress, sweepDeg float64) float64 {
	sweepRad := sweepDeg * gomath.Pi / 180
	return -gomath.Cos(progress*2*gomath.Pi) * (sweepRad / 2)
}

// CycleDuration returns the wall-clock length of one sweep cycle for a
// speed multiplier: speed 5 is a 3 second cycle, higher is faster.
// Non-positive speeds fall back to the base duration.
func CycleDuration(speed float64) time.Duration {
	if speed <= 0 {
		return baseDuration
	}
	return time.Duration(float64(baseDuration) / (speed / 5))
}

// Progress wraps elapsed time into a [0,1) position within the cycle.
func Progress(elapsed time.Duration, period time.Duration) float64 {
	if period <= 0 {
		return 0
	}
	p := gomath.Mod(elapsed.Seconds()/period.Seconds(), 1)
	if p < 0 {
		p += 1
	}
	return p
}
