package mandel

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrInvalidResolution    = errors.New("resolution must be at least 1")
	ErrInvalidZoom          = errors.New("zoom must be positive and finite")
	ErrInvalidEscapeRadius  = errors.New("escape radius must be non-negative with a finite square")
	ErrInvalidMaxIterations = errors.New("max iterations must not be negative")
	ErrInvalidCenter        = errors.New("center must be finite")
)

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// Validate reports the first constraint v violates, wrapping one of the Err* sentinels.
func (v Viewport) Validate() error {
	if v.Resolution < 1 {
		return fmt.Errorf("resolution %d: %w", v.Resolution, ErrInvalidResolution)
	}
	if !(v.Zoom > 0) || !isFinite(v.Zoom) || !isFinite(v.RealSpan()) {
		return fmt.Errorf("zoom %v: %w", v.Zoom, ErrInvalidZoom)
	}
	// the evaluator compares squared moduli, so radius² has to stay finite too
	if !(v.EscapeRadius >= 0) || !isFinite(v.EscapeRadius*v.EscapeRadius) {
		return fmt.Errorf("escape radius %v: %w", v.EscapeRadius, ErrInvalidEscapeRadius)
	}
	if v.MaxIterations < 0 {
		return fmt.Errorf("max iterations %d: %w", v.MaxIterations, ErrInvalidMaxIterations)
	}
	if !isFinite(v.CenterReal) || !isFinite(v.CenterImag) {
		return fmt.Errorf("center (%v, %v): %w", v.CenterReal, v.CenterImag, ErrInvalidCenter)
	}
	if r := v.Region(); !isFinite(r.Xmin) || !isFinite(r.Xmax) || !isFinite(r.Ymin) || !isFinite(r.Ymax) {
		return fmt.Errorf("region %+v: %w", r, ErrInvalidCenter)
	}
	return nil
}
