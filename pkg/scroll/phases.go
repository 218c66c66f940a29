// Package scroll maps a single scroll progress scalar to the wall's visual
// state, and back.
//
// Progress p ∈ [0,1] is partitioned into five phases by four strictly
// increasing boundaries:
//
//	IntroPause | IntroScale | Horizontal | OutroScale | OutroPause
//	0 ──────── a ────────── b ────────── c ────────── d ──────── 1
//
// The pauses hold a stable title card, the scale phases shrink or grow the
// bookend cards without moving the camera, and only Horizontal pans content.
// Every output is continuous at each boundary by construction: each piece's
// endpoint equals the next piece's start.
package scroll

import (
	"math"

	"github.com/jverhoef/cardrail/pkg/errors"
)

// Phase names the sub-interval of progress a value falls in.
type Phase string

// Scroll phases in order.
const (
	PhaseIntroPause Phase = "intro_pause"
	PhaseIntroScale Phase = "intro_scale"
	PhaseHorizontal Phase = "horizontal"
	PhaseOutroScale Phase = "outro_scale"
	PhaseOutroPause Phase = "outro_pause"
)

// Phases holds the ordered boundary tuple. It is configuration: validated
// once at load and never mutated at runtime.
type Phases struct {
	IntroPauseEnd   float64 `json:"intro_pause_end" toml:"intro_pause_end"`
	IntroScaleEnd   float64 `json:"intro_scale_end" toml:"intro_scale_end"`
	OutroScaleStart float64 `json:"outro_scale_start" toml:"outro_scale_start"`
	OutroPauseStart float64 `json:"outro_pause_start" toml:"outro_pause_start"`
}

// DefaultPhases is the product's boundary tuple: a short dwell on each
// bookend and most of the progress range spent panning.
var DefaultPhases = Phases{
	IntroPauseEnd:   0.05,
	IntroScaleEnd:   0.20,
	OutroScaleStart: 0.80,
	OutroPauseStart: 0.95,
}

// Validate asserts the boundaries are strictly increasing within (0,1).
// Out-of-order boundaries are a configuration bug, not a runtime condition,
// so the error carries CONFIG_PHASE_ORDER and should fail startup.
func (p Phases) Validate() error {
	bounds := []float64{0, p.IntroPauseEnd, p.IntroScaleEnd, p.OutroScaleStart, p.OutroPauseStart, 1}
	for i := 1; i < len(bounds); i++ {
		if math.IsNaN(bounds[i]) || bounds[i] <= bounds[i-1] {
			return errors.New(errors.ErrCodeConfigPhaseOrder,
				"phase boundaries must be strictly increasing in (0,1): %g, %g, %g, %g",
				p.IntroPauseEnd, p.IntroScaleEnd, p.OutroScaleStart, p.OutroPauseStart)
		}
	}
	return nil
}

// At names the phase containing progress p. Boundary values belong to the
// later phase; progress outside [0,1] clamps to the nearest pause.
func (p Phases) At(progress float64) Phase {
	switch {
	case progress < p.IntroPauseEnd:
		return PhaseIntroPause
	case progress < p.IntroScaleEnd:
		return PhaseIntroScale
	case progress < p.OutroScaleStart:
		return PhaseHorizontal
	case progress < p.OutroPauseStart:
		return PhaseOutroScale
	default:
		return PhaseOutroPause
	}
}

// clamp01 bounds v to [0,1]; NaN becomes 0 so no hot-path output is NaN.
func clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// ramp linearly maps v from [lo,hi] to [0,1], clamped. lo == hi yields 1 at
// and beyond the boundary, keeping outputs continuous for degenerate spans.
func ramp(v, lo, hi float64) float64 {
	if hi <= lo {
		if v < lo {
			return 0
		}
		return 1
	}
	return clamp01((v - lo) / (hi - lo))
}
