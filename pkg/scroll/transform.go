package scroll

import "math"

// DefaultBookendScale is the full-bleed scale of the bookend cards during
// their pause phases. The scale phases interpolate between it and 1.
const DefaultBookendScale = 2.4

// MaxScroll computes the furthest (most negative) horizontal translation:
// min(0, −(containerWidth − viewportWidth)). When the content fits the
// viewport there is nothing to pan and the result clamps to exactly 0.
// Non-finite inputs also clamp to 0 so no NaN reaches the renderer.
func MaxScroll(containerWidth, viewportWidth float64) float64 {
	overflow := containerWidth - viewportWidth
	if math.IsNaN(overflow) || math.IsInf(overflow, 0) || overflow <= 0 {
		return 0
	}
	return -overflow
}

// State is the complete visual output for one progress value. It is a plain
// value struct so the per-tick hot path allocates nothing.
type State struct {
	Progress       float64 `json:"progress"`
	Phase          Phase   `json:"phase"`
	TranslateX     float64 `json:"translate_x"`
	IntroScale     float64 `json:"intro_scale"`
	OutroScale     float64 `json:"outro_scale"`
	ContentOpacity float64 `json:"content_opacity"`
}

// Transform maps scroll progress to translation, bookend scales, and content
// opacity. Construct once per layout (MaxScroll depends on container width)
// and call its methods on every scroll tick.
type Transform struct {
	Phases       Phases
	MaxScroll    float64 // ≤ 0
	BookendScale float64 // full-bleed scale S, > 1
}

// NewTransform builds a transform for a laid-out wall. Phases must already
// be validated; a zero BookendScale takes the default.
func NewTransform(phases Phases, containerWidth, viewportWidth float64) Transform {
	return Transform{
		Phases:       phases,
		MaxScroll:    MaxScroll(containerWidth, viewportWidth),
		BookendScale: DefaultBookendScale,
	}
}

// IntroScale is the lead card's scale: S through IntroPause, S → 1 across
// IntroScale, then 1.
func (t Transform) IntroScale(p float64) float64 {
	s := t.scale()
	k := ramp(p, t.Phases.IntroPauseEnd, t.Phases.IntroScaleEnd)
	return s + (1-s)*k
}

// OutroScale is the trail card's scale: 1 through Horizontal, 1 → S across
// OutroScale, then S.
func (t Transform) OutroScale(p float64) float64 {
	s := t.scale()
	k := ramp(p, t.Phases.OutroScaleStart, t.Phases.OutroPauseStart)
	return 1 + (s-1)*k
}

// TranslateX is the horizontal pan: 0 through the end of IntroScale,
// 0 → MaxScroll across Horizontal, then MaxScroll.
func (t Transform) TranslateX(p float64) float64 {
	k := ramp(p, t.Phases.IntroScaleEnd, t.Phases.OutroScaleStart)
	return t.MaxScroll * k
}

// ContentOpacity hides body cards while a bookend dominates: 0 during both
// pauses, 0 → 1 across IntroScale, 1 across Horizontal, 1 → 0 across
// OutroScale. No card is ever half-scaled and half-panned at once.
func (t Transform) ContentOpacity(p float64) float64 {
	in := ramp(p, t.Phases.IntroPauseEnd, t.Phases.IntroScaleEnd)
	out := ramp(p, t.Phases.OutroScaleStart, t.Phases.OutroPauseStart)
	return in * (1 - out)
}

// At evaluates the full visual state at progress p.
func (t Transform) At(p float64) State {
	p = clamp01(p)
	return State{
		Progress:       p,
		Phase:          t.Phases.At(p),
		TranslateX:     t.TranslateX(p),
		IntroScale:     t.IntroScale(p),
		OutroScale:     t.OutroScale(p),
		ContentOpacity: t.ContentOpacity(p),
	}
}

func (t Transform) scale() float64 {
	if t.BookendScale > 1 {
		return t.BookendScale
	}
	return DefaultBookendScale
}
