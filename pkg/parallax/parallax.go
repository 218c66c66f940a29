// Package parallax computes per-card image pan geometry.
//
// Each card shows its image at a slight up-scale so the image can pan inside
// the card frame without revealing an edge. Geometry is derived once from
// the image's natural size and the card's pixel size, and must be recomputed
// whenever either changes. The offset itself is a pure function of scroll
// progress: inert until the card's center crosses the viewport's horizontal
// center, then interpolating toward the opposite extreme as the card travels
// one card-width past it — a reveal while passing through the focal point,
// not continuous drift.
package parallax

import "math"

const (
	// DisplayUpscale is the fixed factor images are rendered above the
	// card's cover size, creating the headroom the pan travels through.
	DisplayUpscale = 1.15

	// SafetyFactor shrinks the usable headroom so the image edge never
	// shows, even at the extremes of travel.
	SafetyFactor = 0.9

	// aspectEps treats near-identical aspect ratios as equal: no pan.
	aspectEps = 1e-6
)

// Geometry is a card's derived pan parameters.
type Geometry struct {
	// MaxOffset is the largest safe displacement from center, in px.
	// Zero means the card never pans.
	MaxOffset float64 `json:"max_offset"`

	// Horizontal selects the pan axis: true pans along x, false along y.
	Horizontal bool `json:"horizontal"`

	// InitialOffset is the resting displacement before activation, in px.
	InitialOffset float64 `json:"initial_offset"`
}

// Inert reports whether the geometry produces no motion.
func (g Geometry) Inert() bool { return g.MaxOffset == 0 }

// ComputeGeometry derives pan geometry from the image's natural dimensions
// and the card's rendered dimensions.
//
// Direction: an image proportionally wider than its card pans horizontally,
// proportionally taller pans vertically, equal aspect does not pan.
// Magnitude: the rendered image dimension along the pan axis at the fixed
// up-scale, minus the card dimension, halved, scaled by the safety factor.
//
// Zero or non-finite dimensions short-circuit to inert geometry — degraded
// data must never emit NaN into the renderer.
func ComputeGeometry(imgW, imgH, cardW, cardH float64) Geometry {
	if !finitePositive(imgW) || !finitePositive(imgH) || !finitePositive(cardW) || !finitePositive(cardH) {
		return Geometry{}
	}

	imageAspect := imgW / imgH
	cardAspect := cardW / cardH
	if math.Abs(imageAspect-cardAspect) < aspectEps {
		return Geometry{}
	}

	horizontal := imageAspect > cardAspect

	// Cover-fit the image to the card, then up-scale: the excess along the
	// pan axis is the total headroom.
	var rendered, cardDim float64
	if horizontal {
		rendered = cardH * imageAspect * DisplayUpscale
		cardDim = cardW
	} else {
		rendered = cardW / imageAspect * DisplayUpscale
		cardDim = cardH
	}

	maxOffset := (rendered - cardDim) / 2 * SafetyFactor
	if maxOffset <= 0 {
		return Geometry{}
	}

	return Geometry{
		MaxOffset:     maxOffset,
		Horizontal:    horizontal,
		InitialOffset: -maxOffset,
	}
}

// finitePositive reports whether v is a finite number greater than zero.
func finitePositive(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v > 0
}

// Offset maps a card's travel past the viewport center to a pan offset.
// Before the card's center crosses the viewport center the offset rests at
// InitialOffset; after crossing it interpolates toward +MaxOffset as a
// function of distance past center normalized by the card's own width,
// clamped to one full card-width of travel. Allocation-free: runs per tick.
func Offset(cardCenterX, viewportCenterX, cardWidth float64, g Geometry) float64 {
	if g.Inert() {
		return 0
	}
	if cardWidth <= 0 || math.IsNaN(cardCenterX) || math.IsNaN(viewportCenterX) {
		return g.InitialOffset
	}

	travelled := viewportCenterX - cardCenterX
	if travelled <= 0 {
		return g.InitialOffset
	}

	k := travelled / cardWidth
	if k > 1 {
		k = 1
	}
	return g.InitialOffset + k*(g.MaxOffset-g.InitialOffset)
}
