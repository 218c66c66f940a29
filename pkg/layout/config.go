package layout

import "math"

// Responsive sizing defaults. Cells are square, so RowHeight always equals
// ColumnWidth. The narrow breakpoint switches to a two-column fluid grid.
const (
	// DefaultViewportWidth substitutes for invalid (≤ 0) viewport widths.
	DefaultViewportWidth = 1920.0

	// DesktopColumnWidth is the fixed cell size above the narrow breakpoint.
	DesktopColumnWidth = 280.0

	// NarrowBreakpoint is the viewport width below which cells become fluid.
	NarrowBreakpoint = 768.0

	// DefaultGap is the spacing between cells in px.
	DefaultGap = 16.0

	// DefaultMinPadding is the smallest horizontal padding either side of
	// the wall, used when viewport centering asks for less.
	DefaultMinPadding = 24.0

	// WallRows is the product's fixed row count. The packer generalizes to
	// any fixed row count; the wall does not.
	WallRows = 2
)

// Config holds the responsive sizing derived from a viewport width.
type Config struct {
	ColumnWidth float64 `json:"column_width" bson:"column_width"`
	RowHeight   float64 `json:"row_height" bson:"row_height"`
	Gap         float64 `json:"gap" bson:"gap"`
	MinPadding  float64 `json:"min_padding" bson:"min_padding"`
}

// ConfigFor derives the sizing configuration for a viewport width.
// Desktop viewports use the fixed column width; narrow viewports compute
// floor((viewportWidth − gap) / 2) so two columns always fit without
// sub-pixel jitter. Widths ≤ 0 are invalid and fall back to the default
// desktop viewport so no dimension ever goes negative.
func ConfigFor(viewportWidth float64) Config {
	if viewportWidth <= 0 || math.IsNaN(viewportWidth) || math.IsInf(viewportWidth, 0) {
		viewportWidth = DefaultViewportWidth
	}

	col := DesktopColumnWidth
	if viewportWidth < NarrowBreakpoint {
		col = math.Floor((viewportWidth - DefaultGap) / 2)
	}

	return Config{
		ColumnWidth: col,
		RowHeight:   col, // square cells
		Gap:         DefaultGap,
		MinPadding:  DefaultMinPadding,
	}
}

// SpanWidth returns the pixel width of a span covering cols columns.
func (c Config) SpanWidth(cols int) float64 {
	if cols < 1 {
		cols = 1
	}
	return float64(cols)*c.ColumnWidth + float64(cols-1)*c.Gap
}

// SpanHeight returns the pixel height of a span covering rows rows.
func (c Config) SpanHeight(rows int) float64 {
	if rows < 1 {
		rows = 1
	}
	return float64(rows)*c.RowHeight + float64(rows-1)*c.Gap
}
