// Package wall renders a computed card-wall layout as a standalone SVG.
//
// The renderer draws every card at its layout position inside the full
// container, with the viewport frame overlaid so the horizontal overflow is
// visible. When a scroll state is supplied, the wall is drawn mid-scroll:
// the card group is translated, the bookends are scaled, and the content
// opacity is applied, matching what a browser would show at that progress.
package wall
