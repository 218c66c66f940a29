// Package grid implements the fixed-row occupancy grid behind the card wall.
//
// The grid has a fixed number of rows and grows unboundedly to the right.
// Placement is column-major first-fit: columns are scanned left to right and
// rows top to bottom within each column, so 1-row cards double up vertically
// in a column before a full-height card forces a fresh column. This scan
// order determines the left-to-right reading order of the whole page.
//
// The grid is created fresh for each layout pass and discarded afterwards.
package grid

// Grid is a boolean occupancy matrix with a fixed row count.
// A cell is true iff some already-placed span covers it.
type Grid struct {
	rows   int
	cells  [][]bool // cells[row][col]
	maxCol int      // rightmost column any span has touched, -1 when empty
}

// New creates an empty grid with the given fixed row count.
// Row counts below 1 are clamped to 1.
func New(rows int) *Grid {
	if rows < 1 {
		rows = 1
	}
	g := &Grid{
		rows:   rows,
		cells:  make([][]bool, rows),
		maxCol: -1,
	}
	for r := range g.cells {
		g.cells[r] = make([]bool, 0, 16)
	}
	return g
}

// Rows returns the fixed row count.
func (g *Grid) Rows() int { return g.rows }

// MaxColumnUsed returns the rightmost occupied column, or -1 for an empty grid.
func (g *Grid) MaxColumnUsed() int { return g.maxCol }

// clampSpan normalizes a span so it always fits the fixed row count.
// Degenerate spans become 1×1; over-tall spans become full height.
func (g *Grid) clampSpan(rows, cols int) (int, int) {
	if rows < 1 {
		rows = 1
	}
	if cols < 1 {
		cols = 1
	}
	if rows > g.rows {
		rows = g.rows
	}
	return rows, cols
}

// CanFit reports whether a rows×cols span can be placed with its top-left
// corner at (row, col). It fails if the span would exceed the fixed row
// count or any covered cell is already occupied.
func (g *Grid) CanFit(row, col, rows, cols int) bool {
	if row < 0 || col < 0 {
		return false
	}
	if row+rows > g.rows {
		return false
	}
	for r := row; r < row+rows; r++ {
		for c := col; c < col+cols; c++ {
			if g.occupied(r, c) {
				return false
			}
		}
	}
	return true
}

// MarkOccupied fills every cell covered by a rows×cols span anchored at
// (row, col), growing columns as needed.
func (g *Grid) MarkOccupied(row, col, rows, cols int) {
	rows, cols = g.clampSpan(rows, cols)
	if row < 0 {
		row = 0
	}
	if col < 0 {
		col = 0
	}
	if row+rows > g.rows {
		row = g.rows - rows
	}
	g.grow(col + cols)
	for r := row; r < row+rows; r++ {
		for c := col; c < col+cols; c++ {
			g.cells[r][c] = true
		}
	}
	if last := col + cols - 1; last > g.maxCol {
		g.maxCol = last
	}
}

// FindFirstFit finds the first open position for a rows×cols span in
// column-major scan order and returns its top-left grid cell. If no tested
// position fits (possible only for spans competing with full-height cards
// at the frontier), it opens a fresh column at (0, MaxColumnUsed+1).
func (g *Grid) FindFirstFit(rows, cols int) (row, col int) {
	rows, cols = g.clampSpan(rows, cols)
	for c := 0; c <= g.maxCol+1; c++ {
		for r := 0; r <= g.rows-rows; r++ {
			if g.CanFit(r, c, rows, cols) {
				return r, c
			}
		}
	}
	return 0, g.maxCol + 1
}

// Place finds a first-fit position, marks it occupied, and returns it.
func (g *Grid) Place(rows, cols int) (row, col int) {
	rows, cols = g.clampSpan(rows, cols)
	row, col = g.FindFirstFit(rows, cols)
	g.MarkOccupied(row, col, rows, cols)
	return row, col
}

// occupied reads a cell, treating never-grown columns as empty.
func (g *Grid) occupied(row, col int) bool {
	if col >= len(g.cells[row]) {
		return false
	}
	return g.cells[row][col]
}

// grow extends every row's backing slice out to width columns.
func (g *Grid) grow(width int) {
	for r := range g.cells {
		for len(g.cells[r]) < width {
			g.cells[r] = append(g.cells[r], false)
		}
	}
}
