package sim

import "math"

const SpatialCellSize = 100.0 // ~2x the boss radius

// maxGridDim caps cells per axis; positions beyond it clamp into the border cells
const maxGridDim = 256

// Entity kinds stored in the grid
const (
	EntityEnemy byte = 'e'
)

// EntityRef identifies an entity in the grid
type EntityRef struct {
	Kind byte
	Idx  int // index into the corresponding slice
}

// SpatialGrid is a uniform grid for broad-phase collision queries. Positions
// outside the covered area clamp into the border cells, so off-arena entities
// are still found.
type SpatialGrid struct {
	originX, originY float64
	cols, rows       int
	cells            [][]EntityRef
}

// NewSpatialGrid creates a grid covering the arena plus a margin on every side
func NewSpatialGrid(width, height, margin float64) *SpatialGrid {
	cols := int(math.Ceil((width+2*margin)/SpatialCellSize)) + 1
	rows := int(math.Ceil((height+2*margin)/SpatialCellSize)) + 1
	if cols < 1 {
		cols = 1
	} else if cols > maxGridDim {
		cols = maxGridDim
	}
	if rows < 1 {
		rows = 1
	} else if rows > maxGridDim {
		rows = maxGridDim
	}
	return &SpatialGrid{
		originX: -margin,
		originY: -margin,
		cols:    cols,
		rows:    rows,
		cells:   make([][]EntityRef, cols*rows),
	}
}

// Clear resets all cells (keeps allocated capacity)
func (g *SpatialGrid) Clear() {
	for i := range g.cells {
		g.cells[i] = g.cells[i][:0]
	}
}

func (g *SpatialGrid) cellCoords(x, y float64) (int, int) {
	cx := int(math.Floor((x - g.originX) / SpatialCellSize))
	cy := int(math.Floor((y - g.originY) / SpatialCellSize))
	if cx < 0 {
		cx = 0
	} else if cx >= g.cols {
		cx = g.cols - 1
	}
	if cy < 0 {
		cy = 0
	} else if cy >= g.rows {
		cy = g.rows - 1
	}
	return cx, cy
}

// InsertCircle adds an entity reference to all cells overlapping its bounding box
func (g *SpatialGrid) InsertCircle(x, y, radius float64, ref EntityRef) {
	minCX, minCY := g.cellCoords(x-radius, y-radius)
	maxCX, maxCY := g.cellCoords(x+radius, y+radius)
	for cy := minCY; cy <= maxCY; cy++ {
		for cx := minCX; cx <= maxCX; cx++ {
			idx := cy*g.cols + cx
			g.cells[idx] = append(g.cells[idx], ref)
		}
	}
}

// QueryBuf appends refs in cells overlapping the bounding box to buf and
// returns the extended slice. A ref inserted as a circle may appear more than once.
func (g *SpatialGrid) QueryBuf(x, y, radius float64, buf []EntityRef) []EntityRef {
	minCX, minCY := g.cellCoords(x-radius, y-radius)
	maxCX, maxCY := g.cellCoords(x+radius, y+radius)
	for cy := minCY; cy <= maxCY; cy++ {
		for cx := minCX; cx <= maxCX; cx++ {
			buf = append(buf, g.cells[cy*g.cols+cx]...)
		}
	}
	return buf
}
