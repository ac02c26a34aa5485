// internal/grid/layout.go
package grid

import "math"

// SnapPolicy controls how pointer positions map to lattice points.
type SnapPolicy int

const (
	// SnapAlways clamps to the nearest in-bounds lattice point no matter
	// how far the pointer is from it.
	SnapAlways SnapPolicy = iota
	// SnapWithinRadius resolves only when the pointer is within the
	// configured pixel radius of a lattice point. The puzzle grid uses
	// this policy so moves between dots produce no point.
	SnapWithinRadius
)

// Margins are the screen margins reserved around the grid.
type Margins struct {
	Left   float64
	Right  float64
	Top    float64
	Bottom float64
}

// marginsFor picks margins by viewport width breakpoint.
func marginsFor(width float64) Margins {
	switch {
	case width < 768:
		return Margins{Left: 60, Right: 0, Top: 150, Bottom: 80}
	case width < 1024:
		return Margins{Left: 80, Right: 25, Top: 160, Bottom: 100}
	default:
		return Margins{Left: 100, Right: 0, Top: 200, Bottom: 120}
	}
}

// Layout owns the mapping between pixel space and the lattice. Geometry is
// recomputed only through Resize; no other component mutates it.
type Layout struct {
	dims       int
	policy     SnapPolicy
	snapRadius float64
	minCell    float64

	cellSize float64
	originX  float64
	originY  float64
}

// NewLayout creates a Layout for a dims x dims lattice. snapRadius is only
// consulted under SnapWithinRadius. minCell is the smallest cell size in
// pixels the layout will shrink to.
func NewLayout(dims int, policy SnapPolicy, snapRadius, minCell float64) *Layout {
	return &Layout{
		dims:       dims,
		policy:     policy,
		snapRadius: snapRadius,
		minCell:    minCell,
		cellSize:   minCell,
	}
}

// Dimensions returns the lattice size.
func (l *Layout) Dimensions() int { return l.dims }

// CellSize returns the current per-cell pixel size.
func (l *Layout) CellSize() float64 { return l.cellSize }

// Origin returns the pixel position of lattice point (0,0).
func (l *Layout) Origin() (x, y float64) { return l.originX, l.originY }

// Resize recomputes cell size and origin so the grid stays centered within
// the breakpoint margins for the given viewport.
func (l *Layout) Resize(width, height float64) {
	m := marginsFor(width)

	availableWidth := width - (m.Left + m.Right)
	availableHeight := height - (m.Top + m.Bottom)

	maxGridDimension := math.Min(availableWidth, availableHeight)
	cell := math.Floor(maxGridDimension / float64(l.dims))
	if cell < l.minCell {
		cell = l.minCell
	}

	totalGridWidth := cell * float64(l.dims)
	totalGridHeight := cell * float64(l.dims)

	l.cellSize = cell
	l.originX = m.Left + math.Round((availableWidth-totalGridWidth)/2)
	l.originY = m.Top + math.Round((availableHeight-totalGridHeight)/2)
}

// ToPixel maps a lattice point to its pixel position.
func (l *Layout) ToPixel(p Point) (x, y float64) {
	return float64(p.X)*l.cellSize + l.originX, float64(p.Y)*l.cellSize + l.originY
}

// ToLattice maps a pixel position to the nearest in-bounds lattice point.
// Under SnapWithinRadius the second return is false when the nearest point
// is farther than the snap radius.
func (l *Layout) ToLattice(px, py float64) (Point, bool) {
	gx := roundToInt((px - l.originX) / l.cellSize)
	gy := roundToInt((py - l.originY) / l.cellSize)

	p := Point{X: clamp(gx, 0, l.dims-1), Y: clamp(gy, 0, l.dims-1)}

	if l.policy == SnapWithinRadius {
		sx, sy := l.ToPixel(p)
		if math.Hypot(px-sx, py-sy) > l.snapRadius {
			return Point{}, false
		}
	}
	return p, true
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
