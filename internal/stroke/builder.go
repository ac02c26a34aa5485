// internal/stroke/builder.go
package stroke

import (
	"doodleday/internal/grid"
	"doodleday/internal/sketch"
)

// BlockedKeys supplies the canonical keys a stroke may never cross. Puzzle
// mode feeds the disabled-segment set here; free-form mode passes nil.
type BlockedKeys func() map[string]struct{}

// Builder accumulates pointer events into a snapped polyline and commits
// the finished line to a history. One builder serves one canvas; all calls
// arrive from the UI event loop in order.
type Builder struct {
	layout  *grid.Layout
	history *sketch.History
	blocked BlockedKeys

	thickness float64
	color     string

	drawing bool
	points  []grid.Point
}

// NewBuilder creates a builder over the given layout and history.
func NewBuilder(layout *grid.Layout, history *sketch.History, blocked BlockedKeys) *Builder {
	return &Builder{
		layout:    layout,
		history:   history,
		blocked:   blocked,
		thickness: 2,
		color:     "#FFFFFF",
	}
}

// SetStyle sets thickness and color applied to committed lines.
func (b *Builder) SetStyle(thickness float64, color string) {
	b.thickness = thickness
	b.color = color
}

// Drawing reports whether a stroke is in progress.
func (b *Builder) Drawing() bool { return b.drawing }

// CurrentPoints returns a copy of the in-progress polyline.
func (b *Builder) CurrentPoints() []grid.Point {
	return append([]grid.Point(nil), b.points...)
}

// PointerDown starts a stroke at the lattice point nearest the pointer.
// Returns the starting point and whether a stroke began.
func (b *Builder) PointerDown(px, py float64) (grid.Point, bool) {
	point, ok := b.layout.ToLattice(px, py)
	if !ok {
		return grid.Point{}, false
	}

	b.drawing = true
	b.points = []grid.Point{point}
	return point, true
}

// PointerMove extends the in-progress stroke. Moves outside the snap
// radius are ignored. Moving back onto the second-to-last point retracts
// the last segment; this backtrack check runs before any validity check.
// Otherwise the gap to the new point is interpolated and the whole batch
// of candidate segments is appended only if none of them duplicates a
// committed or blocked segment.
func (b *Builder) PointerMove(px, py float64) {
	if !b.drawing {
		return
	}

	point, ok := b.layout.ToLattice(px, py)
	if !ok {
		return
	}
	if len(b.points) == 0 {
		return
	}

	if len(b.points) > 1 {
		secondLast := b.points[len(b.points)-2]
		if point == secondLast {
			b.points = b.points[:len(b.points)-1]
			return
		}
	}

	last := b.points[len(b.points)-1]
	intermediate := grid.Interpolate(last, point)
	if len(intermediate) == 0 {
		return
	}

	taken := b.takenKeys()
	prev := last
	for _, next := range intermediate {
		if _, exists := taken[grid.SegmentKey(prev, next)]; exists {
			// Reject the whole batch; no partial commit.
			return
		}
		prev = next
	}

	b.points = append(b.points, intermediate...)
}

// PointerUp completes the stroke. A stroke with at least two points is
// committed unless any of its segments matches a blocked key; the
// re-check here catches a long jump that never produced a per-move check.
// Returns the committed line, if any. Pointer-leave is handled
// identically.
func (b *Builder) PointerUp() (sketch.Line, bool) {
	if !b.drawing {
		return sketch.Line{}, false
	}

	points := b.points
	b.drawing = false
	b.points = nil

	if len(points) < 2 {
		return sketch.Line{}, false
	}

	if b.blocked != nil {
		blocked := b.blocked()
		for i := 0; i < len(points)-1; i++ {
			if _, hit := blocked[grid.SegmentKey(points[i], points[i+1])]; hit {
				return sketch.Line{}, false
			}
		}
	}

	line := sketch.NewLine(points, b.thickness, b.color)
	b.history.AddLine(line)
	return line, true
}

// takenKeys is the canonical-key set a new segment must not collide with:
// committed lines, blocked segments, and the stroke's own accumulated
// points.
func (b *Builder) takenKeys() map[string]struct{} {
	taken := b.history.SegmentKeys()
	if b.blocked != nil {
		for key := range b.blocked() {
			taken[key] = struct{}{}
		}
	}
	for i := 0; i < len(b.points)-1; i++ {
		taken[grid.SegmentKey(b.points[i], b.points[i+1])] = struct{}{}
	}
	return taken
}
