// internal/grid/point.go
package grid

import "fmt"

// DefaultDimensions is the lattice size of the daily puzzle board.
const DefaultDimensions = 5

// Point is a position on the integer lattice. Equality is structural.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// NewPoint creates a Point and enforces 0 <= x,y < dims.
func NewPoint(x, y, dims int) (Point, error) {
	if x < 0 || x >= dims || y < 0 || y >= dims {
		return Point{}, fmt.Errorf("point (%d,%d) outside %dx%d grid", x, y, dims, dims)
	}
	return Point{X: x, Y: y}, nil
}

// Less orders points lexicographically by (x, y).
func (p Point) Less(q Point) bool {
	if p.X != q.X {
		return p.X < q.X
	}
	return p.Y < q.Y
}

// Segment is an unordered pair of distinct lattice points. The constructor
// stores the endpoints in canonical (lexicographic) order so two segments
// with swapped endpoints compare equal.
type Segment struct {
	A Point `json:"a"`
	B Point `json:"b"`
}

// NewSegment builds a canonical segment from two endpoints.
func NewSegment(a, b Point) Segment {
	if b.Less(a) {
		a, b = b, a
	}
	return Segment{A: a, B: b}
}

// Key returns the canonical string identity of the segment.
func (s Segment) Key() string {
	return fmt.Sprintf("%d,%d-%d,%d", s.A.X, s.A.Y, s.B.X, s.B.Y)
}

// SegmentKey returns the canonical key for the segment between a and b.
// SegmentKey(a, b) == SegmentKey(b, a) for all a, b. Callers must not pass
// a == b; the key for a degenerate segment is not meaningful.
func SegmentKey(a, b Point) string {
	return NewSegment(a, b).Key()
}

// Interpolate returns the lattice points strictly after a up to and
// including b, stepped proportionally so that a fast pointer move across
// several cells still yields every intermediate point. Step count is
// max(|dx|, |dy|); intermediate coordinates are rounded to the nearest
// integer. Returns nil when a == b.
func Interpolate(a, b Point) []Point {
	dx := b.X - a.X
	dy := b.Y - a.Y
	steps := abs(dx)
	if abs(dy) > steps {
		steps = abs(dy)
	}
	if steps == 0 {
		return nil
	}

	points := make([]Point, 0, steps)
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps)
		points = append(points, Point{
			X: roundToInt(float64(a.X) + float64(dx)*t),
			Y: roundToInt(float64(a.Y) + float64(dy)*t),
		})
	}
	return points
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func roundToInt(v float64) int {
	if v < 0 {
		return int(v - 0.5)
	}
	return int(v + 0.5)
}
