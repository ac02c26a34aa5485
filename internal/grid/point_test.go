// internal/grid/point_test.go
package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPointBounds(t *testing.T) {
	p, err := NewPoint(0, 4, 5)
	require.NoError(t, err)
	assert.Equal(t, Point{X: 0, Y: 4}, p)

	_, err = NewPoint(-1, 0, 5)
	assert.Error(t, err)

	_, err = NewPoint(0, 5, 5)
	assert.Error(t, err)
}

func TestPointLess(t *testing.T) {
	assert.True(t, Point{X: 0, Y: 3}.Less(Point{X: 1, Y: 0}))
	assert.True(t, Point{X: 1, Y: 0}.Less(Point{X: 1, Y: 1}))
	assert.False(t, Point{X: 1, Y: 1}.Less(Point{X: 1, Y: 1}))
}

func TestSegmentKeySymmetry(t *testing.T) {
	a := Point{X: 2, Y: 3}
	b := Point{X: 2, Y: 1}

	assert.Equal(t, SegmentKey(a, b), SegmentKey(b, a))
	assert.Equal(t, "2,1-2,3", SegmentKey(a, b))
}

func TestNewSegmentCanonicalOrder(t *testing.T) {
	s := NewSegment(Point{X: 3, Y: 0}, Point{X: 0, Y: 3})
	assert.Equal(t, Point{X: 0, Y: 3}, s.A)
	assert.Equal(t, Point{X: 3, Y: 0}, s.B)
}

func TestInterpolateSamePoint(t *testing.T) {
	assert.Nil(t, Interpolate(Point{X: 1, Y: 1}, Point{X: 1, Y: 1}))
}

func TestInterpolateAdjacent(t *testing.T) {
	got := Interpolate(Point{X: 0, Y: 0}, Point{X: 1, Y: 0})
	assert.Equal(t, []Point{{X: 1, Y: 0}}, got)
}

func TestInterpolateFastMove(t *testing.T) {
	got := Interpolate(Point{X: 0, Y: 0}, Point{X: 3, Y: 0})
	assert.Equal(t, []Point{{X: 1, Y: 0}, {X: 2, Y: 0}, {X: 3, Y: 0}}, got)
}

func TestInterpolateDiagonal(t *testing.T) {
	got := Interpolate(Point{X: 0, Y: 0}, Point{X: 2, Y: 2})
	assert.Equal(t, []Point{{X: 1, Y: 1}, {X: 2, Y: 2}}, got)
}

func TestInterpolateNonUniform(t *testing.T) {
	// Step count is max(|dx|, |dy|); the shorter axis rounds.
	got := Interpolate(Point{X: 0, Y: 0}, Point{X: 4, Y: 2})
	assert.Equal(t, []Point{{X: 1, Y: 1}, {X: 2, Y: 1}, {X: 3, Y: 2}, {X: 4, Y: 2}}, got)
}
