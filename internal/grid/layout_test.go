// internal/grid/layout_test.go
package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResizeDesktopCentering(t *testing.T) {
	l := NewLayout(5, SnapAlways, 0, 40)
	l.Resize(1280, 1000)

	// width >= 1024: margins {left: 100, right: 0, top: 200, bottom: 120}
	// available 1180 x 680, cell = floor(680/5) = 136, grid 680 x 680
	assert.Equal(t, 136.0, l.CellSize())
	x, y := l.Origin()
	assert.Equal(t, 350.0, x)
	assert.Equal(t, 200.0, y)
}

func TestResizeClampsToMinCell(t *testing.T) {
	l := NewLayout(5, SnapAlways, 0, 40)
	l.Resize(300, 300)

	assert.Equal(t, 40.0, l.CellSize())
}

func TestResizeTabletBreakpoint(t *testing.T) {
	l := NewLayout(5, SnapAlways, 0, 40)
	l.Resize(800, 900)

	// 768 <= width < 1024: margins {left: 80, right: 25, top: 160, bottom: 100}
	// available 695 x 640, cell = floor(640/5) = 128
	assert.Equal(t, 128.0, l.CellSize())
}

func TestPixelLatticeRoundTrip(t *testing.T) {
	l := NewLayout(5, SnapAlways, 0, 40)
	l.Resize(1280, 1000)

	for _, p := range []Point{{X: 0, Y: 0}, {X: 2, Y: 3}, {X: 4, Y: 4}} {
		px, py := l.ToPixel(p)
		got, ok := l.ToLattice(px, py)
		require.True(t, ok)
		assert.Equal(t, p, got)
	}
}

func TestToLatticeSnapAlwaysClamps(t *testing.T) {
	l := NewLayout(5, SnapAlways, 0, 40)

	// Far outside the grid still resolves to the nearest corner.
	p, ok := l.ToLattice(-500, 10000)
	require.True(t, ok)
	assert.Equal(t, Point{X: 0, Y: 4}, p)
}

func TestToLatticeWithinRadius(t *testing.T) {
	l := NewLayout(5, SnapWithinRadius, 20, 40)

	// Default geometry: cell 40, origin (0,0).
	p, ok := l.ToLattice(43, 2)
	require.True(t, ok)
	assert.Equal(t, Point{X: 1, Y: 0}, p)

	// Between dots: nearest lattice point is farther than the radius.
	_, ok = l.ToLattice(21, 10)
	assert.False(t, ok)
}
