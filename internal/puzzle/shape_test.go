// internal/puzzle/shape_test.go
package puzzle

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"doodleday/internal/grid"
)

func TestShapeValidate(t *testing.T) {
	shape := lShape()
	assert.NoError(t, shape.Validate())

	bad := lShape()
	bad.MinLinesRequired = 0
	assert.Error(t, bad.Validate())

	bad = lShape()
	bad.TotalLinesLimit = 2
	assert.Error(t, bad.Validate())

	bad = lShape()
	bad.Lines = append(bad.Lines, SegmentSpec{
		Start: grid.Point{X: 1, Y: 1},
		End:   grid.Point{X: 1, Y: 1},
	})
	assert.Error(t, bad.Validate())
}

func TestShapeSolutionKeysCanonical(t *testing.T) {
	shape := &Shape{
		ID:               "v",
		MinLinesRequired: 2,
		TotalLinesLimit:  5,
		Lines: []SegmentSpec{
			// Endpoints deliberately stored in reverse order.
			{Start: grid.Point{X: 1, Y: 0}, End: grid.Point{X: 0, Y: 0}},
			{Start: grid.Point{X: 1, Y: 0}, End: grid.Point{X: 2, Y: 0}},
		},
	}

	keys := shape.SolutionKeys()
	assert.Contains(t, keys, "0,0-1,0")
	assert.Contains(t, keys, "1,0-2,0")
}
