// internal/sketch/history_test.go
package sketch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistoryAddAndLinesCopy(t *testing.T) {
	h := NewHistory()
	line := NewLine(points(0, 0, 1, 0), 2, "#FFFFFF")
	h.AddLine(line)

	got := h.Lines()
	require.Len(t, got, 1)

	// Mutating the returned slice must not touch the stored state.
	got[0].Points[0].X = 99
	assert.Equal(t, 0, h.Lines()[0].Points[0].X)
}

func TestHistoryUndoRedoRoundTrip(t *testing.T) {
	h := NewHistory()
	h.AddLine(NewLine(points(0, 0, 1, 0), 2, "#FFFFFF"))
	h.AddLine(NewLine(points(1, 0, 1, 1), 2, "#FFFFFF"))

	before := h.Lines()
	require.Len(t, before, 2)

	h.Undo()
	assert.Len(t, h.Lines(), 1)

	// Redo restores the exact prior state: same ids, order and points.
	h.Redo()
	assert.Equal(t, before, h.Lines())

	h.Undo()
	h.Undo()
	assert.Empty(t, h.Lines())
	assert.False(t, h.CanUndo())

	h.Redo()
	h.Redo()
	assert.Len(t, h.Lines(), 2)
	assert.False(t, h.CanRedo())
}

func TestHistoryMutationClearsRedo(t *testing.T) {
	h := NewHistory()
	h.AddLine(NewLine(points(0, 0, 1, 0), 2, "#FFFFFF"))
	h.Undo()
	require.True(t, h.CanRedo())

	h.AddLine(NewLine(points(2, 0, 2, 1), 2, "#FFFFFF"))
	assert.False(t, h.CanRedo())
}

func TestHistoryUndoRedoOnEmptyStacks(t *testing.T) {
	h := NewHistory()
	h.Undo()
	h.Redo()
	assert.Empty(t, h.Lines())
}

func TestHistoryEraseLine(t *testing.T) {
	h := NewHistory()
	line := NewLine(points(0, 0, 1, 0), 2, "#FFFFFF")
	h.AddLine(line)

	h.EraseLine(line.ID)
	assert.Empty(t, h.Lines())

	h.Undo()
	assert.Len(t, h.Lines(), 1)
}

func TestHistoryEraseUnknownIDIsNoOp(t *testing.T) {
	h := NewHistory()
	h.EraseLine("nope")
	assert.False(t, h.CanUndo())
}

func TestHistoryUpdateThickness(t *testing.T) {
	h := NewHistory()
	a := NewLine(points(0, 0, 1, 0), 2, "#FFFFFF")
	b := NewLine(points(2, 0, 2, 1), 2, "#FFFFFF")
	h.AddLine(a)
	h.AddLine(b)

	h.UpdateThickness([]string{a.ID}, 6)

	lines := h.Lines()
	assert.Equal(t, 6.0, lines[0].Thickness)
	assert.Equal(t, 2.0, lines[1].Thickness)
}

func TestHistoryRemoveSegmentsSplitsLine(t *testing.T) {
	h := NewHistory()
	line := NewLine(points(0, 0, 1, 0, 2, 0, 3, 0), 2, "#FFFFFF")
	h.AddLine(line)

	// Removing the middle segment leaves two independent sub-lines.
	h.RemoveSegments(map[string]struct{}{SegmentID(line.ID, 1): {}})

	lines := h.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, points(0, 0, 1, 0), lines[0].Points)
	assert.Equal(t, points(2, 0, 3, 0), lines[1].Points)
	assert.NotEqual(t, line.ID, lines[0].ID)
	assert.NotEqual(t, line.ID, lines[1].ID)
	assert.NotEqual(t, lines[0].ID, lines[1].ID)
}

func TestHistoryRemoveSegmentsDropsEmptiedLine(t *testing.T) {
	h := NewHistory()
	line := NewLine(points(0, 0, 1, 0), 2, "#FFFFFF")
	h.AddLine(line)

	h.RemoveSegments(map[string]struct{}{SegmentID(line.ID, 0): {}})
	assert.Empty(t, h.Lines())

	h.Undo()
	require.Len(t, h.Lines(), 1)
	assert.Equal(t, line.ID, h.Lines()[0].ID)
}

func TestHistoryRemoveSegmentsUnknownIDIsNoOp(t *testing.T) {
	h := NewHistory()
	h.AddLine(NewLine(points(0, 0, 1, 0), 2, "#FFFFFF"))
	require.Len(t, h.Lines(), 1)

	h.RemoveSegments(map[string]struct{}{"other-0": {}})
	assert.Len(t, h.Lines(), 1)
	// No snapshot recorded for a no-op.
	h.Undo()
	assert.Len(t, h.Lines(), 0)
}

func TestHistoryClear(t *testing.T) {
	h := NewHistory()
	h.AddLine(NewLine(points(0, 0, 1, 0), 2, "#FFFFFF"))
	h.Undo()

	h.Clear()
	assert.Empty(t, h.Lines())
	assert.False(t, h.CanUndo())
	assert.False(t, h.CanRedo())
}
