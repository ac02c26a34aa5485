// internal/sketch/history.go
package sketch

import (
	"sync"

	"doodleday/internal/grid"
)

// History is the set of completed lines for one drawing mode plus undo and
// redo stacks of whole-line-set snapshots. Invalid operations (unknown ids,
// empty stacks) are silent no-ops so UI-driven calls stay simple.
type History struct {
	mu        sync.Mutex
	lines     []Line
	undoStack [][]Line
	redoStack [][]Line
}

// NewHistory creates an empty history.
func NewHistory() *History {
	return &History{}
}

// Lines returns a copy of the committed lines.
func (h *History) Lines() []Line {
	h.mu.Lock()
	defer h.mu.Unlock()
	return cloneLines(h.lines)
}

// UniqueSegmentCount returns the deduplicated segment count of the
// committed lines.
func (h *History) UniqueSegmentCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return UniqueSegmentCount(h.lines)
}

// SegmentKeys returns the canonical key set of the committed lines.
func (h *History) SegmentKeys() map[string]struct{} {
	h.mu.Lock()
	defer h.mu.Unlock()
	return SegmentKeys(h.lines)
}

// AddLine appends a completed line, snapshotting the prior state for undo.
func (h *History) AddLine(line Line) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.pushUndoLocked()
	h.lines = append(h.lines, line.clone())
}

// EraseLine removes the line with the given id. Unknown ids are ignored.
func (h *History) EraseLine(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	idx := -1
	for i, line := range h.lines {
		if line.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return
	}

	h.pushUndoLocked()
	h.lines = append(h.lines[:idx], h.lines[idx+1:]...)
}

// UpdateLinePoints replaces the points of the line with the given id,
// snapshotting for undo. Unknown ids are ignored.
func (h *History) UpdateLinePoints(id string, points []grid.Point) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for i, line := range h.lines {
		if line.ID == id {
			h.pushUndoLocked()
			h.lines[i].Points = append([]grid.Point(nil), points...)
			return
		}
	}
}

// UpdateThickness sets the thickness of every line whose id is listed,
// snapshotting for undo. Unknown ids are ignored; a call matching nothing
// still records a snapshot, mirroring a plain attribute edit.
func (h *History) UpdateThickness(ids []string, thickness float64) {
	if len(ids) == 0 {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.pushUndoLocked()
	want := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		want[id] = struct{}{}
	}
	for i := range h.lines {
		if _, ok := want[h.lines[i].ID]; ok {
			h.lines[i].Thickness = thickness
		}
	}
}

// EraseLines removes every line whose id is listed, snapshotting once.
func (h *History) EraseLines(ids []string) {
	if len(ids) == 0 {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	want := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		want[id] = struct{}{}
	}

	found := false
	for _, line := range h.lines {
		if _, ok := want[line.ID]; ok {
			found = true
			break
		}
	}
	if !found {
		return
	}

	h.pushUndoLocked()
	kept := h.lines[:0]
	for _, line := range h.lines {
		if _, ok := want[line.ID]; !ok {
			kept = append(kept, line)
		}
	}
	h.lines = kept
}

// RemoveSegments removes the identified segments, splitting each affected
// line at the removal points. A line with one interior segment removed
// becomes two lines; lines entirely composed of removed segments
// disappear. Sub-lines get fresh ids.
func (h *History) RemoveSegments(segmentIDs map[string]struct{}) {
	if len(segmentIDs) == 0 {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if !h.anySegmentMatchesLocked(segmentIDs) {
		return
	}

	h.pushUndoLocked()
	var next []Line
	for _, line := range h.lines {
		next = append(next, splitLine(line, segmentIDs)...)
	}
	h.lines = next
}

// Undo restores the most recent snapshot. No-op on an empty undo stack.
func (h *History) Undo() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.undoStack) == 0 {
		return
	}

	previous := h.undoStack[len(h.undoStack)-1]
	h.undoStack = h.undoStack[:len(h.undoStack)-1]
	h.redoStack = append([][]Line{h.lines}, h.redoStack...)
	h.lines = previous
}

// Redo re-applies the most recently undone snapshot. No-op on an empty
// redo stack.
func (h *History) Redo() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.redoStack) == 0 {
		return
	}

	next := h.redoStack[0]
	h.redoStack = h.redoStack[1:]
	h.undoStack = append(h.undoStack, h.lines)
	h.lines = next
}

// CanUndo reports whether an undo snapshot exists.
func (h *History) CanUndo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.undoStack) > 0
}

// CanRedo reports whether a redo snapshot exists.
func (h *History) CanRedo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.redoStack) > 0
}

// Clear drops all lines and both stacks.
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.lines = nil
	h.undoStack = nil
	h.redoStack = nil
}

// anySegmentMatchesLocked reports whether any committed segment id is in
// the set. Callers hold the mutex.
func (h *History) anySegmentMatchesLocked(segmentIDs map[string]struct{}) bool {
	for _, line := range h.lines {
		for i := 0; i < len(line.Points)-1; i++ {
			if _, ok := segmentIDs[SegmentID(line.ID, i)]; ok {
				return true
			}
		}
	}
	return false
}

// pushUndoLocked snapshots the current lines and clears redo. Callers hold
// the mutex.
func (h *History) pushUndoLocked() {
	h.undoStack = append(h.undoStack, cloneLines(h.lines))
	h.redoStack = nil
}

// splitLine returns the sub-lines of line that remain after removing the
// identified segments.
func splitLine(line Line, segmentIDs map[string]struct{}) []Line {
	if len(line.Points) < 2 {
		return []Line{line}
	}

	removed := make(map[int]struct{})
	for i := 0; i < len(line.Points)-1; i++ {
		if _, ok := segmentIDs[SegmentID(line.ID, i)]; ok {
			removed[i] = struct{}{}
		}
	}
	if len(removed) == 0 {
		return []Line{line}
	}

	var out []Line
	runStart := -1
	for i := 0; i < len(line.Points)-1; i++ {
		if _, gone := removed[i]; gone {
			if runStart >= 0 {
				out = append(out, subLine(line, runStart, i))
				runStart = -1
			}
			continue
		}
		if runStart < 0 {
			runStart = i
		}
	}
	if runStart >= 0 {
		out = append(out, subLine(line, runStart, len(line.Points)-1))
	}
	return out
}

// subLine builds a fresh line over point indices [start, end] inclusive.
func subLine(line Line, start, end int) Line {
	points := append([]grid.Point(nil), line.Points[start:end+1]...)
	return NewLine(points, line.Thickness, line.Color)
}

func cloneLines(lines []Line) []Line {
	if lines == nil {
		return nil
	}
	out := make([]Line, len(lines))
	for i, line := range lines {
		out[i] = line.clone()
	}
	return out
}
