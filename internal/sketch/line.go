// internal/sketch/line.go
package sketch

import (
	"fmt"

	"github.com/google/uuid"

	"doodleday/internal/grid"
)

// Line is a connected polyline drawn in one continuous pointer gesture.
// Thickness and color are presentation attributes and play no role in
// validation. A line with fewer than two points carries no segments.
type Line struct {
	ID        string       `json:"id"`
	Points    []grid.Point `json:"points"`
	Thickness float64      `json:"thickness"`
	Color     string       `json:"color"`
}

// NewLine creates a line with a fresh unique id.
func NewLine(points []grid.Point, thickness float64, color string) Line {
	return Line{
		ID:        uuid.New().String(),
		Points:    points,
		Thickness: thickness,
		Color:     color,
	}
}

// SegmentRef is one segment of a line, tagged with its traversal index.
type SegmentRef struct {
	Index int
	Start grid.Point
	End   grid.Point
	Key   string
}

// ID returns the derived segment id used for partial-line operations.
func (r SegmentRef) ID(lineID string) string {
	return SegmentID(lineID, r.Index)
}

// SegmentID derives the id of the index-th segment of a line.
func SegmentID(lineID string, index int) string {
	return fmt.Sprintf("%s-%d", lineID, index)
}

// Segments decomposes the line into its len(points)-1 segments in
// traversal order.
func (l Line) Segments() []SegmentRef {
	if len(l.Points) < 2 {
		return nil
	}
	refs := make([]SegmentRef, 0, len(l.Points)-1)
	for i := 0; i < len(l.Points)-1; i++ {
		refs = append(refs, SegmentRef{
			Index: i,
			Start: l.Points[i],
			End:   l.Points[i+1],
			Key:   grid.SegmentKey(l.Points[i], l.Points[i+1]),
		})
	}
	return refs
}

// clone deep-copies the line.
func (l Line) clone() Line {
	c := l
	c.Points = append([]grid.Point(nil), l.Points...)
	return c
}

// SegmentKeys collects the canonical keys of every segment across lines.
func SegmentKeys(lines []Line) map[string]struct{} {
	keys := make(map[string]struct{})
	for _, line := range lines {
		for _, ref := range line.Segments() {
			keys[ref.Key] = struct{}{}
		}
	}
	return keys
}

// UniqueSegmentCount deduplicates segments by canonical key across all
// lines. It backs both the live line counter and total-line-budget
// accounting, and is invariant under line reordering and point reversal.
func UniqueSegmentCount(lines []Line) int {
	return len(SegmentKeys(lines))
}
