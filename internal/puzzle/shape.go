// internal/puzzle/shape.go
package puzzle

import (
	"fmt"

	"doodleday/internal/grid"
)

// SegmentSpec is one solution segment as stored in a shape record.
type SegmentSpec struct {
	Start grid.Point `json:"start"`
	End   grid.Point `json:"end"`
}

// Shape is the hidden reference figure for one calendar day. It is
// externally supplied and read-only for the validator.
type Shape struct {
	ID               string        `json:"id"`
	Name             string        `json:"name"`
	DifficultyLevel  int           `json:"difficulty_level"`
	MinLinesRequired int           `json:"min_lines_required"`
	TotalLinesLimit  int           `json:"total_lines_limit"`
	ActiveDate       string        `json:"active_date"`
	Lines            []SegmentSpec `json:"lines"`
}

// Validate checks the structural invariants of a shape record.
func (s *Shape) Validate() error {
	if s.MinLinesRequired < 1 {
		return fmt.Errorf("shape %q: min_lines_required must be >= 1, got %d", s.ID, s.MinLinesRequired)
	}
	if s.TotalLinesLimit < s.MinLinesRequired {
		return fmt.Errorf("shape %q: total_lines_limit %d below min_lines_required %d",
			s.ID, s.TotalLinesLimit, s.MinLinesRequired)
	}
	for _, line := range s.Lines {
		if line.Start == line.End {
			return fmt.Errorf("shape %q: degenerate segment at (%d,%d)", s.ID, line.Start.X, line.Start.Y)
		}
	}
	return nil
}

// SolutionKeys derives the canonical segment-key set of the solution.
func (s *Shape) SolutionKeys() map[string]struct{} {
	keys := make(map[string]struct{}, len(s.Lines))
	for _, line := range s.Lines {
		keys[grid.SegmentKey(line.Start, line.End)] = struct{}{}
	}
	return keys
}
