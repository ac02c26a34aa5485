// internal/puzzle/validator.go
package puzzle

import (
	"doodleday/internal/sketch"
)

// Result is the outcome of scoring one set of drawn lines against a
// solution.
type Result struct {
	CorrectSegmentIDs  []string `json:"correctSegmentIds"`
	WrongSegmentIDs    []string `json:"wrongSegmentIds"`
	UniqueSegmentCount int      `json:"uniqueSegmentCount"`
}

// Validate scores drawn lines against a solution key set. Segments are
// walked in line order; the first occurrence of each canonical key is
// classified as correct or wrong, and retraced occurrences are skipped
// entirely so a segment is never scored twice. Pure: no I/O, no memory of
// prior calls. Cross-attempt accumulation belongs to the caller.
func Validate(lines []sketch.Line, solutionKeys map[string]struct{}) Result {
	seen := make(map[string]struct{})
	result := Result{
		CorrectSegmentIDs: []string{},
		WrongSegmentIDs:   []string{},
	}

	for _, line := range lines {
		for _, ref := range line.Segments() {
			if _, dup := seen[ref.Key]; dup {
				continue
			}
			seen[ref.Key] = struct{}{}

			id := ref.ID(line.ID)
			if _, ok := solutionKeys[ref.Key]; ok {
				result.CorrectSegmentIDs = append(result.CorrectSegmentIDs, id)
			} else {
				result.WrongSegmentIDs = append(result.WrongSegmentIDs, id)
			}
		}
	}

	result.UniqueSegmentCount = len(seen)
	return result
}

// SegmentKeysByID maps each segment id in the lines to its canonical key.
// The attempt tracker uses this to turn wrong segment ids into blocked
// keys.
func SegmentKeysByID(lines []sketch.Line) map[string]string {
	keys := make(map[string]string)
	for _, line := range lines {
		for _, ref := range line.Segments() {
			keys[ref.ID(line.ID)] = ref.Key
		}
	}
	return keys
}
