// internal/session/state.go
package session

import (
	"encoding/json"
	"sort"
)

// Outcome is the terminal status of a day's puzzle.
type Outcome string

const (
	OutcomePending Outcome = "pending"
	OutcomeSuccess Outcome = "success"
	OutcomeFailure Outcome = "failure"
)

// Terminal reports whether the outcome allows no further mutation.
func (o Outcome) Terminal() bool {
	return o == OutcomeSuccess || o == OutcomeFailure
}

// State is the per-day puzzle session record. Sets are serialized as
// sorted arrays; JSON has no set type, so the round trip is handled
// explicitly here rather than left to callers.
type State struct {
	Date                string
	AttemptsUsed        int
	TotalLinesUsed      int
	DisabledSegmentKeys map[string]struct{}
	CorrectSegmentKeys  map[string]struct{}
	WrongSegmentIDs     []string
	Outcome             Outcome
}

// NewState creates a fresh pending state for the given date.
func NewState(date string) State {
	return State{
		Date:                date,
		DisabledSegmentKeys: make(map[string]struct{}),
		CorrectSegmentKeys:  make(map[string]struct{}),
		Outcome:             OutcomePending,
	}
}

type persistedState struct {
	Date                string   `json:"date"`
	AttemptsUsed        int      `json:"attempts_used"`
	TotalLinesUsed      int      `json:"total_lines_used"`
	DisabledSegmentKeys []string `json:"disabled_segment_keys"`
	CorrectSegmentKeys  []string `json:"correct_segment_keys"`
	WrongSegmentIDs     []string `json:"wrong_segment_ids"`
	Outcome             Outcome  `json:"outcome"`
}

// MarshalJSON serializes sets as sorted arrays.
func (s State) MarshalJSON() ([]byte, error) {
	return json.Marshal(persistedState{
		Date:                s.Date,
		AttemptsUsed:        s.AttemptsUsed,
		TotalLinesUsed:      s.TotalLinesUsed,
		DisabledSegmentKeys: sortedKeys(s.DisabledSegmentKeys),
		CorrectSegmentKeys:  sortedKeys(s.CorrectSegmentKeys),
		WrongSegmentIDs:     append([]string{}, s.WrongSegmentIDs...),
		Outcome:             s.Outcome,
	})
}

// UnmarshalJSON restores sets from their array form.
func (s *State) UnmarshalJSON(data []byte) error {
	var p persistedState
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}

	*s = NewState(p.Date)
	s.AttemptsUsed = p.AttemptsUsed
	s.TotalLinesUsed = p.TotalLinesUsed
	s.WrongSegmentIDs = p.WrongSegmentIDs
	if p.Outcome != "" {
		s.Outcome = p.Outcome
	}
	for _, key := range p.DisabledSegmentKeys {
		s.DisabledSegmentKeys[key] = struct{}{}
	}
	for _, key := range p.CorrectSegmentKeys {
		s.CorrectSegmentKeys[key] = struct{}{}
	}
	return nil
}

// clone deep-copies the state.
func (s State) clone() State {
	c := NewState(s.Date)
	c.AttemptsUsed = s.AttemptsUsed
	c.TotalLinesUsed = s.TotalLinesUsed
	c.Outcome = s.Outcome
	c.WrongSegmentIDs = append([]string(nil), s.WrongSegmentIDs...)
	for k := range s.DisabledSegmentKeys {
		c.DisabledSegmentKeys[k] = struct{}{}
	}
	for k := range s.CorrectSegmentKeys {
		c.CorrectSegmentKeys[k] = struct{}{}
	}
	return c
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
