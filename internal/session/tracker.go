// internal/session/tracker.go
package session

import (
	"fmt"
	"log"
	"sync"
	"time"

	"doodleday/internal/puzzle"
	"doodleday/internal/sketch"
)

// DefaultMaxAttempts is the per-day attempt budget.
const DefaultMaxAttempts = 5

// Store persists per-day session state. LoadState returns (nil, nil) when
// no record exists for the date.
type Store interface {
	LoadState(date string) (*State, error)
	SaveState(state State) error
}

// Result is the terminal outcome record emitted for external persistence.
type Result struct {
	Date      string `json:"date"`
	Success   bool   `json:"success"`
	Attempts  int    `json:"attempts"`
	LinesUsed int    `json:"lines_used"`
}

// ResultSink receives terminal results. Emission is fire-and-forget; sink
// failures are logged, never propagated.
type ResultSink interface {
	SubmitResult(result Result) error
}

// Report is what one SubmitAttempt call tells the caller.
type Report struct {
	Outcome           Outcome       `json:"outcome"`
	Validation        puzzle.Result `json:"validation"`
	AttemptsUsed      int           `json:"attemptsUsed"`
	TotalLinesUsed    int           `json:"totalLinesUsed"`
	CorrectTotal      int           `json:"correctTotal"`
	NewlyDisabledKeys []string      `json:"newlyDisabledKeys,omitempty"`
	// Replayed marks a submission made after the day already ended: the
	// stored outcome is returned, no attempt was consumed and nothing
	// changed.
	Replayed bool `json:"replayed,omitempty"`
}

// Tracker enforces the attempt and total-line budgets for one calendar
// day. State survives reloads through the Store; a page refresh must not
// grant a new attempt. Once the outcome is terminal the tracker never
// mutates again for that day.
type Tracker struct {
	mu          sync.Mutex
	maxAttempts int
	store       Store
	sink        ResultSink
	now         func() time.Time
	state       State
}

// NewTracker creates a tracker over the given store and sink. A nil sink
// disables result emission. now may be nil for wall-clock time.
func NewTracker(store Store, sink ResultSink, maxAttempts int, now func() time.Time) *Tracker {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	if now == nil {
		now = time.Now
	}
	return &Tracker{
		maxAttempts: maxAttempts,
		store:       store,
		sink:        sink,
		now:         now,
	}
}

// Today returns the local ISO date the tracker keys by.
func (t *Tracker) Today() string {
	return t.now().Format("2006-01-02")
}

// Load reads the persisted state for today, or starts fresh when no record
// exists or the stored record belongs to an earlier date. A persisted
// terminal outcome is re-entered as-is.
func (t *Tracker) Load() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	date := t.Today()
	stored, err := t.store.LoadState(date)
	if err != nil {
		return fmt.Errorf("load session state: %w", err)
	}
	if stored == nil || stored.Date != date {
		t.state = NewState(date)
		return nil
	}
	t.state = stored.clone()
	return nil
}

// State returns a copy of the current state.
func (t *Tracker) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state.clone()
}

// DisabledKeys returns a copy of the cumulative disabled-segment key set.
// Disabled keys are never removed within a day.
func (t *Tracker) DisabledKeys() map[string]struct{} {
	t.mu.Lock()
	defer t.mu.Unlock()

	keys := make(map[string]struct{}, len(t.state.DisabledSegmentKeys))
	for k := range t.state.DisabledSegmentKeys {
		keys[k] = struct{}{}
	}
	return keys
}

// SubmitAttempt scores one attempt against the shape and advances the day
// state machine. Budget exhaustion and the attempt ceiling are defined
// failure outcomes, not errors; only persistence failures return an error.
func (t *Tracker) SubmitAttempt(lines []sketch.Line, shape *puzzle.Shape) (Report, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state.Outcome.Terminal() {
		report := t.reportLocked(puzzle.Result{})
		report.Replayed = true
		return report, nil
	}

	// Budget check first: an attempt that would blow the total-line limit
	// fails immediately, even on attempt one.
	newTotal := t.state.TotalLinesUsed + sketch.UniqueSegmentCount(lines)
	if newTotal > shape.TotalLinesLimit {
		t.state.TotalLinesUsed = newTotal
		return t.finishLocked(OutcomeFailure, puzzle.Result{})
	}

	// Attempt ceiling is checked before incrementing so a sixth submission
	// is rejected without touching the counter.
	if t.state.AttemptsUsed >= t.maxAttempts {
		return t.finishLocked(OutcomeFailure, puzzle.Result{})
	}

	t.state.AttemptsUsed++
	t.state.TotalLinesUsed = newTotal

	validation := puzzle.Validate(lines, shape.SolutionKeys())
	t.state.WrongSegmentIDs = append(t.state.WrongSegmentIDs, validation.WrongSegmentIDs...)

	// Correctness accumulates by canonical segment key, not by segment
	// id: line ids change when the canvas strips wrong segments and
	// splits lines, but the key identifies the same drawn segment across
	// attempts.
	keysByID := puzzle.SegmentKeysByID(lines)
	for _, id := range validation.CorrectSegmentIDs {
		if key, ok := keysByID[id]; ok {
			t.state.CorrectSegmentKeys[key] = struct{}{}
		}
	}

	// Exact win: cumulative correct count matches the requirement and no
	// wrong segment from this attempt is outstanding.
	if len(t.state.CorrectSegmentKeys) == shape.MinLinesRequired && len(t.state.WrongSegmentIDs) == 0 {
		return t.finishLocked(OutcomeSuccess, validation)
	}

	// The last attempt ends the day no matter what it contained.
	if t.state.AttemptsUsed == t.maxAttempts {
		return t.finishLocked(OutcomeFailure, validation)
	}

	// Still in progress: wrong segments become permanently blocked and the
	// per-attempt display lists reset so the next attempt starts clean.
	var newlyDisabled []string
	for _, id := range t.state.WrongSegmentIDs {
		if key, ok := keysByID[id]; ok {
			if _, dup := t.state.DisabledSegmentKeys[key]; !dup {
				t.state.DisabledSegmentKeys[key] = struct{}{}
				newlyDisabled = append(newlyDisabled, key)
			}
		}
	}
	t.state.WrongSegmentIDs = nil

	if err := t.store.SaveState(t.state); err != nil {
		return Report{}, fmt.Errorf("save session state: %w", err)
	}

	report := t.reportLocked(validation)
	report.NewlyDisabledKeys = newlyDisabled
	return report, nil
}

// finishLocked records a terminal outcome, persists it, and emits the
// result. Callers hold the mutex.
func (t *Tracker) finishLocked(outcome Outcome, validation puzzle.Result) (Report, error) {
	t.state.Outcome = outcome

	if err := t.store.SaveState(t.state); err != nil {
		return Report{}, fmt.Errorf("save session state: %w", err)
	}

	if t.sink != nil {
		result := Result{
			Date:      t.state.Date,
			Success:   outcome == OutcomeSuccess,
			Attempts:  t.state.AttemptsUsed,
			LinesUsed: t.state.TotalLinesUsed,
		}
		if err := t.sink.SubmitResult(result); err != nil {
			log.Printf("submit game result: %v", err)
		}
	}

	return t.reportLocked(validation), nil
}

func (t *Tracker) reportLocked(validation puzzle.Result) Report {
	return Report{
		Outcome:        t.state.Outcome,
		Validation:     validation,
		AttemptsUsed:   t.state.AttemptsUsed,
		TotalLinesUsed: t.state.TotalLinesUsed,
		CorrectTotal:   len(t.state.CorrectSegmentKeys),
	}
}
