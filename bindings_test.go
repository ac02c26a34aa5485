//go:build !server

// +build !server

package main

import (
	"context"
	"encoding/json"
	"testing"

	"doodleday/internal/eventhub"
	"doodleday/internal/grid"
	"doodleday/internal/puzzle"
	"doodleday/internal/session"
	"doodleday/internal/sketch"
)

type recordingBroadcaster struct {
	events []string
}

func (b *recordingBroadcaster) BroadcastEvent(eventType string, payload interface{}) {
	b.events = append(b.events, eventType)
}

func (b *recordingBroadcaster) count(eventType string) int {
	n := 0
	for _, e := range b.events {
		if e == eventType {
			n++
		}
	}
	return n
}

type memoryStateStore struct {
	data map[string][]byte
}

func (s *memoryStateStore) LoadState(date string) (*session.State, error) {
	raw, ok := s.data[date]
	if !ok {
		return nil, nil
	}
	state := &session.State{}
	if err := json.Unmarshal(raw, state); err != nil {
		return nil, err
	}
	return state, nil
}

func (s *memoryStateStore) SaveState(state session.State) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return err
	}
	s.data[state.Date] = raw
	return nil
}

func newPuzzleTestApp(t *testing.T) (*App, *recordingBroadcaster) {
	t.Helper()

	hub := eventhub.New(context.Background())
	broadcaster := &recordingBroadcaster{}
	hub.SetBroadcaster(broadcaster)

	tracker := session.NewTracker(&memoryStateStore{data: make(map[string][]byte)}, nil, 5, nil)
	if err := tracker.Load(); err != nil {
		t.Fatalf("Failed to load tracker: %v", err)
	}

	app := &App{
		eventHub:    hub,
		gameHistory: sketch.NewHistory(),
		tracker:     tracker,
		shape: &puzzle.Shape{
			ID:               "bar",
			Name:             "Bar",
			MinLinesRequired: 2,
			TotalLinesLimit:  30,
			Lines: []puzzle.SegmentSpec{
				{Start: grid.Point{X: 0, Y: 0}, End: grid.Point{X: 1, Y: 0}},
				{Start: grid.Point{X: 1, Y: 0}, End: grid.Point{X: 2, Y: 0}},
			},
		},
	}
	return app, broadcaster
}

func gameLine(coords ...int) sketch.Line {
	pts := make([]grid.Point, 0, len(coords)/2)
	for i := 0; i+1 < len(coords); i += 2 {
		pts = append(pts, grid.Point{X: coords[i], Y: coords[i+1]})
	}
	return sketch.NewLine(pts, 2, "#FFFFFF")
}

func TestSubmitAttemptEventsStopAfterTerminal(t *testing.T) {
	app, broadcaster := newPuzzleTestApp(t)

	// Five wrong-only attempts exhaust the day.
	for i := 0; i < 5; i++ {
		app.gameHistory.Clear()
		app.gameHistory.AddLine(gameLine(i, 2, i+1, 2))
		if _, err := app.SubmitAttempt(); err != nil {
			t.Fatalf("Failed to submit attempt %d: %v", i+1, err)
		}
	}

	if got := broadcaster.count("game:attempt"); got != 5 {
		t.Errorf("Expected 5 attempt events, got %d", got)
	}
	if got := broadcaster.count("game:lost"); got != 1 {
		t.Errorf("Expected 1 lost event, got %d", got)
	}

	// A submission after the day ended replays the stored outcome and
	// emits nothing.
	report, err := app.SubmitAttempt()
	if err != nil {
		t.Fatalf("Failed to resubmit: %v", err)
	}
	if report.Outcome != session.OutcomeFailure {
		t.Errorf("Expected stored failure outcome, got %s", report.Outcome)
	}
	if !report.Replayed {
		t.Error("Expected a replayed report")
	}
	if got := broadcaster.count("game:attempt"); got != 5 {
		t.Errorf("Expected attempt events unchanged at 5, got %d", got)
	}
	if got := broadcaster.count("game:lost"); got != 1 {
		t.Errorf("Expected lost events unchanged at 1, got %d", got)
	}
}

func TestSubmitAttemptStripsWrongSegments(t *testing.T) {
	app, broadcaster := newPuzzleTestApp(t)

	// One stroke holding a correct and a wrong segment.
	app.gameHistory.AddLine(gameLine(0, 0, 1, 0, 1, 1))

	report, err := app.SubmitAttempt()
	if err != nil {
		t.Fatalf("Failed to submit: %v", err)
	}
	if report.Outcome != session.OutcomePending {
		t.Fatalf("Expected pending outcome, got %s", report.Outcome)
	}

	// The wrong segment is gone from the canvas; the correct one stays.
	keys := app.gameHistory.SegmentKeys()
	if _, ok := keys["1,0-1,1"]; ok {
		t.Error("Wrong segment still on the canvas")
	}
	if _, ok := keys["0,0-1,0"]; !ok {
		t.Error("Correct segment missing from the canvas")
	}

	// Completing the solution on the cleaned canvas wins.
	app.gameHistory.AddLine(gameLine(1, 0, 2, 0))
	report, err = app.SubmitAttempt()
	if err != nil {
		t.Fatalf("Failed to submit: %v", err)
	}
	if report.Outcome != session.OutcomeSuccess {
		t.Errorf("Expected success, got %s", report.Outcome)
	}
	if got := broadcaster.count("game:won"); got != 1 {
		t.Errorf("Expected 1 won event, got %d", got)
	}
}
