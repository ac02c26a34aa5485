// internal/eventhub/hub.go
package eventhub

import (
	"context"
)

// Broadcaster pushes events out to connected frontends (Wails runtime in
// desktop mode, WebSocket clients in server mode).
type Broadcaster interface {
	BroadcastEvent(eventType string, payload interface{})
}

// EventHub is the single dispatch point for backend-to-frontend events.
type EventHub struct {
	ctx         context.Context
	broadcaster Broadcaster
}

// New creates an EventHub.
func New(ctx context.Context) *EventHub {
	return &EventHub{ctx: ctx}
}

// SetBroadcaster installs the outbound transport.
func (h *EventHub) SetBroadcaster(b Broadcaster) {
	h.broadcaster = b
}

func (h *EventHub) emit(eventName string, payload interface{}) {
	if h.broadcaster != nil {
		h.broadcaster.BroadcastEvent(eventName, payload)
	}
}

// Emit sends an arbitrary event.
func (h *EventHub) Emit(eventName string, payload interface{}) {
	h.emit(eventName, payload)
}

// ShapeChangedEvent fires when the shape catalog changes (daily rollover
// or a shape-pack file edit).
type ShapeChangedEvent struct {
	Date    string `json:"date"`
	ShapeID string `json:"shape_id"`
}

func (h *EventHub) EmitShapeChanged(event ShapeChangedEvent) {
	h.emit("shape:changed", event)
}

// AttemptEvent fires after every puzzle attempt submission.
type AttemptEvent struct {
	Date           string   `json:"date"`
	Outcome        string   `json:"outcome"`
	AttemptsUsed   int      `json:"attempts_used"`
	TotalLinesUsed int      `json:"total_lines_used"`
	CorrectTotal   int      `json:"correct_total"`
	WrongSegments  []string `json:"wrong_segments,omitempty"`
}

func (h *EventHub) EmitAttemptSubmitted(event AttemptEvent) {
	h.emit("game:attempt", event)
}

// ResultEvent fires once per day when the puzzle reaches a terminal
// outcome.
type ResultEvent struct {
	Date      string `json:"date"`
	Success   bool   `json:"success"`
	Attempts  int    `json:"attempts"`
	LinesUsed int    `json:"lines_used"`
}

func (h *EventHub) EmitPuzzleWon(event ResultEvent) {
	h.emit("game:won", event)
}

func (h *EventHub) EmitPuzzleLost(event ResultEvent) {
	h.emit("game:lost", event)
}

// SubmissionEvent fires when a user-contributed doodle is stored.
type SubmissionEvent struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	LineCount int    `json:"line_count"`
}

func (h *EventHub) EmitSubmissionStored(event SubmissionEvent) {
	h.emit("submission:stored", event)
}
