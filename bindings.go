// bindings.go
package main

import (
	"encoding/base64"
	"errors"
	"fmt"

	"doodleday/internal/database"
	"doodleday/internal/eventhub"
	"doodleday/internal/grid"
	"doodleday/internal/session"
	"doodleday/internal/sketch"
)

// ===== Viewport Bindings =====

// GridGeometry describes the current grid placement for the renderer.
type GridGeometry struct {
	Dimensions int     `json:"dimensions"`
	CellSize   float64 `json:"cell_size"`
	OriginX    float64 `json:"origin_x"`
	OriginY    float64 `json:"origin_y"`
}

// ResizeViewport recomputes both grid layouts for a new viewport size and
// returns the puzzle grid geometry.
func (a *App) ResizeViewport(width, height float64) GridGeometry {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.freeLayout.Resize(width, height)
	a.gameLayout.Resize(width, height)

	originX, originY := a.gameLayout.Origin()
	return GridGeometry{
		Dimensions: a.gameLayout.Dimensions(),
		CellSize:   a.gameLayout.CellSize(),
		OriginX:    originX,
		OriginY:    originY,
	}
}

// ===== Daily Puzzle Bindings =====

// GameInfo is what the frontend needs to run the daily puzzle. The
// solution itself never crosses the boundary.
type GameInfo struct {
	Date             string          `json:"date"`
	ShapeName        string          `json:"shape_name"`
	DifficultyLevel  int             `json:"difficulty_level"`
	MinLinesRequired int             `json:"min_lines_required"`
	TotalLinesLimit  int             `json:"total_lines_limit"`
	MaxAttempts      int             `json:"max_attempts"`
	AttemptsUsed     int             `json:"attempts_used"`
	TotalLinesUsed   int             `json:"total_lines_used"`
	Outcome          session.Outcome `json:"outcome"`
	DisabledKeys     []string        `json:"disabled_keys"`
}

// StartDailyPuzzle loads today's shape and session state. A missing shape
// for today is a blocking error the frontend must surface; drawing against
// an undefined solution is never allowed.
func (a *App) StartDailyPuzzle() (*GameInfo, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	date := a.tracker.Today()
	shape, err := a.db.GetShapeForDate(date)
	if err != nil {
		if errors.Is(err, database.ErrNoShapeForDate) {
			return nil, fmt.Errorf("no shape available for today (%s)", date)
		}
		return nil, fmt.Errorf("load today's shape: %w", err)
	}
	if shape.TotalLinesLimit == 0 {
		shape.TotalLinesLimit = a.config.Game.DefaultTotalLinesLimit
	}

	if err := a.tracker.Load(); err != nil {
		return nil, err
	}

	a.shape = shape
	a.gameHistory.Clear()

	return a.gameInfoLocked(), nil
}

func (a *App) gameInfoLocked() *GameInfo {
	state := a.tracker.State()
	disabled := make([]string, 0, len(state.DisabledSegmentKeys))
	for key := range state.DisabledSegmentKeys {
		disabled = append(disabled, key)
	}

	return &GameInfo{
		Date:             state.Date,
		ShapeName:        a.shape.Name,
		DifficultyLevel:  a.shape.DifficultyLevel,
		MinLinesRequired: a.shape.MinLinesRequired,
		TotalLinesLimit:  a.shape.TotalLinesLimit,
		MaxAttempts:      a.config.Game.MaxAttempts,
		AttemptsUsed:     state.AttemptsUsed,
		TotalLinesUsed:   state.TotalLinesUsed,
		Outcome:          state.Outcome,
		DisabledKeys:     disabled,
	}
}

// GamePointerDown starts a puzzle stroke. Returns whether a stroke began.
func (a *App) GamePointerDown(x, y float64) bool {
	a.mu.RLock()
	active := a.shape != nil && !a.tracker.State().Outcome.Terminal()
	a.mu.RUnlock()
	if !active {
		return false
	}

	point, ok := a.gameBuilder.PointerDown(x, y)
	if ok {
		a.workspace.SetLastActive(point)
	}
	return ok
}

// GamePointerMove extends the in-progress puzzle stroke.
func (a *App) GamePointerMove(x, y float64) {
	a.gameBuilder.PointerMove(x, y)
}

// GamePointerUp completes the puzzle stroke. Pointer-leave must be routed
// here as well. Returns the committed line, or nil when the stroke was
// discarded.
func (a *App) GamePointerUp() *sketch.Line {
	line, ok := a.gameBuilder.PointerUp()
	if !ok {
		return nil
	}
	return &line
}

// GameStrokePreview returns the in-progress polyline for rendering.
func (a *App) GameStrokePreview() []grid.Point {
	return a.gameBuilder.CurrentPoints()
}

// GameLines returns the committed puzzle lines.
func (a *App) GameLines() []sketch.Line {
	return a.gameHistory.Lines()
}

// GameEraseLine erases a committed puzzle line. Unknown ids no-op.
func (a *App) GameEraseLine(id string) {
	a.gameHistory.EraseLine(id)
}

// GameUndo undoes the last puzzle canvas mutation.
func (a *App) GameUndo() {
	a.gameHistory.Undo()
}

// GameRedo re-applies the last undone puzzle canvas mutation.
func (a *App) GameRedo() {
	a.gameHistory.Redo()
}

// GameCounters feed the "Attempt X of Y / Lines: X/Y" header.
type GameCounters struct {
	UniqueLineCount  int `json:"unique_line_count"`
	MinLinesRequired int `json:"min_lines_required"`
	AttemptsUsed     int `json:"attempts_used"`
	MaxAttempts      int `json:"max_attempts"`
	TotalLinesLimit  int `json:"total_lines_limit"`
	TotalLinesUsed   int `json:"total_lines_used"`
}

// GetGameCounters returns the live counters for the puzzle header.
func (a *App) GetGameCounters() (*GameCounters, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	if a.shape == nil {
		return nil, errors.New("daily puzzle not started")
	}

	state := a.tracker.State()
	unique := a.gameHistory.UniqueSegmentCount()
	return &GameCounters{
		UniqueLineCount:  unique,
		MinLinesRequired: a.shape.MinLinesRequired,
		AttemptsUsed:     state.AttemptsUsed,
		MaxAttempts:      a.config.Game.MaxAttempts,
		TotalLinesLimit:  a.shape.TotalLinesLimit,
		TotalLinesUsed:   state.TotalLinesUsed + unique,
	}, nil
}

// SubmitAttempt scores the current canvas against today's solution and
// advances the day's session. On a non-terminal result the wrong segments
// are stripped from the canvas (they stay blocked for the rest of the
// day) so the next attempt starts clean.
func (a *App) SubmitAttempt() (*session.Report, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.shape == nil {
		return nil, errors.New("daily puzzle not started")
	}

	report, err := a.tracker.SubmitAttempt(a.gameHistory.Lines(), a.shape)
	if err != nil {
		return nil, err
	}

	// Submissions after the day ended replay the stored outcome; they
	// consumed no attempt, so listeners see no event.
	if report.Replayed {
		return &report, nil
	}

	a.eventHub.EmitAttemptSubmitted(eventhub.AttemptEvent{
		Date:           a.tracker.Today(),
		Outcome:        string(report.Outcome),
		AttemptsUsed:   report.AttemptsUsed,
		TotalLinesUsed: report.TotalLinesUsed,
		CorrectTotal:   report.CorrectTotal,
		WrongSegments:  report.Validation.WrongSegmentIDs,
	})

	switch report.Outcome {
	case session.OutcomeSuccess:
		a.eventHub.EmitPuzzleWon(a.resultEventLocked(report))
	case session.OutcomeFailure:
		a.eventHub.EmitPuzzleLost(a.resultEventLocked(report))
	default:
		if len(report.Validation.WrongSegmentIDs) > 0 {
			wrong := make(map[string]struct{}, len(report.Validation.WrongSegmentIDs))
			for _, id := range report.Validation.WrongSegmentIDs {
				wrong[id] = struct{}{}
			}
			a.gameHistory.RemoveSegments(wrong)
		}
	}

	return &report, nil
}

func (a *App) resultEventLocked(report session.Report) eventhub.ResultEvent {
	return eventhub.ResultEvent{
		Date:      a.tracker.Today(),
		Success:   report.Outcome == session.OutcomeSuccess,
		Attempts:  report.AttemptsUsed,
		LinesUsed: report.TotalLinesUsed,
	}
}

// ===== Free-form Canvas Bindings =====

// SetTool switches the free-form tool ("select", "line", "eraser",
// "hand").
func (a *App) SetTool(tool string) {
	a.workspace.SetTool(sketch.Tool(tool))
}

// SetLineThickness sets the stroke thickness for new lines.
func (a *App) SetLineThickness(thickness float64) {
	a.workspace.SetThickness(thickness)
	a.freeBuilder.SetStyle(thickness, a.workspace.Color())
}

// SetSelectedColor sets the stroke color for new lines.
func (a *App) SetSelectedColor(color string) {
	a.workspace.SetColor(color)
	a.freeBuilder.SetStyle(a.workspace.Thickness(), color)
}

// ToggleTheme flips the canvas theme and returns the new one.
func (a *App) ToggleTheme() string {
	theme := a.workspace.ToggleTheme()
	a.freeBuilder.SetStyle(a.workspace.Thickness(), a.workspace.Color())
	return string(theme)
}

// SetZoomLevel sets the free-form zoom.
func (a *App) SetZoomLevel(level float64) {
	a.workspace.SetZoom(level)
}

// UpdateViewState pans the free-form canvas.
func (a *App) UpdateViewState(offsetX, offsetY float64) {
	a.workspace.UpdateView(sketch.ViewState{OffsetX: offsetX, OffsetY: offsetY})
}

// CenterOnLastActive pans so the last drawing position is centered.
func (a *App) CenterOnLastActive(viewportW, viewportH float64) sketch.ViewState {
	return a.workspace.CenterOnLastActive(a.freeLayout, viewportW, viewportH)
}

// DrawPointerDown starts a free-form stroke.
func (a *App) DrawPointerDown(x, y float64) bool {
	if a.workspace.Tool() != sketch.ToolLine {
		return false
	}
	point, ok := a.freeBuilder.PointerDown(x, y)
	if ok {
		a.workspace.SetLastActive(point)
	}
	return ok
}

// DrawPointerMove extends the in-progress free-form stroke.
func (a *App) DrawPointerMove(x, y float64) {
	a.freeBuilder.PointerMove(x, y)
}

// DrawPointerUp completes the free-form stroke.
func (a *App) DrawPointerUp() *sketch.Line {
	line, ok := a.freeBuilder.PointerUp()
	if !ok {
		return nil
	}
	return &line
}

// GetLines returns the committed free-form lines.
func (a *App) GetLines() []sketch.Line {
	return a.workspace.History.Lines()
}

// EraseLine erases a free-form line by id. Unknown ids no-op.
func (a *App) EraseLine(id string) {
	a.workspace.History.EraseLine(id)
}

// SelectLine selects a free-form line, optionally toggling within a
// multi-selection.
func (a *App) SelectLine(id string, multiSelect bool) {
	a.workspace.SelectLine(id, multiSelect)
}

// DeselectAllLines clears the free-form selection.
func (a *App) DeselectAllLines() {
	a.workspace.DeselectAll()
}

// DeleteSelectedLines erases every selected free-form line.
func (a *App) DeleteSelectedLines() {
	a.workspace.DeleteSelected()
}

// UpdateLinePoints replaces a line's points (drag-move of a selection).
func (a *App) UpdateLinePoints(id string, points []grid.Point) {
	a.workspace.History.UpdateLinePoints(id, points)
}

// UpdateLineThickness sets the thickness of the listed lines.
func (a *App) UpdateLineThickness(ids []string, thickness float64) {
	a.workspace.History.UpdateThickness(ids, thickness)
}

// Undo undoes the last free-form mutation and clears the selection.
func (a *App) Undo() {
	a.workspace.Undo()
}

// Redo re-applies the last undone free-form mutation.
func (a *App) Redo() {
	a.workspace.Redo()
}

// ===== Submission Bindings =====

// SubmitDoodle stores the current free-form canvas as a user-contributed
// doodle. imageBase64 optionally carries the client-rendered PNG preview.
func (a *App) SubmitDoodle(name, author, imageBase64 string) (*database.Submission, error) {
	if a.submissions == nil {
		return nil, errors.New("submissions unavailable")
	}

	var image []byte
	if imageBase64 != "" {
		decoded, err := base64.StdEncoding.DecodeString(imageBase64)
		if err != nil {
			return nil, fmt.Errorf("decode preview image: %w", err)
		}
		image = decoded
	}

	return a.submissions.Submit(name, author, a.workspace.History.Lines(), image)
}

// ListSubmissions returns all stored submissions, newest first.
func (a *App) ListSubmissions() ([]*database.Submission, error) {
	return a.db.ListSubmissions()
}

// GetSubmissionLines loads the line-set snapshot of a submission.
func (a *App) GetSubmissionLines(id string) ([]sketch.Line, error) {
	return a.submissions.Lines(id)
}

// ===== Results Bindings =====

// ListGameResults returns the most recent terminal outcomes.
func (a *App) ListGameResults(limit int) ([]*database.GameResult, error) {
	return a.db.ListGameResults(limit)
}
