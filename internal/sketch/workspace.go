// internal/sketch/workspace.go
package sketch

import (
	"sync"

	"doodleday/internal/grid"
)

// Tool identifies the active canvas tool.
type Tool string

const (
	ToolSelect Tool = "select"
	ToolLine   Tool = "line"
	ToolEraser Tool = "eraser"
	ToolHand   Tool = "hand"
)

// Theme identifies the canvas color scheme.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

const (
	colorWhite = "#FFFFFF"
	colorBlack = "#000000"
)

// ViewState is the pan offset of the free-form canvas.
type ViewState struct {
	OffsetX float64 `json:"offsetX"`
	OffsetY float64 `json:"offsetY"`
}

// Workspace is the free-form canvas state: a drawing history plus tool,
// selection, view and theme state. Puzzle mode uses a bare History; the
// workspace carries the extra surface the free-form mode needs.
type Workspace struct {
	History *History

	mu            sync.Mutex
	tool          Tool
	theme         Theme
	thickness     float64
	selectedColor string
	zoom          float64
	selected      []string
	view          ViewState
	lastActive    *grid.Point
}

// NewWorkspace creates a free-form workspace with the default tool state.
func NewWorkspace() *Workspace {
	return &Workspace{
		History:       NewHistory(),
		tool:          ToolLine,
		theme:         ThemeDark,
		thickness:     2,
		selectedColor: colorWhite,
		zoom:          1,
	}
}

// Tool returns the active tool.
func (w *Workspace) Tool() Tool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.tool
}

// SetTool switches tools. Leaving the select tool clears the selection.
func (w *Workspace) SetTool(tool Tool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if tool != ToolSelect {
		w.selected = nil
	}
	w.tool = tool
}

// Theme returns the active theme.
func (w *Workspace) Theme() Theme {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.theme
}

// ToggleTheme flips the theme and swaps default line colors so existing
// strokes stay visible against the new background.
func (w *Workspace) ToggleTheme() Theme {
	w.mu.Lock()
	if w.theme == ThemeDark {
		w.theme = ThemeLight
		w.selectedColor = colorBlack
	} else {
		w.theme = ThemeDark
		w.selectedColor = colorWhite
	}
	theme := w.theme
	w.mu.Unlock()

	w.History.mu.Lock()
	for i := range w.History.lines {
		switch w.History.lines[i].Color {
		case colorWhite:
			w.History.lines[i].Color = colorBlack
		case colorBlack:
			w.History.lines[i].Color = colorWhite
		}
	}
	w.History.mu.Unlock()

	return theme
}

// Thickness returns the stroke thickness for new lines.
func (w *Workspace) Thickness() float64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.thickness
}

// SetThickness sets the stroke thickness for new lines.
func (w *Workspace) SetThickness(thickness float64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.thickness = thickness
}

// Color returns the stroke color for new lines.
func (w *Workspace) Color() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.selectedColor
}

// SetColor sets the stroke color for new lines.
func (w *Workspace) SetColor(color string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.selectedColor = color
}

// Zoom returns the zoom level.
func (w *Workspace) Zoom() float64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.zoom
}

// SetZoom sets the zoom level.
func (w *Workspace) SetZoom(level float64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.zoom = level
}

// View returns the current pan offset.
func (w *Workspace) View() ViewState {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.view
}

// UpdateView sets the pan offset.
func (w *Workspace) UpdateView(view ViewState) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.view = view
}

// Selected returns a copy of the selected line ids.
func (w *Workspace) Selected() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]string(nil), w.selected...)
}

// SelectLine selects a line. With multiSelect the id toggles in and out of
// the selection; otherwise it becomes the sole selection.
func (w *Workspace) SelectLine(id string, multiSelect bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !multiSelect {
		w.selected = []string{id}
		return
	}
	for i, sel := range w.selected {
		if sel == id {
			w.selected = append(w.selected[:i], w.selected[i+1:]...)
			return
		}
	}
	w.selected = append(w.selected, id)
}

// DeselectAll clears the selection.
func (w *Workspace) DeselectAll() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.selected = nil
}

// DeleteSelected erases every selected line. No-op when nothing is
// selected.
func (w *Workspace) DeleteSelected() {
	w.mu.Lock()
	ids := append([]string(nil), w.selected...)
	w.selected = nil
	w.mu.Unlock()

	w.History.EraseLines(ids)
}

// Undo undoes the last history mutation and clears the selection, since
// the restored snapshot may no longer contain the selected lines.
func (w *Workspace) Undo() {
	w.History.Undo()
	w.DeselectAll()
}

// Redo re-applies the last undone mutation and clears the selection.
func (w *Workspace) Redo() {
	w.History.Redo()
	w.DeselectAll()
}

// LastActive returns the most recent drawing position, if any.
func (w *Workspace) LastActive() (grid.Point, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.lastActive == nil {
		return grid.Point{}, false
	}
	return *w.lastActive, true
}

// SetLastActive records the most recent drawing position.
func (w *Workspace) SetLastActive(p grid.Point) {
	w.mu.Lock()
	defer w.mu.Unlock()
	point := p
	w.lastActive = &point
}

// CenterOnLastActive returns the pan offset that centers the viewport on
// the last active position. The current view is returned unchanged when no
// position has been recorded.
func (w *Workspace) CenterOnLastActive(layout *grid.Layout, viewportW, viewportH float64) ViewState {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.lastActive == nil {
		return w.view
	}
	px, py := layout.ToPixel(*w.lastActive)
	w.view = ViewState{
		OffsetX: -px*w.zoom + viewportW/2,
		OffsetY: -py*w.zoom + viewportH/2,
	}
	return w.view
}
