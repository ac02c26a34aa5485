// app.go
package main

import (
	"context"
	"sync"

	"github.com/wailsapp/wails/v2/pkg/runtime"

	"doodleday/internal/config"
	"doodleday/internal/database"
	"doodleday/internal/eventhub"
	"doodleday/internal/grid"
	"doodleday/internal/puzzle"
	"doodleday/internal/session"
	"doodleday/internal/shapepack"
	"doodleday/internal/sketch"
	"doodleday/internal/stroke"
	"doodleday/internal/submission"
)

// App struct contains the core application state and managers
type App struct {
	ctx    context.Context
	mu     sync.RWMutex
	config *config.Config

	// Core managers
	db          *database.Database
	eventHub    *eventhub.EventHub
	shapePack   *shapepack.Manager
	submissions *submission.Manager

	// Free-form canvas
	freeLayout  *grid.Layout
	workspace   *sketch.Workspace
	freeBuilder *stroke.Builder

	// Daily puzzle
	gameLayout  *grid.Layout
	gameHistory *sketch.History
	gameBuilder *stroke.Builder
	tracker     *session.Tracker
	shape       *puzzle.Shape
}

// NewApp creates a new App application struct
func NewApp() *App {
	return &App{}
}

// startup is called when the app starts (Wails callback)
func (a *App) startup(ctx context.Context) {
	a.startupCommon(ctx)
	a.SetEventHubBroadcaster(&wailsBroadcaster{ctx: ctx})
}

// wailsBroadcaster adapts Wails runtime events to eventhub.Broadcaster
type wailsBroadcaster struct {
	ctx context.Context
}

func (b *wailsBroadcaster) BroadcastEvent(eventType string, payload interface{}) {
	runtime.EventsEmit(b.ctx, eventType, payload)
}

// Startup is the exported version for the standalone server
func (a *App) Startup(ctx context.Context) {
	a.startupCommon(ctx)
}

// startupCommon contains the common startup logic
func (a *App) startupCommon(ctx context.Context) {
	a.ctx = ctx

	cfg, err := config.Load()
	if err != nil {
		runtime.LogError(ctx, "Failed to load config: "+err.Error())
		return
	}
	a.config = cfg

	db, err := database.Open(cfg.DatabasePath)
	if err != nil {
		runtime.LogError(ctx, "Failed to open database: "+err.Error())
		return
	}
	a.db = db

	// EventHub before anything that emits
	a.eventHub = eventhub.New(ctx)

	// Shape pack: sync the local shapes directory and watch it for edits
	a.shapePack = shapepack.NewManager(cfg.ShapesDir, db, a.eventHub)
	if loaded, err := a.shapePack.Sync(); err != nil {
		runtime.LogError(ctx, "Failed to sync shape pack: "+err.Error())
	} else if loaded > 0 {
		runtime.LogInfo(ctx, "Shape pack synced")
	}
	if err := a.shapePack.Watch(); err != nil {
		runtime.LogError(ctx, "Failed to watch shape pack: "+err.Error())
	}

	a.submissions, err = submission.NewManager(cfg.SubmissionsDir, db, a.eventHub)
	if err != nil {
		runtime.LogError(ctx, "Failed to init submissions: "+err.Error())
	}

	// Free-form canvas always snaps to the nearest lattice point; the
	// puzzle grid only resolves within the snap radius of a dot.
	a.freeLayout = grid.NewLayout(cfg.Game.GridDimensions, grid.SnapAlways, 0, cfg.Game.MinCellSize)
	a.workspace = sketch.NewWorkspace()
	a.freeBuilder = stroke.NewBuilder(a.freeLayout, a.workspace.History, nil)

	a.gameLayout = grid.NewLayout(cfg.Game.GridDimensions, grid.SnapWithinRadius, cfg.Game.SnapRadius, cfg.Game.MinCellSize)
	a.gameHistory = sketch.NewHistory()
	a.gameBuilder = stroke.NewBuilder(a.gameLayout, a.gameHistory, a.disabledKeys)
	a.tracker = session.NewTracker(db, db, cfg.Game.MaxAttempts, nil)

	runtime.LogInfo(ctx, "doodleday started successfully")
}

// disabledKeys feeds the puzzle stroke builder the segments blocked by
// earlier wrong attempts.
func (a *App) disabledKeys() map[string]struct{} {
	a.mu.RLock()
	tracker := a.tracker
	a.mu.RUnlock()

	if tracker == nil {
		return nil
	}
	return tracker.DisabledKeys()
}

// shutdown is called when the app is shutting down (Wails callback)
func (a *App) shutdown(ctx context.Context) {
	a.shutdownCommon(ctx)
}

// Shutdown is the exported version for the standalone server
func (a *App) Shutdown(ctx context.Context) {
	a.shutdownCommon(ctx)
}

// shutdownCommon contains the common shutdown logic
func (a *App) shutdownCommon(ctx context.Context) {
	if a.shapePack != nil {
		a.shapePack.Close()
	}
	if a.db != nil {
		a.db.Close()
	}

	runtime.LogInfo(ctx, "doodleday shutdown complete")
}

// SetEventHubBroadcaster installs the broadcaster used in WebSocket mode.
func (a *App) SetEventHubBroadcaster(broadcaster eventhub.Broadcaster) {
	if a.eventHub != nil {
		a.eventHub.SetBroadcaster(broadcaster)
	}
}
