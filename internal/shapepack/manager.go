// internal/shapepack/manager.go
package shapepack

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"doodleday/internal/database"
	"doodleday/internal/eventhub"
	"doodleday/internal/puzzle"
)

// debounceWindow coalesces bursts of fsnotify events for the same file
// (editors typically fire several writes per save).
const debounceWindow = 200 * time.Millisecond

// Manager keeps the shapes table in sync with a local directory of shape
// JSON files. The directory is the offline/dev shape source; in production
// the table is filled by the hosted backend sync instead.
type Manager struct {
	dir string
	db  *database.Database
	hub *eventhub.EventHub

	watcher *fsnotify.Watcher
	done    chan struct{}

	mu      sync.Mutex
	timers  map[string]*time.Timer
	started bool
	closed  bool
}

// NewManager creates a manager over the given shapes directory.
func NewManager(dir string, db *database.Database, hub *eventhub.EventHub) *Manager {
	return &Manager{
		dir:    dir,
		db:     db,
		hub:    hub,
		done:   make(chan struct{}),
		timers: make(map[string]*time.Timer),
	}
}

// Sync loads every shape file in the directory into the database. Returns
// the number of shapes loaded; individual bad files are logged and
// skipped.
func (m *Manager) Sync() (int, error) {
	entries, err := os.ReadDir(m.dir)
	if err != nil {
		return 0, fmt.Errorf("read shapes dir: %w", err)
	}

	loaded := 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		if err := m.loadFile(filepath.Join(m.dir, entry.Name())); err != nil {
			log.Printf("shapepack: skip %s: %v", entry.Name(), err)
			continue
		}
		loaded++
	}
	return loaded, nil
}

// Watch starts watching the shapes directory and reloads changed files
// with debouncing.
func (m *Manager) Watch() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return fmt.Errorf("shapepack manager is closed")
	}
	if m.started {
		return fmt.Errorf("shapepack manager already watching")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create fsnotify watcher: %w", err)
	}
	if err := watcher.Add(m.dir); err != nil {
		watcher.Close()
		return fmt.Errorf("watch shapes dir %s: %w", m.dir, err)
	}

	m.watcher = watcher
	m.started = true
	go m.watch()
	return nil
}

// Close stops the watcher and cancels pending reloads.
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil
	}
	m.closed = true

	if m.started {
		close(m.done)
	}
	for _, timer := range m.timers {
		timer.Stop()
	}
	m.timers = make(map[string]*time.Timer)

	if m.watcher != nil {
		return m.watcher.Close()
	}
	return nil
}

func (m *Manager) watch() {
	for {
		select {
		case event, ok := <-m.watcher.Events:
			if !ok {
				return
			}
			if !strings.HasSuffix(event.Name, ".json") {
				continue
			}
			if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			m.scheduleReload(event.Name)

		case err, ok := <-m.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("shapepack: watcher error: %v", err)

		case <-m.done:
			return
		}
	}
}

// scheduleReload debounces reloads per file path.
func (m *Manager) scheduleReload(path string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return
	}
	if timer, exists := m.timers[path]; exists {
		timer.Stop()
	}
	m.timers[path] = time.AfterFunc(debounceWindow, func() {
		m.mu.Lock()
		delete(m.timers, path)
		m.mu.Unlock()

		if err := m.loadFile(path); err != nil {
			log.Printf("shapepack: reload %s: %v", path, err)
		}
	})
}

// loadFile parses one shape file and upserts it into the database. The
// file name (without extension) becomes the shape id when the record
// carries none.
func (m *Manager) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	shape := &puzzle.Shape{}
	if err := json.Unmarshal(data, shape); err != nil {
		return fmt.Errorf("parse shape file: %w", err)
	}
	if shape.ID == "" {
		shape.ID = strings.TrimSuffix(filepath.Base(path), ".json")
	}
	if err := shape.Validate(); err != nil {
		return err
	}

	if err := m.db.SaveShape(shape); err != nil {
		return fmt.Errorf("save shape %s: %w", shape.ID, err)
	}

	if m.hub != nil {
		m.hub.EmitShapeChanged(eventhub.ShapeChangedEvent{
			Date:    shape.ActiveDate,
			ShapeID: shape.ID,
		})
	}
	return nil
}
