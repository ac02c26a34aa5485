// internal/shapepack/manager_test.go
package shapepack

import (
	"os"
	"path/filepath"
	"testing"

	"doodleday/internal/database"
)

func setup(t *testing.T) (*Manager, *database.Database, string) {
	t.Helper()

	dir := t.TempDir()
	db, err := database.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	m := NewManager(dir, db, nil)
	t.Cleanup(func() { m.Close() })
	return m, db, dir
}

func writeShapeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write shape file: %v", err)
	}
}

const validShape = `{
	"name": "Square",
	"difficulty_level": 1,
	"min_lines_required": 4,
	"total_lines_limit": 12,
	"active_date": "2026-09-01",
	"lines": [
		{"start": {"x": 0, "y": 0}, "end": {"x": 1, "y": 0}},
		{"start": {"x": 1, "y": 0}, "end": {"x": 1, "y": 1}},
		{"start": {"x": 1, "y": 1}, "end": {"x": 0, "y": 1}},
		{"start": {"x": 0, "y": 1}, "end": {"x": 0, "y": 0}}
	]
}`

func TestSyncLoadsShapes(t *testing.T) {
	m, db, dir := setup(t)

	writeShapeFile(t, dir, "square.json", validShape)
	writeShapeFile(t, dir, "notes.txt", "ignore me")

	loaded, err := m.Sync()
	if err != nil {
		t.Fatalf("Failed to sync: %v", err)
	}
	if loaded != 1 {
		t.Fatalf("Expected 1 shape loaded, got %d", loaded)
	}

	// File name becomes the id when the record carries none.
	shape, err := db.GetShape("square")
	if err != nil {
		t.Fatalf("Failed to get shape: %v", err)
	}
	if shape.Name != "Square" {
		t.Errorf("Expected name Square, got %q", shape.Name)
	}
	if len(shape.Lines) != 4 {
		t.Errorf("Expected 4 solution lines, got %d", len(shape.Lines))
	}
}

func TestSyncSkipsBadFiles(t *testing.T) {
	m, _, dir := setup(t)

	writeShapeFile(t, dir, "good.json", validShape)
	writeShapeFile(t, dir, "broken.json", "{not json")
	writeShapeFile(t, dir, "invalid.json", `{"min_lines_required": 0, "total_lines_limit": 5}`)

	loaded, err := m.Sync()
	if err != nil {
		t.Fatalf("Failed to sync: %v", err)
	}
	if loaded != 1 {
		t.Errorf("Expected 1 shape loaded, got %d", loaded)
	}
}

func TestSyncMissingDirFails(t *testing.T) {
	db, err := database.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	m := NewManager(filepath.Join(t.TempDir(), "does-not-exist"), db, nil)
	if _, err := m.Sync(); err == nil {
		t.Fatal("Expected error for missing shapes dir")
	}
}

func TestWatchLifecycle(t *testing.T) {
	m, _, _ := setup(t)

	if err := m.Watch(); err != nil {
		t.Fatalf("Failed to start watching: %v", err)
	}
	if err := m.Watch(); err == nil {
		t.Fatal("Expected error for double watch")
	}
	if err := m.Close(); err != nil {
		t.Fatalf("Failed to close: %v", err)
	}
	if err := m.Watch(); err == nil {
		t.Fatal("Expected error for watch after close")
	}
}
