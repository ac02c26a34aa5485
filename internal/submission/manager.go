// internal/submission/manager.go
package submission

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	"github.com/klauspost/compress/zstd"

	"doodleday/internal/database"
	"doodleday/internal/eventhub"
	"doodleday/internal/sketch"
)

// Manager stores user-contributed doodles. The line-set snapshot is
// zstd-compressed into a content-addressable pool (keyed by sha256, so
// identical doodles share one blob); the client-rendered preview image is
// written next to it and the metadata row goes to the database.
type Manager struct {
	baseDir string
	db      *database.Database
	hub     *eventhub.EventHub

	mu      sync.Mutex
	encoder *zstd.Encoder
	decoder *zstd.Decoder
}

// snapshot is the serialized form of a submitted doodle.
type snapshot struct {
	Lines []sketch.Line `json:"lines"`
}

// NewManager creates a submission manager rooted at baseDir.
func NewManager(baseDir string, db *database.Database, hub *eventhub.EventHub) (*Manager, error) {
	encoder, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, fmt.Errorf("create zstd encoder: %w", err)
	}
	decoder, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("create zstd decoder: %w", err)
	}

	for _, dir := range []string{filepath.Join(baseDir, "content_pool"), filepath.Join(baseDir, "images")} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create submissions dir: %w", err)
		}
	}

	return &Manager{
		baseDir: baseDir,
		db:      db,
		hub:     hub,
		encoder: encoder,
		decoder: decoder,
	}, nil
}

// Submit stores a doodle. imagePNG may be nil when the client sends no
// preview. Doodles without any drawable segment are rejected.
func (m *Manager) Submit(name, author string, lines []sketch.Line, imagePNG []byte) (*database.Submission, error) {
	lineCount := sketch.UniqueSegmentCount(lines)
	if lineCount == 0 {
		return nil, fmt.Errorf("submission %q has no segments", name)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	data, err := json.Marshal(snapshot{Lines: lines})
	if err != nil {
		return nil, fmt.Errorf("marshal snapshot: %w", err)
	}

	hash := fmt.Sprintf("%x", sha256.Sum256(data))
	contentFile := filepath.Join(m.baseDir, "content_pool", hash)
	if _, err := os.Stat(contentFile); os.IsNotExist(err) {
		compressed := m.encoder.EncodeAll(data, nil)
		if err := os.WriteFile(contentFile, compressed, 0644); err != nil {
			return nil, fmt.Errorf("write snapshot: %w", err)
		}
	}

	sub := &database.Submission{
		ID:           uuid.New().String(),
		Name:         name,
		Author:       author,
		LineCount:    lineCount,
		SnapshotHash: hash,
	}

	if len(imagePNG) > 0 {
		imagePath := filepath.Join(m.baseDir, "images", sub.ID+".png")
		if err := os.WriteFile(imagePath, imagePNG, 0644); err != nil {
			return nil, fmt.Errorf("write preview image: %w", err)
		}
		sub.ImagePath = imagePath
	}

	if err := m.db.CreateSubmission(sub); err != nil {
		return nil, fmt.Errorf("record submission: %w", err)
	}

	if m.hub != nil {
		m.hub.EmitSubmissionStored(eventhub.SubmissionEvent{
			ID:        sub.ID,
			Name:      sub.Name,
			LineCount: sub.LineCount,
		})
	}
	return sub, nil
}

// Lines loads the line-set snapshot of a stored submission.
func (m *Manager) Lines(id string) ([]sketch.Line, error) {
	sub, err := m.db.GetSubmission(id)
	if err != nil {
		return nil, fmt.Errorf("load submission %s: %w", id, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	contentFile := filepath.Join(m.baseDir, "content_pool", sub.SnapshotHash)
	compressed, err := os.ReadFile(contentFile)
	if err != nil {
		return nil, fmt.Errorf("read snapshot %s: %w", sub.SnapshotHash, err)
	}

	data, err := m.decoder.DecodeAll(compressed, nil)
	if err != nil {
		return nil, fmt.Errorf("decompress snapshot %s: %w", sub.SnapshotHash, err)
	}

	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot %s: %w", sub.SnapshotHash, err)
	}
	return snap.Lines, nil
}

// ImagePath returns the preview image location for a submission, if one
// was stored.
func (m *Manager) ImagePath(id string) (string, error) {
	sub, err := m.db.GetSubmission(id)
	if err != nil {
		return "", err
	}
	return sub.ImagePath, nil
}
