// internal/database/models.go
package database

import "time"

// GameResult is one persisted terminal puzzle outcome.
type GameResult struct {
	ID        int64     `json:"id"`
	Date      string    `json:"date"`
	Success   bool      `json:"success"`
	Attempts  int       `json:"attempts"`
	LinesUsed int       `json:"lines_used"`
	CreatedAt time.Time `json:"created_at"`
}

// Submission is a user-contributed doodle record. The line-set snapshot
// itself lives in the submission content pool, addressed by SnapshotHash.
type Submission struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Author       string    `json:"author"`
	LineCount    int       `json:"line_count"`
	SnapshotHash string    `json:"snapshot_hash"`
	ImagePath    string    `json:"image_path,omitempty"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}

// Submission review states.
const (
	SubmissionPending  = "pending"
	SubmissionApproved = "approved"
	SubmissionRejected = "rejected"
)
