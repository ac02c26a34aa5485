// internal/database/db.go
package database

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"doodleday/internal/puzzle"
	"doodleday/internal/session"
)

// ErrNoShapeForDate is returned when no shape record exists for a date.
// Puzzle mode cannot proceed without a solution, so callers surface this
// to the user instead of allowing drawing against an undefined shape.
var ErrNoShapeForDate = errors.New("no shape available for this date")

// Database wraps the SQLite database connection
type Database struct {
	db *sql.DB
}

// Open creates or opens a SQLite database at the given path
func Open(path string) (*Database, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, err
	}

	d := &Database{db: db}
	if err := d.init(); err != nil {
		db.Close()
		return nil, err
	}

	return d, nil
}

// init creates the database schema
func (d *Database) init() error {
	schema := `
	CREATE TABLE IF NOT EXISTS shapes (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		difficulty_level INTEGER NOT NULL DEFAULT 1,
		min_lines_required INTEGER NOT NULL,
		total_lines_limit INTEGER NOT NULL,
		active_date TEXT NOT NULL,
		grid_data TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_shapes_active_date ON shapes(active_date);

	CREATE TABLE IF NOT EXISTS game_results (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		date TEXT NOT NULL,
		success INTEGER NOT NULL,
		attempts INTEGER NOT NULL,
		lines_used INTEGER NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS submissions (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		author TEXT,
		line_count INTEGER NOT NULL,
		snapshot_hash TEXT NOT NULL,
		image_path TEXT,
		status TEXT NOT NULL DEFAULT 'pending',
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS session_state (
		date TEXT PRIMARY KEY,
		data TEXT NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	`

	_, err := d.db.Exec(schema)
	return err
}

// Close closes the database connection
func (d *Database) Close() error {
	return d.db.Close()
}

// ===== Shapes =====

// SaveShape saves or updates a shape record. The solution line list is
// stored as a JSON blob in grid_data.
func (d *Database) SaveShape(shape *puzzle.Shape) error {
	if err := shape.Validate(); err != nil {
		return err
	}

	gridData, err := json.Marshal(struct {
		Lines []puzzle.SegmentSpec `json:"lines"`
	}{Lines: shape.Lines})
	if err != nil {
		return fmt.Errorf("marshal grid data: %w", err)
	}

	_, err = d.db.Exec(`
		INSERT OR REPLACE INTO shapes
		(id, name, difficulty_level, min_lines_required, total_lines_limit, active_date, grid_data)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		shape.ID, shape.Name, shape.DifficultyLevel, shape.MinLinesRequired,
		shape.TotalLinesLimit, shape.ActiveDate, string(gridData))
	return err
}

// GetShapeForDate retrieves the shape scheduled for the given ISO date.
// Returns ErrNoShapeForDate when none is scheduled.
func (d *Database) GetShapeForDate(date string) (*puzzle.Shape, error) {
	row := d.db.QueryRow(`
		SELECT id, name, difficulty_level, min_lines_required, total_lines_limit, active_date, grid_data
		FROM shapes WHERE active_date = ?`, date)

	return scanShape(row)
}

// GetShape retrieves a shape by id.
func (d *Database) GetShape(id string) (*puzzle.Shape, error) {
	row := d.db.QueryRow(`
		SELECT id, name, difficulty_level, min_lines_required, total_lines_limit, active_date, grid_data
		FROM shapes WHERE id = ?`, id)

	return scanShape(row)
}

// ListShapes retrieves all shapes ordered by active date.
func (d *Database) ListShapes() ([]*puzzle.Shape, error) {
	rows, err := d.db.Query(`
		SELECT id, name, difficulty_level, min_lines_required, total_lines_limit, active_date, grid_data
		FROM shapes ORDER BY active_date`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var shapes []*puzzle.Shape
	for rows.Next() {
		shape, err := scanShapeRow(rows)
		if err != nil {
			return nil, err
		}
		shapes = append(shapes, shape)
	}
	return shapes, rows.Err()
}

// DeleteShape deletes a shape by id.
func (d *Database) DeleteShape(id string) error {
	_, err := d.db.Exec("DELETE FROM shapes WHERE id = ?", id)
	return err
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanShape(row *sql.Row) (*puzzle.Shape, error) {
	shape, err := scanShapeRow(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoShapeForDate
	}
	return shape, err
}

func scanShapeRow(row rowScanner) (*puzzle.Shape, error) {
	shape := &puzzle.Shape{}
	var gridData string
	err := row.Scan(&shape.ID, &shape.Name, &shape.DifficultyLevel,
		&shape.MinLinesRequired, &shape.TotalLinesLimit, &shape.ActiveDate, &gridData)
	if err != nil {
		return nil, err
	}

	var payload struct {
		Lines []puzzle.SegmentSpec `json:"lines"`
	}
	if err := json.Unmarshal([]byte(gridData), &payload); err != nil {
		return nil, fmt.Errorf("unmarshal grid data for shape %s: %w", shape.ID, err)
	}
	shape.Lines = payload.Lines
	return shape, nil
}

// ===== Game results =====

// SaveGameResult records a terminal puzzle outcome.
func (d *Database) SaveGameResult(result session.Result) error {
	_, err := d.db.Exec(`
		INSERT INTO game_results (date, success, attempts, lines_used)
		VALUES (?, ?, ?, ?)`,
		result.Date, result.Success, result.Attempts, result.LinesUsed)
	return err
}

// ListGameResults retrieves the most recent results, newest first.
func (d *Database) ListGameResults(limit int) ([]*GameResult, error) {
	rows, err := d.db.Query(`
		SELECT id, date, success, attempts, lines_used, created_at
		FROM game_results ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []*GameResult
	for rows.Next() {
		r := &GameResult{}
		if err := rows.Scan(&r.ID, &r.Date, &r.Success, &r.Attempts, &r.LinesUsed, &r.CreatedAt); err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	return results, rows.Err()
}

// ===== Submissions =====

// CreateSubmission records a user-contributed doodle.
func (d *Database) CreateSubmission(sub *Submission) error {
	if sub.Status == "" {
		sub.Status = SubmissionPending
	}
	if sub.CreatedAt.IsZero() {
		sub.CreatedAt = time.Now()
	}

	_, err := d.db.Exec(`
		INSERT INTO submissions (id, name, author, line_count, snapshot_hash, image_path, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		sub.ID, sub.Name, sub.Author, sub.LineCount, sub.SnapshotHash,
		sub.ImagePath, sub.Status, sub.CreatedAt)
	return err
}

// GetSubmission retrieves a submission by id.
func (d *Database) GetSubmission(id string) (*Submission, error) {
	row := d.db.QueryRow(`
		SELECT id, name, author, line_count, snapshot_hash, image_path, status, created_at
		FROM submissions WHERE id = ?`, id)

	sub := &Submission{}
	var imagePath sql.NullString
	err := row.Scan(&sub.ID, &sub.Name, &sub.Author, &sub.LineCount,
		&sub.SnapshotHash, &imagePath, &sub.Status, &sub.CreatedAt)
	if err != nil {
		return nil, err
	}
	sub.ImagePath = imagePath.String
	return sub, nil
}

// ListSubmissions retrieves all submissions, newest first.
func (d *Database) ListSubmissions() ([]*Submission, error) {
	rows, err := d.db.Query(`
		SELECT id, name, author, line_count, snapshot_hash, image_path, status, created_at
		FROM submissions ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subs []*Submission
	for rows.Next() {
		sub := &Submission{}
		var imagePath sql.NullString
		err := rows.Scan(&sub.ID, &sub.Name, &sub.Author, &sub.LineCount,
			&sub.SnapshotHash, &imagePath, &sub.Status, &sub.CreatedAt)
		if err != nil {
			return nil, err
		}
		sub.ImagePath = imagePath.String
		subs = append(subs, sub)
	}
	return subs, rows.Err()
}

// UpdateSubmissionStatus moves a submission through the review flow.
func (d *Database) UpdateSubmissionStatus(id, status string) error {
	_, err := d.db.Exec("UPDATE submissions SET status = ? WHERE id = ?", status, id)
	return err
}

// ===== Session state =====

// LoadState implements session.Store. Returns (nil, nil) when no record
// exists for the date.
func (d *Database) LoadState(date string) (*session.State, error) {
	var data string
	err := d.db.QueryRow("SELECT data FROM session_state WHERE date = ?", date).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	state := &session.State{}
	if err := json.Unmarshal([]byte(data), state); err != nil {
		return nil, fmt.Errorf("unmarshal session state for %s: %w", date, err)
	}
	return state, nil
}

// SaveState implements session.Store.
func (d *Database) SaveState(state session.State) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal session state: %w", err)
	}
	_, err = d.db.Exec(`
		INSERT OR REPLACE INTO session_state (date, data, updated_at)
		VALUES (?, ?, ?)`, state.Date, string(data), time.Now())
	return err
}

// SubmitResult implements session.ResultSink by recording the terminal
// outcome in game_results.
func (d *Database) SubmitResult(result session.Result) error {
	return d.SaveGameResult(result)
}
