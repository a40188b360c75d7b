// Package timeline persists a log of handled gateway tasks.
package timeline

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Task statuses.
const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

const schema = `
CREATE TABLE IF NOT EXISTS tasks (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	task_id TEXT UNIQUE NOT NULL,
	trace_id TEXT,
	channel TEXT NOT NULL,
	sender_id TEXT NOT NULL,
	role TEXT,
	status TEXT NOT NULL DEFAULT 'pending',
	content_in TEXT,
	content_out TEXT,
	error_text TEXT,
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_tasks_status ON tasks(status);
CREATE INDEX IF NOT EXISTS idx_tasks_trace ON tasks(trace_id);
`

// Task is one handled inbound message.
type Task struct {
	TaskID     string
	TraceID    string
	Channel    string
	SenderID   string
	Role       string
	Status     string
	ContentIn  string
	ContentOut string
	ErrorText  string
	CreatedAt  time.Time
}

// Service is the SQLite-backed task log.
type Service struct {
	db *sql.DB
}

// New opens (or creates) the task log at dbPath.
func New(dbPath string) (*Service, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create timeline dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", "file:"+dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open timeline db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply timeline schema: %w", err)
	}
	return &Service{db: db}, nil
}

// CreateTask inserts a pending task and returns its generated ID.
func (s *Service) CreateTask(t *Task) (string, error) {
	if t.TaskID == "" {
		t.TaskID = uuid.NewString()
	}
	if t.Status == "" {
		t.Status = StatusPending
	}
	_, err := s.db.Exec(`
		INSERT INTO tasks (task_id, trace_id, channel, sender_id, role, status, content_in)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		t.TaskID, t.TraceID, t.Channel, t.SenderID, t.Role, t.Status, t.ContentIn)
	if err != nil {
		return "", fmt.Errorf("insert task: %w", err)
	}
	return t.TaskID, nil
}

// UpdateStatus moves a task to a terminal status with its output or error.
func (s *Service) UpdateStatus(taskID, status, contentOut, errorText string) error {
	_, err := s.db.Exec(`
		UPDATE tasks SET status = ?, content_out = ?, error_text = ?, updated_at = CURRENT_TIMESTAMP
		WHERE task_id = ?`,
		status, contentOut, errorText, taskID)
	if err != nil {
		return fmt.Errorf("update task %s: %w", taskID, err)
	}
	return nil
}

// Get returns a task by ID.
func (s *Service) Get(taskID string) (*Task, error) {
	row := s.db.QueryRow(`
		SELECT task_id, trace_id, channel, sender_id, role, status, content_in, content_out, error_text, created_at
		FROM tasks WHERE task_id = ?`, taskID)
	return scanTask(row)
}

// Recent returns the most recently created tasks, newest first.
func (s *Service) Recent(limit int) ([]Task, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(`
		SELECT task_id, trace_id, channel, sender_id, role, status, content_in, content_out, error_text, created_at
		FROM tasks ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query recent tasks: %w", err)
	}
	defer rows.Close()

	var out []Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *t)
	}
	return out, rows.Err()
}

// Close closes the underlying database.
func (s *Service) Close() error {
	return s.db.Close()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*Task, error) {
	var t Task
	var traceID, role, contentIn, contentOut, errorText sql.NullString
	if err := row.Scan(&t.TaskID, &traceID, &t.Channel, &t.SenderID, &role, &t.Status,
		&contentIn, &contentOut, &errorText, &t.CreatedAt); err != nil {
		return nil, fmt.Errorf("scan task: %w", err)
	}
	t.TraceID = traceID.String
	t.Role = role.String
	t.ContentIn = contentIn.String
	t.ContentOut = contentOut.String
	t.ErrorText = errorText.String
	return &t, nil
}
