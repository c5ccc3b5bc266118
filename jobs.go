package scribe

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// JobStatus is the lifecycle state of a transcription job.
type JobStatus string

const (
	JobProcessing JobStatus = "processing"
	JobCompleted  JobStatus = "completed"
	JobFailed     JobStatus = "failed"
)

// ErrJobSettled is returned when completing or failing a job that has already
// left the processing state.
var ErrJobSettled = errors.New("job already settled")

// Job is one transcription request and its eventual result.
type Job struct {
	ID        string            `json:"processingId"`
	Status    JobStatus         `json:"status"`
	Filename  string            `json:"filename"`
	Audio     []byte            `json:"-"`
	Options   TranscribeOptions `json:"-"`
	Result    *Transcription    `json:"result,omitempty"`
	Error     string            `json:"error,omitempty"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

// DefaultVisibility is how long a claimed job stays invisible to other
// claimers before it can be claimed again.
const DefaultVisibility = 2 * time.Minute

// JobStore persists transcription jobs in SQLite, so a restart never loses a
// processing ID a client is still polling. The status column moves
// monotonically processing → completed (or failed) exactly once: both
// transitions are guarded UPDATEs that refuse to touch a settled row.
//
// Claims carry a visibility window rather than a permanent flag: a claim that
// is never settled (worker crash, shutdown mid-transcription) expires after
// the window and the job becomes claimable again.
type JobStore struct {
	db         *sql.DB
	visibility time.Duration
}

// JobStoreOption configures a JobStore.
type JobStoreOption func(*JobStore)

// WithVisibility overrides the claim visibility window.
func WithVisibility(d time.Duration) JobStoreOption {
	return func(s *JobStore) { s.visibility = d }
}

// OpenJobStore opens (creating directories as needed) the job database and
// ensures the schema exists.
func OpenJobStore(ctx context.Context, path string, opts ...JobStoreOption) (*JobStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("job store dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open job db: %w", err)
	}
	s := NewJobStore(db, opts...)
	if err := s.EnsureTable(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// NewJobStore wraps an already-open database. Call EnsureTable once.
func NewJobStore(db *sql.DB, opts ...JobStoreOption) *JobStore {
	s := &JobStore{db: db, visibility: DefaultVisibility}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// EnsureTable creates the jobs table and index if they don't exist.
func (s *JobStore) EnsureTable(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS transcription_jobs (
			id         TEXT PRIMARY KEY,
			status     TEXT NOT NULL DEFAULT 'processing',
			filename   TEXT NOT NULL DEFAULT '',
			audio      BLOB,
			options    TEXT NOT NULL DEFAULT '{}',
			result     TEXT,
			error      TEXT NOT NULL DEFAULT '',
			claimed_at INTEGER NOT NULL DEFAULT 0,
			created_at INTEGER NOT NULL,
			updated_at INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_jobs_pending ON transcription_jobs (status, claimed_at, created_at);
	`)
	return err
}

// Close closes the underlying database.
func (s *JobStore) Close() error { return s.db.Close() }

// Create inserts a new processing job and returns its ID.
func (s *JobStore) Create(ctx context.Context, filename string, audio []byte, opts TranscribeOptions) (string, error) {
	id := uuid.NewString()
	optJSON, err := json.Marshal(opts)
	if err != nil {
		return "", fmt.Errorf("marshal options: %w", err)
	}
	now := time.Now().UnixMilli()
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO transcription_jobs (id, status, filename, audio, options, created_at, updated_at)
		 VALUES (?,?,?,?,?,?,?)`,
		id, JobProcessing, filename, audio, string(optJSON), now, now,
	)
	if err != nil {
		return "", fmt.Errorf("create job: %w", err)
	}
	return id, nil
}

// Get returns a job without its audio payload. Unknown IDs yield ErrNotFound.
func (s *JobStore) Get(ctx context.Context, id string) (*Job, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, status, filename, result, error, created_at, updated_at
		 FROM transcription_jobs WHERE id = ?`, id)

	var j Job
	var result sql.NullString
	var createdAt, updatedAt int64
	err := row.Scan(&j.ID, &j.Status, &j.Filename, &result, &j.Error, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get job: %w", err)
	}
	if result.Valid && result.String != "" {
		var tr Transcription
		if err := json.Unmarshal([]byte(result.String), &tr); err != nil {
			return nil, fmt.Errorf("decode job result: %w", err)
		}
		j.Result = &tr
	}
	j.CreatedAt = time.UnixMilli(createdAt)
	j.UpdatedAt = time.UnixMilli(updatedAt)
	return &j, nil
}

// Claim atomically picks the oldest claimable processing job, including its
// audio payload and options, and stamps its claim time. A job is claimable
// when it was never claimed or when its previous claim is older than the
// visibility window. Returns nil, nil when no job is waiting.
func (s *JobStore) Claim(ctx context.Context) (*Job, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	now := time.Now()
	cutoff := now.Add(-s.visibility).UnixMilli()
	row := tx.QueryRowContext(ctx,
		`SELECT id, filename, audio, options, claimed_at, created_at
		 FROM transcription_jobs
		 WHERE status = ? AND claimed_at <= ?
		 ORDER BY created_at LIMIT 1`, JobProcessing, cutoff)

	var j Job
	var optJSON string
	var claimedAt, createdAt int64
	err = row.Scan(&j.ID, &j.Filename, &j.Audio, &optJSON, &claimedAt, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("claim job: %w", err)
	}
	if err := json.Unmarshal([]byte(optJSON), &j.Options); err != nil {
		return nil, fmt.Errorf("decode job options: %w", err)
	}

	res, err := tx.ExecContext(ctx,
		`UPDATE transcription_jobs SET claimed_at = ?, updated_at = ? WHERE id = ? AND claimed_at = ?`,
		now.UnixMilli(), now.UnixMilli(), j.ID, claimedAt)
	if err != nil {
		return nil, fmt.Errorf("claim job: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, nil // raced with another claimer
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}

	j.Status = JobProcessing
	j.CreatedAt = time.UnixMilli(createdAt)
	return &j, nil
}

// Complete settles a processing job with its transcription. When dropAudio is
// set the stored payload is cleared in the same statement.
func (s *JobStore) Complete(ctx context.Context, id string, tr *Transcription, dropAudio bool) error {
	resJSON, err := json.Marshal(tr)
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	query := `UPDATE transcription_jobs SET status = ?, result = ?, updated_at = ? WHERE id = ? AND status = ?`
	if dropAudio {
		query = `UPDATE transcription_jobs SET status = ?, result = ?, updated_at = ?, audio = NULL WHERE id = ? AND status = ?`
	}
	res, err := s.db.ExecContext(ctx, query,
		JobCompleted, string(resJSON), time.Now().UnixMilli(), id, JobProcessing)
	if err != nil {
		return fmt.Errorf("complete job: %w", err)
	}
	return settledGuard(res, id)
}

// Fail settles a processing job with an error message.
func (s *JobStore) Fail(ctx context.Context, id, msg string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE transcription_jobs SET status = ?, error = ?, updated_at = ? WHERE id = ? AND status = ?`,
		JobFailed, msg, time.Now().UnixMilli(), id, JobProcessing)
	if err != nil {
		return fmt.Errorf("fail job: %w", err)
	}
	return settledGuard(res, id)
}

func settledGuard(res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("job %s: %w", id, ErrJobSettled)
	}
	return nil
}
