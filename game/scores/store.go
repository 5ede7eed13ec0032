package scores

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// DefaultListLimit caps List when the filter has no limit
const DefaultListLimit = 50

var ErrInvalidRecord = errors.New("invalid score record")

// Record is one completed hole
type Record struct {
	ID          string    `json:"id"`
	CourseID    string    `json:"course_id"`
	CourseName  string    `json:"course_name"`
	SessionID   string    `json:"session_id,omitempty"`
	Score       int       `json:"score"`
	Par         int       `json:"par"`
	CompletedAt time.Time `json:"completed_at"`
}

// ToPar returns the score relative to par
func (r Record) ToPar() int {
	return r.Score - r.Par
}

// Filter narrows List results
type Filter struct {
	CourseID string `json:"course_id,omitempty"`
	Limit    int    `json:"limit,omitempty"`
}

// Summary aggregates the records of one course
type Summary struct {
	CourseID     string  `json:"course_id"`
	CourseName   string  `json:"course_name"`
	Par          int     `json:"par"`
	Rounds       int     `json:"rounds"`
	BestScore    int     `json:"best_score"`
	AverageScore float64 `json:"average_score"`
}

// Store persists score records in SQLite
type Store struct {
	sqlDB *sql.DB
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens a SQLite score store and applies the schema
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlDB.Exec(schemaSQL); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Append inserts one record. An empty ID gets a new uuid and a zero
// completion time is set to now.
func (s *Store) Append(ctx context.Context, record Record) (Record, error) {
	if err := ctx.Err(); err != nil {
		return Record{}, err
	}
	if s == nil || s.sqlDB == nil {
		return Record{}, fmt.Errorf("storage is not configured")
	}

	record.CourseID = strings.TrimSpace(record.CourseID)
	if record.CourseID == "" {
		return Record{}, fmt.Errorf("%w: course id is required", ErrInvalidRecord)
	}
	if record.Score < 1 {
		return Record{}, fmt.Errorf("%w: score must be positive, got %d", ErrInvalidRecord, record.Score)
	}
	if record.Par < 1 {
		return Record{}, fmt.Errorf("%w: par must be positive, got %d", ErrInvalidRecord, record.Par)
	}
	if record.CourseName == "" {
		record.CourseName = record.CourseID
	}
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	if record.CompletedAt.IsZero() {
		record.CompletedAt = time.Now()
	}
	record.CompletedAt = fromMillis(toMillis(record.CompletedAt))

	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO scores (
		   id,
		   course_id,
		   course_name,
		   session_id,
		   score,
		   par,
		   completed_at
		 ) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		record.ID,
		record.CourseID,
		record.CourseName,
		record.SessionID,
		record.Score,
		record.Par,
		toMillis(record.CompletedAt),
	)
	if err != nil {
		return Record{}, fmt.Errorf("append score: %w", err)
	}
	return record, nil
}

// List returns records newest first
func (s *Store) List(ctx context.Context, filter Filter) ([]Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = DefaultListLimit
	}

	query := `SELECT id, course_id, course_name, session_id, score, par, completed_at FROM scores`
	args := []any{}
	if courseID := strings.TrimSpace(filter.CourseID); courseID != "" {
		query += ` WHERE course_id = ?`
		args = append(args, courseID)
	}
	query += ` ORDER BY completed_at DESC, rowid DESC LIMIT ?`
	args = append(args, limit)

	rows, err := s.sqlDB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list scores: %w", err)
	}
	defer rows.Close()

	records := []Record{}
	for rows.Next() {
		var (
			record      Record
			completedAt int64
		)
		if err := rows.Scan(&record.ID, &record.CourseID, &record.CourseName, &record.SessionID, &record.Score, &record.Par, &completedAt); err != nil {
			return nil, fmt.Errorf("scan score: %w", err)
		}
		record.CompletedAt = fromMillis(completedAt)
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate scores: %w", err)
	}
	return records, nil
}

// Summaries aggregates records per course, ordered by course id
func (s *Store) Summaries(ctx context.Context) ([]Summary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}

	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT course_id, MAX(course_name), MAX(par), COUNT(*), MIN(score), AVG(score)
		 FROM scores
		 GROUP BY course_id
		 ORDER BY course_id`)
	if err != nil {
		return nil, fmt.Errorf("summarize scores: %w", err)
	}
	defer rows.Close()

	summaries := []Summary{}
	for rows.Next() {
		var summary Summary
		if err := rows.Scan(&summary.CourseID, &summary.CourseName, &summary.Par, &summary.Rounds, &summary.BestScore, &summary.AverageScore); err != nil {
			return nil, fmt.Errorf("scan summary: %w", err)
		}
		summaries = append(summaries, summary)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate summaries: %w", err)
	}
	return summaries, nil
}
