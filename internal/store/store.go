// Package store persists session aggregates in SQLite. The driver is
// pure Go, so the binary stays CGO-free.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"

	"github.com/abhisek/varix/internal/correction"
	"github.com/abhisek/varix/internal/questiongen"
	"github.com/abhisek/varix/internal/session"
)

const schema = `
CREATE TABLE IF NOT EXISTS sessions (
	session_id        TEXT PRIMARY KEY,
	original_question TEXT NOT NULL,
	identified_skills TEXT,
	questions         TEXT,
	answer_key        TEXT,
	submitted_answers TEXT,
	report            TEXT,
	created_at        TEXT NOT NULL,
	updated_at        TEXT NOT NULL,
	submitted_at      TEXT
);
`

// SQLite implements session.Store on a SQLite database. One session per
// row; the structured fields are stored as JSON columns.
type SQLite struct {
	db *sql.DB
}

// Open connects to the SQLite database at dsn, applies recommended
// pragmas and bootstraps the schema.
func Open(dsn string) (*SQLite, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("bootstrap schema: %w", err)
	}

	return &SQLite{db: db}, nil
}

// DB returns the underlying *sql.DB for raw queries.
func (s *SQLite) DB() *sql.DB {
	return s.db
}

// Close closes the database connection.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// Create inserts a new session row.
func (s *SQLite) Create(ctx context.Context, sess *session.Session) error {
	identified, questions, key, answers, report, err := marshalColumns(sess)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO sessions (
			session_id, original_question, identified_skills, questions,
			answer_key, submitted_answers, report,
			created_at, updated_at, submitted_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sess.ID, sess.OriginalQuestion, identified, questions,
		key, answers, report,
		sess.CreatedAt.Format(time.RFC3339Nano),
		sess.UpdatedAt.Format(time.RFC3339Nano),
		nullableTime(sess.SubmittedAt),
	)
	if err != nil {
		return fmt.Errorf("insert session %s: %w", sess.ID, err)
	}
	return nil
}

// Update rewrites the mutable columns of an existing session row.
func (s *SQLite) Update(ctx context.Context, sess *session.Session) error {
	identified, questions, key, answers, report, err := marshalColumns(sess)
	if err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE sessions SET
			identified_skills = ?, questions = ?, answer_key = ?,
			submitted_answers = ?, report = ?,
			updated_at = ?, submitted_at = ?
		WHERE session_id = ?`,
		identified, questions, key, answers, report,
		sess.UpdatedAt.Format(time.RFC3339Nano),
		nullableTime(sess.SubmittedAt),
		sess.ID,
	)
	if err != nil {
		return fmt.Errorf("update session %s: %w", sess.ID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update session %s: %w", sess.ID, err)
	}
	if n == 0 {
		return fmt.Errorf("update session %s: %w", sess.ID, session.ErrNotFound)
	}
	return nil
}

// Get loads a session by id, returning session.ErrNotFound when absent.
func (s *SQLite) Get(ctx context.Context, id string) (*session.Session, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT session_id, original_question, identified_skills, questions,
		       answer_key, submitted_answers, report,
		       created_at, updated_at, submitted_at
		FROM sessions WHERE session_id = ?`, id)

	var (
		sess                                       session.Session
		identified, questions, key, answers, report sql.NullString
		createdAt, updatedAt                        string
		submittedAt                                 sql.NullString
	)
	err := row.Scan(&sess.ID, &sess.OriginalQuestion,
		&identified, &questions, &key, &answers, &report,
		&createdAt, &updatedAt, &submittedAt)
	if err == sql.ErrNoRows {
		return nil, session.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load session %s: %w", id, err)
	}

	if sess.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return nil, fmt.Errorf("session %s created_at: %w", id, err)
	}
	if sess.UpdatedAt, err = time.Parse(time.RFC3339Nano, updatedAt); err != nil {
		return nil, fmt.Errorf("session %s updated_at: %w", id, err)
	}
	if submittedAt.Valid {
		t, err := time.Parse(time.RFC3339Nano, submittedAt.String)
		if err != nil {
			return nil, fmt.Errorf("session %s submitted_at: %w", id, err)
		}
		sess.SubmittedAt = &t
	}

	if err := unmarshalColumn(identified, &sess.Identified); err != nil {
		return nil, fmt.Errorf("session %s identified_skills: %w", id, err)
	}
	if questions.Valid {
		var qs []questiongen.GeneratedQuestion
		if err := json.Unmarshal([]byte(questions.String), &qs); err != nil {
			return nil, fmt.Errorf("session %s questions: %w", id, err)
		}
		sess.Questions = qs
	}
	if err := unmarshalColumn(key, &sess.AnswerKey); err != nil {
		return nil, fmt.Errorf("session %s answer_key: %w", id, err)
	}
	if answers.Valid {
		m := make(map[int]string)
		if err := json.Unmarshal([]byte(answers.String), &m); err != nil {
			return nil, fmt.Errorf("session %s submitted_answers: %w", id, err)
		}
		sess.SubmittedAnswers = m
	}
	var rep *correction.Report
	if err := unmarshalColumn(report, &rep); err != nil {
		return nil, fmt.Errorf("session %s report: %w", id, err)
	}
	sess.Report = rep

	return &sess, nil
}

// marshalColumns serializes the structured session fields. Nil fields
// become SQL NULLs so a fresh shell row stays visibly empty.
func marshalColumns(sess *session.Session) (identified, questions, key, answers, report sql.NullString, err error) {
	if identified, err = jsonColumn(sess.Identified, sess.Identified == nil); err != nil {
		return
	}
	if questions, err = jsonColumn(sess.Questions, sess.Questions == nil); err != nil {
		return
	}
	if key, err = jsonColumn(sess.AnswerKey, sess.AnswerKey == nil); err != nil {
		return
	}
	if answers, err = jsonColumn(sess.SubmittedAnswers, sess.SubmittedAnswers == nil); err != nil {
		return
	}
	report, err = jsonColumn(sess.Report, sess.Report == nil)
	return
}

func jsonColumn(v any, isNil bool) (sql.NullString, error) {
	if isNil {
		return sql.NullString{}, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return sql.NullString{}, fmt.Errorf("marshal column: %w", err)
	}
	return sql.NullString{String: string(b), Valid: true}, nil
}

func unmarshalColumn[T any](col sql.NullString, dst *T) error {
	if !col.Valid {
		return nil
	}
	return json.Unmarshal([]byte(col.String), dst)
}

func nullableTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Format(time.RFC3339Nano)
}

// applyPragmas configures SQLite for a small concurrent service.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

// DefaultDBPath resolves the database file path in priority order:
// 1. VARIX_DB environment variable
// 2. $XDG_DATA_HOME/varix/varix.db
// 3. ~/.local/share/varix/varix.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("VARIX_DB"); p != "" {
		return p, ensureDir(p)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "varix", "varix.db")
	return p, ensureDir(p)
}

// ensureDir creates the parent directory of path if it doesn't exist.
func ensureDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0o755)
}
