// Package history keeps a sqlite record of ingestion outcomes.
package history

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/carbocation/pfx"
	"github.com/carbocation/trackload/ingest"
	"github.com/jmoiron/sqlx"

	_ "github.com/mattn/go-sqlite3"
)

const schema = `CREATE TABLE IF NOT EXISTS ingestion (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	created_at TIMESTAMP NOT NULL,
	n_configs INTEGER NOT NULL,
	n_errors INTEGER NOT NULL,
	session TEXT NOT NULL DEFAULT '',
	payload TEXT NOT NULL
)`

// Entry is one recorded batch. Payload is the JSON ingest.Report.
type Entry struct {
	ID        int64     `db:"id" json:"id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	Configs   int       `db:"n_configs" json:"configurations"`
	Errors    int       `db:"n_errors" json:"errors"`
	Session   string    `db:"session" json:"session,omitempty"`
	Payload   string    `db:"payload" json:"payload"`
}

type Store struct {
	db *sqlx.DB
}

// Open connects to (and if needed creates) the history database at path.
func Open(path string) (*Store, error) {
	// URI filenames have to begin with 'file:'; see
	// https://www.sqlite.org/c3ref/open.html
	if !strings.HasPrefix(path, "file:") {
		path = "file:" + path
	}

	db, err := sqlx.Connect("sqlite3", path)
	if err != nil {
		return nil, pfx.Err(err)
	}

	// An in-memory database exists only on its own connection.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, pfx.Err(err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Record stores the outcome of one batch and returns its id.
func (s *Store) Record(ctx context.Context, result ingest.Result) (int64, error) {
	report := result.Report()

	payload, err := json.Marshal(report)
	if err != nil {
		return 0, pfx.Err(err)
	}

	session := ""
	if result.Session != nil {
		session = result.Session.Filename
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO ingestion (created_at, n_configs, n_errors, session, payload) VALUES (?, ?, ?, ?, ?)`,
		time.Now().UTC(), len(report.Configs), len(report.Errors), session, string(payload))
	if err != nil {
		return 0, pfx.Err(err)
	}

	return res.LastInsertId()
}

// Recent returns up to limit entries, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 50
	}

	entries := []Entry{}
	if err := s.db.SelectContext(ctx, &entries,
		`SELECT id, created_at, n_configs, n_errors, session, payload FROM ingestion ORDER BY id DESC LIMIT ?`, limit); err != nil {
		return nil, pfx.Err(err)
	}

	return entries, nil
}
