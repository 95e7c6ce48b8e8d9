// Package sqlite implements the repository interfaces using SQLite as the
// storage backend via the pure-Go modernc.org/sqlite driver.
//
// sql.DB is a connection pool, not a single connection: every query checks a
// connection out and returns it when the row set is closed, so each request
// gets its own connection-scoped view of the store without any extra
// bookkeeping here.
package sqlite

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	// Registers the "sqlite" driver with database/sql.
	_ "modernc.org/sqlite"
)

// DB wraps a sql.DB pool and provides the repository implementations.
type DB struct {
	conn *sql.DB
}

// New opens the database at dsn, verifies the connection, and initializes
// the schema. dsn is a file path; a plain ":memory:" would give each pooled
// connection its own empty database.
//
// Schema initialization failure here must abort startup; the caller is
// expected to treat a non-nil error as fatal.
func New(dsn string) (*DB, error) {
	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database: %w", err)
	}

	// sql.Open does not connect; Ping surfaces a bad path immediately
	// instead of on the first query.
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: pinging database: %w", err)
	}

	// WAL allows concurrent readers while a write is in flight. Writers
	// still serialize; a "database is locked" error from a contended write
	// surfaces as a plain storage failure, not a distinct error kind.
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: setting WAL mode: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: initializing schema: %w", err)
	}

	return db, nil
}

// Close closes the connection pool. Callers should defer this next to New.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Users returns the user repository backed by this pool.
func (db *DB) Users() *UserDB {
	return &UserDB{conn: db.conn}
}

// Jobs returns the job repository backed by this pool.
func (db *DB) Jobs() *JobDB {
	return &JobDB{conn: db.conn}
}

// Applications returns the application repository backed by this pool.
func (db *DB) Applications() *ApplicationDB {
	return &ApplicationDB{conn: db.conn}
}

// migrate creates the three tables. CREATE TABLE IF NOT EXISTS keeps this
// idempotent across restarts.
//
// Foreign keys are declared but enforcement is left at SQLite's default
// (off): deletes do not cascade, and a user or job may be removed while
// applications still reference it. Orphaned references are tolerated.
func (db *DB) migrate() error {
	_, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS users (
			id         INTEGER PRIMARY KEY,
			name       TEXT NOT NULL,
			email      TEXT NOT NULL UNIQUE,
			password   TEXT NOT NULL,
			role       TEXT NOT NULL CHECK(role IN ('job_seeker', 'employer')),
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS jobs (
			id              INTEGER PRIMARY KEY,
			employer_id     INTEGER NOT NULL,
			title           TEXT NOT NULL,
			description     TEXT NOT NULL,
			location        TEXT NOT NULL,
			salary          TEXT,
			employment_type TEXT CHECK(employment_type IN ('full_time', 'part_time', 'contract')),
			posted_at       TEXT NOT NULL,
			updated_at      TEXT NOT NULL,
			FOREIGN KEY (employer_id) REFERENCES users(id)
		);

		CREATE TABLE IF NOT EXISTS applications (
			id            INTEGER PRIMARY KEY,
			job_seeker_id INTEGER NOT NULL,
			job_id        INTEGER NOT NULL,
			cover_letter  TEXT,
			resume        TEXT,
			status        TEXT NOT NULL CHECK(status IN ('pending', 'reviewed', 'accepted', 'rejected')),
			applied_at    TEXT NOT NULL,
			FOREIGN KEY (job_seeker_id) REFERENCES users(id),
			FOREIGN KEY (job_id) REFERENCES jobs(id)
		);
	`)
	if err != nil {
		return fmt.Errorf("creating tables: %w", err)
	}

	return nil
}

// Timestamps are stored as RFC3339 UTC text, matching the wire format.
// now truncates to whole seconds so a created record round-trips through
// storage unchanged.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}

func encodeTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// decodeTime parses a stored timestamp. A stored string that is not valid
// RFC3339 is a storage-level failure, never a not-found.
func decodeTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("malformed timestamp %q: %w", s, err)
	}
	return t.UTC(), nil
}

// isUniqueViolation detects SQLite unique-constraint failures. The driver
// does not export typed errors, so this matches the error text the same way
// database toolkits do.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// nullString converts an optional field for binding; NULL round-trips to nil.
func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func fromNullString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}
