package corpusdb

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/vellumlabs/vellum/internal/token"
)

//go:embed schema.sql
var schemaSQL string

// DB is a SQLite-backed token.TokenSource.
type DB struct {
	db *sql.DB
}

// Open creates or opens the transcription database at the given path.
// Applies required pragmas and the schema automatically; idempotent.
func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// SQLite only supports one writer at a time, so limit connections.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply pragmas: %w", err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}
	return &DB{db: db}, nil
}

func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA foreign_keys=ON",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	if d.db == nil {
		return nil
	}
	return d.db.Close()
}

// Tokens implements token.TokenSource. Rows come back in canonical
// (folio, line, position) order so the stream is deterministic.
func (d *DB) Tokens(ctx context.Context) ([]token.Token, error) {
	rows, err := d.db.QueryContext(ctx,
		`SELECT text, folio, line, position, track
		   FROM tokens
		  ORDER BY folio ASC, line ASC, position ASC`)
	if err != nil {
		return nil, fmt.Errorf("querying tokens: %w", err)
	}
	defer rows.Close()

	var out []token.Token
	for rows.Next() {
		var t token.Token
		if err := rows.Scan(&t.Text, &t.Folio, &t.Line, &t.Position, &t.Track); err != nil {
			return nil, fmt.Errorf("scanning token row: %w", err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating token rows: %w", err)
	}
	return out, nil
}

// Insert writes one token row. Used by tests and by tooling that stages a
// fixture corpus; the production table is populated upstream.
func (d *DB) Insert(ctx context.Context, t token.Token) error {
	_, err := d.db.ExecContext(ctx,
		`INSERT INTO tokens (folio, line, position, text, track)
		 VALUES (?, ?, ?, ?, ?)`,
		t.Folio, t.Line, t.Position, t.Text, t.Track)
	if err != nil {
		return fmt.Errorf("inserting token %s: %w", t.Key(), err)
	}
	return nil
}
