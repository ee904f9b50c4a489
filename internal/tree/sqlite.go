// internal/tree/sqlite.go
//
// SQLite-backed decision trees.
// Responsibilities:
//   - Opening the database with safe defaults (WAL, busy timeout, foreign keys).
//   - Creating one table per tree on first use, recorded in _trees.
//   - Node lookup/insert keyed by (parent id, feedback label).
//
// Table layout per tree:
//   id       INTEGER PRIMARY KEY AUTOINCREMENT
//   feedback TEXT    label of the edge from the parent ('' for the root)
//   guess    TEXT    computed guess
//   pid      INTEGER parent id, NULL for the root
//
// The unique index is on (IFNULL(pid, 0), feedback) so the root, whose pid
// is NULL, is unique as well.

package tree

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"
)

// DB is an open tree database holding any number of trees.
type DB struct {
	sql *sql.DB
}

// OpenSQLite opens (and creates if missing) a SQLite database file.
//
//   - Ensures the parent directory exists for relative paths (e.g. ./data/tree.db).
//   - Configures busy timeout and WAL journaling mode.
//   - Enforces foreign keys.
func OpenSQLite(dsn string) (*DB, error) {
	dir := filepath.Dir(dsn)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite3", dsn+"?_busy_timeout=5000&_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(`PRAGMA foreign_keys = ON; PRAGMA journal_mode = WAL;`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set pragmas: %w", err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS _trees (
		name       TEXT PRIMARY KEY,
		created_at TEXT NOT NULL
	);`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create _trees: %w", err)
	}
	return &DB{sql: db}, nil
}

// SQL exposes the handle for other tables kept in the same file.
func (db *DB) SQL() *sql.DB { return db.sql }

// Close closes the database.
func (db *DB) Close() error { return db.sql.Close() }

// Trees lists the trees created so far, by name.
func (db *DB) Trees(ctx context.Context) ([]string, error) {
	rows, err := db.sql.QueryContext(ctx, `SELECT name FROM _trees ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

// Tree returns the named tree, creating its table on first use.
func (db *DB) Tree(ctx context.Context, name string) (*SQLiteTree, error) {
	if name == "" {
		return nil, errors.New("tree: empty name")
	}
	t := &SQLiteTree{db: db.sql, name: name, table: quoteIdent(name)}

	tx, err := db.sql.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	stmts := []string{
		`CREATE TABLE IF NOT EXISTS ` + t.table + ` (
			id       INTEGER PRIMARY KEY AUTOINCREMENT,
			feedback TEXT NOT NULL DEFAULT '',
			guess    TEXT NOT NULL,
			pid      INTEGER REFERENCES ` + t.table + `(id)
		);`,
		`CREATE UNIQUE INDEX IF NOT EXISTS ` + quoteIdent(name+"_edge") +
			` ON ` + t.table + ` (IFNULL(pid, 0), feedback);`,
	}
	for _, s := range stmts {
		if _, err := tx.ExecContext(ctx, s); err != nil {
			return nil, fmt.Errorf("create tree %s: %w", name, err)
		}
	}
	res, err := tx.ExecContext(ctx, `INSERT OR IGNORE INTO _trees(name, created_at) VALUES (?, ?)`,
		name, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return nil, fmt.Errorf("record tree %s: %w", name, err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit tree %s: %w", name, err)
	}
	if n, _ := res.RowsAffected(); n > 0 {
		log.Info().Str("tree", name).Msg("created decision tree")
	}
	return t, nil
}

// OpenSQLiteTree opens dsn and returns one tree that owns the database:
// closing the tree closes the file.
func OpenSQLiteTree(ctx context.Context, dsn, name string) (*SQLiteTree, error) {
	db, err := OpenSQLite(dsn)
	if err != nil {
		return nil, err
	}
	t, err := db.Tree(ctx, name)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	t.owner = db
	return t, nil
}

// SQLiteTree is one tree table. Every insert commits on its own, so nodes
// are durable as soon as Insert returns.
type SQLiteTree struct {
	db    *sql.DB
	owner *DB
	name  string
	table string
}

func (t *SQLiteTree) Name() string { return t.name }

func (t *SQLiteTree) Child(ctx context.Context, parent int64, label string) (Node, bool, error) {
	n := Node{Parent: parent, Label: label}
	err := t.db.QueryRowContext(ctx,
		`SELECT id, guess FROM `+t.table+` WHERE IFNULL(pid, 0) = ? AND feedback = ?`,
		parent, label,
	).Scan(&n.ID, &n.Guess)
	if errors.Is(err, sql.ErrNoRows) {
		return Node{}, false, nil
	}
	if err != nil {
		return Node{}, false, fmt.Errorf("lookup %s: %w", t.name, err)
	}
	return n, true, nil
}

func (t *SQLiteTree) Insert(ctx context.Context, parent int64, label, guess string) (Node, error) {
	var pid any
	if parent != RootParent {
		pid = parent
	}
	if _, err := t.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO `+t.table+` (feedback, guess, pid) VALUES (?, ?, ?)`,
		label, guess, pid,
	); err != nil {
		return Node{}, fmt.Errorf("insert %s: %w", t.name, err)
	}
	// Re-read so a concurrent writer's node wins consistently.
	n, ok, err := t.Child(ctx, parent, label)
	if err != nil {
		return Node{}, err
	}
	if !ok {
		return Node{}, fmt.Errorf("insert %s: node (%d, %q) missing after insert", t.name, parent, label)
	}
	return n, nil
}

func (t *SQLiteTree) Len(ctx context.Context) (int, error) {
	var n int
	err := t.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM `+t.table).Scan(&n)
	return n, err
}

// Flush checkpoints the WAL into the main database file.
func (t *SQLiteTree) Flush() error {
	_, err := t.db.Exec(`PRAGMA wal_checkpoint(TRUNCATE);`)
	return err
}

func (t *SQLiteTree) Close() error {
	err := t.Flush()
	if t.owner != nil {
		if cerr := t.owner.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

func quoteIdent(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// Open is an Opener over db. Closing the returned tree flushes it but
// leaves db open for other trees.
func (db *DB) Open(ctx context.Context, name string) (Backend, error) {
	return db.Tree(ctx, name)
}
