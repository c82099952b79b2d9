package db

import (
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	"github.com/qustavo/dotsql"
)

//go:embed queries/*.sql
var queriesFS embed.FS

// Queries provides access to named SQL queries loaded from embedded
// .sql files. Uses dotsql for named query management and sqlx for
// database operations.
type Queries struct {
	dot *dotsql.DotSql
	db  *sqlx.DB
}

// LoadQueries loads all .sql files from the embedded filesystem.
// Named queries accessible by name (e.g., "get-param-set").
func LoadQueries(db *sqlx.DB) (*Queries, error) {
	var combinedSQL string

	err := fs.WalkDir(queriesFS, "queries", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || filepath.Ext(path) != ".sql" {
			return nil
		}

		content, err := queriesFS.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}

		combinedSQL += string(content) + "\n"
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to load query files: %w", err)
	}

	dot, err := dotsql.LoadFromString(combinedSQL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse queries: %w", err)
	}

	return &Queries{dot: dot, db: db}, nil
}

// DB exposes the underlying handle for transactional callers.
func (q *Queries) DB() *sqlx.DB { return q.db }

// Raw returns the SQL text of a named query, rebound to the driver's
// placeholder style.
func (q *Queries) Raw(name string) (string, error) {
	query, err := q.dot.Raw(name)
	if err != nil {
		return "", fmt.Errorf("query not found: %s", name)
	}
	return q.db.Rebind(query), nil
}

// Exec executes a named query with placeholder conversion for database
// compatibility.
func (q *Queries) Exec(name string, args ...interface{}) (sql.Result, error) {
	query, err := q.Raw(name)
	if err != nil {
		return nil, err
	}
	return q.db.Exec(query, args...)
}

// Get retrieves a single row into dest struct using a named query.
func (q *Queries) Get(name string, dest interface{}, args ...interface{}) error {
	query, err := q.Raw(name)
	if err != nil {
		return err
	}
	return q.db.Get(dest, query, args...)
}

// Select retrieves multiple rows into dest slice using a named query.
func (q *Queries) Select(name string, dest interface{}, args ...interface{}) error {
	query, err := q.Raw(name)
	if err != nil {
		return err
	}
	return q.db.Select(dest, query, args...)
}
