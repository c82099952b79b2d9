// Package store persists named parameter sets.
//
// Values are stored in canonical string form and reloaded through the
// string-form assigner, so every round trip through the store exercises
// the same parsing rules as external input.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/solatis/paramkeeper/internal/core/db"
	"github.com/solatis/paramkeeper/internal/params"
	"github.com/solatis/paramkeeper/internal/types"
)

// Store provides persistence for named parameter sets.
type Store struct {
	db *sqlx.DB
	q  *db.Queries
}

// SetInfo describes a stored set without its parameters.
type SetInfo struct {
	ID        types.SetID `db:"set_id"`
	Name      string      `db:"name"`
	CreatedAt time.Time   `db:"created_at"`
}

type setRow struct {
	ID        types.SetID `db:"set_id"`
	Name      string      `db:"name"`
	CreatedAt string      `db:"created_at"`
}

type paramRow struct {
	Position int    `db:"position"`
	Name     string `db:"name"`
	Type     int32  `db:"type"`
	Value    string `db:"value"`
}

// New creates a Store backed by the given database handle.
func New(q *db.Queries) *Store {
	return &Store{db: q.DB(), q: q}
}

// SaveSet stores a parameter set under the given name, replacing any
// existing set with that name. Returns the new set's ID.
func (s *Store) SaveSet(ctx context.Context, name string, set *params.Set) (types.SetID, error) {
	if name == "" {
		return "", fmt.Errorf("set name must not be empty: %w", types.ErrInvalidValue)
	}

	deleteSet, err := s.q.Raw("delete-param-set")
	if err != nil {
		return "", err
	}
	insertSet, err := s.q.Raw("insert-param-set")
	if err != nil {
		return "", err
	}
	insertParam, err := s.q.Raw("insert-param")
	if err != nil {
		return "", err
	}

	id := types.NewSetID()
	createdAt := time.Now().UTC().Format(time.RFC3339)

	// Replacement is atomic: the old set (and its params, via the FK
	// cascade) disappears in the same transaction that writes the new
	// one.
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, deleteSet, name); err != nil {
		return "", fmt.Errorf("failed to delete existing set %q: %w", name, err)
	}

	if _, err := tx.ExecContext(ctx, insertSet, id, name, createdAt); err != nil {
		return "", fmt.Errorf("failed to insert set %q: %w", name, err)
	}

	for i, p := range set.Params() {
		if _, err := tx.ExecContext(ctx, insertParam, id, i, p.Name, int32(p.Value.Tag()), p.Value.Format()); err != nil {
			return "", fmt.Errorf("failed to insert parameter %q: %w", p.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit set %q: %w", name, err)
	}

	return id, nil
}

// LoadSet retrieves a parameter set by name. Returns
// types.ErrSetNotFound if no set with that name exists.
func (s *Store) LoadSet(ctx context.Context, name string) (*params.Set, error) {
	getSet, err := s.q.Raw("get-param-set")
	if err != nil {
		return nil, err
	}
	listParams, err := s.q.Raw("list-params")
	if err != nil {
		return nil, err
	}

	var row setRow
	if err := s.db.GetContext(ctx, &row, getSet, name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("set %q: %w", name, types.ErrSetNotFound)
		}
		return nil, fmt.Errorf("failed to load set %q: %w", name, err)
	}

	var rows []paramRow
	if err := s.db.SelectContext(ctx, &rows, listParams, row.ID); err != nil {
		return nil, fmt.Errorf("failed to load parameters for set %q: %w", name, err)
	}

	set := params.NewSet()
	for _, r := range rows {
		if err := set.AddFromString(r.Name, types.TypeTag(r.Type), r.Value); err != nil {
			return nil, fmt.Errorf("corrupt parameter %q in set %q: %w", r.Name, name, err)
		}
	}

	return set, nil
}

// ListSets returns metadata for all stored sets, ordered by name.
func (s *Store) ListSets(ctx context.Context) ([]SetInfo, error) {
	listSets, err := s.q.Raw("list-param-sets")
	if err != nil {
		return nil, err
	}

	var rows []setRow
	if err := s.db.SelectContext(ctx, &rows, listSets); err != nil {
		return nil, fmt.Errorf("failed to list sets: %w", err)
	}

	infos := make([]SetInfo, 0, len(rows))
	for _, r := range rows {
		createdAt, err := time.Parse(time.RFC3339, r.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("corrupt created_at for set %q: %w", r.Name, err)
		}
		infos = append(infos, SetInfo{ID: r.ID, Name: r.Name, CreatedAt: createdAt})
	}

	return infos, nil
}

// DeleteSet removes a stored set by name. Returns types.ErrSetNotFound
// if no set with that name exists.
func (s *Store) DeleteSet(ctx context.Context, name string) error {
	deleteSet, err := s.q.Raw("delete-param-set")
	if err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx, deleteSet, name)
	if err != nil {
		return fmt.Errorf("failed to delete set %q: %w", name, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("set %q: %w", name, types.ErrSetNotFound)
	}

	return nil
}
