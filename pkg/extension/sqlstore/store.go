package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/platinummonkey/folio/pkg/extension"
)

const (
	fetchQuery = `
		SELECT data, version, created_at
		FROM extensions
		WHERE kind = $1 AND name = $2
	`
	listQuery = `
		SELECT data, version, created_at
		FROM extensions
		WHERE kind = $1
		ORDER BY name
	`
	insertQuery = `
		INSERT INTO extensions (kind, name, data, version, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	updateQuery = `
		UPDATE extensions
		SET data = $1, version = $2
		WHERE kind = $3 AND name = $4 AND version = $5
	`
	deleteQuery = `
		DELETE FROM extensions
		WHERE kind = $1 AND name = $2
	`
	versionQuery = `
		SELECT version, created_at
		FROM extensions
		WHERE kind = $1 AND name = $2
	`
)

// Store is a database/sql backed extension store for one kind
type Store[T extension.Object] struct {
	db      *sql.DB
	dialect Dialect
	typ     *extension.Type[T]
	now     func() time.Time
}

// NewStore creates a store for typ over db
func NewStore[T extension.Object](db *sql.DB, dialect Dialect, typ *extension.Type[T]) *Store[T] {
	return &Store[T]{
		db:      db,
		dialect: dialect,
		typ:     typ,
		now:     time.Now,
	}
}

// Fetch implements extension.Client
func (s *Store[T]) Fetch(ctx context.Context, name string) (T, error) {
	var zero T

	row := s.db.QueryRowContext(ctx, s.dialect.bind(fetchQuery), s.typ.Kind, name)
	obj, err := s.scan(row)
	if errors.Is(err, sql.ErrNoRows) {
		return zero, extension.NotFound(s.typ.Kind, name)
	} else if err != nil {
		return zero, fmt.Errorf("failed to fetch %s %q: %w", s.typ.Kind, name, err)
	}
	return obj, nil
}

// ListAll implements extension.Client. Filtering and ordering run in process
// through extension.Apply so every backend shares the same semantics.
func (s *Store[T]) ListAll(ctx context.Context, opts extension.ListOptions, sort extension.Sort) ([]T, error) {
	if err := s.typ.Validate(opts, sort); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, s.dialect.bind(listQuery), s.typ.Kind)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", s.typ.Kind, err)
	}
	defer rows.Close()

	var items []T
	for rows.Next() {
		obj, err := s.scan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", s.typ.Kind, err)
		}
		items = append(items, obj)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", s.typ.Kind, err)
	}

	return extension.Apply(items, s.typ, opts, sort)
}

// ListBy implements extension.Client
func (s *Store[T]) ListBy(ctx context.Context, opts extension.ListOptions, page extension.PageRequest) (*extension.ListResult[T], error) {
	items, err := s.ListAll(ctx, opts, page.Sort)
	if err != nil {
		return nil, err
	}
	return extension.Paginate(items, page), nil
}

// Create implements extension.Writer
func (s *Store[T]) Create(ctx context.Context, obj T) error {
	stamped, err := s.typ.Clone(obj)
	if err != nil {
		return err
	}
	meta := stamped.GetMetadata()
	extension.PrepareCreate(meta, s.now())

	data, err := s.typ.Encode(stamped)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var version int64
	var created time.Time
	err = tx.QueryRowContext(ctx, s.dialect.bind(versionQuery), s.typ.Kind, meta.Name).Scan(&version, &created)
	if err == nil {
		return extension.AlreadyExists(s.typ.Kind, meta.Name)
	} else if !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("failed to check %s %q: %w", s.typ.Kind, meta.Name, err)
	}

	if _, err := tx.ExecContext(ctx, s.dialect.bind(insertQuery),
		s.typ.Kind, meta.Name, string(data), meta.GetVersion(), meta.CreationTimestamp,
	); err != nil {
		return fmt.Errorf("failed to create %s %q: %w", s.typ.Kind, meta.Name, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}

	extension.SyncStamp(obj.GetMetadata(), meta)
	return nil
}

// Update implements extension.Writer
func (s *Store[T]) Update(ctx context.Context, obj T) error {
	updated, err := s.typ.Clone(obj)
	if err != nil {
		return err
	}
	meta := updated.GetMetadata()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stored := &extension.Metadata{Name: meta.Name}
	var version int64
	err = tx.QueryRowContext(ctx, s.dialect.bind(versionQuery), s.typ.Kind, meta.Name).
		Scan(&version, &stored.CreationTimestamp)
	if errors.Is(err, sql.ErrNoRows) {
		return extension.NotFound(s.typ.Kind, meta.Name)
	} else if err != nil {
		return fmt.Errorf("failed to check %s %q: %w", s.typ.Kind, meta.Name, err)
	}
	stored.SetVersion(version)

	if err := extension.PrepareUpdate(s.typ.Kind, meta, stored); err != nil {
		return err
	}

	data, err := s.typ.Encode(updated)
	if err != nil {
		return err
	}

	result, err := tx.ExecContext(ctx, s.dialect.bind(updateQuery),
		string(data), meta.GetVersion(), s.typ.Kind, meta.Name, version,
	)
	if err != nil {
		return fmt.Errorf("failed to update %s %q: %w", s.typ.Kind, meta.Name, err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return extension.Conflict(s.typ.Kind, meta.Name, version, meta.GetVersion()-1)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}

	extension.SyncStamp(obj.GetMetadata(), meta)
	return nil
}

// Delete implements extension.Writer
func (s *Store[T]) Delete(ctx context.Context, name string) error {
	result, err := s.db.ExecContext(ctx, s.dialect.bind(deleteQuery), s.typ.Kind, name)
	if err != nil {
		return fmt.Errorf("failed to delete %s %q: %w", s.typ.Kind, name, err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete %s %q: %w", s.typ.Kind, name, err)
	}
	if n == 0 {
		return extension.NotFound(s.typ.Kind, name)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func (s *Store[T]) scan(row scanner) (T, error) {
	var zero T
	var data []byte
	var version int64
	var created time.Time

	if err := row.Scan(&data, &version, &created); err != nil {
		return zero, err
	}

	obj, err := s.typ.Decode(data)
	if err != nil {
		return zero, err
	}
	meta := obj.GetMetadata()
	meta.SetVersion(version)
	meta.CreationTimestamp = created.UTC()
	return obj, nil
}
