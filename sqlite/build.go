package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/fwojciec/wcdoc"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ wcdoc.BuildService = (*BuildService)(nil)

// BuildService implements wcdoc.BuildService using SQLite.
type BuildService struct {
	db *DB
}

// NewBuildService creates a new BuildService.
func NewBuildService(db *DB) *BuildService {
	return &BuildService{db: db}
}

// CreateBuild stores a build and its entities in one transaction.
func (s *BuildService) CreateBuild(ctx context.Context, b *wcdoc.Build) error {
	if err := b.Validate(); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	b.ID = uuid.New().String()
	b.CreatedAt = time.Now().UTC()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO builds (id, output_dir, elements, objects, digest, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, b.ID, b.OutputDir, b.Elements, b.Objects, b.Digest, formatTime(b.CreatedAt)); err != nil {
		return err
	}

	for i, e := range b.Entities {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO build_entities (build_id, kind, name, hash, position)
			VALUES (?, ?, ?, ?, ?)
		`, b.ID, string(e.Kind), e.Name, e.Hash, i); err != nil {
			if strings.Contains(err.Error(), "UNIQUE constraint failed") {
				return wcdoc.Errorf(wcdoc.ECONFLICT, "duplicate %s %q in build", e.Kind, e.Name)
			}
			return err
		}
	}

	return tx.Commit()
}

// FindBuildByID retrieves a build with its entities.
func (s *BuildService) FindBuildByID(ctx context.Context, id string) (*wcdoc.Build, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, output_dir, elements, objects, digest, created_at
		FROM builds
		WHERE id = ?
	`, id)

	b, err := scanBuild(row)
	if err == sql.ErrNoRows {
		return nil, wcdoc.Errorf(wcdoc.ENOTFOUND, "build not found")
	}
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT kind, name, hash
		FROM build_entities
		WHERE build_id = ?
		ORDER BY position
	`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var e wcdoc.BuildEntity
		var kind string
		if err := rows.Scan(&kind, &e.Name, &e.Hash); err != nil {
			return nil, err
		}
		e.Kind = wcdoc.Kind(kind)
		b.Entities = append(b.Entities, &e)
	}

	return b, rows.Err()
}

// FindBuilds retrieves builds matching the filter, newest first.
func (s *BuildService) FindBuilds(ctx context.Context, filter wcdoc.BuildFilter) ([]*wcdoc.Build, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, output_dir, elements, objects, digest, created_at FROM builds WHERE 1=1")

	if filter.OutputDir != nil {
		query.WriteString(" AND output_dir = ?")
		args = append(args, *filter.OutputDir)
	}

	query.WriteString(" ORDER BY created_at DESC, rowid DESC")

	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var builds []*wcdoc.Build
	for rows.Next() {
		b, err := scanBuild(rows)
		if err != nil {
			return nil, err
		}
		builds = append(builds, b)
	}

	return builds, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanBuild(row scanner) (*wcdoc.Build, error) {
	var b wcdoc.Build
	var createdAt string

	if err := row.Scan(&b.ID, &b.OutputDir, &b.Elements, &b.Objects, &b.Digest, &createdAt); err != nil {
		return nil, err
	}

	var err error
	if b.CreatedAt, err = parseTime(createdAt, "created_at"); err != nil {
		return nil, err
	}

	return &b, nil
}
