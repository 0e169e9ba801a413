// Package sqlite provides a SQLite-backed project store.
//
// The summary columns double as the metadata index: listing reads them
// without touching the JSON payload column.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/louisbranch/clipdeck/internal/platform/storage/sqlitemigrate"
	"github.com/louisbranch/clipdeck/internal/project/domain"
	"github.com/louisbranch/clipdeck/internal/storage"
	"github.com/louisbranch/clipdeck/internal/storage/sqlite/migrations"
	_ "modernc.org/sqlite"
)

// Store persists projects in SQLite.
type Store struct {
	sqlDB *sql.DB
	now   func() time.Time
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens a SQLite project store and applies embedded migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := sqlitemigrate.ApplyMigrations(sqlDB, migrations.FS); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB, now: time.Now}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// SaveProject upserts a project row. The first save stamps indexed_at so
// newly created projects list ahead of older ones by default.
func (s *Store) SaveProject(ctx context.Context, project domain.Project) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(project.Metadata.ID) == "" {
		return fmt.Errorf("project id is required")
	}

	payload, err := json.Marshal(project)
	if err != nil {
		return fmt.Errorf("marshal project: %w", err)
	}

	_, err = s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO projects (id, name, duration, created_at, updated_at, indexed_at, payload)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   name = excluded.name,
		   duration = excluded.duration,
		   updated_at = excluded.updated_at,
		   payload = excluded.payload`,
		project.Metadata.ID,
		project.Metadata.Name,
		project.Metadata.Duration,
		toMillis(project.Metadata.CreatedAt),
		toMillis(project.Metadata.UpdatedAt),
		toMillis(s.now()),
		payload,
	)
	if err != nil {
		return fmt.Errorf("save project: %w", err)
	}
	return nil
}

// LoadProject fetches a full project by ID.
func (s *Store) LoadProject(ctx context.Context, id string) (domain.Project, error) {
	if err := ctx.Err(); err != nil {
		return domain.Project{}, err
	}
	if s == nil || s.sqlDB == nil {
		return domain.Project{}, fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(id) == "" {
		return domain.Project{}, fmt.Errorf("project id is required")
	}

	var payload []byte
	row := s.sqlDB.QueryRowContext(ctx, "SELECT payload FROM projects WHERE id = ?", id)
	if err := row.Scan(&payload); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Project{}, storage.ErrNotFound
		}
		return domain.Project{}, fmt.Errorf("load project: %w", err)
	}

	var project domain.Project
	if err := json.Unmarshal(payload, &project); err != nil {
		return domain.Project{}, fmt.Errorf("unmarshal project: %w", err)
	}
	project.Normalize()
	return project, nil
}

// LoadAllProjectsMetadata lists every project summary, newest index entry
// first, without reading payloads.
func (s *Store) LoadAllProjectsMetadata(ctx context.Context) ([]domain.Metadata, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}

	rows, err := s.sqlDB.QueryContext(
		ctx,
		"SELECT id, name, duration, created_at, updated_at FROM projects ORDER BY indexed_at DESC",
	)
	if err != nil {
		return nil, fmt.Errorf("list project metadata: %w", err)
	}
	defer rows.Close()

	entries := []domain.Metadata{}
	for rows.Next() {
		var entry domain.Metadata
		var createdAt, updatedAt int64
		if err := rows.Scan(&entry.ID, &entry.Name, &entry.Duration, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("scan project metadata: %w", err)
		}
		entry.CreatedAt = fromMillis(createdAt)
		entry.UpdatedAt = fromMillis(updatedAt)
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate project metadata: %w", err)
	}

	return entries, nil
}

// DeleteProject removes a project row. Deleting an unknown ID is not an
// error.
func (s *Store) DeleteProject(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("project id is required")
	}

	if _, err := s.sqlDB.ExecContext(ctx, "DELETE FROM projects WHERE id = ?", id); err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	return nil
}
