package storage

import (
	"context"
	"errors"

	"github.com/louisbranch/clipdeck/internal/project/domain"
)

// ErrNotFound indicates a requested record is missing.
var ErrNotFound = errors.New("record not found")

// ProjectStore persists project records and their metadata index.
type ProjectStore interface {
	// SaveProject persists the full project body and upserts its metadata
	// into the index.
	SaveProject(ctx context.Context, project domain.Project) error
	// LoadProject fetches a full project by ID. Returns ErrNotFound when
	// the ID is unknown.
	LoadProject(ctx context.Context, id string) (domain.Project, error)
	// LoadAllProjectsMetadata lists every indexed project summary. Order is
	// unspecified; callers sort.
	LoadAllProjectsMetadata(ctx context.Context) ([]domain.Metadata, error)
	// DeleteProject removes a project and its index entry. Deleting an
	// unknown ID is not an error.
	DeleteProject(ctx context.Context, id string) error
}
