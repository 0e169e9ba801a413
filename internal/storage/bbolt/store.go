// Package bbolt provides a BoltDB-backed project store.
package bbolt

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/louisbranch/clipdeck/internal/project/domain"
	"github.com/louisbranch/clipdeck/internal/storage"
	"go.etcd.io/bbolt"
)

const (
	projectBucket  = "project"
	metadataBucket = "metadata"
	indexBucket    = "index"

	// projectIndexKey holds the ordered set of known project ids, so
	// listing metadata never scans project bodies.
	projectIndexKey = "projects"
)

// Store provides a BoltDB-backed project store.
type Store struct {
	db *bbolt.DB
}

// Open opens a BoltDB-backed store at the provided path.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	cleanPath := filepath.Clean(path)
	db, err := bbolt.Open(cleanPath, 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open storage db: %w", err)
	}

	store := &Store{db: db}
	if err := store.ensureBuckets(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

// Close closes the underlying BoltDB database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// SaveProject persists a project body and upserts its metadata index entry.
// Newly indexed ids go to the front of the index.
func (s *Store) SaveProject(ctx context.Context, project domain.Project) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.db == nil {
		return fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(project.Metadata.ID) == "" {
		return fmt.Errorf("project id is required")
	}

	body, err := json.Marshal(project)
	if err != nil {
		return fmt.Errorf("marshal project: %w", err)
	}
	summary, err := json.Marshal(project.Metadata)
	if err != nil {
		return fmt.Errorf("marshal project metadata: %w", err)
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		projects := tx.Bucket([]byte(projectBucket))
		if projects == nil {
			return fmt.Errorf("project bucket is missing")
		}
		if err := projects.Put([]byte(project.Metadata.ID), body); err != nil {
			return err
		}

		metadata := tx.Bucket([]byte(metadataBucket))
		if metadata == nil {
			return fmt.Errorf("metadata bucket is missing")
		}
		if err := metadata.Put([]byte(project.Metadata.ID), summary); err != nil {
			return err
		}

		index, err := readIndex(tx)
		if err != nil {
			return err
		}
		if !containsID(index, project.Metadata.ID) {
			index = append([]string{project.Metadata.ID}, index...)
		}
		return writeIndex(tx, index)
	})
}

// LoadProject fetches a full project by ID.
func (s *Store) LoadProject(ctx context.Context, id string) (domain.Project, error) {
	if err := ctx.Err(); err != nil {
		return domain.Project{}, err
	}
	if s == nil || s.db == nil {
		return domain.Project{}, fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(id) == "" {
		return domain.Project{}, fmt.Errorf("project id is required")
	}

	var project domain.Project
	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(projectBucket))
		if bucket == nil {
			return fmt.Errorf("project bucket is missing")
		}
		payload := bucket.Get([]byte(id))
		if payload == nil {
			return storage.ErrNotFound
		}
		if err := json.Unmarshal(payload, &project); err != nil {
			return fmt.Errorf("unmarshal project: %w", err)
		}
		return nil
	})
	if err != nil {
		return domain.Project{}, err
	}

	project.Normalize()
	return project, nil
}

// LoadAllProjectsMetadata lists every indexed project summary. Index
// entries whose metadata record is missing are skipped.
func (s *Store) LoadAllProjectsMetadata(ctx context.Context) ([]domain.Metadata, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.db == nil {
		return nil, fmt.Errorf("storage is not configured")
	}

	var entries []domain.Metadata
	err := s.db.View(func(tx *bbolt.Tx) error {
		index, err := readIndex(tx)
		if err != nil {
			return err
		}
		metadata := tx.Bucket([]byte(metadataBucket))
		if metadata == nil {
			return fmt.Errorf("metadata bucket is missing")
		}

		entries = make([]domain.Metadata, 0, len(index))
		for _, id := range index {
			payload := metadata.Get([]byte(id))
			if payload == nil {
				continue
			}
			var entry domain.Metadata
			if err := json.Unmarshal(payload, &entry); err != nil {
				return fmt.Errorf("unmarshal project metadata %s: %w", id, err)
			}
			entries = append(entries, entry)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return entries, nil
}

// DeleteProject removes a project body, its metadata record, and its index
// entry. Deleting an unknown ID is not an error.
func (s *Store) DeleteProject(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.db == nil {
		return fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("project id is required")
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		projects := tx.Bucket([]byte(projectBucket))
		if projects == nil {
			return fmt.Errorf("project bucket is missing")
		}
		if err := projects.Delete([]byte(id)); err != nil {
			return err
		}

		metadata := tx.Bucket([]byte(metadataBucket))
		if metadata == nil {
			return fmt.Errorf("metadata bucket is missing")
		}
		if err := metadata.Delete([]byte(id)); err != nil {
			return err
		}

		index, err := readIndex(tx)
		if err != nil {
			return err
		}
		out := make([]string, 0, len(index))
		for _, existing := range index {
			if existing != id {
				out = append(out, existing)
			}
		}
		return writeIndex(tx, out)
	})
}

func (s *Store) ensureBuckets() error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		for _, name := range []string{projectBucket, metadataBucket, indexBucket} {
			if _, err := tx.CreateBucketIfNotExists([]byte(name)); err != nil {
				return fmt.Errorf("create %s bucket: %w", name, err)
			}
		}
		return nil
	})
}

func readIndex(tx *bbolt.Tx) ([]string, error) {
	bucket := tx.Bucket([]byte(indexBucket))
	if bucket == nil {
		return nil, fmt.Errorf("index bucket is missing")
	}
	payload := bucket.Get([]byte(projectIndexKey))
	if payload == nil {
		return []string{}, nil
	}
	var index []string
	if err := json.Unmarshal(payload, &index); err != nil {
		return nil, fmt.Errorf("unmarshal project index: %w", err)
	}
	return index, nil
}

func writeIndex(tx *bbolt.Tx, index []string) error {
	bucket := tx.Bucket([]byte(indexBucket))
	if bucket == nil {
		return fmt.Errorf("index bucket is missing")
	}
	payload, err := json.Marshal(index)
	if err != nil {
		return fmt.Errorf("marshal project index: %w", err)
	}
	return bucket.Put([]byte(projectIndexKey), payload)
}

func containsID(index []string, id string) bool {
	for _, existing := range index {
		if existing == id {
			return true
		}
	}
	return false
}
