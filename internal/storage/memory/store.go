// Package memory provides an in-memory project store for tests and
// ephemeral sessions.
package memory

import (
	"context"
	"sync"

	"github.com/louisbranch/clipdeck/internal/project/domain"
	"github.com/louisbranch/clipdeck/internal/storage"
	timelinedomain "github.com/louisbranch/clipdeck/internal/timeline/domain"
)

// Store keeps project records in process memory. The zero value is not
// usable; construct with NewStore.
type Store struct {
	mu       sync.Mutex
	projects map[string]domain.Project
	index    []string
}

// NewStore constructs an empty in-memory store.
func NewStore() *Store {
	return &Store{projects: make(map[string]domain.Project)}
}

// SaveProject stores a copy of the project. Newly indexed ids go to the
// front, matching the durable stores.
func (s *Store) SaveProject(_ context.Context, project domain.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := project.Metadata.ID
	if _, exists := s.projects[id]; !exists {
		s.index = append([]string{id}, s.index...)
	}
	s.projects[id] = cloneProject(project)
	return nil
}

// LoadProject fetches a copy of a stored project.
func (s *Store) LoadProject(_ context.Context, id string) (domain.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	project, ok := s.projects[id]
	if !ok {
		return domain.Project{}, storage.ErrNotFound
	}
	return cloneProject(project), nil
}

// LoadAllProjectsMetadata lists stored summaries, newest first.
func (s *Store) LoadAllProjectsMetadata(_ context.Context) ([]domain.Metadata, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := make([]domain.Metadata, 0, len(s.index))
	for _, id := range s.index {
		if project, ok := s.projects[id]; ok {
			entries = append(entries, project.Metadata)
		}
	}
	return entries, nil
}

// DeleteProject removes a stored project. Unknown ids are tolerated.
func (s *Store) DeleteProject(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.projects, id)
	out := make([]string, 0, len(s.index))
	for _, existing := range s.index {
		if existing != id {
			out = append(out, existing)
		}
	}
	s.index = out
	return nil
}

// cloneProject deep-copies the mutable slices so callers cannot alias
// stored state.
func cloneProject(project domain.Project) domain.Project {
	out := project
	out.Scenes = make([]timelinedomain.Scene, 0, len(project.Scenes))
	for _, scene := range project.Scenes {
		copied := scene
		copied.Tracks = make([]timelinedomain.Track, 0, len(scene.Tracks))
		for _, track := range scene.Tracks {
			trackCopy := track
			trackCopy.Elements = append([]timelinedomain.Element(nil), track.Elements...)
			copied.Tracks = append(copied.Tracks, trackCopy)
		}
		copied.Bookmarks = append([]float64(nil), scene.Bookmarks...)
		out.Scenes = append(out.Scenes, copied)
	}
	return out
}
