// Package project orchestrates the project lifecycle: create, load,
// save, delete, rename, and list, against a persistence store.
package project

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/louisbranch/clipdeck/internal/id"
	"github.com/louisbranch/clipdeck/internal/media"
	"github.com/louisbranch/clipdeck/internal/notify"
	"github.com/louisbranch/clipdeck/internal/project/domain"
	"github.com/louisbranch/clipdeck/internal/scene"
	"github.com/louisbranch/clipdeck/internal/selection"
	"github.com/louisbranch/clipdeck/internal/storage"
)

// State is the lifecycle state of the manager.
type State string

const (
	// StateIdle means no project is active.
	StateIdle State = "idle"
	// StateLoading means a load is in flight and previous session state
	// has already been cleared.
	StateLoading State = "loading"
	// StateActive means a project is active and editable.
	StateActive State = "active"
)

// ErrSuperseded is returned by an operation whose result arrived after
// a newer lifecycle transition began; its result was discarded.
var ErrSuperseded = errors.New("project operation superseded")

// Manager owns the active project envelope and the saved-projects
// metadata index. Scenes of the active project live in the scene
// registry; the manager re-assembles them into the project on save and
// pushes them into the registry on load.
type Manager struct {
	mu         sync.Mutex
	state      State
	active     *domain.Project
	saved      []domain.Metadata
	indexReady bool
	generation int

	store     storage.ProjectStore
	scenes    *scene.Registry
	media     *media.Registry
	selection *selection.Manager

	notifier *notify.Notifier
	tracer   trace.Tracer

	now         func() time.Time
	idGenerator func() (string, error)
}

// NewManager wires a manager over its collaborators.
func NewManager(store storage.ProjectStore, scenes *scene.Registry, mediaRegistry *media.Registry, selectionManager *selection.Manager) *Manager {
	return &Manager{
		state:       StateIdle,
		store:       store,
		scenes:      scenes,
		media:       mediaRegistry,
		selection:   selectionManager,
		notifier:    notify.NewNotifier(),
		tracer:      otel.Tracer("clipdeck/project"),
		now:         time.Now,
		idGenerator: id.NewID,
	}
}

// Changes exposes the manager's change notifier.
func (m *Manager) Changes() *notify.Notifier {
	return m.notifier
}

// State returns the lifecycle state.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// ActiveProject returns a copy of the active project envelope.
func (m *Manager) ActiveProject() (domain.Project, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.active == nil {
		return domain.Project{}, false
	}
	return *m.active, true
}

// IndexLoaded reports whether the metadata index has been fetched at
// least once.
func (m *Manager) IndexLoaded() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.indexReady
}

// CreateNewProject builds a new project with one main scene and one
// default video track, makes it active, and persists it. Returns the
// new project id. On a persist failure the project stays active in
// memory and the error propagates.
func (m *Manager) CreateNewProject(ctx context.Context, name string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	project, err := domain.NewProject(name, m.now, m.idGenerator)
	if err != nil {
		return "", err
	}

	m.mu.Lock()
	m.generation++
	m.state = StateActive
	m.active = &project
	m.mu.Unlock()

	m.media.Clear()
	m.selection.Clear()
	m.scenes.InitializeScenes(project.Scenes, project.CurrentSceneID)

	saveErr := m.saveProject(ctx, project)
	if saveErr == nil {
		m.upsertMetadata(project.Metadata, true)
	}

	m.notifier.Notify()
	if saveErr != nil {
		return project.Metadata.ID, fmt.Errorf("persist new project: %w", saveErr)
	}
	return project.Metadata.ID, nil
}

// LoadProject activates the stored project with the given id. Session
// state from the previous project is cleared before the fetch, so a
// failed load never shows stale content. An unknown id fails with
// storage.ErrNotFound and leaves the manager idle. A load that resolves
// after a newer lifecycle transition began is discarded with
// ErrSuperseded.
func (m *Manager) LoadProject(ctx context.Context, projectID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	m.generation++
	generation := m.generation
	m.state = StateLoading
	m.active = nil
	m.mu.Unlock()

	m.media.Clear()
	m.selection.Clear()
	m.scenes.ClearScenes()
	m.notifier.Notify()

	loaded, loadErr := m.loadProject(ctx, projectID)

	m.mu.Lock()
	if m.generation != generation {
		m.mu.Unlock()
		return ErrSuperseded
	}
	if loadErr != nil {
		m.state = StateIdle
		m.mu.Unlock()
		m.notifier.Notify()
		return fmt.Errorf("load project %q: %w", projectID, loadErr)
	}
	m.state = StateActive
	m.active = &loaded
	m.mu.Unlock()

	// A zero-scene project is representable but has nothing to edit;
	// the scene registry is left as cleared.
	if len(loaded.Scenes) > 0 {
		m.scenes.InitializeScenes(loaded.Scenes, loaded.CurrentSceneID)
	}
	m.notifier.Notify()
	return nil
}

// SaveCurrentProject persists the active project. The scene list is
// re-derived from the scene registry, the duration recomputed, and
// UpdatedAt stamped. A no-op when no project is active.
func (m *Manager) SaveCurrentProject(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	if m.active == nil {
		m.mu.Unlock()
		return nil
	}
	project := *m.active
	m.mu.Unlock()

	project.Scenes = m.scenes.Scenes()
	project.CurrentSceneID = m.scenes.ActiveSceneID()
	project.Metadata.Duration = project.Duration()
	project.Metadata.UpdatedAt = m.now().UTC()

	if err := m.saveProject(ctx, project); err != nil {
		return fmt.Errorf("save project %q: %w", project.Metadata.ID, err)
	}

	m.mu.Lock()
	if m.active != nil && m.active.Metadata.ID == project.Metadata.ID {
		m.active = &project
	}
	m.mu.Unlock()
	m.upsertMetadata(project.Metadata, false)

	m.notifier.Notify()
	return nil
}

// LoadAllProjectsMetadata refreshes the saved-projects index from
// storage. Store order is unspecified; listings sort through
// FilteredAndSortedProjects.
func (m *Manager) LoadAllProjectsMetadata(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	ctx, span := m.tracer.Start(ctx, "storage.LoadAllProjectsMetadata")
	entries, err := m.store.LoadAllProjectsMetadata(ctx)
	if err != nil {
		span.RecordError(err)
	}
	span.End()
	if err != nil {
		return fmt.Errorf("load projects metadata: %w", err)
	}

	m.mu.Lock()
	m.saved = entries
	m.indexReady = true
	m.mu.Unlock()

	m.notifier.Notify()
	return nil
}

// SavedProjects returns the cached metadata index.
func (m *Manager) SavedProjects() []domain.Metadata {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Metadata, len(m.saved))
	copy(out, m.saved)
	return out
}

// FilteredAndSortedProjects filters the cached index by a
// case-insensitive name substring and sorts by the given option. The
// cache itself is never mutated.
func (m *Manager) FilteredAndSortedProjects(query string, option domain.SortOption) []domain.Metadata {
	return domain.FilterAndSortMetadata(m.SavedProjects(), query, option)
}

// DeleteProjects removes the given projects from storage and the
// metadata cache. Missing ids are tolerated. When the active project is
// among the deleted, the whole session state is cleared.
func (m *Manager) DeleteProjects(ctx context.Context, projectIDs []string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(projectIDs) == 0 {
		return nil
	}

	var errs []error
	for _, projectID := range projectIDs {
		deleteCtx, span := m.tracer.Start(ctx, "storage.DeleteProject")
		if err := m.store.DeleteProject(deleteCtx, projectID); err != nil {
			span.RecordError(err)
			errs = append(errs, fmt.Errorf("delete project %q: %w", projectID, err))
		}
		span.End()
	}

	deleted := make(map[string]bool, len(projectIDs))
	for _, projectID := range projectIDs {
		deleted[projectID] = true
	}

	m.mu.Lock()
	kept := m.saved[:0]
	for _, entry := range m.saved {
		if !deleted[entry.ID] {
			kept = append(kept, entry)
		}
	}
	m.saved = kept
	activeDeleted := m.active != nil && deleted[m.active.Metadata.ID]
	if activeDeleted {
		m.generation++
		m.state = StateIdle
		m.active = nil
	}
	m.mu.Unlock()

	if activeDeleted {
		m.media.Clear()
		m.selection.Clear()
		m.scenes.ClearScenes()
	}

	m.notifier.Notify()
	return errors.Join(errs...)
}

// RenameProject loads the project fresh from storage, renames it, and
// persists it. The metadata index entry is refreshed; the in-memory
// active copy is refreshed only when it is the renamed project.
func (m *Manager) RenameProject(ctx context.Context, projectID, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	project, err := m.loadProject(ctx, projectID)
	if err != nil {
		return fmt.Errorf("rename project %q: %w", projectID, err)
	}

	project.Metadata.Name = name
	project.Metadata.UpdatedAt = m.now().UTC()

	if err := m.saveProject(ctx, project); err != nil {
		return fmt.Errorf("rename project %q: %w", projectID, err)
	}

	m.mu.Lock()
	if m.active != nil && m.active.Metadata.ID == projectID {
		m.active.Metadata.Name = project.Metadata.Name
		m.active.Metadata.UpdatedAt = project.Metadata.UpdatedAt
	}
	m.mu.Unlock()
	m.upsertMetadata(project.Metadata, false)

	m.notifier.Notify()
	return nil
}

// CloseProject clears the active project and all per-project session
// state without touching storage.
func (m *Manager) CloseProject() {
	m.mu.Lock()
	wasIdle := m.state == StateIdle && m.active == nil
	m.generation++
	m.state = StateIdle
	m.active = nil
	m.mu.Unlock()

	m.media.Clear()
	m.selection.Clear()
	m.scenes.ClearScenes()

	if !wasIdle {
		m.notifier.Notify()
	}
}

func (m *Manager) saveProject(ctx context.Context, project domain.Project) error {
	ctx, span := m.tracer.Start(ctx, "storage.SaveProject")
	defer span.End()

	if err := m.store.SaveProject(ctx, project); err != nil {
		span.RecordError(err)
		return err
	}
	return nil
}

func (m *Manager) loadProject(ctx context.Context, projectID string) (domain.Project, error) {
	ctx, span := m.tracer.Start(ctx, "storage.LoadProject")
	defer span.End()

	project, err := m.store.LoadProject(ctx, projectID)
	if err != nil {
		span.RecordError(err)
		return domain.Project{}, err
	}
	project.Normalize()
	return project, nil
}

// upsertMetadata refreshes one index entry. New entries go to the front
// when prepend is set, otherwise they append.
func (m *Manager) upsertMetadata(entry domain.Metadata, prepend bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.saved {
		if m.saved[i].ID == entry.ID {
			m.saved[i] = entry
			return
		}
	}
	if prepend {
		m.saved = append([]domain.Metadata{entry}, m.saved...)
		return
	}
	m.saved = append(m.saved, entry)
}
