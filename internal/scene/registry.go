// Package scene owns the live scene list and active-scene pointer for the
// project being edited.
package scene

import (
	"sync"

	"github.com/louisbranch/clipdeck/internal/notify"
	"github.com/louisbranch/clipdeck/internal/timeline/domain"
)

// Registry holds the scenes of the active project. The project manager
// populates it on create/load and re-assembles the project from it on
// save; the timeline engine mutates tracks within the active scene.
type Registry struct {
	mu       sync.Mutex
	scenes   []domain.Scene
	activeID string
	notifier *notify.Notifier
}

// NewRegistry constructs an empty registry.
func NewRegistry() *Registry {
	return &Registry{notifier: notify.NewNotifier()}
}

// Changes returns the registry's change notifier.
func (r *Registry) Changes() *notify.Notifier {
	return r.notifier
}

// InitializeScenes replaces the scene list wholesale. When currentSceneID
// is empty it defaults to the first scene's id, or stays empty for an
// empty list.
func (r *Registry) InitializeScenes(scenes []domain.Scene, currentSceneID string) {
	r.mu.Lock()
	r.scenes = append([]domain.Scene(nil), scenes...)
	if currentSceneID == "" && len(r.scenes) > 0 {
		currentSceneID = r.scenes[0].ID
	}
	if len(r.scenes) == 0 {
		currentSceneID = ""
	}
	r.activeID = currentSceneID
	r.mu.Unlock()

	r.notifier.Notify()
}

// Scenes returns a copy of the scene list.
func (r *Registry) Scenes() []domain.Scene {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.Scene(nil), r.scenes...)
}

// ActiveSceneID returns the active-scene pointer, which may be empty.
func (r *Registry) ActiveSceneID() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.activeID
}

// ActiveScene resolves the active pointer against the scene list. ok is
// false when the pointer is empty or does not resolve.
func (r *Registry) ActiveScene() (domain.Scene, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, scene := range r.scenes {
		if scene.ID == r.activeID {
			return scene, true
		}
	}
	return domain.Scene{}, false
}

// SetActiveScene sets the active pointer without validating membership.
// Callers are responsible for switching only to known ids; an unknown id
// leaves ActiveScene unresolved until the pointer is set again.
func (r *Registry) SetActiveScene(id string) {
	r.mu.Lock()
	r.activeID = id
	r.mu.Unlock()

	r.notifier.Notify()
}

// ClearScenes empties the scene list and active pointer.
func (r *Registry) ClearScenes() {
	r.mu.Lock()
	r.scenes = nil
	r.activeID = ""
	r.mu.Unlock()

	r.notifier.Notify()
}

// UpdateActiveScene runs fn against the active scene under the registry
// lock and reports whether a scene was active. It does not notify; callers
// that mutate own their change notification.
func (r *Registry) UpdateActiveScene(fn func(scene *domain.Scene)) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.scenes {
		if r.scenes[i].ID == r.activeID {
			fn(&r.scenes[i])
			return true
		}
	}
	return false
}

// ToggleBookmark toggles a bookmark on the active scene, keeping the set
// sorted ascending and deduplicated. No-op without an active scene.
func (r *Registry) ToggleBookmark(t float64) {
	changed := r.UpdateActiveScene(func(scene *domain.Scene) {
		scene.Bookmarks = domain.ToggleBookmark(scene.Bookmarks, t)
	})
	if changed {
		r.notifier.Notify()
	}
}

// IsBookmarked reports whether the active scene holds an exact-value
// bookmark at t.
func (r *Registry) IsBookmarked(t float64) bool {
	scene, ok := r.ActiveScene()
	if !ok {
		return false
	}
	return domain.IsBookmarked(scene.Bookmarks, t)
}
