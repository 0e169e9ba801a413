// Package session composes the editing managers into one explicitly
// constructed session object. Nothing here is process-global; callers
// own the session's lifetime and pass it where it is needed.
package session

import (
	"github.com/louisbranch/clipdeck/internal/media"
	"github.com/louisbranch/clipdeck/internal/notify"
	"github.com/louisbranch/clipdeck/internal/playback"
	"github.com/louisbranch/clipdeck/internal/project"
	"github.com/louisbranch/clipdeck/internal/scene"
	"github.com/louisbranch/clipdeck/internal/selection"
	"github.com/louisbranch/clipdeck/internal/storage"
	"github.com/louisbranch/clipdeck/internal/timeline"
)

// Session owns every manager of one editing session and aggregates
// their change notifications into a single channel, so a UI layer
// subscribes once.
type Session struct {
	Playback  *playback.Clock
	Media     *media.Registry
	Selection *selection.Manager
	Scenes    *scene.Registry
	Timeline  *timeline.Engine
	Projects  *project.Manager

	notifier     *notify.Notifier
	unsubscribes []func()
}

// New wires a session over the given project store.
func New(store storage.ProjectStore) *Session {
	scenes := scene.NewRegistry()
	mediaRegistry := media.NewRegistry()
	selectionManager := selection.NewManager()

	s := &Session{
		Playback:  playback.NewClock(),
		Media:     mediaRegistry,
		Selection: selectionManager,
		Scenes:    scenes,
		Timeline:  timeline.NewEngine(scenes),
		Projects:  project.NewManager(store, scenes, mediaRegistry, selectionManager),
		notifier:  notify.NewNotifier(),
	}

	for _, source := range []*notify.Notifier{
		s.Playback.Changes(),
		s.Media.Changes(),
		s.Selection.Changes(),
		s.Scenes.Changes(),
		s.Timeline.Changes(),
		s.Projects.Changes(),
	} {
		s.unsubscribes = append(s.unsubscribes, source.Subscribe(s.notifier.Notify))
	}
	return s
}

// Changes exposes the aggregated change notifier.
func (s *Session) Changes() *notify.Notifier {
	return s.notifier
}

// Close stops playback and detaches the session from its managers.
// Safe to call more than once.
func (s *Session) Close() {
	if s == nil {
		return
	}

	s.Playback.Pause()
	for _, unsubscribe := range s.unsubscribes {
		unsubscribe()
	}
	s.unsubscribes = nil
}
