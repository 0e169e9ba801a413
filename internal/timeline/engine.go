// Package timeline mutates the track and element layout of the active
// scene: adding tracks, inserting elements, deleting them, and splitting
// elements at a playhead time.
package timeline

import (
	"fmt"

	"github.com/louisbranch/clipdeck/internal/id"
	"github.com/louisbranch/clipdeck/internal/notify"
	"github.com/louisbranch/clipdeck/internal/scene"
	"github.com/louisbranch/clipdeck/internal/timeline/domain"
)

// SplitRetain selects which halves of a split survive.
type SplitRetain string

const (
	// RetainBoth keeps the left and right halves.
	RetainBoth SplitRetain = "both"
	// RetainLeft keeps only the half before the split time.
	RetainLeft SplitRetain = "left"
	// RetainRight keeps only the half after the split time.
	RetainRight SplitRetain = "right"
)

// Placement tells InsertElement where a new element should land.
type Placement struct {
	trackID string
	auto    bool
}

// PlaceAuto asks the engine to pick or create a compatible track.
func PlaceAuto() Placement {
	return Placement{auto: true}
}

// PlaceOnTrack targets a specific track by id.
func PlaceOnTrack(trackID string) Placement {
	return Placement{trackID: trackID}
}

// Engine edits the active scene held by a scene registry. All mutations
// emit at most one change notification, and only when state actually
// changed.
type Engine struct {
	scenes      *scene.Registry
	notifier    *notify.Notifier
	idGenerator func() (string, error)
}

// NewEngine wires an engine over the given scene registry.
func NewEngine(scenes *scene.Registry) *Engine {
	return &Engine{
		scenes:      scenes,
		notifier:    notify.NewNotifier(),
		idGenerator: id.NewID,
	}
}

// Changes exposes the engine's change notifier.
func (e *Engine) Changes() *notify.Notifier {
	return e.notifier
}

// Tracks returns the active scene's tracks, or nil when no scene is
// active.
func (e *Engine) Tracks() []domain.Track {
	if e == nil || e.scenes == nil {
		return nil
	}
	active, ok := e.scenes.ActiveScene()
	if !ok {
		return nil
	}
	return active.Tracks
}

// TotalDuration reports the end time of the active scene's latest
// element in seconds.
func (e *Engine) TotalDuration() float64 {
	if e == nil || e.scenes == nil {
		return 0
	}
	active, ok := e.scenes.ActiveScene()
	if !ok {
		return 0
	}
	return active.Duration()
}

// AddTrack appends a track of the given type and returns its id, or ""
// when no scene is active or the type is unknown.
func (e *Engine) AddTrack(trackType domain.TrackType) string {
	return e.AddTrackAt(trackType, -1)
}

// AddTrackAt inserts a track at the given index. Indexes out of range
// append instead.
func (e *Engine) AddTrackAt(trackType domain.TrackType, index int) string {
	if e == nil || e.scenes == nil {
		return ""
	}

	trackID, err := e.idGenerator()
	if err != nil {
		return ""
	}

	var createdID string
	changed := e.scenes.UpdateActiveScene(func(s *domain.Scene) {
		name := fmt.Sprintf("%s %d", trackTitle(trackType), countTracks(s.Tracks, trackType)+1)
		track, err := domain.NewTrack(trackType, name, trackID)
		if err != nil {
			return
		}
		if index < 0 || index > len(s.Tracks) {
			s.Tracks = append(s.Tracks, track)
		} else {
			s.Tracks = append(s.Tracks[:index], append([]domain.Track{track}, s.Tracks[index:]...)...)
		}
		createdID = track.ID
	})
	if !changed || createdID == "" {
		return ""
	}

	e.notifier.Notify()
	return createdID
}

// InsertElement places an element on a track. With PlaceAuto the engine
// uses the first track whose type matches the element, creating one when
// none exists. An explicit target that does not exist is silently
// ignored. The element's id is generated when empty. Returns the
// resolved element reference, or false when nothing was inserted.
func (e *Engine) InsertElement(element domain.Element, placement Placement) (domain.ElementRef, bool) {
	if e == nil || e.scenes == nil {
		return domain.ElementRef{}, false
	}
	if err := element.Validate(); err != nil {
		return domain.ElementRef{}, false
	}

	if element.ID == "" {
		generated, err := e.idGenerator()
		if err != nil {
			return domain.ElementRef{}, false
		}
		element.ID = generated
	}

	newTrackID := ""
	if placement.auto {
		generated, err := e.idGenerator()
		if err != nil {
			return domain.ElementRef{}, false
		}
		newTrackID = generated
	}

	var ref domain.ElementRef
	inserted := false
	changed := e.scenes.UpdateActiveScene(func(s *domain.Scene) {
		trackIndex := -1
		if placement.auto {
			trackIndex = findAutoTrack(s.Tracks, element)
			if trackIndex < 0 {
				trackType, err := domain.TrackTypeFor(element.Type)
				if err != nil {
					return
				}
				name := fmt.Sprintf("%s %d", trackTitle(trackType), countTracks(s.Tracks, trackType)+1)
				track, err := domain.NewTrack(trackType, name, newTrackID)
				if err != nil {
					return
				}
				s.Tracks = append(s.Tracks, track)
				trackIndex = len(s.Tracks) - 1
			}
		} else {
			for i, track := range s.Tracks {
				if track.ID == placement.trackID {
					trackIndex = i
					break
				}
			}
			if trackIndex < 0 {
				return
			}
			if !s.Tracks[trackIndex].Accepts(element.Type) {
				return
			}
		}

		s.Tracks[trackIndex].Elements = append(s.Tracks[trackIndex].Elements, element)
		ref = domain.ElementRef{TrackID: s.Tracks[trackIndex].ID, ElementID: element.ID}
		inserted = true
	})
	if !changed || !inserted {
		return domain.ElementRef{}, false
	}

	e.notifier.Notify()
	return ref, true
}

// DeleteElements removes the referenced elements from the active scene.
// Unknown references are ignored.
func (e *Engine) DeleteElements(refs []domain.ElementRef) {
	if e == nil || e.scenes == nil || len(refs) == 0 {
		return
	}

	removed := false
	changed := e.scenes.UpdateActiveScene(func(s *domain.Scene) {
		for _, ref := range refs {
			for i := range s.Tracks {
				if s.Tracks[i].ID != ref.TrackID {
					continue
				}
				elements := s.Tracks[i].Elements
				for j := range elements {
					if elements[j].ID == ref.ElementID {
						s.Tracks[i].Elements = append(elements[:j], elements[j+1:]...)
						removed = true
						break
					}
				}
				break
			}
		}
	})
	if changed && removed {
		e.notifier.Notify()
	}
}

// SplitElements splits each referenced element at splitTime, keeping
// the halves selected by retain. Elements the split time does not fall
// strictly inside are left untouched. Returns the references of all
// surviving halves produced by the split.
func (e *Engine) SplitElements(refs []domain.ElementRef, splitTime float64, retain SplitRetain) []domain.ElementRef {
	if e == nil || e.scenes == nil || len(refs) == 0 {
		return nil
	}

	newIDs := make([]string, 0, len(refs))
	for range refs {
		generated, err := e.idGenerator()
		if err != nil {
			return nil
		}
		newIDs = append(newIDs, generated)
	}

	var produced []domain.ElementRef
	split := false
	changed := e.scenes.UpdateActiveScene(func(s *domain.Scene) {
		for n, ref := range refs {
			trackIndex, elementIndex := findElement(s.Tracks, ref)
			if trackIndex < 0 {
				continue
			}

			element := s.Tracks[trackIndex].Elements[elementIndex]
			left, right, ok := domain.SplitElement(element, splitTime)
			if !ok {
				continue
			}
			right.ID = newIDs[n]

			elements := s.Tracks[trackIndex].Elements
			switch retain {
			case RetainLeft:
				elements[elementIndex] = left
			case RetainRight:
				elements[elementIndex] = right
			default:
				elements[elementIndex] = left
				elements = append(elements, right)
				s.Tracks[trackIndex].Elements = elements
			}

			split = true
			if retain == RetainBoth || retain == RetainLeft {
				produced = append(produced, domain.ElementRef{TrackID: ref.TrackID, ElementID: left.ID})
			}
			if retain == RetainBoth || retain == RetainRight {
				produced = append(produced, domain.ElementRef{TrackID: ref.TrackID, ElementID: right.ID})
			}
		}
	})
	if !changed || !split {
		return nil
	}

	e.notifier.Notify()
	return produced
}

func findElement(tracks []domain.Track, ref domain.ElementRef) (trackIndex, elementIndex int) {
	for i := range tracks {
		if tracks[i].ID != ref.TrackID {
			continue
		}
		for j := range tracks[i].Elements {
			if tracks[i].Elements[j].ID == ref.ElementID {
				return i, j
			}
		}
		return -1, -1
	}
	return -1, -1
}

// findAutoTrack returns the first structurally matching track for the
// element, or -1 when the scene has none.
func findAutoTrack(tracks []domain.Track, element domain.Element) int {
	for i := range tracks {
		if tracks[i].Accepts(element.Type) {
			return i
		}
	}
	return -1
}

func countTracks(tracks []domain.Track, trackType domain.TrackType) int {
	count := 0
	for _, track := range tracks {
		if track.Type == trackType {
			count++
		}
	}
	return count
}

func trackTitle(trackType domain.TrackType) string {
	switch trackType {
	case domain.TrackTypeVideo:
		return "Video"
	case domain.TrackTypeAudio:
		return "Audio"
	case domain.TrackTypeText:
		return "Text"
	case domain.TrackTypeSticker:
		return "Sticker"
	default:
		return "Track"
	}
}
