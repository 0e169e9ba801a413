package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/louisbranch/clipdeck/internal/id"
)

// ErrEmptySceneName indicates a missing scene name.
var ErrEmptySceneName = errors.New("scene name is required")

// Scene is a named, independently addressable collection of tracks. A
// project has at least one scene; exactly one is active for editing at a
// time.
type Scene struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	IsMain bool   `json:"isMain"`

	Tracks []Track `json:"tracks"`

	// Bookmarks holds timestamps in seconds, sorted ascending with no
	// duplicates.
	Bookmarks []float64 `json:"bookmarks"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewScene creates an empty scene with a generated ID and timestamps.
func NewScene(name string, isMain bool, now func() time.Time, idGenerator func() (string, error)) (Scene, error) {
	if now == nil {
		now = time.Now
	}
	if idGenerator == nil {
		idGenerator = id.NewID
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return Scene{}, ErrEmptySceneName
	}

	sceneID, err := idGenerator()
	if err != nil {
		return Scene{}, fmt.Errorf("generate scene id: %w", err)
	}

	createdAt := now().UTC()
	return Scene{
		ID:        sceneID,
		Name:      name,
		IsMain:    isMain,
		Tracks:    []Track{},
		Bookmarks: []float64{},
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}, nil
}

// Duration returns the max end time across all tracks and elements, or 0
// for an empty scene.
func (s Scene) Duration() float64 {
	var max float64
	for _, track := range s.Tracks {
		if d := track.Duration(); d > max {
			max = d
		}
	}
	return max
}

// Normalize repairs a scene decoded from an older persisted record. Absent
// track and bookmark lists become empty, and bookmarks are re-sorted and
// deduplicated.
func (s *Scene) Normalize() {
	if s.Tracks == nil {
		s.Tracks = []Track{}
	}
	for i := range s.Tracks {
		if s.Tracks[i].Elements == nil {
			s.Tracks[i].Elements = []Element{}
		}
	}
	if s.Bookmarks == nil {
		s.Bookmarks = []float64{}
		return
	}
	s.Bookmarks = normalizeBookmarks(s.Bookmarks)
}

// ToggleBookmark removes an exact-value match of t when present, otherwise
// inserts it keeping the sequence sorted ascending. Membership uses exact
// floating-point equality; callers must pass the same representation used
// to insert.
func ToggleBookmark(bookmarks []float64, t float64) []float64 {
	for i, existing := range bookmarks {
		if existing == t {
			out := make([]float64, 0, len(bookmarks)-1)
			out = append(out, bookmarks[:i]...)
			return append(out, bookmarks[i+1:]...)
		}
	}
	out := make([]float64, 0, len(bookmarks)+1)
	out = append(out, bookmarks...)
	out = append(out, t)
	sort.Float64s(out)
	return out
}

// IsBookmarked reports whether t is an exact member of bookmarks.
func IsBookmarked(bookmarks []float64, t float64) bool {
	for _, existing := range bookmarks {
		if existing == t {
			return true
		}
	}
	return false
}

func normalizeBookmarks(bookmarks []float64) []float64 {
	out := make([]float64, 0, len(bookmarks))
	for _, t := range bookmarks {
		if !IsBookmarked(out, t) {
			out = append(out, t)
		}
	}
	sort.Float64s(out)
	return out
}
