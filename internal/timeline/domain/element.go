package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ElementType discriminates the timeline element variants.
type ElementType string

const (
	// ElementTypeAudio is a sound clip placed on an audio track.
	ElementTypeAudio ElementType = "audio"
	// ElementTypeVideo is a video clip placed on a video track.
	ElementTypeVideo ElementType = "video"
	// ElementTypeImage is a still image placed on a video track.
	ElementTypeImage ElementType = "image"
	// ElementTypeText is a text overlay placed on a text track.
	ElementTypeText ElementType = "text"
	// ElementTypeSticker is a sticker overlay placed on a sticker track.
	ElementTypeSticker ElementType = "sticker"
)

// AudioSourceKind discriminates where an audio element's media comes from.
type AudioSourceKind string

const (
	// AudioSourceMedia references an asset imported into the project.
	AudioSourceMedia AudioSourceKind = "media"
	// AudioSourceLibrary references a built-in library URL.
	AudioSourceLibrary AudioSourceKind = "library"
)

var (
	// ErrInvalidElementType indicates an unknown element type value.
	ErrInvalidElementType = errors.New("element type is invalid")
	// ErrInvalidDuration indicates a non-positive element duration.
	ErrInvalidDuration = errors.New("element duration must be greater than zero")
	// ErrInvalidStartTime indicates a negative element start time.
	ErrInvalidStartTime = errors.New("element start time must not be negative")
	// ErrInvalidTrimStart indicates a negative trim start offset.
	ErrInvalidTrimStart = errors.New("element trim start must not be negative")
	// ErrInvalidAudioSource indicates a malformed audio source variant.
	ErrInvalidAudioSource = errors.New("audio source is invalid")
)

// AudioSource identifies the media behind an audio element. The two kinds
// are mutually exclusive: a media source carries MediaID and a library
// source carries URL.
type AudioSource struct {
	Kind    AudioSourceKind `json:"kind"`
	MediaID string          `json:"mediaId,omitempty"`
	URL     string          `json:"url,omitempty"`
}

// Validate checks that exactly the fields of the tagged kind are set.
func (s AudioSource) Validate() error {
	switch s.Kind {
	case AudioSourceMedia:
		if strings.TrimSpace(s.MediaID) == "" || s.URL != "" {
			return ErrInvalidAudioSource
		}
	case AudioSourceLibrary:
		if strings.TrimSpace(s.URL) == "" || s.MediaID != "" {
			return ErrInvalidAudioSource
		}
	default:
		return ErrInvalidAudioSource
	}
	return nil
}

// Transform positions a visual element on the canvas.
type Transform struct {
	Scale     float64 `json:"scale"`
	PositionX float64 `json:"positionX"`
	PositionY float64 `json:"positionY"`
	Rotation  float64 `json:"rotation"`
}

// IdentityTransform returns the neutral transform for new visual elements.
func IdentityTransform() Transform {
	return Transform{Scale: 1}
}

// Element is a single timed unit of content placed on a track. Its occupied
// interval on the scene timeline is [StartTime, StartTime+Duration).
// TrimStart is the number of seconds of source media skipped before the
// element's visible start; it is independent of placement in scene time.
type Element struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Type      ElementType `json:"type"`
	Duration  float64     `json:"duration"`
	StartTime float64     `json:"startTime"`
	TrimStart float64     `json:"trimStart"`
	TrimEnd   float64     `json:"trimEnd"`

	// Source is set on audio elements only.
	Source *AudioSource `json:"source,omitempty"`

	// Transform, Opacity, and Hidden apply to visual elements only. Hidden
	// is independent of the owning track's hidden flag.
	Transform Transform `json:"transform"`
	Opacity   float64   `json:"opacity"`
	Hidden    bool      `json:"hidden,omitempty"`
}

// End returns the exclusive end of the element's occupied interval.
func (e Element) End() float64 {
	return e.StartTime + e.Duration
}

// Validate checks the element's structural invariants.
func (e Element) Validate() error {
	switch e.Type {
	case ElementTypeAudio:
		if e.Source == nil {
			return ErrInvalidAudioSource
		}
		if err := e.Source.Validate(); err != nil {
			return err
		}
	case ElementTypeVideo, ElementTypeImage, ElementTypeText, ElementTypeSticker:
		if e.Source != nil {
			return fmt.Errorf("%w: %s elements carry no audio source", ErrInvalidElementType, e.Type)
		}
	default:
		return ErrInvalidElementType
	}
	if e.Duration <= 0 {
		return ErrInvalidDuration
	}
	if e.StartTime < 0 {
		return ErrInvalidStartTime
	}
	if e.TrimStart < 0 {
		return ErrInvalidTrimStart
	}
	return nil
}

// ElementRef addresses one element within one track.
type ElementRef struct {
	TrackID   string
	ElementID string
}

// SplitElement cuts an element at splitTime into a left and a right part.
// The left part keeps the original start and is shortened to end at
// splitTime. The right part starts at splitTime and its TrimStart advances
// by exactly the left part's duration, so the right part keeps pointing at
// the same offset into the source media. Both parts inherit every other
// field, including the element ID; callers that keep both parts must assign
// the right part a fresh ID.
//
// ok is false when splitTime does not fall strictly inside the element's
// occupied interval; edge-exact and out-of-range split times are no-ops.
func SplitElement(element Element, splitTime float64) (left, right Element, ok bool) {
	if splitTime <= element.StartTime || splitTime >= element.End() {
		return Element{}, Element{}, false
	}

	leftDuration := splitTime - element.StartTime

	left = element
	left.Duration = leftDuration

	right = element
	right.StartTime = splitTime
	right.Duration = element.End() - splitTime
	right.TrimStart = element.TrimStart + leftDuration

	return left, right, true
}
