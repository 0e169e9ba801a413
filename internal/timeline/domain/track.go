package domain

import (
	"errors"
	"fmt"
)

// TrackType discriminates the track variants.
type TrackType string

const (
	// TrackTypeVideo holds video and image elements.
	TrackTypeVideo TrackType = "video"
	// TrackTypeText holds text elements.
	TrackTypeText TrackType = "text"
	// TrackTypeAudio holds audio elements.
	TrackTypeAudio TrackType = "audio"
	// TrackTypeSticker holds sticker elements.
	TrackTypeSticker TrackType = "sticker"
)

// ErrInvalidTrackType indicates an unknown track type value.
var ErrInvalidTrackType = errors.New("track type is invalid")

// Track is a typed lane holding elements of compatible type. Element order
// within Elements has no timing meaning; placement is determined by each
// element's StartTime.
type Track struct {
	ID   string    `json:"id"`
	Name string    `json:"name"`
	Type TrackType `json:"type"`

	// IsMain marks the primary video track. Video only.
	IsMain bool `json:"isMain,omitempty"`
	// Muted silences the whole track. Video and audio only.
	Muted bool `json:"muted,omitempty"`
	// Hidden hides the whole track. Video, text, and sticker only.
	Hidden bool `json:"hidden,omitempty"`

	Elements []Element `json:"elements"`
}

// NewTrack creates an empty track of the requested variant with its
// variant-specific flags at their defaults.
func NewTrack(trackType TrackType, name, trackID string) (Track, error) {
	switch trackType {
	case TrackTypeVideo, TrackTypeText, TrackTypeAudio, TrackTypeSticker:
	default:
		return Track{}, fmt.Errorf("%w: %q", ErrInvalidTrackType, trackType)
	}
	return Track{
		ID:       trackID,
		Name:     name,
		Type:     trackType,
		Elements: []Element{},
	}, nil
}

// Accepts reports whether the track can hold an element of the given type.
func (t Track) Accepts(elementType ElementType) bool {
	target, err := TrackTypeFor(elementType)
	if err != nil {
		return false
	}
	return t.Type == target
}

// TrackTypeFor maps an element type to the track variant that carries it.
func TrackTypeFor(elementType ElementType) (TrackType, error) {
	switch elementType {
	case ElementTypeVideo, ElementTypeImage:
		return TrackTypeVideo, nil
	case ElementTypeAudio:
		return TrackTypeAudio, nil
	case ElementTypeText:
		return TrackTypeText, nil
	case ElementTypeSticker:
		return TrackTypeSticker, nil
	default:
		return "", fmt.Errorf("%w: no track for element type %q", ErrInvalidElementType, elementType)
	}
}

// Duration returns the max end time across the track's elements, or 0 for
// an empty track.
func (t Track) Duration() float64 {
	var max float64
	for _, element := range t.Elements {
		if end := element.End(); end > max {
			max = end
		}
	}
	return max
}
