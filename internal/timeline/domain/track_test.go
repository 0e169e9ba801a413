package domain

import (
	"errors"
	"testing"
)

func TestNewTrackDefaults(t *testing.T) {
	tests := []struct {
		name      string
		trackType TrackType
	}{
		{name: "video", trackType: TrackTypeVideo},
		{name: "text", trackType: TrackTypeText},
		{name: "audio", trackType: TrackTypeAudio},
		{name: "sticker", trackType: TrackTypeSticker},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			track, err := NewTrack(tt.trackType, "Track 1", "trk-1")
			if err != nil {
				t.Fatalf("new track: %v", err)
			}
			if track.ID != "trk-1" {
				t.Fatalf("expected id trk-1, got %q", track.ID)
			}
			if track.Type != tt.trackType {
				t.Fatalf("expected type %q, got %q", tt.trackType, track.Type)
			}
			if track.IsMain || track.Muted || track.Hidden {
				t.Fatal("expected variant flags to default to false")
			}
			if track.Elements == nil || len(track.Elements) != 0 {
				t.Fatal("expected empty, non-nil element list")
			}
		})
	}
}

func TestNewTrackRejectsUnknownType(t *testing.T) {
	if _, err := NewTrack("subtitle", "Track", "trk-1"); !errors.Is(err, ErrInvalidTrackType) {
		t.Fatalf("expected invalid track type error, got %v", err)
	}
}

func TestTrackTypeForMapping(t *testing.T) {
	tests := []struct {
		elementType ElementType
		want        TrackType
	}{
		{elementType: ElementTypeVideo, want: TrackTypeVideo},
		{elementType: ElementTypeImage, want: TrackTypeVideo},
		{elementType: ElementTypeAudio, want: TrackTypeAudio},
		{elementType: ElementTypeText, want: TrackTypeText},
		{elementType: ElementTypeSticker, want: TrackTypeSticker},
	}

	for _, tt := range tests {
		got, err := TrackTypeFor(tt.elementType)
		if err != nil {
			t.Fatalf("track type for %q: %v", tt.elementType, err)
		}
		if got != tt.want {
			t.Fatalf("expected %q for %q, got %q", tt.want, tt.elementType, got)
		}
	}

	if _, err := TrackTypeFor("hologram"); !errors.Is(err, ErrInvalidElementType) {
		t.Fatalf("expected invalid element type error, got %v", err)
	}
}

func TestTrackAccepts(t *testing.T) {
	video, err := NewTrack(TrackTypeVideo, "Video", "trk-1")
	if err != nil {
		t.Fatalf("new track: %v", err)
	}
	if !video.Accepts(ElementTypeVideo) || !video.Accepts(ElementTypeImage) {
		t.Fatal("expected video track to accept video and image elements")
	}
	if video.Accepts(ElementTypeAudio) || video.Accepts(ElementTypeText) || video.Accepts(ElementTypeSticker) {
		t.Fatal("expected video track to reject incompatible element types")
	}
	if video.Accepts("hologram") {
		t.Fatal("expected unknown element type to be rejected")
	}
}

func TestTrackDuration(t *testing.T) {
	track := Track{Type: TrackTypeVideo, Elements: []Element{
		{StartTime: 0, Duration: 3},
		{StartTime: 10, Duration: 2.5},
		{StartTime: 4, Duration: 1},
	}}
	if got := track.Duration(); got != 12.5 {
		t.Fatalf("expected duration 12.5, got %v", got)
	}

	if got := (Track{}).Duration(); got != 0 {
		t.Fatalf("expected empty track duration 0, got %v", got)
	}
}
