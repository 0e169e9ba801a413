package session

import (
	"context"
	"testing"

	"github.com/louisbranch/clipdeck/internal/media"
	"github.com/louisbranch/clipdeck/internal/storage/memory"
	"github.com/louisbranch/clipdeck/internal/timeline"
	"github.com/louisbranch/clipdeck/internal/timeline/domain"
)

func TestSessionAggregatesManagerNotifications(t *testing.T) {
	s := New(memory.NewStore())
	defer s.Close()

	var notified int
	s.Changes().Subscribe(func() { notified++ })

	if _, err := s.Projects.CreateNewProject(context.Background(), "Demo"); err != nil {
		t.Fatalf("CreateNewProject: %v", err)
	}
	if notified == 0 {
		t.Fatal("expected project mutation to reach the aggregated channel")
	}

	before := notified
	s.Playback.Seek(3)
	if notified != before+1 {
		t.Fatalf("expected playback seek to notify once, got %d extra", notified-before)
	}

	before = notified
	if trackID := s.Timeline.AddTrack(domain.TrackTypeAudio); trackID == "" {
		t.Fatal("expected track added on active scene")
	}
	if notified <= before {
		t.Fatal("expected timeline mutation to reach the aggregated channel")
	}
}

func TestSessionManagersShareSceneRegistry(t *testing.T) {
	s := New(memory.NewStore())
	defer s.Close()

	if _, err := s.Projects.CreateNewProject(context.Background(), "Demo"); err != nil {
		t.Fatalf("CreateNewProject: %v", err)
	}

	element := domain.Element{
		Type:      domain.ElementTypeVideo,
		Duration:  6,
		Transform: domain.IdentityTransform(),
		Opacity:   1,
	}
	if _, ok := s.Timeline.InsertElement(element, timeline.PlaceAuto()); !ok {
		t.Fatal("expected element inserted")
	}

	if err := s.Projects.SaveCurrentProject(context.Background()); err != nil {
		t.Fatalf("SaveCurrentProject: %v", err)
	}

	active, ok := s.Projects.ActiveProject()
	if !ok {
		t.Fatal("expected active project")
	}
	if active.Metadata.Duration != 6 {
		t.Fatalf("expected saved duration 6, got %v", active.Metadata.Duration)
	}
}

func TestCloseDetachesSession(t *testing.T) {
	s := New(memory.NewStore())

	var notified int
	s.Changes().Subscribe(func() { notified++ })

	s.Playback.Play()
	if notified != 1 {
		t.Fatalf("expected one notification, got %d", notified)
	}

	s.Close()
	if s.Playback.Playing() {
		t.Fatal("expected playback paused on close")
	}

	// Manager mutations no longer propagate after close. Pause from
	// Close itself may have notified; capture the post-close count.
	after := notified
	s.Media.Add(media.Asset{ID: "asset-1", Type: media.AssetTypeImage})
	if notified != after {
		t.Fatalf("expected no propagation after close, got %d extra", notified-after)
	}

	// Close is idempotent.
	s.Close()
}
