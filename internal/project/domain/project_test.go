package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	timelinedomain "github.com/louisbranch/clipdeck/internal/timeline/domain"
)

func sequentialIDs(prefix string) func() (string, error) {
	var n int
	return func() (string, error) {
		n++
		return fmt.Sprintf("%s-%d", prefix, n), nil
	}
}

func TestNewProject(t *testing.T) {
	fixedTime := time.Date(2026, 2, 2, 15, 30, 0, 0, time.UTC)
	project, err := NewProject("  Demo  ", func() time.Time { return fixedTime }, sequentialIDs("id"))
	if err != nil {
		t.Fatalf("new project: %v", err)
	}

	if project.Metadata.Name != "Demo" {
		t.Fatalf("expected trimmed name, got %q", project.Metadata.Name)
	}
	if project.Metadata.Duration != 0 {
		t.Fatalf("expected zero duration, got %v", project.Metadata.Duration)
	}
	if !project.Metadata.CreatedAt.Equal(fixedTime) || !project.Metadata.UpdatedAt.Equal(fixedTime) {
		t.Fatal("expected timestamps to match fixed time")
	}
	if project.Version != SchemaVersion {
		t.Fatalf("expected schema version %d, got %d", SchemaVersion, project.Version)
	}

	if len(project.Scenes) != 1 {
		t.Fatalf("expected one scene, got %d", len(project.Scenes))
	}
	scene := project.Scenes[0]
	if !scene.IsMain {
		t.Fatal("expected main scene")
	}
	if project.CurrentSceneID != scene.ID {
		t.Fatalf("expected current scene %q, got %q", scene.ID, project.CurrentSceneID)
	}
	if len(scene.Tracks) != 1 {
		t.Fatalf("expected one track, got %d", len(scene.Tracks))
	}
	track := scene.Tracks[0]
	if track.Type != timelinedomain.TrackTypeVideo || !track.IsMain {
		t.Fatalf("expected main video track, got type %q isMain %v", track.Type, track.IsMain)
	}
	if len(track.Elements) != 0 {
		t.Fatalf("expected zero elements, got %d", len(track.Elements))
	}

	settings := project.Settings
	if settings.FPS != 30 {
		t.Fatalf("expected 30 fps, got %v", settings.FPS)
	}
	if settings.CanvasSize.Width != 1080 || settings.CanvasSize.Height != 1920 {
		t.Fatalf("expected portrait canvas, got %+v", settings.CanvasSize)
	}
	if settings.Background.Kind != BackgroundColor || settings.Background.Color == "" {
		t.Fatalf("expected solid color background, got %+v", settings.Background)
	}
}

func TestNewProjectRequiresName(t *testing.T) {
	if _, err := NewProject("   ", nil, nil); !errors.Is(err, ErrEmptyProjectName) {
		t.Fatalf("expected empty name error, got %v", err)
	}
}

func TestProjectDuration(t *testing.T) {
	project := Project{Scenes: []timelinedomain.Scene{
		{Tracks: []timelinedomain.Track{
			{Elements: []timelinedomain.Element{{StartTime: 0, Duration: 4}}},
		}},
		{Tracks: []timelinedomain.Track{
			{Elements: []timelinedomain.Element{{StartTime: 3, Duration: 9}}},
		}},
	}}
	if got := project.Duration(); got != 12 {
		t.Fatalf("expected duration 12, got %v", got)
	}
	if got := (Project{}).Duration(); got != 0 {
		t.Fatalf("expected empty project duration 0, got %v", got)
	}
}

func TestProjectJSONRoundTrip(t *testing.T) {
	fixedTime := time.Date(2026, 2, 2, 15, 30, 0, 0, time.UTC)
	project, err := NewProject("Round Trip", func() time.Time { return fixedTime }, sequentialIDs("id"))
	if err != nil {
		t.Fatalf("new project: %v", err)
	}
	project.Scenes[0].Bookmarks = []float64{1.5, 4}
	project.Scenes[0].Tracks[0].Elements = append(project.Scenes[0].Tracks[0].Elements, timelinedomain.Element{
		ID:        "el-1",
		Name:      "Clip",
		Type:      timelinedomain.ElementTypeVideo,
		Duration:  6,
		StartTime: 0,
		Transform: timelinedomain.IdentityTransform(),
		Opacity:   1,
	})

	payload, err := json.Marshal(project)
	if err != nil {
		t.Fatalf("marshal project: %v", err)
	}

	var decoded Project
	if err := json.Unmarshal(payload, &decoded); err != nil {
		t.Fatalf("unmarshal project: %v", err)
	}
	decoded.Normalize()

	if decoded.Metadata.ID != project.Metadata.ID || decoded.Metadata.Name != project.Metadata.Name {
		t.Fatalf("expected metadata preserved, got %+v", decoded.Metadata)
	}
	// Dates are compared by instant, not string representation.
	if !decoded.Metadata.CreatedAt.Equal(project.Metadata.CreatedAt) {
		t.Fatalf("expected created at %v, got %v", project.Metadata.CreatedAt, decoded.Metadata.CreatedAt)
	}
	if !decoded.Scenes[0].UpdatedAt.Equal(project.Scenes[0].UpdatedAt) {
		t.Fatalf("expected scene updated at preserved")
	}
	if decoded.CurrentSceneID != project.CurrentSceneID {
		t.Fatalf("expected current scene preserved, got %q", decoded.CurrentSceneID)
	}
	if len(decoded.Scenes[0].Bookmarks) != 2 || decoded.Scenes[0].Bookmarks[0] != 1.5 {
		t.Fatalf("expected bookmarks preserved, got %v", decoded.Scenes[0].Bookmarks)
	}
	element := decoded.Scenes[0].Tracks[0].Elements[0]
	if element != project.Scenes[0].Tracks[0].Elements[0] {
		t.Fatalf("expected element preserved, got %+v", element)
	}
	if decoded.Settings != project.Settings {
		t.Fatalf("expected settings preserved, got %+v", decoded.Settings)
	}
}

func TestProjectTimestampsSerializeAsISO8601(t *testing.T) {
	fixedTime := time.Date(2026, 2, 2, 15, 30, 0, 0, time.UTC)
	project, err := NewProject("Stamps", func() time.Time { return fixedTime }, sequentialIDs("id"))
	if err != nil {
		t.Fatalf("new project: %v", err)
	}

	payload, err := json.Marshal(project)
	if err != nil {
		t.Fatalf("marshal project: %v", err)
	}

	var raw struct {
		Metadata struct {
			CreatedAt string `json:"createdAt"`
		} `json:"metadata"`
	}
	if err := json.Unmarshal(payload, &raw); err != nil {
		t.Fatalf("unmarshal raw: %v", err)
	}
	if raw.Metadata.CreatedAt != "2026-02-02T15:30:00Z" {
		t.Fatalf("expected ISO-8601 timestamp, got %q", raw.Metadata.CreatedAt)
	}
}
