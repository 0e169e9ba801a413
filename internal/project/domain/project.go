// Package domain holds the project envelope: metadata, settings, and the
// persisted scene tree. The live scene list for the active project is owned
// by the scene registry; the envelope re-assembles it on save and hands it
// back on load.
package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/louisbranch/clipdeck/internal/id"
	timelinedomain "github.com/louisbranch/clipdeck/internal/timeline/domain"
)

// SchemaVersion is the persisted project schema version.
const SchemaVersion = 1

// BackgroundKind discriminates canvas background variants.
type BackgroundKind string

const (
	// BackgroundColor is a solid color background.
	BackgroundColor BackgroundKind = "color"
	// BackgroundBlur blurs the canvas content behind the frame.
	BackgroundBlur BackgroundKind = "blur"
)

// ErrEmptyProjectName indicates a missing project name.
var ErrEmptyProjectName = errors.New("project name is required")

// Background describes the canvas background. Color is set for the color
// kind only.
type Background struct {
	Kind  BackgroundKind `json:"kind"`
	Color string         `json:"color,omitempty"`
}

// CanvasSize holds canvas dimensions in pixels.
type CanvasSize struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Settings holds per-project editor settings.
type Settings struct {
	FPS                float64     `json:"fps"`
	CanvasSize         CanvasSize  `json:"canvasSize"`
	OriginalCanvasSize *CanvasSize `json:"originalCanvasSize,omitempty"`
	Background         Background  `json:"background"`
}

// DefaultSettings returns the settings applied to new projects: 30 fps on
// a 1080x1920 portrait canvas over a solid black background.
func DefaultSettings() Settings {
	return Settings{
		FPS:        30,
		CanvasSize: CanvasSize{Width: 1080, Height: 1920},
		Background: Background{Kind: BackgroundColor, Color: "#000000"},
	}
}

// Metadata is the lightweight project summary persisted and indexed
// separately from full project bodies, so listing projects never loads
// full timelines.
type Metadata struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Duration  float64   `json:"duration"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Project is the root persisted unit.
type Project struct {
	Metadata       Metadata                `json:"metadata"`
	Scenes         []timelinedomain.Scene  `json:"scenes"`
	CurrentSceneID string                  `json:"currentSceneId"`
	Settings       Settings                `json:"settings"`
	Version        int                     `json:"version"`
}

// NewProject creates a project with one main scene holding one main video
// track, default settings, and a generated ID.
func NewProject(name string, now func() time.Time, idGenerator func() (string, error)) (Project, error) {
	if now == nil {
		now = time.Now
	}
	if idGenerator == nil {
		idGenerator = id.NewID
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return Project{}, ErrEmptyProjectName
	}

	projectID, err := idGenerator()
	if err != nil {
		return Project{}, fmt.Errorf("generate project id: %w", err)
	}

	scene, err := timelinedomain.NewScene("Main scene", true, now, idGenerator)
	if err != nil {
		return Project{}, fmt.Errorf("create main scene: %w", err)
	}

	trackID, err := idGenerator()
	if err != nil {
		return Project{}, fmt.Errorf("generate track id: %w", err)
	}
	track, err := timelinedomain.NewTrack(timelinedomain.TrackTypeVideo, "Video 1", trackID)
	if err != nil {
		return Project{}, fmt.Errorf("create main track: %w", err)
	}
	track.IsMain = true
	scene.Tracks = append(scene.Tracks, track)

	createdAt := now().UTC()
	return Project{
		Metadata: Metadata{
			ID:        projectID,
			Name:      name,
			Duration:  0,
			CreatedAt: createdAt,
			UpdatedAt: createdAt,
		},
		Scenes:         []timelinedomain.Scene{scene},
		CurrentSceneID: scene.ID,
		Settings:       DefaultSettings(),
		Version:        SchemaVersion,
	}, nil
}

// Duration returns the max end time across all scenes, tracks, and
// elements.
func (p Project) Duration() float64 {
	var max float64
	for _, scene := range p.Scenes {
		if d := scene.Duration(); d > max {
			max = d
		}
	}
	return max
}

// Normalize repairs a project decoded from an older persisted record.
func (p *Project) Normalize() {
	if p.Scenes == nil {
		p.Scenes = []timelinedomain.Scene{}
	}
	for i := range p.Scenes {
		p.Scenes[i].Normalize()
	}
}
