// Package media holds the imported assets of the active project:
// videos, images, and audio files available for placement on the
// timeline.
package media

import (
	"sync"

	"github.com/louisbranch/clipdeck/internal/id"
	"github.com/louisbranch/clipdeck/internal/notify"
)

// AssetType discriminates the kinds of importable media.
type AssetType string

const (
	// AssetTypeImage is a still image.
	AssetTypeImage AssetType = "image"
	// AssetTypeVideo is a video file.
	AssetTypeVideo AssetType = "video"
	// AssetTypeAudio is an audio file.
	AssetTypeAudio AssetType = "audio"
)

// Asset is one imported media item. Width, Height, Duration,
// ThumbnailURI, and Size are filled in when known; zero values mean
// unknown.
type Asset struct {
	ID   string    `json:"id"`
	Name string    `json:"name"`
	Type AssetType `json:"type"`
	URI  string    `json:"uri"`

	Width        int     `json:"width,omitempty"`
	Height       int     `json:"height,omitempty"`
	Duration     float64 `json:"duration,omitempty"`
	ThumbnailURI string  `json:"thumbnailUri,omitempty"`
	Size         int64   `json:"size,omitempty"`
}

// Registry stores the media assets of the active project in insertion
// order.
type Registry struct {
	mu     sync.Mutex
	assets []Asset

	notifier    *notify.Notifier
	idGenerator func() (string, error)
}

// NewRegistry creates an empty media registry.
func NewRegistry() *Registry {
	return &Registry{
		notifier:    notify.NewNotifier(),
		idGenerator: id.NewID,
	}
}

// Changes exposes the registry's change notifier.
func (r *Registry) Changes() *notify.Notifier {
	return r.notifier
}

// Add stores an asset and returns its id. A caller-provided id is kept;
// an empty id is replaced with a generated one. Returns "" when id
// generation fails.
func (r *Registry) Add(asset Asset) string {
	if r == nil {
		return ""
	}

	if asset.ID == "" {
		generated, err := r.idGenerator()
		if err != nil {
			return ""
		}
		asset.ID = generated
	}

	r.mu.Lock()
	r.assets = append(r.assets, asset)
	r.mu.Unlock()

	r.notifier.Notify()
	return asset.ID
}

// Remove deletes the asset with the given id. Unknown ids are ignored.
func (r *Registry) Remove(assetID string) {
	if r == nil {
		return
	}

	r.mu.Lock()
	removed := false
	for i, asset := range r.assets {
		if asset.ID == assetID {
			r.assets = append(r.assets[:i], r.assets[i+1:]...)
			removed = true
			break
		}
	}
	r.mu.Unlock()

	if removed {
		r.notifier.Notify()
	}
}

// Get returns the asset with the given id.
func (r *Registry) Get(assetID string) (Asset, bool) {
	if r == nil {
		return Asset{}, false
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, asset := range r.assets {
		if asset.ID == assetID {
			return asset, true
		}
	}
	return Asset{}, false
}

// List returns the assets in insertion order.
func (r *Registry) List() []Asset {
	if r == nil {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Asset, len(r.assets))
	copy(out, r.assets)
	return out
}

// Clear removes all assets.
func (r *Registry) Clear() {
	if r == nil {
		return
	}

	r.mu.Lock()
	empty := len(r.assets) == 0
	r.assets = nil
	r.mu.Unlock()

	if !empty {
		r.notifier.Notify()
	}
}
