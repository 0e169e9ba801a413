package media

import "testing"

func TestAddKeepsCallerID(t *testing.T) {
	registry := NewRegistry()

	got := registry.Add(Asset{ID: "asset-1", Name: "clip.mp4", Type: AssetTypeVideo, URI: "file:///clip.mp4"})
	if got != "asset-1" {
		t.Fatalf("expected caller id kept, got %q", got)
	}

	asset, ok := registry.Get("asset-1")
	if !ok || asset.Name != "clip.mp4" {
		t.Fatalf("expected stored asset, got %+v ok=%v", asset, ok)
	}
}

func TestAddGeneratesID(t *testing.T) {
	registry := NewRegistry()
	registry.idGenerator = func() (string, error) { return "generated-1", nil }

	got := registry.Add(Asset{Name: "photo.png", Type: AssetTypeImage, URI: "file:///photo.png"})
	if got != "generated-1" {
		t.Fatalf("expected generated id, got %q", got)
	}
}

func TestListInsertionOrder(t *testing.T) {
	registry := NewRegistry()
	registry.Add(Asset{ID: "a", Type: AssetTypeVideo})
	registry.Add(Asset{ID: "b", Type: AssetTypeAudio})
	registry.Add(Asset{ID: "c", Type: AssetTypeImage})

	assets := registry.List()
	if len(assets) != 3 {
		t.Fatalf("expected three assets, got %d", len(assets))
	}
	for i, want := range []string{"a", "b", "c"} {
		if assets[i].ID != want {
			t.Fatalf("expected %q at index %d, got %q", want, i, assets[i].ID)
		}
	}
}

func TestRemove(t *testing.T) {
	registry := NewRegistry()
	registry.Add(Asset{ID: "a", Type: AssetTypeVideo})
	registry.Add(Asset{ID: "b", Type: AssetTypeAudio})

	var notified int
	registry.Changes().Subscribe(func() { notified++ })

	registry.Remove("a")
	if _, ok := registry.Get("a"); ok {
		t.Fatal("expected asset removed")
	}
	if notified != 1 {
		t.Fatalf("expected one notification, got %d", notified)
	}

	registry.Remove("missing")
	if notified != 1 {
		t.Fatalf("expected no notification for unknown id, got %d", notified)
	}
}

func TestClear(t *testing.T) {
	registry := NewRegistry()
	registry.Add(Asset{ID: "a", Type: AssetTypeVideo})

	var notified int
	registry.Changes().Subscribe(func() { notified++ })

	registry.Clear()
	if len(registry.List()) != 0 {
		t.Fatal("expected empty registry after clear")
	}
	if notified != 1 {
		t.Fatalf("expected one notification, got %d", notified)
	}

	// Clearing an empty registry stays silent.
	registry.Clear()
	if notified != 1 {
		t.Fatalf("expected no notification for empty clear, got %d", notified)
	}
}
