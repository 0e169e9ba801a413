package bbolt

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/louisbranch/clipdeck/internal/project/domain"
	"github.com/louisbranch/clipdeck/internal/storage"
	timelinedomain "github.com/louisbranch/clipdeck/internal/timeline/domain"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "clipdeck.db")
	store, err := Open(path)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func testProject(t *testing.T, name string) domain.Project {
	t.Helper()
	fixedTime := time.Date(2026, 4, 1, 8, 0, 0, 0, time.UTC)
	var n int
	project, err := domain.NewProject(name, func() time.Time { return fixedTime }, func() (string, error) {
		n++
		return fmt.Sprintf("%s-id-%d", name, n), nil
	})
	if err != nil {
		t.Fatalf("new project: %v", err)
	}
	return project
}

func TestStoreSaveLoadRoundTrip(t *testing.T) {
	store := openTestStore(t)

	project := testProject(t, "demo")
	project.Scenes[0].Bookmarks = []float64{2, 7.5}
	project.Scenes[0].Tracks[0].Elements = append(project.Scenes[0].Tracks[0].Elements, timelinedomain.Element{
		ID:        "el-1",
		Name:      "Clip",
		Type:      timelinedomain.ElementTypeVideo,
		Duration:  5,
		StartTime: 1,
		TrimStart: 0.5,
		Transform: timelinedomain.IdentityTransform(),
		Opacity:   1,
	})

	if err := store.SaveProject(context.Background(), project); err != nil {
		t.Fatalf("save project: %v", err)
	}

	loaded, err := store.LoadProject(context.Background(), project.Metadata.ID)
	if err != nil {
		t.Fatalf("load project: %v", err)
	}
	if loaded.Metadata.ID != project.Metadata.ID || loaded.Metadata.Name != project.Metadata.Name {
		t.Fatalf("expected metadata preserved, got %+v", loaded.Metadata)
	}
	if !loaded.Metadata.CreatedAt.Equal(project.Metadata.CreatedAt) {
		t.Fatalf("expected created at preserved by instant, got %v", loaded.Metadata.CreatedAt)
	}
	if len(loaded.Scenes) != 1 || len(loaded.Scenes[0].Tracks) != 1 {
		t.Fatalf("expected scene tree preserved, got %+v", loaded.Scenes)
	}
	if len(loaded.Scenes[0].Bookmarks) != 2 || loaded.Scenes[0].Bookmarks[1] != 7.5 {
		t.Fatalf("expected bookmarks preserved, got %v", loaded.Scenes[0].Bookmarks)
	}
	element := loaded.Scenes[0].Tracks[0].Elements[0]
	if element.TrimStart != 0.5 || element.Type != timelinedomain.ElementTypeVideo {
		t.Fatalf("expected element preserved, got %+v", element)
	}
}

func TestStoreLoadNotFound(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.LoadProject(context.Background(), "missing"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestStoreMetadataIndexOrdersNewestFirst(t *testing.T) {
	store := openTestStore(t)

	first := testProject(t, "first")
	second := testProject(t, "second")
	if err := store.SaveProject(context.Background(), first); err != nil {
		t.Fatalf("save first: %v", err)
	}
	if err := store.SaveProject(context.Background(), second); err != nil {
		t.Fatalf("save second: %v", err)
	}
	// Re-saving must not duplicate or reorder the index entry.
	if err := store.SaveProject(context.Background(), first); err != nil {
		t.Fatalf("re-save first: %v", err)
	}

	entries, err := store.LoadAllProjectsMetadata(context.Background())
	if err != nil {
		t.Fatalf("load metadata: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected two entries, got %d", len(entries))
	}
	if entries[0].ID != second.Metadata.ID || entries[1].ID != first.Metadata.ID {
		t.Fatalf("expected newest-first index order, got %s,%s", entries[0].ID, entries[1].ID)
	}
}

func TestStoreDeleteProject(t *testing.T) {
	store := openTestStore(t)

	project := testProject(t, "doomed")
	if err := store.SaveProject(context.Background(), project); err != nil {
		t.Fatalf("save project: %v", err)
	}

	if err := store.DeleteProject(context.Background(), project.Metadata.ID); err != nil {
		t.Fatalf("delete project: %v", err)
	}
	if _, err := store.LoadProject(context.Background(), project.Metadata.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
	entries, err := store.LoadAllProjectsMetadata(context.Background())
	if err != nil {
		t.Fatalf("load metadata: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected empty listing after delete, got %d entries", len(entries))
	}

	// Deleting an unknown id is tolerated.
	if err := store.DeleteProject(context.Background(), "missing"); err != nil {
		t.Fatalf("delete missing project: %v", err)
	}
}

func TestStorePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clipdeck.db")
	store, err := Open(path)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}

	project := testProject(t, "durable")
	if err := store.SaveProject(context.Background(), project); err != nil {
		t.Fatalf("save project: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close store: %v", err)
	}

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("reopen store: %v", err)
	}
	defer reopened.Close()

	loaded, err := reopened.LoadProject(context.Background(), project.Metadata.ID)
	if err != nil {
		t.Fatalf("load after reopen: %v", err)
	}
	if loaded.Metadata.Name != "durable" {
		t.Fatalf("expected project to survive reopen, got %+v", loaded.Metadata)
	}
}
