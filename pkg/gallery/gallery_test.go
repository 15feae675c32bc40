package gallery

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/glasspiral/glasspiral/pkg/scene"
	"github.com/glasspiral/glasspiral/pkg/trace"
)

func demoScene(t *testing.T) scene.Scene {
	t.Helper()
	return scene.Build(trace.ExampleTrace(), scene.Options{})
}

func TestNewEntry(t *testing.T) {
	sc := demoScene(t)
	entry := NewEntry("demo", sc)

	if entry.ID == "" {
		t.Error("entry should get a generated ID")
	}
	if entry.Title != "demo" {
		t.Errorf("Title = %q", entry.Title)
	}
	if entry.StepCount != sc.StepCount {
		t.Errorf("StepCount = %d, want %d", entry.StepCount, sc.StepCount)
	}
	if entry.CreatedAt.IsZero() {
		t.Error("CreatedAt should be set")
	}

	other := NewEntry("demo", sc)
	if other.ID == entry.ID {
		t.Error("IDs should be unique per entry")
	}
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	defer store.Close(ctx)

	entry := NewEntry("first", demoScene(t))
	if err := store.Put(ctx, entry); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, err := store.Get(ctx, entry.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Title != "first" {
		t.Errorf("Title = %q, want first", got.Title)
	}
	if len(got.Scene.Buildings) != len(entry.Scene.Buildings) {
		t.Errorf("scene buildings = %d, want %d", len(got.Scene.Buildings), len(entry.Scene.Buildings))
	}
}

func TestMemoryStoreGetMissing(t *testing.T) {
	store := NewMemoryStore()
	_, err := store.Get(context.Background(), "a1b2c3d4-e5f6-4a7b-8c9d-0e1f2a3b4c5d")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Get missing = %v, want ErrNotFound", err)
	}
}

func TestMemoryStoreListNewestFirst(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	sc := demoScene(t)

	old := NewEntry("old", sc)
	old.CreatedAt = time.Now().Add(-time.Hour)
	recent := NewEntry("recent", sc)

	if err := store.Put(ctx, old); err != nil {
		t.Fatal(err)
	}
	if err := store.Put(ctx, recent); err != nil {
		t.Fatal(err)
	}

	summaries, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(summaries) != 2 {
		t.Fatalf("len = %d, want 2", len(summaries))
	}
	if summaries[0].Title != "recent" || summaries[1].Title != "old" {
		t.Errorf("order = [%s, %s], want [recent, old]", summaries[0].Title, summaries[1].Title)
	}
}

func TestMemoryStoreDelete(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	entry := NewEntry("doomed", demoScene(t))
	if err := store.Put(ctx, entry); err != nil {
		t.Fatal(err)
	}
	if err := store.Delete(ctx, entry.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := store.Get(ctx, entry.ID); !errors.Is(err, ErrNotFound) {
		t.Error("entry should be gone after Delete")
	}
	// Deleting again is fine.
	if err := store.Delete(ctx, entry.ID); err != nil {
		t.Errorf("second Delete: %v", err)
	}
}

func TestSummarizeOmitsScene(t *testing.T) {
	entry := NewEntry("demo", demoScene(t))
	sum := entry.Summarize()
	if sum.ID != entry.ID || sum.StepCount != entry.StepCount {
		t.Error("summary should mirror entry metadata")
	}
}
