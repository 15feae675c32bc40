// Package gallery provides persistent storage for placed scenes.
//
// A gallery entry pairs a scene with lightweight display metadata so the
// serve mode can list, fetch and delete previously built spirals. Two
// backends are provided:
//   - memory: In-memory storage for development/testing
//   - mongo: MongoDB-backed storage for production deployments
//
// # Usage
//
// Create a store:
//
//	// Development
//	store := gallery.NewMemoryStore()
//
//	// Production
//	store, err := gallery.NewMongoStore(ctx, gallery.MongoConfig{
//	    URI:      "mongodb://localhost:27017",
//	    Database: "glasspiral",
//	})
//
// Save and retrieve entries:
//
//	entry := gallery.NewEntry("demo trace", sc)
//	if err := store.Put(ctx, entry); err != nil {
//	    return err
//	}
//	entry, err := store.Get(ctx, entry.ID)
package gallery

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/glasspiral/glasspiral/pkg/scene"
)

// ErrNotFound is returned when an entry does not exist.
var ErrNotFound = errors.New("not found")

// Entry is a stored scene with display metadata.
type Entry struct {
	ID        string      `json:"id" bson:"_id"`
	Title     string      `json:"title" bson:"title"`
	StepCount int         `json:"step_count" bson:"step_count"`
	CreatedAt time.Time   `json:"created_at" bson:"created_at"`
	Scene     scene.Scene `json:"scene" bson:"scene"`
}

// NewEntry creates an entry with a fresh UUID and the current time.
func NewEntry(title string, sc scene.Scene) Entry {
	return Entry{
		ID:        uuid.NewString(),
		Title:     title,
		StepCount: sc.StepCount,
		CreatedAt: time.Now().UTC(),
		Scene:     sc,
	}
}

// Summary is a listing row without the scene payload.
type Summary struct {
	ID        string    `json:"id" bson:"_id"`
	Title     string    `json:"title" bson:"title"`
	StepCount int       `json:"step_count" bson:"step_count"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// Summarize strips the scene payload from an entry.
func (e Entry) Summarize() Summary {
	return Summary{
		ID:        e.ID,
		Title:     e.Title,
		StepCount: e.StepCount,
		CreatedAt: e.CreatedAt,
	}
}

// Store is the interface for gallery storage backends.
type Store interface {
	// Get retrieves an entry by ID. Returns ErrNotFound if it doesn't exist.
	Get(ctx context.Context, id string) (Entry, error)

	// Put stores an entry, replacing any entry with the same ID.
	Put(ctx context.Context, entry Entry) error

	// List returns summaries of all entries, newest first.
	List(ctx context.Context) ([]Summary, error)

	// Delete removes an entry. Deleting a missing entry is not an error.
	Delete(ctx context.Context, id string) error

	// Close releases backend resources.
	Close(ctx context.Context) error
}
