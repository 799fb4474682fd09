// Package history records completed renders.
//
// Every pipeline run that produces an artifact appends a [Record]: which
// input, which settings, how many leaves, whether the leaf cap cut the run
// short, and how long it took. The CLI lists records with
// `quadart history`; the HTTP API serves them at GET /v1/history.
//
// Backends:
//   - [FileStore]: JSON lines file, the CLI default
//   - [MemoryStore]: process-local, for tests and `serve` without Mongo
//   - [MongoStore]: shared store for server deployments
package history

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/quadart/pkg/quadtree"
)

// Record describes one completed render.
type Record struct {
	ID        string          `json:"id" bson:"_id"`
	CreatedAt time.Time       `json:"created_at" bson:"created_at"`
	Source    string          `json:"source,omitempty" bson:"source,omitempty"` // path, URL, or "upload"
	InputHash string          `json:"input_hash" bson:"input_hash"`
	Width     int             `json:"width" bson:"width"`
	Height    int             `json:"height" bson:"height"`
	Format    string          `json:"format" bson:"format"`
	Config    quadtree.Config `json:"config" bson:"config"`
	Leaves    int             `json:"leaves" bson:"leaves"`
	Truncated bool            `json:"truncated,omitempty" bson:"truncated"`
	CacheHit  bool            `json:"cache_hit,omitempty" bson:"cache_hit"`
	Duration  time.Duration   `json:"duration" bson:"duration"`
}

// NewRecord returns a record with a fresh ID and the current time.
func NewRecord() Record {
	return Record{ID: uuid.NewString(), CreatedAt: time.Now().UTC()}
}

// Store persists records.
type Store interface {
	// Add appends a record.
	Add(ctx context.Context, r Record) error

	// List returns up to limit records, newest first. A limit of zero or
	// less returns everything.
	List(ctx context.Context, limit int) ([]Record, error)

	// Clear removes all records.
	Clear(ctx context.Context) error

	Close() error
}

// DefaultListLimit is used when callers do not ask for a specific count.
const DefaultListLimit = 20
