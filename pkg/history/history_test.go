package history

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/matzehuels/quadart/pkg/quadtree"
)

func record(leaves int) Record {
	r := NewRecord()
	r.InputHash = "abc"
	r.Width, r.Height = 64, 48
	r.Format = "png"
	r.Config = quadtree.DefaultConfig()
	r.Leaves = leaves
	r.Duration = 15 * time.Millisecond
	return r
}

func TestNewRecord(t *testing.T) {
	a, b := NewRecord(), NewRecord()
	if a.ID == "" || a.ID == b.ID {
		t.Errorf("IDs not unique: %q %q", a.ID, b.ID)
	}
	if a.CreatedAt.IsZero() || a.CreatedAt.Location() != time.UTC {
		t.Errorf("CreatedAt = %v, want UTC now", a.CreatedAt)
	}
}

// testStore runs the shared Store contract against s.
func testStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	got, err := s.List(ctx, 0)
	if err != nil {
		t.Fatalf("List empty: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("List empty = %v, want empty non-nil slice", got)
	}

	for i := 1; i <= 3; i++ {
		if err := s.Add(ctx, record(i)); err != nil {
			t.Fatalf("Add: %v", err)
		}
	}

	got, err = s.List(ctx, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("List returned %d records, want 3", len(got))
	}
	for i, want := range []int{3, 2, 1} {
		if got[i].Leaves != want {
			t.Errorf("record %d has %d leaves, want %d (newest first)", i, got[i].Leaves, want)
		}
	}
	if got[0].Config != quadtree.DefaultConfig() {
		t.Errorf("Config = %+v, want defaults", got[0].Config)
	}

	got, _ = s.List(ctx, 2)
	if len(got) != 2 || got[0].Leaves != 3 {
		t.Errorf("List(2) = %d records", len(got))
	}

	if err := s.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	got, _ = s.List(ctx, 0)
	if len(got) != 0 {
		t.Errorf("List after Clear = %d records", len(got))
	}
	if err := s.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
}

func TestMemoryStore(t *testing.T) {
	testStore(t, NewMemoryStore())
}

func TestFileStore(t *testing.T) {
	s, err := NewFileStore(filepath.Join(t.TempDir(), "state", "history.jsonl"))
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	testStore(t, s)
}

func TestFileStoreSkipsCorruptLines(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "history.jsonl")
	s, _ := NewFileStore(path)

	if err := s.Add(ctx, record(1)); err != nil {
		t.Fatal(err)
	}
	f, _ := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0600)
	f.WriteString("{truncated\n")
	f.Close()
	if err := s.Add(ctx, record(2)); err != nil {
		t.Fatal(err)
	}

	got, err := s.List(ctx, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Errorf("List = %d records, want 2", len(got))
	}
}

func TestFileStoreDefaultPath(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_STATE_HOME", dir)

	s, err := NewFileStore("")
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(dir, "quadart", "history.jsonl"); s.Path() != want {
		t.Errorf("Path = %q, want %q", s.Path(), want)
	}
}

func TestNewMongoStoreBadURI(t *testing.T) {
	if _, err := NewMongoStore(context.Background(), "not-a-mongo-uri", ""); err == nil {
		t.Error("NewMongoStore should reject a malformed URI")
	}
}
