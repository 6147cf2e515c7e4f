package tagstore

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

// createTestStore creates an in-memory store for testing
func createTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := Open(":memory:")
	if err != nil {
		t.Fatalf("failed to create test store: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})
	return store
}

var (
	cher    = EntityRef{Kind: KindArtist, Artist: "Cher"}
	believe = EntityRef{Kind: KindAlbum, Artist: "Cher", Name: "Believe"}
)

func TestOpen_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tags.db")
	store, err := Open(path)
	if err != nil {
		t.Fatalf("failed to open file store: %v", err)
	}
	ctx := context.Background()
	if err := store.SetDesired(ctx, cher, []string{"pop"}); err != nil {
		t.Fatalf("SetDesired: %v", err)
	}
	_ = store.Close()

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("failed to reopen store: %v", err)
	}
	defer func() { _ = reopened.Close() }()

	tags, err := reopened.Desired(ctx, cher)
	if err != nil || !reflect.DeepEqual(tags, []string{"pop"}) {
		t.Errorf("Desired after reopen = %v (%v)", tags, err)
	}
}

func TestStore_SetDesired(t *testing.T) {
	store := createTestStore(t)
	ctx := context.Background()

	if err := store.SetDesired(ctx, cher, []string{"pop", "diva", "pop"}); err != nil {
		t.Fatalf("SetDesired: %v", err)
	}
	tags, err := store.Desired(ctx, cher)
	if err != nil {
		t.Fatalf("Desired: %v", err)
	}
	if want := []string{"pop", "diva"}; !reflect.DeepEqual(tags, want) {
		t.Errorf("Desired = %v, want %v", tags, want)
	}

	// Replacing keeps only the new set.
	if err := store.SetDesired(ctx, cher, []string{"disco"}); err != nil {
		t.Fatalf("SetDesired: %v", err)
	}
	tags, _ = store.Desired(ctx, cher)
	if want := []string{"disco"}; !reflect.DeepEqual(tags, want) {
		t.Errorf("Desired after replace = %v, want %v", tags, want)
	}

	// Case is significant in both refs and tags.
	if _, err := store.Desired(ctx, EntityRef{Kind: KindArtist, Artist: "cher"}); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for a differently cased ref, got %v", err)
	}
}

func TestStore_EmptyDesiredSet(t *testing.T) {
	store := createTestStore(t)
	ctx := context.Background()

	if err := store.SetDesired(ctx, believe, nil); err != nil {
		t.Fatalf("SetDesired: %v", err)
	}
	tags, err := store.Desired(ctx, believe)
	if err != nil {
		t.Fatalf("Desired: %v", err)
	}
	if len(tags) != 0 {
		t.Errorf("expected no tags, got %v", tags)
	}
}

func TestStore_ListAndRemove(t *testing.T) {
	store := createTestStore(t)
	ctx := context.Background()

	if err := store.SetDesired(ctx, believe, nil); err != nil {
		t.Fatalf("SetDesired: %v", err)
	}
	if err := store.SetDesired(ctx, cher, []string{"pop", "diva"}); err != nil {
		t.Fatalf("SetDesired: %v", err)
	}

	entries, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Ref != believe || len(entries[0].Tags) != 0 {
		t.Errorf("unexpected first entry %+v", entries[0])
	}
	if entries[1].Ref != cher || !reflect.DeepEqual(entries[1].Tags, []string{"pop", "diva"}) {
		t.Errorf("unexpected second entry %+v", entries[1])
	}

	if err := store.Remove(ctx, cher); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if err := store.Remove(ctx, cher); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound on second remove, got %v", err)
	}
	entries, _ = store.List(ctx)
	if len(entries) != 1 {
		t.Errorf("expected 1 entry after remove, got %d", len(entries))
	}
}

func TestStore_Runs(t *testing.T) {
	store := createTestStore(t)
	ctx := context.Background()
	base := time.Unix(1700000000, 0)

	older := NewRun(base)
	older.FinishedAt = base.Add(time.Second)
	older.Results = []Result{{Ref: cher, Added: []string{"diva"}, Removed: []string{"rock"}}}

	newer := NewRun(base.Add(time.Hour))
	newer.FinishedAt = base.Add(time.Hour + time.Second)
	newer.Results = []Result{
		{Ref: cher},
		{Ref: believe, Error: "lastfm: error 8: Operation failed"},
	}

	for _, r := range []Run{older, newer} {
		if err := store.RecordRun(ctx, r); err != nil {
			t.Fatalf("RecordRun: %v", err)
		}
	}

	runs, err := store.Runs(ctx, 0)
	if err != nil {
		t.Fatalf("Runs: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].ID != newer.ID {
		t.Errorf("expected newest run first")
	}
	if runs[0].Failed() != 1 {
		t.Errorf("expected 1 failure, got %d", runs[0].Failed())
	}
	got := runs[1].Results[0]
	if !reflect.DeepEqual(got.Added, []string{"diva"}) || !reflect.DeepEqual(got.Removed, []string{"rock"}) {
		t.Errorf("unexpected result %+v", got)
	}

	limited, err := store.Runs(ctx, 1)
	if err != nil || len(limited) != 1 {
		t.Errorf("Runs(1) = %d runs (%v)", len(limited), err)
	}
}

func TestStore_PruneRuns(t *testing.T) {
	store := createTestStore(t)
	ctx := context.Background()
	now := time.Unix(1700000000, 0)
	store.now = func() time.Time { return now }

	old := NewRun(now.Add(-48 * time.Hour))
	old.Results = []Result{{Ref: cher}}
	recent := NewRun(now.Add(-time.Hour))
	for _, r := range []Run{old, recent} {
		if err := store.RecordRun(ctx, r); err != nil {
			t.Fatalf("RecordRun: %v", err)
		}
	}

	deleted, err := store.PruneRuns(ctx, 24*time.Hour)
	if err != nil {
		t.Fatalf("PruneRuns: %v", err)
	}
	if deleted != 1 {
		t.Errorf("expected 1 deleted run, got %d", deleted)
	}
	runs, _ := store.Runs(ctx, 0)
	if len(runs) != 1 || runs[0].ID != recent.ID {
		t.Errorf("unexpected remaining runs %+v", runs)
	}
}

func TestParseKind(t *testing.T) {
	for _, s := range []string{"artist", "album", "track"} {
		if _, err := ParseKind(s); err != nil {
			t.Errorf("ParseKind(%q): %v", s, err)
		}
	}
	if _, err := ParseKind("tag"); err == nil {
		t.Error("expected an error for tag")
	}
}
