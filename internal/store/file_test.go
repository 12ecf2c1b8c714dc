package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rahulansharma682/fitlog-cloud-computing/internal/workout"
)

func testRecord(id string, created time.Time) workout.Record {
	return workout.Record{ID: id, Exercise: "Squat", CreatedAt: created}
}

func TestFileStorePutGetRoundtrip(t *testing.T) {
	st, err := NewFile(t.TempDir(), nil)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	ctx := context.Background()

	want := testRecord("w1", time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC))
	if err := st.Put(ctx, want); err != nil {
		t.Fatalf("put: %v", err)
	}
	got, err := st.Get(ctx, "w1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.ID != want.ID || got.Exercise != want.Exercise || !got.CreatedAt.Equal(want.CreatedAt) {
		t.Fatalf("roundtrip mismatch: got %+v want %+v", got, want)
	}
}

func TestFileStoreGetMissingIsNotFound(t *testing.T) {
	st, err := NewFile(t.TempDir(), nil)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	_, err = st.Get(context.Background(), "nope")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestFileStoreListInsertionOrder(t *testing.T) {
	st, err := NewFile(t.TempDir(), nil)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	ctx := context.Background()

	base := time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)
	// Ids deliberately out of lexical order relative to creation time.
	for i, id := range []string{"zzz", "aaa", "mmm"} {
		if err := st.Put(ctx, testRecord(id, base.Add(time.Duration(i)*time.Minute))); err != nil {
			t.Fatalf("put %s: %v", id, err)
		}
	}

	recs, err := st.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(recs) != 3 {
		t.Fatalf("expected 3 records, got %d", len(recs))
	}
	for i, want := range []string{"zzz", "aaa", "mmm"} {
		if recs[i].ID != want {
			t.Fatalf("position %d: got %s want %s", i, recs[i].ID, want)
		}
	}
}

func TestFileStoreListSkipsCorruptFile(t *testing.T) {
	dir := t.TempDir()
	st, err := NewFile(dir, nil)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	ctx := context.Background()

	if err := st.Put(ctx, testRecord("good", time.Now().UTC())); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "bad.json"), []byte("{corrupt"), 0o644); err != nil {
		t.Fatalf("write corrupt file: %v", err)
	}

	recs, err := st.List(ctx)
	if err != nil {
		t.Fatalf("list must not fail on a corrupt file: %v", err)
	}
	if len(recs) != 1 || recs[0].ID != "good" {
		t.Fatalf("expected only the readable record, got %+v", recs)
	}
}

func TestFileStoreDeleteIsIdempotent(t *testing.T) {
	st, err := NewFile(t.TempDir(), nil)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	ctx := context.Background()

	if err := st.Put(ctx, testRecord("w1", time.Now().UTC())); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := st.Delete(ctx, "w1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := st.Delete(ctx, "w1"); err != nil {
		t.Fatalf("second delete must succeed: %v", err)
	}
	if _, err := st.Get(ctx, "w1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestFileStoreSurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	st, err := NewFile(dir, nil)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	ctx := context.Background()
	if err := st.Put(ctx, testRecord("w1", time.Now().UTC())); err != nil {
		t.Fatalf("put: %v", err)
	}

	reopened, err := NewFile(dir, nil)
	if err != nil {
		t.Fatalf("reopen store: %v", err)
	}
	if _, err := reopened.Get(ctx, "w1"); err != nil {
		t.Fatalf("record lost across reopen: %v", err)
	}
}
