package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreReopenKeepsData(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	id, err := store.SaveSketch("Catcher", []byte(`{"initialState":{}}`), "sha-1")
	if err != nil {
		t.Fatalf("SaveSketch() failed: %v", err)
	}
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer store.Close()

	if _, err := store.Sketch(id); err != nil {
		t.Errorf("Sketch() after reopen failed: %v", err)
	}
}

func TestSaveAndGetSketch(t *testing.T) {
	store := openTemp(t)

	spec := []byte(`{"initialState":{"score":10},"update":"state.score++;","draw":""}`)
	id, err := store.SaveSketch("Score", spec, "abc123")
	if err != nil {
		t.Fatalf("SaveSketch() failed: %v", err)
	}
	if id == "" {
		t.Fatal("SaveSketch() returned an empty ID")
	}

	sk, err := store.Sketch(id)
	if err != nil {
		t.Fatalf("Sketch() failed: %v", err)
	}
	if sk.Title != "Score" || sk.SourceSHA != "abc123" {
		t.Errorf("Sketch() = %+v", sk)
	}
	if string(sk.SpecJSON) != string(spec) {
		t.Errorf("spec_json = %s, want %s", sk.SpecJSON, spec)
	}
	if sk.CreatedAt.IsZero() {
		t.Error("created_at was not set")
	}
}

func TestSaveSketchDeduplicates(t *testing.T) {
	store := openTemp(t)

	first, err := store.SaveSketch("A", []byte(`{}`), "same")
	if err != nil {
		t.Fatalf("SaveSketch() failed: %v", err)
	}
	second, err := store.SaveSketch("A again", []byte(`{}`), "same")
	if err != nil {
		t.Fatalf("SaveSketch() failed: %v", err)
	}
	if first != second {
		t.Errorf("same program saved twice: %s != %s", first, second)
	}

	other, err := store.SaveSketch("B", []byte(`{}`), "different")
	if err != nil {
		t.Fatalf("SaveSketch() failed: %v", err)
	}
	if other == first {
		t.Error("different programs share an ID")
	}
}

func TestSketchNotFound(t *testing.T) {
	store := openTemp(t)

	_, err := store.Sketch("missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Sketch() error = %v, want ErrNotFound", err)
	}
}

func TestRecordAndListRuns(t *testing.T) {
	store := openTemp(t)

	id, err := store.SaveSketch("Runs", []byte(`{}`), "sha-runs")
	if err != nil {
		t.Fatalf("SaveSketch() failed: %v", err)
	}

	runs := []Run{
		{SketchID: id, Frames: 120},
		{SketchID: id, Frames: 30, FaultKind: "runtime", FaultMessage: "boom"},
		{SketchID: id, Frames: 0, FaultKind: "compile", FaultMessage: "Unexpected token"},
	}
	for _, r := range runs {
		if _, err := store.RecordRun(r); err != nil {
			t.Fatalf("RecordRun() failed: %v", err)
		}
	}

	got, err := store.Runs(id, 2)
	if err != nil {
		t.Fatalf("Runs() failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Runs() returned %d runs, want 2", len(got))
	}
	// Newest first
	if got[0].FaultKind != "compile" || got[1].FaultMessage != "boom" {
		t.Errorf("Runs() order = %+v", got)
	}

	other, err := store.Runs("someone-else", 10)
	if err != nil {
		t.Fatalf("Runs() failed: %v", err)
	}
	if len(other) != 0 {
		t.Errorf("Runs() for another sketch = %+v", other)
	}
}

func TestRecentSketches(t *testing.T) {
	store := openTemp(t)

	quiet, err := store.SaveSketch("Quiet", []byte(`{}`), "sha-quiet")
	if err != nil {
		t.Fatalf("SaveSketch() failed: %v", err)
	}
	busy, err := store.SaveSketch("Busy", []byte(`{}`), "sha-busy")
	if err != nil {
		t.Fatalf("SaveSketch() failed: %v", err)
	}
	for _, r := range []Run{
		{SketchID: busy, Frames: 10},
		{SketchID: busy, Frames: 20, FaultKind: "runtime", FaultMessage: "x"},
	} {
		if _, err := store.RecordRun(r); err != nil {
			t.Fatalf("RecordRun() failed: %v", err)
		}
	}

	list, err := store.RecentSketches(10)
	if err != nil {
		t.Fatalf("RecentSketches() failed: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("RecentSketches() returned %d, want 2", len(list))
	}

	byID := map[string]SketchSummary{}
	for _, s := range list {
		byID[s.ID] = s
	}
	if s := byID[busy]; s.Runs != 2 || s.Faults != 1 || s.LastRun.IsZero() {
		t.Errorf("busy summary = %+v", s)
	}
	if s := byID[quiet]; s.Runs != 0 || s.Faults != 0 || !s.LastRun.IsZero() {
		t.Errorf("quiet summary = %+v", s)
	}
}
