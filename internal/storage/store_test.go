package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/san-kum/mlscenes/internal/anim"
)

func TestStoreSaveLoad(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	series := []anim.Series{
		{Name: "data", X: []float64{0, 0.5, 1}, Y: []float64{1, 2.25, -3}},
		{Name: "degree 1", X: []float64{0, 1}, Y: []float64{0.1, 0.2}},
	}
	meta := RunMetadata{
		Scene:    "overfitting",
		Class:    "OverfittingAnimation",
		Width:    1920,
		Height:   1080,
		FPS:      30,
		Frames:   465,
		Duration: 15.5,
		Format:   "mp4",
	}

	runID, err := st.Save(meta, series)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if runID == "" {
		t.Error("expected non-empty run id")
	}

	loaded, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.Class != "OverfittingAnimation" {
		t.Errorf("expected class OverfittingAnimation, got %q", loaded.Class)
	}
	if loaded.Frames != 465 || loaded.ID != runID {
		t.Errorf("unexpected metadata %+v", loaded)
	}

	got, err := st.LoadSeries(runID)
	if err != nil {
		t.Fatalf("load series failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 series, got %d", len(got))
	}
	if got[0].Name != "data" || len(got[0].X) != 3 || got[0].Y[1] != 2.25 {
		t.Errorf("unexpected first series %+v", got[0])
	}
	if got[1].Name != "degree 1" || got[1].Y[1] != 0.2 {
		t.Errorf("unexpected second series %+v", got[1])
	}
}

func TestStoreUniqueIDs(t *testing.T) {
	st := New(t.TempDir())
	ts := time.Unix(1700000000, 0)
	a, err := st.Save(RunMetadata{Scene: "losses", Timestamp: ts}, nil)
	if err != nil {
		t.Fatal(err)
	}
	b, err := st.Save(RunMetadata{Scene: "losses", Timestamp: ts}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if a == b {
		t.Errorf("expected distinct ids, both %q", a)
	}
}

func TestStoreList(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list on empty store failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no runs, got %d", len(runs))
	}

	old := time.Unix(1700000000, 0)
	if _, err := st.Save(RunMetadata{Scene: "losses", Timestamp: old}, nil); err != nil {
		t.Fatal(err)
	}
	if _, err := st.Save(RunMetadata{Scene: "overfitting", Timestamp: old.Add(time.Hour)}, nil); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Join(tmpDir, "junk"), 0755); err != nil {
		t.Fatal(err)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].Scene != "overfitting" {
		t.Errorf("expected newest first, got %s", runs[0].Scene)
	}
}
