package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"conquest_ai/internal/grid"
	"conquest_ai/internal/replay"
	"conquest_ai/internal/snapshot"
	"conquest_ai/internal/strategy"
)

func writeSnapshot(t *testing.T, dir string) string {
	t.Helper()
	g, err := grid.New(6, 4)
	if err != nil {
		t.Fatalf("grid.New: %v", err)
	}
	for i := 0; i < g.Len(); i++ {
		loc := g.LocationOf(i)
		g.Set(loc.X, loc.Y, 0, (i*29)%120, 1+i%4)
	}
	g.Set(1, 1, 1, 200, 3)
	g.Set(2, 1, 1, 90, 2)
	g.Set(1, 2, 1, 40, 4)
	g.Set(4, 3, 2, 60, 2)
	path := filepath.Join(dir, "snap.json.zst")
	if err := snapshot.Write(path, snapshot.FromGrid(g, 1, 250)); err != nil {
		t.Fatalf("snapshot.Write: %v", err)
	}
	return path
}

func TestRunSingleWritesMovesAndReplay(t *testing.T) {
	dir := t.TempDir()
	snap := writeSnapshot(t, dir)
	out := filepath.Join(dir, "moves.json")
	replayDir := filepath.Join(dir, "replays")

	if err := run("", snap, out, replayDir, 0, 0, 1, 1, 1); err != nil {
		t.Fatalf("run: %v", err)
	}
	b, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read out: %v", err)
	}
	var moves []strategy.Move
	if err := json.Unmarshal(b, &moves); err != nil {
		t.Fatalf("decode moves: %v", err)
	}
	if len(moves) != 3 {
		t.Fatalf("moves = %d, want 3", len(moves))
	}

	files, _ := filepath.Glob(filepath.Join(replayDir, "replay-*.jsonl.zst"))
	if len(files) != 1 {
		t.Fatalf("replay files = %v", files)
	}
	records := 0
	err = replay.Read(files[0], func(r replay.Record) error {
		records++
		if r.TurnsLeft != 250 || r.PlayerID != 1 || len(r.Events) == 0 {
			t.Errorf("record = %+v", r)
		}
		return nil
	})
	if err != nil || records != 1 {
		t.Fatalf("replay read: %v, %d records", err, records)
	}
}

func TestRunBatchWritesSummary(t *testing.T) {
	dir := t.TempDir()
	snap := writeSnapshot(t, dir)
	out := filepath.Join(dir, "summary.json")

	if err := run("", snap, out, "", 0, 0, 6, 3, 99); err != nil {
		t.Fatalf("run: %v", err)
	}
	b, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read summary: %v", err)
	}
	var summary struct {
		Runs       int   `json:"runs"`
		Units      int   `json:"units"`
		Forfeits   int   `json:"forfeits"`
		Divergence []int `json:"divergence"`
	}
	if err := json.Unmarshal(b, &summary); err != nil {
		t.Fatalf("decode summary: %v", err)
	}
	if summary.Runs != 6 || summary.Units != 3 || summary.Forfeits != 0 || len(summary.Divergence) != 6 {
		t.Errorf("summary = %+v", summary)
	}
}

// tiedSnapshot is a uniform map, so most units face equal-score candidates.
func tiedSnapshot(t *testing.T, dir string) string {
	t.Helper()
	g, err := grid.New(8, 8)
	if err != nil {
		t.Fatalf("grid.New: %v", err)
	}
	for i := 0; i < g.Len(); i++ {
		loc := g.LocationOf(i)
		g.Set(loc.X, loc.Y, 0, 10, 2)
	}
	for _, loc := range []grid.Location{{X: 2, Y: 2}, {X: 3, Y: 2}, {X: 2, Y: 3}, {X: 5, Y: 5}, {X: 6, Y: 1}} {
		g.Set(loc.X, loc.Y, 1, 100, 2)
	}
	path := filepath.Join(dir, "tied.json")
	if err := snapshot.Write(path, snapshot.FromGrid(g, 1, 300)); err != nil {
		t.Fatalf("snapshot.Write: %v", err)
	}
	return path
}

func TestRunBatchIsReproducible(t *testing.T) {
	dir := t.TempDir()
	snap := tiedSnapshot(t, dir)

	type summary struct {
		AvgDivergence float64                   `json:"avg_divergence"`
		Divergence    []int                     `json:"divergence"`
		ByDirection   map[string]map[string]any `json:"by_direction"`
	}
	var got []summary
	for i, workers := range []int{1, 8, 3} {
		out := filepath.Join(dir, fmt.Sprintf("summary-%d.json", i))
		if err := run("", snap, out, "", 0, 0, 48, workers, 42); err != nil {
			t.Fatalf("run with %d workers: %v", workers, err)
		}
		b, err := os.ReadFile(out)
		if err != nil {
			t.Fatalf("read summary: %v", err)
		}
		var s summary
		if err := json.Unmarshal(b, &s); err != nil {
			t.Fatalf("decode summary: %v", err)
		}
		got = append(got, s)
	}
	for i := 1; i < len(got); i++ {
		if !reflect.DeepEqual(got[0], got[i]) {
			t.Fatalf("batch %d differs from batch 0:\n%+v\n%+v", i, got[i], got[0])
		}
	}
}

func TestRunBatchRejectsZeroWorkers(t *testing.T) {
	dir := t.TempDir()
	snap := writeSnapshot(t, dir)
	out := filepath.Join(dir, "summary.json")
	if err := run("", snap, out, "", 0, 0, 4, 0, 1); err == nil {
		t.Fatal("expected an error with zero workers")
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Errorf("summary written despite the error: %v", err)
	}
}

func TestRunRequiresPlayer(t *testing.T) {
	dir := t.TempDir()
	g, _ := grid.New(2, 2)
	path := filepath.Join(dir, "anon.json")
	if err := snapshot.Write(path, snapshot.FromGrid(g, 0, 0)); err != nil {
		t.Fatalf("snapshot.Write: %v", err)
	}
	if err := run("", path, filepath.Join(dir, "out.json"), "", 0, 0, 1, 1, 1); err == nil {
		t.Fatal("expected an error without a player id")
	}
}

func TestFirstPositive(t *testing.T) {
	if got := firstPositive(0, -2, 5, 9); got != 5 {
		t.Errorf("firstPositive = %d, want 5", got)
	}
	if got := firstPositive(0, 0); got != 0 {
		t.Errorf("firstPositive = %d, want 0", got)
	}
}
