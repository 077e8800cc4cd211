package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"

	"conquest_ai/internal/config"
	"conquest_ai/internal/grid"
	"conquest_ai/internal/replay"
	"conquest_ai/internal/snapshot"
	"conquest_ai/internal/strategy"
	"conquest_ai/internal/util"
)

func main() {
	var cfgDir, snapPath, out, replayDir string
	var player, turnsLeft, n, workers int
	var seed int64
	var verbose bool
	flag.StringVar(&cfgDir, "config", "", "config dir with strategy.yaml and optional match.yaml (empty = defaults)")
	flag.StringVar(&snapPath, "snapshot", "", "grid snapshot (.json or .json.zst)")
	flag.StringVar(&out, "out", "moves.json", "output file (single) or summary file (batch)")
	flag.StringVar(&replayDir, "replay", "", "directory for the replay log (empty = none)")
	flag.IntVar(&player, "player", 0, "player id (overrides match.yaml and the snapshot)")
	flag.IntVar(&turnsLeft, "turns-left", 0, "turns left as seen by the planned turn (0 = from snapshot or horizon)")
	flag.IntVar(&n, "n", 1, "number of runs; n>1 uses seeded random tie-breaking")
	flag.IntVar(&workers, "workers", 8, "batch workers")
	flag.Int64Var(&seed, "seed", 12345, "base seed for batch runs")
	flag.BoolVar(&verbose, "v", false, "debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})))

	if err := run(cfgDir, snapPath, out, replayDir, player, turnsLeft, n, workers, seed); err != nil {
		slog.Error("simsvc failed", "error", err)
		os.Exit(1)
	}
}

type job struct {
	cfg       config.StrategyConfig
	g         *grid.Grid
	player    int
	turnsLeft int
}

func run(cfgDir, snapPath, out, replayDir string, player, turnsLeft, n, workers int, seed int64) error {
	if n > 1 && workers < 1 {
		return fmt.Errorf("batch needs at least one worker, got %d", workers)
	}
	sc, mc, err := loadConfig(cfgDir)
	if err != nil {
		return err
	}
	if snapPath == "" {
		snapPath = mc.Snapshot
	}
	if snapPath == "" {
		return errors.New("missing -snapshot")
	}
	if replayDir == "" {
		replayDir = mc.ReplayDir
	}
	snap, err := snapshot.Read(snapPath)
	if err != nil {
		return fmt.Errorf("read snapshot: %w", err)
	}
	g, err := snap.Grid()
	if err != nil {
		return err
	}

	j := job{cfg: *sc, g: g, player: firstPositive(player, mc.PlayerID, snap.PlayerID),
		turnsLeft: firstPositive(turnsLeft, mc.TurnsLeft, snap.TurnsLeft, sc.TurnHorizon-1)}
	if j.player <= 0 {
		return errors.New("no player id: pass -player or set it in match.yaml or the snapshot")
	}
	slog.Info("snapshot loaded", "path", snapPath, "width", g.Width, "height", g.Height,
		"player", j.player, "units", len(g.Owned(j.player)), "turns_left", j.turnsLeft)

	var rw *replay.Writer
	runID := uuid.NewString()
	if replayDir != "" {
		if rw, err = replay.Create(replayDir, runID); err != nil {
			return fmt.Errorf("replay: %w", err)
		}
		defer func() {
			if err := rw.Close(); err != nil {
				slog.Error("close replay", "error", err)
			}
		}()
	}

	if n <= 1 {
		rec := plan(j, nil, rw != nil)
		rec.RunID = runID
		if rw != nil {
			if err := rw.Write(rec); err != nil {
				return fmt.Errorf("replay: %w", err)
			}
		}
		if err := os.WriteFile(out, strategy.MarshalPretty(rec.Moves), 0o644); err != nil {
			return err
		}
		slog.Info("turn planned", "moves", len(rec.Moves), "forfeit", rec.Forfeit, "out", out)
		return nil
	}

	baseline := plan(j, strategy.StableTieBreak{}, false)
	byLoc := map[grid.Location]grid.Direction{}
	for _, m := range baseline.Moves {
		byLoc[m.Loc] = m.Dir
	}

	type stat struct {
		Forfeits  int
		Diverged  int
		ByDir     map[string]int
		PerRunDiv []int
	}
	st := stat{ByDir: map[string]int{}, PerRunDiv: make([]int, n)}
	var mu sync.Mutex
	wg := sync.WaitGroup{}
	jobs := make(chan int, n)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				tb := strategy.RandomTieBreak{Rng: util.New(util.Derive(seed, i))}
				rec := plan(j, tb, false)
				rec.RunID = fmt.Sprintf("%s/%d", runID, i)
				if rw != nil {
					if err := rw.Write(rec); err != nil {
						slog.Error("replay write", "run", i, "error", err)
					}
				}

				div := 0
				for _, m := range rec.Moves {
					if byLoc[m.Loc] != m.Dir {
						div++
					}
				}
				mu.Lock()
				if rec.Forfeit {
					st.Forfeits++
				}
				st.Diverged += div
				st.PerRunDiv[i] = div
				for _, m := range rec.Moves {
					st.ByDir[m.Dir.String()]++
				}
				mu.Unlock()
			}
		}()
	}
	for i := 0; i < n; i++ {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	units := len(baseline.Moves)
	share := func(m map[string]int) map[string]any {
		res := map[string]any{}
		total := 0
		for _, v := range m {
			total += v
		}
		for k, v := range m {
			ratio := 0.0
			if total > 0 {
				ratio = float64(v) / float64(total)
			}
			res[k] = map[string]any{"total": v, "ratio": ratio}
		}
		return res
	}
	avgDiv := 0.0
	if units > 0 {
		avgDiv = float64(st.Diverged) / float64(n*units)
	}
	summary := map[string]any{
		"run_id":           runID,
		"runs":             n,
		"units":            units,
		"forfeits":         st.Forfeits,
		"avg_divergence":   avgDiv,
		"divergence":       st.PerRunDiv,
		"by_direction":     share(st.ByDir),
		"baseline_forfeit": baseline.Forfeit,
	}
	if err := os.WriteFile(out, strategy.MarshalPretty(summary), 0o644); err != nil {
		return err
	}
	slog.Info("batch done", "runs", n, "avg_divergence", avgDiv, "out", filepath.Base(out))
	return nil
}

// plan runs a single turn. A nil tie breaker falls back to the configured one.
func plan(j job, tb strategy.TieBreaker, trace bool) replay.Record {
	s := strategy.NewStageTwo(j.cfg, tb)
	s.SetTurnsLeft(j.turnsLeft + 1)
	rec := replay.Record{PlayerID: j.player, TurnsLeft: j.turnsLeft}
	if trace {
		s.Emit = func(ev strategy.Event) {
			slog.Debug("event", "type", ev.Type, "payload", ev.Payload)
			rec.Events = append(rec.Events, ev)
		}
	}
	moves, err := s.PlanTurn(j.g, j.player)
	rec.Moves = moves
	if err != nil {
		rec.Forfeit = true
		rec.Error = err.Error()
	}
	return rec
}

func loadConfig(dir string) (*config.StrategyConfig, *config.MatchConfig, error) {
	if dir == "" {
		sc := config.DefaultStrategy()
		return &sc, &config.MatchConfig{}, nil
	}
	sc, mc, err := config.LoadAll(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("config dir %s: %w", dir, err)
	}
	return sc, mc, nil
}

func firstPositive(vs ...int) int {
	for _, v := range vs {
		if v > 0 {
			return v
		}
	}
	return 0
}
