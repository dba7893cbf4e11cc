package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/log"

	"github.com/lyminhthai2009/tank-duel/internal/game"
	"github.com/lyminhthai2009/tank-duel/internal/replay"
)

type runStats struct {
	runIndex int
	seed     int64

	firstShotTick   int
	firstHitTick    int
	firstCraterTick int
	firstRoundTick  int

	report game.MatchReport
	shots  int // recorded by the replay recorder
	rec    *replay.Recorder
}

func main() {
	var runs int
	var ticks int
	var seedBase int64
	var seedStep int64
	var skill int
	var configPath string
	var replayDir string
	var copyReport bool

	flag.IntVar(&runs, "runs", 5, "number of headless matches")
	flag.IntVar(&ticks, "ticks", 60*180, "ticks per match (60 per simulated second)")
	flag.Int64Var(&seedBase, "seed-base", 42, "base RNG seed for run 1")
	flag.Int64Var(&seedStep, "seed-step", 1, "seed increment between runs")
	flag.IntVar(&skill, "skill", 3, "autopilot aiming level for the player side")
	flag.StringVar(&configPath, "config", "", "YAML config overlay")
	flag.StringVar(&replayDir, "replay", "", "directory to write one msgpack replay per run")
	flag.BoolVar(&copyReport, "copy", false, "copy the aggregate report to the clipboard")
	flag.Parse()

	if runs <= 0 {
		fmt.Println("error: -runs must be > 0")
		return
	}
	if ticks <= 0 {
		fmt.Println("error: -ticks must be > 0")
		return
	}
	cfg, err := game.LoadConfig(configPath)
	if err != nil {
		fmt.Printf("error: %v\n", err)
		return
	}
	logger := log.New(io.Discard)

	fmt.Printf("=== Headless Duel Report ===\n")
	fmt.Printf("runs=%d ticks=%d seed_base=%d seed_step=%d skill=%d\n\n", runs, ticks, seedBase, seedStep, skill)

	all := make([]runStats, 0, runs)
	for i := 0; i < runs; i++ {
		seed := seedBase + int64(i)*seedStep
		rs, err := runMatch(cfg, logger, i+1, seed, ticks, skill)
		if err != nil {
			fmt.Printf("error: run %d: %v\n", i+1, err)
			return
		}
		all = append(all, rs)
		printRun(rs)
		if replayDir != "" {
			if err := writeReplay(replayDir, rs); err != nil {
				fmt.Printf("error: %v\n", err)
				return
			}
		}
	}

	agg := aggregate(all)
	fmt.Print(agg)
	if copyReport {
		if err := clipboard.WriteAll(agg); err != nil {
			fmt.Printf("clipboard unavailable: %v\n", err)
		} else {
			fmt.Println("(aggregate copied to clipboard)")
		}
	}
}

// runMatch plays one seeded match with the autopilot on the player side.
func runMatch(cfg game.Config, logger *log.Logger, runIndex int, seed int64, ticks, skill int) (runStats, error) {
	rec := replay.NewRecorder(seed, fmt.Sprintf("run-%d", runIndex))
	m, err := game.NewMatch(cfg,
		game.WithSeed(seed),
		game.WithLogger(logger),
		game.WithStore(&game.MemoryStore{}),
		game.WithShotObserver(rec),
	)
	if err != nil {
		return runStats{}, err
	}
	m.Start()
	pilot := game.NewAutopilot(skill, seed*7919+1)
	for i := 0; i < ticks; i++ {
		if _, err := pilot.Drive(m); err != nil {
			return runStats{}, fmt.Errorf("autopilot at tick %d: %w", m.CurrentTick(), err)
		}
		m.Tick(game.TickDT)
	}

	entries := m.SimLog.Entries()
	return runStats{
		runIndex:        runIndex,
		seed:            seed,
		firstShotTick:   firstTick(entries, "shot", "fire", ""),
		firstHitTick:    firstTick(entries, "impact", "tank", ""),
		firstCraterTick: firstTick(entries, "terrain", "crater", ""),
		firstRoundTick:  firstTick(entries, "round", "end", ""),
		report:          game.BuildReport(m.SimLog),
		shots:           rec.Len(),
		rec:             rec,
	}, nil
}

func writeReplay(dir string, rs runStats) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("replay dir: %w", err)
	}
	path := filepath.Join(dir, fmt.Sprintf("run-%02d-seed-%d.msgpack", rs.runIndex, rs.seed))
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create replay: %w", err)
	}
	defer f.Close()
	if _, err := rs.rec.WriteTo(f); err != nil {
		return err
	}
	return f.Close()
}

func firstTick(entries []game.SimLogEntry, category, key, contains string) int {
	for _, e := range entries {
		if e.Category != category || e.Key != key {
			continue
		}
		if contains == "" || strings.Contains(e.Value, contains) {
			return e.Tick
		}
	}
	return -1
}

func printRun(rs runStats) {
	fmt.Printf("--- Run %d (seed=%d) ---\n", rs.runIndex, rs.seed)
	fmt.Printf("phase_markers: first_shot=%d first_hit=%d first_crater=%d first_round_end=%d\n",
		rs.firstShotTick, rs.firstHitTick, rs.firstCraterTick, rs.firstRoundTick)
	fmt.Print(rs.report.String())
	if stalled, reason := detectStalemate(rs); stalled {
		fmt.Printf("stalemate: %s\n", reason)
	}
	fmt.Println()
}

// detectStalemate flags runs where shells fly but nobody gets anywhere.
func detectStalemate(rs runStats) (bool, string) {
	r := rs.report
	if r.Victories > 0 || r.Defeats > 0 {
		return false, "round_resolved"
	}
	shots := r.Player.Shots + r.Enemy.Shots
	if shots < 6 {
		return false, "too_few_shots"
	}
	hits := r.Player.Hits + r.Enemy.Hits
	if float64(hits)/float64(shots) < 0.1 {
		return true, fmt.Sprintf("low_hit_rate hits=%d shots=%d", hits, shots)
	}
	return true, fmt.Sprintf("no_round_end shots=%d", shots)
}

func aggregate(all []runStats) string {
	var sb strings.Builder
	totalVictories, totalDefeats, totalCraters, totalShots, totalHits := 0, 0, 0, 0, 0
	hitTicks := make([]int, 0, len(all))
	roundTicks := make([]int, 0, len(all))
	stalemates := map[string]struct{}{}
	ammo := map[game.AmmoID]int{}

	for _, rs := range all {
		r := rs.report
		totalVictories += r.Victories
		totalDefeats += r.Defeats
		totalCraters += r.Craters
		totalShots += r.Player.Shots + r.Enemy.Shots
		totalHits += r.Player.Hits + r.Enemy.Hits
		if rs.firstHitTick >= 0 {
			hitTicks = append(hitTicks, rs.firstHitTick)
		}
		if rs.firstRoundTick >= 0 {
			roundTicks = append(roundTicks, rs.firstRoundTick)
		}
		if stalled, _ := detectStalemate(rs); stalled {
			stalemates[fmt.Sprintf("run%d", rs.runIndex)] = struct{}{}
		}
		for id, n := range r.Player.AmmoUsed {
			ammo[id] += n
		}
	}

	fmt.Fprintln(&sb, "=== Aggregate ===")
	fmt.Fprintf(&sb, "runs=%d\n", len(all))
	fmt.Fprintf(&sb, "avg_per_run: victories=%.1f defeats=%.1f craters=%.1f shots=%.1f hits=%.1f\n",
		avg(totalVictories, len(all)), avg(totalDefeats, len(all)), avg(totalCraters, len(all)),
		avg(totalShots, len(all)), avg(totalHits, len(all)))
	fmt.Fprintf(&sb, "phase_marker_avg_ticks: first_hit=%s first_round_end=%s\n",
		avgTickString(hitTicks), avgTickString(roundTicks))
	fmt.Fprintf(&sb, "player_ammo_used: %s\n", formatCounts(ammo))
	fmt.Fprintf(&sb, "stalemates=%d [%s]\n", len(stalemates), joinSet(stalemates))
	return sb.String()
}

func avg(sum int, n int) float64 {
	if n <= 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

func avgTickString(vals []int) string {
	if len(vals) == 0 {
		return "n/a"
	}
	sum := 0
	for _, v := range vals {
		sum += v
	}
	return fmt.Sprintf("%.1f", float64(sum)/float64(len(vals)))
}

func formatCounts(counts map[game.AmmoID]int) string {
	if len(counts) == 0 {
		return "none"
	}
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, string(k))
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%d", k, counts[game.AmmoID(k)])
	}
	return strings.Join(parts, " ")
}

func joinSet(s map[string]struct{}) string {
	if len(s) == 0 {
		return "none"
	}
	labels := make([]string, 0, len(s))
	for k := range s {
		labels = append(labels, k)
	}
	sort.Strings(labels)
	return strings.Join(labels, ",")
}
