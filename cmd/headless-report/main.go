package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/Garsondee/Ballistic-Sense/internal/ballistics"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

type runStats struct {
	runIndex int
	runID    uuid.UUID
	seed     int64

	firstResolvedTick int
	firstHitTick      int
	firstContactTick  int
	firstDownTick     int

	stats        ballistics.Stats
	contactNew   int
	contactLost  int
	enemiesAlive int
	liveBullets  int
	downed       map[string]struct{}
}

type reportConfig struct {
	runs     int
	ticks    int
	seedBase int64
	seedStep int64
	delta    float64
	scenario string
	parallel int
}

func main() {
	var rc reportConfig

	flag.IntVar(&rc.runs, "runs", 5, "number of headless simulation runs")
	flag.IntVar(&rc.ticks, "ticks", 1800, "ticks per run")
	flag.Int64Var(&rc.seedBase, "seed-base", 42, "base RNG seed for run 1")
	flag.Int64Var(&rc.seedStep, "seed-step", 1, "seed increment between runs")
	flag.Float64Var(&rc.delta, "delta", 1.0/60.0, "seconds per tick")
	flag.StringVar(&rc.scenario, "scenario", "firing-range",
		"scenario name ("+strings.Join(ballistics.ScenarioNames(), ", ")+")")
	flag.IntVar(&rc.parallel, "parallel", 4, "max runs simulated at once")
	flag.Parse()

	if err := rc.validate(); err != nil {
		fmt.Printf("error: %v\n", err)
		os.Exit(2)
	}

	fmt.Printf("=== Headless Ballistics Report ===\n")
	fmt.Printf("scenario=%s runs=%d ticks=%d delta=%.4f seed_base=%d seed_step=%d\n\n",
		rc.scenario, rc.runs, rc.ticks, rc.delta, rc.seedBase, rc.seedStep)

	all, err := runAll(rc)
	if err != nil {
		fmt.Printf("error: %v\n", err)
		os.Exit(1)
	}
	for _, rs := range all {
		printRun(rs)
	}
	printAggregate(all)
}

func (rc reportConfig) validate() error {
	if rc.runs <= 0 {
		return fmt.Errorf("-runs must be > 0")
	}
	if rc.ticks <= 0 {
		return fmt.Errorf("-ticks must be > 0")
	}
	if rc.delta <= 0 {
		return fmt.Errorf("-delta must be > 0")
	}
	if rc.parallel <= 0 {
		return fmt.Errorf("-parallel must be > 0")
	}
	if _, ok := ballistics.Scenarios[rc.scenario]; !ok {
		return fmt.Errorf("unsupported scenario %q (supported: %s)",
			rc.scenario, strings.Join(ballistics.ScenarioNames(), ", "))
	}
	return nil
}

// runAll simulates every run, at most rc.parallel at a time. Results are
// returned in run order regardless of completion order.
func runAll(rc reportConfig) ([]runStats, error) {
	all := make([]runStats, rc.runs)
	var eg errgroup.Group
	eg.SetLimit(rc.parallel)
	for i := 0; i < rc.runs; i++ {
		eg.Go(func() error {
			seed := rc.seedBase + int64(i)*rc.seedStep
			rs, err := runOne(rc, i+1, seed)
			if err != nil {
				return fmt.Errorf("run %d (seed=%d): %w", i+1, seed, err)
			}
			all[i] = rs
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return all, nil
}

func runOne(rc reportConfig, runIndex int, seed int64) (runStats, error) {
	cfg := ballistics.DefaultSimConfig()
	cfg.Delta = rc.delta
	ts, err := ballistics.RunScenario(rc.scenario, seed, rc.ticks, cfg)
	if err != nil {
		return runStats{}, err
	}

	entries := ts.SimLog.Entries()
	downed := map[string]struct{}{}
	for _, e := range entries {
		if e.Event == ballistics.EventEnemyDown {
			downed[e.Subject] = struct{}{}
		}
	}

	return runStats{
		runIndex:          runIndex,
		runID:             uuid.New(),
		seed:              seed,
		firstResolvedTick: firstTick(ts.SimLog.Outcomes(ballistics.HitNone)),
		firstHitTick:      ts.SimLog.FirstTick(ballistics.EventHitEnemy),
		firstContactTick:  ts.SimLog.FirstTick(ballistics.EventContactNew),
		firstDownTick:     ts.SimLog.FirstTick(ballistics.EventEnemyDown),
		stats:             ts.World.Stats,
		contactNew:        ts.SimLog.Count(ballistics.EventContactNew),
		contactLost:       ts.SimLog.Count(ballistics.EventContactLost),
		enemiesAlive:      len(ts.World.Enemies),
		liveBullets:       len(ts.World.Bullets),
		downed:            downed,
	}, nil
}

// firstTick returns the tick of the earliest entry, or -1.
func firstTick(entries []ballistics.SimLogEntry) int {
	if len(entries) == 0 {
		return -1
	}
	return entries[0].Tick
}

func printRun(rs runStats) {
	s := rs.stats
	fmt.Printf("--- Run %d (seed=%d id=%s) ---\n", rs.runIndex, rs.seed, rs.runID)
	fmt.Printf("phase_markers: first_resolved=%d first_hit=%d first_contact=%d first_down=%d\n",
		rs.firstResolvedTick, rs.firstHitTick, rs.firstContactTick, rs.firstDownTick)
	fmt.Printf("shots: fired=%d beams=%d hits=%d headshots=%d player_hits=%d accuracy=%.1f%%\n",
		s.Fired, s.Beams, s.Hits(), s.Headshots, s.PlayerHits, s.Accuracy()*100)
	fmt.Printf("misses: wall_stops=%d spent=%d live=%d\n", s.WallStops, s.Spent, rs.liveBullets)
	fmt.Printf("material_events: penetrations=%d bounces=%d\n", s.Penetrations, s.Bounces)
	fmt.Printf("perception: contact_new=%d contact_lost=%d\n", rs.contactNew, rs.contactLost)
	fmt.Printf("enemies: alive=%d down=%d [%s]\n", rs.enemiesAlive, s.EnemiesDown, joinSet(rs.downed))
	fmt.Println()
}

func printAggregate(all []runStats) {
	var total ballistics.Stats
	totalContactNew := 0
	totalContactLost := 0
	hitTicks := make([]int, 0, len(all))
	downTicks := make([]int, 0, len(all))
	downedGlobal := map[string]struct{}{}
	cleared := 0

	for _, rs := range all {
		total.Add(rs.stats)
		totalContactNew += rs.contactNew
		totalContactLost += rs.contactLost
		if rs.firstHitTick >= 0 {
			hitTicks = append(hitTicks, rs.firstHitTick)
		}
		if rs.firstDownTick >= 0 {
			downTicks = append(downTicks, rs.firstDownTick)
		}
		for label := range rs.downed {
			downedGlobal[label] = struct{}{}
		}
		if rs.enemiesAlive == 0 {
			cleared++
		}
	}

	n := len(all)
	fmt.Println("=== Aggregate ===")
	fmt.Printf("runs=%d cleared=%d\n", n, cleared)
	fmt.Printf("avg_per_run: fired=%.1f hits=%.1f headshots=%.1f wall_stops=%.1f spent=%.1f\n",
		avg(total.Fired, n), avg(total.Hits(), n), avg(total.Headshots, n), avg(total.WallStops, n), avg(total.Spent, n))
	fmt.Printf("avg_material_events_per_run: penetrations=%.1f bounces=%.1f\n",
		avg(total.Penetrations, n), avg(total.Bounces, n))
	fmt.Printf("avg_perception_per_run: contact_new=%.1f contact_lost=%.1f\n",
		avg(totalContactNew, n), avg(totalContactLost, n))
	fmt.Printf("phase_marker_avg_ticks: first_hit=%s first_down=%s\n",
		avgTickString(hitTicks), avgTickString(downTicks))
	fmt.Printf("overall_accuracy=%.1f%% headshot_share=%s\n", total.Accuracy()*100, share(total.Headshots, total.Hits()))
	fmt.Printf("downed_labels=%d [%s]\n", len(downedGlobal), joinSet(downedGlobal))
}

func avg(sum int, n int) float64 {
	if n <= 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

func share(part, whole int) string {
	if whole <= 0 {
		return "n/a"
	}
	return fmt.Sprintf("%.1f%%", float64(part)/float64(whole)*100)
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
