package ballistics

import "math/rand"

// TestSim is a headless simulation harness used by tests and the headless
// report. It drives a World with deterministic seeding and structured
// logging and has no rendering dependency.
type TestSim struct {
	Width   int // cells
	Height  int // cells
	Grid    *Grid
	Palette *Palette
	World   *World
	SimLog  *SimLog
	Config  SimConfig

	rng *rand.Rand
}

// simOptionKind controls the pass in which an option is applied.
type simOptionKind int

const (
	simOptInfra simOptionKind = iota // grid size, palette, seed, verbose, config, applied first
	simOptGrid                       // material edits, applied after the grid is built
	simOptActor                      // player and enemies, applied after the world exists
)

// SimOption is a builder function applied to a TestSim during construction.
type SimOption struct {
	kind simOptionKind
	fn   func(*TestSim)
}

// WithGridSize sets the level dimensions in cells.
func WithGridSize(w, h int) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.Width = w
		ts.Height = h
	}}
}

// WithSeed sets the RNG seed for deterministic runs.
func WithSeed(seed int64) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.rng = rand.New(rand.NewSource(seed)) // #nosec G404 -- test harness
	}}
}

// WithVerbose enables per-tick verbose logging.
func WithVerbose(v bool) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.SimLog = NewSimLog(v)
	}}
}

// WithConfig replaces the default simulation tuning.
func WithConfig(cfg SimConfig) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.Config = cfg
	}}
}

// WithPalette replaces the default palette.
func WithPalette(p *Palette) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.Palette = p
	}}
}

// WithMaterial paints one cell.
func WithMaterial(x, y int, m Material) SimOption {
	return SimOption{simOptGrid, func(ts *TestSim) {
		ts.Grid.Insert(x, y, m)
	}}
}

// WithWall paints one Wall cell.
func WithWall(x, y int) SimOption {
	return WithMaterial(x, y, MaterialWall)
}

// WithMaterialRect paints the inclusive cell rectangle (x0,y0)-(x1,y1).
func WithMaterialRect(x0, y0, x1, y1 int, m Material) SimOption {
	return SimOption{simOptGrid, func(ts *TestSim) {
		for y := y0; y <= y1; y++ {
			for x := x0; x <= x1; x++ {
				ts.Grid.Insert(x, y, m)
			}
		}
	}}
}

// WithPlayer places the player at pos armed with w (nil for unarmed).
func WithPlayer(pos Vec2, w *Weapon) SimOption {
	return SimOption{simOptActor, func(ts *TestSim) {
		p := NewActor(pos)
		if w != nil {
			p.WithWeapon(w)
		}
		ts.World.Player = p
	}}
}

// WithEnemy adds an enemy at pos facing rot.
func WithEnemy(label string, pos Vec2, rot float64) SimOption {
	return SimOption{simOptActor, func(ts *TestSim) {
		ts.World.AddEnemy(NewEnemy(label, pos, rot))
	}}
}

// NewTestSim constructs a TestSim from the given options in ordered passes:
//  1. Infrastructure (grid size, palette, seed, verbose, config)
//  2. Build the grid, then paint materials
//  3. Build the world, then place actors
func NewTestSim(opts ...SimOption) *TestSim {
	ts := &TestSim{
		Width:  40,
		Height: 24,
		SimLog: NewSimLog(false),
		Config: DefaultSimConfig(),
		rng:    rand.New(rand.NewSource(1)), // #nosec G404 -- test harness default
	}
	for _, o := range opts {
		if o.kind == simOptInfra {
			o.fn(ts)
		}
	}
	if ts.Palette == nil {
		ts.Palette = DefaultPalette()
	}
	ts.Grid = NewGrid(ts.Width, ts.Height)
	for _, o := range opts {
		if o.kind == simOptGrid {
			o.fn(ts)
		}
	}
	ts.World = NewWorld(ts.Grid, ts.Palette, nil, ts.Config, ts.rng.Int63(), ts.SimLog)
	for _, o := range opts {
		if o.kind == simOptActor {
			o.fn(ts)
		}
	}
	return ts
}

// Player returns the player actor, nil if none was placed.
func (ts *TestSim) Player() *Actor { return ts.World.Player }

// FireAt makes the player fire at target and returns the bullets spawned.
func (ts *TestSim) FireAt(target Vec2) int {
	return ts.World.Fire(ts.World.Player, target)
}

// RunTicks advances the simulation n ticks, logging events to SimLog.
func (ts *TestSim) RunTicks(n int) {
	for i := 0; i < n; i++ {
		ts.World.Tick()
	}
}

// RunUntil advances the simulation up to maxTicks, stopping early if predicate
// returns true. Returns the tick at which the predicate was satisfied, or -1.
func (ts *TestSim) RunUntil(predicate func(*TestSim) bool, maxTicks int) int {
	for i := 0; i < maxTicks; i++ {
		ts.World.Tick()
		if predicate(ts) {
			return ts.World.CurrentTick()
		}
	}
	return -1
}

// CurrentTick returns the current simulation tick.
func (ts *TestSim) CurrentTick() int {
	return ts.World.CurrentTick()
}
