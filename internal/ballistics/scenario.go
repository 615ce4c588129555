package ballistics

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownScenario is returned by RunScenario for names not in Scenarios.
var ErrUnknownScenario = errors.New("unknown scenario")

// aimJitter is the max aim error, in world units, of the scripted shooter.
const aimJitter = 14.0

// Scenario is a scripted, seeded firing exercise for headless runs.
type Scenario struct {
	Name   string
	Weapon string
	build  func(w *Weapon, seed int64) *TestSim
}

// Scenarios lists the built-in scenarios by name.
var Scenarios = map[string]Scenario{
	"firing-range": {
		Name:   "firing-range",
		Weapon: "AK-47",
		build: func(w *Weapon, seed int64) *TestSim {
			return NewTestSim(
				WithGridSize(40, 24),
				WithSeed(seed),
				WithMaterialRect(14, 3, 14, 8, MaterialWall),
				WithMaterialRect(14, 15, 15, 20, MaterialConcrete),
				WithPlayer(CellCenter(4, 11), w),
				WithEnemy("E1", CellCenter(22, 6), 0),
				WithEnemy("E2", CellCenter(22, 17), 0),
				WithEnemy("E3", CellCenter(26, 11), 0),
			)
		},
	},
	"ricochet-room": {
		Name:   "ricochet-room",
		Weapon: "Saw Launcher",
		build: func(w *Weapon, seed int64) *TestSim {
			return NewTestSim(
				WithGridSize(24, 16),
				WithSeed(seed),
				WithMaterialRect(0, 0, 23, 0, MaterialWall),
				WithMaterialRect(0, 15, 23, 15, MaterialWall),
				WithMaterialRect(0, 0, 0, 15, MaterialWall),
				WithMaterialRect(23, 0, 23, 15, MaterialWall),
				WithMaterialRect(11, 4, 12, 11, MaterialConcrete),
				WithPlayer(CellCenter(4, 8), w),
				WithEnemy("E1", CellCenter(19, 4), 0),
				WithEnemy("E2", CellCenter(19, 11), 0),
			)
		},
	},
	"shotgun-cover": {
		Name:   "shotgun-cover",
		Weapon: "Shotgun",
		build: func(w *Weapon, seed int64) *TestSim {
			return NewTestSim(
				WithGridSize(30, 20),
				WithSeed(seed),
				WithMaterialRect(12, 6, 12, 13, MaterialWall),
				WithPlayer(CellCenter(6, 10), w),
				WithEnemy("E1", CellCenter(15, 8), 0),
				WithEnemy("E2", CellCenter(15, 12), 0),
				WithEnemy("E3", CellCenter(10, 3), 0),
			)
		},
	},
}

// ScenarioNames returns the built-in scenario names, sorted.
func ScenarioNames() []string {
	names := make([]string, 0, len(Scenarios))
	for n := range Scenarios {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Build creates the scenario's harness for seed.
func (s Scenario) Build(seed int64) (*TestSim, error) {
	w, err := WeaponByName(s.Weapon)
	if err != nil {
		return nil, fmt.Errorf("scenario %q: %w", s.Name, err)
	}
	return s.build(w, seed), nil
}

// RunScenario builds the named scenario and drives it for ticks ticks:
// every tick the player fires at the nearest living enemy with seeded aim
// error.
func RunScenario(name string, seed int64, ticks int, cfg SimConfig) (*TestSim, error) {
	s, ok := Scenarios[name]
	if !ok {
		return nil, fmt.Errorf("scenario %q: %w", name, ErrUnknownScenario)
	}
	ts, err := s.Build(seed)
	if err != nil {
		return nil, err
	}
	ts.World.Config = cfg
	for i := 0; i < ticks; i++ {
		if target, ok := nearestEnemy(ts.World); ok {
			jitter := Vec2{
				X: (ts.rng.Float64()*2 - 1) * aimJitter,
				Y: (ts.rng.Float64()*2 - 1) * aimJitter,
			}
			ts.FireAt(target.Add(jitter))
		}
		ts.World.Tick()
	}
	return ts, nil
}

// nearestEnemy returns the position of the closest living enemy.
func nearestEnemy(w *World) (Vec2, bool) {
	if w.Player == nil {
		return Vec2{}, false
	}
	best, found := 0.0, false
	var pos Vec2
	for _, e := range w.Enemies {
		if e.Dead() {
			continue
		}
		d := e.Obj.Pos.Dist(w.Player.Obj.Pos)
		if !found || d < best {
			best, pos, found = d, e.Obj.Pos, true
		}
	}
	return pos, found
}
