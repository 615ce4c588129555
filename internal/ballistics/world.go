package ballistics

import (
	"fmt"
	"math/rand"
)

const (
	beamLifetime = 6      // ticks a laser trace stays on screen
	laserRange   = 1600.0 // world units
)

// Stats counts ballistic outcomes over a world's lifetime.
type Stats struct {
	Fired        int // bullets spawned (pellets counted individually)
	Beams        int // laser traces drawn
	PlayerHits   int
	EnemyHits    int
	Headshots    int
	WallStops    int
	Spent        int
	Penetrations int
	Bounces      int
	EnemiesDown  int
}

// Hits returns the number of body hits.
func (s Stats) Hits() int { return s.PlayerHits + s.EnemyHits }

// Misses returns the number of bullets that ended without touching a body.
func (s Stats) Misses() int { return s.WallStops + s.Spent }

// Accuracy returns hits over resolved bullets, 0 when nothing resolved.
func (s Stats) Accuracy() float64 {
	n := s.Hits() + s.Misses()
	if n == 0 {
		return 0
	}
	return float64(s.Hits()) / float64(n)
}

// Add accumulates o into s.
func (s *Stats) Add(o Stats) {
	s.Fired += o.Fired
	s.Beams += o.Beams
	s.PlayerHits += o.PlayerHits
	s.EnemyHits += o.EnemyHits
	s.Headshots += o.Headshots
	s.WallStops += o.WallStops
	s.Spent += o.Spent
	s.Penetrations += o.Penetrations
	s.Bounces += o.Bounces
	s.EnemiesDown += o.EnemiesDown
}

// World is the single owner of the live bullet and enemy collections. The
// grid and palette are read-only while it ticks.
type World struct {
	Grid    *Grid
	Palette *Palette
	Player  *Actor
	Enemies []*Enemy
	Bullets []*Bullet
	Beams   []*Beam
	Config  SimConfig
	Log     *SimLog
	Stats   Stats

	rng  *rand.Rand
	tick int
}

// NewWorld creates a world over grid. A nil palette uses DefaultPalette and
// a nil log records nothing verbose.
func NewWorld(grid *Grid, palette *Palette, player *Actor, cfg SimConfig, seed int64, log *SimLog) *World {
	if palette == nil {
		palette = DefaultPalette()
	}
	if log == nil {
		log = NewSimLog(false)
	}
	return &World{
		Grid:    grid,
		Palette: palette,
		Player:  player,
		Config:  cfg,
		Log:     log,
		rng:     rand.New(rand.NewSource(seed)), // #nosec G404 -- game only
	}
}

// CurrentTick returns the number of completed ticks.
func (w *World) CurrentTick() int { return w.tick }

// AddEnemy appends an enemy and returns its index.
func (w *World) AddEnemy(e *Enemy) int {
	w.Enemies = append(w.Enemies, e)
	return len(w.Enemies) - 1
}

// Fire aims shooter at target and pulls the trigger. It returns the number
// of bullets spawned; lasers spawn none but leave a beam.
func (w *World) Fire(shooter *Actor, target Vec2) int {
	if shooter == nil || shooter.Weapon == nil || shooter.Dead() {
		return 0
	}
	AimAt(&shooter.Obj, target)
	wi := shooter.Weapon
	if !wi.Ready() {
		return 0
	}
	label := w.actorLabel(shooter)
	if wi.Weapon.BulletType == BulletLaser {
		wi.Fire(shooter.Obj, target, w.rng)
		muzzle := shooter.Obj.Pos.Add(shooter.Obj.Facing().Scale(muzzleOffset))
		beam := LaserBeam(w.Palette, w.Grid, muzzle, shooter.Obj.Rot, laserRange)
		w.Beams = append(w.Beams, &beam)
		w.Stats.Beams++
		w.Log.Add(w.tick, label, EventBeam,
			fmt.Sprintf("%s len=%.0f", wi.Weapon.Name, beam.Length()), beam.Length())
		return 0
	}

	spawned := wi.Fire(shooter.Obj, target, w.rng)
	w.Bullets = append(w.Bullets, spawned...)
	w.Stats.Fired += len(spawned)
	w.Log.Add(w.tick, label, EventShot,
		fmt.Sprintf("%s x%d at (%.0f,%.0f)", wi.Weapon.Name, len(spawned), target.X, target.Y),
		float64(len(spawned)))
	return len(spawned)
}

// Tick advances the world by one fixed step: bullets, then removal of dead
// enemies, then perception, then weapon timers.
func (w *World) Tick() {
	w.tick++
	w.stepBullets()
	w.removeDeadEnemies()
	w.perceive()
	w.stepWeapons()
	w.ageBeams()
}

// stepBullets ticks every bullet, then drops the consumed ones. Removal
// waits for the whole pass so enemy indices stay valid while it runs.
func (w *World) stepBullets() {
	done := make([]bool, len(w.Bullets))
	for i, b := range w.Bullets {
		h := b.Update(w.Config, w.Palette, w.Grid, w.Player, w.Enemies)
		w.record(b, h)
		done[i] = !b.Persists(h)
	}

	kept := w.Bullets[:0]
	for i, b := range w.Bullets {
		if !done[i] {
			kept = append(kept, b)
		}
	}
	for i := len(kept); i < len(w.Bullets); i++ {
		w.Bullets[i] = nil
	}
	w.Bullets = kept
}

// record updates stats and the log for one bullet outcome.
func (w *World) record(b *Bullet, h Hit) {
	label := b.Label()
	pos := b.Obj.Pos
	switch h.Kind {
	case HitWall:
		if b.Spent() {
			w.Stats.Spent++
			w.Log.Add(w.tick, label, EventSpent,
				fmt.Sprintf("%.0f u/s at (%.0f,%.0f)", b.Speed(), pos.X, pos.Y), b.Speed())
		} else {
			w.Stats.WallStops++
			w.Log.Add(w.tick, label, EventHitWall,
				fmt.Sprintf("%s at (%.0f,%.0f)", w.wallAhead(b), pos.X, pos.Y), b.Speed())
		}
	case HitPlayer:
		w.Stats.PlayerHits++
		if h.Headshot {
			w.Stats.Headshots++
		}
		w.Log.Add(w.tick, label, EventHitPlayer, hitDetail("player", h.Headshot), b.Speed())
	case HitEnemy:
		w.Stats.EnemyHits++
		if h.Headshot {
			w.Stats.Headshots++
		}
		name := fmt.Sprintf("E%d", h.Enemy)
		if h.Enemy >= 0 && h.Enemy < len(w.Enemies) {
			name = w.Enemies[h.Enemy].Label
		}
		w.Log.Add(w.tick, label, EventHitEnemy, hitDetail(name, h.Headshot), b.Speed())
	}

	if b.Penetrated() {
		w.Stats.Penetrations++
		mat, _ := b.InWall()
		w.Log.Add(w.tick, label, EventPenetrate,
			fmt.Sprintf("%s residual=%.0f", mat, b.Speed()), b.Speed())
	}
	if b.Bounced() {
		w.Stats.Bounces++
		w.Log.Add(w.tick, label, EventBounce,
			fmt.Sprintf("#%d heading=%.2f", b.Bounces, b.Obj.Rot), b.Obj.Rot)
	}
}

// wallAhead names the material just past the bullet along its heading.
func (w *World) wallAhead(b *Bullet) Material {
	return w.Grid.MaterialAt(b.Obj.Pos.Add(b.Obj.Facing().Scale(CellSize / 2)))
}

func hitDetail(who string, headshot bool) string {
	if headshot {
		return who + " headshot"
	}
	return who
}

// removeDeadEnemies compacts the enemy slice and rewrites every bullet's
// enemy latch to the new indices.
func (w *World) removeDeadEnemies() {
	remap := make([]int, len(w.Enemies))
	removed := false
	kept := w.Enemies[:0]
	for i, e := range w.Enemies {
		if e.Dead() {
			remap[i] = -1
			removed = true
			w.Stats.EnemiesDown++
			w.Log.Add(w.tick, e.Label, EventEnemyDown,
				fmt.Sprintf("at (%.0f,%.0f)", e.Obj.Pos.X, e.Obj.Pos.Y), 0)
			continue
		}
		remap[i] = len(kept)
		kept = append(kept, e)
	}
	if !removed {
		return
	}
	for i := len(kept); i < len(w.Enemies); i++ {
		w.Enemies[i] = nil
	}
	w.Enemies = kept
	for _, b := range w.Bullets {
		b.remapEnemy(remap)
	}
}

// perceive refreshes each enemy's contact on the player.
func (w *World) perceive() {
	if w.Player == nil || w.Player.Dead() {
		for _, e := range w.Enemies {
			if e.HasContact {
				e.HasContact = false
				w.Log.Add(w.tick, e.Label, EventContactLost, "player down", 0)
			}
		}
		return
	}
	p := w.Player.Obj.Pos
	for _, e := range w.Enemies {
		if !e.Perceive(w.Grid, p) {
			continue
		}
		if e.HasContact {
			w.Log.Add(w.tick, e.Label, EventContactNew,
				fmt.Sprintf("player at (%.0f,%.0f)", p.X, p.Y), e.Obj.Pos.Dist(p))
		} else {
			w.Log.Add(w.tick, e.Label, EventContactLost,
				fmt.Sprintf("last known (%.0f,%.0f)", e.LastKnownPlayer.X, e.LastKnownPlayer.Y), 0)
		}
	}
}

func (w *World) stepWeapons() {
	if w.Player != nil && w.Player.Weapon != nil {
		w.Player.Weapon.Update()
	}
	for _, e := range w.Enemies {
		if e.Weapon != nil {
			e.Weapon.Update()
		}
	}
}

// ageBeams ages and prunes laser traces.
func (w *World) ageBeams() {
	kept := w.Beams[:0]
	for _, b := range w.Beams {
		b.Age++
		if b.Age < beamLifetime {
			kept = append(kept, b)
		}
	}
	for i := len(kept); i < len(w.Beams); i++ {
		w.Beams[i] = nil
	}
	w.Beams = kept
}

func (w *World) actorLabel(a *Actor) string {
	if a == w.Player {
		return "player"
	}
	for _, e := range w.Enemies {
		if &e.Actor == a {
			return e.Label
		}
	}
	return "--"
}
