package ballistics

import (
	"fmt"

	"github.com/google/uuid"
)

// HitKind tags the outcome of one bullet tick.
type HitKind uint8

const (
	HitNone   HitKind = iota // Still in flight
	HitWall                  // Stopped by a wall or spent
	HitPlayer                // Struck the player
	HitEnemy                 // Struck an enemy
)

// Hit is the outcome of one bullet tick. Enemy is only meaningful for
// HitEnemy, Headshot for HitPlayer and HitEnemy.
type Hit struct {
	Kind     HitKind
	Enemy    int
	Headshot bool
}

// NoHit is the in-flight outcome.
var NoHit = Hit{Kind: HitNone, Enemy: -1}

// WallHit is the stopped outcome.
var WallHit = Hit{Kind: HitWall, Enemy: -1}

// PlayerHit builds a player outcome.
func PlayerHit(headshot bool) Hit {
	return Hit{Kind: HitPlayer, Enemy: -1, Headshot: headshot}
}

// EnemyHit builds an enemy outcome for the enemy at index i.
func EnemyHit(i int, headshot bool) Hit {
	return Hit{Kind: HitEnemy, Enemy: i, Headshot: headshot}
}

func (h Hit) String() string {
	switch h.Kind {
	case HitNone:
		return "none"
	case HitWall:
		return "wall"
	case HitPlayer:
		return fmt.Sprintf("player(headshot=%t)", h.Headshot)
	case HitEnemy:
		return fmt.Sprintf("enemy(%d, headshot=%t)", h.Enemy, h.Headshot)
	default:
		return fmt.Sprintf("hit(%d)", uint8(h.Kind))
	}
}

// Bullet is one live projectile.
type Bullet struct {
	ID     uuid.UUID
	Obj    Object
	Vel    Vec2
	Weapon *Weapon // shared, read-only
	Target Vec2    // aim point at fire time
	Prev   Vec2    // position at the start of the last tick

	inEnemy  int // enemy index the segment currently overlaps, -1 if none
	inPlayer bool
	inWall   Material
	walled   bool

	Penetrations int
	Bounces      int

	penetrated bool // during the last tick
	bounced    bool
	spent      bool // the last WallHit was a loss of energy, not a wall
}

// NewBullet creates a bullet at obj moving at the weapon's muzzle speed.
func NewBullet(obj Object, w *Weapon, target Vec2) *Bullet {
	return &Bullet{
		ID:      uuid.New(),
		Obj:     obj,
		Vel:     AngleToVec(obj.Rot).Scale(w.BulletSpeed),
		Weapon:  w,
		Target:  target,
		Prev:    obj.Pos,
		inEnemy: -1,
	}
}

// Label is a short identifier for log lines.
func (b *Bullet) Label() string {
	return b.ID.String()[:8]
}

// Speed returns the current speed.
func (b *Bullet) Speed() float64 { return b.Vel.Norm() }

// InEnemy returns the enemy index the bullet is latched on.
func (b *Bullet) InEnemy() (int, bool) { return b.inEnemy, b.inEnemy >= 0 }

// InWall returns the material the bullet is currently travelling inside.
func (b *Bullet) InWall() (Material, bool) { return b.inWall, b.walled }

// Penetrated reports whether the last tick tunnelled into a wall.
func (b *Bullet) Penetrated() bool { return b.penetrated }

// Bounced reports whether the last tick ricocheted.
func (b *Bullet) Bounced() bool { return b.bounced }

// Spent reports whether the last tick ended the round for lack of speed.
func (b *Bullet) Spent() bool { return b.spent }

// Persists reports whether the bullet survives a body hit. Bouncy rounds
// carry on through bodies; everything else is consumed.
func (b *Bullet) Persists(h Hit) bool {
	switch h.Kind {
	case HitNone:
		return true
	case HitPlayer, HitEnemy:
		return b.Weapon.Bouncy
	default:
		return false
	}
}

// remapEnemy rewrites the latch after the enemy slice was compacted.
// remap[old] is the new index, or -1 if that enemy was removed.
func (b *Bullet) remapEnemy(remap []int) {
	if b.inEnemy < 0 {
		return
	}
	if b.inEnemy >= len(remap) {
		b.inEnemy = -1
		return
	}
	b.inEnemy = remap[b.inEnemy]
}

// applyDamage damages health and reports whether it was a headshot: the
// travel segment passed within HeadshotRadius of the aim point.
func (b *Bullet) applyDamage(cfg SimConfig, h Damageable, start, dPos Vec2) bool {
	headshot := DistLineCircle(start, dPos, b.Target) <= cfg.HeadshotRadius
	mul := 1.0
	if headshot {
		mul = cfg.HeadshotBonus
	}
	dmg := mul * b.Weapon.Damage
	if b.Weapon.BulletSpeed > 0 {
		dmg *= b.Vel.Norm() / b.Weapon.BulletSpeed
	}
	if h != nil {
		h.ApplyWeaponDamage(dmg, b.Weapon.Penetration)
	}
	return headshot
}

// Update advances the bullet by one tick and returns what it hit.
// Bodies are tested against the whole travel segment before walls are
// resolved, so a body reached on the same tick as a wall takes priority.
func (b *Bullet) Update(cfg SimConfig, palette *Palette, grid *Grid, player *Actor, enemies []*Enemy) Hit {
	b.penetrated = false
	b.bounced = false
	b.spent = false

	start := b.Obj.Pos
	b.Prev = start
	dt := cfg.Delta
	bt := b.Weapon.BulletType

	heading := AngleToVec(b.Obj.Rot)
	dVel := heading.Scale(cfg.drag(bt).Deceleration * dt)
	dPos := b.Vel.Scale(dt).Sub(dVel.Scale(0.5 * dt))
	b.Vel = b.Vel.Sub(dVel)

	if b.Vel.Dot(heading) <= 0 || cfg.spent(bt, b.Vel.Norm()) {
		b.spent = true
		return WallHit
	}

	if player != nil && !player.Dead() {
		if DistLineCircle(start, dPos, player.Obj.Pos) <= cfg.HitRadius {
			if !b.inPlayer {
				b.inPlayer = true
				hs := b.applyDamage(cfg, player.Health, start, dPos)
				return PlayerHit(hs)
			}
		} else {
			b.inPlayer = false
		}
	}
	for i, e := range enemies {
		if e == nil || e.Dead() {
			continue
		}
		if DistLineCircle(start, dPos, e.Obj.Pos) <= cfg.HitRadius {
			if b.inEnemy != i {
				b.inEnemy = i
				hs := b.applyDamage(cfg, e.Health, start, dPos)
				return EnemyHit(i, hs)
			}
		} else if b.inEnemy == i {
			b.inEnemy = -1
		}
	}

	if b.Weapon.Bouncy {
		return b.ricochet(palette, grid, start, dPos)
	}
	return b.penetrate(cfg, palette, grid, start, dPos)
}

// ricochet moves a bouncy bullet, mirroring the unconsumed displacement and
// the velocity across the struck wall. Bouncy rounds are never walled: one
// that starts inside a solid cell has no face to bounce off and stops.
func (b *Bullet) ricochet(palette *Palette, grid *Grid, start, dPos Vec2) Hit {
	b.walled = false
	cast := grid.RayCast(palette, start, dPos, true)
	if cast.StartedInside() {
		return WallHit
	}
	impact := cast.Point()
	b.Obj.Pos = impact

	n, ok := cast.HalfVec()
	if !ok {
		return NoHit
	}
	b.inEnemy = -1
	b.inPlayer = false

	rest := cast.Clip().Reflect(n)
	b.Obj.Pos = grid.RayCast(palette, impact, rest, true).Point()
	b.Vel = b.Vel.Reflect(n)
	b.Obj.Rot = AngleFromVec(b.Vel)
	b.Bounces++
	b.bounced = true
	return NoHit
}

// penetrate moves a non-bouncy bullet and resolves wall contact: it either
// tunnels through the struck material or stops.
func (b *Bullet) penetrate(cfg SimConfig, palette *Palette, grid *Grid, start, dPos Vec2) Hit {
	var cast CastResult
	if mat, ok := b.InWall(); ok {
		cast = grid.CastThrough(palette, start, dPos, mat)
	} else {
		cast = grid.RayCast(palette, start, dPos, true)
	}

	if cast.Full() {
		b.Obj.Pos = cast.Point()
		b.settleInWall(palette, grid)
		return NoHit
	}

	impact := cast.Point()
	b.Obj.Pos = impact
	x, y, _ := cast.Cell()
	mat, _ := grid.Get(x, y)
	rob := palette.Robustness(mat)
	residual := b.Vel.Scale(1 - rob)
	if b.Weapon.Penetration < rob || cfg.spent(b.Weapon.BulletType, residual.Norm()) {
		return WallHit
	}

	b.Vel = residual
	b.Obj.Pos = grid.CastThrough(palette, impact, cast.Clip(), mat).Point()
	b.settleInWall(palette, grid)
	b.Penetrations++
	b.penetrated = true
	return NoHit
}

// settleInWall records the solid material under the bullet, if any.
func (b *Bullet) settleInWall(palette *Palette, grid *Grid) {
	m, ok := grid.Get(Snap(b.Obj.Pos))
	if ok && palette.Solid(m) {
		b.inWall = m
		b.walled = true
		return
	}
	b.walled = false
}
