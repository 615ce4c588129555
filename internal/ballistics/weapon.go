package ballistics

import (
	"errors"
	"fmt"
	"math/rand"
)

// BulletType selects the projectile's drag profile and how it is drawn.
type BulletType uint8

const (
	// BulletStandard is a jacketed round.
	BulletStandard BulletType = iota
	// BulletSawBlade is a spinning blade with heavy drag.
	BulletSawBlade
	// BulletLaser is an instant beam, never ticked.
	BulletLaser
)

func (bt BulletType) String() string {
	switch bt {
	case BulletStandard:
		return "standard"
	case BulletSawBlade:
		return "saw_blade"
	case BulletLaser:
		return "laser"
	default:
		return fmt.Sprintf("bullet_type(%d)", uint8(bt))
	}
}

// ErrUnknownWeapon is returned by WeaponByName for names not in WeaponTable.
var ErrUnknownWeapon = errors.New("unknown weapon")

// muzzleOffset is how far ahead of the shooter's centre bullets spawn.
// It must stay above the body hit radius or shooters would hit themselves.
const muzzleOffset = 20.0

// Weapon is an immutable weapon definition. Bullets keep a pointer to the
// WeaponTable entry they were fired from.
type Weapon struct {
	Name         string
	Damage       float64
	BulletSpeed  float64 // world units per second at the muzzle
	Penetration  float64 // 0..1, compared against material robustness
	BulletType   BulletType
	Bouncy       bool    // ricochets off walls instead of stopping
	FireInterval int     // ticks between shots
	MagSize      int     // rounds per magazine
	ReloadTicks  int     // ticks to refill the magazine
	Pellets      int     // bullets per trigger pull (shotguns > 1)
	Spread       float64 // radians, max deviation per pellet
}

// WeaponTable outlives every bullet; entries are never mutated.
var WeaponTable = []Weapon{
	{Name: "Glock", Damage: 1.0, BulletSpeed: 1200, Penetration: 0.2, BulletType: BulletStandard,
		FireInterval: 12, MagSize: 17, ReloadTicks: 60, Pellets: 1, Spread: 0.02},
	{Name: "AK-47", Damage: 1.4, BulletSpeed: 1600, Penetration: 0.55, BulletType: BulletStandard,
		FireInterval: 6, MagSize: 30, ReloadTicks: 90, Pellets: 1, Spread: 0.04},
	{Name: "Shotgun", Damage: 0.6, BulletSpeed: 1000, Penetration: 0.1, BulletType: BulletStandard,
		FireInterval: 40, MagSize: 6, ReloadTicks: 120, Pellets: 6, Spread: 0.18},
	{Name: "Sniper", Damage: 4.0, BulletSpeed: 2600, Penetration: 0.95, BulletType: BulletStandard,
		FireInterval: 70, MagSize: 5, ReloadTicks: 150, Pellets: 1, Spread: 0},
	{Name: "Saw Launcher", Damage: 2.0, BulletSpeed: 700, Penetration: 0, BulletType: BulletSawBlade,
		Bouncy: true, FireInterval: 45, MagSize: 4, ReloadTicks: 120, Pellets: 1, Spread: 0},
	{Name: "Laser", Damage: 0, BulletSpeed: 1, Penetration: 0, BulletType: BulletLaser,
		FireInterval: 2, MagSize: 100, ReloadTicks: 180, Pellets: 1, Spread: 0},
}

// WeaponByName returns the table entry with the given name.
func WeaponByName(name string) (*Weapon, error) {
	for i := range WeaponTable {
		if WeaponTable[i].Name == name {
			return &WeaponTable[i], nil
		}
	}
	return nil, fmt.Errorf("weapon %q: %w", name, ErrUnknownWeapon)
}

// WeaponInstance is a held weapon: magazine, cooldown and reload state.
type WeaponInstance struct {
	Weapon   *Weapon
	Loaded   int
	cooldown int
	reload   int
}

// NewWeaponInstance returns a full, ready instance of w.
func NewWeaponInstance(w *Weapon) *WeaponInstance {
	return &WeaponInstance{Weapon: w, Loaded: w.MagSize}
}

// Update advances cooldown and reload by one tick.
func (wi *WeaponInstance) Update() {
	if wi.cooldown > 0 {
		wi.cooldown--
	}
	if wi.reload > 0 {
		wi.reload--
		if wi.reload == 0 {
			wi.Loaded = wi.Weapon.MagSize
		}
	}
}

// Ready reports whether the weapon can fire this tick.
func (wi *WeaponInstance) Ready() bool {
	return wi.cooldown == 0 && wi.reload == 0 && wi.Loaded > 0
}

// Reloading reports whether a reload is in progress.
func (wi *WeaponInstance) Reloading() bool { return wi.reload > 0 }

// Reload starts a reload unless one is running or the magazine is full.
func (wi *WeaponInstance) Reload() {
	if wi.reload > 0 || wi.Loaded == wi.Weapon.MagSize {
		return
	}
	wi.reload = wi.Weapon.ReloadTicks
	if wi.reload == 0 {
		wi.Loaded = wi.Weapon.MagSize
	}
}

// Fire spends one round and returns the bullets it produced, spawned
// muzzleOffset ahead of shooter and aimed along its rotation. target is the
// aim point, kept for headshot checks. rng drives pellet spread; nil means
// no spread. Laser weapons return no bullets: beams are drawn, not ticked.
func (wi *WeaponInstance) Fire(shooter Object, target Vec2, rng *rand.Rand) []*Bullet {
	if !wi.Ready() {
		return nil
	}
	wi.Loaded--
	wi.cooldown = wi.Weapon.FireInterval
	if wi.Loaded == 0 {
		wi.Reload()
	}
	if wi.Weapon.BulletType == BulletLaser {
		return nil
	}

	pellets := wi.Weapon.Pellets
	if pellets < 1 {
		pellets = 1
	}
	out := make([]*Bullet, 0, pellets)
	for i := 0; i < pellets; i++ {
		rot := shooter.Rot
		if rng != nil && wi.Weapon.Spread > 0 {
			rot += (rng.Float64()*2 - 1) * wi.Weapon.Spread
		}
		rot = normalizeAngle(rot)
		pos := shooter.Pos.Add(AngleToVec(shooter.Rot).Scale(muzzleOffset))
		out = append(out, NewBullet(Object{Pos: pos, Rot: rot}, wi.Weapon, target))
	}
	return out
}

// AimAt turns an object to face the target point.
func AimAt(o *Object, target Vec2) {
	d := target.Sub(o.Pos)
	if d.IsZero() {
		return
	}
	o.Rot = AngleFromVec(d)
}
