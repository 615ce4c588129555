package ballistics

import "math"

// --- Simulation constants ---

const (
	defaultDelta          = 1.0 / 60.0 // seconds per tick
	defaultHitRadius      = 16.0       // body radius for bullet hits
	defaultHeadshotRadius = 12.0       // aim point tolerance for headshots
	defaultHeadshotBonus  = 1.5        // damage multiplier on headshot

	// Visibility fan: a 45 degree base cone widened by 15 degrees each side.
	defaultVisionHalfAngle = (45.0 + 15.0) * math.Pi / 180.0
	defaultVisionStep      = 1.0 * math.Pi / 180.0
)

// DragProfile is the per-bullet-type deceleration tuning.
type DragProfile struct {
	Deceleration float64 // world units per second squared, along the heading
	MinSpeed     float64 // at or below this speed the round is spent
}

// SimConfig carries every tunable the tick functions read. It is passed
// explicitly so tests can run with their own timestep and drag.
type SimConfig struct {
	Delta           float64 // fixed timestep in seconds
	Drag            map[BulletType]DragProfile
	HitRadius       float64
	HeadshotRadius  float64
	HeadshotBonus   float64
	VisionHalfAngle float64 // radians either side of the facing
	VisionStep      float64 // radians between visibility rays
}

// DefaultSimConfig returns the tuning used by the game.
func DefaultSimConfig() SimConfig {
	return SimConfig{
		Delta: defaultDelta,
		Drag: map[BulletType]DragProfile{
			BulletStandard: {Deceleration: 25.7, MinSpeed: 375},
			BulletSawBlade: {Deceleration: 180, MinSpeed: 120},
		},
		HitRadius:       defaultHitRadius,
		HeadshotRadius:  defaultHeadshotRadius,
		HeadshotBonus:   defaultHeadshotBonus,
		VisionHalfAngle: defaultVisionHalfAngle,
		VisionStep:      defaultVisionStep,
	}
}

// drag returns the profile for bt, falling back to the standard round.
func (c SimConfig) drag(bt BulletType) DragProfile {
	if d, ok := c.Drag[bt]; ok {
		return d
	}
	if d, ok := c.Drag[BulletStandard]; ok {
		return d
	}
	return DragProfile{}
}

// spent reports whether speed is too low to stay lethal. The threshold is
// inclusive: a round exactly at MinSpeed is spent.
func (c SimConfig) spent(bt BulletType, speed float64) bool {
	return speed <= c.drag(bt).MinSpeed
}
