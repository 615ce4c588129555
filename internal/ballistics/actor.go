package ballistics

// Actor is a body bullets can hit: the player or an enemy.
type Actor struct {
	Obj    Object
	Health Damageable
	Weapon *WeaponInstance // nil when unarmed
}

// NewActor creates an actor at pos with stock health.
func NewActor(pos Vec2) *Actor {
	return &Actor{Obj: NewObject(pos), Health: NewHealth()}
}

// WithWeapon arms the actor with a fresh instance of w.
func (a *Actor) WithWeapon(w *Weapon) *Actor {
	a.Weapon = NewWeaponInstance(w)
	return a
}

// Dead reports whether the actor's health component says it is dead.
// Components that do not track death are never dead.
func (a *Actor) Dead() bool {
	if d, ok := a.Health.(interface{ Dead() bool }); ok {
		return d.Dead()
	}
	return false
}

// Enemy is an actor with the perception state fed by CanSee.
type Enemy struct {
	Actor
	Label string

	// LastKnownPlayer is where the player was last seen; valid when
	// HasContact or SeenOnce is set.
	LastKnownPlayer Vec2
	HasContact      bool // player visible on the latest tick
	SeenOnce        bool
}

// NewEnemy creates an enemy at pos facing rot.
func NewEnemy(label string, pos Vec2, rot float64) *Enemy {
	e := &Enemy{Actor: *NewActor(pos), Label: label}
	e.Obj.Rot = rot
	return e
}

// Perceive updates the contact state from an omnidirectional sight check.
// It returns true when the contact state changed.
func (e *Enemy) Perceive(g *Grid, player Vec2) bool {
	seen := CanSee(e.Obj.Pos, player, g)
	changed := seen != e.HasContact
	e.HasContact = seen
	if seen {
		e.LastKnownPlayer = player
		e.SeenOnce = true
	}
	return changed
}
