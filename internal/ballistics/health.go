package ballistics

//go:generate go tool mockgen -destination=./mocks/damageable_mock.go -package=mocks . Damageable

// Damageable is the only operation bullets perform on a health component.
type Damageable interface {
	ApplyWeaponDamage(amount, penetration float64)
}

const (
	defaultHP     = 10.0
	defaultArmour = 0.0
)

// Health is the stock health component with armour.
// Armour soaks amount*(1-penetration) until it is used up; the rest hits HP.
type Health struct {
	HP     float64
	Armour float64
}

// NewHealth returns a health component with the default hit points.
func NewHealth() *Health {
	return &Health{HP: defaultHP, Armour: defaultArmour}
}

// ApplyWeaponDamage implements Damageable.
func (h *Health) ApplyWeaponDamage(amount, penetration float64) {
	if amount <= 0 {
		return
	}
	absorbed := amount * (1 - clamp01(penetration))
	if absorbed > h.Armour {
		absorbed = h.Armour
	}
	h.Armour -= absorbed
	h.HP -= amount - absorbed
}

// Dead reports whether hit points are exhausted.
func (h *Health) Dead() bool {
	return h.HP <= 0
}
