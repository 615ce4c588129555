package ballistics

import "fmt"

// Material identifies the surface stored in one grid cell.
type Material uint8

const (
	MaterialGrass     Material = 0   // Default open ground
	MaterialWall      Material = 1   // Interior wall
	MaterialFloor     Material = 2   // Indoor floor
	MaterialDirt      Material = 3   // Packed earth
	MaterialAsphalt   Material = 4   // Road surface
	MaterialSand      Material = 5   // Sandy patches
	MaterialConcrete  Material = 6   // Load-bearing concrete
	MaterialWoodFloor Material = 7   // Wooden floor
	MaterialMissing   Material = 255 // Unknown id, blocks everything
)

// knownMaterials lists every id MaterialFromID accepts as-is.
var knownMaterials = [...]Material{
	MaterialGrass, MaterialWall, MaterialFloor, MaterialDirt, MaterialAsphalt,
	MaterialSand, MaterialConcrete, MaterialWoodFloor, MaterialMissing,
}

// MaterialFromID converts a persisted id into a Material.
// Unknown ids become MaterialMissing so they block instead of leaking.
func MaterialFromID(id uint8) Material {
	m := Material(id)
	if m.known() {
		return m
	}
	return MaterialMissing
}

func (m Material) known() bool {
	for _, k := range knownMaterials {
		if k == m {
			return true
		}
	}
	return false
}

// Solid reports the material's intrinsic solidity.
func (m Material) Solid() bool {
	switch m {
	case MaterialWall, MaterialConcrete, MaterialMissing:
		return true
	case MaterialGrass, MaterialFloor, MaterialDirt, MaterialAsphalt,
		MaterialSand, MaterialWoodFloor:
		return false
	default:
		return true
	}
}

// String returns a short label for logs.
func (m Material) String() string {
	switch m {
	case MaterialGrass:
		return "grass"
	case MaterialWall:
		return "wall"
	case MaterialFloor:
		return "floor"
	case MaterialDirt:
		return "dirt"
	case MaterialAsphalt:
		return "asphalt"
	case MaterialSand:
		return "sand"
	case MaterialConcrete:
		return "concrete"
	case MaterialWoodFloor:
		return "wood_floor"
	case MaterialMissing:
		return "missing"
	default:
		return fmt.Sprintf("material(%d)", uint8(m))
	}
}

// MaterialProps are the physical properties a palette assigns to a material.
type MaterialProps struct {
	Solid      bool
	Robustness float64 // 0 = no resistance, 1 = impenetrable
}

// missingProps is the fail-closed fallback for ids without a palette entry.
var missingProps = MaterialProps{Solid: true, Robustness: 1.0}

// defaultRobustness returns the penetration resistance of a material.
func defaultRobustness(m Material) float64 {
	switch m {
	case MaterialWall:
		return 0.5
	case MaterialConcrete:
		return 0.9
	case MaterialMissing:
		return 1.0
	default:
		if m.Solid() {
			return 1.0
		}
		return 0.0
	}
}

// Palette maps materials to their physical properties. It is immutable once
// built and safe to share between every query of a tick.
type Palette struct {
	props [256]MaterialProps
	set   [256]bool
}

// NewPalette builds a palette from an explicit table. Robustness values are
// clamped to [0,1]. Materials absent from the table resolve to the
// conservative Missing properties.
func NewPalette(table map[Material]MaterialProps) *Palette {
	p := &Palette{}
	for m, props := range table {
		props.Robustness = clamp01(props.Robustness)
		p.props[m] = props
		p.set[m] = true
	}
	return p
}

// DefaultPalette returns the palette for the built-in material table.
func DefaultPalette() *Palette {
	table := make(map[Material]MaterialProps, len(knownMaterials))
	for _, m := range knownMaterials {
		table[m] = MaterialProps{Solid: m.Solid(), Robustness: defaultRobustness(m)}
	}
	return NewPalette(table)
}

// Props returns the properties for m. A nil palette falls back to the
// material's intrinsic solidity and default robustness.
func (p *Palette) Props(m Material) MaterialProps {
	if p == nil {
		if !m.known() {
			return missingProps
		}
		return MaterialProps{Solid: m.Solid(), Robustness: defaultRobustness(m)}
	}
	if !p.set[m] {
		return missingProps
	}
	return p.props[m]
}

// Solid reports whether m blocks projectiles and sight.
func (p *Palette) Solid(m Material) bool {
	return p.Props(m).Solid
}

// Robustness returns m's penetration resistance.
func (p *Palette) Robustness(m Material) float64 {
	return p.Props(m).Robustness
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
