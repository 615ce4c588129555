package ballistics

import (
	"errors"
	"fmt"
	"math"
)

// CellSize is the side length of one grid cell in world units.
const CellSize = 32.0

var (
	// ErrInvalidWidth is returned when a grid is built with a width below 1.
	ErrInvalidWidth = errors.New("grid width must be at least 1")
	// ErrRaggedGrid is returned when the material count is not a multiple of the width.
	ErrRaggedGrid = errors.New("material count is not a multiple of grid width")
)

// Grid is the level's material layer.
// mats is row-major: index = x + y*width. Height is always derived from
// len(mats)/width so the two can never disagree.
type Grid struct {
	width int
	mats  []Material
}

// NewGrid creates a width x height grid of grass.
func NewGrid(width, height int) *Grid {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	mats := make([]Material, width*height)
	for i := range mats {
		mats[i] = MaterialGrass
	}
	return &Grid{width: width, mats: mats}
}

// NewGridFromIDs rebuilds a grid from its persisted form. Unknown ids are
// coerced to MaterialMissing.
func NewGridFromIDs(width int, ids []uint8) (*Grid, error) {
	if width < 1 {
		return nil, fmt.Errorf("new grid (width=%d): %w", width, ErrInvalidWidth)
	}
	if len(ids) == 0 || len(ids)%width != 0 {
		return nil, fmt.Errorf("new grid (width=%d, cells=%d): %w", width, len(ids), ErrRaggedGrid)
	}
	mats := make([]Material, len(ids))
	for i, id := range ids {
		mats[i] = MaterialFromID(id)
	}
	return &Grid{width: width, mats: mats}, nil
}

// MustGrid is NewGridFromIDs for hard-coded levels; it panics on a layout
// that breaks the row-major invariant.
func MustGrid(width int, ids []uint8) *Grid {
	g, err := NewGridFromIDs(width, ids)
	if err != nil {
		panic(err)
	}
	return g
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid) Height() int { return len(g.mats) / g.width }

// Len returns the number of cells.
func (g *Grid) Len() int { return len(g.mats) }

// Bounds returns the level size in world units.
func (g *Grid) Bounds() Vec2 {
	return Vec2{float64(g.width) * CellSize, float64(g.Height()) * CellSize}
}

// IDs returns the persisted form of the material layer.
func (g *Grid) IDs() []uint8 {
	out := make([]uint8, len(g.mats))
	for i, m := range g.mats {
		out[i] = uint8(m)
	}
	return out
}

// inBounds returns true if (x, y) is within the grid.
func (g *Grid) inBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.Height()
}

func (g *Grid) idx(x, y int) int { return x + y*g.width }

// Get returns the material at (x, y). ok is false out of bounds.
func (g *Grid) Get(x, y int) (m Material, ok bool) {
	if !g.inBounds(x, y) {
		return MaterialMissing, false
	}
	return g.mats[g.idx(x, y)], true
}

// Insert sets the material at (x, y). Out-of-bounds writes are ignored.
func (g *Grid) Insert(x, y int, m Material) {
	if !g.inBounds(x, y) {
		return
	}
	g.mats[g.idx(x, y)] = m
}

// IsSolid reports the intrinsic solidity of (x, y). Out of bounds is solid.
func (g *Grid) IsSolid(x, y int) bool {
	m, ok := g.Get(x, y)
	if !ok {
		return true
	}
	return m.Solid()
}

// solidCell resolves solidity through the palette; nil means intrinsic.
func (g *Grid) solidCell(p *Palette, x, y int) bool {
	m, ok := g.Get(x, y)
	if !ok {
		return true
	}
	return p.Solid(m)
}

// SolidAt reports whether the world point lies in a solid cell.
func (g *Grid) SolidAt(p *Palette, pt Vec2) bool {
	x, y := Snap(pt)
	return g.solidCell(p, x, y)
}

// MaterialAt returns the material under the world point.
func (g *Grid) MaterialAt(pt Vec2) Material {
	m, _ := g.Get(Snap(pt))
	return m
}

// Snap converts a world point to cell coordinates.
func Snap(pt Vec2) (x, y int) {
	return SnapCoords(pt.X, pt.Y)
}

// SnapCoords converts world coordinates to cell coordinates using floor, so
// negative coordinates land outside the grid instead of on row/column 0.
func SnapCoords(wx, wy float64) (x, y int) {
	return int(math.Floor(wx / CellSize)), int(math.Floor(wy / CellSize))
}

// CellOrigin returns the world position of the top-left corner of (x, y).
func CellOrigin(x, y int) Vec2 {
	return Vec2{float64(x) * CellSize, float64(y) * CellSize}
}

// CellCenter returns the world position of the centre of (x, y).
func CellCenter(x, y int) Vec2 {
	return CellOrigin(x, y).Add(Vec2{CellSize / 2, CellSize / 2})
}

// --- Structural edits (editor only, never during a tick) ---

// Widen appends a grass column on the right edge.
func (g *Grid) Widen() {
	w, h := g.width, g.Height()
	mats := make([]Material, 0, (w+1)*h)
	for y := 0; y < h; y++ {
		mats = append(mats, g.mats[y*w:(y+1)*w]...)
		mats = append(mats, MaterialGrass)
	}
	g.mats = mats
	g.width++
}

// Thin removes the rightmost column. A one-column grid is left alone.
func (g *Grid) Thin() {
	if g.width <= 1 {
		return
	}
	w, h := g.width, g.Height()
	mats := make([]Material, 0, (w-1)*h)
	for y := 0; y < h; y++ {
		mats = append(mats, g.mats[y*w:(y+1)*w-1]...)
	}
	g.mats = mats
	g.width--
}

// Heighten appends a grass row at the bottom.
func (g *Grid) Heighten() {
	for i := 0; i < g.width; i++ {
		g.mats = append(g.mats, MaterialGrass)
	}
}

// Shorten removes the bottom row. A one-row grid is left alone.
func (g *Grid) Shorten() {
	newLen := len(g.mats) - g.width
	if newLen <= 0 {
		return
	}
	g.mats = g.mats[:newLen:newLen]
}

// Clone returns an independent copy of the grid.
func (g *Grid) Clone() *Grid {
	mats := make([]Material, len(g.mats))
	copy(mats, g.mats)
	return &Grid{width: g.width, mats: mats}
}
