package ballistics

import "math"

// CastResult describes how far a straight segment got through the grid.
type CastResult struct {
	origin  Vec2
	disp    Vec2
	point   Vec2
	t       float64 // fraction of disp travelled before the obstruction
	normal  Vec2    // axis of the struck face, pointing into the wall
	blocked bool
	inside  bool // the origin cell itself was blocking
	cellX   int
	cellY   int
}

// Point returns the furthest reachable point. When the cast was blocked it
// lies inside the last free cell, just before the wall.
func (c CastResult) Point() Vec2 { return c.point }

// Full reports whether the whole displacement was unobstructed.
func (c CastResult) Full() bool { return !c.blocked }

// Fraction returns the travelled share of the displacement in [0,1].
func (c CastResult) Fraction() float64 { return c.t }

// Clip returns the displacement that was not consumed.
func (c CastResult) Clip() Vec2 {
	return c.origin.Add(c.disp).Sub(c.point)
}

// StartedInside reports whether the origin was already in a blocking cell.
func (c CastResult) StartedInside() bool { return c.inside }

// Cell returns the blocking cell. ok is false for a full cast.
func (c CastResult) Cell() (x, y int, ok bool) {
	if !c.blocked {
		return 0, 0, false
	}
	return c.cellX, c.cellY, true
}

// HalfVec returns the vector from the impact point toward the wall: the
// part of the clip that runs along the struck face's normal. ok is false
// when nothing was struck or the vector is zero, in which case no
// reflection may be derived from it.
func (c CastResult) HalfVec() (Vec2, bool) {
	if !c.blocked || c.inside {
		return Vec2{}, false
	}
	nn := c.normal.NormSquared()
	if nn == 0 {
		return Vec2{}, false
	}
	clip := c.Clip()
	h := c.normal.Scale(clip.Dot(c.normal) / nn)
	if h.NormSquared() == 0 {
		return Vec2{}, false
	}
	return h, true
}

// castRule decides which cells stop a walk.
type castRule struct {
	palette    *Palette
	ignoreMats bool // only the level boundary blocks
	through    bool // the first run of throughMat cells is passable
	throughMat Material
}

func (r castRule) solid(g *Grid, x, y int) bool {
	m, ok := g.Get(x, y)
	if !ok {
		return true
	}
	if r.ignoreMats {
		return false
	}
	return r.palette.Solid(m)
}

// RayCast walks origin -> origin+disp through the grid cells it crosses.
// With stopAtSolid it stops before the first cell the palette reports
// solid; without it only the level boundary stops the walk. A nil palette
// uses each material's intrinsic solidity. Cells outside the grid always
// block.
func (g *Grid) RayCast(p *Palette, origin, disp Vec2, stopAtSolid bool) CastResult {
	return g.walk(origin, disp, castRule{palette: p, ignoreMats: !stopAtSolid})
}

// CastThrough is RayCast for a bullet tunnelling through material mat: the
// first run of mat cells the walk meets (possibly the origin cell) is
// passable. Once the walk leaves that run, mat blocks again like any other
// solid.
func (g *Grid) CastThrough(p *Palette, origin, disp Vec2, mat Material) CastResult {
	return g.walk(origin, disp, castRule{palette: p, through: true, throughMat: mat})
}

// walk is a grid traversal (DDA) over the segment. Each step enters the
// neighbouring cell whose boundary the segment crosses first.
func (g *Grid) walk(origin, disp Vec2, r castRule) CastResult {
	res := CastResult{origin: origin, disp: disp, t: 1, point: origin.Add(disp)}

	cx, cy := Snap(origin)
	// Tunnelling state: before the mat run, inside it, then done with it.
	passable, entered := r.through, false
	isMat := func(x, y int) bool {
		m, ok := g.Get(x, y)
		return ok && m == r.throughMat
	}
	blocks := func(x, y int) bool {
		if passable && isMat(x, y) {
			return false
		}
		return r.solid(g, x, y)
	}
	enter := func(x, y int) {
		if !passable {
			return
		}
		if isMat(x, y) {
			entered = true
		} else if entered {
			passable = false
		}
	}

	enter(cx, cy)
	if blocks(cx, cy) {
		res.blocked = true
		res.inside = true
		res.t = 0
		res.point = origin
		res.cellX, res.cellY = cx, cy
		return res
	}

	stepX, tMaxX, tDeltaX := axisSetup(origin.X, disp.X, cx)
	stepY, tMaxY, tDeltaY := axisSetup(origin.Y, disp.Y, cy)

	for {
		prevX, prevY := cx, cy
		var t float64
		var normal Vec2
		switch {
		case tMaxX < tMaxY:
			t = tMaxX
			if t > 1 {
				return res.full(cx, cy)
			}
			cx += stepX
			tMaxX += tDeltaX
			normal = Vec2{float64(stepX), 0}
		case tMaxY < tMaxX:
			t = tMaxY
			if t > 1 {
				return res.full(cx, cy)
			}
			cy += stepY
			tMaxY += tDeltaY
			normal = Vec2{0, float64(stepY)}
		default:
			// Exact corner crossing (or a zero displacement, both +Inf).
			t = tMaxX
			if t > 1 {
				return res.full(cx, cy)
			}
			normal = Vec2{float64(stepX), float64(stepY)}
			if blocks(cx+stepX, cy) && blocks(cx, cy+stepY) {
				return res.stop(t, prevX, prevY, cx+stepX, cy, normal)
			}
			cx += stepX
			cy += stepY
			tMaxX += tDeltaX
			tMaxY += tDeltaY
		}
		enter(cx, cy)
		if blocks(cx, cy) {
			return res.stop(t, prevX, prevY, cx, cy, normal)
		}
	}
}

// full finalises an unobstructed cast. The end point is pinned to the last
// visited cell so rounding at a boundary cannot push it into the next one.
func (c CastResult) full(x, y int) CastResult {
	c.point = Vec2{clampToCell(c.point.X, x), clampToCell(c.point.Y, y)}
	return c
}

// stop finalises a blocked cast. The impact point is clamped into the last
// free cell (fx, fy) so it never reads back as the wall cell.
func (c CastResult) stop(t float64, fx, fy, wx, wy int, normal Vec2) CastResult {
	c.blocked = true
	c.t = t
	c.normal = normal
	c.cellX, c.cellY = wx, wy
	p := c.origin.Add(c.disp.Scale(t))
	c.point = Vec2{clampToCell(p.X, fx), clampToCell(p.Y, fy)}
	return c
}

// clampToCell keeps a coordinate inside [c*CellSize, (c+1)*CellSize).
func clampToCell(v float64, c int) float64 {
	lo := float64(c) * CellSize
	hi := math.Nextafter(float64(c+1)*CellSize, math.Inf(-1))
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// axisSetup returns the step direction, the parameter t at which the segment
// first crosses a cell boundary on this axis, and the t between crossings.
func axisSetup(o, d float64, c int) (step int, tMax, tDelta float64) {
	switch {
	case d > 0:
		return 1, (float64(c+1)*CellSize - o) / d, CellSize / d
	case d < 0:
		return -1, (float64(c)*CellSize - o) / d, -CellSize / d
	default:
		return 0, math.Inf(1), math.Inf(1)
	}
}
