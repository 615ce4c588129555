package ballistics

import "math"

// VisibilityFan casts rays across rot ± halfAngle every step radians and
// returns their end points, ordered by increasing angle. Each ray stops
// before the first solid cell or at maxLen.
func VisibilityFan(pos Vec2, rot, maxLen, halfAngle, step float64, palette *Palette, grid *Grid) []Vec2 {
	if step <= 0 {
		step = defaultVisionStep
	}
	n := int(math.Round(2 * halfAngle / step))
	if n < 1 {
		n = 1
	}
	out := make([]Vec2, 0, n+1)
	for i := 0; i <= n; i++ {
		a := rot - halfAngle + 2*halfAngle*float64(i)/float64(n)
		cast := grid.RayCast(palette, pos, AngleToVec(a).Scale(maxLen), true)
		out = append(out, cast.Point())
	}
	return out
}

// VisibleArea returns a polygon covering everything the observer cannot
// see, for use as a fog-of-war mask. The cone spans rot ± 60 degrees,
// sampled every degree. See VisibleAreaWith.
func VisibleArea(pos Vec2, rot, maxLen float64, palette *Palette, grid *Grid) []Vec2 {
	return VisibleAreaWith(pos, rot, maxLen, defaultVisionHalfAngle, defaultVisionStep, palette, grid)
}

// VisibleAreaWith builds the inverse visibility mask for an explicit cone.
//
// The result is the level rectangle with the visible fan cut out as a hole,
// joined by a zero-width bridge so it stays a single simple outline:
//
//	rear corner, 3 other corners, rear corner, observer, fan points, observer
//
// The bridge runs from the level corner most behind the observer to the
// observer itself, the fan's apex. Any half-plane through an interior point
// contains a corner, so that corner is at least 90 degrees off the facing
// and the bridge cannot cut through a cone narrower than that. The fan is
// wound opposite to the rectangle so both even-odd and non-zero filling
// leave it empty.
func VisibleAreaWith(pos Vec2, rot, maxLen, halfAngle, step float64, palette *Palette, grid *Grid) []Vec2 {
	fan := VisibilityFan(pos, rot, maxLen, halfAngle, step, palette, grid)

	b := grid.Bounds()
	corners := [4]Vec2{{0, 0}, {b.X, 0}, {b.X, b.Y}, {0, b.Y}}
	facing := AngleToVec(rot)
	rear := 0
	for i := 1; i < 4; i++ {
		if corners[i].Sub(pos).Dot(facing) < corners[rear].Sub(pos).Dot(facing) {
			rear = i
		}
	}

	hole := make([]Vec2, 0, len(fan)+1)
	hole = append(hole, pos)
	hole = append(hole, fan...)
	if (signedArea(hole) > 0) == (signedArea(corners[:]) > 0) {
		reverseVecs(fan)
	}

	poly := make([]Vec2, 0, len(fan)+7)
	for i := 0; i < 4; i++ {
		poly = append(poly, corners[(rear+i)%4])
	}
	poly = append(poly, corners[rear], pos)
	poly = append(poly, fan...)
	poly = append(poly, pos)
	return poly
}

// CanSee reports whether the straight segment from observer to target is
// free of solid cells. It ignores facing entirely.
func CanSee(observer, target Vec2, grid *Grid) bool {
	return grid.RayCast(nil, observer, target.Sub(observer), true).Full()
}

// InVisionCone reports whether target lies within halfAngle of the
// observer's facing and no further than maxRange.
func InVisionCone(observer Object, target Vec2, halfAngle, maxRange float64) bool {
	d := target.Sub(observer.Pos)
	dist := d.Norm()
	if dist > maxRange || dist < 1e-6 {
		return false
	}
	diff := normalizeAngle(AngleFromVec(d) - observer.Rot)
	return diff >= -halfAngle && diff <= halfAngle
}

// PointInPolygon is an even-odd containment test.
func PointInPolygon(pt Vec2, poly []Vec2) bool {
	in := false
	for i, j := 0, len(poly)-1; i < len(poly); j, i = i, i+1 {
		a, b := poly[i], poly[j]
		if (a.Y > pt.Y) != (b.Y > pt.Y) {
			x := a.X + (pt.Y-a.Y)*(b.X-a.X)/(b.Y-a.Y)
			if pt.X < x {
				in = !in
			}
		}
	}
	return in
}

func reverseVecs(v []Vec2) {
	for i, j := 0, len(v)-1; i < j; i, j = i+1, j-1 {
		v[i], v[j] = v[j], v[i]
	}
}
