package ballistics

import "math"

// Vec2 is used both for world positions and for displacements.
// Angles follow screen space: 0 = right, pi/2 = down.
type Vec2 struct {
	X, Y float64
}

// V is shorthand for Vec2{x, y}.
func V(x, y float64) Vec2 { return Vec2{X: x, Y: y} }

func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v.X + o.X, v.Y + o.Y}
}

func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{v.X - o.X, v.Y - o.Y}
}

func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

func (v Vec2) Dot(o Vec2) float64 {
	return v.X*o.X + v.Y*o.Y
}

func (v Vec2) Cross(o Vec2) float64 {
	return v.X*o.Y - v.Y*o.X
}

func (v Vec2) NormSquared() float64 {
	return v.X*v.X + v.Y*v.Y
}

func (v Vec2) Norm() float64 {
	return math.Hypot(v.X, v.Y)
}

func (v Vec2) Dist(o Vec2) float64 {
	return v.Sub(o).Norm()
}

func (v Vec2) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// Reflect mirrors v across the line perpendicular to n:
// v - 2(v.n)n/|n|^2. A zero n leaves v unchanged.
func (v Vec2) Reflect(n Vec2) Vec2 {
	nn := n.NormSquared()
	if nn == 0 {
		return v
	}
	return v.Sub(n.Scale(2 * v.Dot(n) / nn))
}

// AngleToVec returns the unit vector pointing along rot.
func AngleToVec(rot float64) Vec2 {
	return Vec2{math.Cos(rot), math.Sin(rot)}
}

// AngleFromVec returns the direction of v in radians.
func AngleFromVec(v Vec2) float64 {
	return math.Atan2(v.Y, v.X)
}

// normalizeAngle wraps an angle to [-pi, pi].
func normalizeAngle(a float64) float64 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a < -math.Pi {
		a += 2 * math.Pi
	}
	return a
}

// DistLineCircle returns the minimum distance from center to the segment
// start -> start+delta. A zero-length segment degrades to a point distance.
func DistLineCircle(start, delta, center Vec2) float64 {
	dd := delta.NormSquared()
	if dd == 0 {
		return start.Dist(center)
	}
	t := center.Sub(start).Dot(delta) / dd
	t = clamp01(t)
	return start.Add(delta.Scale(t)).Dist(center)
}

// Object is the positional primitive shared by actors and bullets.
type Object struct {
	Pos Vec2
	Rot float64 // radians
}

// NewObject places an object at pos facing right.
func NewObject(pos Vec2) Object {
	return Object{Pos: pos}
}

// Facing returns the unit vector the object points along.
func (o Object) Facing() Vec2 {
	return AngleToVec(o.Rot)
}

// signedArea returns twice the signed area of a closed polygon.
// Positive means clockwise in screen space (y down).
func signedArea(poly []Vec2) float64 {
	var a float64
	for i := range poly {
		j := (i + 1) % len(poly)
		a += poly[i].Cross(poly[j])
	}
	return a
}
