package ballistics

// laserChunk is the length of each cast a beam is built from.
const laserChunk = 8 * CellSize

// Beam is a cosmetic laser trace. It has no velocity or penetration state and
// is rebuilt every frame from the ray-cast primitive.
type Beam struct {
	Points []Vec2 // polyline from the muzzle to the end of the beam
	Hit    bool   // stopped by an obstruction rather than by range
	Age    int    // ticks since it was fired
}

// LaserBeam repeats chunked casts from origin along rot until one is
// obstructed or maxLen is covered.
func LaserBeam(palette *Palette, grid *Grid, origin Vec2, rot, maxLen float64) Beam {
	dir := AngleToVec(rot)
	beam := Beam{Points: []Vec2{origin}}
	pos := origin
	for left := maxLen; left > 0; left -= laserChunk {
		step := laserChunk
		if left < step {
			step = left
		}
		cast := grid.RayCast(palette, pos, dir.Scale(step), true)
		pos = cast.Point()
		beam.Points = append(beam.Points, pos)
		if !cast.Full() {
			beam.Hit = true
			break
		}
	}
	return beam
}

// End returns the last point of the beam.
func (b Beam) End() Vec2 {
	return b.Points[len(b.Points)-1]
}

// Length returns the total beam length.
func (b Beam) Length() float64 {
	var l float64
	for i := 1; i < len(b.Points); i++ {
		l += b.Points[i].Dist(b.Points[i-1])
	}
	return l
}
