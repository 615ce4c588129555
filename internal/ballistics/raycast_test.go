package ballistics

import (
	"math"
	"math/rand"
	"testing"
)

func closeTo(a, b, eps float64) bool { return math.Abs(a-b) <= eps }

// scenarioGrid is a 10x10 grass grid with a single wall at (5,5).
func scenarioGrid() *Grid {
	g := NewGrid(10, 10)
	g.Insert(5, 5, MaterialWall)
	return g
}

func TestRayCast_StopsAtWallNearEdge(t *testing.T) {
	g := scenarioGrid()
	res := g.RayCast(DefaultPalette(), V(0, 160), V(320, 0), true)
	if res.Full() {
		t.Fatal("expected the cast through (5,5) to be blocked")
	}
	p := res.Point()
	if p.X >= 160 || !closeTo(p.X, 160, 1e-9) || p.Y != 160 {
		t.Fatalf("expected impact just before x=160, got (%f,%f)", p.X, p.Y)
	}
	if x, y, ok := res.Cell(); !ok || x != 5 || y != 5 {
		t.Fatalf("expected struck cell (5,5), got (%d,%d,%t)", x, y, ok)
	}
	if !closeTo(res.Fraction(), 0.5, 1e-12) {
		t.Fatalf("expected fraction 0.5, got %f", res.Fraction())
	}
	if g.SolidAt(nil, p) {
		t.Fatal("impact point reads back as solid")
	}
}

func TestRayCast_HalfVecPointsIntoWall(t *testing.T) {
	g := scenarioGrid()
	res := g.RayCast(nil, V(0, 160), V(320, 0), true)
	h, ok := res.HalfVec()
	if !ok {
		t.Fatal("expected a half-vector for a struck wall")
	}
	if h.X <= 0 || h.Y != 0 {
		t.Fatalf("half-vector should point +x into the wall, got %+v", h)
	}
	clip := res.Clip()
	if !closeTo(clip.X, 160, 1e-9) || clip.Y != 0 {
		t.Fatalf("expected clip of 160 along x, got %+v", clip)
	}
}

func TestRayCast_FullWhenClear(t *testing.T) {
	g := scenarioGrid()
	res := g.RayCast(nil, V(16, 16), V(250, 100), true)
	if !res.Full() {
		t.Fatal("expected an unobstructed cast")
	}
	if res.Point() != V(266, 116) {
		t.Fatalf("expected end point (266,116), got %+v", res.Point())
	}
	if _, ok := res.HalfVec(); ok {
		t.Fatal("a full cast must not yield a half-vector")
	}
	if _, _, ok := res.Cell(); ok {
		t.Fatal("a full cast has no struck cell")
	}
	if res.Clip() != (Vec2{}) {
		t.Fatalf("a full cast has no clip, got %+v", res.Clip())
	}
}

func TestRayCast_IgnoreMaterialsStopsOnlyAtBoundary(t *testing.T) {
	g := scenarioGrid()
	if !g.RayCast(nil, V(0, 170), V(300, 0), false).Full() {
		t.Fatal("stopAtSolid=false should pass through walls")
	}
	res := g.RayCast(nil, V(16, 170), V(400, 0), false)
	if res.Full() {
		t.Fatal("the level boundary must still stop the cast")
	}
	if x, _, _ := res.Cell(); x != 10 {
		t.Fatalf("expected to stop on the column past the edge, got %d", x)
	}
	if res.Point().X >= 320 {
		t.Fatalf("end point left the level: %+v", res.Point())
	}
}

func TestRayCast_OutOfBoundsIsSolid(t *testing.T) {
	g := NewGrid(3, 3)
	res := g.RayCast(nil, V(16, 16), V(-100, 0), true)
	if res.Full() {
		t.Fatal("leaving the grid should block")
	}
	if p := res.Point(); p.X != 0 || p.Y != 16 {
		t.Fatalf("expected to stop on the left edge, got %+v", p)
	}
	if x, y, _ := res.Cell(); x != -1 || y != 0 {
		t.Fatalf("expected struck cell (-1,0), got (%d,%d)", x, y)
	}
}

func TestRayCast_StartsInsideSolid(t *testing.T) {
	g := scenarioGrid()
	res := g.RayCast(nil, V(170, 170), V(100, 0), true)
	if res.Full() || !res.StartedInside() {
		t.Fatal("a cast from inside a wall should be blocked at once")
	}
	if res.Point() != V(170, 170) || res.Fraction() != 0 {
		t.Fatalf("expected no travel, got point %+v fraction %f", res.Point(), res.Fraction())
	}
	if _, ok := res.HalfVec(); ok {
		t.Fatal("no half-vector may be derived from inside a wall")
	}
}

func TestRayCast_ZeroDisplacement(t *testing.T) {
	g := scenarioGrid()
	res := g.RayCast(nil, V(50, 50), Vec2{}, true)
	if !res.Full() || res.Point() != V(50, 50) {
		t.Fatalf("zero displacement should be a full cast at the origin, got %+v", res.Point())
	}
}

func TestRayCast_CornerNeedsBothSides(t *testing.T) {
	// Diagonal through the exact corner (32,32).
	g := NewGrid(3, 3)
	g.Insert(1, 0, MaterialWall)
	if !g.RayCast(nil, V(16, 16), V(32, 32), true).Full() {
		t.Fatal("one wall beside the corner should not block a diagonal")
	}
	g.Insert(0, 1, MaterialWall)
	if g.RayCast(nil, V(16, 16), V(32, 32), true).Full() {
		t.Fatal("walls on both sides of the corner should block")
	}

	g = NewGrid(3, 3)
	g.Insert(1, 1, MaterialWall)
	res := g.RayCast(nil, V(16, 16), V(32, 32), true)
	if res.Full() {
		t.Fatal("a solid diagonal cell should block")
	}
	if x, y, _ := res.Cell(); x != 1 || y != 1 {
		t.Fatalf("expected struck cell (1,1), got (%d,%d)", x, y)
	}
}

func TestRayCast_NeverEndsInSolid(t *testing.T) {
	rng := rand.New(rand.NewSource(99)) // #nosec G404 -- test
	palette := DefaultPalette()
	g := NewGrid(20, 20)
	for i := 0; i < 90; i++ {
		mats := []Material{MaterialWall, MaterialConcrete, MaterialMissing}
		g.Insert(rng.Intn(20), rng.Intn(20), mats[rng.Intn(len(mats))])
	}

	casts := 0
	for casts < 2000 {
		origin := V(rng.Float64()*640, rng.Float64()*640)
		if g.SolidAt(palette, origin) {
			continue
		}
		disp := V((rng.Float64()*2-1)*500, (rng.Float64()*2-1)*500)
		res := g.RayCast(palette, origin, disp, true)
		if g.SolidAt(palette, res.Point()) {
			t.Fatalf("cast %d from %+v by %+v ended in a solid cell at %+v (full=%t)",
				casts, origin, disp, res.Point(), res.Full())
		}
		casts++
	}
}

func TestRayCast_AxisAlignedNeverEndsInSolid(t *testing.T) {
	// Axis-aligned and cell-aligned rays hit cell boundaries exactly.
	palette := DefaultPalette()
	g := scenarioGrid()
	for i := 0; i <= 10; i++ {
		for _, disp := range []Vec2{V(320, 0), V(-320, 0), V(0, 320), V(0, -320), V(320, 320)} {
			origin := V(float64(i)*32, 160)
			if g.SolidAt(palette, origin) {
				continue
			}
			res := g.RayCast(palette, origin, disp, true)
			if g.SolidAt(palette, res.Point()) {
				t.Fatalf("origin %+v disp %+v ended in a solid cell at %+v", origin, disp, res.Point())
			}
		}
	}
}

func TestRayCast_Idempotent(t *testing.T) {
	g := scenarioGrid()
	p := DefaultPalette()
	a := g.RayCast(p, V(10, 150), V(300, 40), true)
	b := g.RayCast(p, V(10, 150), V(300, 40), true)
	if a != b {
		t.Fatalf("repeated casts differ: %+v vs %+v", a, b)
	}
}

func TestCastThrough_PassesFirstRunOnly(t *testing.T) {
	g := NewGrid(10, 1)
	g.Insert(3, 0, MaterialWall)
	g.Insert(4, 0, MaterialWall)
	g.Insert(6, 0, MaterialWall)
	p := DefaultPalette()

	res := g.CastThrough(p, V(16, 16), V(150, 0), MaterialWall)
	if !res.Full() {
		t.Fatal("the first wall run should be passable")
	}
	res = g.CastThrough(p, V(16, 16), V(200, 0), MaterialWall)
	if res.Full() {
		t.Fatal("a second run of the same material should block")
	}
	if x, _, _ := res.Cell(); x != 6 {
		t.Fatalf("expected to stop at column 6, got %d", x)
	}
	if res.Point().X >= 192 {
		t.Fatalf("expected to stop before x=192, got %f", res.Point().X)
	}
}

func TestCastThrough_FromInsideRun(t *testing.T) {
	g := NewGrid(10, 1)
	g.Insert(3, 0, MaterialWall)
	g.Insert(4, 0, MaterialWall)
	p := DefaultPalette()

	res := g.CastThrough(p, V(100, 16), V(100, 0), MaterialWall)
	if !res.Full() || res.StartedInside() {
		t.Fatal("a cast from inside the run should continue through it")
	}
	if res.Point() != V(200, 16) {
		t.Fatalf("expected end point (200,16), got %+v", res.Point())
	}
}

func TestCastThrough_OtherSolidsBlock(t *testing.T) {
	g := NewGrid(10, 1)
	g.Insert(3, 0, MaterialWall)
	g.Insert(4, 0, MaterialConcrete)
	res := g.CastThrough(DefaultPalette(), V(16, 16), V(200, 0), MaterialWall)
	if res.Full() {
		t.Fatal("concrete should block a cast tunnelling through wall")
	}
	if x, _, _ := res.Cell(); x != 4 {
		t.Fatalf("expected to stop at the concrete, got column %d", x)
	}
}
