package game

import (
	"errors"
	"strings"
	"testing"

	"github.com/Garsondee/Ballistic-Sense/internal/ballistics"
)

func demo(t *testing.T) *Level {
	t.Helper()
	lvl, err := ParseLevel(demoLevel)
	if err != nil {
		t.Fatalf("demo level: %v", err)
	}
	return lvl
}

func TestParseLevel_Demo(t *testing.T) {
	lvl := demo(t)
	if lvl.Grid.Width() != 40 || lvl.Grid.Height() != 24 {
		t.Fatalf("expected 40x24, got %dx%d", lvl.Grid.Width(), lvl.Grid.Height())
	}
	if lvl.PlayerSpawn != ballistics.CellCenter(3, 2) {
		t.Fatalf("unexpected player spawn %+v", lvl.PlayerSpawn)
	}
	if len(lvl.EnemySpawns) != 5 {
		t.Fatalf("expected 5 enemy spawns, got %d", len(lvl.EnemySpawns))
	}
	if lvl.EnemySpawns[0] != ballistics.CellCenter(31, 3) {
		t.Fatalf("enemies should be in reading order, first is %+v", lvl.EnemySpawns[0])
	}
	checks := []struct {
		x, y int
		want ballistics.Material
	}{
		{0, 0, ballistics.MaterialWall},
		{3, 2, ballistics.MaterialGrass},
		{5, 4, ballistics.MaterialConcrete},
		{17, 3, ballistics.MaterialFloor},
		{1, 9, ballistics.MaterialAsphalt},
		{30, 5, ballistics.MaterialWoodFloor},
		{9, 7, ballistics.MaterialSand},
		{5, 12, ballistics.MaterialDirt},
	}
	for _, c := range checks {
		if m, _ := lvl.Grid.Get(c.x, c.y); m != c.want {
			t.Fatalf("cell (%d,%d): expected %s, got %s", c.x, c.y, c.want, m)
		}
	}
}

func TestParseLevel_Errors(t *testing.T) {
	cases := []struct {
		name string
		rows []string
	}{
		{"empty", nil},
		{"ragged", []string{"P..", ".."}},
		{"unknown cell", []string{"P.x"}},
		{"no player", []string{"..."}},
		{"two players", []string{"P.P"}},
	}
	for _, c := range cases {
		if _, err := ParseLevel(c.rows); !errors.Is(err, ErrBadLevel) {
			t.Fatalf("%s: expected ErrBadLevel, got %v", c.name, err)
		}
	}
	if _, err := ParseLevel([]string{"P..", ".."}); !errors.Is(err, ballistics.ErrRaggedGrid) {
		t.Fatalf("ragged rows should wrap ErrRaggedGrid, got %v", err)
	}
}

func TestLevel_NewWorldIsIndependent(t *testing.T) {
	lvl := demo(t)
	w := lvl.NewWorld(1, nil)
	if len(w.Enemies) != 5 || w.Enemies[0].Label != "E1" || w.Enemies[4].Label != "E5" {
		t.Fatalf("expected enemies E1..E5, got %d", len(w.Enemies))
	}
	if w.Player.Weapon == nil || w.Player.Weapon.Weapon.Name != ballistics.WeaponTable[0].Name {
		t.Fatal("the player should start with the first weapon")
	}
	if d := w.Enemies[0].Obj.Facing().Dot(lvl.PlayerSpawn.Sub(w.Enemies[0].Obj.Pos)); d <= 0 {
		t.Fatal("enemies should face the player spawn")
	}
	w.Grid.Insert(3, 2, ballistics.MaterialWall)
	if m, _ := lvl.Grid.Get(3, 2); m != ballistics.MaterialGrass {
		t.Fatal("edits to a world grid must not touch the level")
	}
}

func TestGame_LayoutFitsLevelAndPanel(t *testing.T) {
	g := newGame(demo(t), 1)
	w, h := g.Layout(0, 0)
	if w != borderWidth*2+40*32+logPanelWidth || h != borderWidth*2+24*32 {
		t.Fatalf("unexpected layout %dx%d", w, h)
	}
	if g.GameWidth() != 40*32 {
		t.Fatalf("unexpected game width %d", g.GameWidth())
	}
}

func TestGame_SelectWeapon(t *testing.T) {
	g := newGame(demo(t), 1)
	for i := range ballistics.WeaponTable {
		g.selectWeapon(i)
		if g.world.Player.Weapon.Weapon != &ballistics.WeaponTable[i] {
			t.Fatalf("key %d should select %s", i+1, ballistics.WeaponTable[i].Name)
		}
	}
	g.selectWeapon(len(ballistics.WeaponTable))
	if g.weaponIdx != len(ballistics.WeaponTable)-1 {
		t.Fatal("an out of range selection must be ignored")
	}
	g.reset(2)
	if g.world.Player.Weapon.Weapon != &ballistics.WeaponTable[g.weaponIdx] {
		t.Fatal("reset should keep the selected weapon")
	}
}

func TestGame_StepPlayerSlidesAlongWalls(t *testing.T) {
	g := newGame(demo(t), 1)
	p := &g.world.Player.Obj
	p.Pos = ballistics.CellCenter(1, 1)
	for i := 0; i < 60; i++ {
		g.stepPlayer(ballistics.V(-1, -1))
	}
	if g.blocked(p.Pos) {
		t.Fatalf("player ended inside a wall at %+v", p.Pos)
	}
	if p.Pos.X < 32+playerRadius || p.Pos.Y < 32+playerRadius {
		t.Fatalf("player passed the border wall: %+v", p.Pos)
	}
	start := p.Pos
	for i := 0; i < 30; i++ {
		g.stepPlayer(ballistics.V(1, -1))
	}
	if p.Pos.X <= start.X || p.Pos.Y != start.Y {
		t.Fatalf("expected to slide right along the top wall, moved %+v -> %+v", start, p.Pos)
	}
	before := p.Pos
	g.stepPlayer(ballistics.Vec2{})
	if p.Pos != before {
		t.Fatal("no input means no movement")
	}
}

func TestGame_PullEventsTracksLog(t *testing.T) {
	g := newGame(demo(t), 1)
	g.world.Log.Add(1, "E1", ballistics.EventContactNew, "player at (1,1)", 0)
	g.world.Log.Add(2, "E1", ballistics.EventContactLost, "", 0)
	g.pullEvents()
	g.pullEvents()
	if got := len(g.events.Recent()); got != 2 {
		t.Fatalf("events should be copied once, got %d", got)
	}
}

func TestEventLog_RingBuffer(t *testing.T) {
	el := NewEventLog()
	for i := 0; i < logMaxEntries+5; i++ {
		el.Add(ballistics.SimLogEntry{Tick: i})
	}
	recent := el.Recent()
	if len(recent) != logMaxEntries {
		t.Fatalf("expected %d entries, got %d", logMaxEntries, len(recent))
	}
	if recent[0].Tick != 5 || recent[len(recent)-1].Tick != logMaxEntries+4 {
		t.Fatalf("expected ticks 5..%d, got %d..%d", logMaxEntries+4, recent[0].Tick, recent[len(recent)-1].Tick)
	}
	el.Reset()
	if len(el.Recent()) != 0 {
		t.Fatal("reset should empty the log")
	}
}

func TestEventLine(t *testing.T) {
	line := eventLine(ballistics.SimLogEntry{Tick: 42, Subject: "3f2a91c0", Event: ballistics.EventHitEnemy, Value: "E1 headshot"})
	if !strings.HasPrefix(line, "  42 3f2a91c0 hit_enemy") || !strings.HasSuffix(line, "E1 headshot") {
		t.Fatalf("unexpected line %q", line)
	}
}

func TestMaterialColor(t *testing.T) {
	if materialColor(ballistics.MaterialMissing) != missingColor {
		t.Fatal("Missing should render in the flag colour")
	}
	seen := map[[4]uint8]ballistics.Material{}
	for m, c := range materialColors {
		if c == missingColor {
			t.Fatalf("%s must not share the missing colour", m)
		}
		key := [4]uint8{c.R, c.G, c.B, c.A}
		if other, dup := seen[key]; dup {
			t.Fatalf("%s and %s share a colour", m, other)
		}
		seen[key] = m
	}
}

func TestHUDLines(t *testing.T) {
	g := newGame(demo(t), 1)
	g.paused = true
	lines := g.hudLines()
	if !strings.Contains(lines[0], "PAUSED") {
		t.Fatalf("expected a pause marker, got %q", lines[0])
	}
	if !strings.Contains(lines[1], ballistics.WeaponTable[0].Name) {
		t.Fatalf("expected the weapon name, got %q", lines[1])
	}
}

func TestGame_FogHidesPointsBehindThePlayer(t *testing.T) {
	g := newGame(demo(t), 1)
	g.world.Player.Obj.Rot = 0
	g.updateFogMask()
	ahead := ballistics.CellCenter(9, 2)
	behind := ballistics.CellCenter(1, 5)
	if g.fogged(ahead) {
		t.Fatalf("open ground straight ahead should be visible: %+v", ahead)
	}
	if !g.fogged(behind) {
		t.Fatalf("ground behind the player should be fogged: %+v", behind)
	}

	g.showFog = false
	g.updateFogMask()
	if g.fogged(behind) {
		t.Fatal("nothing is fogged with fog off")
	}
}
