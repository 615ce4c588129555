package game

import (
	"fmt"
	"time"

	"github.com/Garsondee/Ballistic-Sense/internal/ballistics"
	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"
)

// borderWidth is the pixel gap between the window edge and the level.
const borderWidth = 24

const (
	visionRange  = 900.0 // world units, fog cone length
	playerSpeed  = 160.0 // world units per second
	playerRadius = 10.0  // collision half-size against solid cells
	statusTicks  = 180   // how long a status message stays on screen
)

// weaponKeys select WeaponTable entries in order.
var weaponKeys = [...]ebiten.Key{
	ebiten.Key1, ebiten.Key2, ebiten.Key3,
	ebiten.Key4, ebiten.Key5, ebiten.Key6,
}

// Game is the interactive sandbox: one player aiming with the cursor at
// static enemies on the demo level.
type Game struct {
	width      int
	height     int
	gameWidth  int // level width in pixels
	gameHeight int // level height in pixels
	offX       int // pixel offset from window left to level left
	offY       int // pixel offset from window top to level top

	level     *Level
	world     *ballistics.World
	events    *EventLog
	logCursor int // SimLog entries already copied into events
	weaponIdx int

	showFog  bool
	showHUD  bool
	paused   bool
	firing   bool
	prevKeys map[ebiten.Key]bool

	status      string
	statusTimer int

	// Offscreen buffer for the fog mask, composited with one opacity.
	fogBuf  *ebiten.Image
	fogMask []ballistics.Vec2 // level outline minus the visible fan, this frame
	hudFace text.Face
}

// New creates the sandbox on the demo level.
func New() *Game {
	lvl, err := ParseLevel(demoLevel)
	if err != nil {
		panic(fmt.Sprintf("demo level: %v", err))
	}
	return newGame(lvl, time.Now().UnixNano())
}

func newGame(lvl *Level, seed int64) *Game {
	b := lvl.Grid.Bounds()
	g := &Game{
		gameWidth:  int(b.X),
		gameHeight: int(b.Y),
		offX:       borderWidth,
		offY:       borderWidth,
		level:      lvl,
		events:     NewEventLog(),
		showFog:    true,
		showHUD:    true,
		prevKeys:   make(map[ebiten.Key]bool),
		hudFace:    text.NewGoXFace(basicfont.Face7x13),
	}
	g.width = borderWidth + g.gameWidth + borderWidth + logPanelWidth
	g.height = borderWidth + g.gameHeight + borderWidth
	g.reset(seed)
	return g
}

// reset rebuilds the world from the level, keeping the selected weapon.
func (g *Game) reset(seed int64) {
	g.world = g.level.NewWorld(seed, ballistics.NewSimLog(false))
	g.logCursor = 0
	g.events.Reset()
	g.selectWeapon(g.weaponIdx)
}

func (g *Game) Update() error {
	g.handleInput()
	if g.statusTimer > 0 {
		g.statusTimer--
	}
	if g.paused {
		return nil
	}
	g.simTick()
	return nil
}

// simTick advances the sandbox by one fixed step.
func (g *Game) simTick() {
	p := g.world.Player
	if !p.Dead() {
		g.stepPlayer(movementInput())
		ballistics.AimAt(&p.Obj, g.cursorWorld())
		if g.firing {
			g.world.Fire(p, g.cursorWorld())
		}
	}
	g.world.Tick()
	g.pullEvents()
}

// pullEvents copies new SimLog entries into the on-screen event panel.
func (g *Game) pullEvents() {
	entries := g.world.Log.Entries()
	for _, e := range entries[g.logCursor:] {
		g.events.Add(e)
	}
	g.logCursor = len(entries)
}

// selectWeapon arms the player with WeaponTable[i]. Out of range is a no-op.
func (g *Game) selectWeapon(i int) {
	if i < 0 || i >= len(ballistics.WeaponTable) {
		return
	}
	g.weaponIdx = i
	g.world.Player.WithWeapon(&ballistics.WeaponTable[i])
	g.setStatus(ballistics.WeaponTable[i].Name)
}

func (g *Game) setStatus(msg string) {
	g.status = msg
	g.statusTimer = statusTicks
}

// stepPlayer moves the player one tick along dir, one axis at a time so it
// slides along walls.
func (g *Game) stepPlayer(dir ballistics.Vec2) {
	if dir.IsZero() {
		return
	}
	step := dir.Scale(playerSpeed * g.world.Config.Delta / dir.Norm())
	p := &g.world.Player.Obj
	if next := p.Pos.Add(ballistics.V(step.X, 0)); !g.blocked(next) {
		p.Pos = next
	}
	if next := p.Pos.Add(ballistics.V(0, step.Y)); !g.blocked(next) {
		p.Pos = next
	}
}

// blocked reports whether a player box centred on pos overlaps a solid cell.
func (g *Game) blocked(pos ballistics.Vec2) bool {
	for _, d := range [...]ballistics.Vec2{
		{X: -playerRadius, Y: -playerRadius}, {X: playerRadius, Y: -playerRadius},
		{X: -playerRadius, Y: playerRadius}, {X: playerRadius, Y: playerRadius},
	} {
		if g.world.Grid.SolidAt(g.world.Palette, pos.Add(d)) {
			return true
		}
	}
	return false
}

// cursorWorld returns the cursor position in world units.
func (g *Game) cursorWorld() ballistics.Vec2 {
	mx, my := ebiten.CursorPosition()
	return ballistics.V(float64(mx-g.offX), float64(my-g.offY))
}

func movementInput() ballistics.Vec2 {
	var d ballistics.Vec2
	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		d.Y--
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		d.Y++
	}
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		d.X--
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		d.X++
	}
	return d
}

// handleInput processes keypresses (edge-triggered) and the fire button.
func (g *Game) handleInput() {
	currentKeys := map[ebiten.Key]bool{}
	pressed := func(k ebiten.Key) bool {
		currentKeys[k] = ebiten.IsKeyPressed(k)
		return currentKeys[k] && !g.prevKeys[k]
	}

	for i, k := range weaponKeys {
		if pressed(k) {
			g.selectWeapon(i)
		}
	}

	// F: fog of war.
	if pressed(ebiten.KeyF) {
		g.showFog = !g.showFog
	}
	// P: pause.
	if pressed(ebiten.KeyP) {
		g.paused = !g.paused
	}
	// H: HUD.
	if pressed(ebiten.KeyH) {
		g.showHUD = !g.showHUD
	}
	// R: reload.
	if pressed(ebiten.KeyR) && g.world.Player.Weapon != nil {
		g.world.Player.Weapon.Reload()
	}
	// N: new round on the same level.
	if pressed(ebiten.KeyN) {
		g.reset(time.Now().UnixNano())
		g.setStatus("level reset")
	}
	// C: copy the full event log.
	if pressed(ebiten.KeyC) {
		g.copyLog()
	}

	g.firing = ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	g.prevKeys = currentKeys
}

func (g *Game) copyLog() {
	if err := clipboard.WriteAll(g.world.Log.Format()); err != nil {
		g.setStatus(fmt.Sprintf("clipboard: %v", err))
		return
	}
	g.setStatus(fmt.Sprintf("copied %d log entries", g.world.Log.Len()))
}

func (g *Game) Layout(_, _ int) (int, int) {
	return g.width, g.height
}

// GameWidth returns the level width in pixels (excluding the event panel).
func (g *Game) GameWidth() int {
	return g.gameWidth
}

// WindowSize returns the full window size in pixels.
func (g *Game) WindowSize() (int, int) {
	return g.width, g.height
}
