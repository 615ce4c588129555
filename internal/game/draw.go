package game

import (
	"fmt"
	"image/color"
	"math"

	"github.com/Garsondee/Ballistic-Sense/internal/ballistics"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	beamFade  = 6    // ticks a laser beam takes to fade out on screen
	barFullHP = 10.0 // health bar scale
)

// materialColors is the render colour of each known material.
var materialColors = map[ballistics.Material]color.RGBA{
	ballistics.MaterialGrass:     {R: 48, G: 78, B: 42, A: 255},
	ballistics.MaterialWall:      {R: 120, G: 112, B: 100, A: 255},
	ballistics.MaterialFloor:     {R: 92, G: 88, B: 80, A: 255},
	ballistics.MaterialDirt:      {R: 96, G: 72, B: 48, A: 255},
	ballistics.MaterialAsphalt:   {R: 46, G: 46, B: 50, A: 255},
	ballistics.MaterialSand:      {R: 170, G: 150, B: 100, A: 255},
	ballistics.MaterialConcrete:  {R: 150, G: 150, B: 156, A: 255},
	ballistics.MaterialWoodFloor: {R: 120, G: 86, B: 52, A: 255},
}

// missingColor flags unknown cells.
var missingColor = color.RGBA{R: 255, G: 0, B: 255, A: 255}

func materialColor(m ballistics.Material) color.RGBA {
	if c, ok := materialColors[m]; ok {
		return c
	}
	return missingColor
}

// tracerColor picks the streak colour for a bullet.
func tracerColor(b *ballistics.Bullet) color.RGBA {
	switch {
	case b.Weapon.BulletType == ballistics.BulletSawBlade:
		return color.RGBA{R: 200, G: 220, B: 255, A: 230}
	case b.Penetrations > 0:
		return color.RGBA{R: 255, G: 120, B: 60, A: 230}
	default:
		return color.RGBA{R: 255, G: 230, B: 120, A: 230}
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 12, G: 14, B: 16, A: 255})

	g.updateFogMask()
	g.drawGrid(screen)
	g.drawBeams(screen)
	g.drawBullets(screen)
	g.drawEnemies(screen)
	g.drawPlayer(screen)
	if g.showFog {
		g.drawFog(screen)
	}

	ox, oy := float32(g.offX), float32(g.offY)
	gw, gh := float32(g.gameWidth), float32(g.gameHeight)
	vector.StrokeRect(screen, ox-1, oy-1, gw+2, gh+2, 2.0, color.RGBA{R: 70, G: 80, B: 96, A: 255}, false)

	g.events.Draw(screen, g.hudFace, g.offX+g.gameWidth+g.offX, g.height)
	if g.showHUD {
		g.drawHUD(screen)
	}
}

// toScreen converts world units to screen pixels.
func (g *Game) toScreen(p ballistics.Vec2) (float32, float32) {
	return float32(p.X) + float32(g.offX), float32(p.Y) + float32(g.offY)
}

func (g *Game) drawGrid(screen *ebiten.Image) {
	grid := g.world.Grid
	const cs = float32(ballistics.CellSize)
	for y := 0; y < grid.Height(); y++ {
		for x := 0; x < grid.Width(); x++ {
			m, _ := grid.Get(x, y)
			sx, sy := g.toScreen(ballistics.CellOrigin(x, y))
			vector.FillRect(screen, sx, sy, cs, cs, materialColor(m), false)
			if g.world.Palette.Solid(m) {
				vector.StrokeRect(screen, sx+0.5, sy+0.5, cs-1, cs-1, 1.0, color.RGBA{A: 90}, false)
			}
		}
	}
	drawGridOffset(screen, g.offX, g.offY, g.gameWidth, g.gameHeight, ballistics.CellSize, color.RGBA{R: 0, G: 0, B: 0, A: 28})
}

func drawGridOffset(screen *ebiten.Image, offX, offY, w, h, spacing int, c color.Color) {
	if spacing <= 0 {
		return
	}
	ox, oy := float32(offX), float32(offY)
	for x := 0; x <= w; x += spacing {
		xf := ox + float32(x)
		vector.StrokeLine(screen, xf, oy, xf, oy+float32(h), 1.0, c, false)
	}
	for y := 0; y <= h; y += spacing {
		yf := oy + float32(y)
		vector.StrokeLine(screen, ox, yf, ox+float32(w), yf, 1.0, c, false)
	}
}

func (g *Game) drawBullets(screen *ebiten.Image) {
	for _, b := range g.world.Bullets {
		if g.fogged(b.Obj.Pos) {
			continue
		}
		x0, y0 := g.toScreen(b.Prev)
		x1, y1 := g.toScreen(b.Obj.Pos)
		clr := tracerColor(b)
		if _, walled := b.InWall(); walled {
			vector.FillCircle(screen, x1, y1, 2, color.RGBA{R: 40, G: 30, B: 20, A: 255}, true)
			continue
		}
		if b.Weapon.BulletType == ballistics.BulletSawBlade {
			vector.FillCircle(screen, x1, y1, 5, clr, true)
			vector.StrokeCircle(screen, x1, y1, 7, 1, color.RGBA{R: 255, G: 255, B: 255, A: 160}, true)
			continue
		}
		vector.StrokeLine(screen, x0, y0, x1, y1, 1.5, clr, true)
		vector.FillCircle(screen, x1, y1, 1.5, color.White, true)
	}
}

func (g *Game) drawBeams(screen *ebiten.Image) {
	for _, beam := range g.world.Beams {
		alpha := 255 - beam.Age*255/beamFade
		if alpha < 40 {
			alpha = 40
		}
		clr := color.RGBA{R: 255, G: 40, B: 40, A: uint8(alpha)}
		for i := 1; i < len(beam.Points); i++ {
			x0, y0 := g.toScreen(beam.Points[i-1])
			x1, y1 := g.toScreen(beam.Points[i])
			vector.StrokeLine(screen, x0, y0, x1, y1, 2.0, clr, true)
		}
		if beam.Hit {
			ex, ey := g.toScreen(beam.End())
			vector.FillCircle(screen, ex, ey, 3, color.RGBA{R: 255, G: 200, B: 200, A: uint8(alpha)}, true)
		}
	}
}

// enemyVisible reports whether the player can see e: inside the vision cone
// with a clear line. Everything is visible with fog off.
func (g *Game) enemyVisible(e *ballistics.Enemy) bool {
	if !g.showFog {
		return true
	}
	p := g.world.Player
	return ballistics.InVisionCone(p.Obj, e.Obj.Pos, g.world.Config.VisionHalfAngle, visionRange) &&
		ballistics.CanSee(p.Obj.Pos, e.Obj.Pos, g.world.Grid)
}

func (g *Game) drawEnemies(screen *ebiten.Image) {
	r := float32(g.world.Config.HitRadius)
	for _, e := range g.world.Enemies {
		if !g.enemyVisible(e) {
			continue
		}
		x, y := g.toScreen(e.Obj.Pos)
		vector.FillCircle(screen, x, y, r, color.RGBA{R: 60, G: 100, B: 200, A: 255}, true)
		vector.StrokeCircle(screen, x, y, r, 1.5, color.RGBA{R: 20, G: 30, B: 60, A: 255}, true)

		f := e.Obj.Facing()
		vector.StrokeLine(screen, x, y, x+float32(f.X)*r*1.4, y+float32(f.Y)*r*1.4, 2, color.RGBA{R: 200, G: 220, B: 255, A: 255}, true)

		if h, ok := e.Health.(*ballistics.Health); ok {
			frac := float32(math.Max(0, h.HP) / barFullHP)
			if frac > 1 {
				frac = 1
			}
			vector.FillRect(screen, x-r, y-r-7, 2*r, 3, color.RGBA{R: 60, G: 0, B: 0, A: 200}, false)
			vector.FillRect(screen, x-r, y-r-7, 2*r*frac, 3, color.RGBA{R: 90, G: 220, B: 90, A: 255}, false)
		}
		if e.HasContact {
			drawText(screen, g.hudFace, "!", int(x)-2, int(y-r)-22, color.RGBA{R: 255, G: 220, B: 0, A: 255})
		}
		drawText(screen, g.hudFace, e.Label, int(x+r)+2, int(y)-6, color.White)
	}
}

func (g *Game) drawPlayer(screen *ebiten.Image) {
	p := g.world.Player
	x, y := g.toScreen(p.Obj.Pos)
	r := float32(g.world.Config.HitRadius)
	body := color.RGBA{R: 210, G: 70, B: 70, A: 255}
	if p.Dead() {
		body = color.RGBA{R: 80, G: 40, B: 40, A: 255}
	}
	vector.FillCircle(screen, x, y, r, body, true)
	f := p.Obj.Facing()
	vector.StrokeLine(screen, x, y, x+float32(f.X)*r*1.6, y+float32(f.Y)*r*1.6, 2, color.White, true)

	// Crosshair where the headshot check is centred.
	cx, cy := g.toScreen(g.cursorWorld())
	hr := float32(g.world.Config.HeadshotRadius)
	vector.StrokeCircle(screen, cx, cy, hr, 1, color.RGBA{R: 255, G: 255, B: 255, A: 140}, true)
	vector.StrokeLine(screen, cx-hr-4, cy, cx-hr+4, cy, 1, color.White, false)
	vector.StrokeLine(screen, cx+hr-4, cy, cx+hr+4, cy, 1, color.White, false)
}

// updateFogMask recomputes the inverse visibility mask for this frame. It
// is empty with fog off.
func (g *Game) updateFogMask() {
	if !g.showFog {
		g.fogMask = g.fogMask[:0]
		return
	}
	p := g.world.Player
	g.fogMask = ballistics.VisibleAreaWith(p.Obj.Pos, p.Obj.Rot, visionRange,
		g.world.Config.VisionHalfAngle, g.world.Config.VisionStep, g.world.Palette, g.world.Grid)
}

// fogged reports whether pt is hidden under the fog mask.
func (g *Game) fogged(pt ballistics.Vec2) bool {
	return len(g.fogMask) >= 3 && ballistics.PointInPolygon(pt, g.fogMask)
}

// drawFog fills the inverse visibility mask into an offscreen buffer and
// composites it with a single opacity so overlapping edges do not stack.
func (g *Game) drawFog(screen *ebiten.Image) {
	if g.fogBuf == nil {
		g.fogBuf = ebiten.NewImage(g.gameWidth, g.gameHeight)
	}
	buf := g.fogBuf
	buf.Clear()

	mask := g.fogMask
	if len(mask) < 3 {
		return
	}
	var path vector.Path
	path.MoveTo(float32(mask[0].X), float32(mask[0].Y))
	for _, pt := range mask[1:] {
		path.LineTo(float32(pt.X), float32(pt.Y))
	}
	path.Close()
	vector.FillPath(buf, &path, &vector.FillOptions{}, &vector.DrawPathOptions{AntiAlias: true})

	opts := &ebiten.DrawImageOptions{}
	opts.GeoM.Translate(float64(g.offX), float64(g.offY))
	opts.ColorScale.ScaleWithColor(color.RGBA{R: 8, G: 10, B: 14, A: 255})
	opts.ColorScale.ScaleAlpha(0.78)
	screen.DrawImage(buf, opts)
}

// hudLines is the HUD text for the current state.
func (g *Game) hudLines() []string {
	s := g.world.Stats
	head := fmt.Sprintf("T=%d", g.world.CurrentTick())
	if g.paused {
		head += "  PAUSED"
	}
	lines := []string{head}
	if wi := g.world.Player.Weapon; wi != nil {
		ammo := fmt.Sprintf("%d/%d", wi.Loaded, wi.Weapon.MagSize)
		if wi.Reloading() {
			ammo = "reloading"
		}
		lines = append(lines, fmt.Sprintf("[%d] %s  %s", g.weaponIdx+1, wi.Weapon.Name, ammo))
	}
	lines = append(lines,
		fmt.Sprintf("fired=%d hits=%d head=%d acc=%.0f%%", s.Fired, s.Hits(), s.Headshots, s.Accuracy()*100),
		fmt.Sprintf("pen=%d bounce=%d down=%d/%d", s.Penetrations, s.Bounces, s.EnemiesDown, s.EnemiesDown+len(g.world.Enemies)),
		"1-6 weapon  R reload  WASD move",
		"F fog  P pause  N reset  C copy log",
	)
	if g.statusTimer > 0 && g.status != "" {
		lines = append(lines, "> "+g.status)
	}
	return lines
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	lines := g.hudLines()
	const lineH = 14
	const charW = 7
	const padX = 6
	const padY = 4

	maxLen := 0
	for _, l := range lines {
		if len(l) > maxLen {
			maxLen = len(l)
		}
	}
	boxW := float32(maxLen*charW + padX*2)
	boxH := float32(len(lines)*lineH + padY*2)
	bx := float32(g.offX + 6)
	by := float32(g.offY+g.gameHeight) - boxH - 6

	vector.FillRect(screen, bx, by, boxW, boxH, color.RGBA{R: 6, G: 8, B: 12, A: 210}, false)
	vector.StrokeRect(screen, bx, by, boxW, boxH, 1.0, color.RGBA{R: 70, G: 90, B: 120, A: 180}, false)
	for i, line := range lines {
		drawText(screen, g.hudFace, line, int(bx)+padX, int(by)+padY+i*lineH, color.White)
	}
}
