package main

import (
	"log"

	"github.com/Garsondee/Ballistic-Sense/internal/game"
	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	g := game.New()
	w, h := g.WindowSize()
	ebiten.SetWindowTitle("Ballistic Sense")
	ebiten.SetWindowSize(w, h)
	ebiten.SetCursorMode(ebiten.CursorModeVisible)
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
