package game

import (
	"fmt"
	"image/color"

	"github.com/Garsondee/Ballistic-Sense/internal/ballistics"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	logPanelWidth = 320
	logMaxEntries = 60
	logLineHeight = 14
)

// categoryColors tints the marker beside each event line.
var categoryColors = map[string]color.RGBA{
	"bullet":     {R: 230, G: 180, B: 60, A: 255},
	"perception": {R: 90, G: 140, B: 230, A: 255},
	"world":      {R: 220, G: 70, B: 70, A: 255},
	"fire":       {R: 150, G: 150, B: 150, A: 255},
}

// EventLog is a ring buffer of the most recent world events, rendered as a
// side panel. The full history stays in the world's SimLog.
type EventLog struct {
	entries []ballistics.SimLogEntry
	head    int
	count   int
}

// NewEventLog creates an event log with a fixed capacity.
func NewEventLog() *EventLog {
	return &EventLog{entries: make([]ballistics.SimLogEntry, logMaxEntries)}
}

// Add appends an entry, overwriting the oldest when full.
func (el *EventLog) Add(e ballistics.SimLogEntry) {
	el.entries[el.head] = e
	el.head = (el.head + 1) % logMaxEntries
	if el.count < logMaxEntries {
		el.count++
	}
}

// Reset drops every entry.
func (el *EventLog) Reset() {
	el.head, el.count = 0, 0
}

// Recent returns entries in chronological order (oldest first).
func (el *EventLog) Recent() []ballistics.SimLogEntry {
	result := make([]ballistics.SimLogEntry, el.count)
	for i := 0; i < el.count; i++ {
		idx := (el.head - el.count + i + logMaxEntries) % logMaxEntries
		result[i] = el.entries[idx]
	}
	return result
}

// eventLine is the panel text for one entry.
func eventLine(e ballistics.SimLogEntry) string {
	return fmt.Sprintf("%4d %-8s %s %s", e.Tick, e.Subject, e.Event, e.Value)
}

// Draw renders the panel at panelX, newest entries at the bottom.
func (el *EventLog) Draw(screen *ebiten.Image, face text.Face, panelX, panelH int) {
	px := float32(panelX)
	vector.FillRect(screen, px, 0, logPanelWidth, float32(panelH), color.RGBA{R: 10, G: 12, B: 14, A: 248}, false)
	vector.StrokeLine(screen, px, 0, px, float32(panelH), 1.0, color.RGBA{R: 50, G: 60, B: 80, A: 255}, false)

	vector.FillRect(screen, px, 0, logPanelWidth, 18, color.RGBA{R: 20, G: 26, B: 36, A: 255}, false)
	drawText(screen, face, "EVENTS", panelX+8, 3, color.White)
	vector.StrokeLine(screen, px, 18, px+logPanelWidth, 18, 1.0, color.RGBA{R: 50, G: 70, B: 90, A: 200}, false)

	entries := el.Recent()
	maxVisible := (panelH - 26) / logLineHeight
	if len(entries) > maxVisible {
		entries = entries[len(entries)-maxVisible:]
	}

	const highlight = 3
	y := 22
	for i, e := range entries {
		recent := i >= len(entries)-highlight
		if recent {
			vector.FillRect(screen, px+2, float32(y), logPanelWidth-4, logLineHeight, color.RGBA{R: 30, G: 36, B: 48, A: 160}, false)
		}
		dot, ok := categoryColors[e.Event.Category()]
		if !ok {
			dot = color.RGBA{R: 200, G: 200, B: 200, A: 255}
		}
		vector.FillRect(screen, px+5, float32(y+4), 3, 6, dot, false)

		clr := color.RGBA{R: 150, G: 150, B: 150, A: 255}
		if recent {
			clr = color.RGBA{R: 240, G: 240, B: 240, A: 255}
		}
		drawText(screen, face, eventLine(e), panelX+12, y+1, clr)
		y += logLineHeight
	}
}

// drawText draws one line with its top-left corner at (x, y).
func drawText(dst *ebiten.Image, face text.Face, s string, x, y int, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(x), float64(y))
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(dst, s, face, op)
}
