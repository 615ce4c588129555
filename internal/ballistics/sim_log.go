package ballistics

import (
	"fmt"
	"strings"
)

// Event names one kind of world event. The kind fixes its log category and
// whether it is per-tick detail.
type Event string

const (
	EventShot        Event = "shot"
	EventBeam        Event = "beam"
	EventHitWall     Event = "hit_wall"
	EventSpent       Event = "spent"
	EventHitPlayer   Event = "hit_player"
	EventHitEnemy    Event = "hit_enemy"
	EventPenetrate   Event = "penetrate"
	EventBounce      Event = "bounce"
	EventEnemyDown   Event = "enemy_down"
	EventContactNew  Event = "contact_new"
	EventContactLost Event = "contact_lost"
)

// Category groups events for display: fire, bullet, world or perception.
func (ev Event) Category() string {
	switch ev {
	case EventShot, EventBeam:
		return "fire"
	case EventEnemyDown:
		return "world"
	case EventContactNew, EventContactLost:
		return "perception"
	}
	return "bullet"
}

// Verbose events are only kept by a verbose log.
func (ev Event) Verbose() bool {
	return ev == EventShot || ev == EventBeam || ev == EventBounce
}

// outcomeEvents maps a tick outcome to the events that record it.
var outcomeEvents = map[HitKind][]Event{
	HitWall:   {EventHitWall, EventSpent},
	HitPlayer: {EventHitPlayer},
	HitEnemy:  {EventHitEnemy},
}

// SimLogEntry is one recorded event.
type SimLogEntry struct {
	Tick    int
	Subject string // bullet label, enemy label or "player"
	Event   Event
	Value   string  // human-readable detail
	NumVal  float64 // speed, distance or heading, depending on the event
}

// String formats the entry as a fixed-width log line.
//
//	[T=042] 3f2a91c0 bullet    hit_enemy        E1 headshot
func (e SimLogEntry) String() string {
	return fmt.Sprintf("[T=%03d] %-8s %-10s %-16s %s",
		e.Tick, e.Subject, e.Event.Category(), e.Event, e.Value)
}

// SimLog is the unbounded event history of one world.
type SimLog struct {
	entries []SimLogEntry
	verbose bool
}

// NewSimLog creates a SimLog. If verbose is true, shots, beams and
// ricochets are recorded as well.
func NewSimLog(verbose bool) *SimLog {
	return &SimLog{verbose: verbose}
}

// Add records an event, dropping per-tick detail unless the log is verbose.
func (sl *SimLog) Add(tick int, subject string, ev Event, value string, numVal float64) {
	if ev.Verbose() && !sl.verbose {
		return
	}
	sl.entries = append(sl.entries, SimLogEntry{
		Tick:    tick,
		Subject: subject,
		Event:   ev,
		Value:   value,
		NumVal:  numVal,
	})
}

// Entries returns all recorded entries.
func (sl *SimLog) Entries() []SimLogEntry {
	return sl.entries
}

func (sl *SimLog) Len() int { return len(sl.entries) }

// Count returns how many times ev was recorded.
func (sl *SimLog) Count(ev Event) int {
	n := 0
	for _, e := range sl.entries {
		if e.Event == ev {
			n++
		}
	}
	return n
}

// Last returns the most recent ev entry.
func (sl *SimLog) Last(ev Event) (SimLogEntry, bool) {
	for i := len(sl.entries) - 1; i >= 0; i-- {
		if sl.entries[i].Event == ev {
			return sl.entries[i], true
		}
	}
	return SimLogEntry{}, false
}

// Has reports whether ev was recorded with a value containing detail.
func (sl *SimLog) Has(ev Event, detail string) bool {
	for _, e := range sl.entries {
		if e.Event == ev && strings.Contains(e.Value, detail) {
			return true
		}
	}
	return false
}

// FirstTick returns the tick ev was first recorded, or -1.
func (sl *SimLog) FirstTick(ev Event) int {
	for _, e := range sl.entries {
		if e.Event == ev {
			return e.Tick
		}
	}
	return -1
}

// Outcomes returns the entries that ended or wounded a bullet with the given
// hit kind, in order. HitNone selects every outcome.
func (sl *SimLog) Outcomes(kind HitKind) []SimLogEntry {
	var want []Event
	if kind == HitNone {
		for _, evs := range outcomeEvents {
			want = append(want, evs...)
		}
	} else {
		want = outcomeEvents[kind]
	}
	var out []SimLogEntry
	for _, e := range sl.entries {
		for _, ev := range want {
			if e.Event == ev {
				out = append(out, e)
				break
			}
		}
	}
	return out
}

// Format returns the full log, one line per entry.
func (sl *SimLog) Format() string {
	var sb strings.Builder
	for _, e := range sl.entries {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Summary returns a short human-readable summary of the world state.
func (sl *SimLog) Summary(w *World) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "--- Summary at T=%03d ---\n", w.CurrentTick())
	s := w.Stats
	fmt.Fprintf(&sb, "Shots: fired=%d  hits=%d  headshots=%d  misses=%d\n",
		s.Fired, s.Hits(), s.Headshots, s.Misses())
	fmt.Fprintf(&sb, "Walls: stopped=%d  spent=%d  penetrations=%d  bounces=%d\n",
		s.WallStops, s.Spent, s.Penetrations, s.Bounces)
	fmt.Fprintf(&sb, "Live bullets: %d  logged outcomes: %d\n", len(w.Bullets), len(sl.Outcomes(HitNone)))

	alive := 0
	var contacts []string
	for _, e := range w.Enemies {
		if !e.Dead() {
			alive++
		}
		if e.HasContact {
			contacts = append(contacts, e.Label)
		}
	}
	fmt.Fprintf(&sb, "Enemies alive: %d  down: %d\n", alive, s.EnemiesDown)
	if len(contacts) == 0 {
		sb.WriteString("Contacts: none\n")
	} else {
		fmt.Fprintf(&sb, "Contacts: player → [%s]\n", strings.Join(contacts, ", "))
	}
	return sb.String()
}
