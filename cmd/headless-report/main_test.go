package main

import (
	"testing"

	"github.com/Garsondee/Ballistic-Sense/internal/ballistics"
)

func testConfig() reportConfig {
	return reportConfig{
		runs:     3,
		ticks:    240,
		seedBase: 42,
		seedStep: 1,
		delta:    1.0 / 60.0,
		scenario: "firing-range",
		parallel: 2,
	}
}

func TestValidate_RejectsBadFlags(t *testing.T) {
	cases := []struct {
		name string
		mut  func(*reportConfig)
	}{
		{"zero runs", func(rc *reportConfig) { rc.runs = 0 }},
		{"zero ticks", func(rc *reportConfig) { rc.ticks = 0 }},
		{"negative delta", func(rc *reportConfig) { rc.delta = -1 }},
		{"zero parallel", func(rc *reportConfig) { rc.parallel = 0 }},
		{"unknown scenario", func(rc *reportConfig) { rc.scenario = "mutual-advance" }},
	}
	if err := testConfig().validate(); err != nil {
		t.Fatalf("default test config should be valid, got %v", err)
	}
	for _, c := range cases {
		rc := testConfig()
		c.mut(&rc)
		if err := rc.validate(); err == nil {
			t.Fatalf("%s: expected an error", c.name)
		}
	}
}

func TestRunAll_OrderedAndDeterministic(t *testing.T) {
	rc := testConfig()
	a, err := runAll(rc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := runAll(rc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(a) != rc.runs {
		t.Fatalf("expected %d runs, got %d", rc.runs, len(a))
	}
	for i := range a {
		if a[i].runIndex != i+1 || a[i].seed != rc.seedBase+int64(i) {
			t.Fatalf("run %d out of order: index=%d seed=%d", i, a[i].runIndex, a[i].seed)
		}
		if a[i].stats != b[i].stats {
			t.Fatalf("run %d not deterministic:\n%+v\n%+v", i, a[i].stats, b[i].stats)
		}
		if a[i].runID == b[i].runID {
			t.Fatal("every run should get a fresh id")
		}
		if a[i].stats.Fired == 0 {
			t.Fatalf("run %d never fired", i)
		}
	}
}

func TestFirstTick(t *testing.T) {
	sl := ballistics.NewSimLog(false)
	sl.Add(3, "a", ballistics.EventPenetrate, "wall", 800)
	sl.Add(5, "a", ballistics.EventHitEnemy, "E2", 800)
	sl.Add(9, "b", ballistics.EventHitWall, "wall", 900)
	if got := firstTick(sl.Outcomes(ballistics.HitNone)); got != 5 {
		t.Fatalf("a penetration is not an outcome; expected 5, got %d", got)
	}
	if got := firstTick(sl.Outcomes(ballistics.HitWall)); got != 9 {
		t.Fatalf("expected 9, got %d", got)
	}
	if got := firstTick(sl.Outcomes(ballistics.HitPlayer)); got != -1 {
		t.Fatalf("expected -1, got %d", got)
	}
}

func TestHelpers(t *testing.T) {
	if avg(9, 0) != 0 || avg(9, 3) != 3 {
		t.Fatal("avg should divide and guard zero")
	}
	if avgTickString(nil) != "n/a" || avgTickString([]int{2, 3}) != "2.5" {
		t.Fatal("unexpected avgTickString output")
	}
	if share(1, 0) != "n/a" || share(1, 4) != "25.0%" {
		t.Fatal("unexpected share output")
	}
	if joinSet(nil) != "none" || joinSet(map[string]struct{}{"E2": {}, "E1": {}}) != "E1,E2" {
		t.Fatal("joinSet should sort labels")
	}
}
