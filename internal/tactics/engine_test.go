package tactics

import (
	"math/rand"
	"testing"
)

func testEngine(f float64) *Engine {
	e := NewEngine(rand.New(rand.NewSource(1)))
	e.randFloat = func() float64 { return f }
	return e
}

func TestDestination_PursueClosesToShortRange(t *testing.T) {
	e := testEngine(0.9)
	self := Force{ID: 1, Position: 0, Movement: 5, Range: 9, Health: 1}
	enemy := Force{ID: 2, Position: 20}
	if got := e.Destination(self, []Force{enemy}); got != 5 {
		t.Fatalf("expected full move to 5, got %d", got)
	}
	self.Position = 15
	if got := e.Destination(self, []Force{enemy}); got != 17 {
		t.Fatalf("expected to stop at short range (17), got %d", got)
	}
	self.Position = 18
	if got := e.Destination(self, []Force{enemy}); got != 18 {
		t.Fatalf("expected to hold inside short range, got %d", got)
	}
}

func TestDestination_EvadeFallsBackHome(t *testing.T) {
	e := testEngine(0.9)
	self := Force{ID: 1, Position: 10, Home: 0, Movement: 4, Range: 9, Health: 0.2}
	if got := e.Destination(self, []Force{{ID: 2, Position: 12}}); got != 6 {
		t.Fatalf("expected retreat to 6, got %d", got)
	}
}

func TestDestination_NoEnemiesHolds(t *testing.T) {
	e := testEngine(0.9)
	self := Force{Position: 3, Movement: 4, Health: 1}
	if got := e.Destination(self, nil); got != 3 {
		t.Fatalf("expected hold, got %d", got)
	}
}

func TestChooseTarget_NearestInRange(t *testing.T) {
	e := testEngine(0.9)
	self := Force{ID: 1, Position: 0, Range: 6}
	enemies := []Force{{ID: 2, Position: 6, Health: 0.1}, {ID: 3, Position: 4, Health: 1}, {ID: 4, Position: 9}}
	id, ok := e.ChooseTarget(self, enemies)
	if !ok || id != 3 {
		t.Fatalf("expected nearest target 3, got %d (%v)", id, ok)
	}
}

func TestChooseTarget_OpportunistPicksWeakest(t *testing.T) {
	e := testEngine(0.1)
	self := Force{ID: 1, Position: 0, Range: 6}
	enemies := []Force{{ID: 2, Position: 6, Health: 0.1}, {ID: 3, Position: 4, Health: 1}}
	id, ok := e.ChooseTarget(self, enemies)
	if !ok || id != 2 {
		t.Fatalf("expected weakest target 2, got %d", id)
	}
}

func TestChooseTarget_OutOfRange(t *testing.T) {
	e := testEngine(0.9)
	if _, ok := e.ChooseTarget(Force{Position: 0, Range: 3}, []Force{{ID: 2, Position: 10}}); ok {
		t.Fatalf("expected no target")
	}
}

func TestEngine_DeterministicRolls(t *testing.T) {
	a := NewEngine(rand.New(rand.NewSource(42)))
	b := NewEngine(rand.New(rand.NewSource(42)))
	for i := 0; i < 50; i++ {
		ra, rb := a.Roll2D6(), b.Roll2D6()
		if ra != rb {
			t.Fatalf("roll %d differs: %d vs %d", i, ra, rb)
		}
		if ra < 2 || ra > 12 {
			t.Fatalf("roll out of range: %d", ra)
		}
	}
}

func TestTargetNumber(t *testing.T) {
	cases := []struct {
		distance, maxRange, movement int
		want                         int
		ok                           bool
	}{
		{distance: 1, maxRange: 9, movement: 0, want: 4, ok: true},
		{distance: 5, maxRange: 9, movement: 3, want: 7, ok: true},
		{distance: 9, maxRange: 9, movement: 6, want: 10, ok: true},
		{distance: 10, maxRange: 9, ok: false},
	}
	for _, c := range cases {
		got, ok := TargetNumber(4, c.distance, c.maxRange, c.movement)
		if ok != c.ok || (ok && got != c.want) {
			t.Fatalf("TargetNumber(4, %d, %d, %d) = %d, %v; want %d, %v",
				c.distance, c.maxRange, c.movement, got, ok, c.want, c.ok)
		}
	}
}
