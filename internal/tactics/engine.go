// Package tactics makes the per-formation decisions used by the battle
// phases: where to move, what to shoot at and whether a shot lands.
package tactics

import (
	"math/rand"
	"slices"
)

// Force is a formation as seen by the decision helpers.
type Force struct {
	ID       int
	Position int
	Home     int
	// Movement is the slowest unit's movement.
	Movement int
	// Range is the longest reach among the formation's units.
	Range  int
	Health float64
}

// Engine decides formation behavior. All randomness comes from the battle's
// source so a seed reproduces every decision.
type Engine struct {
	rand      *rand.Rand
	randFloat func() float64
	// EvadeBelow is the health fraction under which a formation falls back
	// toward its home position instead of closing in.
	EvadeBelow float64
	// Opportunism is the chance a formation fires on the most damaged enemy
	// in range instead of the nearest one.
	Opportunism float64
}

// NewEngine returns an engine drawing from r.
func NewEngine(r *rand.Rand) *Engine {
	return &Engine{rand: r, randFloat: r.Float64, EvadeBelow: 0.35, Opportunism: 0.25}
}

// Distance returns the gap between two board positions.
func Distance(a, b int) int {
	if a > b {
		return a - b
	}
	return b - a
}

func step(from, to, n int) int {
	switch {
	case from < to:
		return min(from+n, to)
	case from > to:
		return max(from-n, to)
	}
	return from
}

func nearest(self Force, enemies []Force) Force {
	best := enemies[0]
	for _, e := range enemies[1:] {
		d, bd := Distance(self.Position, e.Position), Distance(self.Position, best.Position)
		if d < bd || (d == bd && e.ID < best.ID) {
			best = e
		}
	}
	return best
}

// Destination returns where self should move this round. Healthy
// formations close to short range of the nearest enemy; damaged ones fall
// back toward home.
func (e *Engine) Destination(self Force, enemies []Force) int {
	if len(enemies) == 0 || self.Movement <= 0 {
		return self.Position
	}
	if self.Health < e.EvadeBelow {
		return step(self.Position, self.Home, self.Movement)
	}
	target := nearest(self, enemies)
	gap := Distance(self.Position, target.Position) - ShortRange(self.Range)
	if gap <= 0 {
		return self.Position
	}
	return step(self.Position, target.Position, min(self.Movement, gap))
}

// ChooseTarget picks an enemy within self's range. It returns false when
// nothing is in reach.
func (e *Engine) ChooseTarget(self Force, enemies []Force) (int, bool) {
	var inRange []Force
	for _, en := range enemies {
		if Distance(self.Position, en.Position) <= self.Range {
			inRange = append(inRange, en)
		}
	}
	if len(inRange) == 0 {
		return 0, false
	}
	if len(inRange) > 1 && e.randFloat() < e.Opportunism {
		weakest := slices.MinFunc(inRange, func(a, b Force) int {
			switch {
			case a.Health < b.Health:
				return -1
			case a.Health > b.Health:
				return 1
			}
			return a.ID - b.ID
		})
		return weakest.ID, true
	}
	return nearest(self, inRange).ID, true
}

// Pick returns a uniformly chosen index below n.
func (e *Engine) Pick(n int) int {
	if n <= 1 {
		return 0
	}
	return e.rand.Intn(n)
}

// Roll2D6 rolls two six-sided dice.
func (e *Engine) Roll2D6() int {
	return e.rand.Intn(6) + e.rand.Intn(6) + 2
}

// ToHit rolls against tn.
func (e *Engine) ToHit(tn int) (int, bool) {
	roll := e.Roll2D6()
	return roll, roll >= tn
}
