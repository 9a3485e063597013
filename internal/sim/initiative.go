package sim

import (
	"cmp"
	"slices"

	"autoresolve-sim/internal/battle"
	"autoresolve-sim/internal/tactics"
)

// RollInitiative rolls 2d6 for every formation still in play and returns
// the turn order, highest first. Equal rolls are settled by a second
// random draw and then by formation id so the order is total.
func RollInitiative(state *battle.State, eng *tactics.Engine) []battle.Turn {
	type entry struct {
		f        *battle.Formation
		roll     int
		tiebreak int
	}
	var entries []entry
	for _, f := range state.Formations() {
		if !state.FormationAlive(f.ID) {
			continue
		}
		e := entry{f: f, roll: eng.Roll2D6(), tiebreak: eng.Pick(1 << 16)}
		f.Initiative = e.roll
		entries = append(entries, e)
	}
	slices.SortFunc(entries, func(a, b entry) int {
		if c := cmp.Compare(b.roll, a.roll); c != 0 {
			return c
		}
		if c := cmp.Compare(b.tiebreak, a.tiebreak); c != 0 {
			return c
		}
		return cmp.Compare(a.f.ID, b.f.ID)
	})
	turns := make([]battle.Turn, 0, len(entries))
	for _, e := range entries {
		turns = append(turns, battle.Turn{FormationID: e.f.ID, PlayerID: e.f.Owner})
	}
	return turns
}
