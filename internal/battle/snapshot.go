package battle

import (
	"slices"

	"autoresolve-sim/internal/unit"
)

// Snapshot is a deep copy of the battle taken between phases, for readers
// outside the driving goroutine.
type Snapshot struct {
	Round      int
	Phase      Phase
	Units      []*unit.Unit
	Graveyard  []GraveRecord
	Removed    []*unit.Unit
	Formations []*Formation
	Players    []Player
}

// Snapshot copies the current state.
func (s *State) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := Snapshot{Round: s.round, Phase: s.phase}
	for _, e := range s.arena {
		if e.status == statusActive {
			snap.Units = append(snap.Units, e.unit.Clone())
		} else {
			snap.Removed = append(snap.Removed, e.unit.Clone())
		}
	}
	snap.Graveyard = append(snap.Graveyard, s.graveyard...)
	for _, id := range s.formOrder {
		snap.Formations = append(snap.Formations, s.formations[id].clone())
	}
	for _, p := range s.players {
		snap.Players = append(snap.Players, *p)
	}
	slices.SortFunc(snap.Players, func(a, b Player) int { return a.ID - b.ID })
	return snap
}
