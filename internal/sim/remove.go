package sim

import (
	"autoresolve-sim/internal/battle"
	"autoresolve-sim/internal/damage"
	"autoresolve-sim/internal/unit"
)

// RemoveUnit takes an active unit out of the battle for a reason other than
// direct combat. The chooser applies a damage footprint matching removal
// before the unit enters the graveyard. It returns false when id is not in
// play.
func RemoveUnit(state *battle.State, chooser *damage.Chooser, id int, removal unit.Removal) (damage.Outcome, bool) {
	u, ok := state.Entity(id)
	if !ok {
		state.Logger().Debug("removal of inactive unit", "unit", id, "removal", removal.String())
		return damage.Outcome{}, false
	}
	out := chooser.DamageRemovedUnit(u, removal)
	return out, state.AddUnitToGraveyard(id, removal)
}
