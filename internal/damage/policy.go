package damage

import (
	"slices"

	"autoresolve-sim/internal/unit"
)

// Policy is the per-category behavior bundle consumed by Applier.Apply.
type Policy struct {
	// Weights biases location selection. Locations past the end of the
	// slice use DefaultWeight.
	Weights       []int
	DefaultWeight int
	// Fatal locations destroy the whole unit when lost.
	Fatal []int
	// CrewLocations carry the crew. Losing one is lethal to the crew.
	CrewLocations []int
	// CrewHitOnAnyHit applies a crew hit even when armor holds.
	CrewHitOnAnyHit bool
	// ProtectLifeSupport keeps critical hits off life-critical slots while
	// the unit or crew must survive.
	ProtectLifeSupport bool
	// Headcount applies damage as trooper losses instead of locations.
	Headcount bool
	// TrooperLocations tracks one trooper per location.
	TrooperLocations bool
}

// PolicyFor returns the damage policy for a unit category.
func PolicyFor(c unit.Category) Policy {
	switch c {
	case unit.CategoryMek:
		return Policy{
			Weights:            []int{1},
			DefaultWeight:      6,
			Fatal:              []int{unit.MekHead, unit.MekCenterTorso},
			CrewLocations:      []int{unit.MekHead},
			CrewHitOnAnyHit:    true,
			ProtectLifeSupport: true,
		}
	case unit.CategoryProtoMek:
		return Policy{
			Weights:            []int{1},
			DefaultWeight:      6,
			Fatal:              []int{unit.ProtoHead, unit.ProtoTorso},
			CrewLocations:      []int{unit.ProtoHead},
			CrewHitOnAnyHit:    true,
			ProtectLifeSupport: true,
		}
	case unit.CategoryTank:
		return Policy{
			DefaultWeight:      1,
			Fatal:              []int{unit.TankFront, unit.TankLeft, unit.TankRight, unit.TankRear},
			CrewLocations:      []int{unit.TankFront},
			ProtectLifeSupport: true,
		}
	case unit.CategoryBattleArmor:
		return Policy{DefaultWeight: 1, TrooperLocations: true}
	case unit.CategoryInfantry:
		return Policy{DefaultWeight: 1, Headcount: true}
	default:
		return Policy{
			DefaultWeight:      1,
			Fatal:              []int{0},
			CrewLocations:      []int{0},
			ProtectLifeSupport: true,
		}
	}
}

func (p Policy) weight(loc int) int {
	if loc < len(p.Weights) {
		return p.Weights[loc]
	}
	if p.DefaultWeight <= 0 {
		return 1
	}
	return p.DefaultWeight
}

func (p Policy) fatal(loc int) bool { return slices.Contains(p.Fatal, loc) }

func (p Policy) crewLocation(loc int) bool { return slices.Contains(p.CrewLocations, loc) }

// lifeCritical reports whether losing loc would take the unit out.
func (p Policy) lifeCritical(u *unit.Unit, loc int) bool {
	if p.fatal(loc) {
		return true
	}
	if p.ProtectLifeSupport && u.HasIntactLifeSupport(loc) {
		return true
	}
	for i := range u.Locations {
		if i != loc && !u.IsLocationDestroyed(i) {
			return false
		}
	}
	return true
}
