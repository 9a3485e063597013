package damage

import "autoresolve-sim/internal/unit"

// FinalState bounds what a damage request may do to a unit and its crew.
type FinalState int

const (
	AnyFate FinalState = iota
	CrewMustSurvive
	UnitMustSurvive
	CrewAndUnitMustSurvive
	// DamageOnly never touches the crew.
	DamageOnly
)

func (f FinalState) String() string {
	switch f {
	case CrewMustSurvive:
		return "crew_must_survive"
	case UnitMustSurvive:
		return "unit_must_survive"
	case CrewAndUnitMustSurvive:
		return "crew_and_unit_must_survive"
	case DamageOnly:
		return "damage_only"
	default:
		return "any_fate"
	}
}

func (f FinalState) crewMustSurvive() bool {
	return f == CrewMustSurvive || f == CrewAndUnitMustSurvive || f == DamageOnly
}

func (f FinalState) unitMustSurvive() bool {
	return f == UnitMustSurvive || f == CrewAndUnitMustSurvive
}

func (f FinalState) crewDamageAllowed() bool {
	return f != DamageOnly
}

// Request describes one damage application.
type Request struct {
	Damage      int
	ClusterSize int
	FinalState  FinalState
	// Devastate zeroes the unit after the incremental pass regardless of
	// FinalState.
	Devastate bool
}

// HitDetails is a snapshot of one cluster landing on one location.
// Location is -1 for headcount hits.
type HitDetails struct {
	Location          int
	Damage            int
	ArmorAfter        int
	Penetrated        bool
	Spillover         int
	CrewHits          int
	CriticalSlot      int
	LocationDestroyed bool
}

// Outcome summarizes an Apply call.
type Outcome struct {
	Hits     []HitDetails
	Clusters int
	// Applied is armor plus structure (or troopers) actually removed by
	// the incremental pass.
	Applied   int
	Discarded int
	CrewHits  int
	Ejected   bool
	Destroyed bool
	Removal   unit.Removal
}
