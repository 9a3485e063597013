package damage

import (
	"math"
	"math/rand"

	"autoresolve-sim/internal/unit"
)

// RemovalRule turns a removal condition into a damage footprint.
type RemovalRule struct {
	// Multiplier is the share of the unit's current health rolled as d6s.
	Multiplier float64
	FinalState FinalState
	Devastate  bool
}

// Tuning holds the empirically chosen constants of the damage model.
type Tuning struct {
	// CrewSurvivalMargin is how far below the death threshold crew hits are
	// capped when the crew must survive.
	CrewSurvivalMargin int
	ClusterSize        int
	Removal            map[unit.Removal]RemovalRule
}

// DefaultTuning returns the stock constants.
func DefaultTuning() Tuning {
	return Tuning{
		CrewSurvivalMargin: 1,
		ClusterSize:        5,
		Removal: map[unit.Removal]RemovalRule{
			unit.RemovalRetreating:  {Multiplier: 0.6, FinalState: CrewAndUnitMustSurvive},
			unit.RemovalCaptured:    {Multiplier: 0.6, FinalState: CrewAndUnitMustSurvive},
			unit.RemovalEjected:     {Multiplier: 1.0, FinalState: CrewMustSurvive},
			unit.RemovalSalvageable: {Multiplier: 0.9, FinalState: DamageOnly},
			unit.RemovalDevastated:  {Multiplier: 3.0, FinalState: AnyFate, Devastate: true},
			unit.RemovalOther:       {Multiplier: 0.5, FinalState: AnyFate},
		},
	}
}

func (t Tuning) withDefaults() Tuning {
	d := DefaultTuning()
	if t.CrewSurvivalMargin <= 0 {
		t.CrewSurvivalMargin = d.CrewSurvivalMargin
	}
	if t.ClusterSize <= 0 {
		t.ClusterSize = d.ClusterSize
	}
	if t.Removal == nil {
		t.Removal = d.Removal
		return t
	}
	merged := make(map[unit.Removal]RemovalRule, len(d.Removal))
	for k, v := range d.Removal {
		merged[k] = v
	}
	for k, v := range t.Removal {
		merged[k] = v
	}
	t.Removal = merged
	return t
}

// Chooser picks the damage behavior for a unit and derives dice-based
// damage for units leaving the battle outside direct combat.
type Chooser struct {
	applier *Applier
	rand    *rand.Rand
}

// NewChooser wraps an Applier. Dice rolls share the applier's source.
func NewChooser(a *Applier) *Chooser {
	return &Chooser{applier: a, rand: a.rand}
}

// Applier returns the wrapped Applier.
func (c *Chooser) Applier() *Applier { return c.applier }

// PolicyFor returns the policy the applier will use for u.
func (c *Chooser) PolicyFor(u *unit.Unit) Policy { return PolicyFor(u.Category) }

// RollDamage rolls the damage a removal condition implies for u.
func (c *Chooser) RollDamage(u *unit.Unit, removal unit.Removal) (int, RemovalRule) {
	rule, ok := c.applier.tuning.Removal[removal]
	if !ok {
		rule = c.applier.tuning.Removal[unit.RemovalOther]
	}
	dice := int(math.Ceil(rule.Multiplier * float64(u.CurrentHealth()) / 3.5))
	total := 0
	for i := 0; i < dice; i++ {
		total += c.rand.Intn(6) + 1
	}
	return total, rule
}

// DamageRemovedUnit applies a plausible damage footprint to a unit leaving
// the battle for the given reason and records that reason on it.
func (c *Chooser) DamageRemovedUnit(u *unit.Unit, removal unit.Removal) Outcome {
	dmg, rule := c.RollDamage(u, removal)
	out := c.applier.Apply(u, Request{
		Damage:      dmg,
		ClusterSize: c.applier.tuning.ClusterSize,
		FinalState:  rule.FinalState,
		Devastate:   rule.Devastate,
	})

	switch removal {
	case unit.RemovalEjected:
		if u.HasCrew() && u.CanEject {
			u.Crew.Ejected = true
			out.Ejected = true
		}
		u.Destroyed = true
		u.Removal = unit.RemovalEjected
	case unit.RemovalSalvageable:
		u.Destroyed = true
		u.Removal = unit.RemovalSalvageable
	}
	if u.Removal == unit.RemovalNone {
		u.Removal = removal
	}
	out.Destroyed = u.Destroyed
	out.Removal = u.Removal
	return out
}
