package damage

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"autoresolve-sim/internal/unit"
)

func newChooser(seed int64) *Chooser {
	return NewChooser(newApplier(seed))
}

func TestPolicyDispatchByCategory(t *testing.T) {
	c := newChooser(1)
	mek := c.PolicyFor(unit.NewMek(unit.Spec{}))
	assert.Equal(t, 1, mek.weight(unit.MekHead))
	assert.Equal(t, 6, mek.weight(unit.MekLeftLeg))
	assert.True(t, mek.fatal(unit.MekCenterTorso))
	assert.False(t, mek.fatal(unit.MekLeftArm))

	assert.True(t, c.PolicyFor(unit.NewInfantry(unit.Spec{})).Headcount)
	assert.True(t, c.PolicyFor(unit.NewBattleArmor(unit.Spec{})).TrooperLocations)
	assert.True(t, PolicyFor(unit.CategoryEmplacement).fatal(0))
}

func TestRollDamageScalesWithMultiplier(t *testing.T) {
	u := unit.NewMek(unit.Spec{Tonnage: 50})
	health := u.CurrentHealth()

	low, _ := newChooser(1).RollDamage(u, unit.RemovalOther)
	high, rule := newChooser(1).RollDamage(u, unit.RemovalDevastated)

	assert.True(t, rule.Devastate)
	assert.Greater(t, high, low)
	dice := (3*health*2 + 6) / 7
	assert.GreaterOrEqual(t, high, dice)
	assert.LessOrEqual(t, high, dice*6)
}

func TestDamageRemovedUnitRetreatingSurvives(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		u := unit.NewMek(unit.Spec{Tonnage: 40})
		out := newChooser(seed).DamageRemovedUnit(u, unit.RemovalRetreating)
		require.False(t, u.Destroyed, "seed %d", seed)
		assert.Equal(t, unit.RemovalRetreating, u.Removal)
		assert.Equal(t, unit.RemovalRetreating, out.Removal)
		assert.False(t, u.Crew.Dead)
		assert.Less(t, u.CurrentHealth(), u.MaxHealth())
	}
}

func TestDamageRemovedUnitDevastated(t *testing.T) {
	u := unit.NewTank(unit.Spec{Tonnage: 50})
	out := newChooser(2).DamageRemovedUnit(u, unit.RemovalDevastated)
	assert.True(t, out.Destroyed)
	assert.Equal(t, unit.RemovalDevastated, u.Removal)
	assert.Zero(t, u.CurrentHealth())
}

func TestDamageRemovedUnitEjected(t *testing.T) {
	u := unit.NewMek(unit.Spec{Tonnage: 50})
	out := newChooser(3).DamageRemovedUnit(u, unit.RemovalEjected)
	assert.True(t, out.Ejected)
	assert.True(t, u.Crew.Ejected)
	assert.Less(t, u.Crew.Hits, u.Crew.DeathThreshold)
	assert.Equal(t, unit.RemovalEjected, u.Removal)
}

func TestDamageRemovedUnitSalvageableSparesCrew(t *testing.T) {
	u := unit.NewMek(unit.Spec{Tonnage: 50})
	newChooser(4).DamageRemovedUnit(u, unit.RemovalSalvageable)
	assert.True(t, u.Destroyed)
	assert.Equal(t, unit.RemovalSalvageable, u.Removal)
	assert.Zero(t, u.Crew.Hits)
}

func TestTuningOverridesMergeWithDefaults(t *testing.T) {
	a := NewApplier(rand.New(rand.NewSource(1)), Tuning{
		CrewSurvivalMargin: 2,
		Removal: map[unit.Removal]RemovalRule{
			unit.RemovalDevastated: {Multiplier: 5, FinalState: AnyFate, Devastate: true},
		},
	})
	tu := a.Tuning()
	assert.Equal(t, 2, tu.CrewSurvivalMargin)
	assert.Equal(t, 5, tu.ClusterSize)
	assert.Equal(t, 5.0, tu.Removal[unit.RemovalDevastated].Multiplier)
	assert.Equal(t, 0.6, tu.Removal[unit.RemovalRetreating].Multiplier)
}

func TestCrewSurvivalMarginIsConfigurable(t *testing.T) {
	u := cockpitOnly(false)
	u.Crew.Hits = 1
	a := NewApplier(rand.New(rand.NewSource(1)), Tuning{CrewSurvivalMargin: 2})
	a.Apply(u, Request{Damage: 8, ClusterSize: 8, FinalState: CrewMustSurvive})
	assert.Equal(t, 4, u.Crew.Hits)
	assert.True(t, u.Locations[0].Destroyed)
}
