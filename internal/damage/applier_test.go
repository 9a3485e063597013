package damage

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"autoresolve-sim/internal/unit"
)

func newApplier(seed int64) *Applier {
	return NewApplier(rand.New(rand.NewSource(seed)), DefaultTuning())
}

func bunker() *unit.Unit {
	return &unit.Unit{
		ID:       1,
		Category: unit.CategoryEmplacement,
		Locations: []unit.Location{{
			Name: "Structure", Armor: 10, MaxArmor: 10, Internal: 5, MaxInternal: 5,
		}},
	}
}

func TestApplyDestroysUnconstrainedUnit(t *testing.T) {
	u := bunker()
	out := newApplier(1).Apply(u, Request{Damage: 20, ClusterSize: 5})

	assert.True(t, u.Destroyed)
	assert.True(t, u.Locations[0].Destroyed)
	assert.Equal(t, 0, u.Armor(0))
	assert.Equal(t, 0, u.Internal(0))
	assert.Equal(t, 3, out.Clusters)
	assert.Equal(t, 15, out.Applied)
	assert.Equal(t, 5, out.Discarded)
	assert.True(t, out.Destroyed)
}

func TestApplyFloorsLifeCriticalLocationWhenUnitMustSurvive(t *testing.T) {
	u := bunker()
	out := newApplier(1).Apply(u, Request{Damage: 20, ClusterSize: 5, FinalState: UnitMustSurvive})

	assert.False(t, u.Destroyed)
	assert.False(t, u.Locations[0].Destroyed)
	assert.Equal(t, 0, u.Armor(0))
	assert.Equal(t, 1, u.Internal(0))
	assert.Equal(t, 14, out.Applied)
	assert.Equal(t, unit.RemovalNone, u.Removal)
}

func cockpitOnly(canEject bool) *unit.Unit {
	return &unit.Unit{
		ID:       2,
		Category: unit.CategoryMek,
		CanEject: canEject,
		Crew:     &unit.Crew{Size: 1, Hits: 5, DeathThreshold: 6},
		Locations: []unit.Location{{
			Name: "HD", Armor: 5, MaxArmor: 5, Internal: 3, MaxInternal: 3,
			Slots: []unit.Slot{{Name: "Cockpit", Kind: unit.SlotLifeSupport, Hittable: true}},
		}},
	}
}

func TestApplyEjectsWhenCrewMustSurvive(t *testing.T) {
	u := cockpitOnly(true)
	out := newApplier(1).Apply(u, Request{Damage: 5, ClusterSize: 5, FinalState: CrewMustSurvive})

	require.True(t, out.Ejected)
	assert.True(t, u.Crew.Ejected)
	assert.Less(t, u.Crew.Hits, u.Crew.DeathThreshold)
	assert.False(t, u.Crew.Dead)
	assert.True(t, u.Destroyed)
	assert.Equal(t, unit.RemovalEjected, u.Removal)
}

func TestApplyCapsCrewHitsWithoutEjection(t *testing.T) {
	u := cockpitOnly(false)
	newApplier(1).Apply(u, Request{Damage: 5, ClusterSize: 5, FinalState: CrewMustSurvive})

	assert.False(t, u.Crew.Ejected)
	assert.Equal(t, 5, u.Crew.Hits)
	assert.False(t, u.Destroyed)
}

func TestApplyKillsCrewWhenUnconstrained(t *testing.T) {
	u := cockpitOnly(true)
	newApplier(1).Apply(u, Request{Damage: 5, ClusterSize: 5})

	assert.True(t, u.Crew.Dead)
	assert.True(t, u.Destroyed)
	assert.Equal(t, unit.RemovalSalvageable, u.Removal)
}

func TestDamageOnlyLeavesCrewAlone(t *testing.T) {
	u := cockpitOnly(true)
	out := newApplier(1).Apply(u, Request{Damage: 8, ClusterSize: 1, FinalState: DamageOnly})

	assert.Equal(t, 5, u.Crew.Hits)
	assert.Zero(t, out.CrewHits)
	assert.False(t, u.Crew.Ejected)
}

func TestApplyConservesDamage(t *testing.T) {
	builders := map[string]func(r *rand.Rand) *unit.Unit{
		"mek": func(r *rand.Rand) *unit.Unit {
			return unit.NewMek(unit.Spec{Tonnage: 20 + 5*r.Intn(17)})
		},
		"infantry": func(r *rand.Rand) *unit.Unit {
			return unit.NewInfantry(unit.Spec{Troopers: 7 + r.Intn(22)})
		},
		"battle_armor": func(r *rand.Rand) *unit.Unit {
			return unit.NewBattleArmor(unit.Spec{Troopers: 1 + r.Intn(6)})
		},
	}
	for name, build := range builders {
		t.Run(name, func(t *testing.T) {
			for seed := int64(1); seed <= 50; seed++ {
				r := rand.New(rand.NewSource(seed))
				u := build(r)
				before := u.CurrentHealth()
				dmg := 1 + r.Intn(200)
				cluster := 1 + r.Intn(10)

				out := newApplier(seed).Apply(u, Request{Damage: dmg, ClusterSize: cluster})

				assert.Equal(t, out.Applied, before-u.CurrentHealth(), "seed %d", seed)
				assert.LessOrEqual(t, out.Applied, dmg, "seed %d", seed)
				assert.LessOrEqual(t, out.Clusters, (dmg+cluster-1)/cluster, "seed %d", seed)
			}
		})
	}
}

func TestUnitMustSurviveNeverDestroysMek(t *testing.T) {
	for seed := int64(1); seed <= 30; seed++ {
		u := unit.NewMek(unit.Spec{Tonnage: 35})
		a := newApplier(seed)
		for i := 0; i < 10; i++ {
			a.Apply(u, Request{Damage: 60, ClusterSize: 5, FinalState: UnitMustSurvive})
		}
		require.False(t, u.Destroyed, "seed %d", seed)
		assert.NotEqual(t, unit.RemovalDevastated, u.Removal)
		assert.GreaterOrEqual(t, u.Internal(unit.MekHead), 1)
		assert.GreaterOrEqual(t, u.Internal(unit.MekCenterTorso), 1)
		assert.False(t, u.Crew.Dead)
	}
}

func TestDevastationOverridesUnitMustSurvive(t *testing.T) {
	u := unit.NewMek(unit.Spec{Tonnage: 50})
	out := newApplier(3).Apply(u, Request{FinalState: CrewAndUnitMustSurvive, Devastate: true})

	assert.True(t, out.Destroyed)
	assert.Equal(t, unit.RemovalDevastated, u.Removal)
	assert.Zero(t, u.CurrentHealth())
	assert.Zero(t, u.Crew.Hits, "crew protected by constraint")
}

func TestDevastationRollsCrewCasualties(t *testing.T) {
	u := unit.NewMek(unit.Spec{Tonnage: 50})
	out := newApplier(4).Apply(u, Request{Devastate: true})

	assert.Equal(t, unit.RemovalDevastated, u.Removal)
	assert.GreaterOrEqual(t, u.Crew.Hits, 1)
	assert.Equal(t, u.Crew.Hits, out.CrewHits)
}

func TestApplyOnDestroyedUnitIsNoop(t *testing.T) {
	u := bunker()
	u.MarkDestroyed(unit.RemovalOther)
	out := newApplier(1).Apply(u, Request{Damage: 20, ClusterSize: 5})
	assert.Zero(t, out.Clusters)
	assert.Equal(t, 20, out.Discarded)
	assert.Equal(t, 10, u.Armor(0))
}

func TestApplyWithNoHittableLocationDestroysUnit(t *testing.T) {
	u := bunker()
	u.Locations[0].BlownOff = true
	newApplier(1).Apply(u, Request{Damage: 5})
	assert.True(t, u.Destroyed)
	assert.Equal(t, unit.RemovalDevastated, u.Removal)
}

func TestInfantryTakesHeadcountLosses(t *testing.T) {
	u := unit.NewInfantry(unit.Spec{Troopers: 28})
	out := newApplier(1).Apply(u, Request{Damage: 10, ClusterSize: 5})
	assert.Equal(t, 18, u.Troopers)
	assert.Equal(t, 10, out.Applied)
	assert.Equal(t, 2, out.Clusters)
	assert.Equal(t, -1, out.Hits[0].Location)

	newApplier(1).Apply(u, Request{Damage: 100, ClusterSize: 5, FinalState: UnitMustSurvive})
	assert.Equal(t, 1, u.Troopers)
	assert.False(t, u.Destroyed)

	newApplier(1).Apply(u, Request{Damage: 100})
	assert.True(t, u.Destroyed)
	assert.Equal(t, unit.RemovalDevastated, u.Removal)
}

func TestBattleArmorLosesTroopersPerLocation(t *testing.T) {
	u := unit.NewBattleArmor(unit.Spec{Troopers: 4})
	newApplier(2).Apply(u, Request{Damage: 500, ClusterSize: 5})
	assert.True(t, u.Destroyed)
	assert.Zero(t, u.Troopers)
	assert.Equal(t, unit.RemovalDevastated, u.Removal)
}

func TestMekHeadDestructionIsFatal(t *testing.T) {
	u := unit.NewMek(unit.Spec{Tonnage: 50})
	for i := range u.Locations {
		if i != unit.MekHead {
			u.Locations[i].BlownOff = true
		}
	}
	newApplier(1).Apply(u, Request{Damage: 12, ClusterSize: 12})
	assert.True(t, u.Destroyed)
	assert.True(t, u.Crew.Dead)
}

func TestApplyIsDeterministicForSeed(t *testing.T) {
	a := unit.NewMek(unit.Spec{Tonnage: 65})
	b := a.Clone()
	outA := newApplier(99).Apply(a, Request{Damage: 90, ClusterSize: 5})
	outB := newApplier(99).Apply(b, Request{Damage: 90, ClusterSize: 5})
	assert.Equal(t, outA, outB)
	assert.Equal(t, a, b)
}

func TestProtectedCriticalsSkipLifeSupport(t *testing.T) {
	u := unit.NewMek(unit.Spec{Tonnage: 50})
	for i := range u.Locations {
		if i != unit.MekCenterTorso {
			u.Locations[i].BlownOff = true
		}
	}
	u.SetArmor(unit.MekCenterTorso, 0)
	newApplier(5).Apply(u, Request{Damage: 15, ClusterSize: 1, FinalState: UnitMustSurvive})
	for _, s := range u.Locations[unit.MekCenterTorso].Slots {
		if s.Kind == unit.SlotLifeSupport {
			assert.False(t, s.Destroyed, s.Name)
		}
	}
}
