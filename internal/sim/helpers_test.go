package sim

import (
	"autoresolve-sim/internal/battle"
	"autoresolve-sim/internal/unit"
)

// duel builds two opposing single-unit formations.
func duel(seed int64) *battle.State {
	s := battle.New(battle.WithSeed(seed))
	s.AddPlayer(battle.Player{ID: 1, Name: "Blue", Team: 1})
	s.AddPlayer(battle.Player{ID: 2, Name: "Red", Team: 2})
	a := s.AddUnit(unit.NewMek(unit.Spec{Name: "Hunchback", Owner: 1, Tonnage: 50, Movement: 4, Firepower: 20, Range: 9}))
	b := s.AddUnit(unit.NewMek(unit.Spec{Name: "Griffin", Owner: 2, Tonnage: 55, Movement: 5, Firepower: 15, Range: 12}))
	s.AddFormation(&battle.Formation{Name: "Blue Lance", Owner: 1, UnitIDs: []int{a}, Home: 0})
	s.AddFormation(&battle.Formation{Name: "Red Lance", Owner: 2, UnitIDs: []int{b}, Home: 16})
	return s
}

// skirmish builds two mixed formations per side.
func skirmish(seed int64) *battle.State {
	s := battle.New(battle.WithSeed(seed))
	s.AddPlayer(battle.Player{ID: 1, Name: "Blue", Team: 1})
	s.AddPlayer(battle.Player{ID: 2, Name: "Red", Team: 2})
	blue := []int{
		s.AddUnit(unit.NewMek(unit.Spec{Name: "Warhammer", Owner: 1, Tonnage: 70, Movement: 4, Firepower: 24, Range: 12})),
		s.AddUnit(unit.NewTank(unit.Spec{Name: "Vedette", Owner: 1, Tonnage: 50, Movement: 5, Firepower: 10, Range: 9})),
	}
	blue2 := []int{
		s.AddUnit(unit.NewInfantry(unit.Spec{Name: "Rifle Platoon", Owner: 1, Movement: 1, Firepower: 6, Range: 3})),
	}
	red := []int{
		s.AddUnit(unit.NewMek(unit.Spec{Name: "Marauder", Owner: 2, Tonnage: 75, Movement: 4, Firepower: 26, Range: 12})),
		s.AddUnit(unit.NewBattleArmor(unit.Spec{Name: "Elementals", Owner: 2, Movement: 3, Firepower: 8, Range: 3})),
	}
	red2 := []int{
		s.AddUnit(unit.NewEmplacement(unit.Spec{Name: "Bunker", Owner: 2, Firepower: 12, Range: 9, DeployRound: 2})),
	}
	s.AddFormation(&battle.Formation{Name: "Blue Lance", Owner: 1, UnitIDs: blue, Home: 0})
	s.AddFormation(&battle.Formation{Name: "Blue Infantry", Owner: 1, UnitIDs: blue2, Home: 2})
	s.AddFormation(&battle.Formation{Name: "Red Lance", Owner: 2, UnitIDs: red, Home: 20})
	s.AddFormation(&battle.Formation{Name: "Red Bunker", Owner: 2, UnitIDs: red2, Home: 14})
	return s
}
