package scenario

import (
	"maps"
	"slices"
)

// BuiltIn returns the predefined scenarios keyed by name.
func BuiltIn() map[string]Scenario {
	return map[string]Scenario{
		"duel": {
			Name:        "Duel",
			Description: "Two medium meks meet across open ground.",
			Teams: []Team{
				{ID: 1, Name: "Blue", Players: []Player{{ID: 1, Name: "Blue", Formations: []Formation{{
					Name: "Blue Lance", Home: 0,
					Units: []UnitSpec{{Name: "Hunchback", Category: "mek", Tonnage: 50, Movement: 4, Firepower: 20, Range: 9}},
				}}}}},
				{ID: 2, Name: "Red", Players: []Player{{ID: 2, Name: "Red", Formations: []Formation{{
					Name: "Red Lance", Home: 16,
					Units: []UnitSpec{{Name: "Griffin", Category: "mek", Tonnage: 55, Movement: 5, Firepower: 15, Range: 12}},
				}}}}},
			},
		},
		"lance-skirmish": {
			Name:        "Lance Skirmish",
			Description: "Two full lances trade fire while a reserve lance arrives late.",
			Teams: []Team{
				{ID: 1, Name: "Davion", Players: []Player{{ID: 1, Name: "Davion", Formations: []Formation{
					{Name: "Fire Lance", Home: 0, Units: []UnitSpec{
						{Name: "Archer", Category: "mek", Tonnage: 70, Movement: 4, Firepower: 24, Range: 15},
						{Name: "Catapult", Category: "mek", Tonnage: 65, Movement: 4, Firepower: 22, Range: 15},
						{Name: "Enforcer", Category: "mek", Tonnage: 50, Movement: 4, Firepower: 14, Range: 12},
						{Name: "Valkyrie", Category: "mek", Tonnage: 30, Movement: 5, Firepower: 10, Range: 15},
					}},
					{Name: "Recon Lance", Home: 4, Units: []UnitSpec{
						{Name: "Jenner", Category: "mek", Tonnage: 35, Movement: 7, Firepower: 12, Range: 9, DeployRound: 3},
						{Name: "Commando", Category: "mek", Tonnage: 25, Movement: 6, Firepower: 10, Range: 9, DeployRound: 3},
					}},
				}}}},
				{ID: 2, Name: "Kurita", Players: []Player{{ID: 2, Name: "Kurita", Formations: []Formation{
					{Name: "Battle Lance", Home: 24, Units: []UnitSpec{
						{Name: "Dragon", Category: "mek", Tonnage: 60, Movement: 5, Firepower: 18, Range: 15},
						{Name: "Grand Dragon", Category: "mek", Tonnage: 60, Movement: 5, Firepower: 20, Range: 15},
						{Name: "Panther", Category: "mek", Tonnage: 35, Movement: 4, Firepower: 12, Range: 15},
						{Name: "Jenner", Category: "mek", Tonnage: 35, Movement: 7, Firepower: 12, Range: 9},
					}},
				}}}},
			},
		},
		"combined-arms": {
			Name:        "Combined Arms",
			Description: "An assault force of meks, armor and infantry pushes against a fortified line.",
			Teams: []Team{
				{ID: 1, Name: "Assault", Players: []Player{
					{ID: 1, Name: "Armor Command", Formations: []Formation{
						{Name: "Assault Lance", Home: 0, Units: []UnitSpec{
							{Name: "Atlas", Category: "mek", Tonnage: 100, Gunnery: 3, Movement: 3, Firepower: 32, Range: 12},
							{Name: "Marauder", Category: "mek", Tonnage: 75, Movement: 4, Firepower: 26, Range: 12},
						}},
						{Name: "Armor Platoon", Home: 2, Units: []UnitSpec{
							{Name: "Manticore", Category: "tank", Tonnage: 60, Movement: 4, Firepower: 18, Range: 12},
							{Name: "Vedette", Category: "tank", Tonnage: 50, Movement: 5, Firepower: 10, Range: 9},
						}},
					}},
					{ID: 3, Name: "Infantry Command", Formations: []Formation{
						{Name: "Point Star", Home: 1, Units: []UnitSpec{
							{Name: "Elementals", Category: "battle_armor", Movement: 3, Firepower: 8, Range: 3},
							{Name: "Rifle Platoon", Category: "infantry", Movement: 1, Firepower: 6, Range: 3, Troopers: 28},
						}},
					}},
				}},
				{ID: 2, Name: "Garrison", Players: []Player{
					{ID: 2, Name: "Garrison", Formations: []Formation{
						{Name: "Fortified Line", Home: 22, Units: []UnitSpec{
							{Name: "Bunker", Category: "emplacement", Tonnage: 60, Firepower: 16, Range: 12},
							{Name: "Turret", Category: "emplacement", Tonnage: 40, Firepower: 12, Range: 15},
						}},
						{Name: "Proto Point", Home: 18, Units: []UnitSpec{
							{Name: "Minotaur", Category: "protomek", Tonnage: 9, Movement: 4, Firepower: 8, Range: 6},
							{Name: "Satyr", Category: "protomek", Tonnage: 5, Movement: 8, Firepower: 4, Range: 3},
						}},
						{Name: "Relief Lance", Home: 26, Units: []UnitSpec{
							{Name: "Orion", Category: "mek", Tonnage: 75, Movement: 4, Firepower: 24, Range: 15, DeployRound: 4},
							{Name: "Phoenix Hawk", Category: "mek", Tonnage: 45, Movement: 6, Firepower: 14, Range: 9, DeployRound: 4},
						}},
					}},
				}},
			},
		},
	}
}

// Names returns the built-in scenario names in order.
func Names() []string {
	return slices.Sorted(maps.Keys(BuiltIn()))
}
